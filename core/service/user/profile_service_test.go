package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"profile_server/core/domain"
	"profile_server/pkg/apperr"
)

// fakeUserRepo implements out.UserRepository in memory.
type fakeUserRepo struct {
	nicknames map[string]int64 // nickname -> owning user id
	updateErr error
	updated   *domain.ProfileUpdate
	updatedID int64
	checkErr  error
}

func (f *fakeUserRepo) Create(ctx context.Context, email, snsID string, socialID int64) (int64, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeUserRepo) FindBySNS(ctx context.Context, snsID string, socialID int64) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUserRepo) NicknameTakenByOther(ctx context.Context, nickname string, userID int64) (bool, error) {
	if f.checkErr != nil {
		return false, f.checkErr
	}
	owner, ok := f.nicknames[nickname]
	return ok && owner != userID, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, userID int64, update domain.ProfileUpdate) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = &update
	f.updatedID = userID
	return nil
}

// fakeGenderRepo implements out.GenderRepository in memory.
type fakeGenderRepo struct {
	genders map[string]int64
	err     error
}

func (f *fakeGenderRepo) FindIDByName(ctx context.Context, name string) (int64, bool, error) {
	if f.err != nil {
		return 0, false, f.err
	}
	id, ok := f.genders[name]
	return id, ok, nil
}

// fakeChangeLog records calls and can fail without consequence.
type fakeChangeLog struct {
	changes []*domain.ProfileChange
	err     error
}

func (f *fakeChangeLog) Record(ctx context.Context, change *domain.ProfileChange) error {
	if f.err != nil {
		return f.err
	}
	f.changes = append(f.changes, change)
	return nil
}

func newFixture() (*Service, *fakeUserRepo, *fakeGenderRepo, *fakeChangeLog) {
	users := &fakeUserRepo{nicknames: map[string]int64{"testNick": 2}}
	genders := &fakeGenderRepo{genders: map[string]int64{"male": 1, "female": 2}}
	changes := &fakeChangeLog{}
	return NewService(users, genders, changes), users, genders, changes
}

func TestUpdateProfile_Success(t *testing.T) {
	svc, users, _, changes := newFixture()

	err := svc.UpdateProfile(context.Background(), 1, fullInput())
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	if users.updated == nil {
		t.Fatal("UpdateProfile() did not persist")
	}
	if users.updatedID != 1 {
		t.Errorf("persisted user id = %d, want 1", users.updatedID)
	}
	if users.updated.Nickname != "tester" {
		t.Errorf("persisted nickname = %q, want %q", users.updated.Nickname, "tester")
	}
	if users.updated.GenderID != 1 {
		t.Errorf("persisted gender id = %d, want 1", users.updated.GenderID)
	}
	wantBirthYear := time.Now().Year() - 24
	if users.updated.BirthYear != wantBirthYear {
		t.Errorf("persisted birth year = %d, want %d", users.updated.BirthYear, wantBirthYear)
	}
	if users.updated.SubscribeID != nil {
		t.Errorf("subscribe id = %v, want nil (preserved)", *users.updated.SubscribeID)
	}

	if len(changes.changes) != 1 {
		t.Fatalf("change log entries = %d, want 1", len(changes.changes))
	}
	if changes.changes[0].UserID != 1 {
		t.Errorf("change log user id = %d, want 1", changes.changes[0].UserID)
	}
}

func TestUpdateProfile_GenderNotFound(t *testing.T) {
	svc, users, _, _ := newFixture()

	in := fullInput()
	unknown := "test gender"
	in.Gender = &unknown

	err := svc.UpdateProfile(context.Background(), 1, in)
	if err == nil {
		t.Fatal("UpdateProfile() error = nil, want GENDER_NOT_FOUND")
	}
	if got := apperr.AsAppError(err).Code; got != apperr.CodeGenderNotFound {
		t.Errorf("code = %s, want %s", got, apperr.CodeGenderNotFound)
	}
	if users.updated != nil {
		t.Error("UpdateProfile() persisted despite failed gender resolution")
	}
}

func TestUpdateProfile_DuplicateNickname(t *testing.T) {
	svc, users, _, _ := newFixture()

	in := fullInput()
	taken := "testNick"
	in.Nickname = &taken

	err := svc.UpdateProfile(context.Background(), 1, in)
	if err == nil {
		t.Fatal("UpdateProfile() error = nil, want DUPLICATED_NICKNAME")
	}
	if got := apperr.AsAppError(err).Code; got != apperr.CodeDuplicateNickname {
		t.Errorf("code = %s, want %s", got, apperr.CodeDuplicateNickname)
	}
	if users.updated != nil {
		t.Error("UpdateProfile() persisted despite duplicate nickname")
	}
}

// A user re-submitting their own current nickname must not conflict with
// itself.
func TestUpdateProfile_OwnNicknameDoesNotConflict(t *testing.T) {
	svc, users, _, _ := newFixture()

	in := fullInput()
	own := "testNick"
	in.Nickname = &own

	// User 2 already owns "testNick" in the fixture.
	if err := svc.UpdateProfile(context.Background(), 2, in); err != nil {
		t.Fatalf("UpdateProfile() error = %v, want nil", err)
	}
	if users.updated == nil {
		t.Fatal("UpdateProfile() did not persist")
	}
}

// The unique constraint violation on the write is authoritative even when the
// pre-check passed (concurrent claim of the same nickname).
func TestUpdateProfile_ConstraintViolationOnWrite(t *testing.T) {
	svc, users, _, _ := newFixture()
	users.updateErr = domain.ErrDuplicateNickname

	err := svc.UpdateProfile(context.Background(), 1, fullInput())
	if err == nil {
		t.Fatal("UpdateProfile() error = nil, want DUPLICATED_NICKNAME")
	}
	if got := apperr.AsAppError(err).Code; got != apperr.CodeDuplicateNickname {
		t.Errorf("code = %s, want %s", got, apperr.CodeDuplicateNickname)
	}
}

func TestUpdateProfile_StorageFaultIsGeneric(t *testing.T) {
	svc, users, genders, _ := newFixture()

	genders.err = errors.New("connection refused")
	err := svc.UpdateProfile(context.Background(), 1, fullInput())
	if got := apperr.AsAppError(err).Code; got != apperr.CodeDatabaseError {
		t.Errorf("gender fault code = %s, want %s", got, apperr.CodeDatabaseError)
	}
	if got := apperr.GetHTTPStatus(err); got != 500 {
		t.Errorf("gender fault status = %d, want 500", got)
	}

	genders.err = nil
	users.checkErr = errors.New("connection reset")
	err = svc.UpdateProfile(context.Background(), 1, fullInput())
	if got := apperr.AsAppError(err).Code; got != apperr.CodeDatabaseError {
		t.Errorf("check fault code = %s, want %s", got, apperr.CodeDatabaseError)
	}

	users.checkErr = nil
	users.updateErr = errors.New("write failed")
	err = svc.UpdateProfile(context.Background(), 1, fullInput())
	if got := apperr.AsAppError(err).Code; got != apperr.CodeDatabaseError {
		t.Errorf("write fault code = %s, want %s", got, apperr.CodeDatabaseError)
	}
}

// Validation failures short-circuit before any repository access.
func TestUpdateProfile_ValidationShortCircuits(t *testing.T) {
	users := &fakeUserRepo{checkErr: errors.New("must not be called")}
	genders := &fakeGenderRepo{err: errors.New("must not be called")}
	svc := NewService(users, genders, nil)

	in := fullInput()
	in.Nickname = nil

	err := svc.UpdateProfile(context.Background(), 1, in)
	if got := apperr.AsAppError(err).Code; got != apperr.CodeKeyError {
		t.Errorf("code = %s, want %s", got, apperr.CodeKeyError)
	}
}

// A failing change log never fails the request.
func TestUpdateProfile_ChangeLogFailureIgnored(t *testing.T) {
	users := &fakeUserRepo{nicknames: map[string]int64{}}
	genders := &fakeGenderRepo{genders: map[string]int64{"male": 1}}
	changes := &fakeChangeLog{err: errors.New("mongo down")}
	svc := NewService(users, genders, changes)

	if err := svc.UpdateProfile(context.Background(), 1, fullInput()); err != nil {
		t.Fatalf("UpdateProfile() error = %v, want nil", err)
	}
}
