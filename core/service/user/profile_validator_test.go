package user

import (
	"testing"

	"profile_server/core/domain"
	"profile_server/pkg/apperr"
)

func fullInput() *domain.UpdateProfileInput {
	nickname := "tester"
	gender := "male"
	height := 20.0
	weight := 11.0
	smm := 11.0
	goalWeight := 11.0
	goalBodyFat := 11.0
	goalSMM := 21.0
	bodyFat := 11.0
	age := 24

	return &domain.UpdateProfileInput{
		Nickname:               &nickname,
		Height:                 &height,
		Weight:                 &weight,
		SkeletalMuscleMass:     &smm,
		GoalWeight:             &goalWeight,
		GoalBodyFat:            &goalBodyFat,
		GoalSkeletalMuscleMass: &goalSMM,
		BodyFat:                &bodyFat,
		Age:                    &age,
		Gender:                 &gender,
	}
}

func TestValidateUpdateProfile_MissingFields(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*domain.UpdateProfileInput)
		wantField string
	}{
		{"missing nickname", func(in *domain.UpdateProfileInput) { in.Nickname = nil }, "nickname"},
		{"missing height", func(in *domain.UpdateProfileInput) { in.Height = nil }, "height"},
		{"missing weight", func(in *domain.UpdateProfileInput) { in.Weight = nil }, "weight"},
		{"missing skeletalMuscleMass", func(in *domain.UpdateProfileInput) { in.SkeletalMuscleMass = nil }, "skeletalMuscleMass"},
		{"missing goalWeight", func(in *domain.UpdateProfileInput) { in.GoalWeight = nil }, "goalWeight"},
		{"missing goalBodyFat", func(in *domain.UpdateProfileInput) { in.GoalBodyFat = nil }, "goalBodyFat"},
		{"missing goalSkeletalMuscleMass", func(in *domain.UpdateProfileInput) { in.GoalSkeletalMuscleMass = nil }, "goalSkeletalMuscleMass"},
		{"missing bodyFat", func(in *domain.UpdateProfileInput) { in.BodyFat = nil }, "bodyFat"},
		{"missing age", func(in *domain.UpdateProfileInput) { in.Age = nil }, "age"},
		{"missing gender", func(in *domain.UpdateProfileInput) { in.Gender = nil }, "gender"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := fullInput()
			tt.mutate(in)

			err := ValidateUpdateProfile(in)
			if err == nil {
				t.Fatal("ValidateUpdateProfile() error = nil, want KEY_ERROR")
			}

			appErr := apperr.AsAppError(err)
			if appErr.Code != apperr.CodeKeyError {
				t.Errorf("code = %s, want %s", appErr.Code, apperr.CodeKeyError)
			}
			want := "KEY_ERROR: " + tt.wantField
			if appErr.Message != want {
				t.Errorf("message = %q, want %q", appErr.Message, want)
			}
		})
	}
}

// The first missing field in the fixed order wins, regardless of which other
// fields are also absent.
func TestValidateUpdateProfile_FirstMissingFieldWins(t *testing.T) {
	in := fullInput()
	in.Height = nil
	in.Age = nil
	in.Gender = nil

	err := ValidateUpdateProfile(in)
	if err == nil {
		t.Fatal("ValidateUpdateProfile() error = nil, want KEY_ERROR")
	}
	if got := apperr.AsAppError(err).Message; got != "KEY_ERROR: height" {
		t.Errorf("message = %q, want %q", got, "KEY_ERROR: height")
	}

	in = fullInput()
	in.Nickname = nil
	in.Gender = nil

	err = ValidateUpdateProfile(in)
	if got := apperr.AsAppError(err).Message; got != "KEY_ERROR: nickname" {
		t.Errorf("message = %q, want %q", got, "KEY_ERROR: nickname")
	}
}

func TestValidateUpdateProfile_NicknameLength(t *testing.T) {
	tests := []struct {
		name     string
		nickname string
		wantErr  bool
	}{
		{"short nickname", "tester", false},
		{"exactly 8 chars", "testNick", false},
		{"9 chars rejected", "asdfghjkl", true},
		{"empty nickname allowed", "", false},
		{"8 korean chars", "김철수영희순이들", false},
		{"9 korean chars rejected", "김철수영희순이들아", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := fullInput()
			in.Nickname = &tt.nickname

			err := ValidateUpdateProfile(in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ValidateUpdateProfile() error = nil, want NICKNAME_LENGTH_EXCEEDS_8")
				}
				if got := apperr.AsAppError(err).Code; got != apperr.CodeNicknameTooLong {
					t.Errorf("code = %s, want %s", got, apperr.CodeNicknameTooLong)
				}
			} else if err != nil {
				t.Errorf("ValidateUpdateProfile() error = %v, want nil", err)
			}
		})
	}
}
