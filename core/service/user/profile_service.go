// Package user implements the profile update pipeline.
package user

import (
	"context"
	"errors"
	"time"

	"profile_server/core/domain"
	"profile_server/core/port/out"
	"profile_server/pkg/apperr"
	"profile_server/pkg/logger"
)

const changeLogTimeout = 2 * time.Second

// Service sequences the update pipeline: validate, resolve gender, check
// nickname uniqueness, persist. The first failing stage aborts the pipeline;
// exactly one outcome is reported.
type Service struct {
	users   out.UserRepository
	genders out.GenderRepository
	changes out.ChangeLogRepository // optional
}

// NewService creates the profile update service. changes may be nil.
func NewService(users out.UserRepository, genders out.GenderRepository, changes out.ChangeLogRepository) *Service {
	return &Service{
		users:   users,
		genders: genders,
		changes: changes,
	}
}

// UpdateProfile runs the pipeline for the authenticated user. Each stage
// issues at most one query; no state is shared between invocations.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, in *domain.UpdateProfileInput) error {
	if err := ValidateUpdateProfile(in); err != nil {
		return err
	}

	genderID, found, err := s.genders.FindIDByName(ctx, *in.Gender)
	if err != nil {
		return apperr.DatabaseError("resolve gender", err)
	}
	if !found {
		return apperr.GenderNotFound()
	}

	taken, err := s.users.NicknameTakenByOther(ctx, *in.Nickname, userID)
	if err != nil {
		return apperr.DatabaseError("check nickname", err)
	}
	if taken {
		return apperr.DuplicateNickname()
	}

	update := domain.ProfileUpdate{
		Nickname:               *in.Nickname,
		Height:                 *in.Height,
		Weight:                 *in.Weight,
		SkeletalMuscleMass:     *in.SkeletalMuscleMass,
		GoalWeight:             *in.GoalWeight,
		GoalBodyFat:            *in.GoalBodyFat,
		GoalSkeletalMuscleMass: *in.GoalSkeletalMuscleMass,
		BodyFat:                *in.BodyFat,
		BirthYear:              time.Now().Year() - *in.Age,
		GenderID:               genderID,
	}

	if err := s.users.UpdateProfile(ctx, userID, update); err != nil {
		// Two requests can pass the pre-check concurrently; the unique
		// constraint is the authoritative duplicate signal.
		if errors.Is(err, domain.ErrDuplicateNickname) {
			return apperr.DuplicateNickname()
		}
		return apperr.DatabaseError("update profile", err)
	}

	s.recordChange(userID)

	return nil
}

// recordChange writes the change log entry best-effort. Field names only,
// never submitted values.
func (s *Service) recordChange(userID int64) {
	if s.changes == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), changeLogTimeout)
	defer cancel()

	change := &domain.ProfileChange{
		UserID: userID,
		Fields: []string{
			"nickname", "height", "weight", "skeletal_muscle_mass",
			"goal_weight", "goal_body_fat", "goal_skeletal_muscle_mass",
			"body_fat", "birth_year", "gender_id",
		},
		ChangedAt: time.Now().UTC(),
	}

	if err := s.changes.Record(ctx, change); err != nil {
		logger.WithError(err).Warn("failed to record profile change for user %d", userID)
	}
}
