// Package out defines the outbound ports consumed by the core services.
package out

import (
	"context"

	"profile_server/core/domain"
)

// UserRepository is the outbound port for user persistence.
type UserRepository interface {
	// Create inserts a user at account linking time with only the
	// identity/email/social fields populated. Returns the new id.
	Create(ctx context.Context, email, snsID string, socialID int64) (int64, error)

	// FindBySNS looks a user up by (sns id, social provider). Returns
	// nil when no such user exists.
	FindBySNS(ctx context.Context, snsID string, socialID int64) (*domain.User, error)

	// NicknameTakenByOther reports whether a user other than userID
	// already holds the nickname. The acting user's own row is excluded
	// so a no-op update does not conflict with itself.
	NicknameTakenByOther(ctx context.Context, nickname string, userID int64) (bool, error)

	// UpdateProfile overwrites the profile columns of the user row.
	// Updating a non-existent id is a silent no-op. Returns
	// domain.ErrDuplicateNickname when the unique constraint on
	// nickname rejects the write.
	UpdateProfile(ctx context.Context, userID int64, update domain.ProfileUpdate) error
}

// GenderRepository resolves gender names to reference ids.
type GenderRepository interface {
	// FindIDByName returns the id for an exact, case-sensitive name
	// match. The bool reports whether a row matched.
	FindIDByName(ctx context.Context, name string) (int64, bool, error)
}

// ChangeLogRepository records profile mutations best-effort. Implementations
// must never block the pipeline on failure.
type ChangeLogRepository interface {
	Record(ctx context.Context, change *domain.ProfileChange) error
}
