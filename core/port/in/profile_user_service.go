// Package in defines the inbound ports exposed by the core services.
package in

import (
	"context"

	"profile_server/core/domain"
)

// UserService is the inbound port for the profile update pipeline.
type UserService interface {
	// UpdateProfile runs the full pipeline for the authenticated user:
	// validation, gender resolution, nickname uniqueness, persistence.
	// It short-circuits on the first failure and reports exactly one
	// typed outcome.
	UpdateProfile(ctx context.Context, userID int64, input *domain.UpdateProfileInput) error
}
