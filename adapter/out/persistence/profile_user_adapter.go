// Package persistence provides database adapters implementing outbound ports.
package persistence

import (
	"context"
	"database/sql"
	"errors"

	"profile_server/core/domain"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// pqUniqueViolation is the PostgreSQL error code for unique_violation.
const pqUniqueViolation = "23505"

// UserAdapter implements out.UserRepository using PostgreSQL.
type UserAdapter struct {
	db *sqlx.DB
}

// NewUserAdapter creates a new UserAdapter.
func NewUserAdapter(db *sqlx.DB) *UserAdapter {
	return &UserAdapter{db: db}
}

// Create inserts a user at account linking time.
func (a *UserAdapter) Create(ctx context.Context, email, snsID string, socialID int64) (int64, error) {
	const query = `
		INSERT INTO users (email, sns_id, social_id, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id
	`

	var id int64
	if err := a.db.GetContext(ctx, &id, query, email, snsID, socialID); err != nil {
		return 0, err
	}
	return id, nil
}

// FindBySNS looks a user up by (sns id, social provider). Returns nil when
// no such user exists.
func (a *UserAdapter) FindBySNS(ctx context.Context, snsID string, socialID int64) (*domain.User, error) {
	const query = `
		SELECT u.id, u.email, u.nickname, u.height, u.weight,
		       u.skeletal_muscle_mass, u.goal_weight, u.goal_body_fat,
		       u.goal_skeletal_muscle_mass, u.body_fat, u.birth_year,
		       u.gender_id, u.subscribe_id, u.sns_id, u.social_id,
		       u.created_at, u.updated_at
		FROM users u
		INNER JOIN socials s ON u.social_id = s.id
		WHERE u.sns_id = $1 AND u.social_id = $2
		LIMIT 1
	`

	var user domain.User
	if err := a.db.GetContext(ctx, &user, query, snsID, socialID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// NicknameTakenByOther reports whether a different user already holds the
// nickname. The acting user's own row is excluded so a no-op update does not
// conflict with itself.
func (a *UserAdapter) NicknameTakenByOther(ctx context.Context, nickname string, userID int64) (bool, error) {
	const query = `
		SELECT id FROM users
		WHERE nickname = $1 AND id <> $2
		LIMIT 1
	`

	var id int64
	if err := a.db.GetContext(ctx, &id, query, nickname, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// UpdateProfile overwrites the profile columns of the user row. A missing
// row is a silent no-op. The unique constraint on nickname is the
// authoritative duplicate signal; its violation surfaces as
// domain.ErrDuplicateNickname.
func (a *UserAdapter) UpdateProfile(ctx context.Context, userID int64, update domain.ProfileUpdate) error {
	const query = `
		UPDATE users SET
			nickname = $2,
			height = $3,
			weight = $4,
			skeletal_muscle_mass = $5,
			goal_weight = $6,
			goal_body_fat = $7,
			goal_skeletal_muscle_mass = $8,
			body_fat = $9,
			birth_year = $10,
			gender_id = $11,
			subscribe_id = COALESCE($12, subscribe_id),
			updated_at = NOW()
		WHERE id = $1
	`

	_, err := a.db.ExecContext(ctx, query,
		userID,
		update.Nickname,
		update.Height,
		update.Weight,
		update.SkeletalMuscleMass,
		update.GoalWeight,
		update.GoalBodyFat,
		update.GoalSkeletalMuscleMass,
		update.BodyFat,
		update.BirthYear,
		update.GenderID,
		update.SubscribeID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateNickname
		}
		return err
	}
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqUniqueViolation
	}
	return false
}
