// Package domain holds the core entities of the profile server.
package domain

import (
	"errors"
	"time"
)

// NicknameMaxLen is the inclusive upper bound on nickname length, counted in
// characters (runes), not bytes.
const NicknameMaxLen = 8

// ErrDuplicateNickname is returned by the persistence layer when the unique
// constraint on users.nickname rejects a write. The constraint, not the
// pre-check, is the authoritative duplicate signal.
var ErrDuplicateNickname = errors.New("nickname already taken")

// User is the unit of mutation. Identity, email and social-login fields are
// populated at account linking time; everything else is written through the
// profile update pipeline.
type User struct {
	ID                     int64      `json:"id" db:"id"`
	Email                  string     `json:"email" db:"email"`
	Nickname               *string    `json:"nickname,omitempty" db:"nickname"`
	Height                 *float64   `json:"height,omitempty" db:"height"`
	Weight                 *float64   `json:"weight,omitempty" db:"weight"`
	SkeletalMuscleMass     *float64   `json:"skeletal_muscle_mass,omitempty" db:"skeletal_muscle_mass"`
	GoalWeight             *float64   `json:"goal_weight,omitempty" db:"goal_weight"`
	GoalBodyFat            *float64   `json:"goal_body_fat,omitempty" db:"goal_body_fat"`
	GoalSkeletalMuscleMass *float64   `json:"goal_skeletal_muscle_mass,omitempty" db:"goal_skeletal_muscle_mass"`
	BodyFat                *float64   `json:"body_fat,omitempty" db:"body_fat"`
	BirthYear              *int       `json:"birth_year,omitempty" db:"birth_year"`
	GenderID               *int64     `json:"gender_id,omitempty" db:"gender_id"`
	SubscribeID            *int64     `json:"subscribe_id,omitempty" db:"subscribe_id"`
	SNSID                  string     `json:"sns_id" db:"sns_id"`
	SocialID               int64      `json:"social_id" db:"social_id"`
	CreatedAt              time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt              *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// Gender is a reference entity: looked up by name, never written.
type Gender struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// UpdateProfileInput is the raw update payload as decoded from the request
// body. Fields are pointers so that absence is distinguishable from a zero
// value; the validator reports the first nil field in the fixed order.
type UpdateProfileInput struct {
	Nickname               *string  `json:"nickname"`
	Height                 *float64 `json:"height"`
	Weight                 *float64 `json:"weight"`
	SkeletalMuscleMass     *float64 `json:"skeletalMuscleMass"`
	GoalWeight             *float64 `json:"goalWeight"`
	GoalBodyFat            *float64 `json:"goalBodyFat"`
	GoalSkeletalMuscleMass *float64 `json:"goalSkeletalMuscleMass"`
	BodyFat                *float64 `json:"bodyFat"`
	Age                    *int     `json:"age"`
	Gender                 *string  `json:"gender"`
}

// ProfileUpdate is the validated, resolved field set the updater persists.
// SubscribeID is optional: when nil the user's existing subscription
// reference is preserved.
type ProfileUpdate struct {
	Nickname               string
	Height                 float64
	Weight                 float64
	SkeletalMuscleMass     float64
	GoalWeight             float64
	GoalBodyFat            float64
	GoalSkeletalMuscleMass float64
	BodyFat                float64
	BirthYear              int
	GenderID               int64
	SubscribeID            *int64
}

// ProfileChange records that a profile mutation happened. Only field names
// are kept, never the submitted values.
type ProfileChange struct {
	UserID    int64     `bson:"user_id"`
	Fields    []string  `bson:"fields"`
	ChangedAt time.Time `bson:"changed_at"`
}
