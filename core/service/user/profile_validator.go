package user

import (
	"unicode/utf8"

	"profile_server/core/domain"
	"profile_server/pkg/apperr"
)

// requiredFields lists every required payload field in its fixed iteration
// order. The first absent field is the one reported; order is contractual,
// not alphabetical.
var requiredFields = []struct {
	name    string
	present func(*domain.UpdateProfileInput) bool
}{
	{"nickname", func(in *domain.UpdateProfileInput) bool { return in.Nickname != nil }},
	{"height", func(in *domain.UpdateProfileInput) bool { return in.Height != nil }},
	{"weight", func(in *domain.UpdateProfileInput) bool { return in.Weight != nil }},
	{"skeletalMuscleMass", func(in *domain.UpdateProfileInput) bool { return in.SkeletalMuscleMass != nil }},
	{"goalWeight", func(in *domain.UpdateProfileInput) bool { return in.GoalWeight != nil }},
	{"goalBodyFat", func(in *domain.UpdateProfileInput) bool { return in.GoalBodyFat != nil }},
	{"goalSkeletalMuscleMass", func(in *domain.UpdateProfileInput) bool { return in.GoalSkeletalMuscleMass != nil }},
	{"bodyFat", func(in *domain.UpdateProfileInput) bool { return in.BodyFat != nil }},
	{"age", func(in *domain.UpdateProfileInput) bool { return in.Age != nil }},
	{"gender", func(in *domain.UpdateProfileInput) bool { return in.Gender != nil }},
}

// ValidateUpdateProfile checks the raw payload: every required field must be
// present, and the nickname must fit within domain.NicknameMaxLen characters
// (exactly 8 is allowed). Pure function; short-circuits on the first missing
// field.
func ValidateUpdateProfile(in *domain.UpdateProfileInput) error {
	for _, f := range requiredFields {
		if !f.present(in) {
			return apperr.KeyError(f.name)
		}
	}

	if utf8.RuneCountInString(*in.Nickname) > domain.NicknameMaxLen {
		return apperr.NicknameTooLong()
	}

	return nil
}
