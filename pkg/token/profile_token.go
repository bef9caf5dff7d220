// Package token implements signing and verification of the access tokens
// presented on the Authorization header.
package token

import (
	"errors"
	"strings"
	"time"

	"profile_server/pkg/apperr"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by an access token. The user id is issued under the "id"
// claim at login time; expiry is an explicit registered claim.
type Claims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// Verifier validates HS256 access tokens with a process-wide secret.
// The secret is injected once at construction and read-only thereafter.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for the given signing secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates a raw token string and returns the user id
// embedded in it. The header carries the raw token with no scheme prefix;
// a "Bearer " prefix is tolerated for clients that send one anyway.
//
// Failure taxonomy:
//   - empty token            -> UNAUTHORIZED
//   - elapsed expiry         -> JWT_EXPIRED
//   - malformed / bad signature / non-HMAC alg -> UNAUTHORIZED
func (v *Verifier) Verify(raw string) (int64, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
	if raw == "" {
		return 0, apperr.Unauthorized()
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, apperr.TokenExpired()
		}
		return 0, apperr.Unauthorized()
	}
	if !parsed.Valid || claims.UserID == 0 {
		return 0, apperr.Unauthorized()
	}

	return claims.UserID, nil
}

// Sign issues an HS256 token for the given user id. Login/issuance lives in
// a separate flow; this exists for tests and dev tooling.
func Sign(secret string, userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
