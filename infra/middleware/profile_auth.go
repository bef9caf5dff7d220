package middleware

import (
	"profile_server/pkg/token"

	"github.com/gofiber/fiber/v2"
)

const userIDKey = "user_id"

// JWTAuth authenticates requests with the access token on the Authorization
// header. The header carries the raw signed token, no scheme prefix. Typed
// failures (UNAUTHORIZED, JWT_EXPIRED) propagate to the centralized error
// handler.
func JWTAuth(verifier *token.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// CORS preflight never carries credentials.
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		userID, err := verifier.Verify(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}

		c.Locals(userIDKey, userID)

		return c.Next()
	}
}

// UserID extracts the authenticated user id stored by JWTAuth. The bool is
// false when the request was not authenticated.
func UserID(c *fiber.Ctx) (int64, bool) {
	userID, ok := c.Locals(userIDKey).(int64)
	return userID, ok
}
