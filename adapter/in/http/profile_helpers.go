// Package http provides the inbound HTTP adapters.
package http

import (
	"profile_server/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// GetUserID safely extracts the authenticated user id from the fiber
// context. The auth middleware stores it under "user_id".
func GetUserID(c *fiber.Ctx) (int64, error) {
	userID, ok := c.Locals("user_id").(int64)
	if !ok || userID == 0 {
		return 0, apperr.Unauthorized()
	}
	return userID, nil
}
