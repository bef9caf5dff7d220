package http

import (
	"profile_server/core/domain"
	"profile_server/core/port/in"
	"profile_server/pkg/apperr"
	"profile_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MsgModifiedSuccess is the wire message for a successful profile update.
const MsgModifiedSuccess = "MODIFIED_SUCCESS"

// UserHandler handles user profile requests.
type UserHandler struct {
	userService in.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService in.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register registers user routes.
func (h *UserHandler) Register(router fiber.Router) {
	router.Put("/users", h.UpdateProfile)
}

// UpdateProfile handles PUT /users.
//
// The heavy lifting lives in the service pipeline; the handler only decodes
// the payload and reports the single outcome. Typed failures are returned to
// the centralized error handler.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return apperr.BadRequest()
	}

	if err := h.userService.UpdateProfile(c.Context(), userID, &input); err != nil {
		return err
	}

	return response.OK(c, MsgModifiedSuccess)
}
