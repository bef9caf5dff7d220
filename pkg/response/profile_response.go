// Package response provides wire-format response helpers.
//
// The API speaks a flat {"message": "..."} envelope; clients match on the
// message string, so helpers here never wrap or decorate it.
package response

import (
	"github.com/gofiber/fiber/v2"
)

// Body is the single response envelope used by every endpoint.
type Body struct {
	Message string `json:"message"`
}

// Message sends a response with the given status and message string.
func Message(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Body{Message: message})
}

// OK sends a 200 response with the given message string.
func OK(c *fiber.Ctx, message string) error {
	return Message(c, fiber.StatusOK, message)
}
