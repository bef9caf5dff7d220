package middleware

import (
	"runtime/debug"
	"time"

	"profile_server/pkg/apperr"
	"profile_server/pkg/logger"
	"profile_server/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ErrorHandler is the centralized error handler for fiber. Every AppError
// maps 1:1 to its HTTP status and fixed message string; anything else is a
// generic server error, never mistaken for a typed outcome.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		requestID, _ := c.Locals("request_id").(string)

		var status int
		var message string

		switch e := err.(type) {
		case *apperr.AppError:
			status = e.Status
			message = e.Message

			log := logger.WithField("request_id", requestID).
				WithField("error_code", e.Code).
				WithError(e.Err)

			if status >= 500 {
				log.Error("Internal error: %s", e.Message)
			} else {
				log.Warn("Client error: %s", e.Message)
			}

		case *fiber.Error:
			status = e.Code
			message = apperr.CodeInternalError
			if status < 500 {
				message = apperr.CodeBadRequest
			}

		default:
			status = fiber.StatusInternalServerError
			message = apperr.CodeInternalError

			logger.WithField("request_id", requestID).
				WithError(err).
				WithField("stack", string(debug.Stack())).
				Error("Unexpected error: %s", err.Error())
		}

		return response.Message(c, status, message)
	}
}

// RequestID middleware adds a unique request ID to each request
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Locals("request_id", requestID)
		c.Set("X-Request-ID", requestID)
		return c.Next()
	}
}

// RequestLogger logs incoming requests and their responses. Payload contents
// are never logged.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID, _ := c.Locals("request_id").(string)

		err := c.Next()

		duration := time.Since(start)

		log := logger.WithFields(map[string]any{
			"request_id":  requestID,
			"method":      c.Method(),
			"path":        c.Path(),
			"status":      c.Response().StatusCode(),
			"duration_ms": float64(duration.Microseconds()) / 1000.0,
			"ip":          c.IP(),
		})

		if userID, ok := UserID(c); ok {
			log = log.WithField("user_id", userID)
		}

		status := c.Response().StatusCode()
		switch {
		case status >= 500:
			log.Error("Request failed: %s %s -> %d", c.Method(), c.Path(), status)
		case status >= 400:
			log.Warn("Request error: %s %s -> %d", c.Method(), c.Path(), status)
		default:
			log.Info("Request completed: %s %s -> %d", c.Method(), c.Path(), status)
		}

		return err
	}
}

// Recover middleware recovers from panics
func Recover() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var err error
		func() {
			defer func() {
				if r := recover(); r != nil {
					requestID, _ := c.Locals("request_id").(string)

					logger.WithFields(map[string]any{
						"request_id": requestID,
						"panic":      r,
						"path":       c.Path(),
						"method":     c.Method(),
						"stack":      string(debug.Stack()),
					}).Error("Panic recovered")

					err = response.Message(c, fiber.StatusInternalServerError, apperr.CodeInternalError)
				}
			}()
			err = c.Next()
		}()
		return err
	}
}
