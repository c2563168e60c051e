package utils

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the error envelope for all failure responses
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Error sends a JSON error response
func Error(c *fiber.Ctx, status int, err error, details ...interface{}) error {
	response := ErrorResponse{
		Success: false,
		Error:   http.StatusText(status),
		Message: err.Error(),
	}

	if len(details) > 0 {
		response.Details = details[0]
	}

	return c.Status(status).JSON(response)
}

// NotFound sends a 404 Not Found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, fiber.NewError(fiber.StatusNotFound, message))
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, fiber.NewError(fiber.StatusBadRequest, message))
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, fiber.NewError(fiber.StatusUnauthorized, message))
}

// ServiceUnavailable sends a 503 Service Unavailable response
func ServiceUnavailable(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusServiceUnavailable, fiber.NewError(fiber.StatusServiceUnavailable, message))
}

// InternalServerError sends a 500 Internal Server Error response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, fiber.NewError(fiber.StatusInternalServerError, message))
}
