// Package response renders the JSON envelope every endpoint returns. Success
// and failure share one shape so the dashboard client can switch on the
// success flag alone.
package response

import "github.com/gofiber/fiber/v2"

// Response is the reply envelope. Data carries the payload on success and
// Error the user-facing message on failure; the two are never set together.
// Error text must stay generic enough not to leak store internals or the
// existence of another tenant's rows.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success replies 200 with a payload
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created replies 201 after a resource write
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error replies with a failure envelope. Handlers normally reach it through
// the named helpers below.
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Error:   message,
	})
}

// BadRequest replies 400 for malformed bodies, validation failures, and
// workflow transitions the state table forbids
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized replies 401 for missing, expired, or tampered session tokens
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden replies 403 for role refusals and deactivated principals
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound replies 404, covering both absent rows and rows hidden by the
// caller's tenant scope
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Conflict replies 409 for unique-slot collisions, such as a duplicate
// registration or a taken clause code
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// InternalServerError replies 500 with a generic message; details stay in
// the server log
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
