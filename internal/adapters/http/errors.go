package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/astromicai/astromic-app-sub000/internal/core/domain"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // bad_request, boundary_error, not_found, internal_error, ...
	Message   string `json:"message"` // Human-readable message
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusNotFound, "not_found", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, "internal_error", msg)
}

// errUnavailable returns a 503 error.
func errUnavailable(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusServiceUnavailable, "unavailable", msg)
}

// errBoundary returns a 422 naming the offending input.
func errBoundary(c *fiber.Ctx, be *domain.BoundaryError) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(fiber.StatusUnprocessableEntity).JSON(APIError{
		Status:    fiber.StatusUnprocessableEntity,
		Code:      "boundary_error",
		Message:   be.Error(),
		Field:     be.Field,
		RequestID: reqID,
	})
}

// errFromService maps chart service errors onto HTTP responses.
func errFromService(c *fiber.Ctx, err error) error {
	var be *domain.BoundaryError
	switch {
	case errors.As(err, &be):
		return errBoundary(c, be)
	case errors.Is(err, domain.ErrChartNotFound):
		return errNotFound(c, err.Error())
	case errors.Is(err, domain.ErrStorageUnavailable):
		return errUnavailable(c, err.Error())
	default:
		LoggerFromCtx(c.UserContext()).Error("chart request failed", "error", err)
		return errInternal(c, "chart computation failed")
	}
}
