package serverutils

import (
	"github.com/gofiber/fiber/v2"
)

// AppError is the single error shape services return. The HTTP layer renders
// Message verbatim; Err carries the diagnostic detail and is only ever
// logged, never sent to the client.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewInvalidPayload rejects a malformed request before any external call.
func NewInvalidPayload() *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Message: "Invalid payload"}
}

// NewConfigurationError reports a required credential or setting being
// absent. Not retried.
func NewConfigurationError(message string) *AppError {
	return &AppError{Status: fiber.StatusInternalServerError, Message: message}
}

// NewGatewayUnavailable wraps an upstream completion failure behind a static
// client-facing message.
func NewGatewayUnavailable(err error) *AppError {
	return &AppError{Status: fiber.StatusInternalServerError, Message: "Failed to fetch AI guidance", Err: err}
}

// NewWriteFailure wraps a persistence write failure. Reads never produce
// this; they degrade to an empty journey instead.
func NewWriteFailure(err error) *AppError {
	return &AppError{Status: fiber.StatusInternalServerError, Message: "Save failed", Err: err}
}

// NewNotFound reports a missing resource with a static message.
func NewNotFound(message string) *AppError {
	return &AppError{Status: fiber.StatusNotFound, Message: message}
}
