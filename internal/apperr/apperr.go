// Package apperr defines the error taxonomy shared by the service and handler
// layers. Services wrap these sentinels with context; handlers map them to
// HTTP status codes without inspecting anything else.
package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	// ErrValidation covers missing reference ids and violated cross-entity
	// consistency rules. Always user-visible.
	ErrValidation = errors.New("validation failed")

	// ErrAuthentication means session validation failed and the caller must
	// re-authenticate.
	ErrAuthentication = errors.New("authentication required")

	// ErrAuthorization means the resolved owner does not match the caller.
	// The actual owner is never included.
	ErrAuthorization = errors.New("forbidden")

	// ErrNotFound covers a missing resource or a missing required parent.
	ErrNotFound = errors.New("not found")

	// ErrInternal covers collaborator I/O failures. Surfaced generically.
	ErrInternal = errors.New("internal error")
)

// StatusCode maps an error to the HTTP status the handlers respond with.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrAuthentication):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrAuthorization):
		return fiber.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
