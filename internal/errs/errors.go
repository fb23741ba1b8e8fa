package errs

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Sentinel error kinds for the evaluation pipeline. Components wrap the
// underlying cause with fmt.Errorf("...: %w", ...) so callers can match the
// kind with errors.Is while keeping the original message.
var (
	ErrValidation        = errors.New("validation failed")
	ErrExtraction        = errors.New("failed to extract resume text")
	ErrTransport         = errors.New("model endpoint request failed")
	ErrMalformedResponse = errors.New("model returned malformed response")
	ErrModelContract     = errors.New("model response violates match contract")
	ErrPersistence       = errors.New("failed to persist evaluation")
	ErrNotFound          = errors.New("not found")
	ErrFileGone          = errors.New("file no longer exists on server")
)

// HTTPStatus maps an error kind to the status code the API surface reports.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrFileGone):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
