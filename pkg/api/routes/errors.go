package routes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/source"
	"github.com/ecocitty/ecocitty/pkg/upstream"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ValidationError is a bad request parameter or body. It is always answered with a 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AccessError is a missing or rejected identity, answered with StatusCode (401 or 403).
type AccessError struct {
	StatusCode int
	Message    string
}

func (e *AccessError) Error() string {
	return e.Message
}

// PersistenceError wraps a failed insert or read of the store.
type PersistenceError struct {
	Kind string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to access %s: %s", e.Kind, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// requireParameters returns a ValidationError naming every parameter that is empty, in the
// order given.
func requireParameters(values map[string]string, names ...string) error {
	var missing []string
	for _, name := range names {
		if strings.TrimSpace(values[name]) == "" {
			missing = append(missing, name)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	return &ValidationError{Message: "Missing required parameters: " + strings.Join(missing, ", ")}
}

func sendData(c *fiber.Ctx, data any, provenance ctdf.DataProvenance) error {
	return c.JSON(ctdf.Envelope{
		Status: true,
		Data:   data,
		Source: provenance,
	})
}

// sendError maps err onto the status code convention of the API. Upstream failures and
// lookups without any data are answered with HTTP 200 and status false.
func sendError(c *fiber.Ctx, err error, provenance ctdf.DataProvenance) error {
	var validationError *ValidationError
	var configurationError *source.ConfigurationError
	var persistenceError *PersistenceError
	var accessError *AccessError

	statusCode := fiber.StatusOK
	message := err.Error()

	switch {
	case errors.As(err, &validationError):
		statusCode = fiber.StatusBadRequest
	case errors.As(err, &accessError):
		statusCode = accessError.StatusCode
	case errors.As(err, &configurationError):
		statusCode = fiber.StatusInternalServerError
		log.Error().Err(err).Str("path", c.Path()).Msg("Endpoint is not configured")
	case errors.As(err, &persistenceError):
		statusCode = fiber.StatusInternalServerError
		log.Error().Err(err).Str("path", c.Path()).Msg("Store operation failed")
	case errors.Is(err, dataaggregator.ErrNoData):
		message = "No data available for this request"
	case upstream.KindOf(err) != "":
		log.Warn().Err(err).Str("path", c.Path()).Msg("Upstream request failed")
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("Request failed")
	}

	c.SendStatus(statusCode)
	return c.JSON(ctdf.Envelope{
		Status: false,
		Data:   []any{},
		Source: provenance,
		Error:  message,
	})
}
