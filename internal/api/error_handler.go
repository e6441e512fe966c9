package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/consultia/expense-system/internal/core/domain"
)

// NewErrorHandler maps domain sentinel errors to HTTP statuses in one place
// so handlers just return service errors. Unknown errors are logged and
// surfaced as a generic 500.
func NewErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg, ok := he.Message.(string)
			if !ok {
				msg = http.StatusText(he.Code)
			}
			_ = c.JSON(he.Code, map[string]string{"error": msg})
			return
		}

		status := statusFor(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("request failed")
			_ = c.JSON(status, map[string]string{"error": "internal server error"})
			return
		}

		_ = c.JSON(status, map[string]string{"error": err.Error()})
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrConsultantNotFound),
		errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, domain.ErrExpenseNotFound),
		errors.Is(err, domain.ErrLogoNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrEmailInUse),
		errors.Is(err, domain.ErrAlreadyReviewed),
		errors.Is(err, domain.ErrConsultantNotAssigned):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
