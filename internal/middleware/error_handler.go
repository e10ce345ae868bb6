package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ticketly/ticket-service/internal/dto"
	"github.com/ticketly/ticket-service/internal/service"
)

// ErrorHandler renders every error as the API's JSON error body. Handlers map
// domain sentinels themselves; the sentinel cases here are the safety net for
// errors that escape a handler unmapped, so a raw service error never surfaces
// as a bare 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTransactionNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidDiscount):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrInsufficientSeats),
		errors.Is(err, service.ErrInvalidStateTransition),
		errors.Is(err, service.ErrUsernameTaken):
		code = http.StatusConflict
	case errors.Is(err, service.ErrNotAuthorized):
		code = http.StatusForbidden
	case errors.Is(err, service.ErrTransactionExpired),
		errors.Is(err, service.ErrResetTokenExpired):
		code = http.StatusGone
	case errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, service.ErrInvalidResetToken):
		code = http.StatusUnauthorized
	}

	if code >= http.StatusInternalServerError {
		slog.Error("unhandled request error",
			"method", c.Request().Method, "uri", c.Request().RequestURI, "error", err)
	}

	_ = c.JSON(code, dto.ErrorResponse{Message: msg})
}
