package http

import (
	"errors"
	"net/http"

	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// StatusFor maps a core error onto an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition), errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrGatewayUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, errs.ErrInvalidAction),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	code := StatusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.WithError(err).WithField("path", ctx.Path()).Error("Request failed")
		message = http.StatusText(code)
	}
	return ctx.JSON(code, Error{Code: code, Message: message})
}

func errorResponse(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}
