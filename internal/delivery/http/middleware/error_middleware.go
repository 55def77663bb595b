package middleware

import (
	"log/slog"
	"net/http"

	domainerrors "estate/internal/domain/errors"
	"estate/internal/delivery/http/response"
	"estate/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware maps errors escaping the handlers onto the `{message}`
// error body.
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware is the constructor for ErrorMiddleware.
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{logger: logger}
}

// HandleHTTPError is installed as echo's HTTPErrorHandler.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if writeErr := response.Message(c, appErr.HTTPCode(), appErr.Message()); writeErr != nil {
			m.logger.Error("failed to write error response", "error", writeErr)
		}

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message, ok := httpErr.Message.(string)
		if !ok {
			message = http.StatusText(httpErr.Code)
		}
		if writeErr := response.Message(c, httpErr.Code, message); writeErr != nil {
			m.logger.Error("failed to write error response", "error", writeErr)
		}

		return
	}

	m.logger.Error("unhandled error",
		"error", err.Error(),
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
	)

	if writeErr := response.Message(c, http.StatusInternalServerError, "Internal server error"); writeErr != nil {
		m.logger.Error("failed to write error response", "error", writeErr)
	}
}
