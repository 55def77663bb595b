// Package response holds the wire shapes shared by all handlers: entities
// are serialized directly, list endpoints page through usecase.Page, and
// errors carry a single message field.
package response

import "github.com/labstack/echo/v4"

// MessageBody is the error and confirmation payload.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON writes the payload as-is.
func JSON(c echo.Context, code int, data any) error {
	return c.JSON(code, data)
}

// Message writes a `{message}` body, used for confirmations and by the
// error handler for every failure.
func Message(c echo.Context, code int, message string) error {
	return c.JSON(code, MessageBody{Message: message})
}
