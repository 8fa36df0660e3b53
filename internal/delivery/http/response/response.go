// Package response renders the JSON envelope shared by every endpoint. The
// shape is fixed so clients branch on success and the error code without
// string-matching messages.
package response

import (
	"net/http"

	deliverycontext "jobboard/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// Envelope is the body of every response. Failures carry a machine-readable
// error code next to the human message; the correlation id is echoed back so
// a client can quote it when reporting a failed login or refresh.
type Envelope struct {
	Success   bool       `json:"success"`
	Code      int        `json:"code"`
	Message   string     `json:"message"`
	RequestID string     `json:"requestId,omitempty"`
	Data      any        `json:"data,omitempty"`
	Error     *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo identifies a failure. Code is a stable identifier such as
// "UNAUTHORIZED" or "ACCOUNT_DISABLED"; Details may elaborate and is often
// empty on auth failures to avoid leaking account state.
type ErrorInfo struct {
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// Success writes a 2xx envelope.
func Success(c echo.Context, statusCode int, data any, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, Envelope{
		Success:   true,
		Code:      statusCode,
		Message:   message,
		RequestID: deliverycontext.GetRequestID(c),
		Data:      data,
	})
}

// Error writes a failure envelope.
func Error(c echo.Context, statusCode int, errorCode string, message string, details string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, Envelope{
		Success:   false,
		Code:      statusCode,
		Message:   message,
		RequestID: deliverycontext.GetRequestID(c),
		Error: &ErrorInfo{
			Code:    errorCode,
			Details: details,
		},
	})
}

// Shorthands for the statuses the auth surface returns.

// BadRequest rejects a request the server understood but refuses.
func BadRequest(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, "")
}

// BindingError rejects a payload that failed to bind or validate. Same
// status as BadRequest; kept separate so handlers read as intent.
func BindingError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, "")
}

// Unauthorized rejects a request lacking valid credentials.
func Unauthorized(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusUnauthorized, errorCode, message, "")
}

// Forbidden rejects an authenticated request lacking the required role or
// account state.
func Forbidden(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusForbidden, errorCode, message, "")
}
