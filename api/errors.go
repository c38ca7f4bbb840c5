package api

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrNetwork marks failures that never reached the backend (DNS, refused
// connection, timeout). Callers show "unable to connect" instead of a
// server-error message.
var ErrNetwork = errors.New("unable to connect")

// Error is the backend's error envelope: { message, errors?: {field: [..]} }.
// 422 carries field-level errors, everything else just the message.
type Error struct {
	StatusCode int
	Message    string
	Fields     map[string][]string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.StatusCode)
}

func (e *Error) IsValidation() bool { return e.StatusCode == http.StatusUnprocessableEntity }

func (e *Error) IsUnauthorized() bool { return e.StatusCode == http.StatusUnauthorized }

func (e *Error) IsForbidden() bool { return e.StatusCode == http.StatusForbidden }

func (e *Error) IsNotFound() bool { return e.StatusCode == http.StatusNotFound }

func (e *Error) IsRateLimited() bool { return e.StatusCode == http.StatusTooManyRequests }

func (e *Error) IsServer() bool { return e.StatusCode >= 500 }

func decodeError(status int, raw []byte) *Error {
	var env struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	_ = json.Unmarshal(raw, &env)
	return &Error{StatusCode: status, Message: env.Message, Fields: env.Errors}
}

// UserMessage maps any error from this package onto the message the user
// should see. The server's own message wins whenever there is one.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNetwork) {
		return "Unable to connect. Check your internet connection."
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.IsRateLimited():
			return "Too many requests. Please try again later."
		case apiErr.IsServer():
			return "Something went wrong on our end. Please try again later."
		case apiErr.Message != "":
			return apiErr.Message
		case apiErr.IsNotFound():
			return "Resource not found."
		}
		return http.StatusText(apiErr.StatusCode)
	}
	return err.Error()
}

// FieldErrors pulls the 422 field map out of err, or nil.
func FieldErrors(err error) map[string][]string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.IsValidation() {
		return apiErr.Fields
	}
	return nil
}
