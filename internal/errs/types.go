package errs

import (
	"net/http"
	"strings"
)

// FieldError represents a field-level validation error.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the error kind returned by every request-handling layer.
//
// Code is a machine-friendly identifier used in logs and traces. Only
// Message (and Errors, when present) reach the response body.
type HTTPError struct {
	Code    string
	Message string
	Status  int

	// Override marks messages safe to show to clients verbatim. Other
	// messages are only logged.
	Override bool

	// Errors holds field-level validation errors.
	Errors []FieldError
}

// Response is the JSON body written for every error.
type Response struct {
	Error  string       `json:"error"`
	Errors []FieldError `json:"errors,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError, so errors.Is can be used to
// tell request errors apart from storage faults.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// Public returns the error as clients may see it. Server errors and
// messages not marked Override are replaced by the status text.
func (e *HTTPError) Public() *HTTPError {
	if e.Override && e.Status < http.StatusInternalServerError {
		return e
	}
	return &HTTPError{
		Code:    e.Code,
		Message: http.StatusText(e.Status),
		Status:  e.Status,
	}
}

// Response returns the wire representation of e.
func (e *HTTPError) Response() Response {
	return Response{Error: e.Message, Errors: e.Errors}
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
