package errs

import "net/http"

// NotFoundMessage is the body message of every 404.
const NotFoundMessage = "Not found"

// NotAJSONMessage is reported when a request body is absent or is not a
// JSON object.
const NotAJSONMessage = "Not a JSON"

func newHTTPError(status int, message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message:  message,
		Status:   status,
		Override: override,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
// The optional code replaces the default NOT_FOUND code.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	err := newHTTPError(http.StatusNotFound, message, override)
	if code != nil {
		err.Code = *code
	}
	return err
}

// NotFound is the error for an entity id that does not resolve.
func NotFound() *HTTPError {
	return NewNotFoundError(NotFoundMessage, true, nil)
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	err := newHTTPError(http.StatusBadRequest, message, override)
	if code != nil {
		err.Code = *code
	}
	err.Errors = errors
	return err
}

// NotAJSON is the error for a missing or unparseable request body.
func NotAJSON() *HTTPError {
	code := "NOT_A_JSON"
	return NewBadRequestError(NotAJSONMessage, true, &code, nil)
}

// MissingField is the error for an absent required payload field.
func MissingField(field string) *HTTPError {
	code := "MISSING_FIELD"
	return NewBadRequestError("Missing "+field, true, &code, nil)
}

// InvalidField is the error for a payload value of the wrong type.
func InvalidField(field string, cause error) *HTTPError {
	code := "INVALID_FIELD"
	return NewBadRequestError("Invalid "+field, true, &code, []FieldError{
		{Field: field, Error: cause.Error()},
	})
}

// NewMethodNotAllowedError creates a 405 HTTPError.
func NewMethodNotAllowedError() *HTTPError {
	return newHTTPError(http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), false)
}

// NewTooManyRequestsError creates a 429 HTTPError.
func NewTooManyRequestsError() *HTTPError {
	return newHTTPError(http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests), false)
}

// NewInternalServerError creates a 500 HTTPError.
//
// The message is the generic status text; the underlying cause is only
// logged.
func NewInternalServerError() *HTTPError {
	return newHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), false)
}
