package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/deppfellow/hbnb-api/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request types that know how to validate
// themselves, usually by running validator.Struct on their tags.
type Validatable interface {
	Validate() error
}

var validate = validator.New()

// Struct runs the tag rules of v.
func Struct(v any) error {
	return validate.Struct(v)
}

// BindAndValidate binds path parameters into payload and validates it.
//
// Only path parameters are bound. The body is left untouched so the service
// can resolve the target entity first and a missing entity wins over a bad
// body.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := (&echo.DefaultBinder{}).BindPathParams(c, payload); err != nil {
		return errs.NewBadRequestError("Invalid path parameter", true, nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors)
	}

	return nil
}

// validateStruct calls v.Validate() and extracts field errors if validation fails.
func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error(), []errs.FieldError{}
	}

	for _, err := range validationErrors {
		field := strings.ToLower(err.Field())
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		case "printascii":
			msg = "must contain printable characters only"

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}

// DecodeObject reads the request body as a JSON object.
//
// An empty body, malformed JSON or any JSON value other than an object is
// reported as errs.NotAJSON. Numbers are kept as json.Number so integer
// fields do not round-trip through float64.
func DecodeObject(c echo.Context) (map[string]any, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, errs.NotAJSON()
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil, errs.NotAJSON()
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var payload map[string]any
	if err := decoder.Decode(&payload); err != nil {
		return nil, errs.NotAJSON()
	}
	if decoder.More() {
		return nil, errs.NotAJSON()
	}

	return payload, nil
}
