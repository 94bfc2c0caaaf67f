package sqlerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/hbnb-api/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode reports the Code of err, or Other when err is not an *Error.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return Other
}

// ConvertPgError converts a raw Postgres error into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode builds <DOMAIN>_<ACTION>, e.g. PLACE_REQUIRED.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "IES") {
		domain = strings.TrimSuffix(domain, "IES") + "Y"
	} else if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidText:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// humanizeText turns snake_case into Title Case.
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// HandleError converts a storage error into an *errs.HTTPError.
//
//   - *errs.HTTPError passes through unchanged.
//   - A foreign key violation means the referenced entity is gone: 404.
//   - Unique, not-null, check and text representation violations: 400.
//   - pgx.ErrNoRows: 404.
//   - Everything else: 500.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewNotFoundError(errs.NotFoundMessage, true, &errorCode)

		case UniqueViolation:
			return errs.NewBadRequestError("Duplicate "+strings.ToLower(sqlErr.ColumnName), true, &errorCode, nil)

		case NotNullViolation:
			field := strings.ToLower(sqlErr.ColumnName)
			return errs.NewBadRequestError("Missing "+field, true, &errorCode, []errs.FieldError{
				{Field: field, Error: "is required"},
			})

		case CheckViolation, InvalidText:
			field := humanizeText(sqlErr.ColumnName)
			if field == "" {
				field = "value"
			}
			return errs.NewBadRequestError("Invalid "+strings.ToLower(field), true, &errorCode, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return errs.NotFound()
	}

	return errs.NewInternalServerError()
}
