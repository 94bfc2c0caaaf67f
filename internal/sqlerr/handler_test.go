package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/hbnb-api/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTP(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleErrorPassesHTTPErrorThrough(t *testing.T) {
	in := errs.MissingField("name")
	assert.Same(t, in, HandleError(in))
}

func TestHandleErrorForeignKeyIsNotFound(t *testing.T) {
	err := fmt.Errorf("insert place: %w", &pgconn.PgError{
		Code:      "23503",
		Severity:  "ERROR",
		TableName: "places",
	})

	httpErr := asHTTP(t, HandleError(err))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, errs.NotFoundMessage, httpErr.Message)
	assert.Equal(t, "PLACE_NOT_FOUND", httpErr.Code)
	assert.Equal(t, ForeignKeyViolation, ErrCode(ConvertPgError(&pgconn.PgError{Code: "23503"})))
}

func TestHandleErrorNotNullIsBadRequest(t *testing.T) {
	err := &pgconn.PgError{Code: "23502", TableName: "cities", ColumnName: "name"}

	httpErr := asHTTP(t, HandleError(err))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Missing name", httpErr.Message)
	assert.Equal(t, "CITY_REQUIRED", httpErr.Code)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "name", httpErr.Errors[0].Field)
}

func TestHandleErrorNoRows(t *testing.T) {
	httpErr := asHTTP(t, HandleError(pgx.ErrNoRows))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestHandleErrorUnknownIsInternal(t *testing.T) {
	httpErr := asHTTP(t, HandleError(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)

	httpErr = asHTTP(t, HandleError(&pgconn.PgError{Code: "XX000"}))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestMapSeverityDefaultsToError(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityError, MapSeverity("weird"))
}
