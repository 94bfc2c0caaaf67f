// Package errs define custom error types and utilities.
//
// Handlers and services return *HTTPError values instead of aborting, and
// the global error handler translates them into a status code and the
// `{"error": "<message>"}` body every client sees.
package errs
