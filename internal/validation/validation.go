// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules defined in struct tags on
// path parameters, and decodes JSON object bodies into the untyped maps the
// entity field tables consume.
package validation
