// Package handler is the first layer after the router.
//
// It binds and validates path parameters, hands the request body decoder
// and the request's storage session to the service layer, and writes the
// JSON result. Errors are returned as-is for the global error handler.
package handler
