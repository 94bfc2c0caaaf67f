// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as request correlation, request logging, CORS, rate limiting,
// panic recovery and the per-request storage session
package middleware
