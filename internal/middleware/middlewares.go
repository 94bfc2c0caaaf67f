package middleware

import (
	"github.com/deppfellow/hbnb-api/internal/repository"
	"github.com/deppfellow/hbnb-api/internal/server"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Middlewares groups every middleware component used by the router.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers and the
	// global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer stores a request-scoped logger on each request.
	ContextEnhancer *ContextEnhancer

	Tracing   *TracingMiddleware
	RateLimit *RateLimitMiddleware

	// Session opens a storage session per request and always closes it.
	Session *SessionMiddleware
}

// NewMiddlewares constructs all middleware components. Tracing degrades to a
// no-op when New Relic is not configured.
func NewMiddlewares(s *server.Server, repos *repository.Repositories) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		RateLimit:       NewRateLimitMiddleware(s),
		Session:         NewSessionMiddleware(repos.Storage),
	}
}
