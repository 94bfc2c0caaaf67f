// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API routes,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/hbnb-api/internal/handler"
	"github.com/deppfellow/hbnb-api/internal/middleware"
	"github.com/deppfellow/hbnb-api/internal/repository"
	"github.com/deppfellow/hbnb-api/internal/server"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// NewRouter builds the Echo instance with the middleware chain and every
// route. Trailing slashes are stripped before routing, so /users/ and
// /users reach the same handler.
func NewRouter(s *server.Server, h *handler.Handlers, repos *repository.Repositories) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s, repos)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Pre(echoMiddleware.RemoveTrailingSlash())

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
		middlewares.RateLimit.Limit(),
		middlewares.Session.Open(),
	)

	registerSystemRoutes(router, h)
	registerIndexRoutes(router, h)
	registerResourceRoutes(router, h)

	return router
}
