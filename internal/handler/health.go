package handler

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/deppfellow/hbnb-api/internal/middleware"
	"github.com/deppfellow/hbnb-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// HealthHandler reports whether the process and its configured dependencies
// are reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type HealthCheck struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Storage     string                 `json:"storage"`
	Checks      map[string]HealthCheck `json:"checks"`
}

// enabled reports whether the named dependency check should run.
func (h *HealthHandler) enabled(name string) bool {
	obs := h.server.Config.Observability
	if obs == nil {
		return true
	}
	return obs.HealthChecks.Enabled && slices.Contains(obs.HealthChecks.Checks, name)
}

func (h *HealthHandler) timeout() time.Duration {
	if obs := h.server.Config.Observability; obs != nil && obs.HealthChecks.Timeout > 0 {
		return obs.HealthChecks.Timeout
	}
	return 5 * time.Second
}

func (h *HealthHandler) run(ctx context.Context, logger zerolog.Logger, name string, ping func(context.Context) error) (HealthCheck, bool) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout())
	defer cancel()

	start := time.Now()
	err := ping(ctx)
	elapsed := time.Since(start)

	if err != nil {
		logger.Error().
			Err(err).
			Str("check", name).
			Dur("response_time", elapsed).
			Msg("health check failed")

		if app := h.server.LoggerService.GetApplication(); app != nil {
			app.RecordCustomEvent("HealthCheckError", map[string]any{
				"check_type":       name,
				"operation":        "health_check",
				"error_type":       name + "_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
		}

		return HealthCheck{Status: "unhealthy", ResponseTime: elapsed.String(), Error: err.Error()}, false
	}

	logger.Debug().
		Str("check", name).
		Dur("response_time", elapsed).
		Msg("health check passed")

	return HealthCheck{Status: "healthy", ResponseTime: elapsed.String()}, true
}

// CheckHealth answers 200 when every enabled check passes and 503 otherwise.
// A Redis failure is reported but does not make the API unhealthy.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := HealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Storage:     h.server.Config.Storage.Type,
		Checks:      map[string]HealthCheck{},
	}
	healthy := true
	ctx := c.Request().Context()

	if h.server.DB != nil && h.enabled("database") {
		check, ok := h.run(ctx, logger, "database", h.server.DB.Pool.Ping)
		response.Checks["database"] = check
		healthy = healthy && ok
	}

	if h.server.Redis != nil && h.enabled("redis") {
		check, _ := h.run(ctx, logger, "redis", func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
		response.Checks["redis"] = check
	}

	if !healthy {
		response.Status = "unhealthy"
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	return c.JSON(http.StatusOK, response)
}
