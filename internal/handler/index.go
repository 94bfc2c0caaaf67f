package handler

import (
	"github.com/deppfellow/hbnb-api/internal/server"
	"github.com/deppfellow/hbnb-api/internal/service"
	"github.com/labstack/echo/v4"
)

type StatusResponse struct {
	Status string `json:"status"`
}

// IndexHandler serves /status and /stats.
type IndexHandler struct {
	Handler
	stats *service.StatsService
}

func NewIndexHandler(s *server.Server, stats *service.StatsService) *IndexHandler {
	return &IndexHandler{
		Handler: NewHandler(s),
		stats:   stats,
	}
}

func (h *IndexHandler) Status(c echo.Context, _ *NoParams) (*StatusResponse, error) {
	return &StatusResponse{Status: "OK"}, nil
}

func (h *IndexHandler) Stats(c echo.Context, _ *NoParams) (*service.Stats, error) {
	sess, err := session(c)
	if err != nil {
		return nil, err
	}
	return h.stats.Stats(c.Request().Context(), sess)
}
