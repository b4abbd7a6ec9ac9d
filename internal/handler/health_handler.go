package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lingo/backend/internal/service"
)

type HealthHandler struct {
	service service.HealthService
}

func NewHealthHandler(service service.HealthService) *HealthHandler {
	return &HealthHandler{service: service}
}

func (h *HealthHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/health", h.Health)
}

// Health reports the last upstream probe.
// @Summary Upstream health
// @Description Report the outcome of the last upstream probe. Healthy until the first probe fails.
// @Tags health
// @Produce json
// @Success 200 {object} model.HealthStatus
// @Failure 503 {object} model.HealthStatus
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	status := h.service.Status()
	if !status.Healthy {
		return c.JSON(http.StatusServiceUnavailable, status)
	}
	return c.JSON(http.StatusOK, status)
}
