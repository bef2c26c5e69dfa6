package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler serves liveness and version endpoints.
type HealthHandler struct {
	version string
}

// NewHealthHandler creates a health handler reporting the given version.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

// Health godoc
// @Summary Liveness probe
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Version godoc
// @Summary Application version
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]string
// @Router /version [get]
func (h *HealthHandler) Version(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"version": h.version})
}
