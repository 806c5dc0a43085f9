package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Dependency is a named backing service probed by the readiness check.
type Dependency struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes and the legacy
// /check endpoint.
type HealthHandler struct {
	database Dependency
	deps     []Dependency
	timeout  time.Duration
}

// NewHealthHandler builds a HealthHandler. database backs /check; optional
// dependencies are only consulted by /health/ready.
func NewHealthHandler(database Dependency, deps ...Dependency) *HealthHandler {
	return &HealthHandler{database: database, deps: deps, timeout: 3 * time.Second}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Check handles GET /check to confirm the server answers and its database is reachable.
//
// @Summary      Server check
// @Tags         health
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      503  {object}  errorResponse
// @Router       /check [get]
func (h *HealthHandler) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.database.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Success: false, Error: "database unavailable"})
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Server running"})
}

// Liveness handles GET /health. It returns 200 immediately while the
// process is alive.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Readiness handles GET /health/ready. It checks every dependency before
// declaring the service ready.
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.deps)+1)
	healthy := true
	for _, d := range append([]Dependency{h.database}, h.deps...) {
		if err := d.Ping(ctx); err != nil {
			deps[d.Name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			continue
		}
		deps[d.Name] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
