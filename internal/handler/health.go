package handler // declare the package name; contains HTTP handlers

import (
    "context"
    "net/http" // net/http provides status codes and response helpers

    "github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Check probes one dependency; nil means healthy.
type Check func(ctx context.Context) error

// HealthHandler is the health‑check endpoint used by load balancers and
// monitoring systems.  Each named check runs on every call; any failure
// turns the response into a 503 naming the broken dependency.
type HealthHandler struct {
    Checks map[string]Check
}

func NewHealthHandler(checks map[string]Check) *HealthHandler {
    return &HealthHandler{Checks: checks}
}

// Health handles GET /healthz.
func (h *HealthHandler) Health(c echo.Context) error {
    ctx, cancel := withTimeout(c)
    defer cancel()

    status := http.StatusOK
    results := make(map[string]string, len(h.Checks))
    for name, check := range h.Checks {
        if err := check(ctx); err != nil {
            results[name] = err.Error()
            status = http.StatusServiceUnavailable
            continue
        }
        results[name] = "ok"
    }
    body := echo.Map{"status": "ok"}
    if status != http.StatusOK {
        body["status"] = "degraded"
    }
    if len(results) > 0 {
        body["checks"] = results
    }
    return c.JSON(status, body)
}
