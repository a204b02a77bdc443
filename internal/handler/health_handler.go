package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check requests. With all state in
// process memory there is no dependency to probe; the check reports
// liveness and uptime.
type HealthHandler struct {
	started time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{started: time.Now()}
}

// Check returns 200 OK with {"status": "healthy"} and process uptime.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":         "healthy",
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	})
}
