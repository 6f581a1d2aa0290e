package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/retail-kit/backoffice-console/internal/storage"
	"github.com/retail-kit/backoffice-console/internal/upstream"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	storage     storage.Store
	upstream    *upstream.Client
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, store storage.Store, client *upstream.Client) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, storage: store, upstream: client}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking dependencies.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	if err := h.storage.Ping(ctx); err != nil {
		depStatus["storage"] = err.Error()
		ready = false
	} else {
		depStatus["storage"] = "ok"
	}

	if err := h.upstream.Ping(ctx); err != nil {
		depStatus["upstream"] = err.Error()
		ready = false
	} else {
		depStatus["upstream"] = "ok"
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}
