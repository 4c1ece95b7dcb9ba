package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rupee-vest/rupee_vest/internal/plan"
)

// RegisterPlanRoutes wires the investor-facing plan catalog.
func RegisterPlanRoutes(r fiber.Router, h *plan.Handler) {
	r.Get("/plans", h.ListActive)
}
