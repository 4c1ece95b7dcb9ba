package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rupee-vest/rupee_vest/internal/investment"
)

// RegisterInvestmentRoutes wires the investment lifecycle endpoints.
func RegisterInvestmentRoutes(r fiber.Router, h *investment.Handler) {
	r.Post("/investments", h.Open)
	r.Get("/investments", h.List)
	r.Post("/investments/:id/claim", h.Claim)
}
