package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rupee-vest/rupee_vest/internal/transaction"
)

// RegisterTransactionRoutes wires the caller's deposit/withdraw requests and
// transaction history.
func RegisterTransactionRoutes(r fiber.Router, h *transaction.Handler) {
	r.Post("/deposits", h.RequestDeposit)
	r.Post("/withdrawals", h.RequestWithdraw)
	r.Get("/transactions", h.List)
}
