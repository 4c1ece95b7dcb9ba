package routes

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rupee-vest/rupee_vest/internal/identity"
	"github.com/rupee-vest/rupee_vest/internal/ledger"
	"github.com/rupee-vest/rupee_vest/internal/money"
	"github.com/rupee-vest/rupee_vest/internal/plan"
	"github.com/rupee-vest/rupee_vest/internal/transaction"
)

// RegisterAdminRoutes wires the approval queue, plan management and the
// account overview. The group must already enforce the admin flag.
func RegisterAdminRoutes(r fiber.Router, tx *transaction.Handler, plans *plan.Handler, ids *identity.Service, led ledger.Ledger) {
	r.Get("/pending", tx.ListPending)
	r.Post("/deposits/:id/approve", tx.ApproveDeposit)
	r.Post("/deposits/:id/reject", tx.RejectDeposit)
	r.Post("/withdrawals/:id/approve", tx.ApproveWithdraw)
	r.Post("/withdrawals/:id/reject", tx.RejectWithdraw)

	r.Get("/plans", plans.List)
	r.Post("/plans", plans.Create)
	r.Patch("/plans/:id", plans.Update)

	r.Get("/accounts", func(c *fiber.Ctx) error {
		users, err := ids.List(c.UserContext())
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}

		balances, err := led.Balances(c.UserContext())
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		byAccount := make(map[string]int64, len(balances))
		for _, b := range balances {
			byAccount[b.AccountID] = b.Balance
		}

		out := make([]fiber.Map, 0, len(users))
		for _, u := range users {
			out = append(out, fiber.Map{
				"account_id":     u.ID,
				"username":       u.Username,
				"admin":          u.Admin,
				"balance_paise":  byAccount[u.ID],
				"balance_rupees": money.PaiseToRupees(byAccount[u.ID]),
				"created_at":     u.CreatedAt.Format(time.RFC3339),
			})
		}
		return c.Status(http.StatusOK).JSON(out)
	})
}
