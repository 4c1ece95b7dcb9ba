package routes

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rupee-vest/rupee_vest/internal/identity"
	"github.com/rupee-vest/rupee_vest/internal/ledger"
	"github.com/rupee-vest/rupee_vest/internal/money"
)

// RegisterWalletRoutes wires the caller's wallet and profile endpoints.
func RegisterWalletRoutes(r fiber.Router, ids *identity.Service, led ledger.Ledger) {
	r.Get("/wallet", func(c *fiber.Ctx) error {
		accountID, _ := c.Locals("account_id").(string)

		balance, err := led.Balance(c.UserContext(), accountID)
		if err != nil {
			if errors.Is(err, ledger.ErrWalletNotFound) {
				return fiber.NewError(http.StatusNotFound, err.Error())
			}
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}

		return c.Status(http.StatusOK).JSON(fiber.Map{
			"account_id":     accountID,
			"balance_paise":  balance,
			"balance_rupees": money.PaiseToRupees(balance),
		})
	})

	r.Get("/me", func(c *fiber.Ctx) error {
		accountID, _ := c.Locals("account_id").(string)

		user, err := ids.Get(c.UserContext(), accountID)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "account not found")
		}

		return c.Status(http.StatusOK).JSON(fiber.Map{
			"account_id": user.ID,
			"username":   user.Username,
			"admin":      user.Admin,
			"created_at": user.CreatedAt.Format(time.RFC3339),
		})
	})
}
