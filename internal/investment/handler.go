package investment

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/rupee-vest/rupee_vest/internal/ledger"
	"github.com/rupee-vest/rupee_vest/internal/money"
	"github.com/rupee-vest/rupee_vest/internal/plan"
)

var validate = validator.New()

// Handler exposes the investment lifecycle over HTTP.
type Handler struct {
	service *Service
}

// NewHandler builds an investment handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type openRequest struct {
	PlanID       string  `json:"plan_id" validate:"required"`
	AmountRupees float64 `json:"amount_rupees" validate:"required,gt=0"`
}

type investmentResponse struct {
	ID           string  `json:"id"`
	PlanID       string  `json:"plan_id"`
	PlanName     string  `json:"plan_name,omitempty"`
	AmountPaise  int64   `json:"amount_paise"`
	AmountRupees float64 `json:"amount_rupees"`
	PayoutPaise  int64   `json:"payout_paise"`
	PayoutRupees float64 `json:"payout_rupees"`
	StartAt      string  `json:"start_at"`
	EndAt        string  `json:"end_at"`
	Status       string  `json:"status"`
	Matured      bool    `json:"matured"`
}

func toResponse(inv Investment, planName string, matured bool) investmentResponse {
	return investmentResponse{
		ID:           inv.ID,
		PlanID:       inv.PlanID,
		PlanName:     planName,
		AmountPaise:  inv.Amount,
		AmountRupees: money.PaiseToRupees(inv.Amount),
		PayoutPaise:  inv.Payout,
		PayoutRupees: money.PaiseToRupees(inv.Payout),
		StartAt:      inv.StartAt.Format(time.RFC3339),
		EndAt:        inv.EndAt.Format(time.RFC3339),
		Status:       inv.Status,
		Matured:      matured,
	}
}

// Open locks the caller's funds into a plan.
func (h *Handler) Open(c *fiber.Ctx) error {
	accountID, _ := c.Locals("account_id").(string)

	var req openRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "plan id and a positive amount are required")
	}

	inv, err := h.service.Open(c.UserContext(), accountID, req.PlanID, money.RupeesToPaise(req.AmountRupees))
	if err != nil {
		switch {
		case errors.Is(err, plan.ErrNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, plan.ErrInactive), errors.Is(err, ErrBelowMinimum), errors.Is(err, ledger.ErrInsufficientFunds):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusCreated).JSON(toResponse(inv, "", false))
}

// List returns the caller's investments, newest first, with maturity flags.
func (h *Handler) List(c *fiber.Ctx) error {
	accountID, _ := c.Locals("account_id").(string)

	views, err := h.service.List(c.UserContext(), accountID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	out := make([]investmentResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toResponse(v.Investment, v.PlanName, v.Matured))
	}
	return c.Status(http.StatusOK).JSON(out)
}

// Claim pays out a matured investment owned by the caller.
func (h *Handler) Claim(c *fiber.Ctx) error {
	accountID, _ := c.Locals("account_id").(string)

	inv, balance, err := h.service.Claim(c.UserContext(), accountID, c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrAlreadyClaimed):
			return fiber.NewError(http.StatusConflict, err.Error())
		case errors.Is(err, ErrNotMatured):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"investment":     toResponse(inv, "", true),
		"balance_paise":  balance,
		"balance_rupees": money.PaiseToRupees(balance),
	})
}
