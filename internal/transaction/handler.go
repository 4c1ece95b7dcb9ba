package transaction

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/rupee-vest/rupee_vest/internal/ledger"
	"github.com/rupee-vest/rupee_vest/internal/money"
)

var validate = validator.New()

// Handler exposes deposit/withdraw request endpoints plus the admin queue.
type Handler struct {
	service *Service
}

// NewHandler builds a transaction handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type amountRequest struct {
	AmountRupees float64 `json:"amount_rupees" validate:"required,gt=0"`
}

type transactionResponse struct {
	ID           string  `json:"id"`
	AccountID    string  `json:"account_id"`
	Kind         string  `json:"kind"`
	AmountPaise  int64   `json:"amount_paise"`
	AmountRupees float64 `json:"amount_rupees"`
	Status       string  `json:"status"`
	Note         string  `json:"note,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func toResponse(t Transaction) transactionResponse {
	return transactionResponse{
		ID:           t.ID,
		AccountID:    t.AccountID,
		Kind:         t.Kind,
		AmountPaise:  t.Amount,
		AmountRupees: money.PaiseToRupees(t.Amount),
		Status:       t.Status,
		Note:         t.Note,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
	}
}

// RequestDeposit files a pending deposit request for the caller.
func (h *Handler) RequestDeposit(c *fiber.Ctx) error {
	return h.request(c, h.service.RequestDeposit)
}

// RequestWithdraw files a pending withdraw request for the caller.
func (h *Handler) RequestWithdraw(c *fiber.Ctx) error {
	return h.request(c, h.service.RequestWithdraw)
}

func (h *Handler) request(c *fiber.Ctx, file func(ctx context.Context, accountID string, amount int64) (Transaction, error)) error {
	accountID, _ := c.Locals("account_id").(string)

	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid amount")
	}

	t, err := file(c.UserContext(), accountID, money.RupeesToPaise(req.AmountRupees))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ledger.ErrInsufficientFunds):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusCreated).JSON(toResponse(t))
}

// List returns the caller's transaction history, newest first.
func (h *Handler) List(c *fiber.Ctx) error {
	accountID, _ := c.Locals("account_id").(string)

	list, err := h.service.ListByAccount(c.UserContext(), accountID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	out := make([]transactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toResponse(t))
	}
	return c.Status(http.StatusOK).JSON(out)
}

// ListPending returns every pending request. Admin only.
func (h *Handler) ListPending(c *fiber.Ctx) error {
	list, err := h.service.ListPending(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	out := make([]transactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toResponse(t))
	}
	return c.Status(http.StatusOK).JSON(out)
}

// ApproveDeposit approves a pending deposit request. Admin only.
func (h *Handler) ApproveDeposit(c *fiber.Ctx) error {
	return h.approve(c, KindDeposit)
}

// ApproveWithdraw approves a pending withdraw request. Admin only.
func (h *Handler) ApproveWithdraw(c *fiber.Ctx) error {
	return h.approve(c, KindWithdraw)
}

// RejectDeposit rejects a pending deposit request. Admin only.
func (h *Handler) RejectDeposit(c *fiber.Ctx) error {
	return h.reject(c, KindDeposit)
}

// RejectWithdraw rejects a pending withdraw request. Admin only.
func (h *Handler) RejectWithdraw(c *fiber.Ctx) error {
	return h.reject(c, KindWithdraw)
}

func (h *Handler) approve(c *fiber.Ctx, kind string) error {
	t, balance, err := h.service.Approve(c.UserContext(), c.Params("id"), kind)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrAlreadyResolved):
			return fiber.NewError(http.StatusConflict, err.Error())
		case errors.Is(err, ledger.ErrInsufficientFunds):
			return fiber.NewError(http.StatusBadRequest, "user balance cannot cover the withdrawal")
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"transaction":    toResponse(t),
		"balance_paise":  balance,
		"balance_rupees": money.PaiseToRupees(balance),
	})
}

func (h *Handler) reject(c *fiber.Ctx, kind string) error {
	t, err := h.service.Reject(c.UserContext(), c.Params("id"), kind)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrAlreadyResolved):
			return fiber.NewError(http.StatusConflict, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusOK).JSON(toResponse(t))
}
