package plan

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/rupee-vest/rupee_vest/internal/money"
)

var validate = validator.New()

// Handler exposes the plan catalog: a public listing for investors and
// create/update endpoints for admins.
type Handler struct {
	service *Service
}

// NewHandler builds a plan handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Name            string  `json:"name" validate:"required"`
	MinAmountRupees float64 `json:"min_amount_rupees" validate:"required,gt=0"`
	ReturnPercent   float64 `json:"return_percent" validate:"gte=0"`
	DurationDays    int     `json:"duration_days" validate:"required,gt=0"`
	Active          *bool   `json:"active"`
}

type updateRequest struct {
	Name            *string  `json:"name"`
	MinAmountRupees *float64 `json:"min_amount_rupees"`
	ReturnPercent   *float64 `json:"return_percent"`
	DurationDays    *int     `json:"duration_days"`
	Active          *bool    `json:"active"`
}

type planResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	MinAmountPaise  int64   `json:"min_amount_paise"`
	MinAmountRupees float64 `json:"min_amount_rupees"`
	ReturnPercent   float64 `json:"return_percent"`
	DurationDays    int     `json:"duration_days"`
	Active          bool    `json:"active"`
	CreatedAt       string  `json:"created_at"`
}

func toResponse(p Plan) planResponse {
	return planResponse{
		ID:              p.ID,
		Name:            p.Name,
		MinAmountPaise:  p.MinAmount,
		MinAmountRupees: money.PaiseToRupees(p.MinAmount),
		ReturnPercent:   money.BasisPointsToPercent(p.ReturnBasisPoints),
		DurationDays:    p.DurationDays,
		Active:          p.Active,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
	}
}

// ListActive returns the plans currently open to new investments.
func (h *Handler) ListActive(c *fiber.Ctx) error {
	plans, err := h.service.ListActive(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	out := make([]planResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, toResponse(p))
	}
	return c.Status(http.StatusOK).JSON(out)
}

// List returns the whole catalog, inactive plans included. Admin only.
func (h *Handler) List(c *fiber.Ctx) error {
	plans, err := h.service.List(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	out := make([]planResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, toResponse(p))
	}
	return c.Status(http.StatusOK).JSON(out)
}

// Create adds a plan to the catalog. Admin only. New plans default to active.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	p, err := h.service.Create(c.UserContext(), CreateInput{
		Name:              req.Name,
		MinAmount:         money.RupeesToPaise(req.MinAmountRupees),
		ReturnBasisPoints: money.PercentToBasisPoints(req.ReturnPercent),
		DurationDays:      req.DurationDays,
		Active:            active,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidPlan) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(toResponse(p))
}

// Update merges partial edits into a plan. Admin only. Open investments keep
// their frozen terms regardless.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	input := UpdateInput{
		Name:         req.Name,
		DurationDays: req.DurationDays,
		Active:       req.Active,
	}
	if req.MinAmountRupees != nil {
		min := money.RupeesToPaise(*req.MinAmountRupees)
		input.MinAmount = &min
	}
	if req.ReturnPercent != nil {
		bp := money.PercentToBasisPoints(*req.ReturnPercent)
		input.ReturnBasisPoints = &bp
	}

	p, err := h.service.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrInvalidPlan):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusOK).JSON(toResponse(p))
}
