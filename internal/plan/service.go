package plan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service manages the investment plan catalog.
type Service struct {
	repo Repository
}

// NewService builds a catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures a new plan definition. Amounts are paise, the return
// is basis points over the whole term.
type CreateInput struct {
	Name              string
	MinAmount         int64
	ReturnBasisPoints int64
	DurationDays      int
	Active            bool
}

// Create validates and stores a new plan.
func (s *Service) Create(ctx context.Context, input CreateInput) (Plan, error) {
	if input.Name == "" {
		return Plan{}, fmt.Errorf("%w: name is required", ErrInvalidPlan)
	}
	if input.MinAmount <= 0 {
		return Plan{}, fmt.Errorf("%w: minimum amount must be positive", ErrInvalidPlan)
	}
	if input.ReturnBasisPoints < 0 {
		return Plan{}, fmt.Errorf("%w: return cannot be negative", ErrInvalidPlan)
	}
	if input.DurationDays <= 0 {
		return Plan{}, fmt.Errorf("%w: duration must be positive", ErrInvalidPlan)
	}

	p := Plan{
		ID:                uuid.NewString(),
		Name:              input.Name,
		MinAmount:         input.MinAmount,
		ReturnBasisPoints: input.ReturnBasisPoints,
		DurationDays:      input.DurationDays,
		Active:            input.Active,
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Plan{}, err
	}
	return p, nil
}

// UpdateInput carries partial plan edits; nil fields keep their value.
type UpdateInput struct {
	Name              *string
	MinAmount         *int64
	ReturnBasisPoints *int64
	DurationDays      *int
	Active            *bool
}

// Update merges the provided fields into the stored plan. Open investments
// are unaffected; they carry their own frozen payout and end date.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (Plan, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Plan{}, err
	}

	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.MinAmount != nil {
		p.MinAmount = *input.MinAmount
	}
	if input.ReturnBasisPoints != nil {
		p.ReturnBasisPoints = *input.ReturnBasisPoints
	}
	if input.DurationDays != nil {
		p.DurationDays = *input.DurationDays
	}
	if input.Active != nil {
		p.Active = *input.Active
	}

	if p.Name == "" {
		return Plan{}, fmt.Errorf("%w: name is required", ErrInvalidPlan)
	}
	if p.MinAmount <= 0 {
		return Plan{}, fmt.Errorf("%w: minimum amount must be positive", ErrInvalidPlan)
	}
	if p.ReturnBasisPoints < 0 {
		return Plan{}, fmt.Errorf("%w: return cannot be negative", ErrInvalidPlan)
	}
	if p.DurationDays <= 0 {
		return Plan{}, fmt.Errorf("%w: duration must be positive", ErrInvalidPlan)
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return Plan{}, err
	}
	return p, nil
}

// Get fetches a single plan.
func (s *Service) Get(ctx context.Context, id string) (Plan, error) {
	return s.repo.Get(ctx, id)
}

// ListActive returns plans open to new investments.
func (s *Service) ListActive(ctx context.Context) ([]Plan, error) {
	return s.repo.ListActive(ctx)
}

// List returns the whole catalog, including inactive plans.
func (s *Service) List(ctx context.Context) ([]Plan, error) {
	return s.repo.List(ctx)
}
