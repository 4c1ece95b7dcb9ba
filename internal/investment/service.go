package investment

import (
	"context"

	"github.com/google/uuid"

	"github.com/rupee-vest/rupee_vest/internal/clock"
	"github.com/rupee-vest/rupee_vest/internal/money"
	"github.com/rupee-vest/rupee_vest/internal/notification"
	"github.com/rupee-vest/rupee_vest/internal/plan"
)

// Service drives the investment lifecycle: open locks principal against a
// plan, claim releases the frozen payout once matured. There is no timer;
// maturity is evaluated lazily against the injected clock on every read.
type Service struct {
	repo     Repository
	plans    *plan.Service
	clk      clock.Clock
	notifier notification.Notifier
}

// NewService builds the lifecycle service.
func NewService(repo Repository, plans *plan.Service, clk clock.Clock, notifier notification.Notifier) *Service {
	if clk == nil {
		clk = clock.System()
	}
	return &Service{repo: repo, plans: plans, clk: clk, notifier: notifier}
}

// Open locks amount paise into the plan. The payout and end date are
// computed here, once, and frozen on the investment; the debit and the
// investment row are persisted as one atomic unit.
func (s *Service) Open(ctx context.Context, accountID, planID string, amount int64) (Investment, error) {
	p, err := s.plans.Get(ctx, planID)
	if err != nil {
		return Investment{}, err
	}
	if !p.Active {
		return Investment{}, plan.ErrInactive
	}
	if amount < p.MinAmount {
		return Investment{}, ErrBelowMinimum
	}

	now := s.clk.Now()
	inv := Investment{
		ID:        uuid.NewString(),
		AccountID: accountID,
		PlanID:    p.ID,
		Amount:    amount,
		Payout:    money.ApplyBasisPoints(amount, p.ReturnBasisPoints),
		StartAt:   now,
		EndAt:     now.AddDate(0, 0, p.DurationDays),
		Status:    StatusActive,
	}

	if err := s.repo.Open(ctx, inv); err != nil {
		return Investment{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Event{
			Kind:      notification.KindInvestmentOpened,
			AccountID: accountID,
			Amount:    amount,
			Reference: inv.ID,
		})
	}

	return inv, nil
}

// List returns the account's investments, newest first, each carrying its
// plan name and a maturity flag derived from one clock read so investments
// with identical end dates present identically within a single call.
func (s *Service) List(ctx context.Context, accountID string) ([]View, error) {
	invs, err := s.repo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	if plans, err := s.plans.List(ctx); err == nil {
		for _, p := range plans {
			names[p.ID] = p.Name
		}
	}

	now := s.clk.Now()
	out := make([]View, 0, len(invs))
	for _, inv := range invs {
		out = append(out, View{
			Investment: inv,
			PlanName:   names[inv.PlanID],
			Matured:    inv.Matured(now),
		})
	}
	return out, nil
}

// Claim pays out a matured investment exactly once. The credited amount is
// the payout frozen at open time. Returns the completed investment and the
// new wallet balance.
func (s *Service) Claim(ctx context.Context, accountID, id string) (Investment, int64, error) {
	inv, balance, err := s.repo.Claim(ctx, accountID, id, s.clk.Now())
	if err != nil {
		return Investment{}, 0, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Event{
			Kind:      notification.KindInvestmentClaimed,
			AccountID: accountID,
			Amount:    inv.Payout,
			Reference: inv.ID,
		})
	}

	return inv, balance, nil
}
