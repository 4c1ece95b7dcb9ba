package investment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rupee-vest/rupee_vest/internal/clock"
	"github.com/rupee-vest/rupee_vest/internal/ledger"
	"github.com/rupee-vest/rupee_vest/internal/plan"
	"github.com/rupee-vest/rupee_vest/internal/transaction"
)

type fixture struct {
	svc   *Service
	led   ledger.Ledger
	logs  transaction.Repository
	plans *plan.Service
	plan  plan.Plan
}

var openedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T, clk clock.Clock) *fixture {
	t.Helper()
	ctx := context.Background()

	led := ledger.NewInMemory()
	led.EnsureWallet(ctx, "acct-1")

	logs := transaction.NewMemoryRepository(led)
	plans := plan.NewService(plan.NewMemoryRepository())
	p, err := plans.Create(ctx, plan.CreateInput{
		Name:              "Starter 7D 20%",
		MinAmount:         10_000,
		ReturnBasisPoints: 2_000,
		DurationDays:      7,
		Active:            true,
	})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}

	repo := NewMemoryRepository(led, logs)
	return &fixture{
		svc:   NewService(repo, plans, clk, nil),
		led:   led,
		logs:  logs,
		plans: plans,
		plan:  p,
	}
}

func TestOpenLocksPrincipalAndFreezesPayout(t *testing.T) {
	f := newFixture(t, clock.Fixed(openedAt))
	ctx := context.Background()
	ledger.SeedBalance(f.led, "acct-1", 10_000)

	inv, err := f.svc.Open(ctx, "acct-1", f.plan.ID, 10_000)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if balance, _ := f.led.Balance(ctx, "acct-1"); balance != 0 {
		t.Fatalf("expected balance 0 after open, got %d", balance)
	}
	if inv.Payout != 12_000 {
		t.Fatalf("expected payout 12000, got %d", inv.Payout)
	}
	if want := openedAt.AddDate(0, 0, 7); !inv.EndAt.Equal(want) {
		t.Fatalf("expected end %v, got %v", want, inv.EndAt)
	}
	if inv.Status != StatusActive {
		t.Fatalf("expected active, got %s", inv.Status)
	}

	// Opening logs a completed investment entry for the account.
	history, err := f.logs.ListByAccount(ctx, "acct-1")
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(history) != 1 || history[0].Kind != transaction.KindInvestment || history[0].Status != transaction.StatusCompleted {
		t.Fatalf("expected one completed investment log entry, got %+v", history)
	}
}

func TestOpenBelowMinimumLeavesEverythingUntouched(t *testing.T) {
	f := newFixture(t, clock.Fixed(openedAt))
	ctx := context.Background()
	ledger.SeedBalance(f.led, "acct-1", 50_000)

	if _, err := f.svc.Open(ctx, "acct-1", f.plan.ID, 9_999); !errors.Is(err, ErrBelowMinimum) {
		t.Fatalf("expected ErrBelowMinimum, got %v", err)
	}

	if balance, _ := f.led.Balance(ctx, "acct-1"); balance != 50_000 {
		t.Fatalf("failed open must not touch the wallet, got %d", balance)
	}
	views, err := f.svc.List(ctx, "acct-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("failed open must not create an investment, got %+v", views)
	}
}

func TestOpenValidatesPlan(t *testing.T) {
	f := newFixture(t, clock.Fixed(openedAt))
	ctx := context.Background()
	ledger.SeedBalance(f.led, "acct-1", 50_000)

	if _, err := f.svc.Open(ctx, "acct-1", "ghost", 10_000); !errors.Is(err, plan.ErrNotFound) {
		t.Fatalf("expected plan.ErrNotFound, got %v", err)
	}

	inactive := false
	if _, err := f.plans.Update(ctx, f.plan.ID, plan.UpdateInput{Active: &inactive}); err != nil {
		t.Fatalf("deactivate plan: %v", err)
	}
	if _, err := f.svc.Open(ctx, "acct-1", f.plan.ID, 10_000); !errors.Is(err, plan.ErrInactive) {
		t.Fatalf("expected plan.ErrInactive, got %v", err)
	}
}

func TestOpenPropagatesInsufficientFunds(t *testing.T) {
	f := newFixture(t, clock.Fixed(openedAt))
	ctx := context.Background()
	ledger.SeedBalance(f.led, "acct-1", 9_999)

	if _, err := f.svc.Open(ctx, "acct-1", f.plan.ID, 10_000); !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if views, _ := f.svc.List(ctx, "acct-1"); len(views) != 0 {
		t.Fatalf("failed debit must not create an investment")
	}
}

func TestClaimAtExactMaturityPaysFrozenPayout(t *testing.T) {
	f := newFixture(t, clock.Fixed(openedAt))
	ctx := context.Background()
	ledger.SeedBalance(f.led, "acct-1", 10_000)

	inv, err := f.svc.Open(ctx, "acct-1", f.plan.ID, 10_000)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	// A plan edit after open must not change what the claim pays.
	bump := int64(9_000)
	if _, err := f.plans.Update(ctx, f.plan.ID, plan.UpdateInput{ReturnBasisPoints: &bump}); err != nil {
		t.Fatalf("update plan: %v", err)
	}

	// The maturity boundary is inclusive: claiming exactly at EndAt succeeds.
	claimSvc := NewService(f.svc.repo, f.plans, clock.Fixed(inv.EndAt), nil)
	claimed, balance, err := claimSvc.Claim(ctx, "acct-1", inv.ID)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if claimed.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", claimed.Status)
	}
	if balance != 12_000 {
		t.Fatalf("expected balance 12000, got %d", balance)
	}

	// Payout log entry lands in the transaction history.
	history, _ := f.logs.ListByAccount(ctx, "acct-1")
	if len(history) != 2 || history[0].Kind != transaction.KindPayout || history[0].Amount != 12_000 {
		t.Fatalf("expected payout log entry first, got %+v", history)
	}
}

func TestClaimBeforeMaturityFails(t *testing.T) {
	f := newFixture(t, clock.Fixed(openedAt))
	ctx := context.Background()
	ledger.SeedBalance(f.led, "acct-1", 10_000)

	inv, err := f.svc.Open(ctx, "acct-1", f.plan.ID, 10_000)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	early := NewService(f.svc.repo, f.plans, clock.Fixed(inv.EndAt.Add(-time.Second)), nil)
	if _, _, err := early.Claim(ctx, "acct-1", inv.ID); !errors.Is(err, ErrNotMatured) {
		t.Fatalf("expected ErrNotMatured, got %v", err)
	}
	if balance, _ := f.led.Balance(ctx, "acct-1"); balance != 0 {
		t.Fatalf("failed claim must not credit the wallet, got %d", balance)
	}
}

func TestClaimTwiceFailsAlreadyClaimed(t *testing.T) {
	f := newFixture(t, clock.Fixed(openedAt))
	ctx := context.Background()
	ledger.SeedBalance(f.led, "acct-1", 10_000)

	inv, err := f.svc.Open(ctx, "acct-1", f.plan.ID, 10_000)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	mature := NewService(f.svc.repo, f.plans, clock.Fixed(inv.EndAt.Add(time.Hour)), nil)
	if _, _, err := mature.Claim(ctx, "acct-1", inv.ID); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if _, _, err := mature.Claim(ctx, "acct-1", inv.ID); !errors.Is(err, ErrAlreadyClaimed) {
		t.Fatalf("expected ErrAlreadyClaimed, got %v", err)
	}
	if balance, _ := f.led.Balance(ctx, "acct-1"); balance != 12_000 {
		t.Fatalf("second claim must not pay again, got %d", balance)
	}
}

func TestClaimByStrangerIsNotFound(t *testing.T) {
	f := newFixture(t, clock.Fixed(openedAt))
	ctx := context.Background()
	f.led.EnsureWallet(ctx, "acct-2")
	ledger.SeedBalance(f.led, "acct-1", 10_000)

	inv, err := f.svc.Open(ctx, "acct-1", f.plan.ID, 10_000)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	mature := NewService(f.svc.repo, f.plans, clock.Fixed(inv.EndAt), nil)
	if _, _, err := mature.Claim(ctx, "acct-2", inv.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign claim, got %v", err)
	}
}

func TestListDerivesMaturityFromOneClockRead(t *testing.T) {
	f := newFixture(t, clock.Fixed(openedAt))
	ctx := context.Background()
	ledger.SeedBalance(f.led, "acct-1", 30_000)

	first, err := f.svc.Open(ctx, "acct-1", f.plan.ID, 10_000)
	if err != nil {
		t.Fatalf("open first: %v", err)
	}
	if _, err := f.svc.Open(ctx, "acct-1", f.plan.ID, 20_000); err != nil {
		t.Fatalf("open second: %v", err)
	}

	// At the shared end date both investments flip matured together.
	listSvc := NewService(f.svc.repo, f.plans, clock.Fixed(first.EndAt), nil)
	views, err := listSvc.List(ctx, "acct-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 investments, got %d", len(views))
	}
	for _, v := range views {
		if !v.Matured {
			t.Fatalf("expected matured=true at end date, got %+v", v)
		}
		if v.PlanName != "Starter 7D 20%" {
			t.Fatalf("expected plan name, got %q", v.PlanName)
		}
	}

	// Newest first.
	if views[0].Amount != 20_000 || views[1].Amount != 10_000 {
		t.Fatalf("expected newest first, got %+v", views)
	}
}
