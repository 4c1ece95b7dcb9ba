package transaction

import (
	"context"
	"errors"
	"testing"

	"github.com/rupee-vest/rupee_vest/internal/ledger"
)

func newTestService(t *testing.T) (*Service, ledger.Ledger) {
	t.Helper()
	led := ledger.NewInMemory()
	repo := NewMemoryRepository(led)
	return NewService(repo, led, nil), led
}

func TestDepositApprovalCreditsWallet(t *testing.T) {
	svc, led := newTestService(t)
	ctx := context.Background()
	led.EnsureWallet(ctx, "acct-1")
	ledger.SeedBalance(led, "acct-1", 50_000)

	req, err := svc.RequestDeposit(ctx, "acct-1", 50_000)
	if err != nil {
		t.Fatalf("request deposit: %v", err)
	}
	if req.Status != StatusPending {
		t.Fatalf("expected pending request, got %s", req.Status)
	}

	// Filing the request must not move money.
	if balance, _ := led.Balance(ctx, "acct-1"); balance != 50_000 {
		t.Fatalf("balance changed before approval: %d", balance)
	}

	approved, balance, err := svc.Approve(ctx, req.ID, KindDeposit)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != StatusApproved {
		t.Fatalf("expected approved, got %s", approved.Status)
	}
	if balance != 100_000 {
		t.Fatalf("expected balance 100000, got %d", balance)
	}
}

func TestApproveTwiceFailsAlreadyResolved(t *testing.T) {
	svc, led := newTestService(t)
	ctx := context.Background()
	led.EnsureWallet(ctx, "acct-1")

	req, err := svc.RequestDeposit(ctx, "acct-1", 1_000)
	if err != nil {
		t.Fatalf("request deposit: %v", err)
	}
	if _, _, err := svc.Approve(ctx, req.ID, KindDeposit); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, _, err := svc.Approve(ctx, req.ID, KindDeposit); !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}
	if _, err := svc.Reject(ctx, req.ID, KindDeposit); !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved on reject, got %v", err)
	}
}

func TestRejectLeavesBalanceUntouched(t *testing.T) {
	svc, led := newTestService(t)
	ctx := context.Background()
	led.EnsureWallet(ctx, "acct-1")
	ledger.SeedBalance(led, "acct-1", 10_000)

	req, err := svc.RequestWithdraw(ctx, "acct-1", 5_000)
	if err != nil {
		t.Fatalf("request withdraw: %v", err)
	}

	rejected, err := svc.Reject(ctx, req.ID, KindWithdraw)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != StatusRejected {
		t.Fatalf("expected rejected, got %s", rejected.Status)
	}
	if balance, _ := led.Balance(ctx, "acct-1"); balance != 10_000 {
		t.Fatalf("reject must not move money, got %d", balance)
	}
}

func TestRequestValidation(t *testing.T) {
	svc, led := newTestService(t)
	ctx := context.Background()
	led.EnsureWallet(ctx, "acct-1")
	ledger.SeedBalance(led, "acct-1", 1_000)

	if _, err := svc.RequestDeposit(ctx, "acct-1", 0); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := svc.RequestWithdraw(ctx, "acct-1", -100); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	// Withdraw beyond the current balance is refused up front.
	if _, err := svc.RequestWithdraw(ctx, "acct-1", 2_000); !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestWithdrawApprovalRechecksBalance(t *testing.T) {
	svc, led := newTestService(t)
	ctx := context.Background()
	led.EnsureWallet(ctx, "acct-1")
	ledger.SeedBalance(led, "acct-1", 10_000)

	req, err := svc.RequestWithdraw(ctx, "acct-1", 8_000)
	if err != nil {
		t.Fatalf("request withdraw: %v", err)
	}

	// Balance drops between filing and approval.
	if _, err := led.Debit(ctx, "acct-1", 5_000); err != nil {
		t.Fatalf("debit: %v", err)
	}

	if _, _, err := svc.Approve(ctx, req.ID, KindWithdraw); !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// The failed approval leaves the request pending for a later retry.
	stored, err := svc.repo.Get(ctx, req.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !stored.Pending() {
		t.Fatalf("request must stay pending after failed approval, got %s", stored.Status)
	}

	// Once funds return, the same request approves cleanly.
	if _, err := led.Credit(ctx, "acct-1", 5_000); err != nil {
		t.Fatalf("credit: %v", err)
	}
	_, balance, err := svc.Approve(ctx, req.ID, KindWithdraw)
	if err != nil {
		t.Fatalf("approve retry: %v", err)
	}
	if balance != 2_000 {
		t.Fatalf("expected balance 2000, got %d", balance)
	}
}

func TestApproveWrongKindIsNotFound(t *testing.T) {
	svc, led := newTestService(t)
	ctx := context.Background()
	led.EnsureWallet(ctx, "acct-1")

	req, err := svc.RequestDeposit(ctx, "acct-1", 1_000)
	if err != nil {
		t.Fatalf("request deposit: %v", err)
	}
	if _, _, err := svc.Approve(ctx, req.ID, KindWithdraw); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for kind mismatch, got %v", err)
	}
	if _, _, err := svc.Approve(ctx, "ghost", KindDeposit); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListByAccountNewestFirst(t *testing.T) {
	svc, led := newTestService(t)
	ctx := context.Background()
	led.EnsureWallet(ctx, "acct-1")
	led.EnsureWallet(ctx, "acct-2")
	ledger.SeedBalance(led, "acct-1", 10_000)

	first, _ := svc.RequestDeposit(ctx, "acct-1", 1_000)
	second, _ := svc.RequestWithdraw(ctx, "acct-1", 2_000)
	svc.RequestDeposit(ctx, "acct-2", 3_000)

	list, err := svc.ListByAccount(ctx, "acct-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first, got %s then %s", list[0].ID, list[1].ID)
	}

	pending, err := svc.ListPending(ctx)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 3 || pending[0].ID != first.ID {
		t.Fatalf("expected 3 pending oldest first, got %+v", pending)
	}
}
