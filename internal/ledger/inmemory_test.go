package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestInMemoryLedger_CreditAndDebit(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()

	if err := l.EnsureWallet(ctx, "acct-1"); err != nil {
		t.Fatalf("ensure wallet: %v", err)
	}

	balance, err := l.Credit(ctx, "acct-1", 50_000)
	if err != nil {
		t.Fatalf("credit: %v", err)
	}
	if balance != 50_000 {
		t.Fatalf("expected balance 50000, got %d", balance)
	}

	balance, err = l.Debit(ctx, "acct-1", 20_000)
	if err != nil {
		t.Fatalf("debit: %v", err)
	}
	if balance != 30_000 {
		t.Fatalf("expected balance 30000, got %d", balance)
	}
}

func TestInMemoryLedger_DebitInsufficientFunds(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	l.EnsureWallet(ctx, "acct-1")
	SeedBalance(l, "acct-1", 100)

	if _, err := l.Debit(ctx, "acct-1", 101); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	balance, err := l.Balance(ctx, "acct-1")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 100 {
		t.Fatalf("failed debit must not change balance, got %d", balance)
	}
}

func TestInMemoryLedger_RejectsNonPositiveAmounts(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	l.EnsureWallet(ctx, "acct-1")

	for _, amount := range []int64{0, -5} {
		if _, err := l.Credit(ctx, "acct-1", amount); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("credit %d: expected ErrInvalidAmount, got %v", amount, err)
		}
		if _, err := l.Debit(ctx, "acct-1", amount); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("debit %d: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestInMemoryLedger_UnknownWallet(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()

	if _, err := l.Balance(ctx, "ghost"); !errors.Is(err, ErrWalletNotFound) {
		t.Fatalf("expected ErrWalletNotFound, got %v", err)
	}
	if _, err := l.Credit(ctx, "ghost", 100); !errors.Is(err, ErrWalletNotFound) {
		t.Fatalf("expected ErrWalletNotFound, got %v", err)
	}
}

func TestInMemoryLedger_ConcurrentOperationsConserveMoney(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	l.EnsureWallet(ctx, "acct-1")
	SeedBalance(l, "acct-1", 100_000)

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Credit(ctx, "acct-1", 1_000); err != nil {
				t.Errorf("credit: %v", err)
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Debit(ctx, "acct-1", 1_000); err != nil {
				t.Errorf("debit: %v", err)
			}
		}()
	}
	wg.Wait()

	balance, err := l.Balance(ctx, "acct-1")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 100_000 {
		t.Fatalf("credits and debits must cancel out, got %d", balance)
	}
}

func TestInMemoryLedger_BalancesSorted(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	l.EnsureWallet(ctx, "b")
	l.EnsureWallet(ctx, "a")
	SeedBalance(l, "a", 10)

	balances, err := l.Balances(ctx)
	if err != nil {
		t.Fatalf("balances: %v", err)
	}
	if len(balances) != 2 || balances[0].AccountID != "a" || balances[0].Balance != 10 {
		t.Fatalf("unexpected balances: %+v", balances)
	}
}
