package ledger

import (
	"context"
	"sort"
	"sync"
)

type inMemoryLedger struct {
	mu       sync.RWMutex
	balances map[string]int64
}

// NewInMemory creates a concurrency-safe in-memory ledger used in tests and
// when the service runs without a database.
func NewInMemory() Ledger {
	return &inMemoryLedger{balances: make(map[string]int64)}
}

func (l *inMemoryLedger) EnsureWallet(_ context.Context, accountID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.balances[accountID]; !exists {
		l.balances[accountID] = 0
	}
	return nil
}

func (l *inMemoryLedger) Balance(_ context.Context, accountID string) (int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	balance, exists := l.balances[accountID]
	if !exists {
		return 0, ErrWalletNotFound
	}
	return balance, nil
}

func (l *inMemoryLedger) Balances(_ context.Context) ([]WalletBalance, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]WalletBalance, 0, len(l.balances))
	for accountID, balance := range l.balances {
		out = append(out, WalletBalance{AccountID: accountID, Balance: balance})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

func (l *inMemoryLedger) Credit(_ context.Context, accountID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	balance, exists := l.balances[accountID]
	if !exists {
		return 0, ErrWalletNotFound
	}

	balance += amount
	l.balances[accountID] = balance
	return balance, nil
}

func (l *inMemoryLedger) Debit(_ context.Context, accountID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	balance, exists := l.balances[accountID]
	if !exists {
		return 0, ErrWalletNotFound
	}
	if balance < amount {
		return 0, ErrInsufficientFunds
	}

	balance -= amount
	l.balances[accountID] = balance
	return balance, nil
}
