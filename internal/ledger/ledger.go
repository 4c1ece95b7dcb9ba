package ledger

import (
	"context"
	"errors"
)

var (
	// ErrInsufficientFunds occurs when a wallet lacks the balance to cover a
	// requested debit.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount indicates a non-positive amount was supplied to a
	// credit or debit.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrWalletNotFound indicates no wallet exists for the account.
	ErrWalletNotFound = errors.New("wallet not found")
)

// WalletBalance pairs an account with its current balance in paise.
type WalletBalance struct {
	AccountID string
	Balance   int64
}

// Ledger is the single authority over wallet balances. Credit and Debit are
// atomic per account; a balance can never be observed negative.
type Ledger interface {
	EnsureWallet(ctx context.Context, accountID string) error
	Balance(ctx context.Context, accountID string) (int64, error)
	Balances(ctx context.Context) ([]WalletBalance, error)
	Credit(ctx context.Context, accountID string, amount int64) (int64, error)
	Debit(ctx context.Context, accountID string, amount int64) (int64, error)
}
