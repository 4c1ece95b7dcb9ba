package transaction

import (
	"errors"
	"time"
)

// Kinds of ledger movement a transaction row records. Only deposit and
// withdraw rows may be pending; investment and payout rows are audit entries
// written after their ledger effect has already been applied.
const (
	KindDeposit    = "deposit"
	KindWithdraw   = "withdraw"
	KindInvestment = "investment"
	KindPayout     = "payout"
)

// Statuses. A pending row transitions exactly once, to approved or rejected.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
)

var (
	// ErrInvalidAmount indicates a non-positive request amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrNotFound indicates no transaction matches the id and kind.
	ErrNotFound = errors.New("transaction not found")

	// ErrAlreadyResolved indicates the request left the pending state before
	// this attempt.
	ErrAlreadyResolved = errors.New("transaction already resolved")
)

// Transaction records a money movement against an account. Amount is paise.
type Transaction struct {
	ID        string
	AccountID string
	Kind      string
	Amount    int64
	Status    string
	Note      string
	CreatedAt time.Time
}

// Pending reports whether the row still awaits an admin decision.
func (t Transaction) Pending() bool { return t.Status == StatusPending }
