package investment

import (
	"errors"
	"time"
)

// Statuses. An investment moves from active to completed exactly once, via
// Claim; maturity itself is derived from time, never stored.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

var (
	// ErrNotFound indicates no investment matches the id for this account.
	ErrNotFound = errors.New("investment not found")

	// ErrBelowMinimum indicates the amount is under the plan minimum.
	ErrBelowMinimum = errors.New("amount below plan minimum")

	// ErrAlreadyClaimed indicates the investment has already paid out.
	ErrAlreadyClaimed = errors.New("investment already claimed")

	// ErrNotMatured indicates the investment has not reached its end date.
	ErrNotMatured = errors.New("investment not matured yet")
)

// Investment locks principal into a plan until maturity. Amount and Payout
// are paise; Payout is computed once at open time and frozen so later plan
// edits or repeated reads can never change what a claim pays.
type Investment struct {
	ID        string
	AccountID string
	PlanID    string
	Amount    int64
	Payout    int64
	StartAt   time.Time
	EndAt     time.Time
	Status    string
}

// Matured reports whether the investment can be claimed at now. The boundary
// is inclusive: an investment matures exactly at its end timestamp.
func (i Investment) Matured(now time.Time) bool {
	return !now.Before(i.EndAt)
}

// View is an investment decorated for listing: the owning plan's name and
// the maturity flag derived from a single read-time clock value.
type View struct {
	Investment
	PlanName string
	Matured  bool
}
