package plan

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates no plan matches the identifier.
	ErrNotFound = errors.New("plan not found")

	// ErrInactive indicates the plan exists but is closed to new investments.
	ErrInactive = errors.New("plan is not active")

	// ErrInvalidPlan indicates the plan definition fails validation.
	ErrInvalidPlan = errors.New("invalid plan")
)

// Plan is a fixed-term investment template. MinAmount is paise and
// ReturnBasisPoints is the whole-term return (2000 = 20%). Edits to a plan
// never touch investments already opened against it; those freeze their own
// payout and end date at open time.
type Plan struct {
	ID                string
	Name              string
	MinAmount         int64
	ReturnBasisPoints int64
	DurationDays      int
	Active            bool
	CreatedAt         time.Time
}
