package investment

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rupee-vest/rupee_vest/internal/ledger"
	"github.com/rupee-vest/rupee_vest/internal/transaction"
)

// AuditLog is the slice of the transaction store the memory repository needs
// to record completed investment/payout entries.
type AuditLog interface {
	Create(ctx context.Context, t transaction.Transaction) error
}

type memoryRepository struct {
	mu    sync.Mutex
	led   ledger.Ledger
	logs  AuditLog
	rows  map[string]Investment
	order []string
}

// NewMemoryRepository builds an in-memory store for tests and local runs.
// The ledger and audit log are shared so open/claim apply their side effects
// under the repository lock, mirroring the Postgres implementation.
func NewMemoryRepository(led ledger.Ledger, logs AuditLog) Repository {
	return &memoryRepository{led: led, logs: logs, rows: make(map[string]Investment)}
}

func (r *memoryRepository) Open(ctx context.Context, inv Investment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.led.Debit(ctx, inv.AccountID, inv.Amount); err != nil {
		return err
	}

	r.rows[inv.ID] = inv
	r.order = append(r.order, inv.ID)

	if r.logs != nil {
		_ = r.logs.Create(ctx, transaction.Transaction{
			ID:        uuid.NewString(),
			AccountID: inv.AccountID,
			Kind:      transaction.KindInvestment,
			Amount:    inv.Amount,
			Status:    transaction.StatusCompleted,
			Note:      "principal locked into plan " + inv.PlanID,
			CreatedAt: inv.StartAt,
		})
	}
	return nil
}

func (r *memoryRepository) Get(_ context.Context, accountID, id string) (Investment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.rows[id]
	if !ok || inv.AccountID != accountID {
		return Investment{}, ErrNotFound
	}
	return inv, nil
}

func (r *memoryRepository) ListByAccount(_ context.Context, accountID string) ([]Investment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Investment
	for i := len(r.order) - 1; i >= 0; i-- {
		if inv := r.rows[r.order[i]]; inv.AccountID == accountID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *memoryRepository) Claim(ctx context.Context, accountID, id string, now time.Time) (Investment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inv, ok := r.rows[id]
	if !ok || inv.AccountID != accountID {
		return Investment{}, 0, ErrNotFound
	}
	if inv.Status != StatusActive {
		return Investment{}, 0, ErrAlreadyClaimed
	}
	if !inv.Matured(now) {
		return Investment{}, 0, ErrNotMatured
	}

	balance, err := r.led.Credit(ctx, inv.AccountID, inv.Payout)
	if err != nil {
		return Investment{}, 0, err
	}

	inv.Status = StatusCompleted
	r.rows[id] = inv

	if r.logs != nil {
		_ = r.logs.Create(ctx, transaction.Transaction{
			ID:        uuid.NewString(),
			AccountID: inv.AccountID,
			Kind:      transaction.KindPayout,
			Amount:    inv.Payout,
			Status:    transaction.StatusCompleted,
			Note:      "payout for investment " + inv.ID,
			CreatedAt: now,
		})
	}
	return inv, balance, nil
}
