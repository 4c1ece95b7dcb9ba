package transaction

import (
	"context"
	"sync"

	"github.com/rupee-vest/rupee_vest/internal/ledger"
)

type memoryRepository struct {
	mu    sync.Mutex
	led   ledger.Ledger
	rows  map[string]Transaction
	order []string
}

// NewMemoryRepository builds an in-memory store for tests and local runs.
// It shares the ledger so approvals apply their ledger effect under the
// repository lock, mirroring the Postgres implementation's atomicity.
func NewMemoryRepository(led ledger.Ledger) Repository {
	return &memoryRepository{led: led, rows: make(map[string]Transaction)}
}

func (r *memoryRepository) Create(_ context.Context, t Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[t.ID] = t
	r.order = append(r.order, t.ID)
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.rows[id]
	if !ok {
		return Transaction{}, ErrNotFound
	}
	return t, nil
}

func (r *memoryRepository) ListByAccount(_ context.Context, accountID string) ([]Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Transaction
	for i := len(r.order) - 1; i >= 0; i-- {
		if t := r.rows[r.order[i]]; t.AccountID == accountID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memoryRepository) ListPending(_ context.Context) ([]Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Transaction
	for _, id := range r.order {
		if t := r.rows[id]; t.Pending() {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memoryRepository) Approve(ctx context.Context, id, kind string) (Transaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.rows[id]
	if !ok || t.Kind != kind {
		return Transaction{}, 0, ErrNotFound
	}
	if !t.Pending() {
		return Transaction{}, 0, ErrAlreadyResolved
	}

	var (
		balance int64
		err     error
	)
	if kind == KindWithdraw {
		balance, err = r.led.Debit(ctx, t.AccountID, t.Amount)
	} else {
		balance, err = r.led.Credit(ctx, t.AccountID, t.Amount)
	}
	if err != nil {
		// Leave the request pending; the admin can retry or reject.
		return Transaction{}, 0, err
	}

	t.Status = StatusApproved
	r.rows[id] = t
	return t, balance, nil
}

func (r *memoryRepository) Reject(_ context.Context, id, kind string) (Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.rows[id]
	if !ok || t.Kind != kind {
		return Transaction{}, ErrNotFound
	}
	if !t.Pending() {
		return Transaction{}, ErrAlreadyResolved
	}

	t.Status = StatusRejected
	r.rows[id] = t
	return t, nil
}
