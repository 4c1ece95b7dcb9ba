package transaction

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rupee-vest/rupee_vest/internal/ledger"
)

// Repository persists transaction rows. Approve and Reject are compound
// operations: the status flip and any ledger effect commit as one unit.
type Repository interface {
	Create(ctx context.Context, t Transaction) error
	Get(ctx context.Context, id string) (Transaction, error)
	ListByAccount(ctx context.Context, accountID string) ([]Transaction, error)
	ListPending(ctx context.Context) ([]Transaction, error)
	Approve(ctx context.Context, id, kind string) (Transaction, int64, error)
	Reject(ctx context.Context, id, kind string) (Transaction, error)
}

// PostgresRepository stores transactions in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a transaction row.
func (r *PostgresRepository) Create(ctx context.Context, t Transaction) error {
	_, err := r.db.Exec(ctx, `INSERT INTO transactions (id, account_id, kind, amount, status, note, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.AccountID, t.Kind, t.Amount, t.Status, t.Note, t.CreatedAt.UTC())
	return err
}

// Get fetches a transaction by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Transaction, error) {
	row := r.db.QueryRow(ctx, `SELECT id, account_id, kind, amount, status, note, created_at
        FROM transactions WHERE id = $1`, id)
	return scanTransaction(row)
}

// ListByAccount returns the account's transactions, newest first.
func (r *PostgresRepository) ListByAccount(ctx context.Context, accountID string) ([]Transaction, error) {
	return r.query(ctx, `SELECT id, account_id, kind, amount, status, note, created_at
        FROM transactions WHERE account_id = $1 ORDER BY created_at DESC`, accountID)
}

// ListPending returns every pending request, oldest first, for admin review.
func (r *PostgresRepository) ListPending(ctx context.Context) ([]Transaction, error) {
	return r.query(ctx, `SELECT id, account_id, kind, amount, status, note, created_at
        FROM transactions WHERE status = 'pending' ORDER BY created_at`)
}

// Approve resolves a pending request, applying its ledger effect in the same
// transaction: deposits credit the wallet, withdrawals debit it after
// re-checking the balance under the row lock. A withdraw that can no longer
// be covered rolls back and stays pending. Returns the updated row and the
// new balance.
func (r *PostgresRepository) Approve(ctx context.Context, id, kind string) (Transaction, int64, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Transaction{}, 0, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	t, err := lockRequest(ctx, tx, id, kind)
	if err != nil {
		return Transaction{}, 0, err
	}

	delta := t.Amount
	if kind == KindWithdraw {
		delta = -t.Amount
	}
	balance, err := ledger.ApplyTx(ctx, tx, t.AccountID, delta)
	if err != nil {
		return Transaction{}, 0, err
	}

	if _, err := tx.Exec(ctx, `UPDATE transactions SET status = $2 WHERE id = $1`, t.ID, StatusApproved); err != nil {
		return Transaction{}, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Transaction{}, 0, err
	}

	t.Status = StatusApproved
	return t, balance, nil
}

// Reject resolves a pending request with no ledger effect.
func (r *PostgresRepository) Reject(ctx context.Context, id, kind string) (Transaction, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Transaction{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	t, err := lockRequest(ctx, tx, id, kind)
	if err != nil {
		return Transaction{}, err
	}

	if _, err := tx.Exec(ctx, `UPDATE transactions SET status = $2 WHERE id = $1`, t.ID, StatusRejected); err != nil {
		return Transaction{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Transaction{}, err
	}

	t.Status = StatusRejected
	return t, nil
}

func lockRequest(ctx context.Context, tx pgx.Tx, id, kind string) (Transaction, error) {
	row := tx.QueryRow(ctx, `SELECT id, account_id, kind, amount, status, note, created_at
        FROM transactions WHERE id = $1 AND kind = $2 FOR UPDATE`, id, kind)
	t, err := scanTransaction(row)
	if err != nil {
		return Transaction{}, err
	}
	if !t.Pending() {
		return Transaction{}, ErrAlreadyResolved
	}
	return t, nil
}

func (r *PostgresRepository) query(ctx context.Context, sql string, args ...any) ([]Transaction, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTransaction(row pgx.Row) (Transaction, error) {
	var (
		t         Transaction
		createdAt time.Time
	)
	if err := row.Scan(&t.ID, &t.AccountID, &t.Kind, &t.Amount, &t.Status, &t.Note, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Transaction{}, ErrNotFound
		}
		return Transaction{}, err
	}
	t.CreatedAt = createdAt.UTC()
	return t, nil
}
