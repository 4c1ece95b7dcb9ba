package investment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rupee-vest/rupee_vest/internal/ledger"
	"github.com/rupee-vest/rupee_vest/internal/transaction"
)

// Repository persists investments. Open and Claim are compound operations:
// the wallet movement, the investment row and the audit log entry commit as
// one unit or not at all.
type Repository interface {
	Open(ctx context.Context, inv Investment) error
	Get(ctx context.Context, accountID, id string) (Investment, error)
	ListByAccount(ctx context.Context, accountID string) ([]Investment, error)
	Claim(ctx context.Context, accountID, id string, now time.Time) (Investment, int64, error)
}

// PostgresRepository stores investments in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Open debits the wallet for the principal, inserts the investment and logs
// a completed investment entry, all in one transaction. A debit failure
// aborts everything; no investment can exist without its principal captured.
func (r *PostgresRepository) Open(ctx context.Context, inv Investment) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	if _, err := ledger.ApplyTx(ctx, tx, inv.AccountID, -inv.Amount); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `INSERT INTO investments (id, account_id, plan_id, amount, payout, start_at, end_at, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		inv.ID, inv.AccountID, inv.PlanID, inv.Amount, inv.Payout, inv.StartAt.UTC(), inv.EndAt.UTC(), inv.Status); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `INSERT INTO transactions (id, account_id, kind, amount, status, note, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.NewString(), inv.AccountID, transaction.KindInvestment, inv.Amount, transaction.StatusCompleted,
		"principal locked into plan "+inv.PlanID, inv.StartAt.UTC()); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Get fetches an investment owned by the account.
func (r *PostgresRepository) Get(ctx context.Context, accountID, id string) (Investment, error) {
	row := r.db.QueryRow(ctx, `SELECT id, account_id, plan_id, amount, payout, start_at, end_at, status
        FROM investments WHERE id = $1 AND account_id = $2`, id, accountID)
	return scanInvestment(row)
}

// ListByAccount returns the account's investments, newest first.
func (r *PostgresRepository) ListByAccount(ctx context.Context, accountID string) ([]Investment, error) {
	rows, err := r.db.Query(ctx, `SELECT id, account_id, plan_id, amount, payout, start_at, end_at, status
        FROM investments WHERE account_id = $1 ORDER BY start_at DESC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Investment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// Claim pays out a matured investment: the frozen payout credits the wallet,
// the status flips to completed and a payout log entry is written, all in
// one transaction. Ownership, state and maturity are re-checked under the
// row lock. Returns the updated investment and the new balance.
func (r *PostgresRepository) Claim(ctx context.Context, accountID, id string, now time.Time) (Investment, int64, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Investment{}, 0, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	row := tx.QueryRow(ctx, `SELECT id, account_id, plan_id, amount, payout, start_at, end_at, status
        FROM investments WHERE id = $1 AND account_id = $2 FOR UPDATE`, id, accountID)
	inv, err := scanInvestment(row)
	if err != nil {
		return Investment{}, 0, err
	}
	if inv.Status != StatusActive {
		return Investment{}, 0, ErrAlreadyClaimed
	}
	if !inv.Matured(now) {
		return Investment{}, 0, ErrNotMatured
	}

	balance, err := ledger.ApplyTx(ctx, tx, inv.AccountID, inv.Payout)
	if err != nil {
		return Investment{}, 0, err
	}

	if _, err := tx.Exec(ctx, `UPDATE investments SET status = $2 WHERE id = $1`, inv.ID, StatusCompleted); err != nil {
		return Investment{}, 0, err
	}

	if _, err := tx.Exec(ctx, `INSERT INTO transactions (id, account_id, kind, amount, status, note, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.NewString(), inv.AccountID, transaction.KindPayout, inv.Payout, transaction.StatusCompleted,
		"payout for investment "+inv.ID, now.UTC()); err != nil {
		return Investment{}, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Investment{}, 0, err
	}

	inv.Status = StatusCompleted
	return inv, balance, nil
}

func scanInvestment(row pgx.Row) (Investment, error) {
	var (
		inv     Investment
		startAt time.Time
		endAt   time.Time
	)
	if err := row.Scan(&inv.ID, &inv.AccountID, &inv.PlanID, &inv.Amount, &inv.Payout, &startAt, &endAt, &inv.Status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Investment{}, ErrNotFound
		}
		return Investment{}, err
	}
	inv.StartAt = startAt.UTC()
	inv.EndAt = endAt.UTC()
	return inv, nil
}
