package ledger

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLedger persists wallet balances in PostgreSQL. Every mutation is a
// single-row conditional update so concurrent operations on the same account
// serialize at the database.
type PostgresLedger struct {
	db *pgxpool.Pool
}

// NewPostgresLedger constructs a Postgres-backed ledger implementation.
func NewPostgresLedger(db *pgxpool.Pool) *PostgresLedger {
	return &PostgresLedger{db: db}
}

// EnsureWallet guarantees a zero-balance wallet row exists for the account.
func (l *PostgresLedger) EnsureWallet(ctx context.Context, accountID string) error {
	_, err := l.db.Exec(ctx, `INSERT INTO wallets (account_id, balance) VALUES ($1, 0)
        ON CONFLICT (account_id) DO NOTHING`, accountID)
	return err
}

// Balance returns the wallet balance for the account.
func (l *PostgresLedger) Balance(ctx context.Context, accountID string) (int64, error) {
	var balance int64
	err := l.db.QueryRow(ctx, `SELECT balance FROM wallets WHERE account_id = $1`, accountID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrWalletNotFound
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Balances lists every wallet with its balance, ordered by account.
func (l *PostgresLedger) Balances(ctx context.Context) ([]WalletBalance, error) {
	rows, err := l.db.Query(ctx, `SELECT account_id, balance FROM wallets ORDER BY account_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WalletBalance
	for rows.Next() {
		var wb WalletBalance
		if err := rows.Scan(&wb.AccountID, &wb.Balance); err != nil {
			return nil, err
		}
		out = append(out, wb)
	}
	return out, rows.Err()
}

// Credit increases the wallet balance and returns the new value.
func (l *PostgresLedger) Credit(ctx context.Context, accountID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	var balance int64
	err := l.db.QueryRow(ctx, `UPDATE wallets SET balance = balance + $2
        WHERE account_id = $1 RETURNING balance`, accountID, amount).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrWalletNotFound
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Debit decreases the wallet balance, refusing to go below zero.
func (l *PostgresLedger) Debit(ctx context.Context, accountID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	var balance int64
	err := l.db.QueryRow(ctx, `UPDATE wallets SET balance = balance - $2
        WHERE account_id = $1 AND balance >= $2 RETURNING balance`, accountID, amount).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		// Distinguish a missing wallet from one that cannot cover the amount.
		if _, balErr := l.Balance(ctx, accountID); balErr != nil {
			return 0, balErr
		}
		return 0, ErrInsufficientFunds
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// ApplyTx moves the wallet balance by delta inside an open transaction,
// locking the row first. Compound operations (approval, investment open,
// claim) use it so the balance change commits or rolls back together with
// their own writes. Returns the new balance.
func ApplyTx(ctx context.Context, tx pgx.Tx, accountID string, delta int64) (int64, error) {
	var balance int64
	err := tx.QueryRow(ctx, `SELECT balance FROM wallets WHERE account_id = $1 FOR UPDATE`, accountID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrWalletNotFound
	}
	if err != nil {
		return 0, err
	}

	balance += delta
	if balance < 0 {
		return 0, ErrInsufficientFunds
	}

	if _, err := tx.Exec(ctx, `UPDATE wallets SET balance = $2 WHERE account_id = $1`, accountID, balance); err != nil {
		return 0, err
	}
	return balance, nil
}

// BalanceTx reads a wallet balance under the row lock of an open transaction.
func BalanceTx(ctx context.Context, tx pgx.Tx, accountID string) (int64, error) {
	var balance int64
	err := tx.QueryRow(ctx, `SELECT balance FROM wallets WHERE account_id = $1 FOR UPDATE`, accountID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrWalletNotFound
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}
