package plan

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists the plan catalog.
type Repository interface {
	Create(ctx context.Context, p Plan) error
	Get(ctx context.Context, id string) (Plan, error)
	Update(ctx context.Context, p Plan) error
	List(ctx context.Context) ([]Plan, error)
	ListActive(ctx context.Context) ([]Plan, error)
}

// PostgresRepository stores plans in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a plan definition.
func (r *PostgresRepository) Create(ctx context.Context, p Plan) error {
	_, err := r.db.Exec(ctx, `INSERT INTO plans (id, name, min_amount, return_bp, duration_days, active, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Name, p.MinAmount, p.ReturnBasisPoints, p.DurationDays, p.Active, p.CreatedAt.UTC())
	return err
}

// Get fetches a plan by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Plan, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, min_amount, return_bp, duration_days, active, created_at
        FROM plans WHERE id = $1`, id)
	return scanPlan(row)
}

// Update rewrites the full plan row.
func (r *PostgresRepository) Update(ctx context.Context, p Plan) error {
	cmd, err := r.db.Exec(ctx, `UPDATE plans SET name = $2, min_amount = $3, return_bp = $4,
        duration_days = $5, active = $6 WHERE id = $1`,
		p.ID, p.Name, p.MinAmount, p.ReturnBasisPoints, p.DurationDays, p.Active)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns every plan, newest last.
func (r *PostgresRepository) List(ctx context.Context) ([]Plan, error) {
	return r.query(ctx, `SELECT id, name, min_amount, return_bp, duration_days, active, created_at
        FROM plans ORDER BY created_at`)
}

// ListActive returns plans open to new investments.
func (r *PostgresRepository) ListActive(ctx context.Context) ([]Plan, error) {
	return r.query(ctx, `SELECT id, name, min_amount, return_bp, duration_days, active, created_at
        FROM plans WHERE active ORDER BY created_at`)
}

func (r *PostgresRepository) query(ctx context.Context, sql string) ([]Plan, error) {
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPlan(row pgx.Row) (Plan, error) {
	var (
		p         Plan
		createdAt time.Time
	)
	if err := row.Scan(&p.ID, &p.Name, &p.MinAmount, &p.ReturnBasisPoints, &p.DurationDays, &p.Active, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Plan{}, ErrNotFound
		}
		return Plan{}, err
	}
	p.CreatedAt = createdAt.UTC()
	return p, nil
}
