package operation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amiskov/simple-ledger/pkg/extract"
)

const schema = `
CREATE TABLE IF NOT EXISTS operations (
	id         BIGSERIAL PRIMARY KEY,
	type       TEXT NOT NULL CHECK (type IN ('deposit', 'withdraw')),
	amount     NUMERIC(12, 2) NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT now()
)`

// Repo keeps operations in Postgres.
type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{
		db: db,
	}
}

// Init creates the operations table when it is missing.
func (r *Repo) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("operation/repo: failed creating schema, %w", err)
	}
	return nil
}

func (r *Repo) Add(ctx context.Context, t extract.OperationType, amount decimal.Decimal, at time.Time) (*Operation, error) {
	o := &Operation{Type: t, Amount: amount, CreatedAt: at}
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO operations(type, amount, created_at) VALUES($1, $2, $3) RETURNING id",
		string(t), amount.StringFixed(2), at).Scan(&o.ID)
	if err != nil {
		return nil, fmt.Errorf("operation/repo: failed inserting %s, %w", t, err)
	}
	return o, nil
}

func (r *Repo) Balance(ctx context.Context) (decimal.Decimal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(CASE WHEN type = 'deposit' THEN amount ELSE -amount END), 0)
		FROM operations`)
	var balance decimal.Decimal
	if err := row.Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("operation/repo: balance scan failed, %w", err)
	}
	return balance, nil
}

// CountWithdrawals counts withdrawals created in [from, to).
func (r *Repo) CountWithdrawals(ctx context.Context, from, to time.Time) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM operations
		WHERE type = 'withdraw' AND created_at >= $1 AND created_at < $2`, from, to)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("operation/repo: withdrawals count failed, %w", err)
	}
	return n, nil
}

// List returns up to limit operations, newest first.
func (r *Repo) List(ctx context.Context, limit int) ([]*Operation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, type, amount, created_at FROM operations
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("operation/repo: failed listing operations, %w", err)
	}
	defer rows.Close()

	ops := []*Operation{}
	for rows.Next() {
		o := new(Operation)
		var t string
		if err := rows.Scan(&o.ID, &t, &o.Amount, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("operation/repo: scan operation row failed, %w", err)
		}
		o.Type = extract.OperationType(t)
		ops = append(ops, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("operation/repo: failed reading operations, %w", err)
	}
	return ops, nil
}

func (r *Repo) Truncate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "TRUNCATE TABLE operations RESTART IDENTITY"); err != nil {
		return fmt.Errorf("operation/repo: failed truncating operations, %w", err)
	}
	return nil
}
