package storage

import (
	"context"
	"database/sql"
)

// Usage counter operations backing the quota gatekeeper. The conditional
// UPDATE is the atomic primitive: SQLite serializes writers, so two
// requests racing at count == limit-1 resolve to exactly one committed
// increment; the loser's UPDATE matches zero rows and nothing is charged.

func (db *DB) ensureUsageRow(ctx context.Context, identity, periodKey string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO usage (identity, period_key, count) VALUES (?, ?, 0)
		 ON CONFLICT(identity, period_key) DO NOTHING`,
		identity, periodKey)
	return err
}

// IncrementWithin lazily creates the record, then increments only while
// the counter is below limit. ok reports whether the increment committed.
func (db *DB) IncrementWithin(ctx context.Context, identity, periodKey string, limit int) (int, bool, error) {
	if err := db.ensureUsageRow(ctx, identity, periodKey); err != nil {
		return 0, false, err
	}
	res, err := db.conn.ExecContext(ctx,
		`UPDATE usage SET count = count + 1
		  WHERE identity = ? AND period_key = ? AND count < ?`,
		identity, periodKey, limit)
	if err != nil {
		return 0, false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, false, err
	}
	count, err := db.Current(ctx, identity, periodKey)
	if err != nil {
		return 0, false, err
	}
	return count, n == 1, nil
}

// Increment bumps the counter unconditionally (unlimited tiers).
func (db *DB) Increment(ctx context.Context, identity, periodKey string) (int, error) {
	if err := db.ensureUsageRow(ctx, identity, periodKey); err != nil {
		return 0, err
	}
	if _, err := db.conn.ExecContext(ctx,
		`UPDATE usage SET count = count + 1 WHERE identity = ? AND period_key = ?`,
		identity, periodKey); err != nil {
		return 0, err
	}
	return db.Current(ctx, identity, periodKey)
}

// Current reads the counter; a missing record reads as zero.
func (db *DB) Current(ctx context.Context, identity, periodKey string) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT count FROM usage WHERE identity = ? AND period_key = ?`,
		identity, periodKey).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return count, err
}
