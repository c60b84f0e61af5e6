package storage

import (
	"errors"
	"time"
)

// Dismissal suppresses matching findings from reports: a reviewer has
// looked at the clause and accepted it. Scoring is unaffected.
type Dismissal struct {
	ID         int64      `json:"id"`
	RuleID     string     `json:"rule_id,omitempty"`
	Clause     string     `json:"clause,omitempty"`
	PatternSub string     `json:"pattern_sub,omitempty"`
	Reason     string     `json:"reason"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedBy  string     `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
}

// CreateDismissal requires at least one matcher so a dismissal can never
// blanket-suppress every finding.
func (db *DB) CreateDismissal(ruleID, clause, pattern, reason, createdBy string, expires time.Time) (int64, error) {
	if ruleID == "" && clause == "" && pattern == "" {
		return 0, errors.New("dismissal needs a rule_id, clause, or pattern")
	}
	if reason == "" {
		return 0, errors.New("dismissal needs a reason")
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := db.conn.Exec(
		`INSERT INTO dismissals(rule_id, clause, pattern_sub, reason, expires_at, created_by, created_at)
		 VALUES(?,?,?,?,?,?,?)`,
		ruleID, clause, pattern, reason, expires.UTC().Format(time.RFC3339Nano), createdBy, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListDismissals returns dismissals, optionally only the active ones
// (not revoked, not expired).
func (db *DB) ListDismissals(activeOnly bool) ([]Dismissal, error) {
	q := `SELECT id, rule_id, clause, pattern_sub, reason, expires_at, created_by, created_at, revoked_at
	        FROM dismissals`
	var args []any
	if activeOnly {
		q += ` WHERE revoked_at IS NULL AND expires_at > ?`
		args = append(args, time.Now().UTC().Format(time.RFC3339Nano))
	}
	q += ` ORDER BY id DESC`

	rows, err := db.conn.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Dismissal
	for rows.Next() {
		var d Dismissal
		var expires, created string
		var revoked *string
		if err := rows.Scan(&d.ID, &d.RuleID, &d.Clause, &d.PatternSub, &d.Reason, &expires, &d.CreatedBy, &created, &revoked); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, expires); err == nil {
			d.ExpiresAt = t
		}
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			d.CreatedAt = t
		}
		if revoked != nil {
			if t, err := time.Parse(time.RFC3339Nano, *revoked); err == nil {
				d.RevokedAt = &t
			}
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// RevokeDismissal marks a dismissal inactive; history is kept for audit.
func (db *DB) RevokeDismissal(id int64) error {
	return execOne(db.conn,
		`UPDATE dismissals SET revoked_at=? WHERE id=? AND revoked_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339Nano), id)
}
