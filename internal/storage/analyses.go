package storage

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lexkit/clauseguard/internal/contract"
)

// ErrNotFound is returned when a requested analysis does not exist.
var ErrNotFound = sql.ErrNoRows

// SaveAnalysis upserts a result JSON plus the contract text and (re)writes
// its findings rows.
func (db *DB) SaveAnalysis(res *contract.Result, contractText string) error {
	b, err := json.Marshal(res)
	if err != nil {
		return err
	}
	ts := res.CreatedAt.UTC().Format(time.RFC3339Nano)

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		`INSERT INTO analyses (id, created_at, contract_type, overall_risk, risk_level, confidence, text_length, contract_text, result_json)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET created_at=excluded.created_at, contract_type=excluded.contract_type,
           overall_risk=excluded.overall_risk, risk_level=excluded.risk_level, confidence=excluded.confidence,
           text_length=excluded.text_length, contract_text=excluded.contract_text, result_json=excluded.result_json`,
		res.ID, ts, res.ContractType, res.OverallRisk, string(res.RiskLevel), res.Confidence,
		res.TextLength, contractText, string(b),
	); err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM findings WHERE analysis_id = ?`, res.ID); err != nil {
		return err
	}
	findings := res.Findings()
	if len(findings) > 0 {
		stmt, err := tx.Prepare(`
			INSERT INTO findings (analysis_id, seq, rule_id, clause, section, issue, suggestion, severity)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, f := range findings {
			if _, err := stmt.Exec(res.ID, i, f.RuleID, f.Clause, f.Section, f.Issue, f.Suggestion, string(f.Severity)); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// LoadAnalysis returns the full result (from stored JSON) and the original
// contract text, which the report renderer needs.
func (db *DB) LoadAnalysis(id string) (contract.Result, string, error) {
	var resJSON, text string
	row := db.conn.QueryRow(`SELECT result_json, contract_text FROM analyses WHERE id = ?`, id)
	if err := row.Scan(&resJSON, &text); err != nil {
		return contract.Result{}, "", err
	}
	var res contract.Result
	if err := json.Unmarshal([]byte(resJSON), &res); err != nil {
		return contract.Result{}, "", err
	}
	return res, text, nil
}

// ListAnalyses returns a lightweight, newest-first listing.
func (db *DB) ListAnalyses(limit, offset int) ([]AnalysisRow, error) {
	const q = `
		SELECT a.id, a.created_at, a.contract_type, a.overall_risk, a.risk_level, a.confidence,
		       (SELECT COUNT(1) FROM findings f WHERE f.analysis_id = a.id) AS findings
		  FROM analyses a
		 ORDER BY a.created_at DESC, a.id DESC
		 LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AnalysisRow
	for rows.Next() {
		var ar AnalysisRow
		var created string
		if err := rows.Scan(&ar.ID, &created, &ar.ContractType, &ar.OverallRisk, &ar.RiskLevel, &ar.Confidence, &ar.Findings); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			ar.CreatedAt = t
		} else if t2, err2 := time.Parse(time.RFC3339, created); err2 == nil {
			ar.CreatedAt = t2
		}
		out = append(out, ar)
	}
	return out, rows.Err()
}

// HasAnalysis reports whether an analysis exists.
func (db *DB) HasAnalysis(id string) (bool, error) {
	var one int
	err := db.conn.QueryRow(`SELECT 1 FROM analyses WHERE id = ? LIMIT 1`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}
