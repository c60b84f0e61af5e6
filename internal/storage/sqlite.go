package storage

import (
	"database/sql"

	_ "modernc.org/sqlite" // CGO-free SQLite driver
)

// DB is the concrete storage backed by SQLite.
type DB struct {
	conn *sql.DB
}

// OpenSQLite opens (and creates if missing) a SQLite DB at path.
func OpenSQLite(path string) (*DB, error) {
	// Pragmas via DSN keep it portable with the modernc driver. WAL plus
	// busy_timeout lets concurrent writers queue instead of failing, which
	// the usage counter's check-and-increment relies on.
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)"
	c, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	return &DB{conn: c}, nil
}

func (db *DB) Close() error { return db.conn.Close() }

// CreateSchema ensures all tables exist.
func (db *DB) CreateSchema() error {
	_, err := db.conn.Exec(`
CREATE TABLE IF NOT EXISTS analyses (
  id            TEXT PRIMARY KEY,
  created_at    TEXT NOT NULL,    -- RFC3339
  contract_type TEXT,
  overall_risk  INTEGER NOT NULL,
  risk_level    TEXT NOT NULL,
  confidence    INTEGER NOT NULL,
  text_length   INTEGER NOT NULL,
  contract_text TEXT NOT NULL,    -- kept for report export
  result_json   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS findings (
  analysis_id TEXT NOT NULL,
  seq         INTEGER NOT NULL,
  rule_id     TEXT NOT NULL,
  clause      TEXT NOT NULL,
  section     TEXT,
  issue       TEXT NOT NULL,
  suggestion  TEXT NOT NULL,
  severity    TEXT NOT NULL,
  PRIMARY KEY (analysis_id, seq),
  FOREIGN KEY(analysis_id) REFERENCES analyses(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_findings_analysis ON findings(analysis_id);
CREATE INDEX IF NOT EXISTS idx_findings_rule ON findings(rule_id);

CREATE TABLE IF NOT EXISTS usage (
  identity   TEXT NOT NULL,
  period_key TEXT NOT NULL,      -- YYYY-MM-DD (UTC)
  count      INTEGER NOT NULL DEFAULT 0,
  PRIMARY KEY (identity, period_key)
);

CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT UNIQUE NOT NULL,
  pass_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'viewer',
  tier TEXT NOT NULL DEFAULT 'free',
  created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
  token TEXT PRIMARY KEY,
  user_id INTEGER NOT NULL,
  expires_at TEXT NOT NULL,
  created_at TEXT NOT NULL,
  FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS audit (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  ts TEXT NOT NULL,
  username TEXT,
  action TEXT NOT NULL,
  resource TEXT,
  meta_json TEXT
);

CREATE TABLE IF NOT EXISTS dismissals (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  rule_id     TEXT,              -- optional exact match; NULL = any
  clause      TEXT,              -- optional exact match; NULL = any
  pattern_sub TEXT,              -- optional substring on issue/suggestion
  reason      TEXT NOT NULL,
  expires_at  TEXT NOT NULL,     -- RFC3339Nano
  created_by  TEXT NOT NULL,
  created_at  TEXT NOT NULL,
  revoked_at  TEXT               -- NULL = active
);
`)
	return err
}
