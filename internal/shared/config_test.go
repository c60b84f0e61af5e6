package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	c, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Quota.FreeDailyLimit != 5 || c.API.Addr != ":8080" || c.Logging.Format != "json" {
		t.Fatalf("defaults = %+v", c)
	}
}

func TestLoadConfig_FileAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clauseguard.yaml")
	yaml := `
database:
  dsn: ./from-file.db
quota:
  free_daily_limit: 3
rules:
  weights:
    LIABILITY-UNLIMITED: 40
  disabled:
    - RENEWAL-AUTOMATIC
logging:
  format: text
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CLAUSEGUARD_DB_DSN", "./from-env.db")
	t.Setenv("CLAUSEGUARD_FREE_DAILY_LIMIT", "7")

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// Env wins over file, file wins over defaults.
	if c.Database.DSN != "./from-env.db" || c.Quota.FreeDailyLimit != 7 {
		t.Fatalf("env precedence: %+v", c)
	}
	if c.Logging.Format != "text" || c.Rules.Weights["LIABILITY-UNLIMITED"] != 40 {
		t.Fatalf("file values: %+v", c)
	}
	if len(c.Rules.Disabled) != 1 || c.Rules.Disabled[0] != "RENEWAL-AUTOMATIC" {
		t.Fatalf("disabled = %v", c.Rules.Disabled)
	}
	// Untouched keys keep their defaults.
	if c.API.Addr != ":8080" {
		t.Fatalf("addr = %q", c.API.Addr)
	}
}
