package shared

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database struct {
		Driver string `yaml:"driver"` // "sqlite" (default)
		DSN    string `yaml:"dsn"`    // "./clauseguard.db"
	} `yaml:"database"`

	Quota struct {
		FreeDailyLimit int `yaml:"free_daily_limit"` // 5
	} `yaml:"quota"`

	Rules struct {
		Weights  map[string]int `yaml:"weights"`  // per-rule weight overrides
		Disabled []string       `yaml:"disabled"` // rule IDs to skip
		Packs    []string       `yaml:"packs"`    // extra YAML rule pack paths
	} `yaml:"rules"`

	Reporting struct {
		OutDir string `yaml:"out_dir"` // "./reports"
	} `yaml:"reporting"`

	API struct {
		Addr            string `yaml:"addr"`              // ":8080"
		SessionTTLHours int    `yaml:"session_ttl_hours"` // 12
	} `yaml:"api"`

	Logging struct {
		Format string `yaml:"format"` // "json"|"text"
		Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
	} `yaml:"logging"`
}

func DefaultConfig() Config {
	var c Config
	c.Database.Driver = "sqlite"
	c.Database.DSN = "./clauseguard.db"
	c.Quota.FreeDailyLimit = 5
	c.Reporting.OutDir = "./reports"
	c.API.Addr = ":8080"
	c.API.SessionTTLHours = 12
	c.Logging.Format = "json"
	c.Logging.Level = "info"
	return c
}

func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}
	// Env overrides (simple, explicit)
	if v := os.Getenv("CLAUSEGUARD_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("CLAUSEGUARD_FREE_DAILY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Quota.FreeDailyLimit = n
		}
	}
	if v := os.Getenv("CLAUSEGUARD_OUT_DIR"); v != "" {
		c.Reporting.OutDir = v
	}
	if v := os.Getenv("CLAUSEGUARD_API_ADDR"); v != "" {
		c.API.Addr = v
	}
	if v := os.Getenv("CLAUSEGUARD_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("CLAUSEGUARD_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return c, nil
}
