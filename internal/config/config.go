package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all desk configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Mirror  MirrorConfig  `yaml:"mirror"`
	Ledger  LedgerConfig  `yaml:"ledger"`
	Finance FinanceConfig `yaml:"finance"`
	Grading GradingConfig `yaml:"grading"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// MirrorConfig configures the Redis stock mirror. An empty address disables it.
type MirrorConfig struct {
	RedisAddr string `yaml:"redis_addr"`
	PoolSize  int    `yaml:"pool_size"`
}

// LedgerConfig selects where finance transactions are recorded.
type LedgerConfig struct {
	Driver string `yaml:"driver"` // memory, mysql, sqlite
	DSN    string `yaml:"dsn"`
}

type FinanceConfig struct {
	AccountNumber  string `yaml:"account_number"`
	OpeningBalance string `yaml:"opening_balance"`
}

type GradingConfig struct {
	DefaultInput  string `yaml:"default_input"`
	DefaultOutput string `yaml:"default_output"`
}

// Ledger drivers accepted by Validate.
const (
	LedgerMemory = "memory"
	LedgerMySQL  = "mysql"
	LedgerSQLite = "sqlite"
)

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Mirror: MirrorConfig{
			PoolSize: 10,
		},
		Ledger: LedgerConfig{
			Driver: LedgerMemory,
		},
		Finance: FinanceConfig{
			AccountNumber:  "ACC001",
			OpeningBalance: "1000.00",
		},
		Grading: GradingConfig{
			DefaultInput:  "students_input.txt",
			DefaultOutput: "students_output.txt",
		},
	}
}

// Load reads a YAML file over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Mirror.RedisAddr = v
	}
	if v := os.Getenv("MYSQL_DSN"); v != "" {
		c.Ledger.Driver = LedgerMySQL
		c.Ledger.DSN = v
	}
	if v := os.Getenv("DESK_LEDGER_DRIVER"); v != "" {
		c.Ledger.Driver = v
	}
	if v := os.Getenv("DESK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the values a run depends on.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level %q", c.Logging.Level)
	}

	switch c.Ledger.Driver {
	case LedgerMemory:
	case LedgerMySQL, LedgerSQLite:
		if c.Ledger.DSN == "" {
			return fmt.Errorf("ledger driver %s requires a dsn", c.Ledger.Driver)
		}
	default:
		return fmt.Errorf("unknown ledger driver %q", c.Ledger.Driver)
	}

	if c.Finance.AccountNumber == "" {
		return errors.New("finance account number is required")
	}
	if c.Mirror.PoolSize < 0 {
		return errors.New("mirror pool size cannot be negative")
	}
	return nil
}
