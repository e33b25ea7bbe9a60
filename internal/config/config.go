package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Storage backends
const (
	StorageTypeFile   = "file"
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// Config is the main configuration struct combining all sub-configs
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Roster  RosterConfig  `mapstructure:"roster"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StorageConfig selects where the roster and audit trail live
type StorageConfig struct {
	Type string `mapstructure:"type" validate:"required,oneof=file memory redis sqlite"`

	// File backend
	DataFile string `mapstructure:"data_file" validate:"required_if=Type file"`
	LogFile  string `mapstructure:"log_file" validate:"required_if=Type file"`

	// SQLite backend
	SQLitePath string `mapstructure:"sqlite_path" validate:"required_if=Type sqlite"`
}

// RedisConfig holds Redis backend settings
type RedisConfig struct {
	URL       string `mapstructure:"url"`
	KeyPrefix string `mapstructure:"key_prefix" validate:"required"`
	LogMaxLen int64  `mapstructure:"log_max_len" validate:"min=0"`
}

// RosterConfig selects the repository's algorithms
type RosterConfig struct {
	SortStrategy   string `mapstructure:"sort_strategy" validate:"required,oneof=insertion comparison"`
	SearchStrategy string `mapstructure:"search_strategy" validate:"required,oneof=linear"`
}

// flagKeys maps CLI flag names onto config keys
var flagKeys = map[string]string{
	"storage":       "storage.type",
	"data-file":     "storage.data_file",
	"log-file":      "storage.log_file",
	"sqlite-path":   "storage.sqlite_path",
	"redis-url":     "redis.url",
	"sort-strategy": "roster.sort_strategy",
	"log-level":     "logging.level",
	"log-format":    "logging.format",
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. CLI flags that were set explicitly (highest priority)
// 2. Environment variables (ROSTER_ prefix)
// 3. Config file (roster.yaml, or configPath)
// 4. Defaults (lowest priority)
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("roster")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ROSTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK - we'll use env vars and defaults
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
