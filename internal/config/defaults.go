package config

import (
	"github.com/spf13/viper"

	"github.com/mcoot/gameroster/internal/model"
)

// SetDefaults registers the default value of every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage.type", StorageTypeFile)
	v.SetDefault("storage.data_file", "players.json")
	v.SetDefault("storage.log_file", "actions.txt")
	v.SetDefault("storage.sqlite_path", "roster.db")

	v.SetDefault("redis.url", "redis://localhost:6379")
	v.SetDefault("redis.key_prefix", "roster")
	v.SetDefault("redis.log_max_len", 10000)

	v.SetDefault("roster.sort_strategy", model.SortStrategyInsertion)
	v.SetDefault("roster.search_strategy", model.SearchStrategyLinear)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	// Defaults always decode; a failure here is a programming error
	if err := v.Unmarshal(&cfg); err != nil {
		panic(err)
	}
	return &cfg
}
