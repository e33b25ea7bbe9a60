package redis

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// KeyPrefix namespaces every key, so test and production rosters can share a server
	KeyPrefix string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// LogMaxLen caps the audit list; older lines are trimmed. Zero keeps everything.
	LogMaxLen int64
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		KeyPrefix:    "roster",
		PoolSize:     4,
		MinIdleConns: 1,
		LogMaxLen:    10000,
	}
}
