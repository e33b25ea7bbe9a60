package cli

// Config holds CLI-only settings. Everything that shapes the roster itself
// (storage, strategies, logging) is loaded through the config package.
type Config struct {
	ConfigPath string
	Output     string
	Verbose    bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Output:  "text",
		Verbose: false,
	}
}
