package file

// Config holds the locations of the roster data file and the audit log
type Config struct {
	// DataPath is the JSON file holding the whole roster
	DataPath string

	// LogPath is the append-only audit log
	LogPath string
}

// DefaultConfig returns the production file locations, relative to the working directory
func DefaultConfig() Config {
	return Config{
		DataPath: "players.json",
		LogPath:  "actions.txt",
	}
}
