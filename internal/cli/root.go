package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/gameroster/internal/config"
	"github.com/mcoot/gameroster/internal/factory"
)

// skipAppAnnotation marks commands that run without opening the configured roster
const skipAppAnnotation = "roster/skip-app"

var (
	cfg    *Config
	app    *factory.App
	logger *slog.Logger
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()
	app = nil
	logger = nil

	rootCmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage a persistent roster of game players",
		Long: `roster maintains a list of player accounts with their hours played and
high score. Every change is persisted immediately and recorded in an
append-only audit log.

Storage, sorting strategy and logging are configured through roster.yaml,
ROSTER_* environment variables, or the flags below.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Output != "text" && cfg.Output != "json" {
				return fmt.Errorf("invalid output format %q: must be text or json", cfg.Output)
			}

			appCfg, err := config.LoadConfig(cfg.ConfigPath, cmd.Flags())
			if err != nil {
				return err
			}
			if cfg.Verbose {
				appCfg.Logging.Level = "debug"
			}
			logger = appCfg.Logging.NewLogger(cmd.ErrOrStderr())

			if cmd.Annotations[skipAppAnnotation] == "true" {
				return nil
			}

			app, err = factory.New(cmd.Context(), appCfg, logger)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app == nil {
				return nil
			}
			return app.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.ConfigPath, "config", "", "Config file (default ./roster.yaml)")
	flags.String("storage", config.StorageTypeFile, "Storage backend: file, memory, redis, sqlite (env: ROSTER_STORAGE_TYPE)")
	flags.String("data-file", "players.json", "Roster data file for file storage (env: ROSTER_STORAGE_DATA_FILE)")
	flags.String("log-file", "actions.txt", "Audit log file for file storage (env: ROSTER_STORAGE_LOG_FILE)")
	flags.String("sqlite-path", "roster.db", "Database path for sqlite storage (env: ROSTER_STORAGE_SQLITE_PATH)")
	flags.String("redis-url", "redis://localhost:6379", "Redis URL for redis storage (env: ROSTER_REDIS_URL)")
	flags.String("sort-strategy", "insertion", "Sort strategy: insertion, comparison (env: ROSTER_ROSTER_SORT_STRATEGY)")
	flags.String("log-level", "info", "Log level: debug, info, warn, error (env: ROSTER_LOGGING_LEVEL)")
	flags.String("log-format", "json", "Log format: json, text (env: ROSTER_LOGGING_FORMAT)")
	flags.StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newSelftestCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		NewOutput(cfg.Output, rootCmd.OutOrStdout(), rootCmd.ErrOrStderr()).PrintError(err)
		os.Exit(1)
	}
}
