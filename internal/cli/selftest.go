package cli

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/gameroster/internal/selftest"
)

func newSelftestCmd() *cobra.Command {
	var keep bool

	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Run built-in checks against a throwaway roster",
		Long: `Run the built-in checks against a roster in a temporary directory.
The configured roster is never opened or modified.`,
		Annotations: map[string]string{skipAppAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.MkdirTemp("", "roster-selftest-")
			if err != nil {
				return err
			}
			if keep {
				logger.Info("keeping selftest directory", slog.String("dir", dir))
			} else {
				defer os.RemoveAll(dir)
			}

			results := selftest.Run(cmd.Context(), dir, logger)
			newOutput(cmd).Print(results)

			if !selftest.Passed(results) {
				return errors.New("selftest failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&keep, "keep", false, "Keep the temporary directory for inspection")

	return cmd
}
