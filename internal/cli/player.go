package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/gameroster/internal/model"
	"github.com/mcoot/gameroster/internal/sorting"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerAddCmd())
	cmd.AddCommand(newPlayerGetCmd())
	cmd.AddCommand(newPlayerUpdateCmd())
	cmd.AddCommand(newPlayerRenameCmd())
	cmd.AddCommand(newPlayerDeleteCmd())
	cmd.AddCommand(newPlayerListCmd())

	return cmd
}

func newOutput(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func newPlayerAddCmd() *cobra.Command {
	var id int
	var name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new player",
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := app.Repository.Add(cmd.Context(), model.PlayerID(id), name)
			if err != nil {
				return err
			}

			newOutput(cmd).Print(player)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Player ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "Username (required)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPlayerGetCmd() *cobra.Command {
	var id int
	var name string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Look up a player by ID or username",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				player model.Player
				err    error
			)
			if cmd.Flags().Changed("id") {
				player, err = app.Repository.GetByID(cmd.Context(), model.PlayerID(id))
			} else {
				player, err = app.Repository.GetByUsername(cmd.Context(), name)
			}
			if err != nil {
				return err
			}

			newOutput(cmd).Print(player)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Player ID")
	cmd.Flags().StringVar(&name, "name", "", "Username (case-insensitive)")
	cmd.MarkFlagsOneRequired("id", "name")
	cmd.MarkFlagsMutuallyExclusive("id", "name")

	return cmd
}

func newPlayerUpdateCmd() *cobra.Command {
	var id, score int
	var hours float64

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Replace a player's hours played and high score",
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := app.Repository.UpdateStats(cmd.Context(), model.PlayerID(id), hours, score)
			if err != nil {
				return err
			}

			newOutput(cmd).Print(player)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Player ID (required)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Total hours played (required)")
	cmd.Flags().IntVar(&score, "score", 0, "High score (required)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("hours")
	_ = cmd.MarkFlagRequired("score")

	return cmd
}

func newPlayerRenameCmd() *cobra.Command {
	var id int
	var name string

	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Change a player's username",
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := app.Repository.Rename(cmd.Context(), model.PlayerID(id), name)
			if err != nil {
				return err
			}

			newOutput(cmd).Print(player)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Player ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "New username (required)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPlayerDeleteCmd() *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove a player",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Repository.Delete(cmd.Context(), model.PlayerID(id)); err != nil {
				return err
			}

			newOutput(cmd).PrintMessage(fmt.Sprintf("Deleted player %d", id))
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Player ID (required)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newPlayerListCmd() *cobra.Command {
	var sortBy, strategy string
	var desc bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List players, optionally sorted",
		Long: `List players in the order they were added, or sorted by a field.

Fields: id, username (name), hours_played (hours), high_score (score).
Sorting never changes the stored order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strategy != "" {
				s, err := sorting.ForName(strategy)
				if err != nil {
					return err
				}
				app.Repository.SetSortStrategy(s)
			}

			if sortBy == "" && desc {
				sortBy = string(model.SortByID)
			}

			var players []model.Player
			if sortBy == "" {
				players = app.Repository.List(cmd.Context())
			} else {
				field, err := model.ParseSortField(sortBy)
				if err != nil {
					return err
				}
				players, err = app.Repository.Sort(cmd.Context(), field, !desc)
				if err != nil {
					return err
				}
			}

			if players == nil {
				players = []model.Player{}
			}
			newOutput(cmd).Print(players)
			return nil
		},
	}

	cmd.Flags().StringVar(&sortBy, "sort-by", "", "Sort field: id, username, hours_played, high_score")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort in descending order")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Sort strategy for this listing: insertion, comparison")

	return cmd
}
