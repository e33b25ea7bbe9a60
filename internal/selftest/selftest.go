// Package selftest runs a set of end-to-end checks against a throwaway roster.
package selftest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mcoot/gameroster/internal/dependencies/clock"
	"github.com/mcoot/gameroster/internal/model"
	"github.com/mcoot/gameroster/internal/roster"
	"github.com/mcoot/gameroster/internal/search"
	"github.com/mcoot/gameroster/internal/sorting"
	"github.com/mcoot/gameroster/internal/storage/file"
)

const (
	dataFileName = "players_test.json"
	logFileName  = "actions_test.txt"
)

// Result is the outcome of a single check
type Result struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

type check struct {
	name string
	run  func(ctx context.Context, repo *roster.Repository) (string, error)
}

var checks = []check{
	{name: "AddPlayer", run: checkAddPlayer},
	{name: "PreventDuplicateID", run: checkPreventDuplicateID},
	{name: "UpdateStats", run: checkUpdateStats},
	{name: "LinearSearch", run: checkLinearSearch},
	{name: "InsertionSort", run: checkSort(sorting.NewInsertionStrategy())},
	{name: "ComparisonSort", run: checkSort(sorting.NewComparisonStrategy())},
	{name: "Delete", run: checkDelete},
}

// Run executes every check against a fresh file-backed roster under dir.
// Each check gets its own subdirectory, so one failing check cannot affect another.
func Run(ctx context.Context, dir string, logger *slog.Logger) []Result {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	logger = logger.With(slog.String("component", "selftest"))

	results := make([]Result, 0, len(checks))
	for _, c := range checks {
		res := runCheck(ctx, filepath.Join(dir, c.name), c, logger)
		outcome := "PASS"
		if !res.Passed {
			outcome = "FAIL"
		}
		logger.Info(fmt.Sprintf("UNIT TEST %s - %s - %s", res.Name, outcome, res.Message),
			slog.String("test", res.Name),
			slog.Bool("passed", res.Passed),
		)
		results = append(results, res)
	}
	return results
}

// Passed reports whether every result passed
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

func runCheck(ctx context.Context, dir string, c check, logger *slog.Logger) (res Result) {
	res.Name = c.name
	defer func() {
		if p := recover(); p != nil {
			res.Passed = false
			res.Message = fmt.Sprintf("panic: %v", p)
		}
	}()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		res.Message = err.Error()
		return res
	}

	store := file.New(file.Config{
		DataPath: filepath.Join(dir, dataFileName),
		LogPath:  filepath.Join(dir, logFileName),
	})
	defer store.Close()

	repo := roster.New(store, roster.Options{
		Search: search.NewLinearStrategy(),
		Sort:   sorting.NewInsertionStrategy(),
		Clock:  clock.New(),
		Logger: logger,
	})
	if err := repo.LoadAll(ctx); err != nil {
		res.Message = err.Error()
		return res
	}

	msg, err := c.run(ctx, repo)
	if err != nil {
		res.Message = err.Error()
		return res
	}
	res.Passed = true
	res.Message = msg
	return res
}

func checkAddPlayer(ctx context.Context, repo *roster.Repository) (string, error) {
	if _, err := repo.Add(ctx, 1001, "test_user"); err != nil {
		return "", fmt.Errorf("add failed: %w", err)
	}
	p, err := repo.GetByID(ctx, 1001)
	if err != nil {
		return "", fmt.Errorf("player not found after add: %w", err)
	}
	if p.Username != "test_user" {
		return "", fmt.Errorf("expected username test_user, got %q", p.Username)
	}
	return "player added and retrieved", nil
}

func checkPreventDuplicateID(ctx context.Context, repo *roster.Repository) (string, error) {
	if _, err := repo.Add(ctx, 2002, "dup1"); err != nil {
		return "", fmt.Errorf("first add failed: %w", err)
	}
	_, err := repo.Add(ctx, 2002, "dup2")
	if !errors.Is(err, model.ErrDuplicateID) {
		return "", fmt.Errorf("expected duplicate id error, got %v", err)
	}
	if n := repo.Count(); n != 1 {
		return "", fmt.Errorf("expected 1 player, got %d", n)
	}
	return "duplicate id rejected", nil
}

func checkUpdateStats(ctx context.Context, repo *roster.Repository) (string, error) {
	if _, err := repo.Add(ctx, 3003, "stats_user"); err != nil {
		return "", fmt.Errorf("add failed: %w", err)
	}
	if _, err := repo.UpdateStats(ctx, 3003, 2.5, 800); err != nil {
		return "", fmt.Errorf("update failed: %w", err)
	}
	p, err := repo.GetByID(ctx, 3003)
	if err != nil {
		return "", err
	}
	if p.HoursPlayed != 2.5 || p.HighScore != 800 {
		return "", fmt.Errorf("expected 2.5h/800, got %gh/%d", p.HoursPlayed, p.HighScore)
	}
	return "stats updated", nil
}

func checkLinearSearch(ctx context.Context, repo *roster.Repository) (string, error) {
	if _, err := repo.Add(ctx, 4004, "SEARCH_ME"); err != nil {
		return "", fmt.Errorf("add failed: %w", err)
	}
	p, err := repo.GetByUsername(ctx, "search_me")
	if err != nil {
		return "", fmt.Errorf("case-insensitive lookup failed: %w", err)
	}
	if p.ID != 4004 {
		return "", fmt.Errorf("expected id 4004, got %d", p.ID)
	}
	return "found player ignoring case", nil
}

func checkSort(strategy sorting.Strategy) func(context.Context, *roster.Repository) (string, error) {
	return func(ctx context.Context, repo *roster.Repository) (string, error) {
		for _, id := range []model.PlayerID{3, 1, 2} {
			if _, err := repo.Add(ctx, id, fmt.Sprintf("p%d", id)); err != nil {
				return "", fmt.Errorf("add failed: %w", err)
			}
		}
		repo.SetSortStrategy(strategy)
		sorted, err := repo.Sort(ctx, model.SortByID, true)
		if err != nil {
			return "", err
		}
		got := make([]model.PlayerID, len(sorted))
		for i, p := range sorted {
			got[i] = p.ID
		}
		if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
			return "", fmt.Errorf("expected order [1 2 3], got %v", got)
		}
		return fmt.Sprintf("%s ordered ids", model.SortStrategyDisplayName(strategy.Name())), nil
	}
}

func checkDelete(ctx context.Context, repo *roster.Repository) (string, error) {
	if _, err := repo.Add(ctx, 5005, "delete_me"); err != nil {
		return "", fmt.Errorf("add failed: %w", err)
	}
	if err := repo.Delete(ctx, 5005); err != nil {
		return "", fmt.Errorf("delete failed: %w", err)
	}
	if _, err := repo.GetByID(ctx, 5005); !errors.Is(err, model.ErrPlayerNotFound) {
		return "", fmt.Errorf("expected player to be gone, got %v", err)
	}
	return "player deleted", nil
}
