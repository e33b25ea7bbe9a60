package sorting

import (
	"slices"

	"github.com/mcoot/gameroster/internal/model"
)

// ComparisonStrategy sorts with pattern-defeating quicksort, O(n log n) on average.
//
// It is not stable: players with equal keys may come out in a different relative
// order than InsertionStrategy produces. Players with distinct keys are ordered
// identically, and repeated calls on the same input give the same output.
type ComparisonStrategy struct{}

// NewComparisonStrategy creates a new ComparisonStrategy
func NewComparisonStrategy() *ComparisonStrategy {
	return &ComparisonStrategy{}
}

// Name returns the configured name of the strategy
func (s *ComparisonStrategy) Name() string {
	return model.SortStrategyComparison
}

// Sort returns a sorted copy of players
func (s *ComparisonStrategy) Sort(players []model.Player, field model.SortField, ascending bool) []model.Player {
	out := slices.Clone(players)
	slices.SortFunc(out, comparator(field, ascending))
	return out
}
