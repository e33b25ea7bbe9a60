package sorting

import (
	"slices"

	"github.com/mcoot/gameroster/internal/model"
)

// InsertionStrategy is a stable O(n²) sort.
// Players with equal keys keep their relative input order in both directions.
type InsertionStrategy struct{}

// NewInsertionStrategy creates a new InsertionStrategy
func NewInsertionStrategy() *InsertionStrategy {
	return &InsertionStrategy{}
}

// Name returns the configured name of the strategy
func (s *InsertionStrategy) Name() string {
	return model.SortStrategyInsertion
}

// Sort returns a sorted copy of players
func (s *InsertionStrategy) Sort(players []model.Player, field model.SortField, ascending bool) []model.Player {
	compare := comparator(field, ascending)
	out := slices.Clone(players)

	for i := 1; i < len(out); i++ {
		current := out[i]
		j := i - 1
		for j >= 0 && compare(out[j], current) > 0 {
			out[j+1] = out[j]
			j--
		}
		out[j+1] = current
	}
	return out
}
