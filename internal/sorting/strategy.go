package sorting

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/mcoot/gameroster/internal/model"
)

// Strategy orders a roster snapshot by one field.
// Implementations return a new slice and never modify their input.
type Strategy interface {
	Name() string
	Sort(players []model.Player, field model.SortField, ascending bool) []model.Player
}

// ForName resolves a sort strategy by its configured name
func ForName(name string) (Strategy, error) {
	switch name {
	case model.SortStrategyInsertion, "":
		return NewInsertionStrategy(), nil
	case model.SortStrategyComparison:
		return NewComparisonStrategy(), nil
	default:
		return nil, fmt.Errorf("%w: sort strategy %q (valid: %s)", model.ErrUnknownStrategy, name,
			strings.Join(model.ValidSortStrategies(), ", "))
	}
}

// Compare orders two players by field in ascending order.
// Usernames compare case-insensitively. Unknown fields compare equal.
func Compare(a, b model.Player, field model.SortField) int {
	switch field {
	case model.SortByID:
		return cmp.Compare(a.ID, b.ID)
	case model.SortByUsername:
		return cmp.Compare(strings.ToLower(a.Username), strings.ToLower(b.Username))
	case model.SortByHoursPlayed:
		return cmp.Compare(a.HoursPlayed, b.HoursPlayed)
	case model.SortByHighScore:
		return cmp.Compare(a.HighScore, b.HighScore)
	default:
		return 0
	}
}

// comparator returns a comparison for the requested direction.
// Descending negates the result so ties keep whatever order the algorithm gives them.
func comparator(field model.SortField, ascending bool) func(a, b model.Player) int {
	if ascending {
		return func(a, b model.Player) int { return Compare(a, b, field) }
	}
	return func(a, b model.Player) int { return -Compare(a, b, field) }
}
