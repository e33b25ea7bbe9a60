package search

import (
	"fmt"
	"strings"

	"github.com/mcoot/gameroster/internal/model"
)

// Strategy looks players up in a roster snapshot.
// Implementations are stateless and must not modify the slice they are given.
type Strategy interface {
	FindByID(players []model.Player, id model.PlayerID) (model.Player, bool)
	FindByUsername(players []model.Player, username string) (model.Player, bool)
}

// ForName resolves a search strategy by its configured name
func ForName(name string) (Strategy, error) {
	switch name {
	case model.SearchStrategyLinear, "":
		return NewLinearStrategy(), nil
	default:
		return nil, fmt.Errorf("%w: search strategy %q (valid: %s)", model.ErrUnknownStrategy, name,
			strings.Join(model.ValidSearchStrategies(), ", "))
	}
}
