package storage

import (
	"fmt"

	"github.com/mcoot/gameroster/internal/model"
)

// CheckLoaded verifies a decoded roster before a backend hands it out.
// Duplicate ids or invalid records mean the stored data cannot be trusted.
func CheckLoaded(players []model.Player) error {
	seen := make(map[model.PlayerID]struct{}, len(players))
	for i := range players {
		if err := players[i].Validate(); err != nil {
			return fmt.Errorf("%w: %v", model.ErrCorruptData, err)
		}
		if _, dup := seen[players[i].ID]; dup {
			return fmt.Errorf("%w: duplicate player id %d", model.ErrCorruptData, players[i].ID)
		}
		seen[players[i].ID] = struct{}{}
	}
	return nil
}
