package search

import "github.com/mcoot/gameroster/internal/model"

// LinearStrategy scans the roster in storage order and returns the first match.
// No index is kept, so every lookup is O(n).
type LinearStrategy struct{}

// NewLinearStrategy creates a new LinearStrategy
func NewLinearStrategy() *LinearStrategy {
	return &LinearStrategy{}
}

// FindByID returns the player with the given id
func (s *LinearStrategy) FindByID(players []model.Player, id model.PlayerID) (model.Player, bool) {
	for _, p := range players {
		if p.ID == id {
			return p, true
		}
	}
	return model.Player{}, false
}

// FindByUsername returns the first player whose username equals name, ignoring case.
// Usernames are not unique, so the earliest inserted player wins.
func (s *LinearStrategy) FindByUsername(players []model.Player, name string) (model.Player, bool) {
	for i := range players {
		if players[i].MatchesUsername(name) {
			return players[i], true
		}
	}
	return model.Player{}, false
}
