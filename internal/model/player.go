package model

import (
	"fmt"
	"math"
	"strings"
)

// PlayerID uniquely identifies a player in the roster. It is supplied by the caller.
type PlayerID int

// Player represents one game account
type Player struct {
	ID          PlayerID `json:"id"`
	Username    string   `json:"username"`
	HoursPlayed float64  `json:"hours_played"`
	HighScore   int      `json:"high_score"`
}

// NewPlayer creates a player with zeroed stats
func NewPlayer(id PlayerID, username string) (*Player, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	return &Player{ID: id, Username: username}, nil
}

// Validate checks the invariants every stored player must satisfy
func (p *Player) Validate() error {
	if err := ValidateUsername(p.Username); err != nil {
		return fmt.Errorf("player %d: %w", p.ID, err)
	}
	if err := ValidateHours(p.HoursPlayed); err != nil {
		return fmt.Errorf("player %d: %w", p.ID, err)
	}
	return nil
}

// ValidateUsername rejects empty or whitespace-only usernames
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username must not be empty", ErrInvalidArgument)
	}
	return nil
}

// ValidateHours rejects negative and non-finite hour totals
func ValidateHours(hours float64) error {
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return fmt.Errorf("%w: hours played must be a finite number", ErrInvalidArgument)
	}
	if hours < 0 {
		return fmt.Errorf("%w: hours played must not be negative (got %g)", ErrInvalidArgument, hours)
	}
	return nil
}

// MatchesUsername reports whether name equals the player's username, ignoring case
func (p *Player) MatchesUsername(name string) bool {
	return strings.EqualFold(p.Username, name)
}
