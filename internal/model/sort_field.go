package model

import (
	"fmt"
	"strings"
)

// SortField selects the player attribute a roster is ordered by
type SortField string

const (
	SortByID          SortField = "id"
	SortByUsername    SortField = "username"
	SortByHoursPlayed SortField = "hours_played"
	SortByHighScore   SortField = "high_score"
)

// ValidSortFields returns all sortable fields
func ValidSortFields() []SortField {
	return []SortField{SortByID, SortByUsername, SortByHoursPlayed, SortByHighScore}
}

// IsValid reports whether f is one of the known sort fields
func (f SortField) IsValid() bool {
	switch f {
	case SortByID, SortByUsername, SortByHoursPlayed, SortByHighScore:
		return true
	}
	return false
}

// ParseSortField converts user input into a SortField.
// Matching is case-insensitive and accepts a few short aliases.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "id":
		return SortByID, nil
	case "username", "name":
		return SortByUsername, nil
	case "hours_played", "hoursplayed", "hours":
		return SortByHoursPlayed, nil
	case "high_score", "highscore", "score":
		return SortByHighScore, nil
	}
	valid := make([]string, 0, len(ValidSortFields()))
	for _, f := range ValidSortFields() {
		valid = append(valid, string(f))
	}
	return "", fmt.Errorf("%w: unknown sort field %q (valid: %s)", ErrInvalidArgument, s, strings.Join(valid, ", "))
}
