package storage

import (
	"context"

	"github.com/mcoot/gameroster/internal/model"
)

// Storage defines the durable side of the roster: the full player collection
// and an append-only audit trail. Locations (paths, keys) are fixed when a
// backend is constructed.
type Storage interface {
	// Load returns the saved roster in saved order.
	// A backend with nothing saved yet returns an empty roster, not an error.
	// Unparsable content yields model.ErrCorruptData.
	Load(ctx context.Context) ([]model.Player, error)

	// SaveAll replaces the saved roster with players. A failed write must leave
	// the previous roster intact and yields model.ErrIOFailure.
	SaveAll(ctx context.Context, players []model.Player) error

	// AppendLog appends one human-readable line to the audit trail
	AppendLog(ctx context.Context, line string) error

	Close() error
}
