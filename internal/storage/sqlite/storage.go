package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mcoot/gameroster/internal/model"
	"github.com/mcoot/gameroster/internal/storage"
)

const createPlayersTable = `
CREATE TABLE IF NOT EXISTS players (
	id INTEGER PRIMARY KEY,
	username TEXT NOT NULL,
	hours_played REAL NOT NULL DEFAULT 0,
	high_score INTEGER NOT NULL DEFAULT 0,
	position INTEGER NOT NULL
);
`

const createAuditTable = `
CREATE TABLE IF NOT EXISTS audit_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	line TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
`

// Config holds the sqlite database location
type Config struct {
	Path string
}

// DefaultConfig returns the default database file, relative to the working directory
func DefaultConfig() Config {
	return Config{Path: "roster.db"}
}

// Storage keeps the roster and the audit trail in a single sqlite file
type Storage struct {
	db *sql.DB
}

// New opens the database and creates the tables if needed
func New(ctx context.Context, cfg Config) (*Storage, error) {
	db, err := Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrIOFailure, err)
	}

	s := NewWithDB(db)
	if err := s.Init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB wraps an already open database. Call Init before use.
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Init creates the tables if they do not exist yet
func (s *Storage) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createPlayersTable); err != nil {
		return fmt.Errorf("%w: create players table: %w", model.ErrIOFailure, err)
	}
	if _, err := s.db.ExecContext(ctx, createAuditTable); err != nil {
		return fmt.Errorf("%w: create audit table: %w", model.ErrIOFailure, err)
	}
	return nil
}

func (s *Storage) Load(ctx context.Context) ([]model.Player, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, username, hours_played, high_score
FROM players
ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: query players: %w", model.ErrIOFailure, err)
	}
	defer rows.Close()

	players := []model.Player{}
	for rows.Next() {
		var p model.Player
		if err := rows.Scan(&p.ID, &p.Username, &p.HoursPlayed, &p.HighScore); err != nil {
			return nil, fmt.Errorf("%w: scan player: %v", model.ErrCorruptData, err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate players: %w", model.ErrIOFailure, err)
	}

	if err := storage.CheckLoaded(players); err != nil {
		return nil, err
	}
	return players, nil
}

// SaveAll replaces every row inside one transaction
func (s *Storage) SaveAll(ctx context.Context, players []model.Player) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", model.ErrIOFailure, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM players`); err != nil {
		return fmt.Errorf("%w: clear players: %w", model.ErrIOFailure, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO players (id, username, hours_played, high_score, position)
VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: prepare insert: %w", model.ErrIOFailure, err)
	}
	defer stmt.Close()

	for i, p := range players {
		if _, err = stmt.ExecContext(ctx, p.ID, p.Username, p.HoursPlayed, p.HighScore, i); err != nil {
			return fmt.Errorf("%w: insert player %d: %w", model.ErrIOFailure, p.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", model.ErrIOFailure, err)
	}
	return nil
}

func (s *Storage) AppendLog(ctx context.Context, line string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO audit_log (line, created_at)
VALUES (?, ?)`,
		line,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("%w: insert audit line: %w", model.ErrIOFailure, err)
	}
	return nil
}

// Lines returns the audit trail, oldest first
func (s *Storage) Lines(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT line FROM audit_log ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: query audit lines: %w", model.ErrIOFailure, err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("%w: scan audit line: %w", model.ErrIOFailure, err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (s *Storage) Close() error {
	return s.db.Close()
}
