package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mcoot/gameroster/internal/model"
	"github.com/mcoot/gameroster/internal/storage"
)

// Storage keeps the roster in a JSON file and the audit trail in a plain text file
type Storage struct {
	cfg Config
}

// New creates a file storage instance. Nothing is touched on disk until first use.
func New(cfg Config) *Storage {
	return &Storage{cfg: cfg}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Config returns the paths this instance reads and writes
func (s *Storage) Config() Config {
	return s.cfg
}

func (s *Storage) Load(ctx context.Context) ([]model.Player, error) {
	data, err := os.ReadFile(s.cfg.DataPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []model.Player{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %w", model.ErrIOFailure, s.cfg.DataPath, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Player{}, nil
	}

	var players []model.Player
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrCorruptData, s.cfg.DataPath, err)
	}
	if players == nil {
		players = []model.Player{}
	}

	if err := storage.CheckLoaded(players); err != nil {
		return nil, fmt.Errorf("%s: %w", s.cfg.DataPath, err)
	}
	return players, nil
}

// SaveAll writes the roster to a temp file in the same directory and renames it
// over the data file, so a crash mid-write never leaves a truncated roster.
func (s *Storage) SaveAll(ctx context.Context, players []model.Player) error {
	if players == nil {
		players = []model.Player{}
	}

	data, err := json.MarshalIndent(players, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode roster: %w", model.ErrIOFailure, err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(s.cfg.DataPath, data); err != nil {
		return fmt.Errorf("%w: %w", model.ErrIOFailure, err)
	}
	return nil
}

func (s *Storage) AppendLog(ctx context.Context, line string) error {
	if err := ensureDir(s.cfg.LogPath); err != nil {
		return fmt.Errorf("%w: %w", model.ErrIOFailure, err)
	}

	f, err := os.OpenFile(s.cfg.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open log: %w", model.ErrIOFailure, err)
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("%w: append log: %w", model.ErrIOFailure, err)
	}
	return nil
}

// Close is a no-op; files are opened per operation
func (s *Storage) Close() error {
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// Remove the temp file on any failure below; after a successful rename it is gone anyway.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	return nil
}
