package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/mcoot/gameroster/internal/model"
	"github.com/mcoot/gameroster/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// It holds a copy of the last saved roster and every audit line.
type Storage struct {
	mu sync.RWMutex

	players  []model.Player
	logLines []string

	saveErr error
	logErr  error
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: []model.Player{},
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Load(ctx context.Context) ([]model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.players), nil
}

func (s *Storage) SaveAll(ctx context.Context, players []model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return fmt.Errorf("%w: %w", model.ErrIOFailure, s.saveErr)
	}
	s.players = slices.Clone(players)
	if s.players == nil {
		s.players = []model.Player{}
	}
	return nil
}

func (s *Storage) AppendLog(ctx context.Context, line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.logErr != nil {
		return fmt.Errorf("%w: %w", model.ErrIOFailure, s.logErr)
	}
	s.logLines = append(s.logLines, line)
	return nil
}

func (s *Storage) Close() error {
	return nil
}

// Lines returns a copy of every audit line appended so far
func (s *Storage) Lines() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.logLines)
}

// FailSaves makes every following SaveAll fail with err. Pass nil to recover.
func (s *Storage) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// FailLogs makes every following AppendLog fail with err. Pass nil to recover.
func (s *Storage) FailLogs(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logErr = err
}
