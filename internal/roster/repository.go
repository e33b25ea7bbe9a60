package roster

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/mcoot/gameroster/internal/dependencies/clock"
	"github.com/mcoot/gameroster/internal/model"
	"github.com/mcoot/gameroster/internal/search"
	"github.com/mcoot/gameroster/internal/sorting"
	"github.com/mcoot/gameroster/internal/storage"
)

// Options configures a Repository. Zero values fall back to defaults.
type Options struct {
	// Search defaults to linear search
	Search search.Strategy
	// Sort defaults to insertion sort
	Sort sorting.Strategy
	// Clock stamps audit lines; defaults to the system clock
	Clock clock.Clock
	// Logger defaults to a no-op logger
	Logger *slog.Logger
}

// Repository is the single owner of the roster.
//
// Every mutation is validated first. The updated roster is then written through
// to storage and only replaces the in-memory one once the write succeeded, so a
// failed write leaves memory and storage as they were and callers only ever see
// results that were durably saved.
type Repository struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	mu       sync.RWMutex
	players  []model.Player
	searcher search.Strategy
	sorter   sorting.Strategy
}

// New creates a Repository over store. The roster starts empty; call LoadAll to read it.
func New(store storage.Storage, opts Options) *Repository {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	searcher := opts.Search
	if searcher == nil {
		searcher = search.NewLinearStrategy()
	}
	sorter := opts.Sort
	if sorter == nil {
		sorter = sorting.NewInsertionStrategy()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &Repository{
		storage:  store,
		clock:    clk,
		logger:   logger.With(slog.String("component", "roster")),
		players:  []model.Player{},
		searcher: searcher,
		sorter:   sorter,
	}
}

// LoadAll replaces the in-memory roster with what storage holds.
// Missing storage yields an empty roster. On any error the roster is left empty
// and the error is returned; corrupt data is never silently discarded.
func (r *Repository) LoadAll(ctx context.Context) error {
	players, err := r.storage.Load(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.players = []model.Player{}
		r.logger.Error("failed to load roster", slog.String("error", err.Error()))
		return fmt.Errorf("load roster: %w", err)
	}

	r.players = players
	r.logger.Info("roster loaded", slog.Int("player_count", len(players)))
	return nil
}

// Add creates a player with zeroed stats
func (r *Repository) Add(ctx context.Context, id model.PlayerID, username string) (model.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := auditEntry{Action: ActionAdd, ID: id, Detail: fmt.Sprintf("username=%q", username)}

	player, err := model.NewPlayer(id, username)
	if err != nil {
		return model.Player{}, r.fail(ctx, entry, err)
	}
	if _, exists := r.searcher.FindByID(r.players, id); exists {
		return model.Player{}, r.fail(ctx, entry, fmt.Errorf("%w: %d", model.ErrDuplicateID, id))
	}

	// Clip so the append never writes into the previous roster's backing array
	next := append(slices.Clip(r.players), *player)
	if err := r.commit(ctx, next); err != nil {
		return model.Player{}, r.fail(ctx, entry, err)
	}

	r.succeed(ctx, entry)
	r.logger.Info("player added",
		slog.Int("player_id", int(id)),
		slog.String("username", username),
	)
	return *player, nil
}

// GetByID returns the player with the given id
func (r *Repository) GetByID(ctx context.Context, id model.PlayerID) (model.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	player, ok := r.searcher.FindByID(r.players, id)
	if !ok {
		return model.Player{}, fmt.Errorf("%w: %d", model.ErrPlayerNotFound, id)
	}
	return player, nil
}

// GetByUsername returns the earliest added player whose username matches name, ignoring case
func (r *Repository) GetByUsername(ctx context.Context, name string) (model.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	player, ok := r.searcher.FindByUsername(r.players, name)
	if !ok {
		return model.Player{}, fmt.Errorf("%w: username %q", model.ErrPlayerNotFound, name)
	}
	return player, nil
}

// UpdateStats overwrites both stats of an existing player. Values are not accumulated.
func (r *Repository) UpdateStats(ctx context.Context, id model.PlayerID, hoursPlayed float64, highScore int) (model.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := auditEntry{
		Action: ActionUpdate,
		ID:     id,
		Detail: fmt.Sprintf("hours_played=%g high_score=%d", hoursPlayed, highScore),
	}

	if err := model.ValidateHours(hoursPlayed); err != nil {
		return model.Player{}, r.fail(ctx, entry, err)
	}

	idx := r.indexOf(id)
	if idx < 0 {
		return model.Player{}, r.fail(ctx, entry, fmt.Errorf("%w: %d", model.ErrPlayerNotFound, id))
	}

	next := slices.Clone(r.players)
	next[idx].HoursPlayed = hoursPlayed
	next[idx].HighScore = highScore
	if err := r.commit(ctx, next); err != nil {
		return model.Player{}, r.fail(ctx, entry, err)
	}

	r.succeed(ctx, entry)
	r.logger.Info("player stats updated",
		slog.Int("player_id", int(id)),
		slog.Float64("hours_played", hoursPlayed),
		slog.Int("high_score", highScore),
	)
	return next[idx], nil
}

// Rename changes a player's username
func (r *Repository) Rename(ctx context.Context, id model.PlayerID, username string) (model.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := auditEntry{Action: ActionRename, ID: id, Detail: fmt.Sprintf("username=%q", username)}

	if err := model.ValidateUsername(username); err != nil {
		return model.Player{}, r.fail(ctx, entry, err)
	}

	idx := r.indexOf(id)
	if idx < 0 {
		return model.Player{}, r.fail(ctx, entry, fmt.Errorf("%w: %d", model.ErrPlayerNotFound, id))
	}

	next := slices.Clone(r.players)
	next[idx].Username = username
	if err := r.commit(ctx, next); err != nil {
		return model.Player{}, r.fail(ctx, entry, err)
	}

	r.succeed(ctx, entry)
	r.logger.Info("player renamed",
		slog.Int("player_id", int(id)),
		slog.String("username", username),
	)
	return next[idx], nil
}

// Delete removes a player. An absent id is reported as model.ErrPlayerNotFound.
func (r *Repository) Delete(ctx context.Context, id model.PlayerID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := auditEntry{Action: ActionDelete, ID: id}

	idx := r.indexOf(id)
	if idx < 0 {
		return r.fail(ctx, entry, fmt.Errorf("%w: %d", model.ErrPlayerNotFound, id))
	}

	next := slices.Delete(slices.Clone(r.players), idx, idx+1)
	if err := r.commit(ctx, next); err != nil {
		return r.fail(ctx, entry, err)
	}

	r.succeed(ctx, entry)
	r.logger.Info("player deleted", slog.Int("player_id", int(id)))
	return nil
}

// List returns the roster in insertion order
func (r *Repository) List(ctx context.Context) []model.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.players)
}

// Count returns the number of players in the roster
func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// SetSortStrategy replaces the algorithm used by later Sort calls. Nil restores insertion sort.
func (r *Repository) SetSortStrategy(strategy sorting.Strategy) {
	if strategy == nil {
		strategy = sorting.NewInsertionStrategy()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sorter = strategy
	r.logger.Debug("sort strategy changed", slog.String("strategy", strategy.Name()))
}

// SortStrategy returns the active sort strategy
func (r *Repository) SortStrategy() sorting.Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorter
}

// SetSearchStrategy replaces the lookup algorithm. Nil restores linear search.
func (r *Repository) SetSearchStrategy(strategy search.Strategy) {
	if strategy == nil {
		strategy = search.NewLinearStrategy()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.searcher = strategy
}

// Sort returns a freshly ordered snapshot of the roster using the active sort strategy.
// The roster's own insertion order is never changed.
func (r *Repository) Sort(ctx context.Context, field model.SortField, ascending bool) ([]model.Player, error) {
	if !field.IsValid() {
		return nil, fmt.Errorf("%w: unknown sort field %q", model.ErrInvalidArgument, field)
	}

	r.mu.RLock()
	snapshot := slices.Clone(r.players)
	sorter := r.sorter
	r.mu.RUnlock()

	return sorter.Sort(snapshot, field, ascending), nil
}

func (r *Repository) indexOf(id model.PlayerID) int {
	return slices.IndexFunc(r.players, func(p model.Player) bool { return p.ID == id })
}

// commit writes next through to storage and only then makes it the live roster.
// Callers must hold the write lock.
func (r *Repository) commit(ctx context.Context, next []model.Player) error {
	if err := r.storage.SaveAll(ctx, next); err != nil {
		r.logger.Error("failed to persist roster",
			slog.Int("player_count", len(next)),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("persist roster: %w", err)
	}
	r.players = next
	return nil
}

func (r *Repository) succeed(ctx context.Context, entry auditEntry) {
	r.appendAudit(ctx, entry)
}

// fail records a rejected or failed mutation and returns err unchanged
func (r *Repository) fail(ctx context.Context, entry auditEntry, err error) error {
	entry.Err = err
	r.appendAudit(ctx, entry)
	return err
}

// appendAudit is best-effort: a broken audit log never fails the caller's operation
func (r *Repository) appendAudit(ctx context.Context, entry auditEntry) {
	if err := r.storage.AppendLog(ctx, entry.Line(r.clock.Now())); err != nil {
		r.logger.Warn("failed to append audit line",
			slog.String("action", entry.Action),
			slog.Int("player_id", int(entry.ID)),
			slog.String("error", err.Error()),
		)
	}
}
