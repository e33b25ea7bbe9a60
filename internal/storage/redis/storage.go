package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/gameroster/internal/model"
	"github.com/mcoot/gameroster/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// The roster is one JSON document so SaveAll replaces it with a single SET.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping redis: %w", model.ErrIOFailure, err)
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Load(ctx context.Context) ([]model.Player, error) {
	data, err := s.client.Get(ctx, rosterKey(s.cfg.KeyPrefix)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []model.Player{}, nil
		}
		return nil, fmt.Errorf("%w: get roster: %w", model.ErrIOFailure, err)
	}

	var players []model.Player
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, fmt.Errorf("%w: decode roster: %v", model.ErrCorruptData, err)
	}
	if players == nil {
		players = []model.Player{}
	}

	if err := storage.CheckLoaded(players); err != nil {
		return nil, err
	}
	return players, nil
}

func (s *Storage) SaveAll(ctx context.Context, players []model.Player) error {
	if players == nil {
		players = []model.Player{}
	}

	data, err := json.Marshal(players)
	if err != nil {
		return fmt.Errorf("%w: encode roster: %w", model.ErrIOFailure, err)
	}

	// No TTL: the roster lives until replaced
	if err := s.client.Set(ctx, rosterKey(s.cfg.KeyPrefix), data, 0).Err(); err != nil {
		return fmt.Errorf("%w: set roster: %w", model.ErrIOFailure, err)
	}
	return nil
}

func (s *Storage) AppendLog(ctx context.Context, line string) error {
	key := auditKey(s.cfg.KeyPrefix)

	// Use pipeline for atomic append + trim
	pipe := s.client.Pipeline()
	pipe.RPush(ctx, key, line)
	if s.cfg.LogMaxLen > 0 {
		pipe.LTrim(ctx, key, -s.cfg.LogMaxLen, -1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: append audit line: %w", model.ErrIOFailure, err)
	}
	return nil
}

// Lines returns the audit trail, oldest first
func (s *Storage) Lines(ctx context.Context) ([]string, error) {
	lines, err := s.client.LRange(ctx, auditKey(s.cfg.KeyPrefix), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: read audit lines: %w", model.ErrIOFailure, err)
	}
	return lines, nil
}
