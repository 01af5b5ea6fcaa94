package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultListName is the Redis list finished games are pushed onto
const DefaultListName = "chaoticbot_games"

// PlayerResult is one player's net outcome
type PlayerResult struct {
	PlayerID string `json:"player_id"`
	Delta    int    `json:"delta"`
}

// Record describes a finished game
type Record struct {
	SessionID uuid.UUID      `json:"session_id"`
	Game      string         `json:"game"`
	ChannelID string         `json:"channel_id"`
	StarterID string         `json:"starter_id"`
	Stake     int            `json:"stake"`
	WinnerID  string         `json:"winner_id,omitempty"`
	Players   []PlayerResult `json:"players"`
	Time      time.Time      `json:"time"`
}

// Recorder stores finished games somewhere
type Recorder interface {
	RecordGame(ctx context.Context, rec Record) error
}

// Multi fans a record out to several recorders, joining their errors
type Multi []Recorder

func (m Multi) RecordGame(ctx context.Context, rec Record) error {
	var errs []error
	for _, r := range m {
		if err := r.RecordGame(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type lister interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// Redis pushes records as JSON onto a Redis list for downstream consumers
type Redis struct {
	client lister
	list   string
}

// ConnectRedis dials and pings a Redis server
func ConnectRedis(ctx context.Context, addr, list string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return NewRedis(client, list), nil
}

func NewRedis(client lister, list string) *Redis {
	if list == "" {
		list = DefaultListName
	}
	return &Redis{client: client, list: list}
}

// Close the underlying client when it can be closed
func (r *Redis) Close() error {
	if c, ok := r.client.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func (r *Redis) RecordGame(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal game record: %w", err)
	}
	if err := r.client.RPush(ctx, r.list, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", r.list, err)
	}
	return nil
}
