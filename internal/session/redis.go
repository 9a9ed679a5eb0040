package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/triage-advisor-server/internal/domain"
)

const redisKeyPrefix = "triage:session:"

// RedisStore keeps sessions in Redis so multiple server replicas can share
// them. States are stored as JSON under a per-session key with a rolling
// TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

// NewRedisStore connects to Redis using a URL of the form
// redis://[:password@]host:port/db and verifies the connection.
func NewRedisStore(ctx context.Context, redisURL string, ttl time.Duration, logger *logrus.Logger) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	logger.WithField("addr", opts.Addr).Info("Connected to Redis session store")
	return &RedisStore{client: client, ttl: ttl, logger: logger}, nil
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

// Create stores a fresh session state with the configured TTL.
func (s *RedisStore) Create(ctx context.Context, id string, state *domain.PatientState) error {
	return s.write(ctx, id, state)
}

// Get returns the session state or ErrSessionNotFound.
func (s *RedisStore) Get(ctx context.Context, id string) (*domain.PatientState, error) {
	data, err := s.client.Get(ctx, redisKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("redis session %q: %w", id, domain.ErrSessionNotFound)
		}
		return nil, fmt.Errorf("reading redis session %q: %w", id, err)
	}
	var state domain.PatientState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decoding redis session %q: %w", id, err)
	}
	return &state, nil
}

// Update overwrites the session state and refreshes its TTL.
func (s *RedisStore) Update(ctx context.Context, id string, state *domain.PatientState) error {
	exists, err := s.client.Exists(ctx, redisKey(id)).Result()
	if err != nil {
		return fmt.Errorf("checking redis session %q: %w", id, err)
	}
	if exists == 0 {
		return fmt.Errorf("redis session %q: %w", id, domain.ErrSessionNotFound)
	}
	return s.write(ctx, id, state)
}

// Delete removes the session. Deleting an absent session is not an error.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, redisKey(id)).Err(); err != nil {
		return fmt.Errorf("deleting redis session %q: %w", id, err)
	}
	return nil
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) write(ctx context.Context, id string, state *domain.PatientState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding redis session %q: %w", id, err)
	}
	if err := s.client.Set(ctx, redisKey(id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("writing redis session %q: %w", id, err)
	}
	return nil
}
