package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"civiconnect-be/models"

	"github.com/redis/go-redis/v9"
)

// Store keeps the message log of each chat session.
type Store interface {
	// Create starts a session whose log holds first.
	Create(ctx context.Context, id string, first models.Message) error
	// Append adds msg to the end of the log, or returns ErrSessionNotFound.
	Append(ctx context.Context, id string, msg models.Message) error
	Messages(ctx context.Context, id string) ([]models.Message, error)
}

// MemoryStore keeps logs for the life of the process.
type MemoryStore struct {
	mu   sync.RWMutex
	logs map[string][]models.Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{logs: make(map[string][]models.Message)}
}

func (s *MemoryStore) Create(_ context.Context, id string, first models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs[id] = []models.Message{first}
	return nil
}

func (s *MemoryStore) Append(_ context.Context, id string, msg models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	log, ok := s.logs[id]
	if !ok {
		return ErrSessionNotFound
	}
	s.logs[id] = append(log, msg)
	return nil
}

func (s *MemoryStore) Messages(_ context.Context, id string) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	log, ok := s.logs[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return append([]models.Message(nil), log...), nil
}

// RedisStore keeps each log in a Redis list that expires after ttl of
// inactivity.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + ":chat:" + id
}

func (s *RedisStore) Create(ctx context.Context, id string, first models.Message) error {
	data, err := json.Marshal(first)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}
	k := s.key(id)
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, k)
	pipe.RPush(ctx, k, data)
	pipe.Expire(ctx, k, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create chat session: %w", err)
	}
	return nil
}

func (s *RedisStore) Append(ctx context.Context, id string, msg models.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}
	k := s.key(id)

	// RPUSHX only pushes onto an existing list, so an expired session is
	// never recreated without its greeting.
	n, err := s.client.RPushX(ctx, k, data).Result()
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	if err := s.client.Expire(ctx, k, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set TTL: %w", err)
	}
	return nil
}

func (s *RedisStore) Messages(ctx context.Context, id string) ([]models.Message, error) {
	raw, err := s.client.LRange(ctx, s.key(id), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrSessionNotFound
	}
	out := make([]models.Message, 0, len(raw))
	for _, item := range raw {
		var msg models.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("failed to decode message: %w", err)
		}
		out = append(out, msg)
	}
	return out, nil
}
