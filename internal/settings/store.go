package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Store loads and saves settings. Load returns Default() for users that never
// saved anything.
type Store interface {
	Load(ctx context.Context, userID uuid.UUID) (Settings, error)
	Save(ctx context.Context, userID uuid.UUID, s Settings) error
}

func key(userID uuid.UUID) string {
	return "accessibility-settings:" + userID.String()
}

func decode(data []byte) (Settings, error) {
	s := Default()
	if err := json.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("failed to decode settings: %w", err)
	}
	s.normalize()
	return s, nil
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Load(ctx context.Context, userID uuid.UUID) (Settings, error) {
	data, err := r.client.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("failed to load settings: %w", err)
	}
	return decode(data)
}

func (r *RedisStore) Save(ctx context.Context, userID uuid.UUID, s Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := r.client.Set(ctx, key(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// MemoryStore keeps settings in process. Used when Redis is not configured.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[uuid.UUID][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[uuid.UUID][]byte)}
}

func (m *MemoryStore) Load(ctx context.Context, userID uuid.UUID) (Settings, error) {
	m.mu.RLock()
	data, ok := m.data[userID]
	m.mu.RUnlock()
	if !ok {
		return Default(), nil
	}
	return decode(data)
}

func (m *MemoryStore) Save(ctx context.Context, userID uuid.UUID, s Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	m.mu.Lock()
	m.data[userID] = data
	m.mu.Unlock()
	return nil
}
