package bookingSessionRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pathlab/models"
	"pathlab/utils"

	"github.com/go-redis/redis/v8"
)

// RedisStore shares sessions between server replicas.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, id string) (*models.BookingSession, error) {
	raw, err := r.client.Get(ctx, utils.BookingSessionPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get booking session: %w", err)
	}
	var s models.BookingSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode booking session: %w", err)
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, session *models.BookingSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, utils.BookingSessionPrefix+session.SessionID, raw, r.ttl).Err()
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, utils.BookingSessionPrefix+id, utils.BookingLockPrefix+id).Err()
}

func (r *RedisStore) Lock(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, utils.BookingLockPrefix+id, "1", ttl).Result()
}

func (r *RedisStore) Unlock(ctx context.Context, id string) error {
	return r.client.Del(ctx, utils.BookingLockPrefix+id).Err()
}
