package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ThrottleRepository enforces one send per phone per window.
type ThrottleRepository interface {
	// Acquire reports false when phone already sent inside window.
	Acquire(ctx context.Context, phone string, window time.Duration) (bool, error)
	// Release frees the slot after a send that never reached the phone.
	Release(ctx context.Context, phone string) error
}

// throttleStore is the part of *redis.Client the throttle needs.
type throttleStore interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type throttleRepository struct {
	rdb throttleStore
}

func NewThrottleRepository(rdb *redis.Client) ThrottleRepository {
	return &throttleRepository{rdb: rdb}
}

func throttleKey(phone string) string {
	return fmt.Sprintf("sms:throttle:%s", phone)
}

func (r *throttleRepository) Acquire(ctx context.Context, phone string, window time.Duration) (bool, error) {
	ok, err := r.rdb.SetNX(ctx, throttleKey(phone), time.Now().Unix(), window).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire send slot: %w", err)
	}
	return ok, nil
}

func (r *throttleRepository) Release(ctx context.Context, phone string) error {
	if err := r.rdb.Del(ctx, throttleKey(phone)).Err(); err != nil {
		return fmt.Errorf("failed to release send slot: %w", err)
	}
	return nil
}
