// Copyright (c) 2026 ScoreHub. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/scorehub/scorehub/internal/platform/apperr"
	"github.com/scorehub/scorehub/internal/platform/constants"
)

// RedisSessionRepository implements SessionRepository using Redis.
//
// Redis TTLs do the session expiry for free: a key that has aged out simply
// stops resolving, which the service reports as an invalid refresh token.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository creates a Redis-backed SessionRepository.
func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func (repository *RedisSessionRepository) Set(context context.Context, tokenHash string, userID int64, ttl time.Duration) error {
	key := constants.RedisPrefixSession + tokenHash

	if err := repository.client.Set(context, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}
	return nil
}

// Get resolves a session to its user ID.
// Returns apperr.Unauthorized if the session is absent or expired.
func (repository *RedisSessionRepository) Get(context context.Context, tokenHash string) (int64, error) {
	key := constants.RedisPrefixSession + tokenHash

	raw, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, apperr.Unauthorized("Invalid or expired refresh token")
		}
		return 0, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("redis_session_parse_failed: %w", err)
	}
	return userID, nil
}

func (repository *RedisSessionRepository) Delete(context context.Context, tokenHash string) error {
	key := constants.RedisPrefixSession + tokenHash

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}

// RedisResendThrottle implements ResendThrottle using Redis.
type RedisResendThrottle struct {
	client *redis.Client
}

// NewRedisResendThrottle creates a Redis-backed ResendThrottle.
func NewRedisResendThrottle(client *redis.Client) *RedisResendThrottle {
	return &RedisResendThrottle{client: client}
}

// Allow uses SET NX with a TTL: the first caller in a window wins, everyone
// else waits for the key to expire.
func (throttle *RedisResendThrottle) Allow(context context.Context, username string, window time.Duration) (bool, error) {
	key := constants.RedisPrefixSignupResend + username

	ok, err := throttle.client.SetNX(context, key, 1, window).Result()
	if err != nil {
		return false, fmt.Errorf("redis_resend_throttle_failed: %w", err)
	}
	return ok, nil
}
