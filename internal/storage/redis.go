package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/retail-kit/backoffice-console/internal/config"
	"github.com/retail-kit/backoffice-console/internal/domain"
)

const (
	fieldToken   = "token"
	fieldProfile = "profile"
)

// RedisStore keeps the session record in a single Redis hash. Both slots are
// written with one HSET so the record can never be observed half written.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to Redis using the provided configuration.
func NewRedisStore(cfg config.RedisConfig, logger *zap.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &RedisStore{client: client, key: cfg.KeyPrefix + ":session"}
}

// NewRedisStoreWithClient wraps an existing client, used by tests.
func NewRedisStoreWithClient(client *redis.Client, keyPrefix string) *RedisStore {
	return &RedisStore{client: client, key: keyPrefix + ":session"}
}

// Save persists both slots in one command.
func (rs *RedisStore) Save(ctx context.Context, rec Record) error {
	profile, err := json.Marshal(rec.Profile)
	if err != nil {
		return err
	}
	return rs.client.HSet(ctx, rs.key, fieldToken, rec.Token, fieldProfile, profile).Err()
}

// Load reads the persisted record.
func (rs *RedisStore) Load(ctx context.Context) (*Record, error) {
	values, err := rs.client.HGetAll(ctx, rs.key).Result()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, ErrNotFound
	}

	token, okToken := values[fieldToken]
	rawProfile, okProfile := values[fieldProfile]
	if !okToken || !okProfile {
		return nil, fmt.Errorf("corrupt session hash at %s", rs.key)
	}

	var profile domain.UserProfile
	if err := json.Unmarshal([]byte(rawProfile), &profile); err != nil {
		return nil, fmt.Errorf("corrupt session profile: %w", err)
	}
	return &Record{Token: token, Profile: profile}, nil
}

// Clear removes the session hash.
func (rs *RedisStore) Clear(ctx context.Context) error {
	return rs.client.Del(ctx, rs.key).Err()
}

// Ping verifies Redis connectivity.
func (rs *RedisStore) Ping(ctx context.Context) error {
	return rs.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (rs *RedisStore) Close() {
	if rs != nil && rs.client != nil {
		_ = rs.client.Close()
	}
}
