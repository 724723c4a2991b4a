package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RedisClient struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisClient(addr, password string, db int, log *zap.Logger) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("conectar a redis: %w", err)
	}

	log.Info("Redis conectado", zap.String("addr", addr))

	return &RedisClient{client: rdb, log: log}, nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

func (r *RedisClient) SetRateLimit(ctx context.Context, key string, ttl time.Duration) error {
	return r.client.Set(ctx, "ratelimit:"+key, "1", ttl).Err()
}

func (r *RedisClient) CheckRateLimit(ctx context.Context, key string) (bool, error) {
	exists, err := r.client.Exists(ctx, "ratelimit:"+key).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (r *RedisClient) BlacklistToken(ctx context.Context, fingerprint string, ttl time.Duration) error {
	return r.client.Set(ctx, "blacklist:"+fingerprint, "1", ttl).Err()
}

func (r *RedisClient) IsTokenBlacklisted(ctx context.Context, fingerprint string) (bool, error) {
	exists, err := r.client.Exists(ctx, "blacklist:"+fingerprint).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// Noop reemplaza a redis cuando REDIS_ENABLED=false: no limita ni veta nada.
type Noop struct{}

func (Noop) SetRateLimit(ctx context.Context, key string, ttl time.Duration) error { return nil }
func (Noop) CheckRateLimit(ctx context.Context, key string) (bool, error)          { return false, nil }
func (Noop) BlacklistToken(ctx context.Context, fingerprint string, ttl time.Duration) error {
	return nil
}
func (Noop) IsTokenBlacklisted(ctx context.Context, fingerprint string) (bool, error) {
	return false, nil
}
