package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"relay-server/internal/monitor/domain"
	"relay-server/internal/monitor/persistence/internal"
	"relay-server/internal/monitor/usecases"
)

const DefaultSnapshotKeyPrefix = "relay_server:device_state:"

// SnapshotCache is the subset of cache.RedisCache used by the repository.
type SnapshotCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type RedisSnapshotRepositoryConfig struct {
	KeyPrefix string
	// TTL of zero keeps the snapshot until it is overwritten
	TTL time.Duration
}

func DefaultRedisSnapshotRepositoryConfig() RedisSnapshotRepositoryConfig {
	return RedisSnapshotRepositoryConfig{
		KeyPrefix: DefaultSnapshotKeyPrefix,
	}
}

var _ usecases.SnapshotRepository = (*RedisSnapshotRepository)(nil)

type RedisSnapshotRepository struct {
	cache     SnapshotCache
	keyPrefix string
	ttl       time.Duration
}

func NewRedisSnapshotRepository(cache SnapshotCache, config RedisSnapshotRepositoryConfig) (*RedisSnapshotRepository, error) {
	if cache == nil {
		return nil, fmt.Errorf("cache instance is required")
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = DefaultSnapshotKeyPrefix
	}

	slog.Info("redis snapshot repository initialized",
		slog.String("key_prefix", config.KeyPrefix),
		slog.Duration("ttl", config.TTL))

	return &RedisSnapshotRepository{
		cache:     cache,
		keyPrefix: config.KeyPrefix,
		ttl:       config.TTL,
	}, nil
}

func (r *RedisSnapshotRepository) Save(ctx context.Context, snapshot domain.StateSnapshot) error {
	key := r.key(snapshot.DeviceID)
	if err := r.cache.Set(ctx, key, internal.FromStateSnapshot(snapshot), r.ttl); err != nil {
		return fmt.Errorf("saving snapshot of %s: %w", snapshot.DeviceID, err)
	}

	slog.Debug("device snapshot saved",
		slog.String("device_id", snapshot.DeviceID.String()),
		slog.String("relay", snapshot.Actuator.String()))
	return nil
}

func (r *RedisSnapshotRepository) Get(ctx context.Context, deviceID domain.ID) (domain.StateSnapshot, error) {
	var stored internal.StateSnapshot
	found, err := r.cache.Get(ctx, r.key(deviceID), &stored)
	if err != nil {
		return domain.StateSnapshot{}, fmt.Errorf("getting snapshot of %s: %w", deviceID, err)
	}
	if !found {
		return domain.StateSnapshot{}, usecases.ErrSnapshotNotFound
	}

	return stored.ToDomain(), nil
}

func (r *RedisSnapshotRepository) key(deviceID domain.ID) string {
	return r.keyPrefix + deviceID.String()
}
