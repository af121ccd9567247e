package worker

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SweepLock serializes escalation sweeps across replicas with a redis
// SETNX lease. The TTL bounds how long a crashed holder blocks others.
type SweepLock interface {
	TryAcquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

type redisSweepLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisSweepLock builds a redis-backed sweep lock.
func NewRedisSweepLock(client *redis.Client, key string, ttl time.Duration) SweepLock {
	if key == "" {
		key = "grievance:escalation:sweep"
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisSweepLock{client: client, key: key, ttl: ttl}
}

func (l *redisSweepLock) TryAcquire(ctx context.Context) (bool, error) {
	return l.client.SetNX(ctx, l.key, "1", l.ttl).Result()
}

func (l *redisSweepLock) Release(ctx context.Context) error {
	return l.client.Del(ctx, l.key).Err()
}

// noopSweepLock always grants the lease, for single-instance deployments
// without redis.
type noopSweepLock struct{}

// NoopSweepLock returns a lock that never contends.
func NoopSweepLock() SweepLock { return noopSweepLock{} }

func (noopSweepLock) TryAcquire(context.Context) (bool, error) { return true, nil }
func (noopSweepLock) Release(context.Context) error            { return nil }
