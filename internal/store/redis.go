package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hireflow/interviewd/internal/interview"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "interview:session:"

// ErrUnavailable marks store failures caused by the backing service being
// unreachable, so callers can surface them as a service-unavailable
// condition.
var ErrUnavailable = errors.New("session store unavailable")

// Redis persists sessions as JSON blobs in redis, letting sessions survive
// process restarts and be shared across replicas.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to the redis instance at addr and verifies the
// connection. A non-positive ttl stores sessions without expiry.
func NewRedis(ctx context.Context, addr, password string, db int, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}

	if ttl < 0 {
		ttl = 0
	}

	return &Redis{client: client, ttl: ttl}, nil
}

func (r *Redis) Get(ctx context.Context, id string) (interview.Session, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return interview.Session{}, interview.ErrSessionNotFound
		}
		return interview.Session{}, fmt.Errorf("%w: get session %s: %v", ErrUnavailable, id, err)
	}

	var session interview.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return interview.Session{}, fmt.Errorf("decode session %s: %w", id, err)
	}

	return session, nil
}

func (r *Redis) Put(ctx context.Context, id string, s interview.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", id, err)
	}

	if err := r.client.Set(ctx, sessionKeyPrefix+id, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: put session %s: %v", ErrUnavailable, id, err)
	}

	return nil
}

// Close releases the underlying redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
