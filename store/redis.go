package store

import (
	"context"
	"errors"

	gr "github.com/ac5tin/goredis"
	"github.com/gomodule/redigo/redis"

	"whichx/classifier"
)

const REDIS_KEY_PREFIX = "whichx:model:"

// RedisStore keeps msgpack snapshots as plain redis strings.
type RedisStore struct {
	rc *gr.Client
}

func NewRedisStore(rc *gr.Client) *RedisStore {
	return &RedisStore{rc}
}

func (s *RedisStore) key(name string) string {
	return REDIS_KEY_PREFIX + name
}

func (s *RedisStore) Save(ctx context.Context, name string, snap *classifier.Snapshot) error {
	b, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	rconn := (*s.rc).Get()
	defer rconn.Close()
	if _, err := rconn.Do("SET", s.key(name), b); err != nil {
		return err
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, name string) (*classifier.Snapshot, error) {
	rconn := (*s.rc).Get()
	defer rconn.Close()
	b, err := redis.Bytes(rconn.Do("GET", s.key(name)))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decodeSnapshot(b)
}

func (s *RedisStore) Delete(ctx context.Context, name string) error {
	rconn := (*s.rc).Get()
	defer rconn.Close()
	if _, err := rconn.Do("DEL", s.key(name)); err != nil {
		return err
	}
	return nil
}

func (s *RedisStore) Close() error {
	return nil
}
