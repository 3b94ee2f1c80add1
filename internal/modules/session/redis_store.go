// README: Redis-backed session store; one hash per session with a sliding TTL.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func redisKey(sessionID string) string {
	return "voyager:session:" + sessionID
}

func (s *RedisStore) Get(ctx context.Context, sessionID, key string, dst any) (bool, error) {
	b, err := s.rdb.HGet(ctx, redisKey(sessionID), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, dst)
}

func (s *RedisStore) Set(ctx context.Context, sessionID, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	k := redisKey(sessionID)
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, k, key, b)
		pipe.Expire(ctx, k, s.ttl)
		return nil
	})
	return err
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.rdb.HDel(ctx, redisKey(sessionID), keys...).Err()
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, redisKey(sessionID)).Err()
}
