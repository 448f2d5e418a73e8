package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisCallTimeout = 2 * time.Second

var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RedisFixedWindow counts requests per key in Redis so that several server
// instances share one quota. It fails closed: a Redis error denies the request.
type RedisFixedWindow struct {
	client *redis.Client
	prefix string
	limit  int
	period time.Duration
}

// NewRedisClient connects to the Redis server shared by all limiters.
func NewRedisClient(addr, password string) (*redis.Client, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("rate limiter redis address is required")
	}

	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	}), nil
}

// NewRedisFixedWindow creates a limiter whose keys live under prefix:name.
func NewRedisFixedWindow(client *redis.Client, prefix, name string, limit int, period time.Duration) (*RedisFixedWindow, error) {
	if limit <= 0 || period <= 0 {
		return nil, ErrInvalidWindow
	}
	if client == nil {
		return nil, errors.New("rate limiter redis client is required")
	}

	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "report-buddy:ratelimit"
	}

	return &RedisFixedWindow{
		client: client,
		prefix: prefix + ":" + name,
		limit:  limit,
		period: period,
	}, nil
}

func (l *RedisFixedWindow) Allow(ctx context.Context, key string) bool {
	periodMs := l.period.Milliseconds()
	if periodMs <= 0 {
		return true
	}

	slot := time.Now().UTC().UnixMilli() / periodMs
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, normalizeKey(key), slot)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), redisCallTimeout)
	defer cancel()

	count, err := fixedWindowScript.Run(ctx, l.client, []string{redisKey}, periodMs).Int64()
	if err != nil {
		return false
	}
	return count <= int64(l.limit)
}
