package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kayceeDev/altschooltestingBE/utils"
)

const redisKeyPrefix = "ratelimit:"

// incrementScript counts a hit and starts the window on the first one.
// A key that lost its expiry gets a fresh window.
var incrementScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {current, ttl}
`)

// RedisStore keeps fixed window counters in Redis so several processes share one budget
type RedisStore struct {
	client redis.Scripter
	window time.Duration
	now    func() time.Time
}

func NewRedisStore(client redis.Scripter, window time.Duration) *RedisStore {
	utils.AssertInvariant(window >= time.Millisecond, "rate limit window must be at least one millisecond")
	return &RedisStore{client: client, window: window, now: time.Now}
}

// NewRedisClient connects to the Redis server described by a redis:// URL
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func (s *RedisStore) Increment(ctx context.Context, key string) (RateLimitHit, error) {
	result, err := incrementScript.Run(ctx, s.client, []string{redisKeyPrefix + key}, s.window.Milliseconds()).Int64Slice()
	if err != nil {
		return RateLimitHit{}, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}
	if len(result) != 2 {
		return RateLimitHit{}, fmt.Errorf("unexpected rate limit script result: %v", result)
	}

	return RateLimitHit{
		Count:   int(result[0]),
		ResetAt: s.now().Add(time.Duration(result[1]) * time.Millisecond),
	}, nil
}
