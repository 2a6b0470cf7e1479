package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const redisTimeout = 500 * time.Millisecond

// RedisCounter is an httprate.LimitCounter that keeps one counter per key
// and window in redis. Redis failures are logged and count as zero, so an
// outage admits traffic instead of rejecting it.
type RedisCounter struct {
	client redis.UniversalClient
	prefix string
	window time.Duration
}

func NewRedisCounter(client redis.UniversalClient) *RedisCounter {
	return &RedisCounter{client: client, prefix: "ratelimit:", window: defaultWindow}
}

func (c *RedisCounter) Config(requestLimit int, windowLength time.Duration) {
	c.window = windowLength
}

func (c *RedisCounter) Increment(key string, currentWindow time.Time) error {
	return c.IncrementBy(key, currentWindow, 1)
}

func (c *RedisCounter) IncrementBy(key string, currentWindow time.Time, amount int) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	k := c.key(key, currentWindow)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.IncrBy(ctx, k, int64(amount))
		// The previous window is still read while the current one is live.
		pipe.Expire(ctx, k, 3*c.window)
		return nil
	})
	if err != nil {
		logrus.WithError(err).Warn("Rate limit counter unavailable, admitting request")
	}
	return nil
}

func (c *RedisCounter) Get(key string, currentWindow, previousWindow time.Time) (int, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	vals, err := c.client.MGet(ctx, c.key(key, currentWindow), c.key(key, previousWindow)).Result()
	if err != nil {
		logrus.WithError(err).Warn("Rate limit counter unavailable, admitting request")
		return 0, 0, nil
	}
	return count(vals[0]), count(vals[1]), nil
}

// key hash-tags the caller key so both windows land in one cluster slot.
func (c *RedisCounter) key(key string, window time.Time) string {
	return c.prefix + "{" + key + "}:" + strconv.FormatInt(window.Unix(), 10)
}

func count(v interface{}) int {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}
