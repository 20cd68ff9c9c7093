// Package ratelimit counts requests per key in fixed one-minute windows.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter reports whether one more hit for key is allowed, and how many
// remain in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, remaining int, err error)
}

const window = time.Minute

// Redis shares the counters between every storefront instance.
type Redis struct {
	client *redis.Client
	limit  int
	prefix string
}

func NewRedis(client *redis.Client, limit int) *Redis {
	return &Redis{client: client, limit: limit, prefix: "bfguitars:rl:"}
}

// NewRedisClient builds a client with the timeouts the storefront uses.
func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
}

// hit increments the window counter and starts its expiry on the first hit,
// or whenever an earlier hit left the key without one. PEXPIRE without flags
// keeps this working on servers older than Redis 7.
var hit = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 or redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

func (r *Redis) Allow(ctx context.Context, key string) (bool, int, error) {
	n, err := hit.Run(ctx, r.client, []string{r.prefix + key}, window.Milliseconds()).Int()
	if err != nil {
		return true, r.limit, err
	}
	if n > r.limit {
		return false, 0, nil
	}
	return true, r.limit - n, nil
}

// Memory is the single-instance fallback when no Redis is configured.
type Memory struct {
	mu      sync.Mutex
	limit   int
	now     func() time.Time
	windows map[string]*counter
}

type counter struct {
	start time.Time
	hits  int
}

func NewMemory(limit int) *Memory {
	return &Memory{limit: limit, now: time.Now, windows: map[string]*counter{}}
}

func (m *Memory) Allow(_ context.Context, key string) (bool, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	c, ok := m.windows[key]
	if !ok || now.Sub(c.start) >= window {
		c = &counter{start: now}
		m.windows[key] = c
		if len(m.windows) > 10000 {
			m.sweep(now)
		}
	}
	c.hits++
	if c.hits > m.limit {
		return false, 0, nil
	}
	return true, m.limit - c.hits, nil
}

func (m *Memory) sweep(now time.Time) {
	for k, c := range m.windows {
		if now.Sub(c.start) >= window {
			delete(m.windows, k)
		}
	}
}
