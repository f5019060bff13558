package rdx

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keys owned by this service.
const (
	KeyPopularCamps = "camps:popular"
	KeyGlobalStats  = "stats:global"
)

// Cache is a small JSON read-through cache over redis. Every method
// fails open: a redis outage degrades to hitting Mongo, never to an
// error response.
type Cache struct {
	Conn *redis.Client
}

func New(addr string) *Cache {
	return &Cache{Conn: redis.NewClient(&redis.Options{Addr: addr})}
}

// GetJSON reports whether the key was present and decoded into v.
func (c *Cache) GetJSON(ctx context.Context, key string, v any) bool {
	if c == nil || c.Conn == nil {
		return false
	}
	raw, err := c.Conn.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Println("redis get error:", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		log.Println("redis cache decode error:", err)
		return false
	}
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) {
	if c == nil || c.Conn == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.Conn.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Println("redis set error:", err)
	}
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.Conn == nil {
		return
	}
	if err := c.Conn.Del(ctx, keys...).Err(); err != nil {
		log.Println("redis del error:", err)
	}
}
