package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airsales/config"
	"github.com/Domenick1991/airsales/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	flightsPrefix = "cache:flights:"
	// DefaultFlightsTTL replaces a non-positive TTL; redis would otherwise keep entries forever.
	DefaultFlightsTTL = time.Minute
)

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}), flightsTTL)
}

func NewRedisCacheFromClient(client *redis.Client, flightsTTL time.Duration) *RedisCache {
	if flightsTTL <= 0 {
		flightsTTL = DefaultFlightsTTL
	}
	return &RedisCache{client: client, flightsTTL: flightsTTL}
}

func (c *RedisCache) Client() *redis.Client {
	return c.client
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetFlights returns nil, nil on a miss.
func (c *RedisCache) GetFlights(ctx context.Context, key string) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, key string, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsPrefix+key, payload, c.flightsTTL).Err()
}

// InvalidateFlights drops every cached flight list; seat counts in them are stale after a booking.
// A read that missed before the booking committed can still write its older list back after
// this runs; that list lives until flightsTTL expires, so keep the TTL short.
func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, flightsPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func ScheduledKey() string {
	return "scheduled"
}

func SearchKey(origin, destination string) string {
	return fmt.Sprintf("search:%s:%s", origin, destination)
}
