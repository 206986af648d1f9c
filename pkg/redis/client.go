package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PingTimeout bounds the connectivity check done by Init.
const PingTimeout = 5 * time.Second

// client is shared by the challenge store and the session store.
var client *redis.Client

var pingClient = func(ctx context.Context, c *redis.Client) error {
	return c.Ping(ctx).Err()
}

// Init parses url, builds the shared client and pings it. A non-empty
// password overrides whatever the URL carries.
func Init(url, password string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}

	client = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), PingTimeout)
	defer cancel()
	if err := pingClient(ctx, client); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

// SetClient swaps the shared client. Tests point it at miniredis.
func SetClient(c *redis.Client) {
	client = c
}

func GetClient() *redis.Client {
	return client
}

// Close releases the shared client, if any.
func Close() error {
	if client == nil {
		return nil
	}
	return client.Close()
}

// Set stores value under key. A zero expiration keeps the key forever.
func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return client.Set(ctx, key, value, expiration).Err()
}

// Get returns redis.Nil when key is absent.
func Get(ctx context.Context, key string) (string, error) {
	return client.Get(ctx, key).Result()
}

var deleteIfEqualScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// DeleteIfEqual removes key only while it still holds expected. It reports
// whether this call did the delete.
func DeleteIfEqual(ctx context.Context, key, expected string) (bool, error) {
	n, err := deleteIfEqualScript.Run(ctx, client, []string{key}, expected).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func Del(ctx context.Context, key string) error {
	return client.Del(ctx, key).Err()
}
