package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

const redisChannel = "storefront:client_state"

// RedisStore keeps client state in Redis strings and announces writes on
// a pub/sub channel.
type RedisStore struct {
	client    *redis.Client
	namespace string
	logger    zerolog.Logger
}

// NewRedisStore connects using a redis:// URL and verifies the connection.
func NewRedisStore(ctx context.Context, url, namespace string, logger zerolog.Logger) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger = logger.With().Str("component", "redis-store").Str("namespace", namespace).Logger()
	logger.Info().Str("addr", opts.Addr).Msg("redis store initialised")

	return &RedisStore{client: client, namespace: namespace, logger: logger}, nil
}

func (s *RedisStore) key(key string) string {
	return s.namespace + ":" + key
}

// Get retrieves the value stored under key.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		s.logger.Error().Err(err).Str("key", key).Msg("failed to get client state")
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

// Set stores the value and publishes the key.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to set client state")
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	s.publish(ctx, key)
	return nil
}

// Delete removes the value and publishes the key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	s.publish(ctx, key)
	return nil
}

func (s *RedisStore) publish(ctx context.Context, key string) {
	if err := s.client.Publish(ctx, redisChannel, s.key(key)).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to publish change")
	}
}

// Watch subscribes to change announcements for this namespace.
func (s *RedisStore) Watch(ctx context.Context) (<-chan string, error) {
	sub := s.client.Subscribe(ctx, redisChannel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", redisChannel, err)
	}

	out := make(chan string, 16)
	prefix := s.namespace + ":"
	messages := sub.Channel()

	go func() {
		defer close(out)
		defer sub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				if !strings.HasPrefix(msg.Payload, prefix) {
					continue
				}
				select {
				case out <- strings.TrimPrefix(msg.Payload, prefix):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// Close releases the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
