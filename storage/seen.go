package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	"econoshorts/types"

	"github.com/redis/go-redis/v9"
)

const seenTTL = 72 * time.Hour

// SeenTopics remembers recently covered topics in Redis so the autopilot
// does not produce two videos on the same story.
type SeenTopics struct {
	client *redis.Client
	prefix string
}

// NewSeenTopicsFromEnv connects using REDIS_ADDR/REDIS_PASS. An unset
// REDIS_ADDR disables deduplication.
func NewSeenTopicsFromEnv(ctx context.Context) (*SeenTopics, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &SeenTopics{client: client, prefix: "econoshorts:seen:"}, nil
}

// MarkSeen records the topic and reports whether this was its first sighting
// inside the TTL window.
func (s *SeenTopics) MarkSeen(ctx context.Context, topic string) (bool, error) {
	key := s.prefix + types.GenerateID(topic)
	first, err := s.client.SetNX(ctx, key, time.Now().Format(time.RFC3339), seenTTL).Result()
	if err != nil {
		return false, fmt.Errorf("setnx %s: %w", key, err)
	}
	return first, nil
}

// Close releases the Redis connection.
func (s *SeenTopics) Close() error { return s.client.Close() }
