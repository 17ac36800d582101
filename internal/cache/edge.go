package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TagEvictor drops every edge-cached response carrying one of the tags.
type TagEvictor interface {
	EvictTags(ctx context.Context, tags ...string) error
}

// Edge is the response cache tier. Each stored response is registered in a
// Redis set per tag so it can be evicted by tag.
type Edge struct {
	rdb    redis.Cmdable
	prefix string
}

func NewEdge(rdb redis.Cmdable, prefix string) *Edge {
	if prefix == "" {
		prefix = "outcache"
	}
	return &Edge{rdb: rdb, prefix: prefix}
}

func (e *Edge) tagKey(tag string) string {
	return fmt.Sprintf("%s:tag:%s", e.prefix, tag)
}

// Key namespaces a response key under the edge prefix.
func (e *Edge) Key(suffix string) string {
	return e.prefix + ":" + suffix
}

// Get returns the stored payload; ok is false on a miss.
func (e *Edge) Get(ctx context.Context, key string) ([]byte, bool, error) {
	bs, err := e.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return bs, true, nil
}

// Store saves payload for ttl and indexes key under each tag.
func (e *Edge) Store(ctx context.Context, key string, payload []byte, ttl time.Duration, tags ...string) error {
	_, err := e.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, key, payload, ttl)
		for _, tag := range tags {
			tk := e.tagKey(tag)
			p.SAdd(ctx, tk, key)
			// the index only needs to outlive the longest policy
			p.Expire(ctx, tk, 25*time.Hour)
		}
		return nil
	})
	return err
}

func (e *Edge) EvictTags(ctx context.Context, tags ...string) error {
	var errs []error
	for _, tag := range tags {
		tk := e.tagKey(tag)
		keys, err := e.rdb.SMembers(ctx, tk).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			errs = append(errs, fmt.Errorf("tag %s: %w", tag, err))
			continue
		}
		keys = append(keys, tk)
		if err := e.rdb.Del(ctx, keys...).Err(); err != nil {
			errs = append(errs, fmt.Errorf("tag %s: %w", tag, err))
		}
	}
	return errors.Join(errs...)
}

// NopEvictor is used when no edge tier is configured.
type NopEvictor struct{}

func (NopEvictor) EvictTags(context.Context, ...string) error { return nil }
