// Package cache provides a Redis read-through cache in front of a page func.
//
// Pages are stored as JSON under a key derived from the list prefix, the
// query, the page size and the page index. Redis failures never fail a page:
// the cache logs them and falls through to the backing page func.
//
// Example usage:
//
//	pages := cache.New(redisClient, paginator.Page, cache.Config[string]{
//	    Prefix: "posts",
//	    TTL:    time.Minute,
//	})
//	ctrl, err := paging.New(opts, pages.Page)
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/nrfta/infinite-paging-go"
)

// DefaultTTL is used when Config.TTL is not set.
const DefaultTTL = 5 * time.Minute

// Config configures a PageCache.
type Config[Q any] struct {
	// Prefix namespaces keys for one list.
	Prefix string

	// TTL is how long a cached page stays valid.
	TTL time.Duration

	// QueryKey encodes a query for use in keys. The default JSON-encodes it.
	QueryKey func(Q) (string, error)
}

// PageCache wraps a paging.PageFunc with Redis caching.
type PageCache[Q any, T any] struct {
	redis *redis.Client
	fetch paging.PageFunc[Q, T]
	cfg   Config[Q]
}

// New creates a PageCache. It panics when client or fetch is nil.
func New[Q any, T any](client *redis.Client, fetch paging.PageFunc[Q, T], cfg Config[Q]) *PageCache[Q, T] {
	if client == nil {
		panic("redis client cannot be nil")
	}
	if fetch == nil {
		panic("page func cannot be nil")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.QueryKey == nil {
		cfg.QueryKey = jsonQueryKey[Q]
	}
	return &PageCache[Q, T]{redis: client, fetch: fetch, cfg: cfg}
}

// Page returns the cached page when present and otherwise fetches and
// stores it. Its signature matches paging.PageFunc.
func (c *PageCache[Q, T]) Page(ctx context.Context, query Q, pageSize, pageIndex int) ([]T, error) {
	key, err := c.key(query, pageSize, pageIndex)
	if err != nil {
		return nil, err
	}

	if page, ok := c.get(ctx, key); ok {
		PageHits.Inc()
		return page, nil
	}
	PageMisses.Inc()

	page, err := c.fetch(ctx, query, pageSize, pageIndex)
	if err != nil {
		return nil, err
	}

	c.set(ctx, key, page)
	return page, nil
}

// Invalidate removes every cached page of query.
func (c *PageCache[Q, T]) Invalidate(ctx context.Context, query Q) error {
	encoded, err := c.cfg.QueryKey(query)
	if err != nil {
		return fmt.Errorf("encode query: %w", err)
	}

	pattern := Key{Prefix: c.cfg.Prefix, Query: encoded}.queryPrefix() + ":*"
	iter := c.redis.Scan(ctx, 0, pattern, 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		CacheErrors.WithLabelValues("invalidate").Inc()
		return fmt.Errorf("redis scan: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		CacheErrors.WithLabelValues("invalidate").Inc()
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (c *PageCache[Q, T]) key(query Q, pageSize, pageIndex int) (Key, error) {
	encoded, err := c.cfg.QueryKey(query)
	if err != nil {
		return Key{}, fmt.Errorf("encode query: %w", err)
	}
	return Key{
		Prefix:    c.cfg.Prefix,
		Query:     encoded,
		PageSize:  pageSize,
		PageIndex: pageIndex,
	}, nil
}

func (c *PageCache[Q, T]) get(ctx context.Context, key Key) ([]T, bool) {
	data, err := c.redis.Get(ctx, key.String()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			CacheErrors.WithLabelValues("get").Inc()
			log.Warn().Err(err).Str("key", key.String()).Msg("Page cache read failed")
		}
		return nil, false
	}

	var page []T
	if err := json.Unmarshal(data, &page); err != nil {
		CacheErrors.WithLabelValues("decode").Inc()
		log.Warn().Err(err).Str("key", key.String()).Msg("Discarding undecodable cached page")
		return nil, false
	}
	return page, true
}

func (c *PageCache[Q, T]) set(ctx context.Context, key Key, page []T) {
	if page == nil {
		page = []T{}
	}

	data, err := json.Marshal(page)
	if err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		log.Warn().Err(err).Str("key", key.String()).Msg("Page not cacheable")
		return
	}

	if err := c.redis.Set(ctx, key.String(), data, c.cfg.TTL).Err(); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		log.Warn().Err(err).Str("key", key.String()).Msg("Page cache write failed")
	}
}

func jsonQueryKey[Q any](query Q) (string, error) {
	data, err := json.Marshal(query)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
