package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nrfta/infinite-paging-go"
	"github.com/nrfta/infinite-paging-go/cache"
	"github.com/nrfta/infinite-paging-go/config"
)

const defaultTitle = "Title"

// titleSource is a fake backend producing "<title> - N" rows. It returns an
// empty page once total rows have been served.
type titleSource struct {
	delay time.Duration
	total int
}

func (s titleSource) Page(ctx context.Context, query string, pageSize, pageIndex int) ([]string, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	title := strings.TrimSpace(query)
	if title == "" {
		title = defaultTitle
	}

	start := pageSize * pageIndex
	if start >= s.total {
		return []string{}, nil
	}

	end := start + pageSize
	if end > s.total {
		end = s.total
	}

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, fmt.Sprintf("%s - %d", title, i))
	}
	return rows, nil
}

// buildPageFunc returns the demo page func, cached in Redis when configured.
// The returned close func releases the Redis client.
func buildPageFunc(cfg config.Config) (paging.PageFunc[string, string], func() error) {
	src := titleSource{delay: cfg.Source.Delay, total: cfg.Source.Total}
	if !cfg.Cache.Enabled() {
		return src.Page, func() error { return nil }
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.Cache.Addr})
	pages := cache.New(client, src.Page, cache.Config[string]{
		Prefix: cfg.Cache.Prefix,
		TTL:    cfg.Cache.TTL,
		QueryKey: func(q string) (string, error) {
			return strings.TrimSpace(q), nil
		},
	})
	return pages.Page, client.Close
}
