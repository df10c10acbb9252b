package spacetraveling

import (
	"context"
	"sync"
	"time"

	"github.com/eringen/spacetraveling/content"
)

// FeedLoader returns every published post, newest first.
type FeedLoader func(ctx context.Context) ([]content.Post, error)

// FeedCache is an in-memory cache of the collected feed with TTL. A TTL of
// zero or less disables caching and every read calls the loader.
type FeedCache struct {
	mu      sync.RWMutex
	posts   []content.Post
	fetched time.Time
	ttl     time.Duration
	load    FeedLoader
}

// NewFeedCache creates a FeedCache backed by load.
func NewFeedCache(load FeedLoader, ttl time.Duration) *FeedCache {
	return &FeedCache{load: load, ttl: ttl}
}

func (c *FeedCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *FeedCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.mu.Unlock()
}

// Posts returns the collected feed, loading it when the cache is cold.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *FeedCache) Posts(ctx context.Context) ([]content.Post, error) {
	if c.ttl <= 0 {
		return c.load(ctx)
	}

	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.posts, nil
	}
	posts, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []content.Post{}
	}
	c.posts = posts
	c.fetched = time.Now()
	return posts, nil
}
