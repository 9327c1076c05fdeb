package seedpress

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/eringen/seedpress/content"
)

// PostCache is an in-memory cache of indexed posts with TTL.
type PostCache struct {
	mu      sync.RWMutex
	posts   []content.Post
	fetched time.Time
	ttl     time.Duration
	store   *Store
	drafts  bool
}

// NewPostCache creates a PostCache backed by the given Store. With drafts
// set the cache serves draft posts as well.
func NewPostCache(s *Store, ttl time.Duration, drafts bool) *PostCache {
	return &PostCache{store: s, ttl: ttl, drafts: drafts}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.mu.Unlock()
}

func (c *PostCache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	var (
		posts []content.Post
		err   error
	)
	if c.drafts {
		posts, err = c.store.ListAllPosts(ctx)
	} else {
		posts, err = c.store.ListPosts(ctx)
	}
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []content.Post{}
	}
	c.posts = posts
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached posts after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded(ctx context.Context) ([]content.Post, error) {
	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	return c.posts, nil
}

// ListPosts returns the cached posts, newest first.
func (c *PostCache) ListPosts(ctx context.Context) ([]content.Post, error) {
	return c.ensureLoaded(ctx)
}

// GetPost returns a single post by id from the cache.
func (c *PostCache) GetPost(ctx context.Context, id string) (content.Post, error) {
	posts, err := c.ensureLoaded(ctx)
	if err != nil {
		return content.Post{}, err
	}
	for _, p := range posts {
		if p.ID == id {
			return p, nil
		}
	}
	return content.Post{}, fmt.Errorf("%w: %q", content.ErrNotFound, id)
}
