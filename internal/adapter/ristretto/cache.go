// Package ristretto implements the view-cache port with dgraph-io/ristretto
// as the in-process memo for computed queue views.
package ristretto

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/propmate/propmate/internal/domain/issue"
)

// ViewCache memoizes queue view computations. Each entry costs 1 regardless
// of row count: the memo bounds entry count, not memory, since views are
// small and short-lived.
type ViewCache struct {
	c *ristretto.Cache[string, issue.View]
}

// New creates a ristretto-backed view cache holding at most maxEntries
// computed views.
func New(maxEntries int64) (*ViewCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, issue.View]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &ViewCache{c: c}, nil
}

// Get retrieves a memoized view.
func (c *ViewCache) Get(_ context.Context, key string) (issue.View, bool, error) {
	v, found := c.c.Get(key)
	if !found {
		return issue.View{}, false, nil
	}
	return v, true, nil
}

// Set stores a computed view with the given TTL.
func (c *ViewCache) Set(_ context.Context, key string, view issue.View, ttl time.Duration) error {
	c.c.SetWithTTL(key, view, 1, ttl)
	// Admission is async; wait so a freshly computed view is immediately
	// servable to the next identical query.
	c.c.Wait()
	return nil
}

// Delete removes a memoized view.
func (c *ViewCache) Delete(_ context.Context, key string) error {
	c.c.Del(key)
	return nil
}

// Close shuts down the cache and releases resources.
func (c *ViewCache) Close() {
	c.c.Close()
}
