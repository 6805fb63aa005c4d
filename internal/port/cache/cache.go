// Package cache defines the port interface for memoizing computed queue views.
package cache

import (
	"context"
	"time"

	"github.com/propmate/propmate/internal/domain/issue"
)

// ViewCache is the port interface for the queue view memo. Keys combine the
// criteria hash with the snapshot version, so stale entries age out by TTL
// rather than explicit invalidation.
type ViewCache interface {
	Get(ctx context.Context, key string) (issue.View, bool, error)
	Set(ctx context.Context, key string, view issue.View, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
