// Package service holds the dashboard business logic between the HTTP
// surface and the upstream FixMate adapter.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/propmate/propmate/internal/adapter/fixmate"
	"github.com/propmate/propmate/internal/adapter/otel"
	"github.com/propmate/propmate/internal/adapter/ws"
	"github.com/propmate/propmate/internal/config"
	"github.com/propmate/propmate/internal/domain/issue"
	"github.com/propmate/propmate/internal/port/cache"
)

// QueueService maintains the issue snapshot behind the manager's queue and
// serves filtered, sorted views over it. The snapshot is refreshed by
// polling; each successful refresh bumps a version so memoized views from
// older snapshots can never be served.
type QueueService struct {
	client  *fixmate.Client
	views   cache.ViewCache
	hub     *ws.Hub
	metrics *otel.Metrics
	log     *slog.Logger
	orgID   string
	ttl     time.Duration

	mu        sync.RWMutex
	snapshot  []issue.Issue
	version   uint64
	fetchedAt time.Time
	lastErr   error

	seqMu      sync.Mutex
	fetchSeq   uint64
	appliedSeq uint64
}

// NewQueueService creates a QueueService. views and hub may be nil; the
// service then skips memoization and broadcasting.
func NewQueueService(client *fixmate.Client, views cache.ViewCache, hub *ws.Hub, metrics *otel.Metrics, cfg config.Config, log *slog.Logger) *QueueService {
	if log == nil {
		log = slog.Default()
	}
	return &QueueService{
		client:  client,
		views:   views,
		hub:     hub,
		metrics: metrics,
		log:     log,
		orgID:   cfg.Upstream.OrgID,
		ttl:     cfg.Cache.TTL,
	}
}

// Refresh fetches the full issue list from upstream and installs it as the
// new snapshot. Concurrent refreshes resolve last-response-wins: a response
// that raced with a newer one is discarded rather than installed.
func (s *QueueService) Refresh(ctx context.Context) error {
	s.seqMu.Lock()
	s.fetchSeq++
	seq := s.fetchSeq
	s.seqMu.Unlock()

	if s.metrics != nil {
		s.metrics.QueuePolls.Add(ctx, 1)
	}

	issues, err := s.client.ListIssues(ctx, fixmate.ListFilter{})
	if err != nil {
		if s.metrics != nil {
			s.metrics.QueuePollErrors.Add(ctx, 1)
		}
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return fmt.Errorf("refresh queue: %w", err)
	}

	s.seqMu.Lock()
	stale := seq <= s.appliedSeq
	if !stale {
		s.appliedSeq = seq
	}
	s.seqMu.Unlock()
	if stale {
		return nil
	}

	s.mu.Lock()
	s.snapshot = issues
	s.version++
	s.fetchedAt = time.Now()
	s.lastErr = nil
	version := s.version
	s.mu.Unlock()

	s.log.Debug("queue snapshot refreshed", "issues", len(issues), "version", version)

	if s.hub != nil {
		v := issue.ComputeView(issues, issue.Criteria{})
		s.hub.BroadcastEvent(ctx, s.orgID, ws.EventQueueSnapshot, ws.QueueSnapshotEvent{
			Counts:    v.Counts,
			Total:     len(issues),
			FetchedAt: time.Now(),
		})
	}
	return nil
}

// View computes the queue projection for the given criteria over the
// current snapshot. Identical criteria against the same snapshot version
// are served from the memo cache.
func (s *QueueService) View(ctx context.Context, c issue.Criteria) (issue.View, error) {
	c = c.Normalize()

	s.mu.RLock()
	snapshot := s.snapshot
	version := s.version
	s.mu.RUnlock()

	key := fmt.Sprintf("v%d|%s", version, c.Key())
	if s.views != nil {
		if v, ok, err := s.views.Get(ctx, key); err == nil && ok {
			if s.metrics != nil {
				s.metrics.ViewCacheHits.Add(ctx, 1)
			}
			return v, nil
		}
	}

	ctx, span := otel.StartViewSpan(ctx, key)
	defer span.End()

	start := time.Now()
	v := issue.ComputeView(snapshot, c)
	if s.metrics != nil {
		s.metrics.ViewRecomputes.Add(ctx, 1)
		s.metrics.ViewDuration.Record(ctx, time.Since(start).Seconds())
	}

	if s.views != nil {
		if err := s.views.Set(ctx, key, v, s.ttl); err != nil {
			s.log.Warn("memoize queue view", "error", err)
		}
	}
	return v, nil
}

// Status reports when the snapshot was last refreshed and the last refresh
// error, if any.
func (s *QueueService) Status() (fetchedAt time.Time, size int, lastErr error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt, len(s.snapshot), s.lastErr
}

// StartPolling refreshes the snapshot on the configured cadence until the
// returned stop function is called or ctx is canceled. The first refresh
// runs immediately.
func (s *QueueService) StartPolling(ctx context.Context, interval time.Duration) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)

	go func() {
		pollCtx, span := otel.StartPollSpan(ctx, s.orgID)
		if err := s.Refresh(pollCtx); err != nil {
			s.log.Warn("initial queue poll failed", "error", err)
		}
		span.End()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				pollCtx, span := otel.StartPollSpan(ctx, s.orgID)
				if err := s.Refresh(pollCtx); err != nil {
					s.log.Warn("queue poll failed", "error", err)
				}
				span.End()
			}
		}
	}()

	return cancel
}
