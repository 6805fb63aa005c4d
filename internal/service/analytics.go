package service

import (
	"context"
	"encoding/json"

	"github.com/propmate/propmate/internal/adapter/fixmate"
	"github.com/propmate/propmate/internal/domain/issue"
)

// AnalyticsService exposes the upstream dashboard aggregates. Payload
// shapes are owned by the upstream service and pass through untouched.
type AnalyticsService struct {
	client *fixmate.Client
}

// NewAnalyticsService creates an AnalyticsService.
func NewAnalyticsService(client *fixmate.Client) *AnalyticsService {
	return &AnalyticsService{client: client}
}

// Overview returns the headline aggregates.
func (s *AnalyticsService) Overview(ctx context.Context) (json.RawMessage, error) {
	return s.client.AnalyticsOverview(ctx)
}

// Resolution returns agent-vs-human resolution aggregates.
func (s *AnalyticsService) Resolution(ctx context.Context) (json.RawMessage, error) {
	return s.client.AnalyticsResolution(ctx)
}

// Categories returns issue volume per category.
func (s *AnalyticsService) Categories(ctx context.Context) (json.RawMessage, error) {
	return s.client.AnalyticsCategories(ctx)
}

// ResponseTimes returns response-time aggregates.
func (s *AnalyticsService) ResponseTimes(ctx context.Context) (json.RawMessage, error) {
	return s.client.AnalyticsResponseTimes(ctx)
}

// RecentActivity returns the newest agent activity across all issues.
func (s *AnalyticsService) RecentActivity(ctx context.Context, limit int) ([]issue.Activity, error) {
	return s.client.RecentActivity(ctx, limit)
}

// SimulateIssue seeds a scripted demo issue upstream.
func (s *AnalyticsService) SimulateIssue(ctx context.Context, scenario string) (json.RawMessage, error) {
	return s.client.SimulateIssue(ctx, scenario)
}
