package fixmate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Analytics and demo endpoints are read-only aggregates for dashboard
// display. Their payload shapes are owned by the upstream service, so they
// pass through as raw JSON.

// AnalyticsOverview returns the headline dashboard aggregates.
func (c *Client) AnalyticsOverview(ctx context.Context) (json.RawMessage, error) {
	return c.analytics(ctx, "overview")
}

// AnalyticsResolution returns agent-vs-human resolution aggregates.
func (c *Client) AnalyticsResolution(ctx context.Context) (json.RawMessage, error) {
	return c.analytics(ctx, "resolution")
}

// AnalyticsCategories returns issue volume per category.
func (c *Client) AnalyticsCategories(ctx context.Context) (json.RawMessage, error) {
	return c.analytics(ctx, "categories")
}

// AnalyticsResponseTimes returns response-time aggregates.
func (c *Client) AnalyticsResponseTimes(ctx context.Context) (json.RawMessage, error) {
	return c.analytics(ctx, "response-times")
}

func (c *Client) analytics(ctx context.Context, section string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/analytics/"+section, nil, true, &raw); err != nil {
		return nil, fmt.Errorf("analytics %s: %w", section, err)
	}
	return raw, nil
}

// SimulateIssue seeds a scripted demo issue upstream and returns the
// service's acknowledgement.
func (c *Client) SimulateIssue(ctx context.Context, scenario string) (json.RawMessage, error) {
	q := url.Values{}
	if scenario != "" {
		q.Set("scenario", scenario)
	}
	var raw json.RawMessage
	if err := c.get(ctx, "/api/demo/simulate-issue", q, true, &raw); err != nil {
		return nil, fmt.Errorf("simulate issue: %w", err)
	}
	return raw, nil
}
