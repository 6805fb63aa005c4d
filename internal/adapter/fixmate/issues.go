package fixmate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/propmate/propmate/internal/domain"
	"github.com/propmate/propmate/internal/domain/issue"
)

// CreateIssueRequest holds the fields for reporting a new issue on a
// tenant's behalf. SkipAgent suppresses automated triage for
// manager-created issues.
type CreateIssueRequest struct {
	TenantID    int            `json:"tenant_id"`
	PropertyID  int            `json:"property_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    issue.Category `json:"category,omitempty"`
	Priority    issue.Priority `json:"priority,omitempty"`
	AssignedTo  string         `json:"assigned_to,omitempty"`
	SkipAgent   bool           `json:"skip_agent,omitempty"`
}

// CreateIssueResponse acknowledges issue creation. The id is assigned by
// the service.
type CreateIssueResponse struct {
	ID      int    `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// CreateIssue reports a new maintenance issue. On any non-2xx response the
// error propagates and the caller must not assume the issue was created.
func (c *Client) CreateIssue(ctx context.Context, req CreateIssueRequest) (*CreateIssueResponse, error) {
	data, err := c.doRequest(ctx, http.MethodPost, "/api/issues", nil, req, true)
	if err != nil {
		return nil, fmt.Errorf("create issue: %w", err)
	}
	var resp CreateIssueResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal create issue: %w", err)
	}
	return &resp, nil
}

// GetIssue fetches one issue. A 404 surfaces as domain.ErrNotFound.
func (c *Client) GetIssue(ctx context.Context, id int) (*issue.Issue, error) {
	var is issue.Issue
	if err := c.get(ctx, "/api/issues/"+strconv.Itoa(id), nil, true, &is); err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("issue %d", id))
	}
	return &is, nil
}

// ListFilter narrows an issue listing. Zero values are omitted.
type ListFilter struct {
	PropertyID int
	TenantID   int
	Status     issue.Status
}

// ListIssues returns issues matching the filter. The server determines the
// order; callers re-sort through the queue engine.
func (c *Client) ListIssues(ctx context.Context, f ListFilter) ([]issue.Issue, error) {
	q := url.Values{}
	if f.PropertyID != 0 {
		q.Set("property_id", strconv.Itoa(f.PropertyID))
	}
	if f.TenantID != 0 {
		q.Set("tenant_id", strconv.Itoa(f.TenantID))
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}

	var issues []issue.Issue
	if err := c.get(ctx, "/api/issues", q, true, &issues); err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	return issues, nil
}

// Messages returns the issue's conversation, creation-order ascending.
func (c *Client) Messages(ctx context.Context, issueID int) ([]issue.Message, error) {
	var msgs []issue.Message
	if err := c.get(ctx, issuePath(issueID, "messages"), nil, true, &msgs); err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("issue %d messages", issueID))
	}
	return msgs, nil
}

// Ack is the generic acknowledgement body returned by mutation endpoints.
type Ack struct {
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	AssignedTo string `json:"assigned_to,omitempty"`
}

// SendMessage posts a conversation turn. Role defaults to team when empty.
// The remote agent may react asynchronously; callers should refetch after a
// short settle delay.
func (c *Client) SendMessage(ctx context.Context, issueID int, content, role string) (*Ack, error) {
	if role == "" {
		role = issue.RoleTeam
	}
	body := map[string]string{"message": content, "role": role}
	data, err := c.doRequest(ctx, http.MethodPost, issuePath(issueID, "messages"), nil, body, true)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	var ack Ack
	if err := json.Unmarshal(data, &ack); err != nil {
		return nil, fmt.Errorf("unmarshal send message: %w", err)
	}
	return &ack, nil
}

// Activity returns the agent audit log for one issue, oldest first.
func (c *Client) Activity(ctx context.Context, issueID int) ([]issue.Activity, error) {
	var acts []issue.Activity
	if err := c.get(ctx, issuePath(issueID, "activity"), nil, true, &acts); err != nil {
		return nil, fmt.Errorf("issue activity: %w", err)
	}
	return acts, nil
}

// RecentActivity returns the newest agent activity across all issues.
func (c *Client) RecentActivity(ctx context.Context, limit int) ([]issue.Activity, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var acts []issue.Activity
	if err := c.get(ctx, "/api/activity", q, true, &acts); err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	return acts, nil
}

// Assign records a tradesperson on the issue. The service flips the status
// to assigned and sets assigned_to as a side effect.
func (c *Client) Assign(ctx context.Context, issueID int, assignedTo string) (*Ack, error) {
	body := map[string]string{"assigned_to": assignedTo}
	data, err := c.doRequest(ctx, http.MethodPut, issuePath(issueID, "assign"), nil, body, true)
	if err != nil {
		return nil, fmt.Errorf("assign issue: %w", err)
	}
	var ack Ack
	if err := json.Unmarshal(data, &ack); err != nil {
		return nil, fmt.Errorf("unmarshal assign: %w", err)
	}
	return &ack, nil
}

// AssignLegacy uses the older query-parameter form of the assign endpoint.
//
// Deprecated: older upstream deployments only; use Assign.
func (c *Client) AssignLegacy(ctx context.Context, issueID int, assignedTo string) (*Ack, error) {
	q := url.Values{"assigned_to": {assignedTo}}
	data, err := c.doRequest(ctx, http.MethodPost, issuePath(issueID, "assign"), q, nil, true)
	if err != nil {
		return nil, fmt.Errorf("assign issue: %w", err)
	}
	var ack Ack
	if err := json.Unmarshal(data, &ack); err != nil {
		return nil, fmt.Errorf("unmarshal assign: %w", err)
	}
	return &ack, nil
}

// Close closes a resolved issue.
func (c *Client) Close(ctx context.Context, issueID int) error {
	if _, err := c.doRequest(ctx, http.MethodPost, issuePath(issueID, "close"), nil, nil, true); err != nil {
		return fmt.Errorf("close issue: %w", err)
	}
	return nil
}

// UpdateStatus sets the issue's lifecycle status.
func (c *Client) UpdateStatus(ctx context.Context, issueID int, status issue.Status) error {
	body := map[string]string{"status": string(status)}
	if _, err := c.doRequest(ctx, http.MethodPut, issuePath(issueID, "status"), nil, body, true); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

// UpdatePriority sets the issue's priority.
func (c *Client) UpdatePriority(ctx context.Context, issueID int, priority issue.Priority) error {
	body := map[string]string{"priority": string(priority)}
	if _, err := c.doRequest(ctx, http.MethodPut, issuePath(issueID, "priority"), nil, body, true); err != nil {
		return fmt.Errorf("update priority: %w", err)
	}
	return nil
}

// UpdateNotes sets the property manager's private notes on the issue.
func (c *Client) UpdateNotes(ctx context.Context, issueID int, notes string) error {
	body := map[string]string{"notes": notes}
	if _, err := c.doRequest(ctx, http.MethodPut, issuePath(issueID, "notes"), nil, body, true); err != nil {
		return fmt.Errorf("update notes: %w", err)
	}
	return nil
}

// MuteAgent suppresses or restores automated responses on the issue.
func (c *Client) MuteAgent(ctx context.Context, issueID int, muted bool) error {
	body := map[string]bool{"muted": muted}
	if _, err := c.doRequest(ctx, http.MethodPut, issuePath(issueID, "mute-agent"), nil, body, true); err != nil {
		return fmt.Errorf("mute agent: %w", err)
	}
	return nil
}

// AgentStatus reads whether automated responses are muted for the issue.
func (c *Client) AgentStatus(ctx context.Context, issueID int) (bool, error) {
	var resp struct {
		Muted bool `json:"muted"`
	}
	if err := c.get(ctx, issuePath(issueID, "agent-status"), nil, true, &resp); err != nil {
		return false, fmt.Errorf("agent status: %w", err)
	}
	return resp.Muted, nil
}

func issuePath(id int, rest string) string {
	return "/api/issues/" + strconv.Itoa(id) + "/" + rest
}

// notFoundOr maps a 404 APIError onto domain.ErrNotFound so handlers can
// translate it without knowing the wire details.
func notFoundOr(err error, what string) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}
