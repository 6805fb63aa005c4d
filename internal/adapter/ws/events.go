package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/propmate/propmate/internal/domain/issue"
)

// Event type constants for WebSocket messages.
const (
	EventQueueSnapshot  = "queue.snapshot"
	EventIssueUpdated   = "issue.updated"
	EventActivityLogged = "activity.logged"
	EventAgentStatus    = "agent.status"
)

// QueueSnapshotEvent is broadcast after each queue poll with fresh tab
// counts so clients can refresh badges without refetching.
type QueueSnapshotEvent struct {
	Counts    map[issue.Tab]int `json:"counts"`
	Total     int               `json:"total"`
	FetchedAt time.Time         `json:"fetched_at"`
}

// IssueUpdatedEvent is broadcast when an issue mutation goes through
// (status, priority, notes, assignment, close, mute).
type IssueUpdatedEvent struct {
	IssueID int    `json:"issue_id"`
	Field   string `json:"field"`
}

// ActivityLoggedEvent is broadcast when new activity entries arrive for an
// issue being watched.
type ActivityLoggedEvent struct {
	IssueID int `json:"issue_id"`
	Count   int `json:"count"`
}

// AgentStatusEvent is broadcast when an issue's AI triage toggle changes.
type AgentStatusEvent struct {
	IssueID int  `json:"issue_id"`
	Muted   bool `json:"muted"`
}

// BroadcastEvent marshals a typed event and broadcasts it to the org.
func (h *Hub) BroadcastEvent(ctx context.Context, orgID, eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("marshal ws event payload", "type", eventType, "error", err)
		return
	}

	h.BroadcastToOrg(ctx, orgID, Message{
		Type:    eventType,
		Payload: json.RawMessage(data),
	})
}
