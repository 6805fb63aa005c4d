// Package issue defines the maintenance issue domain: the Issue record, its
// status/priority/category taxonomies, and the queue view engine used by the
// manager dashboard.
package issue

import (
	"encoding/json"
	"time"
)

// Status is the lifecycle state of an issue. The set is closed on our side,
// but the upstream service may introduce new values at any time; parsing an
// unrecognized string yields a Status that matches no named tab and renders
// with a fallback label instead of failing.
type Status string

// Issue lifecycle statuses.
const (
	StatusNew                  Status = "new"
	StatusTriaging             Status = "triaging"
	StatusResolvedByAgent      Status = "resolved_by_agent"
	StatusEscalated            Status = "escalated"
	StatusAssigned             Status = "assigned"
	StatusInProgress           Status = "in_progress"
	StatusAwaitingConfirmation Status = "awaiting_confirmation"
	StatusClosed               Status = "closed"
)

// NeedsActionStatuses are the statuses requiring manager attention.
var NeedsActionStatuses = []Status{
	StatusEscalated,
	StatusAssigned,
	StatusInProgress,
	StatusAwaitingConfirmation,
}

// ActiveStatuses are all non-terminal statuses.
var ActiveStatuses = []Status{
	StatusNew,
	StatusTriaging,
	StatusResolvedByAgent,
	StatusEscalated,
	StatusAssigned,
	StatusInProgress,
	StatusAwaitingConfirmation,
}

var statusLabels = map[Status]string{
	StatusNew:                  "New",
	StatusTriaging:             "Agent Helping",
	StatusResolvedByAgent:      "Resolved by AI",
	StatusEscalated:            "Escalated",
	StatusAssigned:             "Assigned",
	StatusInProgress:           "In Progress",
	StatusAwaitingConfirmation: "Awaiting Confirmation",
	StatusClosed:               "Closed",
}

// Known reports whether s is one of the defined lifecycle statuses.
func (s Status) Known() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the display label for the status. Unknown values fall back
// to the raw string so the dashboard stays renderable.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// NeedsAction reports whether the status requires manager attention.
func (s Status) NeedsAction() bool {
	switch s {
	case StatusEscalated, StatusAssigned, StatusInProgress, StatusAwaitingConfirmation:
		return true
	}
	return false
}

// Active reports whether the status is non-terminal. Unknown statuses are
// not active: they belong to no tab.
func (s Status) Active() bool {
	return s.Known() && s != StatusClosed
}

// Priority is the urgency level of an issue. Nil/absent and unrecognized
// values are treated as medium for ranking and labeling only.
type Priority string

// Issue priorities.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var priorityLabels = map[Priority]string{
	PriorityLow:    "Low",
	PriorityMedium: "Medium",
	PriorityHigh:   "High",
	PriorityUrgent: "Urgent",
}

// Label returns the display label, defaulting to Medium for unknown values.
func (p Priority) Label() string {
	if l, ok := priorityLabels[p]; ok {
		return l
	}
	return priorityLabels[PriorityMedium]
}

// Rank orders priorities for sorting: urgent first, low last. The empty
// priority and unrecognized values rank as medium.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityLow:
		return 3
	default:
		return 2
	}
}

// Category is the maintenance trade classification of an issue, assigned by
// the triage agent or the reporting manager. Unknown values degrade to the
// general bucket.
type Category string

// Issue categories.
const (
	CategoryPlumbing   Category = "plumbing"
	CategoryElectrical Category = "electrical"
	CategoryAppliance  Category = "appliance"
	CategoryHeating    Category = "heating"
	CategoryStructural Category = "structural"
	CategoryPest       Category = "pest"
	CategoryCleaning   Category = "cleaning"
	CategorySecurity   Category = "security"
	CategoryExterior   Category = "exterior"
	CategoryGeneral    Category = "general"
)

var categoryLabels = map[Category]string{
	CategoryPlumbing:   "Plumbing",
	CategoryElectrical: "Electrical",
	CategoryAppliance:  "Appliance",
	CategoryHeating:    "Heating",
	CategoryStructural: "Structural",
	CategoryPest:       "Pest Control",
	CategoryCleaning:   "Cleaning",
	CategorySecurity:   "Security",
	CategoryExterior:   "Exterior",
	CategoryGeneral:    "General",
}

// Label returns the display label, defaulting to General for unknown values.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return categoryLabels[CategoryGeneral]
}

// Issue is a tenant-reported maintenance request tracked through the status
// lifecycle. Records are owned by the upstream maintenance service; this
// process only reads and requests mutations.
type Issue struct {
	ID              int       `json:"id"`
	TenantID        int       `json:"tenant_id"`
	PropertyID      int       `json:"property_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        Category  `json:"category,omitempty"`
	Status          Status    `json:"status"`
	Priority        Priority  `json:"priority,omitempty"`
	ResolvedByAgent string    `json:"resolved_by_agent,omitempty"`
	AssignedTo      string    `json:"assigned_to,omitempty"`
	PMNotes         string    `json:"pm_notes,omitempty"`
	FollowUpDate    string    `json:"follow_up_date,omitempty"`
	AgentMuted      bool      `json:"agent_muted"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Message is one turn of an issue's conversation. Append-only, ordered by
// creation time ascending.
type Message struct {
	ID        int             `json:"id"`
	IssueID   int             `json:"issue_id"`
	Role      string          `json:"role"`
	Content   string          `json:"content"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Conversation roles.
const (
	RoleTenant = "tenant"
	RoleAgent  = "agent"
	RoleSystem = "system"
	RoleTeam   = "team"
)

// Activity is an append-only audit record produced by the triage agent.
// The details payload shape depends on the action tag.
type Activity struct {
	ID          int             `json:"id"`
	IssueID     int             `json:"issue_id,omitempty"`
	Action      string          `json:"action"`
	Details     json.RawMessage `json:"details,omitempty"`
	WouldNotify string          `json:"would_notify,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
