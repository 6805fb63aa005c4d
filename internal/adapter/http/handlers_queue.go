package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/propmate/propmate/internal/domain/issue"
)

// queueResponse wraps the computed view with snapshot freshness metadata.
type queueResponse struct {
	issue.View
	FetchedAt time.Time `json:"fetched_at,omitempty"`
}

// GetQueue computes the queue view for the criteria in the query string.
// Unknown tab and sort values fall back to defaults; malformed numeric and
// date filters are ignored rather than rejected, matching how the dashboard
// treats stale bookmarked URLs.
func (h *Handlers) GetQueue(w http.ResponseWriter, r *http.Request) {
	c := criteriaFromQuery(r)

	v, err := h.Queue.View(r.Context(), c)
	if err != nil {
		writeDomainError(w, err, "queue unavailable")
		return
	}

	fetchedAt, _, _ := h.Queue.Status()
	writeJSON(w, http.StatusOK, queueResponse{View: v, FetchedAt: fetchedAt})
}

// RefreshQueue forces an immediate snapshot refresh ahead of the next poll.
func (h *Handlers) RefreshQueue(w http.ResponseWriter, r *http.Request) {
	if err := h.Queue.Refresh(r.Context()); err != nil {
		writeDomainError(w, err, "queue unavailable")
		return
	}
	h.GetQueue(w, r)
}

func criteriaFromQuery(r *http.Request) issue.Criteria {
	q := r.URL.Query()

	c := issue.Criteria{
		Tab:      issue.Tab(q.Get("tab")),
		Status:   issue.Status(q.Get("status")),
		Priority: issue.Priority(q.Get("priority")),
		Search:   q.Get("q"),
		Sort:     issue.Sort(q.Get("sort")),
	}
	if id, err := strconv.Atoi(q.Get("property_id")); err == nil && id > 0 {
		c.PropertyID = id
	}
	if id, err := strconv.Atoi(q.Get("tenant_id")); err == nil && id > 0 {
		c.TenantID = id
	}
	if t, err := time.Parse("2006-01-02", q.Get("from")); err == nil {
		c.From = t
	}
	if t, err := time.Parse("2006-01-02", q.Get("to")); err == nil {
		c.To = t
	}
	return c
}
