package http

import (
	"net/http"
	"time"

	"github.com/propmate/propmate/internal/service"
)

// Handlers bundles the services behind the REST surface.
type Handlers struct {
	Queue     *service.QueueService
	Issues    *service.IssueService
	Directory *service.DirectoryService
	Analytics *service.AnalyticsService
}

// NewHandlers creates the handler set.
func NewHandlers(queue *service.QueueService, issues *service.IssueService, dir *service.DirectoryService, analytics *service.AnalyticsService) *Handlers {
	return &Handlers{
		Queue:     queue,
		Issues:    issues,
		Directory: dir,
		Analytics: analytics,
	}
}

// Health reports process liveness and queue snapshot freshness.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	fetchedAt, size, lastErr := h.Queue.Status()

	resp := map[string]any{
		"status":        "ok",
		"snapshot_size": size,
	}
	if !fetchedAt.IsZero() {
		resp["snapshot_age_seconds"] = int(time.Since(fetchedAt).Seconds())
	}
	if lastErr != nil {
		resp["status"] = "degraded"
		resp["last_poll_error"] = lastErr.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}
