package http

import (
	"net/http"
	"strconv"
)

// GetAnalyticsOverview returns the headline aggregates.
func (h *Handlers) GetAnalyticsOverview(w http.ResponseWriter, r *http.Request) {
	raw, err := h.Analytics.Overview(r.Context())
	if err != nil {
		writeDomainError(w, err, "analytics unavailable")
		return
	}
	writeJSON(w, http.StatusOK, raw)
}

// GetAnalyticsResolution returns agent-vs-human resolution aggregates.
func (h *Handlers) GetAnalyticsResolution(w http.ResponseWriter, r *http.Request) {
	raw, err := h.Analytics.Resolution(r.Context())
	if err != nil {
		writeDomainError(w, err, "analytics unavailable")
		return
	}
	writeJSON(w, http.StatusOK, raw)
}

// GetAnalyticsCategories returns issue volume per category.
func (h *Handlers) GetAnalyticsCategories(w http.ResponseWriter, r *http.Request) {
	raw, err := h.Analytics.Categories(r.Context())
	if err != nil {
		writeDomainError(w, err, "analytics unavailable")
		return
	}
	writeJSON(w, http.StatusOK, raw)
}

// GetAnalyticsResponseTimes returns response-time aggregates.
func (h *Handlers) GetAnalyticsResponseTimes(w http.ResponseWriter, r *http.Request) {
	raw, err := h.Analytics.ResponseTimes(r.Context())
	if err != nil {
		writeDomainError(w, err, "analytics unavailable")
		return
	}
	writeJSON(w, http.StatusOK, raw)
}

// GetRecentActivity returns the newest agent activity across all issues.
func (h *Handlers) GetRecentActivity(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	acts, err := h.Analytics.RecentActivity(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err, "activity unavailable")
		return
	}
	writeJSON(w, http.StatusOK, acts)
}

// SimulateIssue seeds a scripted demo issue upstream.
func (h *Handlers) SimulateIssue(w http.ResponseWriter, r *http.Request) {
	raw, err := h.Analytics.SimulateIssue(r.Context(), r.URL.Query().Get("scenario"))
	if err != nil {
		writeDomainError(w, err, "simulation unavailable")
		return
	}
	writeJSON(w, http.StatusOK, raw)
}
