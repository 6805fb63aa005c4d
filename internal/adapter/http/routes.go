package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/propmate/propmate/internal/adapter/ws"
)

// MountRoutes registers all API routes on the given chi router. The request
// timeout is applied per subrouter so /ws can stay open indefinitely.
func MountRoutes(r chi.Router, h *Handlers, hub *ws.Hub) {
	r.Get("/health", h.Health)
	r.Get("/ws", hub.HandleWS)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Timeout(60 * time.Second))
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"version":"0.1.0"}`))
		})

		// Queue
		r.Get("/queue", h.GetQueue)
		r.Post("/queue/refresh", h.RefreshQueue)

		// Issues
		r.Post("/issues", h.CreateIssue)
		r.Get("/issues/{id}", h.GetIssueDetail)
		r.Post("/issues/{id}/messages", h.SendMessage)
		r.Put("/issues/{id}/assign", h.AssignIssue)
		r.Post("/issues/{id}/close", h.CloseIssue)
		r.Put("/issues/{id}/status", h.UpdateStatus)
		r.Put("/issues/{id}/priority", h.UpdatePriority)
		r.Put("/issues/{id}/notes", h.UpdateNotes)
		r.Put("/issues/{id}/mute-agent", h.MuteAgent)
		r.Get("/issues/{id}/agent-status", h.GetAgentStatus)

		// Contractors (local directory)
		r.Get("/contractors", h.ListContractors)
		r.Post("/contractors", h.CreateContractor)
		r.Get("/contractors/{id}", h.GetContractor)
		r.Put("/contractors/{id}", h.UpdateContractor)
		r.Delete("/contractors/{id}", h.DeleteContractor)

		// Rooms (local directory)
		r.Get("/rooms", h.ListRooms)
		r.Post("/rooms", h.CreateRoom)
		r.Get("/rooms/{id}", h.GetRoom)
		r.Put("/rooms/{id}", h.UpdateRoom)
		r.Delete("/rooms/{id}", h.DeleteRoom)

		// Properties (upstream)
		r.Get("/properties", h.ListProperties)
		r.Post("/properties", h.CreateProperty)
		r.Get("/properties/{id}", h.GetProperty)
		r.Put("/properties/{id}", h.UpdateProperty)
		r.Delete("/properties/{id}", h.DeleteProperty)

		// Tenants (upstream)
		r.Get("/tenants", h.ListTenants)
		r.Post("/tenants", h.CreateTenant)
		r.Get("/tenants/{id}", h.GetTenant)
		r.Put("/tenants/{id}", h.UpdateTenant)
		r.Delete("/tenants/{id}", h.DeleteTenant)

		// Analytics and demo
		r.Get("/analytics/overview", h.GetAnalyticsOverview)
		r.Get("/analytics/resolution", h.GetAnalyticsResolution)
		r.Get("/analytics/categories", h.GetAnalyticsCategories)
		r.Get("/analytics/response-times", h.GetAnalyticsResponseTimes)
		r.Get("/activity", h.GetRecentActivity)
		r.Get("/demo/simulate-issue", h.SimulateIssue)
	})
}
