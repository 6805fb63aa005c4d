package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/propmate/propmate/internal/adapter/fixmate"
	"github.com/propmate/propmate/internal/adapter/memory"
	"github.com/propmate/propmate/internal/adapter/ws"
	"github.com/propmate/propmate/internal/config"
	"github.com/propmate/propmate/internal/domain/contractor"
	"github.com/propmate/propmate/internal/domain/issue"
	"github.com/propmate/propmate/internal/service"
)

// upstreamMux is a scriptable FixMate double.
func upstreamMux(t *testing.T, register func(mux *http.ServeMux)) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// newTestAPI wires the whole stack against the given upstream and returns
// the dashboard's router plus the directory store for seeding.
func newTestAPI(t *testing.T, upstream *httptest.Server) (http.Handler, *memory.Store) {
	t.Helper()

	cfg := config.Defaults()
	cfg.Upstream.OrgID = "org-1"

	client := fixmate.NewClient(upstream.URL, "org-1")
	store := memory.NewStore()
	hub := ws.NewHub(nil)

	queue := service.NewQueueService(client, nil, hub, nil, cfg, nil)
	issues := service.NewIssueService(client, store, queue, hub, cfg, nil)
	dir := service.NewDirectoryService(client, store, "org-1", nil)
	analytics := service.NewAnalyticsService(client)

	r := chi.NewRouter()
	MountRoutes(r, NewHandlers(queue, issues, dir, analytics), hub)
	return r, store
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestGetQueueTabsAndCounts(t *testing.T) {
	now := time.Now()
	upstream := upstreamMux(t, func(mux *http.ServeMux) {
		mux.HandleFunc("/api/issues", func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode([]issue.Issue{
				{ID: 1, Title: "Boiler down", Status: issue.StatusEscalated, Priority: issue.PriorityUrgent, CreatedAt: now.Add(-time.Hour)},
				{ID: 2, Title: "Dripping tap", Status: issue.StatusTriaging, Priority: issue.PriorityLow, CreatedAt: now.Add(-2 * time.Hour)},
				{ID: 3, Title: "Old issue", Status: issue.StatusClosed, CreatedAt: now.Add(-72 * time.Hour)},
			})
		})
	})
	api, _ := newTestAPI(t, upstream)

	// Seed the snapshot.
	if rec := doRequest(t, api, http.MethodPost, "/api/v1/queue/refresh", nil); rec.Code != http.StatusOK {
		t.Fatalf("refresh: %d %s", rec.Code, rec.Body.String())
	}

	rec := doRequest(t, api, http.MethodGet, "/api/v1/queue?tab=needs_action", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[queueResponse](t, rec)
	if resp.Total != 1 || resp.Rows[0].ID != 1 {
		t.Fatalf("needs_action rows = %+v", resp.Rows)
	}
	if resp.Counts[issue.TabAllActive] != 2 || resp.Counts[issue.TabClosed] != 1 {
		t.Fatalf("counts = %+v", resp.Counts)
	}
	if resp.FetchedAt.IsZero() {
		t.Fatal("fetched_at missing")
	}

	// Unknown tab falls back to needs_action instead of erroring.
	rec = doRequest(t, api, http.MethodGet, "/api/v1/queue?tab=bogus", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("bogus tab status = %d", rec.Code)
	}
	if got := decode[queueResponse](t, rec); got.Total != 1 {
		t.Fatalf("bogus tab total = %d, want needs_action fallback of 1", got.Total)
	}
}

func TestGetQueueSearchAndSort(t *testing.T) {
	now := time.Now()
	upstream := upstreamMux(t, func(mux *http.ServeMux) {
		mux.HandleFunc("/api/issues", func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode([]issue.Issue{
				{ID: 1, Title: "Boiler down", Status: issue.StatusEscalated, Priority: issue.PriorityHigh, CreatedAt: now.Add(-3 * time.Hour)},
				{ID: 2, Title: "BOILER pressure", Status: issue.StatusAssigned, Priority: issue.PriorityUrgent, CreatedAt: now.Add(-time.Hour)},
				{ID: 3, Title: "Broken blind", Status: issue.StatusInProgress, CreatedAt: now.Add(-2 * time.Hour)},
			})
		})
	})
	api, _ := newTestAPI(t, upstream)
	doRequest(t, api, http.MethodPost, "/api/v1/queue/refresh", nil)

	rec := doRequest(t, api, http.MethodGet, "/api/v1/queue?tab=needs_action&q=boiler&sort=priority", nil)
	resp := decode[queueResponse](t, rec)
	if resp.Total != 2 {
		t.Fatalf("search total = %d, want 2", resp.Total)
	}
	if resp.Rows[0].ID != 2 || resp.Rows[1].ID != 1 {
		t.Fatalf("priority order = [%d %d]", resp.Rows[0].ID, resp.Rows[1].ID)
	}
}

func TestGetIssueDetail(t *testing.T) {
	upstream := upstreamMux(t, func(mux *http.ServeMux) {
		mux.HandleFunc("/api/issues/7", func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(issue.Issue{ID: 7, Title: "Boiler down", Status: issue.StatusEscalated})
		})
		mux.HandleFunc("/api/issues/7/messages", func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode([]issue.Message{{ID: 1, IssueID: 7, Role: issue.RoleTenant, Content: "No hot water"}})
		})
		mux.HandleFunc("/api/issues/7/activity", func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode([]issue.Activity{})
		})
	})
	api, _ := newTestAPI(t, upstream)

	rec := doRequest(t, api, http.MethodGet, "/api/v1/issues/7", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	d := decode[service.Detail](t, rec)
	if d.Issue == nil || d.Issue.ID != 7 || len(d.Messages) != 1 {
		t.Fatalf("detail = %+v", d)
	}
}

func TestGetIssueDetailNotFound(t *testing.T) {
	upstream := upstreamMux(t, func(_ *http.ServeMux) {})
	api, _ := newTestAPI(t, upstream)

	rec := doRequest(t, api, http.MethodGet, "/api/v1/issues/404", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestAssignIssueByContractor(t *testing.T) {
	var gotAssign map[string]string
	upstream := upstreamMux(t, func(mux *http.ServeMux) {
		mux.HandleFunc("/api/issues/7/assign", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut {
				http.NotFound(w, r)
				return
			}
			_ = json.NewDecoder(r.Body).Decode(&gotAssign)
			_ = json.NewEncoder(w).Encode(fixmate.Ack{Status: "ok", AssignedTo: gotAssign["assigned_to"]})
		})
		mux.HandleFunc("/api/issues", func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode([]issue.Issue{})
		})
	})
	api, store := newTestAPI(t, upstream)

	c, err := store.CreateContractor(context.Background(), "org-1", contractor.CreateRequest{
		Name:    "Ana Pereira",
		Company: "Pereira Plumbing",
		Trade:   contractor.TradePlumbing,
	})
	if err != nil {
		t.Fatalf("seed contractor: %v", err)
	}

	rec := doRequest(t, api, http.MethodPut, "/api/v1/issues/7/assign", map[string]string{"contractor_id": c.ID})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if gotAssign["assigned_to"] != "Ana Pereira (Pereira Plumbing)" {
		t.Fatalf("assigned_to = %q", gotAssign["assigned_to"])
	}
}

func TestAssignIssueRequiresTarget(t *testing.T) {
	upstream := upstreamMux(t, func(_ *http.ServeMux) {})
	api, _ := newTestAPI(t, upstream)

	rec := doRequest(t, api, http.MethodPut, "/api/v1/issues/7/assign", map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	upstream := upstreamMux(t, func(_ *http.ServeMux) {})
	api, _ := newTestAPI(t, upstream)

	rec := doRequest(t, api, http.MethodPut, "/api/v1/issues/7/status", map[string]string{"status": "vanished"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestContractorCRUDOverHTTP(t *testing.T) {
	upstream := upstreamMux(t, func(_ *http.ServeMux) {})
	api, _ := newTestAPI(t, upstream)

	rec := doRequest(t, api, http.MethodPost, "/api/v1/contractors", contractor.CreateRequest{
		Name:  "Marek Novak",
		Trade: contractor.TradeElectrical,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	created := decode[contractor.Contractor](t, rec)

	rec = doRequest(t, api, http.MethodGet, "/api/v1/contractors?trade=electrical", nil)
	list := decode[[]contractor.Contractor](t, rec)
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("list = %+v", list)
	}

	rec = doRequest(t, api, http.MethodPut, "/api/v1/contractors/"+created.ID, map[string]string{"phone": "+44 20 7946 0823"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}

	rec = doRequest(t, api, http.MethodDelete, "/api/v1/contractors/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = doRequest(t, api, http.MethodGet, "/api/v1/contractors/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete = %d", rec.Code)
	}
}

func TestCreateContractorValidationError(t *testing.T) {
	upstream := upstreamMux(t, func(_ *http.ServeMux) {})
	api, _ := newTestAPI(t, upstream)

	rec := doRequest(t, api, http.MethodPost, "/api/v1/contractors", map[string]string{"trade": "plumbing"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestListRoomsRequiresPropertyID(t *testing.T) {
	upstream := upstreamMux(t, func(_ *http.ServeMux) {})
	api, _ := newTestAPI(t, upstream)

	rec := doRequest(t, api, http.MethodGet, "/api/v1/rooms", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyticsPassThrough(t *testing.T) {
	upstream := upstreamMux(t, func(mux *http.ServeMux) {
		mux.HandleFunc("/api/analytics/overview", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"open_issues":4,"resolved_this_week":11}`))
		})
	})
	api, _ := newTestAPI(t, upstream)

	rec := doRequest(t, api, http.MethodGet, "/api/v1/analytics/overview", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decode[map[string]int](t, rec)
	if got["open_issues"] != 4 {
		t.Fatalf("payload = %v", got)
	}
}

func TestUpstreamErrorSurfacesAsBadGateway(t *testing.T) {
	upstream := upstreamMux(t, func(mux *http.ServeMux) {
		mux.HandleFunc("/api/analytics/overview", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})
	})
	api, _ := newTestAPI(t, upstream)

	rec := doRequest(t, api, http.MethodGet, "/api/v1/analytics/overview", nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	upstream := upstreamMux(t, func(mux *http.ServeMux) {
		mux.HandleFunc("/api/issues", func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode([]issue.Issue{{ID: 1, Status: issue.StatusNew}})
		})
	})
	api, _ := newTestAPI(t, upstream)
	doRequest(t, api, http.MethodPost, "/api/v1/queue/refresh", nil)

	rec := doRequest(t, api, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decode[map[string]any](t, rec)
	if got["status"] != "ok" {
		t.Fatalf("health = %v", got)
	}
}
