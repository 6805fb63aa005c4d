package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/propmate/propmate/internal/adapter/fixmate"
	"github.com/propmate/propmate/internal/adapter/memory"
	"github.com/propmate/propmate/internal/domain"
	"github.com/propmate/propmate/internal/domain/contractor"
	"github.com/propmate/propmate/internal/domain/issue"
)

// detailUpstream serves the three endpoints a detail fetch touches and
// records the request paths it saw.
type detailUpstream struct {
	mu    sync.Mutex
	paths []string
	srv   *httptest.Server
}

func newDetailUpstream(t *testing.T) *detailUpstream {
	t.Helper()
	u := &detailUpstream{}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		u.paths = append(u.paths, r.Method+" "+r.URL.Path)
		u.mu.Unlock()

		switch r.URL.Path {
		case "/api/issues/7":
			_ = json.NewEncoder(w).Encode(issue.Issue{ID: 7, Title: "Boiler down", Status: issue.StatusEscalated})
		case "/api/issues/7/messages":
			_ = json.NewEncoder(w).Encode([]issue.Message{
				{ID: 1, IssueID: 7, Role: issue.RoleTenant, Content: "No hot water"},
				{ID: 2, IssueID: 7, Role: issue.RoleAgent, Content: "Looking into it"},
			})
		case "/api/issues/7/activity":
			_ = json.NewEncoder(w).Encode([]issue.Activity{
				{ID: 1, IssueID: 7, Action: "classified"},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func (u *detailUpstream) sawPaths() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.paths...)
}

func TestDetailFetchesAllThree(t *testing.T) {
	up := newDetailUpstream(t)
	svc := NewIssueService(fixmate.NewClient(up.srv.URL, "org-1"), memory.NewStore(), nil, nil, testConfig(), nil)

	d, err := svc.Detail(context.Background(), 7)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if d.Issue == nil || d.Issue.ID != 7 {
		t.Fatalf("issue missing: %+v", d.Issue)
	}
	if len(d.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(d.Messages))
	}
	if len(d.Activity) != 1 {
		t.Fatalf("activity = %d, want 1", len(d.Activity))
	}
	if len(up.sawPaths()) != 3 {
		t.Fatalf("expected 3 upstream calls, saw %v", up.sawPaths())
	}
}

func TestDetailPropagatesNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	svc := NewIssueService(fixmate.NewClient(srv.URL, "org-1"), memory.NewStore(), nil, nil, testConfig(), nil)
	if _, err := svc.Detail(context.Background(), 404); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAssignUsesContractorDisplayName(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut && r.URL.Path == "/api/issues/7/assign" {
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			_ = json.NewEncoder(w).Encode(fixmate.Ack{Status: "ok", AssignedTo: gotBody["assigned_to"]})
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	store := memory.NewStore()
	c, err := store.CreateContractor(context.Background(), "org-1", contractor.CreateRequest{
		Name:    "Ana Pereira",
		Company: "Pereira Plumbing",
		Trade:   contractor.TradePlumbing,
	})
	if err != nil {
		t.Fatalf("seed contractor: %v", err)
	}

	svc := NewIssueService(fixmate.NewClient(srv.URL, "org-1"), store, nil, nil, testConfig(), nil)
	ack, err := svc.Assign(context.Background(), 7, c.ID)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if gotBody["assigned_to"] != "Ana Pereira (Pereira Plumbing)" {
		t.Fatalf("assigned_to = %q", gotBody["assigned_to"])
	}
	if ack.AssignedTo != "Ana Pereira (Pereira Plumbing)" {
		t.Fatalf("ack = %+v", ack)
	}
}

func TestAssignUnknownContractor(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	svc := NewIssueService(fixmate.NewClient(srv.URL, "org-1"), memory.NewStore(), nil, nil, testConfig(), nil)
	if _, err := svc.Assign(context.Background(), 7, "missing-id"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSendMessageRefetchesAfterSettle(t *testing.T) {
	var mu sync.Mutex
	var msgs []issue.Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/issues/7/messages" {
			http.NotFound(w, r)
			return
		}
		mu.Lock()
		defer mu.Unlock()
		switch r.Method {
		case http.MethodPost:
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			msgs = append(msgs, issue.Message{ID: len(msgs) + 1, IssueID: 7, Role: body["role"], Content: body["message"]})
			// The agent reacts before the dashboard refetches.
			msgs = append(msgs, issue.Message{ID: len(msgs) + 1, IssueID: 7, Role: issue.RoleAgent, Content: "On it"})
			_ = json.NewEncoder(w).Encode(fixmate.Ack{Status: "ok"})
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(msgs)
		}
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Poll.SettleDelay = 10 * time.Millisecond
	svc := NewIssueService(fixmate.NewClient(srv.URL, "org-1"), memory.NewStore(), nil, nil, cfg, nil)

	got, err := svc.SendMessage(context.Background(), 7, "Any update?", "")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected refetched conversation of 2, got %d", len(got))
	}
	if got[0].Role != issue.RoleTeam {
		t.Fatalf("empty role should default to team, got %q", got[0].Role)
	}
	if got[1].Role != issue.RoleAgent {
		t.Fatalf("agent reply missing after settle: %+v", got)
	}
}

func TestSendMessageCanceledDuringSettle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(fixmate.Ack{Status: "ok"})
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Poll.SettleDelay = 5 * time.Second
	svc := NewIssueService(fixmate.NewClient(srv.URL, "org-1"), memory.NewStore(), nil, nil, cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	if _, err := svc.SendMessage(ctx, 7, "hello", ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatal("cancel did not interrupt the settle delay")
	}
}

func TestCreateSkipsAgent(t *testing.T) {
	var got fixmate.CreateIssueRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/api/issues" {
			_ = json.NewDecoder(r.Body).Decode(&got)
			_ = json.NewEncoder(w).Encode(fixmate.CreateIssueResponse{ID: 31, Status: "new"})
			return
		}
		// Post-create refresh hits the list endpoint.
		_ = json.NewEncoder(w).Encode([]issue.Issue{})
	}))
	defer srv.Close()

	client := fixmate.NewClient(srv.URL, "org-1")
	queue := NewQueueService(client, nil, nil, nil, testConfig(), nil)
	svc := NewIssueService(client, memory.NewStore(), queue, nil, testConfig(), nil)

	resp, err := svc.Create(context.Background(), fixmate.CreateIssueRequest{
		TenantID:   3,
		PropertyID: 1,
		Title:      "Broken lock",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.ID != 31 {
		t.Fatalf("resp = %+v", resp)
	}
	if !got.SkipAgent {
		t.Fatal("manager-created issues must skip automated triage")
	}
}

func TestWatchBroadcastsNewActivity(t *testing.T) {
	var mu sync.Mutex
	acts := []issue.Activity{{ID: 1, IssueID: 7, Action: "classified"}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		_ = json.NewEncoder(w).Encode(acts)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Poll.DetailInterval = 15 * time.Millisecond
	svc := NewIssueService(fixmate.NewClient(srv.URL, "org-1"), memory.NewStore(), nil, nil, cfg, nil)

	stop := svc.Watch(context.Background(), 7)
	defer stop()

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	acts = append(acts, issue.Activity{ID: 2, IssueID: 7, Action: "escalated"})
	mu.Unlock()

	// No hub attached: the loop must still poll without panicking.
	time.Sleep(50 * time.Millisecond)
	stop()
}
