package fixmate_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/propmate/propmate/internal/adapter/fixmate"
	"github.com/propmate/propmate/internal/domain"
	"github.com/propmate/propmate/internal/domain/property"
	"github.com/propmate/propmate/internal/domain/tenant"
)

func TestPropertyCRUD(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Org-ID"); got != "org_test" {
			t.Fatalf("missing org header on %s %s", r.Method, r.URL.Path)
		}

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/properties":
			var req property.CreateRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			_ = json.NewEncoder(w).Encode(property.Property{ID: 11, Name: req.Name, Address: req.Address})
		case r.Method == http.MethodGet && r.URL.Path == "/api/properties":
			_ = json.NewEncoder(w).Encode([]property.Property{{ID: 11, Name: "12 Hartley Road"}})
		case r.Method == http.MethodPut && r.URL.Path == "/api/properties/11":
			_ = json.NewEncoder(w).Encode(property.Property{ID: 11, Name: "12 Hartley Rd"})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/properties/11":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	client := fixmate.NewClient(srv.URL, "org_test")
	ctx := context.Background()

	created, err := client.CreateProperty(ctx, property.CreateRequest{Name: "12 Hartley Road", Address: "Leeds"})
	if err != nil {
		t.Fatalf("CreateProperty failed: %v", err)
	}
	if created.ID != 11 {
		t.Fatalf("expected id 11, got %d", created.ID)
	}

	props, err := client.ListProperties(ctx)
	if err != nil {
		t.Fatalf("ListProperties failed: %v", err)
	}
	if len(props) != 1 {
		t.Fatalf("expected 1 property, got %d", len(props))
	}

	name := "12 Hartley Rd"
	updated, err := client.UpdateProperty(ctx, 11, property.UpdateRequest{Name: &name})
	if err != nil {
		t.Fatalf("UpdateProperty failed: %v", err)
	}
	if updated.Name != name {
		t.Fatalf("expected updated name, got %q", updated.Name)
	}

	if err := client.DeleteProperty(ctx, 11); err != nil {
		t.Fatalf("DeleteProperty failed: %v", err)
	}
}

func TestGetPropertyNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"detail":"Property not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := fixmate.NewClient(srv.URL, "org_test")
	if _, err := client.GetProperty(context.Background(), 99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListTenantsIncludeInactive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("include_inactive"); got != "true" {
			t.Fatalf("expected include_inactive=true, got %q", got)
		}
		_ = json.NewEncoder(w).Encode([]tenant.Tenant{
			{ID: 1, Name: "Asha Patel", Active: true},
			{ID: 2, Name: "Former Tenant", Active: false},
		})
	}))
	defer srv.Close()

	client := fixmate.NewClient(srv.URL, "org_test")
	tenants, err := client.ListTenants(context.Background(), true)
	if err != nil {
		t.Fatalf("ListTenants failed: %v", err)
	}
	if len(tenants) != 2 {
		t.Fatalf("expected 2 tenants, got %d", len(tenants))
	}
}

func TestWithOrgSwapsHeader(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("X-Org-ID"))
		_ = json.NewEncoder(w).Encode([]tenant.Tenant{})
	}))
	defer srv.Close()

	client := fixmate.NewClient(srv.URL, "org_a")
	ctx := context.Background()

	if _, err := client.ListTenants(ctx, false); err != nil {
		t.Fatalf("ListTenants failed: %v", err)
	}
	if _, err := client.WithOrg("org_b").ListTenants(ctx, false); err != nil {
		t.Fatalf("ListTenants with org_b failed: %v", err)
	}

	if len(seen) != 2 || seen[0] != "org_a" || seen[1] != "org_b" {
		t.Fatalf("unexpected org headers: %v", seen)
	}
}
