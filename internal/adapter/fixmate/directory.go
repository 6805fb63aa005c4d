package fixmate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/propmate/propmate/internal/domain/property"
	"github.com/propmate/propmate/internal/domain/tenant"
)

// Properties and tenants are owned by the upstream service; these calls are
// all org-scoped and carry the X-Org-ID header.

// ListProperties returns all properties for the client's organization.
func (c *Client) ListProperties(ctx context.Context) ([]property.Property, error) {
	var props []property.Property
	if err := c.get(ctx, "/api/properties", nil, true, &props); err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return props, nil
}

// CreateProperty registers a new property.
func (c *Client) CreateProperty(ctx context.Context, req property.CreateRequest) (*property.Property, error) {
	data, err := c.doRequest(ctx, http.MethodPost, "/api/properties", nil, req, true)
	if err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}
	var p property.Property
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal property: %w", err)
	}
	return &p, nil
}

// GetProperty fetches one property. A 404 surfaces as domain.ErrNotFound.
func (c *Client) GetProperty(ctx context.Context, id int) (*property.Property, error) {
	var p property.Property
	if err := c.get(ctx, "/api/properties/"+strconv.Itoa(id), nil, true, &p); err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("property %d", id))
	}
	return &p, nil
}

// UpdateProperty applies partial updates to a property.
func (c *Client) UpdateProperty(ctx context.Context, id int, req property.UpdateRequest) (*property.Property, error) {
	data, err := c.doRequest(ctx, http.MethodPut, "/api/properties/"+strconv.Itoa(id), nil, req, true)
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("property %d", id))
	}
	var p property.Property
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal property: %w", err)
	}
	return &p, nil
}

// DeleteProperty removes a property.
func (c *Client) DeleteProperty(ctx context.Context, id int) error {
	if _, err := c.doRequest(ctx, http.MethodDelete, "/api/properties/"+strconv.Itoa(id), nil, nil, true); err != nil {
		return notFoundOr(err, fmt.Sprintf("property %d", id))
	}
	return nil
}

// ListTenants returns tenants for the client's organization.
// includeInactive widens the listing to past tenants.
func (c *Client) ListTenants(ctx context.Context, includeInactive bool) ([]tenant.Tenant, error) {
	q := url.Values{}
	if includeInactive {
		q.Set("include_inactive", "true")
	}
	var tenants []tenant.Tenant
	if err := c.get(ctx, "/api/tenants", q, true, &tenants); err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	return tenants, nil
}

// CreateTenant registers a new tenant.
func (c *Client) CreateTenant(ctx context.Context, req tenant.CreateRequest) (*tenant.Tenant, error) {
	data, err := c.doRequest(ctx, http.MethodPost, "/api/tenants", nil, req, true)
	if err != nil {
		return nil, fmt.Errorf("create tenant: %w", err)
	}
	var tn tenant.Tenant
	if err := json.Unmarshal(data, &tn); err != nil {
		return nil, fmt.Errorf("unmarshal tenant: %w", err)
	}
	return &tn, nil
}

// GetTenant fetches one tenant. A 404 surfaces as domain.ErrNotFound.
func (c *Client) GetTenant(ctx context.Context, id int) (*tenant.Tenant, error) {
	var tn tenant.Tenant
	if err := c.get(ctx, "/api/tenants/"+strconv.Itoa(id), nil, true, &tn); err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("tenant %d", id))
	}
	return &tn, nil
}

// UpdateTenant applies partial updates to a tenant.
func (c *Client) UpdateTenant(ctx context.Context, id int, req tenant.UpdateRequest) (*tenant.Tenant, error) {
	data, err := c.doRequest(ctx, http.MethodPut, "/api/tenants/"+strconv.Itoa(id), nil, req, true)
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("tenant %d", id))
	}
	var tn tenant.Tenant
	if err := json.Unmarshal(data, &tn); err != nil {
		return nil, fmt.Errorf("unmarshal tenant: %w", err)
	}
	return &tn, nil
}

// DeleteTenant removes a tenant.
func (c *Client) DeleteTenant(ctx context.Context, id int) error {
	if _, err := c.doRequest(ctx, http.MethodDelete, "/api/tenants/"+strconv.Itoa(id), nil, nil, true); err != nil {
		return notFoundOr(err, fmt.Sprintf("tenant %d", id))
	}
	return nil
}
