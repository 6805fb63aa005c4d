package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/propmate/propmate/internal/adapter/fixmate"
	"github.com/propmate/propmate/internal/domain/contractor"
	"github.com/propmate/propmate/internal/domain/property"
	"github.com/propmate/propmate/internal/domain/tenant"
	"github.com/propmate/propmate/internal/port/directory"
)

// DirectoryService manages the portfolio: properties and tenants live
// upstream and pass through the FixMate client; contractors and rooms live
// in the local directory store.
type DirectoryService struct {
	client *fixmate.Client
	store  directory.Store
	log    *slog.Logger
	orgID  string
}

// NewDirectoryService creates a DirectoryService.
func NewDirectoryService(client *fixmate.Client, store directory.Store, orgID string, log *slog.Logger) *DirectoryService {
	if log == nil {
		log = slog.Default()
	}
	return &DirectoryService{client: client, store: store, log: log, orgID: orgID}
}

// Contractors

// ListContractors returns the org's contractor roster.
func (s *DirectoryService) ListContractors(ctx context.Context, f contractor.Filter) ([]contractor.Contractor, error) {
	return s.store.ListContractors(ctx, s.orgID, f)
}

// GetContractor returns one contractor.
func (s *DirectoryService) GetContractor(ctx context.Context, id string) (*contractor.Contractor, error) {
	return s.store.GetContractor(ctx, s.orgID, id)
}

// CreateContractor adds a contractor to the roster.
func (s *DirectoryService) CreateContractor(ctx context.Context, req contractor.CreateRequest) (*contractor.Contractor, error) {
	c, err := s.store.CreateContractor(ctx, s.orgID, req)
	if err != nil {
		return nil, err
	}
	s.log.Info("contractor created", "contractor_id", c.ID, "trade", c.Trade)
	return c, nil
}

// UpdateContractor applies partial updates to a contractor.
func (s *DirectoryService) UpdateContractor(ctx context.Context, id string, req contractor.UpdateRequest) (*contractor.Contractor, error) {
	return s.store.UpdateContractor(ctx, s.orgID, id, req)
}

// DeleteContractor removes a contractor from the roster.
func (s *DirectoryService) DeleteContractor(ctx context.Context, id string) error {
	return s.store.DeleteContractor(ctx, s.orgID, id)
}

// Rooms

// ListRooms returns the rooms registered under a property.
func (s *DirectoryService) ListRooms(ctx context.Context, propertyID int) ([]property.Room, error) {
	return s.store.ListRooms(ctx, s.orgID, propertyID)
}

// GetRoom returns one room.
func (s *DirectoryService) GetRoom(ctx context.Context, id string) (*property.Room, error) {
	return s.store.GetRoom(ctx, s.orgID, id)
}

// CreateRoom registers a room after verifying the parent property exists
// upstream.
func (s *DirectoryService) CreateRoom(ctx context.Context, req property.RoomCreateRequest) (*property.Room, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.client.GetProperty(ctx, req.PropertyID); err != nil {
		return nil, fmt.Errorf("verify property %d: %w", req.PropertyID, err)
	}
	return s.store.CreateRoom(ctx, s.orgID, req)
}

// UpdateRoom applies partial updates to a room.
func (s *DirectoryService) UpdateRoom(ctx context.Context, id string, req property.RoomUpdateRequest) (*property.Room, error) {
	return s.store.UpdateRoom(ctx, s.orgID, id, req)
}

// DeleteRoom removes a room from the registry.
func (s *DirectoryService) DeleteRoom(ctx context.Context, id string) error {
	return s.store.DeleteRoom(ctx, s.orgID, id)
}

// Properties (upstream)

// ListProperties returns the org's properties from upstream.
func (s *DirectoryService) ListProperties(ctx context.Context) ([]property.Property, error) {
	return s.client.ListProperties(ctx)
}

// GetProperty returns one property from upstream.
func (s *DirectoryService) GetProperty(ctx context.Context, id int) (*property.Property, error) {
	return s.client.GetProperty(ctx, id)
}

// CreateProperty registers a property upstream.
func (s *DirectoryService) CreateProperty(ctx context.Context, req property.CreateRequest) (*property.Property, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.client.CreateProperty(ctx, req)
}

// UpdateProperty applies partial updates upstream.
func (s *DirectoryService) UpdateProperty(ctx context.Context, id int, req property.UpdateRequest) (*property.Property, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.client.UpdateProperty(ctx, id, req)
}

// DeleteProperty removes a property upstream. Rooms registered locally
// under it are removed as well.
func (s *DirectoryService) DeleteProperty(ctx context.Context, id int) error {
	if err := s.client.DeleteProperty(ctx, id); err != nil {
		return err
	}
	rooms, err := s.store.ListRooms(ctx, s.orgID, id)
	if err != nil {
		s.log.Warn("list rooms for deleted property", "property_id", id, "error", err)
		return nil
	}
	for _, r := range rooms {
		if err := s.store.DeleteRoom(ctx, s.orgID, r.ID); err != nil {
			s.log.Warn("remove orphaned room", "room_id", r.ID, "error", err)
		}
	}
	return nil
}

// Tenants (upstream)

// ListTenants returns the org's tenants from upstream.
func (s *DirectoryService) ListTenants(ctx context.Context, includeInactive bool) ([]tenant.Tenant, error) {
	return s.client.ListTenants(ctx, includeInactive)
}

// GetTenant returns one tenant from upstream.
func (s *DirectoryService) GetTenant(ctx context.Context, id int) (*tenant.Tenant, error) {
	return s.client.GetTenant(ctx, id)
}

// CreateTenant registers a tenant upstream.
func (s *DirectoryService) CreateTenant(ctx context.Context, req tenant.CreateRequest) (*tenant.Tenant, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.client.CreateTenant(ctx, req)
}

// UpdateTenant applies partial updates upstream.
func (s *DirectoryService) UpdateTenant(ctx context.Context, id int, req tenant.UpdateRequest) (*tenant.Tenant, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.client.UpdateTenant(ctx, id, req)
}

// DeleteTenant removes a tenant upstream.
func (s *DirectoryService) DeleteTenant(ctx context.Context, id int) error {
	return s.client.DeleteTenant(ctx, id)
}
