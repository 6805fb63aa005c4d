// Package directory defines the directory store port (interface).
package directory

import (
	"context"

	"github.com/propmate/propmate/internal/domain/contractor"
	"github.com/propmate/propmate/internal/domain/property"
)

// Store is the port interface for the locally managed directory: the
// contractor roster and per-property room registry. Every operation is
// scoped to an organization.
type Store interface {
	// Contractors
	ListContractors(ctx context.Context, orgID string, f contractor.Filter) ([]contractor.Contractor, error)
	GetContractor(ctx context.Context, orgID, id string) (*contractor.Contractor, error)
	CreateContractor(ctx context.Context, orgID string, req contractor.CreateRequest) (*contractor.Contractor, error)
	UpdateContractor(ctx context.Context, orgID, id string, req contractor.UpdateRequest) (*contractor.Contractor, error)
	DeleteContractor(ctx context.Context, orgID, id string) error

	// Rooms
	ListRooms(ctx context.Context, orgID string, propertyID int) ([]property.Room, error)
	GetRoom(ctx context.Context, orgID, id string) (*property.Room, error)
	CreateRoom(ctx context.Context, orgID string, req property.RoomCreateRequest) (*property.Room, error)
	UpdateRoom(ctx context.Context, orgID, id string, req property.RoomUpdateRequest) (*property.Room, error)
	DeleteRoom(ctx context.Context, orgID, id string) error
}
