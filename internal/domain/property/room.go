package property

import (
	"fmt"
	"time"

	"github.com/propmate/propmate/internal/domain"
)

// RoomStatus is the occupancy state of a single room.
type RoomStatus string

// Room statuses.
const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

// Valid reports whether s is a defined room status.
func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance:
		return true
	}
	return false
}

// Room is a lettable unit inside a property. Rooms live in the local
// directory store, keyed by the upstream property id they belong to.
type Room struct {
	ID            string     `json:"id"`
	OrgID         string     `json:"org_id"`
	PropertyID    int        `json:"property_id"`
	Name          string     `json:"name"`
	Floor         int        `json:"floor"`
	SizeSqm       int        `json:"size_sqm,omitempty"`
	MonthlyRent   int        `json:"monthly_rent"`
	DepositAmount int        `json:"deposit_amount,omitempty"`
	HasEnsuite    bool       `json:"has_ensuite"`
	Furnished     bool       `json:"furnished"`
	Status        RoomStatus `json:"status"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// RoomCreateRequest holds the fields needed to add a room to a property.
type RoomCreateRequest struct {
	PropertyID    int        `json:"property_id"`
	Name          string     `json:"name"`
	Floor         int        `json:"floor"`
	SizeSqm       int        `json:"size_sqm,omitempty"`
	MonthlyRent   int        `json:"monthly_rent"`
	DepositAmount int        `json:"deposit_amount,omitempty"`
	HasEnsuite    bool       `json:"has_ensuite"`
	Furnished     bool       `json:"furnished"`
	Status        RoomStatus `json:"status,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

// Validate checks the room create request fields.
func (r RoomCreateRequest) Validate() error {
	if r.PropertyID <= 0 {
		return fmt.Errorf("property_id is required: %w", domain.ErrValidation)
	}
	if r.Name == "" {
		return fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	if len(r.Name) > 100 {
		return fmt.Errorf("name exceeds 100 characters: %w", domain.ErrValidation)
	}
	if r.Floor < -1 || r.Floor > 10 {
		return fmt.Errorf("floor out of range: %w", domain.ErrValidation)
	}
	if r.SizeSqm < 0 || r.SizeSqm > 200 {
		return fmt.Errorf("size_sqm out of range: %w", domain.ErrValidation)
	}
	if r.MonthlyRent < 0 {
		return fmt.Errorf("monthly_rent cannot be negative: %w", domain.ErrValidation)
	}
	if r.DepositAmount < 0 {
		return fmt.Errorf("deposit_amount cannot be negative: %w", domain.ErrValidation)
	}
	if r.Status != "" && !r.Status.Valid() {
		return fmt.Errorf("unknown status %q: %w", r.Status, domain.ErrValidation)
	}
	if len(r.Notes) > 1000 {
		return fmt.Errorf("notes exceed 1000 characters: %w", domain.ErrValidation)
	}
	return nil
}

// RoomUpdateRequest holds partial room updates; nil fields are untouched.
type RoomUpdateRequest struct {
	Name          *string     `json:"name,omitempty"`
	Floor         *int        `json:"floor,omitempty"`
	SizeSqm       *int        `json:"size_sqm,omitempty"`
	MonthlyRent   *int        `json:"monthly_rent,omitempty"`
	DepositAmount *int        `json:"deposit_amount,omitempty"`
	HasEnsuite    *bool       `json:"has_ensuite,omitempty"`
	Furnished     *bool       `json:"furnished,omitempty"`
	Status        *RoomStatus `json:"status,omitempty"`
	Notes         *string     `json:"notes,omitempty"`
}

// Validate checks the room update request fields.
func (r RoomUpdateRequest) Validate() error {
	if r.Name != nil && (*r.Name == "" || len(*r.Name) > 100) {
		return fmt.Errorf("name must be 1-100 characters: %w", domain.ErrValidation)
	}
	if r.Floor != nil && (*r.Floor < -1 || *r.Floor > 10) {
		return fmt.Errorf("floor out of range: %w", domain.ErrValidation)
	}
	if r.MonthlyRent != nil && *r.MonthlyRent < 0 {
		return fmt.Errorf("monthly_rent cannot be negative: %w", domain.ErrValidation)
	}
	if r.Status != nil && !r.Status.Valid() {
		return fmt.Errorf("unknown status %q: %w", *r.Status, domain.ErrValidation)
	}
	return nil
}
