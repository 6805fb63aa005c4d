// Package property defines the Property and Room directory entities.
package property

import (
	"fmt"
	"time"

	"github.com/propmate/propmate/internal/domain"
)

// Status marks whether a property has capacity for new lettings.
type Status string

// Property statuses.
const (
	StatusAvailable Status = "available"
	StatusOccupied  Status = "occupied"
)

// Valid reports whether s is a defined property status.
func (s Status) Valid() bool {
	return s == StatusAvailable || s == StatusOccupied
}

// Property is a let building managed by an organization. Records are owned
// by the upstream maintenance service; propmate reads and mutates them
// through the API client only.
type Property struct {
	ID          int       `json:"id"`
	OrgID       string    `json:"org_id,omitempty"`
	Name        string    `json:"name"`
	Address     string    `json:"address,omitempty"`
	TotalRooms  int       `json:"total_rooms,omitempty"`
	MonthlyRent int       `json:"monthly_rent,omitempty"`
	Status      Status    `json:"status,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// CreateRequest holds the fields needed to register a property upstream.
type CreateRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	TotalRooms  int    `json:"total_rooms,omitempty"`
	MonthlyRent int    `json:"monthly_rent,omitempty"`
	Status      Status `json:"status,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// Validate checks the create request fields.
func (r CreateRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	if len(r.Name) > 256 {
		return fmt.Errorf("name exceeds 256 characters: %w", domain.ErrValidation)
	}
	if len(r.Address) > 512 {
		return fmt.Errorf("address exceeds 512 characters: %w", domain.ErrValidation)
	}
	if r.TotalRooms < 0 || r.TotalRooms > 100 {
		return fmt.Errorf("total_rooms out of range: %w", domain.ErrValidation)
	}
	if r.MonthlyRent < 0 || r.MonthlyRent > 100000 {
		return fmt.Errorf("monthly_rent out of range: %w", domain.ErrValidation)
	}
	if r.Status != "" && !r.Status.Valid() {
		return fmt.Errorf("unknown status %q: %w", r.Status, domain.ErrValidation)
	}
	if len(r.Notes) > 2000 {
		return fmt.Errorf("notes exceed 2000 characters: %w", domain.ErrValidation)
	}
	return nil
}

// UpdateRequest holds partial property updates; nil fields are untouched.
type UpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Address     *string `json:"address,omitempty"`
	TotalRooms  *int    `json:"total_rooms,omitempty"`
	MonthlyRent *int    `json:"monthly_rent,omitempty"`
	Status      *Status `json:"status,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// Validate checks the update request fields.
func (r UpdateRequest) Validate() error {
	if r.Name != nil && (*r.Name == "" || len(*r.Name) > 256) {
		return fmt.Errorf("name must be 1-256 characters: %w", domain.ErrValidation)
	}
	if r.Status != nil && !r.Status.Valid() {
		return fmt.Errorf("unknown status %q: %w", *r.Status, domain.ErrValidation)
	}
	if r.TotalRooms != nil && (*r.TotalRooms < 0 || *r.TotalRooms > 100) {
		return fmt.Errorf("total_rooms out of range: %w", domain.ErrValidation)
	}
	if r.MonthlyRent != nil && (*r.MonthlyRent < 0 || *r.MonthlyRent > 100000) {
		return fmt.Errorf("monthly_rent out of range: %w", domain.ErrValidation)
	}
	return nil
}
