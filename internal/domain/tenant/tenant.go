// Package tenant defines the Tenant directory record: the person renting a
// property or room, as exposed by the upstream maintenance service.
package tenant

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/propmate/propmate/internal/domain"
)

// Tenant is a renter registered with the upstream service. Issues reference
// tenants by id; the WhatsApp identity the triage agent talks to lives
// upstream and is not mirrored here.
type Tenant struct {
	ID         int       `json:"id"`
	OrgID      string    `json:"org_id,omitempty"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	PropertyID int       `json:"property_id,omitempty"`
	RoomID     string    `json:"room_id,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

// CreateRequest holds the fields needed to register a tenant upstream.
type CreateRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	PropertyID int    `json:"property_id,omitempty"`
	RoomID     string `json:"room_id,omitempty"`
}

// Validate checks the create request fields.
func (r CreateRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	if len(r.Name) > 256 {
		return fmt.Errorf("name exceeds 256 characters: %w", domain.ErrValidation)
	}
	if r.Email != "" {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			return fmt.Errorf("invalid email: %w", domain.ErrValidation)
		}
	}
	if len(r.Phone) > 32 {
		return fmt.Errorf("phone exceeds 32 characters: %w", domain.ErrValidation)
	}
	return nil
}

// UpdateRequest holds partial tenant updates; nil fields are untouched.
type UpdateRequest struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	PropertyID *int    `json:"property_id,omitempty"`
	RoomID     *string `json:"room_id,omitempty"`
	Active     *bool   `json:"active,omitempty"`
}

// Validate checks the update request fields.
func (r UpdateRequest) Validate() error {
	if r.Name != nil && (*r.Name == "" || len(*r.Name) > 256) {
		return fmt.Errorf("name must be 1-256 characters: %w", domain.ErrValidation)
	}
	if r.Email != nil && *r.Email != "" {
		if _, err := mail.ParseAddress(*r.Email); err != nil {
			return fmt.Errorf("invalid email: %w", domain.ErrValidation)
		}
	}
	return nil
}
