// Package contractor defines the Contractor directory entity and its trade
// taxonomy.
package contractor

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/propmate/propmate/internal/domain"
)

// Trade classifies the work a contractor takes on. Unknown values degrade
// to other rather than failing.
type Trade string

// Contractor trades.
const (
	TradePlumbing    Trade = "plumbing"
	TradeElectrical  Trade = "electrical"
	TradeHeating     Trade = "heating"
	TradeAppliance   Trade = "appliance"
	TradeLocksmith   Trade = "locksmith"
	TradeCarpentry   Trade = "carpentry"
	TradeRoofing     Trade = "roofing"
	TradeGlazing     Trade = "glazing"
	TradeCleaning    Trade = "cleaning"
	TradeGardening   Trade = "gardening"
	TradePestControl Trade = "pest_control"
	TradeGeneral     Trade = "general"
	TradeOther       Trade = "other"
)

var tradeLabels = map[Trade]string{
	TradePlumbing:    "Plumbing",
	TradeElectrical:  "Electrical",
	TradeHeating:     "Heating & Gas",
	TradeAppliance:   "Appliance Repair",
	TradeLocksmith:   "Locksmith",
	TradeCarpentry:   "Carpentry",
	TradeRoofing:     "Roofing",
	TradeGlazing:     "Glazing & Windows",
	TradeCleaning:    "Cleaning",
	TradeGardening:   "Gardening",
	TradePestControl: "Pest Control",
	TradeGeneral:     "General Maintenance",
	TradeOther:       "Other",
}

// Valid reports whether t is a defined trade.
func (t Trade) Valid() bool {
	_, ok := tradeLabels[t]
	return ok
}

// Label returns the display label, defaulting to Other for unknown values.
func (t Trade) Label() string {
	if l, ok := tradeLabels[t]; ok {
		return l
	}
	return tradeLabels[TradeOther]
}

// Contractor is a tradesperson in an organization's directory.
type Contractor struct {
	ID         string    `json:"id"`
	OrgID      string    `json:"org_id"`
	Name       string    `json:"name"`
	Company    string    `json:"company,omitempty"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Trade      Trade     `json:"trade"`
	HourlyRate int       `json:"hourly_rate,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DisplayName is the name recorded on an issue when the contractor is
// assigned: "name" or "name (company)" when a company is set.
func (c Contractor) DisplayName() string {
	if c.Company != "" {
		return c.Name + " (" + c.Company + ")"
	}
	return c.Name
}

// CreateRequest holds the fields needed to add a contractor.
type CreateRequest struct {
	Name       string `json:"name"`
	Company    string `json:"company,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Trade      Trade  `json:"trade"`
	HourlyRate int    `json:"hourly_rate,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// Validate checks the create request fields.
func (r CreateRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	if len(r.Name) > 256 {
		return fmt.Errorf("name exceeds 256 characters: %w", domain.ErrValidation)
	}
	if len(r.Company) > 256 {
		return fmt.Errorf("company exceeds 256 characters: %w", domain.ErrValidation)
	}
	if !r.Trade.Valid() {
		return fmt.Errorf("unknown trade %q: %w", r.Trade, domain.ErrValidation)
	}
	if r.Email != "" {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			return fmt.Errorf("invalid email: %w", domain.ErrValidation)
		}
	}
	if len(r.Phone) > 32 {
		return fmt.Errorf("phone exceeds 32 characters: %w", domain.ErrValidation)
	}
	if r.HourlyRate < 0 || r.HourlyRate > 100000 {
		return fmt.Errorf("hourly_rate out of range: %w", domain.ErrValidation)
	}
	if len(r.Notes) > 2000 {
		return fmt.Errorf("notes exceed 2000 characters: %w", domain.ErrValidation)
	}
	return nil
}

// UpdateRequest holds partial updates; nil fields are left untouched.
type UpdateRequest struct {
	Name       *string `json:"name,omitempty"`
	Company    *string `json:"company,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Trade      *Trade  `json:"trade,omitempty"`
	HourlyRate *int    `json:"hourly_rate,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	Active     *bool   `json:"active,omitempty"`
}

// Validate checks the update request fields.
func (r UpdateRequest) Validate() error {
	if r.Name != nil {
		if *r.Name == "" {
			return fmt.Errorf("name cannot be empty: %w", domain.ErrValidation)
		}
		if len(*r.Name) > 256 {
			return fmt.Errorf("name exceeds 256 characters: %w", domain.ErrValidation)
		}
	}
	if r.Trade != nil && !r.Trade.Valid() {
		return fmt.Errorf("unknown trade %q: %w", *r.Trade, domain.ErrValidation)
	}
	if r.Email != nil && *r.Email != "" {
		if _, err := mail.ParseAddress(*r.Email); err != nil {
			return fmt.Errorf("invalid email: %w", domain.ErrValidation)
		}
	}
	if r.HourlyRate != nil && (*r.HourlyRate < 0 || *r.HourlyRate > 100000) {
		return fmt.Errorf("hourly_rate out of range: %w", domain.ErrValidation)
	}
	if r.Notes != nil && len(*r.Notes) > 2000 {
		return fmt.Errorf("notes exceed 2000 characters: %w", domain.ErrValidation)
	}
	return nil
}

// Filter selects contractors when listing the directory.
type Filter struct {
	Trade  Trade  // exact match; empty = all
	Search string // case-insensitive substring on name/company
	Active *bool  // nil = all
}
