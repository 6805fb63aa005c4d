// Package memory is an in-process directory store. The upstream FixMate
// service owns properties and tenants; contractors and rooms are local-only
// data, held here behind the directory port.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/propmate/propmate/internal/domain"
	"github.com/propmate/propmate/internal/domain/contractor"
	"github.com/propmate/propmate/internal/domain/property"
)

// Store implements directory.Store with mutex-protected maps.
type Store struct {
	mu          sync.RWMutex
	contractors map[string]contractor.Contractor
	rooms       map[string]property.Room
	now         func() time.Time
}

// NewStore creates an empty directory store.
func NewStore() *Store {
	return &Store{
		contractors: make(map[string]contractor.Contractor),
		rooms:       make(map[string]property.Room),
		now:         time.Now,
	}
}

// ListContractors returns the org's contractors matching f, sorted by name.
func (s *Store) ListContractors(_ context.Context, orgID string, f contractor.Filter) ([]contractor.Contractor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(f.Search)
	out := make([]contractor.Contractor, 0)
	for _, c := range s.contractors {
		if c.OrgID != orgID {
			continue
		}
		if f.Trade != "" && c.Trade != f.Trade {
			continue
		}
		if f.Active != nil && c.Active != *f.Active {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Name), search) &&
			!strings.Contains(strings.ToLower(c.Company), search) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetContractor returns a contractor by id within the org.
func (s *Store) GetContractor(_ context.Context, orgID, id string) (*contractor.Contractor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contractors[id]
	if !ok || c.OrgID != orgID {
		return nil, fmt.Errorf("contractor %s: %w", id, domain.ErrNotFound)
	}
	return &c, nil
}

// CreateContractor adds a contractor to the org's directory.
func (s *Store) CreateContractor(_ context.Context, orgID string, req contractor.CreateRequest) (*contractor.Contractor, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c := contractor.Contractor{
		ID:         uuid.NewString(),
		OrgID:      orgID,
		Name:       req.Name,
		Company:    req.Company,
		Email:      req.Email,
		Phone:      req.Phone,
		Trade:      req.Trade,
		HourlyRate: req.HourlyRate,
		Notes:      req.Notes,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.contractors[c.ID] = c
	return &c, nil
}

// UpdateContractor applies the non-nil fields of req.
func (s *Store) UpdateContractor(_ context.Context, orgID, id string, req contractor.UpdateRequest) (*contractor.Contractor, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contractors[id]
	if !ok || c.OrgID != orgID {
		return nil, fmt.Errorf("contractor %s: %w", id, domain.ErrNotFound)
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Company != nil {
		c.Company = *req.Company
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Trade != nil {
		c.Trade = *req.Trade
	}
	if req.HourlyRate != nil {
		c.HourlyRate = *req.HourlyRate
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
	c.UpdatedAt = s.now()
	s.contractors[id] = c
	return &c, nil
}

// DeleteContractor removes a contractor from the org's directory.
func (s *Store) DeleteContractor(_ context.Context, orgID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contractors[id]
	if !ok || c.OrgID != orgID {
		return fmt.Errorf("contractor %s: %w", id, domain.ErrNotFound)
	}
	delete(s.contractors, id)
	return nil
}

// ListRooms returns the org's rooms for a property, sorted by floor then name.
func (s *Store) ListRooms(_ context.Context, orgID string, propertyID int) ([]property.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]property.Room, 0)
	for _, r := range s.rooms {
		if r.OrgID != orgID || r.PropertyID != propertyID {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Floor != out[j].Floor {
			return out[i].Floor < out[j].Floor
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// GetRoom returns a room by id within the org.
func (s *Store) GetRoom(_ context.Context, orgID, id string) (*property.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rooms[id]
	if !ok || r.OrgID != orgID {
		return nil, fmt.Errorf("room %s: %w", id, domain.ErrNotFound)
	}
	return &r, nil
}

// CreateRoom adds a room under a property. Room names are unique per
// property within an org.
func (s *Store) CreateRoom(_ context.Context, orgID string, req property.RoomCreateRequest) (*property.Room, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.rooms {
		if existing.OrgID == orgID && existing.PropertyID == req.PropertyID && existing.Name == req.Name {
			return nil, fmt.Errorf("room %q already exists in property %d: %w", req.Name, req.PropertyID, domain.ErrConflict)
		}
	}

	status := req.Status
	if status == "" {
		status = property.RoomAvailable
	}
	now := s.now()
	r := property.Room{
		ID:            uuid.NewString(),
		OrgID:         orgID,
		PropertyID:    req.PropertyID,
		Name:          req.Name,
		Floor:         req.Floor,
		SizeSqm:       req.SizeSqm,
		MonthlyRent:   req.MonthlyRent,
		DepositAmount: req.DepositAmount,
		HasEnsuite:    req.HasEnsuite,
		Furnished:     req.Furnished,
		Status:        status,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.rooms[r.ID] = r
	return &r, nil
}

// UpdateRoom applies the non-nil fields of req.
func (s *Store) UpdateRoom(_ context.Context, orgID, id string, req property.RoomUpdateRequest) (*property.Room, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[id]
	if !ok || r.OrgID != orgID {
		return nil, fmt.Errorf("room %s: %w", id, domain.ErrNotFound)
	}
	if req.Name != nil {
		for _, existing := range s.rooms {
			if existing.ID != id && existing.OrgID == orgID &&
				existing.PropertyID == r.PropertyID && existing.Name == *req.Name {
				return nil, fmt.Errorf("room %q already exists in property %d: %w", *req.Name, r.PropertyID, domain.ErrConflict)
			}
		}
		r.Name = *req.Name
	}
	if req.Floor != nil {
		r.Floor = *req.Floor
	}
	if req.SizeSqm != nil {
		r.SizeSqm = *req.SizeSqm
	}
	if req.MonthlyRent != nil {
		r.MonthlyRent = *req.MonthlyRent
	}
	if req.DepositAmount != nil {
		r.DepositAmount = *req.DepositAmount
	}
	if req.HasEnsuite != nil {
		r.HasEnsuite = *req.HasEnsuite
	}
	if req.Furnished != nil {
		r.Furnished = *req.Furnished
	}
	if req.Status != nil {
		r.Status = *req.Status
	}
	if req.Notes != nil {
		r.Notes = *req.Notes
	}
	r.UpdatedAt = s.now()
	s.rooms[id] = r
	return &r, nil
}

// DeleteRoom removes a room from the org's registry.
func (s *Store) DeleteRoom(_ context.Context, orgID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[id]
	if !ok || r.OrgID != orgID {
		return fmt.Errorf("room %s: %w", id, domain.ErrNotFound)
	}
	delete(s.rooms, id)
	return nil
}
