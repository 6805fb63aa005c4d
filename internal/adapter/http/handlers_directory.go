package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/propmate/propmate/internal/domain/contractor"
	"github.com/propmate/propmate/internal/domain/property"
	"github.com/propmate/propmate/internal/domain/tenant"
)

// Contractors

// ListContractors returns the contractor roster, optionally filtered by
// trade, active flag, and a name/company search.
func (h *Handlers) ListContractors(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := contractor.Filter{
		Trade:  contractor.Trade(q.Get("trade")),
		Search: q.Get("q"),
	}
	if raw := q.Get("active"); raw != "" {
		active := raw == "true"
		f.Active = &active
	}
	list, err := h.Directory.ListContractors(r.Context(), f)
	if err != nil {
		writeDomainError(w, err, "contractors unavailable")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GetContractor returns one contractor.
func (h *Handlers) GetContractor(w http.ResponseWriter, r *http.Request) {
	c, err := h.Directory.GetContractor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "contractor not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CreateContractor adds a contractor to the roster.
func (h *Handlers) CreateContractor(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[contractor.CreateRequest](w, r)
	if !ok {
		return
	}
	c, err := h.Directory.CreateContractor(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "contractor not created")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// UpdateContractor applies partial updates to a contractor.
func (h *Handlers) UpdateContractor(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[contractor.UpdateRequest](w, r)
	if !ok {
		return
	}
	c, err := h.Directory.UpdateContractor(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err, "contractor not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DeleteContractor removes a contractor from the roster.
func (h *Handlers) DeleteContractor(w http.ResponseWriter, r *http.Request) {
	if err := h.Directory.DeleteContractor(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, "contractor not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Rooms

// ListRooms returns the rooms registered under a property.
func (h *Handlers) ListRooms(w http.ResponseWriter, r *http.Request) {
	propertyID, err := strconv.Atoi(r.URL.Query().Get("property_id"))
	if err != nil || propertyID <= 0 {
		writeError(w, http.StatusBadRequest, "property_id is required")
		return
	}
	rooms, err := h.Directory.ListRooms(r.Context(), propertyID)
	if err != nil {
		writeDomainError(w, err, "rooms unavailable")
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

// GetRoom returns one room.
func (h *Handlers) GetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.Directory.GetRoom(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "room not found")
		return
	}
	writeJSON(w, http.StatusOK, room)
}

// CreateRoom registers a room under a property.
func (h *Handlers) CreateRoom(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[property.RoomCreateRequest](w, r)
	if !ok {
		return
	}
	room, err := h.Directory.CreateRoom(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "parent property not found")
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

// UpdateRoom applies partial updates to a room.
func (h *Handlers) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[property.RoomUpdateRequest](w, r)
	if !ok {
		return
	}
	room, err := h.Directory.UpdateRoom(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err, "room not found")
		return
	}
	writeJSON(w, http.StatusOK, room)
}

// DeleteRoom removes a room from the registry.
func (h *Handlers) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.Directory.DeleteRoom(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, "room not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Properties (upstream pass-through)

// ListProperties returns the org's properties.
func (h *Handlers) ListProperties(w http.ResponseWriter, r *http.Request) {
	props, err := h.Directory.ListProperties(r.Context())
	if err != nil {
		writeDomainError(w, err, "properties unavailable")
		return
	}
	writeJSON(w, http.StatusOK, props)
}

// GetProperty returns one property.
func (h *Handlers) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	p, err := h.Directory.GetProperty(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CreateProperty registers a property.
func (h *Handlers) CreateProperty(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[property.CreateRequest](w, r)
	if !ok {
		return
	}
	p, err := h.Directory.CreateProperty(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "property not created")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// UpdateProperty applies partial updates to a property.
func (h *Handlers) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	req, ok := readJSON[property.UpdateRequest](w, r)
	if !ok {
		return
	}
	p, err := h.Directory.UpdateProperty(r.Context(), id, req)
	if err != nil {
		writeDomainError(w, err, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteProperty removes a property and its locally registered rooms.
func (h *Handlers) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.Directory.DeleteProperty(r.Context(), id); err != nil {
		writeDomainError(w, err, "property not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Tenants (upstream pass-through)

// ListTenants returns the org's tenants.
func (h *Handlers) ListTenants(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"
	tenants, err := h.Directory.ListTenants(r.Context(), includeInactive)
	if err != nil {
		writeDomainError(w, err, "tenants unavailable")
		return
	}
	writeJSON(w, http.StatusOK, tenants)
}

// GetTenant returns one tenant.
func (h *Handlers) GetTenant(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	tn, err := h.Directory.GetTenant(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusOK, tn)
}

// CreateTenant registers a tenant.
func (h *Handlers) CreateTenant(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[tenant.CreateRequest](w, r)
	if !ok {
		return
	}
	tn, err := h.Directory.CreateTenant(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "tenant not created")
		return
	}
	writeJSON(w, http.StatusCreated, tn)
}

// UpdateTenant applies partial updates to a tenant.
func (h *Handlers) UpdateTenant(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	req, ok := readJSON[tenant.UpdateRequest](w, r)
	if !ok {
		return
	}
	tn, err := h.Directory.UpdateTenant(r.Context(), id, req)
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusOK, tn)
}

// DeleteTenant removes a tenant.
func (h *Handlers) DeleteTenant(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.Directory.DeleteTenant(r.Context(), id); err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
