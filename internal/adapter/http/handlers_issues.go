package http

import (
	"net/http"

	"github.com/propmate/propmate/internal/adapter/fixmate"
	"github.com/propmate/propmate/internal/domain/issue"
)

// GetIssueDetail returns the issue with its conversation and audit log.
func (h *Handlers) GetIssueDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	d, err := h.Issues.Detail(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "issue not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// CreateIssue reports an issue on a tenant's behalf.
func (h *Handlers) CreateIssue(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[fixmate.CreateIssueRequest](w, r)
	if !ok {
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.TenantID <= 0 || req.PropertyID <= 0 {
		writeError(w, http.StatusBadRequest, "tenant_id and property_id are required")
		return
	}
	resp, err := h.Issues.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "issue not created")
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

type sendMessageRequest struct {
	Message string `json:"message"`
	Role    string `json:"role,omitempty"`
}

// SendMessage posts a conversation turn and returns the settled
// conversation.
func (h *Handlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	req, ok := readJSON[sendMessageRequest](w, r)
	if !ok {
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	msgs, err := h.Issues.SendMessage(r.Context(), id, req.Message, req.Role)
	if err != nil {
		writeDomainError(w, err, "issue not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

type assignRequest struct {
	ContractorID string `json:"contractor_id,omitempty"`
	AssignedTo   string `json:"assigned_to,omitempty"`
}

// AssignIssue records a tradesperson on the issue, either a directory
// contractor by id or a free-text name.
func (h *Handlers) AssignIssue(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	req, ok := readJSON[assignRequest](w, r)
	if !ok {
		return
	}

	var (
		ack *fixmate.Ack
		err error
	)
	switch {
	case req.ContractorID != "":
		ack, err = h.Issues.Assign(r.Context(), id, req.ContractorID)
	case req.AssignedTo != "":
		ack, err = h.Issues.AssignName(r.Context(), id, req.AssignedTo)
	default:
		writeError(w, http.StatusBadRequest, "contractor_id or assigned_to is required")
		return
	}
	if err != nil {
		writeDomainError(w, err, "contractor or issue not found")
		return
	}
	writeJSON(w, http.StatusOK, ack)
}

// CloseIssue closes a resolved issue.
func (h *Handlers) CloseIssue(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.Issues.Close(r.Context(), id); err != nil {
		writeDomainError(w, err, "issue not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

type statusRequest struct {
	Status issue.Status `json:"status"`
}

// UpdateStatus sets the issue's lifecycle status.
func (h *Handlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	req, ok := readJSON[statusRequest](w, r)
	if !ok {
		return
	}
	if !req.Status.Known() {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}
	if err := h.Issues.UpdateStatus(r.Context(), id, req.Status); err != nil {
		writeDomainError(w, err, "issue not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(req.Status)})
}

type priorityRequest struct {
	Priority issue.Priority `json:"priority"`
}

// UpdatePriority sets the issue's priority.
func (h *Handlers) UpdatePriority(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	req, ok := readJSON[priorityRequest](w, r)
	if !ok {
		return
	}
	switch req.Priority {
	case issue.PriorityLow, issue.PriorityMedium, issue.PriorityHigh, issue.PriorityUrgent:
	default:
		writeError(w, http.StatusBadRequest, "unknown priority")
		return
	}
	if err := h.Issues.UpdatePriority(r.Context(), id, req.Priority); err != nil {
		writeDomainError(w, err, "issue not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"priority": string(req.Priority)})
}

type notesRequest struct {
	Notes string `json:"notes"`
}

// UpdateNotes sets the manager's private notes on the issue.
func (h *Handlers) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	req, ok := readJSON[notesRequest](w, r)
	if !ok {
		return
	}
	if err := h.Issues.UpdateNotes(r.Context(), id, req.Notes); err != nil {
		writeDomainError(w, err, "issue not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type muteRequest struct {
	Muted bool `json:"muted"`
}

// MuteAgent toggles automated responses on the issue.
func (h *Handlers) MuteAgent(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	req, ok := readJSON[muteRequest](w, r)
	if !ok {
		return
	}
	if err := h.Issues.MuteAgent(r.Context(), id, req.Muted); err != nil {
		writeDomainError(w, err, "issue not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"muted": req.Muted})
}

// GetAgentStatus reads whether automated responses are muted.
func (h *Handlers) GetAgentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	muted, err := h.Issues.AgentStatus(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "issue not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"muted": muted})
}
