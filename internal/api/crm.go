package api

import (
	"net/http"
	"net/mail"
	"strings"

	"nexus/internal/auth"
	"nexus/internal/authz"
	"nexus/internal/models"
	"nexus/internal/repo"
)

// GET /crm/leads?status=
func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	user := auth.IdentityFrom(r)
	leads, err := h.leads.ListByOwner(r.Context(), user.ID, r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, leads)
}

type createLeadRequest struct {
	CompanyName    string  `json:"company_name"`
	ContactName    string  `json:"contact_name"`
	Email          string  `json:"email"`
	Phone          *string `json:"phone"`
	EstimatedValue float64 `json:"estimated_value"`
}

func (in *createLeadRequest) validate() error {
	if strings.TrimSpace(in.CompanyName) == "" {
		return errInvalid("company_name is required")
	}
	if strings.TrimSpace(in.ContactName) == "" {
		return errInvalid("contact_name is required")
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(in.Email)); err != nil {
		return errInvalid("a valid email is required")
	}
	if in.EstimatedValue < 0 {
		return errInvalid("estimated_value must not be negative")
	}
	return nil
}

// POST /crm/leads
func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	user := auth.IdentityFrom(r)
	var in createLeadRequest
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "malformed JSON body")
		return
	}
	if err := in.validate(); err != nil {
		badRequest(w, err.Error())
		return
	}
	lead := &models.CRMLead{
		CompanyName:    strings.TrimSpace(in.CompanyName),
		ContactName:    strings.TrimSpace(in.ContactName),
		Email:          strings.TrimSpace(in.Email),
		Phone:          in.Phone,
		EstimatedValue: in.EstimatedValue,
		OwnerID:        user.ID,
	}
	if err := h.leads.Create(r.Context(), lead); err != nil {
		writeError(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusCreated, lead)
}

var leadStatuses = map[string]bool{
	models.LeadStatusNew:       true,
	models.LeadStatusContacted: true,
	models.LeadStatusQualified: true,
	models.LeadStatusProposal:  true,
	models.LeadStatusClosing:   true,
	models.LeadStatusWon:       true,
	models.LeadStatusLost:      true,
}

// PATCH /crm/leads/{id} — applies only the fields present in the body.
func (h *Handler) PatchLead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, repo.ErrNotFound)
		return
	}
	var patch repo.LeadPatch
	if err := decodeJSON(r, &patch); err != nil {
		badRequest(w, "malformed JSON body")
		return
	}
	if patch.Status != nil && !leadStatuses[*patch.Status] {
		badRequest(w, "unknown lead status")
		return
	}
	if patch.LeadScore != nil && (*patch.LeadScore < 0 || *patch.LeadScore > 100) {
		badRequest(w, "lead_score must be between 0 and 100")
		return
	}

	lead, err := h.leads.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := authz.Check(auth.IdentityFrom(r), *lead); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.leads.Patch(r.Context(), lead, patch); err != nil {
		writeError(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, lead)
}
