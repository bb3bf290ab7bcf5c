package intake

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vyaparx/internal/http/respond"
	"github.com/MrJamesThe3rd/vyaparx/internal/intake"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/report"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

// Handler serves WhatsApp leads and daily requirements, the two ways
// customer requests reach the shop.
type Handler struct {
	store *store.Store
	svc   *intake.Service
	now   func() time.Time
}

func NewHandler(s *store.Store, svc *intake.Service) *Handler {
	return &Handler{store: s, svc: svc, now: time.Now}
}

func (h *Handler) LeadRoutes(r chi.Router) {
	r.Get("/", h.listLeads)
	r.Post("/", h.createLead)
	r.Patch("/{id}/status", h.updateLeadStatus)
}

func (h *Handler) RequirementRoutes(r chi.Router) {
	r.Get("/", h.listRequirements)
	r.Post("/", h.createRequirement)
	r.Patch("/{id}/status", h.updateRequirementStatus)
}

type leadResponse struct {
	merchant.WhatsAppLead
	Priority intake.Priority `json:"priority"`
}

func (h *Handler) toLeadResponse(l merchant.WhatsAppLead) leadResponse {
	return leadResponse{WhatsAppLead: l, Priority: intake.LeadPriority(l, h.now())}
}

func (h *Handler) listLeads(w http.ResponseWriter, r *http.Request) {
	leads := report.SearchLeads(h.store.Snapshot(), r.URL.Query().Get("q"))

	resp := make([]leadResponse, 0, len(leads))
	for _, l := range leads {
		resp = append(resp, h.toLeadResponse(l))
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) createLead(w http.ResponseWriter, r *http.Request) {
	var req intake.CreateLeadParams
	if !respond.Decode(w, r, &req) {
		return
	}

	lead, err := h.svc.CreateLead(r.Context(), req)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, h.toLeadResponse(lead))
}

type leadStatusRequest struct {
	Status merchant.LeadStatus `json:"status"`
}

func (h *Handler) updateLeadStatus(w http.ResponseWriter, r *http.Request) {
	var req leadStatusRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if err := h.svc.SetLeadStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listRequirements(w http.ResponseWriter, r *http.Request) {
	reqs := report.SearchRequirements(h.store.Snapshot(), r.URL.Query().Get("q"))
	if reqs == nil {
		reqs = []merchant.DailyRequirement{}
	}

	respond.JSON(w, http.StatusOK, reqs)
}

func (h *Handler) createRequirement(w http.ResponseWriter, r *http.Request) {
	var req intake.CreateRequirementParams
	if !respond.Decode(w, r, &req) {
		return
	}

	created, err := h.svc.CreateRequirement(r.Context(), req)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, created)
}

type requirementStatusRequest struct {
	Status merchant.RequirementStatus `json:"status"`
}

func (h *Handler) updateRequirementStatus(w http.ResponseWriter, r *http.Request) {
	var req requirementStatusRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if err := h.svc.SetRequirementStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
