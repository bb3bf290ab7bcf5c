package campaign

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vyaparx/internal/http/respond"
	"github.com/MrJamesThe3rd/vyaparx/internal/marketing"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/report"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

type Handler struct {
	store *store.Store
	svc   *marketing.Service
}

func NewHandler(s *store.Store, svc *marketing.Service) *Handler {
	return &Handler{store: s, svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Patch("/{id}", h.update)
	r.Get("/{id}/audience", h.audience)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	campaigns := report.SearchCampaigns(h.store.Snapshot(), r.URL.Query().Get("q"))
	if campaigns == nil {
		campaigns = []merchant.Campaign{}
	}

	respond.JSON(w, http.StatusOK, campaigns)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req marketing.CreateCampaignParams
	if !respond.Decode(w, r, &req) {
		return
	}

	c, err := h.svc.CreateCampaign(r.Context(), req)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, c)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch merchant.CampaignPatch
	if !respond.Decode(w, r, &patch) {
		return
	}

	if !h.store.UpdateCampaign(id, patch) {
		respond.Error(w, respond.ErrNotFound)
		return
	}

	c, _ := find(h.store.Snapshot(), id)
	respond.JSON(w, http.StatusOK, c)
}

// audience lists the customers a campaign resolves to.
func (h *Handler) audience(w http.ResponseWriter, r *http.Request) {
	st := h.store.Snapshot()

	c, ok := find(st, chi.URLParam(r, "id"))
	if !ok {
		respond.Error(w, respond.ErrNotFound)
		return
	}

	customers := report.CampaignAudience(st, c)
	if customers == nil {
		customers = []merchant.Customer{}
	}

	respond.JSON(w, http.StatusOK, customers)
}

func find(st store.State, id string) (merchant.Campaign, bool) {
	i := slices.IndexFunc(st.Campaigns, func(c merchant.Campaign) bool { return c.ID == id })
	if i < 0 {
		return merchant.Campaign{}, false
	}

	return st.Campaigns[i], true
}
