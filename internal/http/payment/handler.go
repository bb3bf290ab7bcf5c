package payment

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vyaparx/internal/http/respond"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/report"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

type Handler struct {
	store *store.Store
}

func NewHandler(s *store.Store) *Handler {
	return &Handler{store: s}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Patch("/{id}", h.update)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	payments := report.SearchPayments(h.store.Snapshot(), r.URL.Query().Get("q"))
	if payments == nil {
		payments = []merchant.Payment{}
	}

	respond.JSON(w, http.StatusOK, payments)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch merchant.PaymentPatch
	if !respond.Decode(w, r, &patch) {
		return
	}

	if !h.store.UpdatePayment(id, patch) {
		respond.Error(w, respond.ErrNotFound)
		return
	}

	payments := h.store.Snapshot().Payments
	i := slices.IndexFunc(payments, func(p merchant.Payment) bool { return p.ID == id })

	respond.JSON(w, http.StatusOK, payments[i])
}
