package delivery

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vyaparx/internal/delivery"
	"github.com/MrJamesThe3rd/vyaparx/internal/http/respond"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/report"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

type Handler struct {
	store *store.Store
	svc   *delivery.Service
}

func NewHandler(s *store.Store, svc *delivery.Service) *Handler {
	return &Handler{store: s, svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/pending", h.pending)
	r.Patch("/{id}/status", h.updateStatus)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	orders := report.SearchDeliveries(h.store.Snapshot(), r.URL.Query().Get("q"))
	if orders == nil {
		orders = []merchant.DeliveryOrder{}
	}

	respond.JSON(w, http.StatusOK, orders)
}

// pending lists invoices that still need a delivery partner.
func (h *Handler) pending(w http.ResponseWriter, _ *http.Request) {
	invoices := delivery.PendingInvoices(h.store.Snapshot())
	if invoices == nil {
		invoices = []merchant.Invoice{}
	}

	respond.JSON(w, http.StatusOK, invoices)
}

type updateStatusRequest struct {
	Status merchant.DeliveryStatus `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	order, err := h.svc.Advance(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, order)
}
