package invoice

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vyaparx/internal/billing"
	"github.com/MrJamesThe3rd/vyaparx/internal/delivery"
	"github.com/MrJamesThe3rd/vyaparx/internal/http/respond"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/report"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

type Handler struct {
	store    *store.Store
	billing  *billing.Service
	delivery *delivery.Service
}

func NewHandler(s *store.Store, billingSvc *billing.Service, deliverySvc *delivery.Service) *Handler {
	return &Handler{store: s, billing: billingSvc, delivery: deliverySvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Post("/{id}/payments", h.recordPayment)
	r.Post("/{id}/deliveries", h.assignDelivery)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	invoices := report.SearchInvoices(h.store.Snapshot(), r.URL.Query().Get("q"))
	if invoices == nil {
		invoices = []merchant.Invoice{}
	}

	respond.JSON(w, http.StatusOK, invoices)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req billing.CreateInvoiceParams
	if !respond.Decode(w, r, &req) {
		return
	}

	inv, err := h.billing.CreateInvoice(r.Context(), req)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, inv)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.store.Invoice(chi.URLParam(r, "id"))
	if !ok {
		respond.Error(w, respond.ErrNotFound)
		return
	}

	respond.JSON(w, http.StatusOK, inv)
}

// update applies patch as given. Replacing the items recomputes every line
// and, unless the patch sets one, the total.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var patch merchant.InvoicePatch
	if !respond.Decode(w, r, &patch) {
		return
	}

	if patch.Items != nil {
		for i := range patch.Items {
			if patch.Items[i].Price.IsNegative() {
				respond.Problem(w, http.StatusUnprocessableEntity, "Validation Failed", "price must not be negative")
				return
			}

			patch.Items[i].Quantity = max(patch.Items[i].Quantity, 1)
			patch.Items[i].Recalculate()
		}

		if patch.Total == nil {
			patch.Total = new(merchant.CalculateTotal(patch.Items))
		}
	}

	if patch.Total != nil && patch.Total.IsNegative() {
		respond.Problem(w, http.StatusUnprocessableEntity, "Validation Failed", "total must not be negative")
		return
	}

	if !h.store.UpdateInvoice(chi.URLParam(r, "id"), patch) {
		respond.Error(w, respond.ErrNotFound)
		return
	}

	h.get(w, r)
}

type paymentRequest struct {
	Method merchant.PaymentMethod `json:"method"`
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	pay, err := h.billing.RecordPayment(r.Context(), chi.URLParam(r, "id"), req.Method)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, pay)
}

type deliveryRequest struct {
	Partner merchant.DeliveryPartner `json:"delivery_partner"`
}

func (h *Handler) assignDelivery(w http.ResponseWriter, r *http.Request) {
	var req deliveryRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	order, err := h.delivery.Assign(r.Context(), chi.URLParam(r, "id"), req.Partner)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, order)
}
