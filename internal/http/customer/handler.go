package customer

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/MrJamesThe3rd/vyaparx/internal/http/respond"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/report"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

type Handler struct {
	store    *store.Store
	validate *validator.Validate
}

func NewHandler(s *store.Store) *Handler {
	return &Handler{
		store:    s,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/qr", h.qr)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	customers := report.SearchCustomers(h.store.Snapshot(), r.URL.Query().Get("q"))
	if customers == nil {
		customers = []merchant.Customer{}
	}

	respond.JSON(w, http.StatusOK, customers)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in merchant.CustomerInput
	if !respond.Decode(w, r, &in) {
		return
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)

	if in.Status == "" {
		in.Status = merchant.CustomerActive
	}

	if err := h.validate.StructCtx(r.Context(), in); err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, h.store.AddCustomer(in))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	c, ok := h.store.Customer(chi.URLParam(r, "id"))
	if !ok {
		respond.Error(w, respond.ErrNotFound)
		return
	}

	respond.JSON(w, http.StatusOK, c)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch merchant.CustomerPatch
	if !respond.Decode(w, r, &patch) {
		return
	}

	if patch.Status != nil {
		if err := h.validate.Var(string(*patch.Status), "oneof=Active Inactive"); err != nil {
			respond.Error(w, err)
			return
		}
	}

	if !h.store.UpdateCustomer(id, patch) {
		respond.Error(w, respond.ErrNotFound)
		return
	}

	h.get(w, r)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if !h.store.DeleteCustomer(chi.URLParam(r, "id")) {
		respond.Error(w, respond.ErrNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// qr returns the document a QR card encodes for the customer.
func (h *Handler) qr(w http.ResponseWriter, r *http.Request) {
	c, ok := h.store.Customer(chi.URLParam(r, "id"))
	if !ok {
		respond.Error(w, respond.ErrNotFound)
		return
	}

	payload, err := c.QRPayload()
	if err != nil {
		respond.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(payload)
}
