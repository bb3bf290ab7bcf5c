package product

import (
	"net/http"
	"strconv"
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
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	products := report.SearchProducts(h.store.Snapshot(), r.URL.Query().Get("q"))

	if low, _ := strconv.ParseBool(r.URL.Query().Get("low_stock")); low {
		kept := products[:0]
		for _, p := range products {
			if p.LowStock() {
				kept = append(kept, p)
			}
		}
		products = kept
	}

	if products == nil {
		products = []merchant.Product{}
	}

	respond.JSON(w, http.StatusOK, products)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in merchant.ProductInput
	if !respond.Decode(w, r, &in) {
		return
	}

	in.Name = strings.TrimSpace(in.Name)

	if err := h.validate.StructCtx(r.Context(), in); err != nil {
		respond.Error(w, err)
		return
	}

	if in.Price.IsNegative() {
		respond.Problem(w, http.StatusUnprocessableEntity, "Validation Failed", "price must not be negative")
		return
	}

	respond.JSON(w, http.StatusCreated, h.store.AddProduct(in))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.store.Product(chi.URLParam(r, "id"))
	if !ok {
		respond.Error(w, respond.ErrNotFound)
		return
	}

	respond.JSON(w, http.StatusOK, p)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var patch merchant.ProductPatch
	if !respond.Decode(w, r, &patch) {
		return
	}

	if (patch.Stock != nil && *patch.Stock < 0) || (patch.MinStock != nil && *patch.MinStock < 0) {
		respond.Problem(w, http.StatusUnprocessableEntity, "Validation Failed", "stock levels must not be negative")
		return
	}

	if patch.Price != nil && patch.Price.IsNegative() {
		respond.Problem(w, http.StatusUnprocessableEntity, "Validation Failed", "price must not be negative")
		return
	}

	if !h.store.UpdateProduct(chi.URLParam(r, "id"), patch) {
		respond.Error(w, respond.ErrNotFound)
		return
	}

	h.get(w, r)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if !h.store.DeleteProduct(chi.URLParam(r, "id")) {
		respond.Error(w, respond.ErrNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
