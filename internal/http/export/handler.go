package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vyaparx/internal/export"
	"github.com/MrJamesThe3rd/vyaparx/internal/http/respond"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

type Handler struct {
	svc   *export.Service
	store *store.Store
}

func NewHandler(svc *export.Service, s *store.Store) *Handler {
	return &Handler{svc: svc, store: s}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.metadata)
	r.Post("/download", h.download)
}

type exportMetadataResponse struct {
	Items   []export.Item `json:"items"`
	Summary string        `json:"summary"`
}

func (h *Handler) metadata(w http.ResponseWriter, r *http.Request) {
	var filter export.Filter
	if !respond.Decode(w, r, &filter) {
		return
	}

	items, err := h.svc.Export(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, exportMetadataResponse{
		Items:   items,
		Summary: export.GenerateSummary(items, h.store.Language()),
	})
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	var filter export.Filter
	if !respond.Decode(w, r, &filter) {
		return
	}

	items, err := h.svc.Export(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"invoices_%s.zip\"", time.Now().Format("20060102")))

	if err := export.WriteZip(w, items, h.store.Language()); err != nil {
		slog.Error("failed to create zip", "error", err)
	}
}
