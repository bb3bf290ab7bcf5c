// Package ui serves the dashboard shell: active view, sidebar, language and
// the figures shown on the landing screen.
package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vyaparx/internal/http/respond"
	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
	"github.com/MrJamesThe3rd/vyaparx/internal/nav"
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
	r.Get("/", h.state)
	r.Put("/view", h.setView)
	r.Put("/sidebar", h.setSidebar)
	r.Put("/language", h.setLanguage)
	r.Get("/stats", h.stats)
	r.Get("/nav", h.menu)
}

func (h *Handler) state(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, h.store.Snapshot())
}

type viewRequest struct {
	View nav.View `json:"view"`
}

func (h *Handler) setView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if !req.View.Valid() {
		respond.Problem(w, http.StatusUnprocessableEntity, "Unknown View", string(req.View))
		return
	}

	h.store.SetActiveView(req.View)
	w.WriteHeader(http.StatusNoContent)
}

type sidebarRequest struct {
	Open bool `json:"open"`
}

func (h *Handler) setSidebar(w http.ResponseWriter, r *http.Request) {
	var req sidebarRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	h.store.SetSidebarOpen(req.Open)
	w.WriteHeader(http.StatusNoContent)
}

type languageRequest struct {
	Language string `json:"language"`
}

func (h *Handler) setLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	lang, err := i18n.Parse(req.Language)
	if err != nil {
		respond.Problem(w, http.StatusUnprocessableEntity, "Unsupported Language", err.Error())
		return
	}

	h.store.SetLanguage(lang)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) stats(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, report.Compute(h.store.Snapshot()))
}

type menuItem struct {
	View   nav.View `json:"view"`
	Label  string   `json:"label"`
	Active bool     `json:"active"`
}

// menu lists the sidebar entries labelled in the current language.
func (h *Handler) menu(w http.ResponseWriter, _ *http.Request) {
	st := h.store.Snapshot()

	items := make([]menuItem, 0, len(nav.Menu()))
	for _, v := range nav.Menu() {
		items = append(items, menuItem{View: v, Label: v.Label(st.Language), Active: v == st.ActiveView})
	}

	respond.JSON(w, http.StatusOK, items)
}
