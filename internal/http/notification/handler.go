package notification

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vyaparx/internal/http/respond"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
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
	r.Post("/{id}/read", h.markRead)
	r.Delete("/", h.clear)
}

type listResponse struct {
	Unread        int                     `json:"unread"`
	Notifications []merchant.Notification `json:"notifications"`
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	st := h.store.Snapshot()

	resp := listResponse{Unread: st.UnreadNotifications(), Notifications: st.Notifications}
	if resp.Notifications == nil {
		resp.Notifications = []merchant.Notification{}
	}

	respond.JSON(w, http.StatusOK, resp)
}

// markRead is idempotent; marking an already read notification succeeds.
func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	if !h.store.MarkNotificationRead(chi.URLParam(r, "id")) {
		respond.Error(w, respond.ErrNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clear(w http.ResponseWriter, _ *http.Request) {
	h.store.ClearNotifications()
	w.WriteHeader(http.StatusNoContent)
}
