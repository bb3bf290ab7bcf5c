package voice

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vyaparx/internal/http/respond"
	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
	"github.com/MrJamesThe3rd/vyaparx/internal/voice"
)

type Handler struct {
	assistant *voice.Assistant
	matcher   *voice.Matcher
	store     *store.Store
}

func NewHandler(assistant *voice.Assistant, matcher *voice.Matcher, s *store.Store) *Handler {
	return &Handler{assistant: assistant, matcher: matcher, store: s}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/commands", h.command)
	r.Get("/phrases", h.phrases)
}

type commandRequest struct {
	Transcript string `json:"transcript"`
}

// command runs a transcript that was captured on the client. Unmatched
// commands are not errors; the outcome carries the suggestions.
func (h *Handler) command(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	respond.JSON(w, http.StatusOK, h.assistant.Execute(req.Transcript))
}

// phrases returns the command table of ?lang, or of the current language.
func (h *Handler) phrases(w http.ResponseWriter, r *http.Request) {
	lang := h.store.Language()

	if s := r.URL.Query().Get("lang"); s != "" {
		parsed, err := i18n.Parse(s)
		if err != nil {
			respond.Problem(w, http.StatusUnprocessableEntity, "Unsupported Language", err.Error())
			return
		}

		lang = parsed
	}

	t, ok := h.matcher.Table(lang)
	if !ok {
		respond.Error(w, respond.ErrNotFound)
		return
	}

	respond.JSON(w, http.StatusOK, t)
}
