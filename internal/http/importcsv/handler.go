package importcsv

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vyaparx/internal/http/respond"
	"github.com/MrJamesThe3rd/vyaparx/internal/importer"
)

const maxUploadSize = 10 << 20

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/preview", h.preview)
}

type importResponse struct {
	Imported int `json:"imported"`
	importer.Result
}

// importCSV parses the uploaded sheet and adds every record.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	res, ok := h.parse(w, r)
	if !ok {
		return
	}

	if err := h.svc.Apply(r.Context(), res); err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, importResponse{Imported: res.Len(), Result: res})
}

// preview parses the uploaded sheet without storing anything.
func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	res, ok := h.parse(w, r)
	if !ok {
		return
	}

	respond.JSON(w, http.StatusOK, res)
}

func (h *Handler) parse(w http.ResponseWriter, r *http.Request) (importer.Result, bool) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.Problem(w, http.StatusBadRequest, "Invalid Form", "failed to parse form: "+err.Error())
		return importer.Result{}, false
	}

	kind := importer.Kind(r.FormValue("kind"))
	if kind == "" {
		respond.Problem(w, http.StatusBadRequest, "Invalid Form", "kind field is required")
		return importer.Result{}, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Problem(w, http.StatusBadRequest, "Invalid Form", "file field is required")
		return importer.Result{}, false
	}
	defer file.Close()

	res, err := h.svc.Import(kind, file)
	if err != nil {
		slog.Warn("import rejected", "file", header.Filename, "kind", kind, "error", err)
		respond.Error(w, err)

		return importer.Result{}, false
	}

	return res, true
}
