// Package respond writes JSON bodies and RFC 7807 problem details.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/MrJamesThe3rd/vyaparx/internal/billing"
	"github.com/MrJamesThe3rd/vyaparx/internal/delivery"
	"github.com/MrJamesThe3rd/vyaparx/internal/importer"
	"github.com/MrJamesThe3rd/vyaparx/internal/importer/catalog"
	"github.com/MrJamesThe3rd/vyaparx/internal/intake"
	"github.com/MrJamesThe3rd/vyaparx/internal/voice"
)

// ErrNotFound is returned by handlers that look records up in the store
// directly.
var ErrNotFound = errors.New("not found")

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

type ProblemDetail struct {
	Type   string       `json:"type,omitempty"`
	Title  string       `json:"title"`
	Status int          `json:"status"`
	Detail string       `json:"detail,omitempty"`
	Errors []FieldError `json:"errors,omitempty"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func Problem(w http.ResponseWriter, status int, title, detail string) {
	writeProblem(w, ProblemDetail{Title: title, Status: status, Detail: detail})
}

func writeProblem(w http.ResponseWriter, p ProblemDetail) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)

	if err := json.NewEncoder(w).Encode(p); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Decode reads a JSON request body into v. A failure has already been
// answered with 400 when it returns false.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return false
	}

	return true
}

var (
	notFound = []error{
		ErrNotFound,
		billing.ErrCustomerNotFound,
		billing.ErrProductNotFound,
		billing.ErrInvoiceNotFound,
		delivery.ErrInvoiceNotFound,
		delivery.ErrOrderNotFound,
		intake.ErrCustomerNotFound,
		intake.ErrLeadNotFound,
		intake.ErrRequirementNotFound,
	}
	conflict = []error{
		billing.ErrAlreadyPaid,
		delivery.ErrAlreadyAssigned,
		voice.ErrAlreadyListening,
	}
	unprocessable = []error{
		billing.ErrNoItems,
		billing.ErrNegativePrice,
		intake.ErrNoItems,
		catalog.ErrInvalidRow,
		catalog.ErrNoHeader,
	}
	badRequest = []error{
		importer.ErrUnknownKind,
	}
)

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}

	return false
}

// Error maps a domain error to a problem response. Unknown errors are
// logged and answered with 500 without leaking their text.
func Error(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors

	switch {
	case errors.As(err, &verrs):
		p := ProblemDetail{Title: "Validation Failed", Status: http.StatusUnprocessableEntity}
		for _, fe := range verrs {
			p.Errors = append(p.Errors, FieldError{Field: fe.Field(), Rule: fe.Tag()})
		}

		writeProblem(w, p)
	case isAny(err, notFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case isAny(err, conflict):
		Problem(w, http.StatusConflict, "Conflict", err.Error())
	case isAny(err, unprocessable):
		Problem(w, http.StatusUnprocessableEntity, "Unprocessable Entity", err.Error())
	case isAny(err, badRequest):
		Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
	default:
		slog.Error("request failed", "error", err)
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
