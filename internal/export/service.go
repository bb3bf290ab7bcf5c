// Package export produces the invoice ledger: every invoice in a date range
// with the payments recorded against it.
package export

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

const (
	LedgerFile  = "invoices.csv"
	SummaryFile = "summary.txt"
)

// Filter selects invoices by creation time. Both bounds are inclusive; nil
// means unbounded.
type Filter struct {
	StartDate *time.Time              `json:"start_date,omitempty"`
	EndDate   *time.Time              `json:"end_date,omitempty"`
	Status    *merchant.InvoiceStatus `json:"status,omitempty"`
}

func (f Filter) match(inv merchant.Invoice) bool {
	if f.StartDate != nil && inv.CreatedAt.Before(*f.StartDate) {
		return false
	}

	if f.EndDate != nil && inv.CreatedAt.After(*f.EndDate) {
		return false
	}

	return f.Status == nil || inv.Status == *f.Status
}

// Item is one ledger row. Paid sums successful payments only.
type Item struct {
	Invoice     merchant.Invoice   `json:"invoice"`
	Payments    []merchant.Payment `json:"payments"`
	Paid        decimal.Decimal    `json:"paid"`
	Outstanding decimal.Decimal    `json:"outstanding"`
}

type Service struct {
	store *store.Store
}

func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// Export lists the ledger for the current state.
func (s *Service) Export(ctx context.Context, filter Filter) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return Ledger(s.store.Snapshot(), filter), nil
}

// Ledger builds the items for st, oldest invoice first.
func Ledger(st store.State, filter Filter) []Item {
	byInvoice := make(map[string][]merchant.Payment)
	for _, p := range st.Payments {
		byInvoice[p.InvoiceID] = append(byInvoice[p.InvoiceID], p)
	}

	items := make([]Item, 0, len(st.Invoices))

	for _, inv := range st.Invoices {
		if !filter.match(inv) {
			continue
		}

		item := Item{Invoice: inv, Payments: byInvoice[inv.ID], Paid: decimal.Zero}
		for _, p := range item.Payments {
			if p.Status == merchant.PaymentSuccess {
				item.Paid = item.Paid.Add(p.Amount)
			}
		}

		item.Outstanding = decimal.Max(inv.Total.Sub(item.Paid), decimal.Zero)
		items = append(items, item)
	}

	slices.SortStableFunc(items, func(a, b Item) int {
		return a.Invoice.CreatedAt.Compare(b.Invoice.CreatedAt)
	})

	return items
}

// WriteDir writes the ledger CSV and the summary into outputDir and returns
// the paths written.
func (s *Service) WriteDir(ctx context.Context, items []Item, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	lang := s.store.Language()

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{LedgerFile, func(w io.Writer) error { return WriteCSV(w, items) }},
		{SummaryFile, func(w io.Writer) error {
			_, err := io.WriteString(w, GenerateSummary(items, lang))
			return err
		}},
	}

	paths := make([]string, 0, len(files))

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(outputDir, f.name)
		if err := writeFile(path, f.write); err != nil {
			return nil, err
		}

		paths = append(paths, path)
	}

	return paths, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}

	return f.Close()
}

var ledgerHeader = []string{
	"invoice_id", "created_at", "due_date", "customer_id", "customer_name",
	"status", "total", "paid", "outstanding", "payment_methods",
}

// WriteCSV writes one row per item.
func WriteCSV(w io.Writer, items []Item) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ledgerHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, item := range items {
		inv := item.Invoice

		row := []string{
			inv.ID,
			inv.CreatedAt.Format(time.DateOnly),
			inv.DueDate.Format(time.DateOnly),
			inv.CustomerID,
			inv.CustomerName,
			string(inv.Status),
			inv.Total.StringFixed(2),
			item.Paid.StringFixed(2),
			item.Outstanding.StringFixed(2),
			strings.Join(item.methods(), " "),
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing invoice %s: %w", inv.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteZip writes an archive holding the ledger CSV and the summary.
func WriteZip(w io.Writer, items []Item, lang i18n.Language) error {
	zw := zip.NewWriter(w)

	lw, err := zw.Create(LedgerFile)
	if err != nil {
		return fmt.Errorf("creating %s: %w", LedgerFile, err)
	}

	if err := WriteCSV(lw, items); err != nil {
		return err
	}

	sw, err := zw.Create(SummaryFile)
	if err != nil {
		return fmt.Errorf("creating %s: %w", SummaryFile, err)
	}

	if _, err := io.WriteString(sw, GenerateSummary(items, lang)); err != nil {
		return fmt.Errorf("writing %s: %w", SummaryFile, err)
	}

	return zw.Close()
}

// GenerateSummary renders one line per invoice, suitable for pasting into a
// message to an accountant.
func GenerateSummary(items []Item, lang i18n.Language) string {
	var sb strings.Builder

	for _, item := range items {
		inv := item.Invoice

		name := inv.CustomerName
		if name == "" {
			name = i18n.T(lang, i18n.MsgUnknown)
		}

		payment := i18n.T(lang, i18n.MsgNoPayment)
		if methods := item.methods(); len(methods) > 0 {
			payment = fmt.Sprintf("%s %s", strings.Join(methods, "+"), i18n.FormatRupees(lang, item.Paid))
		}

		fmt.Fprintf(&sb, "* %s | %s | %s | %s | %s",
			inv.CreatedAt.Format(time.DateOnly), inv.ID, name, i18n.FormatRupees(lang, inv.Total), payment)

		if item.Outstanding.IsPositive() {
			fmt.Fprintf(&sb, " | %s %s", i18n.T(lang, i18n.MsgOutstanding), i18n.FormatRupees(lang, item.Outstanding))
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

// methods lists the distinct methods of successful payments, in order.
func (i Item) methods() []string {
	var out []string

	for _, p := range i.Payments {
		if p.Status != merchant.PaymentSuccess {
			continue
		}

		if m := string(p.Method); !slices.Contains(out, m) {
			out = append(out, m)
		}
	}

	return out
}
