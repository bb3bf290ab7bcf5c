// Package catalog reads product and customer sheets exported from
// spreadsheets or other billing tools.
package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	enc "github.com/MrJamesThe3rd/vyaparx/internal/encoding"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
)

var (
	ErrNoHeader   = errors.New("no recognised header row")
	ErrInvalidRow = errors.New("invalid row")
)

// footerLabels mark summary rows that close a sheet.
var footerLabels = map[string]bool{
	"total":  true,
	"totals": true,
	"कुल":    true,
}

// Parser turns catalog CSV files into merchant inputs. The delimiter is
// sniffed from the first lines and the header row is located by matching
// column names against the kind's profile, so leading title rows are skipped.
type Parser struct {
	validate *validator.Validate
}

func NewParser() *Parser {
	return &Parser{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (p *Parser) ParseProducts(r io.Reader) ([]merchant.ProductInput, error) {
	sheet, err := readSheet(r, productProfile)
	if err != nil {
		return nil, err
	}

	var out []merchant.ProductInput

	err = sheet.each(func(rowNum int, row record) error {
		price, err := parseAmount(row.get(fieldPrice), sheet.comma)
		if err != nil {
			return rowError(rowNum, "price: %v", err)
		}

		stock, err := parseQuantity(row.get(fieldStock), sheet.comma)
		if err != nil {
			return rowError(rowNum, "stock: %v", err)
		}

		minStock, err := parseQuantity(row.get(fieldMinStock), sheet.comma)
		if err != nil {
			return rowError(rowNum, "min stock: %v", err)
		}

		in := merchant.ProductInput{
			Name:        row.get(fieldName),
			Price:       price,
			Stock:       stock,
			MinStock:    minStock,
			Category:    row.get(fieldCategory),
			SKU:         row.get(fieldSKU),
			Supplier:    row.get(fieldSupplier),
			Description: row.get(fieldDescription),
		}

		if err := p.validate.Struct(in); err != nil {
			return rowError(rowNum, "%v", err)
		}

		out = append(out, in)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (p *Parser) ParseCustomers(r io.Reader) ([]merchant.CustomerInput, error) {
	sheet, err := readSheet(r, customerProfile)
	if err != nil {
		return nil, err
	}

	var out []merchant.CustomerInput

	err = sheet.each(func(rowNum int, row record) error {
		phone := row.get(fieldPhone)
		if phone == "" {
			return rowError(rowNum, "missing phone")
		}

		in := merchant.CustomerInput{
			Name:           row.get(fieldName),
			Phone:          phone,
			Email:          strings.ToLower(row.get(fieldEmail)),
			Address:        row.get(fieldAddress),
			Status:         merchant.CustomerActive,
			BusinessType:   row.get(fieldBusinessType),
			GSTNumber:      strings.ToUpper(row.get(fieldGSTNumber)),
			WhatsAppNumber: row.get(fieldWhatsApp),
		}

		if err := p.validate.Struct(in); err != nil {
			return rowError(rowNum, "%v", err)
		}

		out = append(out, in)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func rowError(rowNum int, format string, args ...any) error {
	return fmt.Errorf("%w %d: %s", ErrInvalidRow, rowNum, fmt.Sprintf(format, args...))
}

// colIndex maps profile fields to their index in the row.
type colIndex map[field]int

type sheet struct {
	profile   *Profile
	cols      colIndex
	rows      [][]string
	headerIdx int
	comma     rune
}

func readSheet(r io.Reader, profile Profile) (*sheet, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	comma := sniffDelimiter(data)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, ok := detectHeader(&profile, rows)
	if !ok {
		return nil, fmt.Errorf("%w: expected %s columns", ErrNoHeader, profile.Name)
	}

	return &sheet{
		profile:   &profile,
		cols:      cols,
		rows:      rows[headerIdx+1:],
		headerIdx: headerIdx,
		comma:     comma,
	}, nil
}

// each calls fn for every data row, skipping blank and footer rows.
// Row numbers are 1-based positions in the original file.
func (s *sheet) each(fn func(rowNum int, row record) error) error {
	for i, raw := range s.rows {
		rowNum := s.headerIdx + i + 2
		row := record{cols: s.cols, cells: raw}

		if row.blank() {
			continue
		}

		name := row.get(fieldName)
		if footerLabels[strings.ToLower(name)] {
			continue
		}

		if name == "" {
			return rowError(rowNum, "missing name")
		}

		if err := fn(rowNum, row); err != nil {
			return err
		}
	}

	return nil
}

type record struct {
	cols  colIndex
	cells []string
}

func (r record) get(f field) string {
	idx, ok := r.cols[f]
	if !ok {
		return ""
	}

	return cellValue(r.cells, idx)
}

func (r record) blank() bool {
	for _, c := range r.cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}

// detectHeader scans rows for the first one naming every required column.
// Returns the column index map and the header row index.
func detectHeader(p *Profile, rows [][]string) (colIndex, int, bool) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			f, ok := p.lookup(cell)
			if !ok {
				continue
			}

			if _, seen := cols[f]; !seen {
				cols[f] = i
			}
		}

		if matchesProfile(p, cols) {
			return cols, rowIdx, true
		}
	}

	return nil, 0, false
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, f := range p.Required {
		if _, ok := cols[f]; !ok {
			return false
		}
	}

	return true
}

// sniffDelimiter picks the most frequent of ',', ';' and tab across the
// first few lines. Ties and empty input fall back to ','.
func sniffDelimiter(data []byte) rune {
	lines := bytes.SplitN(data, []byte("\n"), 6)
	if len(lines) > 5 {
		lines = lines[:5]
	}

	best, bestCount := ',', 0

	for _, d := range []rune{',', ';', '\t'} {
		n := 0
		for _, l := range lines {
			n += bytes.Count(l, []byte(string(d)))
		}

		if n > bestCount {
			best, bestCount = d, n
		}
	}

	return best
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
