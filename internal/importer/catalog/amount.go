package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyMarks = []string{"₹", "inr", "rs.", "rs"}

// parseAmount parses a rupee amount as typed into a spreadsheet. Grouping
// separators are dropped, so "₹1,23,456.50" and "Rs. 1,234" both work.
// Sheets delimited by ';' use the comma as the decimal separator instead:
// "1.234,56" -> 1234.56.
func parseAmount(s string, comma rune) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)

	lower := strings.ToLower(clean)
	for _, mark := range currencyMarks {
		if strings.HasPrefix(lower, mark) {
			clean = clean[len(mark):]
			break
		}
	}

	clean = strings.ReplaceAll(strings.TrimSpace(clean), " ", "")

	if comma == ';' {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	} else {
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}

	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount %q", s)
	}

	return d, nil
}

// parseQuantity parses a whole, non-negative count. An empty cell is zero.
func parseQuantity(s string, comma rune) (int, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}

	d, err := parseAmount(s, comma)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", s)
	}

	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("quantity %q is not a whole number", s)
	}

	return int(d.IntPart()), nil
}
