package view

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
)

const actionTimeout = 5 * time.Second

// FormatAmount renders a rupee amount with the grouping of lang.
func FormatAmount(lang i18n.Language, amount decimal.Decimal) string {
	return i18n.FormatRupees(lang, amount)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}

	return FormatDate(*t)
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}

// actionCtx returns a context with a standard timeout for store workflows.
func actionCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), actionTimeout)
}
