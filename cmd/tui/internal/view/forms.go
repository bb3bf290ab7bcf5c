package view

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

const formWidth = 48

var validate = validator.New(validator.WithRequiredStructEnabled())

func newForm(fields ...huh.Field) *huh.Form {
	return huh.NewForm(huh.NewGroup(fields...)).WithWidth(formWidth).WithShowHelp(false)
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", name)
		}

		return nil
	}
}

// parseAmount reads a non-negative rupee amount; a leading ₹ is accepted.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "₹"))
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero, errors.New("enter an amount like 180 or 99.50")
	}

	if d.IsNegative() {
		return decimal.Zero, errors.New("amount cannot be negative")
	}

	return d, nil
}

func validAmount(s string) error {
	_, err := parseAmount(s)
	return err
}

func validOptionalAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	return validAmount(s)
}

// parseCount reads a non-negative whole number; blank is zero.
func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New("enter a whole number")
	}

	return n, nil
}

func validCount(s string) error {
	_, err := parseCount(s)
	return err
}

// parseQuantities splits a comma or space separated list into n quantities.
// Missing trailing entries default to one.
func parseQuantities(s string, n int) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) > n {
		return nil, fmt.Errorf("%d quantities for %d products", len(fields), n)
	}

	out := make([]int, n)
	for i := range out {
		out[i] = 1
		if i >= len(fields) {
			continue
		}

		q, err := strconv.Atoi(fields[i])
		if err != nil || q < 1 {
			return nil, fmt.Errorf("quantity %q must be a whole number above zero", fields[i])
		}
		out[i] = q
	}

	return out, nil
}

func customerOptions(st store.State) []huh.Option[string] {
	opts := make([]huh.Option[string], len(st.Customers))
	for i, c := range st.Customers {
		opts[i] = huh.NewOption(fmt.Sprintf("%s (%s)", c.Name, c.Phone), c.ID)
	}

	return opts
}

func productOptions(st store.State) []huh.Option[string] {
	opts := make([]huh.Option[string], len(st.Products))
	for i, p := range st.Products {
		opts[i] = huh.NewOption(fmt.Sprintf("%s · %s", p.Name, FormatAmount(st.Language, p.Price)), p.ID)
	}

	return opts
}

// confirm asks before running fn.
func confirm(title, question string, fn func(ctx context.Context) (string, error)) *Editor {
	var ok bool

	return &Editor{
		Title: title,
		Form:  newForm(huh.NewConfirm().Title(question).Affirmative("Yes").Negative("No").Value(&ok)),
		Submit: func(ctx context.Context) (string, error) {
			if !ok {
				return "", nil
			}

			return fn(ctx)
		},
	}
}

// selectEditor offers the values of an enum and hands the choice to fn.
func selectEditor[T ~string](title string, current T, values []T, fn func(ctx context.Context, v T) (string, error)) *Editor {
	choice := current

	return &Editor{
		Title: title,
		Form:  newForm(huh.NewSelect[T]().Options(huh.NewOptions(values...)...).Value(&choice)),
		Submit: func(ctx context.Context) (string, error) {
			return fn(ctx, choice)
		},
	}
}
