package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in    string
		comma rune
		want  string
	}{
		{in: "680", comma: ',', want: "680"},
		{in: "₹1,23,456.50", comma: ',', want: "123456.50"},
		{in: "Rs. 1,250", comma: ',', want: "1250"},
		{in: "rs 99.99", comma: ',', want: "99.99"},
		{in: "INR 2,500", comma: '\t', want: "2500"},
		{in: "1.234,56", comma: ';', want: "1234.56"},
		{in: "₹ 45", comma: ';', want: "45"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in, tt.comma)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "-10", "₹"} {
		_, err := parseAmount(in, ',')
		assert.Error(t, err, in)
	}
}

func TestParseQuantity(t *testing.T) {
	n, err := parseQuantity("", ',')
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = parseQuantity("1,200", ',')
	require.NoError(t, err)
	assert.Equal(t, 1200, n)

	n, err = parseQuantity("12.0", ',')
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	_, err = parseQuantity("2.5", ',')
	assert.Error(t, err)
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, ',', sniffDelimiter([]byte("a,b,c\n1,2,3\n")))
	assert.Equal(t, ';', sniffDelimiter([]byte("a;b;c\n1,5;2;3\n")))
	assert.Equal(t, '\t', sniffDelimiter([]byte("a\tb\n1\t2\n")))
	assert.Equal(t, ',', sniffDelimiter(nil))
}
