package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsNonPositive(t *testing.T) {
	cases := []string{"0", "0.00", "-1", "-0.01"}
	for _, v := range cases {
		d := decimal.RequireFromString(v)
		_, err := New(d, "USD")
		var invalid *ErrInvalidAmount
		require.ErrorAs(t, err, &invalid, "value %s", v)
	}
}

func TestNewRejectsUnknownCurrency(t *testing.T) {
	d := decimal.RequireFromString("10.00")
	for _, cur := range []string{"XXX", "usd2", "", "BTC"} {
		_, err := New(d, cur)
		var invalid *ErrInvalidAmount
		require.ErrorAs(t, err, &invalid, "currency %q", cur)
	}
}

func TestSupportedCurrency(t *testing.T) {
	assert.True(t, SupportedCurrency("USD"))
	assert.True(t, SupportedCurrency(" eur "))
	assert.False(t, SupportedCurrency("BTC"))
	assert.False(t, SupportedCurrency(""))
}

func TestNewNormalizesCurrencyCase(t *testing.T) {
	m, err := New(decimal.RequireFromString("5"), " usd ")
	require.NoError(t, err)
	assert.Equal(t, "USD", m.Currency)
}

func TestParse(t *testing.T) {
	m, err := Parse("19.99", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "19.99", m.String())
	assert.Equal(t, "EUR", m.Currency)

	_, err = Parse("19.99.1", "EUR")
	var invalid *ErrInvalidAmount
	require.ErrorAs(t, err, &invalid)

	_, err = Parse("abc", "USD")
	require.ErrorAs(t, err, &invalid)
}

func TestStringIsFixedTwoDecimals(t *testing.T) {
	cases := map[string]string{
		"5":      "5.00",
		"5.1":    "5.10",
		"5.10":   "5.10",
		"0.015":  "0.02",
		"100.99": "100.99",
	}
	for in, want := range cases {
		m, err := Parse(in, "USD")
		require.NoError(t, err)
		assert.Equal(t, want, m.String(), "input %s", in)
	}
}

func TestAddExactAndCurrencyChecked(t *testing.T) {
	a, err := Parse("0.1", "USD")
	require.NoError(t, err)
	b, err := Parse("0.2", "USD")
	require.NoError(t, err)

	sum, err := a.Add(b)
	require.NoError(t, err)
	// exact decimal arithmetic: no float drift
	assert.Equal(t, "0.30", sum.String())

	c, err := Parse("1.00", "EUR")
	require.NoError(t, err)
	_, err = a.Add(c)
	var invalid *ErrInvalidAmount
	require.ErrorAs(t, err, &invalid)
}
