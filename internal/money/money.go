package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for non-positive values or unrecognized
// currency codes.
type ErrInvalidAmount struct {
	Reason string
}

func (e *ErrInvalidAmount) Error() string {
	return "invalid amount: " + e.Reason
}

// currencies accepted at the boundary. PayPal rejects anything else for
// the merchant account types this service targets.
var supportedCurrencies = map[string]struct{}{
	"USD": {}, "EUR": {}, "GBP": {}, "CAD": {}, "AUD": {},
	"MXN": {}, "BRL": {}, "CHF": {}, "SEK": {}, "NOK": {},
	"DKK": {}, "PLN": {}, "CZK": {}, "SGD": {}, "HKD": {},
	"NZD": {}, "THB": {}, "PHP": {}, "ILS": {},
}

// SupportedCurrency reports whether the code is accepted at the boundary.
func SupportedCurrency(code string) bool {
	_, ok := supportedCurrencies[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// Money is an exact decimal magnitude plus a 3-letter ISO currency code.
// Arithmetic never goes through floats; one-cent drift is audit-visible.
type Money struct {
	Value    decimal.Decimal
	Currency string
}

// New builds a Money, rejecting zero/negative magnitudes and unknown
// currency codes.
func New(value decimal.Decimal, currency string) (Money, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if !value.IsPositive() {
		return Money{}, &ErrInvalidAmount{Reason: fmt.Sprintf("value %s must be greater than zero", value)}
	}
	if _, ok := supportedCurrencies[currency]; !ok {
		return Money{}, &ErrInvalidAmount{Reason: fmt.Sprintf("unsupported currency code %q", currency)}
	}
	return Money{Value: value, Currency: currency}, nil
}

// Parse builds a Money from a wire-format decimal string such as "19.99".
func Parse(value, currency string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return Money{}, &ErrInvalidAmount{Reason: fmt.Sprintf("value %q is not a decimal", value)}
	}
	return New(d, currency)
}

// Add returns the exact sum. Currencies must match.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, &ErrInvalidAmount{Reason: fmt.Sprintf("currency mismatch: %s vs %s", m.Currency, other.Currency)}
	}
	return Money{Value: m.Value.Add(other.Value), Currency: m.Currency}, nil
}

// String renders the magnitude as a fixed-point two-decimal string, the
// form PayPal expects on the wire. Never a float.
func (m Money) String() string {
	return m.Value.StringFixed(2)
}
