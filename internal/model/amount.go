package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits kept for every monetary value.
const AmountScale = 4

// ParseAmount parses a decimal literal and truncates it toward zero to AmountScale digits.
// The literal's own scale is kept when it is already within AmountScale ("100.0" stays 100.0).
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount '%s'", s)
	}
	return d.Truncate(AmountScale), nil
}

// FormatAmount renders d with its own scale, so 300.0 prints as "300.0" and zero as "0".
func FormatAmount(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}
