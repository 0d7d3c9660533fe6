package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "₱"

var (
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrAmountTooLarge = errors.New("amount exceeds the maximum")
)

// MaxCents matches the NUMERIC(14,2) amount column: 999,999,999,999.99.
const MaxCents Cents = 99_999_999_999_999

var groupingPrinter = message.NewPrinter(language.English)

// Cents is an amount in minor currency units.
type Cents int64

// CentsFromDecimal converts a decimal amount to Cents, rounding half away from zero.
func CentsFromDecimal(d decimal.Decimal) (Cents, error) {
	if d.IsNegative() {
		return 0, ErrNegativeAmount
	}
	shifted := d.Round(2).Shift(2)
	if shifted.GreaterThan(decimal.NewFromInt(int64(MaxCents))) {
		return 0, ErrAmountTooLarge
	}
	return Cents(shifted.IntPart()), nil
}

func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String renders the amount with exactly two decimals and no symbol.
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

func (c Cents) Float64() float64 {
	return c.Decimal().InexactFloat64()
}

// Format renders the amount for display, e.g. ₱1,234.50.
func (c Cents) Format() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%s%s.%02d", sign, CurrencySymbol, groupingPrinter.Sprintf("%d", v/100), v%100)
}
