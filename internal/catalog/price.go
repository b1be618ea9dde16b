package catalog

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// PriceKind tags a Price as a fixed amount or a quote-on-request.
type PriceKind int

const (
	PriceNumeric PriceKind = iota
	PriceCustom
)

// Price is a monthly price that is either a numeric amount or a custom
// quote. The zero value is Numeric(0).
type Price struct {
	kind   PriceKind
	amount float64
}

// Numeric returns a fixed monthly price.
func Numeric(amount float64) Price {
	return Price{kind: PriceNumeric, amount: amount}
}

// CustomQuote returns a price that must be negotiated with sales.
func CustomQuote() Price {
	return Price{kind: PriceCustom}
}

// Kind returns the price tag.
func (p Price) Kind() PriceKind { return p.kind }

// IsCustom reports whether the price is a custom quote.
func (p Price) IsCustom() bool { return p.kind == PriceCustom }

// Amount returns the numeric amount. ok is false for custom quotes.
func (p Price) Amount() (amount float64, ok bool) {
	if p.kind == PriceCustom {
		return 0, false
	}
	return p.amount, true
}

// Compare orders prices ascending. Custom quotes sort after every numeric
// price and compare equal to each other.
func (p Price) Compare(o Price) int {
	switch {
	case p.kind == PriceCustom && o.kind == PriceCustom:
		return 0
	case p.kind == PriceCustom:
		return 1
	case o.kind == PriceCustom:
		return -1
	case p.amount < o.amount:
		return -1
	case p.amount > o.amount:
		return 1
	}
	return 0
}

// String formats the price for display, e.g. "$1,299" or "Custom".
func (p Price) String() string {
	if p.kind == PriceCustom {
		return "Custom"
	}
	return FormatCurrency(p.amount)
}

// FormatCurrency formats a dollar amount with thousands separators.
// Whole amounts have no decimals. NaN and infinite amounts format as "N/A".
func FormatCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "N/A"
	}
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	if amount == math.Trunc(amount) && amount < math.MaxInt64 {
		return sign + "$" + humanize.Comma(int64(amount))
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", amount)
}

func (k PriceKind) String() string {
	switch k {
	case PriceNumeric:
		return "numeric"
	case PriceCustom:
		return "custom"
	}
	return fmt.Sprintf("PriceKind(%d)", int(k))
}
