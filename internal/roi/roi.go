// Package roi estimates the return on investment of a pricing plan from a
// practice's current billing costs.
package roi

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/brightwell/svccat/internal/catalog"
)

// DefaultSavingsRate is the share of current monthly costs a practice is
// expected to save.
const DefaultSavingsRate = 0.30

// PracticeSize describes how many providers a practice has.
type PracticeSize string

const (
	PracticeSmall  PracticeSize = "small"
	PracticeMedium PracticeSize = "medium"
	PracticeLarge  PracticeSize = "large"
)

// PracticeSizes lists the sizes in display order.
var PracticeSizes = []PracticeSize{PracticeSmall, PracticeMedium, PracticeLarge}

// ParsePracticeSize converts a string to a PracticeSize.
func ParsePracticeSize(s string) (PracticeSize, error) {
	for _, p := range PracticeSizes {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown practice size %q (want small, medium or large)", s)
}

// Label returns the display label including the provider range.
func (p PracticeSize) Label() string {
	switch p {
	case PracticeSmall:
		return "Small (1-5 providers)"
	case PracticeMedium:
		return "Medium (6-15 providers)"
	case PracticeLarge:
		return "Large (16+ providers)"
	}
	return string(p)
}

// Inputs are the user-editable calculator fields.
type Inputs struct {
	PracticeSize  PracticeSize
	MonthlyVolume int
	CurrentCosts  float64
	// DesiredROI is collected and shown but does not affect the estimate.
	DesiredROI int
}

// DefaultInputs returns the values the calculator opens with.
func DefaultInputs() Inputs {
	return Inputs{
		PracticeSize:  PracticeMedium,
		MonthlyVolume: 1000,
		CurrentCosts:  5000,
		DesiredROI:    200,
	}
}

// MaxCurrentCosts is the largest monthly cost the calculator accepts.
// Larger or infinite values are capped so every figure stays finite.
const MaxCurrentCosts = 1_000_000_000

// maxPercent bounds Result.Percent for plans priced at a few cents.
const maxPercent = 1_000_000_000

// Clamped names the input fields Clamp adjusted.
type Clamped struct {
	// Zeroed fields were negative and raised to zero.
	Zeroed []string
	// Capped fields were above their maximum and lowered to it.
	Capped []string
}

// Len returns the number of adjusted fields.
func (c Clamped) Len() int { return len(c.Zeroed) + len(c.Capped) }

// Notice returns the inline message shown next to clamped inputs, or "".
func (c Clamped) Notice() string {
	var parts []string
	if len(c.Zeroed) > 0 {
		parts = append(parts, "negative values set to 0: "+strings.Join(c.Zeroed, ", "))
	}
	if len(c.Capped) > 0 {
		parts = append(parts, strings.Join(c.Capped, ", ")+" capped at "+catalog.FormatCurrency(MaxCurrentCosts))
	}
	return strings.Join(parts, "; ")
}

// Clamp returns in with negative numeric fields set to zero, current costs
// capped at MaxCurrentCosts and an unknown practice size replaced by medium.
func (in Inputs) Clamp() (Inputs, Clamped) {
	var clamped Clamped
	if in.MonthlyVolume < 0 {
		in.MonthlyVolume = 0
		clamped.Zeroed = append(clamped.Zeroed, "monthly volume")
	}
	switch {
	case in.CurrentCosts < 0 || math.IsNaN(in.CurrentCosts):
		in.CurrentCosts = 0
		clamped.Zeroed = append(clamped.Zeroed, "current costs")
	case in.CurrentCosts > MaxCurrentCosts:
		in.CurrentCosts = MaxCurrentCosts
		clamped.Capped = append(clamped.Capped, "current costs")
	}
	if in.DesiredROI < 0 {
		in.DesiredROI = 0
		clamped.Zeroed = append(clamped.Zeroed, "desired ROI")
	}
	if _, err := ParsePracticeSize(string(in.PracticeSize)); err != nil {
		in.PracticeSize = PracticeMedium
	}
	return in, clamped
}

// Outcome tags the kind of Result.
type Outcome int

const (
	// Estimated results carry a percentage.
	Estimated Outcome = iota
	// ContactSales is returned for plans priced by custom quote.
	ContactSales
	// Unavailable is returned when the plan price is zero or not finite.
	Unavailable
)

// Result is the calculator output for one plan.
type Result struct {
	Outcome Outcome
	// Percent is the rounded annual ROI; only meaningful when Estimated.
	Percent int
	// MonthlySavings is the gross saving before the plan cost.
	MonthlySavings float64
	// NetMonthly is MonthlySavings minus the plan price.
	NetMonthly float64
	// AnnualNet is NetMonthly over twelve months.
	AnnualNet float64
	PlanPrice catalog.Price
	Reason    string
}

// Calculator computes ROI with a fixed savings rate.
type Calculator struct {
	SavingsRate float64
}

// New returns a Calculator. A rate outside (0, 1] falls back to
// DefaultSavingsRate.
func New(rate float64) Calculator {
	if rate <= 0 || rate > 1 || math.IsNaN(rate) {
		rate = DefaultSavingsRate
	}
	return Calculator{SavingsRate: rate}
}

// Calculate estimates ROI with DefaultSavingsRate.
func Calculate(in Inputs, price catalog.Price) Result {
	return New(DefaultSavingsRate).Calculate(in, price)
}

// Calculate estimates the annual ROI of paying price each month given the
// practice's current monthly costs. Inputs are clamped first.
func (c Calculator) Calculate(in Inputs, price catalog.Price) Result {
	in, _ = in.Clamp()
	rate := c.SavingsRate
	if rate == 0 {
		rate = DefaultSavingsRate
	}

	res := Result{
		MonthlySavings: in.CurrentCosts * rate,
		PlanPrice:      price,
	}

	amount, ok := price.Amount()
	switch {
	case !ok:
		res.Outcome = ContactSales
		res.Reason = "custom pricing"
		return res
	case amount <= 0:
		res.Outcome = Unavailable
		res.Reason = "free tier"
		return res
	case math.IsNaN(amount) || math.IsInf(amount, 0):
		res.Outcome = Unavailable
		res.Reason = "plan without a finite price"
		return res
	}

	res.NetMonthly = res.MonthlySavings - amount
	res.AnnualNet = res.NetMonthly * 12
	res.Percent = saturatePercent(res.AnnualNet / (amount * 12) * 100)
	return res
}

func saturatePercent(p float64) int {
	switch {
	case math.IsNaN(p):
		return 0
	case p > maxPercent:
		return maxPercent
	case p < -maxPercent:
		return -maxPercent
	}
	return int(math.Round(p))
}

// String formats the headline figure: "15%", "Contact Sales" or "N/A".
func (r Result) String() string {
	switch r.Outcome {
	case ContactSales:
		return "Contact Sales"
	case Unavailable:
		return "N/A"
	}
	return strconv.Itoa(r.Percent) + "%"
}

// Summary returns a one-line description with the savings figures.
func (r Result) Summary() string {
	switch r.Outcome {
	case ContactSales:
		return "Custom pricing: contact sales for an ROI estimate"
	case Unavailable:
		return "ROI not applicable for a " + r.Reason
	}
	return fmt.Sprintf("%s expected ROI: saves %s/mo, net %s/mo, %s/yr",
		r.String(),
		catalog.FormatCurrency(r.MonthlySavings),
		catalog.FormatCurrency(r.NetMonthly),
		catalog.FormatCurrency(r.AnnualNet))
}
