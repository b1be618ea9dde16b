package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"

	"github.com/brightwell/svccat/internal/roi"
)

// roiFormValues backs the calculator form fields. Numbers are kept as text
// so that negative entries reach the calculator and are clamped there with
// a notice instead of being rejected by the form.
type roiFormValues struct {
	size    string
	volume  string
	costs   string
	desired string
}

func newROIFormValues(in roi.Inputs) *roiFormValues {
	return &roiFormValues{
		size:    string(in.PracticeSize),
		volume:  strconv.Itoa(in.MonthlyVolume),
		costs:   strconv.FormatFloat(in.CurrentCosts, 'f', -1, 64),
		desired: strconv.Itoa(in.DesiredROI),
	}
}

// Inputs parses the form values.
func (v *roiFormValues) Inputs() (roi.Inputs, error) {
	size, err := roi.ParsePracticeSize(v.size)
	if err != nil {
		return roi.Inputs{}, err
	}
	volume, err := parseWhole(v.volume)
	if err != nil {
		return roi.Inputs{}, fmt.Errorf("monthly volume: %w", err)
	}
	costs, err := parseAmount(v.costs)
	if err != nil {
		return roi.Inputs{}, fmt.Errorf("current costs: %w", err)
	}
	desired, err := parseWhole(strings.TrimSuffix(strings.TrimSpace(v.desired), "%"))
	if err != nil {
		return roi.Inputs{}, fmt.Errorf("desired ROI: %w", err)
	}
	return roi.Inputs{
		PracticeSize:  size,
		MonthlyVolume: volume,
		CurrentCosts:  costs,
		DesiredROI:    desired,
	}, nil
}

// parseAmount accepts "5000", "5,000" and "$5,000.50".
func parseAmount(s string) (float64, error) {
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if s == "" {
		return 0, fmt.Errorf("a number is required")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%q is not a finite amount", s)
	}
	return f, nil
}

func parseWhole(s string) (int, error) {
	s = strings.NewReplacer(",", "", " ", "").Replace(s)
	if s == "" {
		return 0, fmt.Errorf("a number is required")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return n, nil
}

func validateWhole(s string) error {
	_, err := parseWhole(s)
	return err
}

func validateAmount(s string) error {
	_, err := parseAmount(s)
	return err
}

func buildROIForm(v *roiFormValues) *huh.Form {
	var sizes []huh.Option[string]
	for _, p := range roi.PracticeSizes {
		sizes = append(sizes, huh.NewOption(p.Label(), string(p)))
	}

	group := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Practice size").
			Key("practice_size").
			Options(sizes...).
			Value(&v.size),
		huh.NewInput().
			Title("Monthly claim volume").
			Description("Claims submitted per month.").
			Key("monthly_volume").
			Validate(validateWhole).
			Value(&v.volume),
		huh.NewInput().
			Title("Current monthly billing costs").
			Description("Staff, software and clearinghouse fees in dollars.").
			Key("current_costs").
			Validate(validateAmount).
			Value(&v.costs),
		huh.NewInput().
			Title("Desired ROI (%)").
			Key("desired_roi").
			Validate(func(s string) error {
				return validateWhole(strings.TrimSuffix(strings.TrimSpace(s), "%"))
			}).
			Value(&v.desired),
	)
	return huh.NewForm(group).WithShowHelp(true)
}

// formatInputs renders the calculator inputs as label/value rows.
func formatInputs(in roi.Inputs) [][]string {
	return [][]string{
		{"Practice size", in.PracticeSize.Label()},
		{"Monthly volume", humanize.Comma(int64(in.MonthlyVolume)) + " claims"},
		{"Current costs", "$" + humanize.Commaf(in.CurrentCosts) + "/mo"},
		{"Desired ROI", strconv.Itoa(in.DesiredROI) + "%"},
	}
}
