package app

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/brightwell/svccat/internal/browse"
	"github.com/brightwell/svccat/internal/catalog"
	"github.com/brightwell/svccat/internal/errors"
	"github.com/brightwell/svccat/internal/report"
	"github.com/brightwell/svccat/internal/roi"
)

type ROIOptions struct {
	ServiceID    string
	Plan         string
	PracticeSize string
	Volume       int
	Costs        float64
	DesiredROI   int
	Format       string
	Out          io.Writer
}

// RunROI estimates the ROI of every plan of a service and highlights the
// selected one.
func RunROI(env *Env, opts ROIOptions) error {
	out := writer(opts.Out)
	format, err := report.ParseFormat(opts.Format)
	if err != nil {
		return errors.WrapInputError(err, "--format")
	}

	ctrl := env.NewController()
	if err := ctrl.Select(opts.ServiceID); err != nil {
		return errors.NotFoundError("service", opts.ServiceID, env.Catalog.Suggest(opts.ServiceID))
	}
	d := ctrl.Detail()

	size := roi.DefaultInputs().PracticeSize
	if opts.PracticeSize != "" {
		p, err := roi.ParsePracticeSize(opts.PracticeSize)
		if err != nil {
			return errors.WrapInputError(err, "--practice-size")
		}
		size = p
	}
	if opts.Plan != "" {
		tier, err := catalog.ParseTier(opts.Plan)
		if err != nil {
			return errors.WrapInputError(err, "--plan")
		}
		d.SelectPlan(tier)
	}
	raw := roi.Inputs{
		PracticeSize:  size,
		MonthlyVolume: opts.Volume,
		CurrentCosts:  opts.Costs,
		DesiredROI:    opts.DesiredROI,
	}
	d.SetInputs(raw)
	in := d.Inputs()
	env.Log.Debug("roi: %s plan=%s costs=%g volume=%d", opts.ServiceID, d.Plan(), in.CurrentCosts, in.MonthlyVolume)

	calc := roi.New(env.Config.ROI.SavingsRate)
	if format == report.FormatJSON {
		return report.WriteJSON(out, report.NewROIReport(d.Service(), d.Plan(), raw, calc))
	}

	fmt.Fprintf(out, "Service:      %s\n", d.Service().Title)
	fmt.Fprintf(out, "Practice:     %s\n", in.PracticeSize.Label())
	fmt.Fprintf(out, "Volume:       %s claims/month\n", humanize.Comma(int64(in.MonthlyVolume)))
	fmt.Fprintf(out, "Costs:        %s/mo\n", catalog.FormatCurrency(in.CurrentCosts))
	fmt.Fprintf(out, "Desired ROI:  %d%%\n", in.DesiredROI)
	if notice := d.Notice(); notice != "" {
		fmt.Fprintf(out, "Note:         %s\n", notice)
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "  %-14s %-12s %s\n", "PLAN", "PRICE", "ROI")
	for _, t := range catalog.Tiers {
		plan := d.Service().Pricing.Plan(t)
		marker := " "
		if t == d.Plan() {
			marker = ">"
		}
		res := calc.Calculate(in, plan.Price)
		fmt.Fprintf(out, "%s %-14s %-12s %s\n", marker, t.Label(), browse.PriceLabel(plan.Price), res)
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%s: %s\n", d.Plan().Label(), d.ROI().Summary())
	return nil
}
