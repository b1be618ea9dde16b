package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/brightwell/svccat/internal/browse"
	"github.com/brightwell/svccat/internal/catalog"
	"github.com/brightwell/svccat/internal/errors"
	"github.com/brightwell/svccat/internal/query"
	"github.com/brightwell/svccat/internal/report"
	"github.com/brightwell/svccat/internal/tui"
)

// DefaultWidth is the terminal width assumed for rendered output.
const DefaultWidth = 100

type CatalogListOptions struct {
	Search string
	Sort   string
	Filter string
	View   string
	Format string
	Width  int
	Out    io.Writer
}

// RunCatalogList prints the services matching the search and filter in the
// requested order.
func RunCatalogList(env *Env, opts CatalogListOptions) error {
	out := writer(opts.Out)
	format, err := report.ParseFormat(opts.Format)
	if err != nil {
		return errors.WrapInputError(err, "--format")
	}

	q := env.Config.Query()
	q.Search = opts.Search
	if opts.Sort != "" {
		k, err := query.ParseSort(opts.Sort)
		if err != nil {
			return errors.WrapInputError(err, "--sort")
		}
		q.Sort = k
	}
	if opts.Filter != "" {
		f, err := query.ParseFilter(opts.Filter)
		if err != nil {
			return errors.WrapInputError(err, "--filter")
		}
		q.Filter = f
	}
	view := env.Config.ViewMode()
	if opts.View != "" {
		v, err := browse.ParseViewMode(opts.View)
		if err != nil {
			return errors.WrapInputError(err, "--view")
		}
		view = v
	}

	ctrl := env.NewController(browse.WithQuery(q), browse.WithViewMode(view))
	cards := ctrl.Cards()
	env.Log.Debug("catalog list: %d of %d services (sort=%s filter=%s)", len(cards), env.Catalog.Len(), q.Sort, q.Filter)

	if format == report.FormatJSON {
		return report.WriteJSON(out, report.NewCatalogReport(env.Catalog, env.CatalogSource, q, cards))
	}

	if len(cards) == 0 {
		fmt.Fprintln(out, "No services match")
		return nil
	}

	fmt.Fprintln(out, tui.RenderCards(cards, view, width(opts.Width)))
	fmt.Fprintf(out, "\n%d of %d services\n", len(cards), env.Catalog.Len())
	return nil
}

type CatalogShowOptions struct {
	ID         string
	Tab        string
	Plan       string
	Calculator bool
	Width      int
	Out        io.Writer
}

// RunCatalogShow prints one tab of the detail view for a service.
func RunCatalogShow(env *Env, opts CatalogShowOptions) error {
	ctrl := env.NewController()
	if err := ctrl.Select(opts.ID); err != nil {
		return errors.NotFoundError("service", opts.ID, env.Catalog.Suggest(opts.ID))
	}
	d := ctrl.Detail()

	if opts.Tab != "" {
		tab, err := browse.ParseTab(opts.Tab)
		if err != nil {
			return errors.WrapInputError(err, "--tab")
		}
		d.SetTab(tab)
	}
	if opts.Plan != "" {
		tier, err := catalog.ParseTier(opts.Plan)
		if err != nil {
			return errors.WrapInputError(err, "--plan")
		}
		d.SelectPlan(tier)
	}
	if opts.Calculator && !d.CalculatorVisible() {
		d.ToggleCalculator()
	}

	fmt.Fprintln(writer(opts.Out), tui.RenderDetail(ctrl, width(opts.Width)))
	return nil
}

type CatalogValidateOptions struct {
	Format string
	Out    io.Writer
}

// RunCatalogValidate checks both datasets and prints every finding. It fails
// when any error is found; warnings alone pass.
func RunCatalogValidate(env *Env, opts CatalogValidateOptions) error {
	out := writer(opts.Out)
	format, err := report.ParseFormat(opts.Format)
	if err != nil {
		return errors.WrapInputError(err, "--format")
	}

	services := catalog.Validate(env.Catalog)
	testimonials := catalog.ValidateTestimonials(env.Testimonials)

	errs := append(append([]catalog.ValidationError{}, services.Errors...), testimonials.Errors...)
	warns := append(append([]catalog.ValidationError{}, services.Warnings...), testimonials.Warnings...)

	if format == report.FormatJSON {
		r := report.ValidationReport{
			GeneratedAt:        report.FormatTimestamp(),
			Catalog:            env.Catalog.File().Name,
			CatalogSource:      env.CatalogSource.String(),
			Services:           env.Catalog.Len(),
			TestimonialsSource: env.TestimonialSource.String(),
			Testimonials:       env.Testimonials.Len(),
			Pass:               len(errs) == 0,
			Errors:             report.Findings(errs),
			Warnings:           report.Findings(warns),
		}
		if err := report.WriteJSON(out, r); err != nil {
			return err
		}
		if !r.Pass {
			return fmt.Errorf("validation failed with %d errors", len(errs))
		}
		return nil
	}

	fmt.Fprintf(out, "Catalog: %s (v%d) from %s\n", env.Catalog.File().Name, env.Catalog.File().Version, env.CatalogSource)
	fmt.Fprintf(out, "Services: %d\n", env.Catalog.Len())
	fmt.Fprintf(out, "Testimonials: %d from %s\n\n", env.Testimonials.Len(), env.TestimonialSource)

	printFindings(out, "ERRORS", errs)
	printFindings(out, "WARNINGS", warns)

	if len(errs) == 0 {
		fmt.Fprintln(out, "Validation: PASS")
		if len(warns) > 0 {
			fmt.Fprintf(out, "  %d warnings\n", len(warns))
		}
		return nil
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

type CatalogExportOptions struct {
	// Path is the file to write; empty or "-" writes to Out.
	Path string
	Out  io.Writer
}

// RunCatalogExport writes the loaded catalog back out as YAML.
func RunCatalogExport(env *Env, opts CatalogExportOptions) error {
	out := writer(opts.Out)
	file := env.Catalog.File()

	if opts.Path == "" || opts.Path == "-" {
		data, err := catalog.Marshal(file)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	if err := catalog.Save(opts.Path, file); err != nil {
		return errors.WrapCatalogError(err, opts.Path)
	}
	env.Log.Verbose("Exported %d services from %s to %s", env.Catalog.Len(), env.CatalogSource, opts.Path)
	fmt.Fprintf(out, "Exported %d services to %s\n", env.Catalog.Len(), opts.Path)
	return nil
}

func printFindings(out io.Writer, title string, list []catalog.ValidationError) {
	if len(list) == 0 {
		return
	}
	fmt.Fprintf(out, "%s:\n", title)
	for _, e := range list {
		fmt.Fprintf(out, "  [%s] %s: %s\n", e.ID, e.Field, e.Message)
	}
	fmt.Fprintln(out)
}

func writer(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

func width(w int) int {
	if w <= 0 {
		return DefaultWidth
	}
	return w
}

// column pads or truncates s to n runes.
func column(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s + strings.Repeat(" ", n-len(r))
}
