package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/brightwell/svccat/internal/errors"
	"github.com/brightwell/svccat/internal/query"
)

type TestimonialsListOptions struct {
	Category string
	Out      io.Writer
}

// RunTestimonialsList prints the testimonials in a category.
func RunTestimonialsList(env *Env, opts TestimonialsListOptions) error {
	out := writer(opts.Out)

	b := env.NewTestimonialBrowser()
	if opts.Category != "" {
		if err := b.SetCategory(opts.Category); err != nil {
			return errors.WrapInputError(err, "--category")
		}
	}

	list := b.Visible()
	if len(list) == 0 {
		fmt.Fprintf(out, "No testimonials in %s\n", b.Category())
		return nil
	}

	fmt.Fprintf(out, "%-4s %-24s %-22s %-6s %5s  %s\n", "ID", "NAME", "SPECIALTY", "RATING", "LIKES", "QUOTE")
	fmt.Fprintln(out, strings.Repeat("-", 100))
	for _, t := range list {
		name := t.Name
		if t.Featured {
			name = "★ " + name
		}
		fmt.Fprintf(out, "%-4s %s %s %-6s %5d  %s\n",
			t.ID, column(name, 24), column(t.Specialty, 22),
			fmt.Sprintf("%d/5", t.Rating), t.Likes, column(t.Quote, 40))
	}

	fmt.Fprintf(out, "\n%d testimonials (%s)\n", len(list), b.Category())
	return nil
}

type TestimonialShowOptions struct {
	ID  string
	Out io.Writer
}

// RunTestimonialShow prints one testimonial in full.
func RunTestimonialShow(env *Env, opts TestimonialShowOptions) error {
	out := writer(opts.Out)

	t, ok := env.Testimonials.Lookup(opts.ID)
	if !ok {
		var ids []string
		for _, t := range env.Testimonials.ListAll() {
			ids = append(ids, t.ID)
		}
		return errors.NotFoundError("testimonial", opts.ID, ids)
	}

	fmt.Fprintf(out, "Name:       %s, %s\n", t.Name, t.Title)
	fmt.Fprintf(out, "Company:    %s\n", t.Company)
	if t.Location != "" {
		fmt.Fprintf(out, "Location:   %s\n", t.Location)
	}
	fmt.Fprintf(out, "Specialty:  %s\n", t.Specialty)
	fmt.Fprintf(out, "Rating:     %d/5\n", t.Rating)
	if rec, err := t.Recorded(); err == nil {
		fmt.Fprintf(out, "Recorded:   %s\n", rec.Format("January 2, 2006"))
	}
	if t.Duration != "" {
		fmt.Fprintf(out, "Duration:   %s\n", t.Duration)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "“%s”\n\n", t.Quote)

	fmt.Fprintf(out, "Revenue:    %s\n", t.Metrics.RevenueIncrease)
	fmt.Fprintf(out, "Accuracy:   %s\n", t.Metrics.ClaimsAccuracy)
	fmt.Fprintf(out, "Time saved: %s\n", t.Metrics.TimesSaved)
	if len(t.Results) > 0 {
		fmt.Fprintln(out, "\nResults:")
		for _, r := range t.Results {
			fmt.Fprintf(out, "  ✓ %s\n", r)
		}
	}
	fmt.Fprintf(out, "\n♥ %d  💬 %d\n", t.Likes, t.Comments)
	return nil
}

// Categories returns the testimonial categories for help text.
func Categories() string {
	return strings.Join(query.TestimonialCategories, ", ")
}
