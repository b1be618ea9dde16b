package app

import (
	"context"

	"github.com/brightwell/svccat/internal/errors"
	"github.com/brightwell/svccat/internal/tui"
)

type BrowseOptions struct {
	// Service opens the detail view of this id on start.
	Service      string
	Testimonials bool
	Search       string
}

// RunBrowse starts the interactive catalog browser and blocks until it exits.
func RunBrowse(ctx context.Context, env *Env, opts BrowseOptions) error {
	ctrl := env.NewController()
	if opts.Search != "" {
		ctrl.SetSearch(opts.Search)
	}
	if opts.Service != "" {
		if err := ctrl.Select(opts.Service); err != nil {
			return errors.NotFoundError("service", opts.Service, env.Catalog.Suggest(opts.Service))
		}
	}

	start := tui.ScreenServices
	if opts.Testimonials {
		start = tui.ScreenTestimonials
	}

	env.Log.Verbose("Starting browser")
	err := tui.Run(ctx, ctrl, env.NewTestimonialBrowser(), tui.Options{
		Log:   env.Log.Zap(),
		Start: start,
	})
	env.Log.Verbose("Browser closed")
	return err
}
