package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/brightwell/svccat/internal/app"
)

func newBrowseCmd(env *app.EnvOptions) *cobra.Command {
	opts := app.BrowseOptions{}
	var eventsCSV string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive catalog browser",
		Long: `Launch the terminal UI. Search with /, cycle sort, filter and layout with
s, f and v, press enter for details and t for testimonials. Press ? for all keys.

Logs go only to --log-file while the browser is open. --events-csv records
every interaction for "svccat analytics summary".`,
		Example: `  svccat browse
  svccat browse --service ai-powered-billing
  svccat browse --testimonials
  svccat browse --events-csv session.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			envOpts := *env
			envOpts.Quiet = true
			if eventsCSV != "" {
				envOpts.EventsCSV = eventsCSV
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return withEnv(&envOpts, func(e *app.Env) error {
				return app.RunBrowse(ctx, e, opts)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Service, "service", "", "Open this service's details on start")
	cmd.Flags().StringVar(&opts.Search, "search", "", "Initial search term")
	cmd.Flags().BoolVar(&opts.Testimonials, "testimonials", false, "Start on the testimonials screen")
	cmd.Flags().StringVar(&eventsCSV, "events-csv", "", "Write interaction events to this CSV file")

	return cmd
}
