package main

import (
	"github.com/spf13/cobra"

	"github.com/brightwell/svccat/internal/app"
)

func newAnalyticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Inspect recorded interaction events",
	}
	cmd.AddCommand(newAnalyticsSummaryCmd())
	return cmd
}

func newAnalyticsSummaryCmd() *cobra.Command {
	opts := app.AnalyticsSummaryOptions{}

	cmd := &cobra.Command{
		Use:   "summary <events.csv>",
		Short: "Summarize an event log",
		Long: `Count events by name and by item from a CSV event log written by
"svccat browse --events-csv" or the analytics.csv_file setting.`,
		Example: `  svccat analytics summary session.csv
  svccat analytics summary session.csv --top 5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return missingArgError(cmd, "<events.csv>")
			}
			opts.Path = args[0]
			opts.Out = cmd.OutOrStdout()
			return app.RunAnalyticsSummary(opts)
		},
	}

	cmd.Flags().IntVar(&opts.Top, "top", 10, "Items to list (0 for all)")
	return cmd
}
