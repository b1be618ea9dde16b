package app

import (
	"fmt"
	"io"

	"github.com/brightwell/svccat/internal/metrics"
)

type AnalyticsSummaryOptions struct {
	Path string
	Top  int
	Out  io.Writer
}

// RunAnalyticsSummary summarizes an event log written with
// analytics.csv_file or browse --events-csv.
func RunAnalyticsSummary(opts AnalyticsSummaryOptions) error {
	events, _, _, err := metrics.ReadEventsCSV(opts.Path)
	if err != nil {
		return fmt.Errorf("summarize event log: %w", err)
	}
	fmt.Fprintf(writer(opts.Out), "Event log: %s\n\n%s", opts.Path, metrics.FormatSummary(metrics.Summarize(events), opts.Top))
	return nil
}
