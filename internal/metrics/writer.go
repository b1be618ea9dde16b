package metrics

// Event log output (CSV/JSON) and summary formatting

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/brightwell/svccat/internal/analytics"
)

var csvHeader = []string{"timestamp", "session", "category", "name", "label", "params"}

// eventRecord is the JSON shape of an event.
type eventRecord struct {
	Timestamp string            `json:"timestamp,omitempty"`
	Session   string            `json:"session,omitempty"`
	Category  string            `json:"category"`
	Name      string            `json:"name"`
	Label     string            `json:"label,omitempty"`
	Params    map[string]string `json:"params,omitempty"`
}

// Writer appends events to CSV and/or JSON files. It implements
// analytics.Tracker; write failures are counted rather than returned.
type Writer struct {
	mu        sync.Mutex
	csvFile   *os.File
	csvWriter *csv.Writer
	jsonFile  *os.File
	written   int
	failed    int
}

// NewWriter creates the files that have a non-empty path. Existing files
// are truncated.
func NewWriter(csvPath, jsonPath string) (*Writer, error) {
	w := &Writer{}

	if csvPath != "" {
		file, err := os.Create(csvPath)
		if err != nil {
			return nil, fmt.Errorf("create CSV file: %w", err)
		}
		w.csvFile = file
		w.csvWriter = csv.NewWriter(file)
		if err := w.csvWriter.Write(csvHeader); err != nil {
			file.Close()
			return nil, fmt.Errorf("write CSV header: %w", err)
		}
		w.csvWriter.Flush()
	}

	if jsonPath != "" {
		file, err := os.Create(jsonPath)
		if err != nil {
			if w.csvFile != nil {
				w.csvFile.Close()
			}
			return nil, fmt.Errorf("create JSON file: %w", err)
		}
		w.jsonFile = file
		if _, err := file.WriteString("[\n"); err != nil {
			file.Close()
			if w.csvFile != nil {
				w.csvFile.Close()
			}
			return nil, fmt.Errorf("write JSON start: %w", err)
		}
	}

	return w, nil
}

// Track implements analytics.Tracker.
func (w *Writer) Track(ev analytics.Event) {
	_ = w.WriteEvent(ev)
}

// WriteEvent writes a single event to every open file.
func (w *Writer) WriteEvent(ev analytics.Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.write(ev); err != nil {
		w.failed++
		return err
	}
	w.written++
	return nil
}

func (w *Writer) write(ev analytics.Event) error {
	if w.csvWriter != nil {
		record := []string{
			formatTime(ev.Time),
			ev.Session,
			ev.Category,
			ev.Name,
			ev.Label,
			formatParams(ev.Params),
		}
		if err := w.csvWriter.Write(record); err != nil {
			return fmt.Errorf("write CSV record: %w", err)
		}
		w.csvWriter.Flush()
		if err := w.csvWriter.Error(); err != nil {
			return fmt.Errorf("flush CSV: %w", err)
		}
	}

	if w.jsonFile != nil {
		data, err := json.Marshal(eventRecord{
			Timestamp: formatTime(ev.Time),
			Session:   ev.Session,
			Category:  ev.Category,
			Name:      ev.Name,
			Label:     ev.Label,
			Params:    ev.Params,
		})
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		if w.written > 0 {
			if _, err := w.jsonFile.WriteString(",\n"); err != nil {
				return fmt.Errorf("write JSON comma: %w", err)
			}
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "  ", "  "); err != nil {
			return fmt.Errorf("indent JSON: %w", err)
		}
		if _, err := w.jsonFile.Write(append([]byte("  "), buf.Bytes()...)); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
	}

	return nil
}

// Stats returns the number of events written and the number that failed.
func (w *Writer) Stats() (written, failed int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written, w.failed
}

// Close flushes and closes both files.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var errs []error

	if w.csvWriter != nil {
		w.csvWriter.Flush()
	}
	if w.csvFile != nil {
		if err := w.csvFile.Close(); err != nil {
			errs = append(errs, err)
		}
		w.csvFile = nil
		w.csvWriter = nil
	}

	if w.jsonFile != nil {
		if _, err := w.jsonFile.WriteString("\n]\n"); err != nil {
			errs = append(errs, err)
		}
		if err := w.jsonFile.Close(); err != nil {
			errs = append(errs, err)
		}
		w.jsonFile = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("close event log: %v", errs)
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// formatParams renders params as a JSON object so values may hold any
// character. Keys come out sorted.
func formatParams(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	data, err := json.Marshal(params)
	if err != nil {
		return ""
	}
	return string(data)
}

// FormatSummary formats a summary for human-readable output. top limits
// the per-item table; 0 shows every item.
func FormatSummary(summary *Summary, top int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Total Events: %s\n", humanize.Comma(int64(summary.TotalEvents)))
	if summary.TotalEvents == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, "Sessions: %d\n", summary.Sessions)
	if !summary.First.IsZero() {
		fmt.Fprintf(&b, "First: %s\n", summary.First.UTC().Format(time.RFC3339))
		fmt.Fprintf(&b, "Last: %s (%s)\n", summary.Last.UTC().Format(time.RFC3339), summary.Duration().Round(time.Second))
	}

	b.WriteString("\nPer-Event Statistics:\n")
	for _, name := range summary.Names() {
		count := summary.ByName[name]
		fmt.Fprintf(&b, "  %-30s %6d (%.1f%%)\n", name, count,
			float64(count)/float64(summary.TotalEvents)*100)
	}

	labels := summary.TopLabels(top)
	if len(labels) > 0 {
		b.WriteString("\nPer-Item Statistics:\n")
		for _, ls := range labels {
			fmt.Fprintf(&b, "  %-30s %6d", ls.Label, ls.Count)
			names := make([]string, 0, len(ls.ByName))
			for n := range ls.ByName {
				names = append(names, n)
			}
			sort.Strings(names)
			parts := make([]string, len(names))
			for i, n := range names {
				parts[i] = fmt.Sprintf("%s=%d", n, ls.ByName[n])
			}
			fmt.Fprintf(&b, "  %s\n", strings.Join(parts, " "))
		}
	}

	return b.String()
}
