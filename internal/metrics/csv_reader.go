package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/brightwell/svccat/internal/analytics"
)

// ReadEventsCSV reads an event log written by Writer and returns the events
// along with the first and last timestamps found in the data.
func ReadEventsCSV(path string) ([]analytics.Event, time.Time, time.Time, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, time.Time{}, time.Time{}, fmt.Errorf("open event log: %w", err)
	}
	defer file.Close()

	return readEventsCSV(file)
}

func readEventsCSV(r io.Reader) ([]analytics.Event, time.Time, time.Time, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, time.Time{}, time.Time{}, fmt.Errorf("read CSV header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[col] = i
	}
	for _, col := range []string{"timestamp", "name"} {
		if _, ok := colIndex[col]; !ok {
			return nil, time.Time{}, time.Time{}, fmt.Errorf("CSV missing required column: %s", col)
		}
	}

	field := func(record []string, col string) string {
		if idx, ok := colIndex[col]; ok && idx < len(record) {
			return record[idx]
		}
		return ""
	}

	var events []analytics.Event
	var firstTime, lastTime time.Time
	row := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, time.Time{}, time.Time{}, fmt.Errorf("read CSV row %d: %w", row, err)
		}

		params, err := parseParams(field(record, "params"))
		if err != nil {
			return nil, time.Time{}, time.Time{}, fmt.Errorf("CSV row %d: bad params: %w", row, err)
		}
		ev := analytics.Event{
			Session:  field(record, "session"),
			Category: field(record, "category"),
			Name:     field(record, "name"),
			Label:    field(record, "label"),
			Params:   params,
		}
		if ev.Name == "" {
			return nil, time.Time{}, time.Time{}, fmt.Errorf("CSV row %d: empty event name", row)
		}
		if ts := field(record, "timestamp"); ts != "" {
			t, err := time.Parse(time.RFC3339Nano, ts)
			if err != nil {
				return nil, time.Time{}, time.Time{}, fmt.Errorf("CSV row %d: bad timestamp %q", row, ts)
			}
			ev.Time = t
			if firstTime.IsZero() {
				firstTime = t
			}
			lastTime = t
		}
		events = append(events, ev)
	}

	return events, firstTime, lastTime, nil
}

// parseParams decodes the params column. Logs written before params were
// stored as JSON hold key=value pairs joined by ';'.
func parseParams(s string) (map[string]string, error) {
	if s == "" {
		return nil, nil
	}
	if strings.HasPrefix(s, "{") {
		var out map[string]string
		if err := json.Unmarshal([]byte(s), &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	out := make(map[string]string)
	for _, pair := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			continue
		}
		out[k] = v
	}
	return out, nil
}
