// Package metrics aggregates analytics events into usage summaries and
// persists them as CSV or JSON.
package metrics

import (
	"sort"
	"sync"
	"time"

	"github.com/brightwell/svccat/internal/analytics"
)

// Sink collects events and keeps a running summary. It implements
// analytics.Tracker.
type Sink struct {
	mu      sync.RWMutex
	events  []analytics.Event
	summary *Summary
}

// Summary contains aggregated usage statistics.
type Summary struct {
	TotalEvents int
	Sessions    int
	First       time.Time
	Last        time.Time
	ByName      map[string]int
	ByLabel     map[string]*LabelStats

	sessions map[string]struct{}
}

// LabelStats counts the events recorded against one item, such as a
// service or testimonial id.
type LabelStats struct {
	Label  string
	Count  int
	ByName map[string]int
}

func newSummary() *Summary {
	return &Summary{
		ByName:   make(map[string]int),
		ByLabel:  make(map[string]*LabelStats),
		sessions: make(map[string]struct{}),
	}
}

// NewSink creates an empty sink.
func NewSink() *Sink {
	return &Sink{summary: newSummary()}
}

// Track implements analytics.Tracker.
func (s *Sink) Track(ev analytics.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	s.summary.add(ev)
}

// Events returns a copy of all recorded events.
func (s *Sink) Events() []analytics.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]analytics.Event, len(s.events))
	copy(out, s.events)
	return out
}

// GetSummary returns a snapshot of the aggregated summary.
func (s *Sink) GetSummary() *Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Summarize(s.events)
}

// Summarize aggregates a list of events.
func Summarize(events []analytics.Event) *Summary {
	sum := newSummary()
	for _, ev := range events {
		sum.add(ev)
	}
	return sum
}

func (s *Summary) add(ev analytics.Event) {
	s.TotalEvents++
	s.ByName[ev.Name]++

	if ev.Session != "" {
		if _, ok := s.sessions[ev.Session]; !ok {
			s.sessions[ev.Session] = struct{}{}
			s.Sessions++
		}
	}
	if !ev.Time.IsZero() {
		if s.First.IsZero() || ev.Time.Before(s.First) {
			s.First = ev.Time
		}
		if ev.Time.After(s.Last) {
			s.Last = ev.Time
		}
	}

	if ev.Label == "" {
		return
	}
	ls, ok := s.ByLabel[ev.Label]
	if !ok {
		ls = &LabelStats{Label: ev.Label, ByName: make(map[string]int)}
		s.ByLabel[ev.Label] = ls
	}
	ls.Count++
	ls.ByName[ev.Name]++
}

// Duration is the time between the first and last timestamped event.
func (s *Summary) Duration() time.Duration {
	if s.First.IsZero() {
		return 0
	}
	return s.Last.Sub(s.First)
}

// Names returns the event names ordered by count, then name.
func (s *Summary) Names() []string {
	names := make([]string, 0, len(s.ByName))
	for n := range s.ByName {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := s.ByName[names[i]], s.ByName[names[j]]
		if a != b {
			return a > b
		}
		return names[i] < names[j]
	})
	return names
}

// TopLabels returns up to n labels ordered by count, then label. n <= 0
// returns all of them.
func (s *Summary) TopLabels(n int) []LabelStats {
	out := make([]LabelStats, 0, len(s.ByLabel))
	for _, ls := range s.ByLabel {
		out = append(out, *ls)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
