// Package analytics records best-effort user interaction events. Tracking
// never blocks the caller and never reports failure.
package analytics

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Event names.
const (
	EventSearch              = "search_performed"
	EventSortChanged         = "sort_changed"
	EventFilterChanged       = "filter_changed"
	EventViewModeChanged     = "view_mode_changed"
	EventServiceSelected     = "service_selected"
	EventTabSwitched         = "tab_switched"
	EventPlanSelected        = "plan_selected"
	EventROICalculated       = "roi_calculated"
	EventCalculatorToggled   = "calculator_toggled"
	EventTestimonialCategory = "testimonial_category_changed"
	EventTestimonialOpened   = "testimonial_opened"
	EventItemLiked           = "item_liked"
	EventItemShared          = "item_shared"
)

// CategoryEngagement is the category of every interaction event.
const CategoryEngagement = "engagement"

// Event is one tracked interaction.
type Event struct {
	Name     string
	Category string
	Label    string
	Params   map[string]string
	Session  string
	Time     time.Time
}

// NewEvent builds an engagement event. params are key/value pairs; a
// trailing key without a value is dropped.
func NewEvent(name, label string, params ...string) Event {
	ev := Event{Name: name, Category: CategoryEngagement, Label: label}
	if len(params) > 1 {
		ev.Params = make(map[string]string, len(params)/2)
		for i := 0; i+1 < len(params); i += 2 {
			ev.Params[params[i]] = params[i+1]
		}
	}
	return ev
}

// Tracker receives events. Implementations must not block.
type Tracker interface {
	Track(ev Event)
}

// Nop discards every event.
type Nop struct{}

// Track implements Tracker.
func (Nop) Track(Event) {}

// Recorder keeps events in memory. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Track implements Tracker.
func (r *Recorder) Track(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Names returns the recorded event names in order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Name
	}
	return out
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// Session stamps every event with a session id and time before passing it
// on.
type Session struct {
	ID   string
	next Tracker
	now  func() time.Time
}

// NewSession starts a new session with a random id.
func NewSession(next Tracker) *Session {
	return &Session{ID: uuid.NewString(), next: next, now: time.Now}
}

// Track implements Tracker.
func (s *Session) Track(ev Event) {
	if ev.Session == "" {
		ev.Session = s.ID
	}
	if ev.Time.IsZero() {
		ev.Time = s.now()
	}
	s.next.Track(ev)
}

// LogTracker writes events as structured log entries.
type LogTracker struct {
	log *zap.Logger
}

// NewLogTracker returns a tracker that logs to l at info level.
func NewLogTracker(l *zap.Logger) *LogTracker {
	if l == nil {
		l = zap.NewNop()
	}
	return &LogTracker{log: l.Named("analytics")}
}

// Track implements Tracker.
func (t *LogTracker) Track(ev Event) {
	fields := []zap.Field{
		zap.String("category", ev.Category),
		zap.String("label", ev.Label),
		zap.String("session", ev.Session),
	}
	keys := make([]string, 0, len(ev.Params))
	for k := range ev.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, zap.String(k, ev.Params[k]))
	}
	t.log.Info(ev.Name, fields...)
}

// Throttled drops events that exceed a rate budget.
type Throttled struct {
	next    Tracker
	limiter *rate.Limiter
	log     *zap.Logger

	mu      sync.Mutex
	dropped int
}

// NewThrottled allows perSecond events per second with the given burst.
// A non-positive perSecond disables the limit.
func NewThrottled(next Tracker, perSecond float64, burst int, l *zap.Logger) *Throttled {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &Throttled{next: next, limiter: rate.NewLimiter(limit, burst), log: l}
}

// Track implements Tracker.
func (t *Throttled) Track(ev Event) {
	if !t.limiter.Allow() {
		t.mu.Lock()
		t.dropped++
		t.mu.Unlock()
		t.log.Debug("analytics event dropped", zap.String("event", ev.Name))
		return
	}
	t.next.Track(ev)
}

// Dropped returns the number of events dropped so far.
func (t *Throttled) Dropped() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dropped
}

// Options configures New.
type Options struct {
	Enabled         bool
	EventsPerSecond float64
	Burst           int
	// Sinks receive every event the rate limit lets through, alongside the
	// log.
	Sinks []Tracker
}

// New builds the tracker stack used by the application: session stamping,
// rate limiting and a zap sink plus any extra sinks. Disabled analytics
// returns Nop.
func New(opts Options, l *zap.Logger) Tracker {
	if !opts.Enabled {
		return Nop{}
	}
	var sink Tracker = NewLogTracker(l)
	if len(opts.Sinks) > 0 {
		sink = Multi(append([]Tracker{sink}, opts.Sinks...))
	}
	return NewSession(NewThrottled(sink, opts.EventsPerSecond, opts.Burst, l))
}

// Multi fans each event out to every tracker in order.
type Multi []Tracker

// Track implements Tracker. A panicking tracker does not stop the others.
func (m Multi) Track(ev Event) {
	for _, t := range m {
		Safe(t, ev)
	}
}

// Safe calls t.Track, recovering from any panic in the tracker.
func Safe(t Tracker, ev Event) {
	if t == nil {
		return
	}
	defer func() { _ = recover() }()
	t.Track(ev)
}
