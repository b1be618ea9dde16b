// Package browse holds the catalog browsing state machines: the query and
// navigation controller, the tabbed detail view and the testimonial
// browser. It has no terminal dependencies.
package browse

import (
	"fmt"

	"github.com/brightwell/svccat/internal/analytics"
	"github.com/brightwell/svccat/internal/catalog"
	"github.com/brightwell/svccat/internal/query"
	"github.com/brightwell/svccat/internal/roi"
)

// ViewMode is the layout of the catalog listing.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// ParseViewMode converts a string to a ViewMode.
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case ViewGrid, ViewList:
		return ViewMode(s), nil
	}
	return "", fmt.Errorf("unknown view %q (want grid or list)", s)
}

// State is the navigation state.
type State int

const (
	Browsing State = iota
	Viewing
)

func (s State) String() string {
	switch s {
	case Browsing:
		return "browsing"
	case Viewing:
		return "viewing"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Controller owns the query state and the Browsing/Viewing navigation
// state. It is not safe for concurrent use.
type Controller struct {
	catalog *catalog.Catalog
	query   query.Query
	view    ViewMode

	selected *catalog.ServiceDetail
	detail   *Detail

	cards map[string]*CardState

	calc    roi.Calculator
	tracker analytics.Tracker
}

// Option configures a Controller.
type Option func(*Controller)

// WithTracker sets the analytics tracker.
func WithTracker(t analytics.Tracker) Option {
	return func(c *Controller) {
		if t != nil {
			c.tracker = t
		}
	}
}

// WithQuery sets the initial query.
func WithQuery(q query.Query) Option {
	return func(c *Controller) { c.query = q }
}

// WithViewMode sets the initial view mode.
func WithViewMode(m ViewMode) Option {
	return func(c *Controller) { c.view = m }
}

// WithCalculator sets the ROI calculator used by detail views.
func WithCalculator(calc roi.Calculator) Option {
	return func(c *Controller) { c.calc = calc }
}

// NewController starts in the Browsing state with the default query.
func NewController(cat *catalog.Catalog, opts ...Option) *Controller {
	c := &Controller{
		catalog: cat,
		query:   query.Default(),
		view:    ViewGrid,
		cards:   make(map[string]*CardState),
		calc:    roi.New(roi.DefaultSavingsRate),
		tracker: analytics.Nop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Catalog returns the catalog being browsed.
func (c *Controller) Catalog() *catalog.Catalog { return c.catalog }

// State returns Viewing when a record is selected.
func (c *Controller) State() State {
	if c.selected != nil {
		return Viewing
	}
	return Browsing
}

// Selected returns the selected record, or nil while browsing.
func (c *Controller) Selected() *catalog.ServiceDetail { return c.selected }

// Detail returns the detail view state, or nil while browsing.
func (c *Controller) Detail() *Detail { return c.detail }

// Query returns the current query.
func (c *Controller) Query() query.Query { return c.query }

// ViewMode returns the current layout.
func (c *Controller) ViewMode() ViewMode { return c.view }

// Visible returns the records matching the current query, in order.
func (c *Controller) Visible() []*catalog.ServiceDetail {
	return query.Apply(c.catalog.ListAll(), c.query)
}

// Cards returns the view models of the visible records.
func (c *Controller) Cards() []Card {
	visible := c.Visible()
	cards := make([]Card, len(visible))
	for i, s := range visible {
		cards[i] = NewCard(s, c.CardState(s.ID))
	}
	return cards
}

// SetSearch sets the free-text search term.
func (c *Controller) SetSearch(term string) {
	if term == c.query.Search {
		return
	}
	c.query.Search = term
	if term != "" {
		c.track(analytics.EventSearch, term, "results", fmt.Sprint(len(c.Visible())))
	}
}

// SetSort sets the sort key.
func (c *Controller) SetSort(k query.SortKey) {
	if k == c.query.Sort {
		return
	}
	c.query.Sort = k
	c.track(analytics.EventSortChanged, string(k))
}

// SetFilter sets the availability filter.
func (c *Controller) SetFilter(f query.Filter) {
	if f == c.query.Filter {
		return
	}
	c.query.Filter = f
	c.track(analytics.EventFilterChanged, string(f))
}

// SetViewMode sets the listing layout.
func (c *Controller) SetViewMode(m ViewMode) {
	if m == c.view {
		return
	}
	c.view = m
	c.track(analytics.EventViewModeChanged, string(m))
}

// CycleSort advances to the next sort key.
func (c *Controller) CycleSort() {
	c.SetSort(query.SortKeys[(indexOf(query.SortKeys, c.query.Sort)+1)%len(query.SortKeys)])
}

// CycleFilter advances to the next availability filter.
func (c *Controller) CycleFilter() {
	c.SetFilter(query.Filters[(indexOf(query.Filters, c.query.Filter)+1)%len(query.Filters)])
}

// ToggleViewMode switches between grid and list.
func (c *Controller) ToggleViewMode() {
	if c.view == ViewGrid {
		c.SetViewMode(ViewList)
	} else {
		c.SetViewMode(ViewGrid)
	}
}

// Select opens the record with id. An unknown id leaves the state
// unchanged.
func (c *Controller) Select(id string) error {
	s, ok := c.catalog.Lookup(id)
	if !ok {
		return fmt.Errorf("service %q not found", id)
	}
	c.SelectRecord(s)
	return nil
}

// SelectRecord opens s with a fresh detail view on the Overview tab.
// Selecting the record that is already open does nothing.
func (c *Controller) SelectRecord(s *catalog.ServiceDetail) {
	if s == nil || s == c.selected {
		return
	}
	c.selected = s
	c.detail = NewDetail(s, c.calc, c.tracker)
	c.track(analytics.EventServiceSelected, s.ID)
}

// Back returns to Browsing. The query and view mode are untouched.
func (c *Controller) Back() {
	c.selected = nil
	c.detail = nil
}

// CardState returns the local state of the card for id.
func (c *Controller) CardState(id string) CardState {
	if st, ok := c.cards[id]; ok {
		return *st
	}
	return CardState{}
}

func (c *Controller) card(id string) *CardState {
	st, ok := c.cards[id]
	if !ok {
		st = &CardState{}
		c.cards[id] = st
	}
	return st
}

// Hover marks the card for id as hovered and clears every other card.
func (c *Controller) Hover(id string) {
	for k, st := range c.cards {
		if k != id {
			st.Hovered = false
		}
	}
	if id != "" {
		c.card(id).Hovered = true
	}
}

// ToggleLike flips the liked flag of the card for id and returns it.
func (c *Controller) ToggleLike(id string) bool {
	st := c.card(id)
	st.Liked = !st.Liked
	if st.Liked {
		c.track(analytics.EventItemLiked, id)
	}
	return st.Liked
}

// ToggleExpanded flips the expanded flag of the card for id.
func (c *Controller) ToggleExpanded(id string) bool {
	st := c.card(id)
	st.Expanded = !st.Expanded
	return st.Expanded
}

// MarkShared records that the card for id was shared.
func (c *Controller) MarkShared(id string) {
	c.card(id).Shared = true
	c.track(analytics.EventItemShared, id)
}

func (c *Controller) track(name, label string, params ...string) {
	analytics.Safe(c.tracker, analytics.NewEvent(name, label, params...))
}

func indexOf[T comparable](list []T, v T) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return 0
}
