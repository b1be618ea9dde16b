package browse

import (
	"slices"
	"testing"

	"github.com/brightwell/svccat/internal/analytics"
	"github.com/brightwell/svccat/internal/catalog"
	"github.com/brightwell/svccat/internal/query"
)

func newTestController(t *testing.T, opts ...Option) (*Controller, *analytics.Recorder) {
	t.Helper()
	file, err := catalog.Default()
	if err != nil {
		t.Fatalf("load built-in catalog: %v", err)
	}
	rec := &analytics.Recorder{}
	opts = append([]Option{WithTracker(rec)}, opts...)
	return NewController(catalog.NewCatalog(file), opts...), rec
}

func TestControllerDefaults(t *testing.T) {
	c, _ := newTestController(t)

	if c.State() != Browsing {
		t.Errorf("State() = %v, want browsing", c.State())
	}
	q := c.Query()
	if q.Sort != query.SortPopularity || q.Filter != query.FilterAll || q.Search != "" {
		t.Errorf("Query() = %+v, want defaults", q)
	}
	if c.ViewMode() != ViewGrid {
		t.Errorf("ViewMode() = %q, want grid", c.ViewMode())
	}
	if c.Detail() != nil || c.Selected() != nil {
		t.Error("nothing should be selected initially")
	}
}

func TestBackRestoresQueryState(t *testing.T) {
	c, _ := newTestController(t)

	c.SetSearch("billing")
	c.SetSort(query.SortPrice)
	c.SetFilter(query.FilterAvailable)
	c.SetViewMode(ViewList)
	before := c.Query()
	visibleBefore := c.Visible()

	if err := c.Select("ai-powered-billing"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if c.State() != Viewing {
		t.Fatalf("State() = %v, want viewing", c.State())
	}
	c.Detail().SetTab(TabPricing)
	c.Back()

	if c.State() != Browsing {
		t.Errorf("State() = %v after Back, want browsing", c.State())
	}
	if c.Query() != before {
		t.Errorf("Query() = %+v after Back, want %+v", c.Query(), before)
	}
	if c.ViewMode() != ViewList {
		t.Errorf("ViewMode() = %q after Back, want list", c.ViewMode())
	}
	if !slices.Equal(c.Visible(), visibleBefore) {
		t.Error("visible records changed across Select/Back")
	}
}

func TestReselectResetsToOverview(t *testing.T) {
	c, _ := newTestController(t)

	if err := c.Select("ai-powered-billing"); err != nil {
		t.Fatal(err)
	}
	c.Detail().SetTab(TabSupport)
	c.Detail().ToggleCalculator()
	c.Back()

	if err := c.Select("ai-powered-billing"); err != nil {
		t.Fatal(err)
	}
	if c.Detail().Tab() != TabOverview {
		t.Errorf("Tab() = %v on re-entry, want overview", c.Detail().Tab())
	}
	if c.Detail().CalculatorVisible() {
		t.Error("calculator should be hidden on re-entry")
	}
}

func TestSelectSameRecordIsNoop(t *testing.T) {
	c, rec := newTestController(t)

	if err := c.Select("ai-powered-billing"); err != nil {
		t.Fatal(err)
	}
	d := c.Detail()
	d.SetTab(TabFeatures)
	rec.Reset()

	if err := c.Select("ai-powered-billing"); err != nil {
		t.Fatal(err)
	}
	if c.Detail() != d {
		t.Error("selecting the open record created a new detail view")
	}
	if c.Detail().Tab() != TabFeatures {
		t.Errorf("Tab() = %v, want features kept", c.Detail().Tab())
	}
	if len(rec.Events()) != 0 {
		t.Errorf("unexpected events: %v", rec.Names())
	}
}

func TestSelectUnknown(t *testing.T) {
	c, _ := newTestController(t)
	if err := c.Select("no-such-service"); err == nil {
		t.Fatal("expected error")
	}
	if c.State() != Browsing {
		t.Error("failed select must not change state")
	}
}

func TestCycleQuery(t *testing.T) {
	c, _ := newTestController(t)

	var sorts []query.SortKey
	for i := 0; i < 3; i++ {
		c.CycleSort()
		sorts = append(sorts, c.Query().Sort)
	}
	if !slices.Equal(sorts, []query.SortKey{query.SortPrice, query.SortName, query.SortPopularity}) {
		t.Errorf("sort cycle = %v", sorts)
	}

	var filters []query.Filter
	for i := 0; i < 4; i++ {
		c.CycleFilter()
		filters = append(filters, c.Query().Filter)
	}
	want := []query.Filter{query.FilterAvailable, query.FilterBeta, query.FilterComingSoon, query.FilterAll}
	if !slices.Equal(filters, want) {
		t.Errorf("filter cycle = %v, want %v", filters, want)
	}

	c.ToggleViewMode()
	if c.ViewMode() != ViewList {
		t.Errorf("ViewMode() = %q, want list", c.ViewMode())
	}
	c.ToggleViewMode()
	if c.ViewMode() != ViewGrid {
		t.Errorf("ViewMode() = %q, want grid", c.ViewMode())
	}
}

func TestCardStateKeyedByID(t *testing.T) {
	c, _ := newTestController(t)

	c.ToggleLike("recurring-billing-engine")
	c.Hover("recurring-billing-engine")

	c.SetSort(query.SortPrice)
	cards := c.Cards()
	if cards[0].ID != "recurring-billing-engine" {
		t.Fatalf("first card = %s, want recurring-billing-engine", cards[0].ID)
	}
	if !cards[0].State.Liked || !cards[0].State.Hovered {
		t.Errorf("state lost after reorder: %+v", cards[0].State)
	}

	c.SetSort(query.SortPopularity)
	for _, card := range c.Cards() {
		liked := card.ID == "recurring-billing-engine"
		if card.State.Liked != liked {
			t.Errorf("%s Liked = %v, want %v", card.ID, card.State.Liked, liked)
		}
	}

	c.Hover("ai-powered-billing")
	if c.CardState("recurring-billing-engine").Hovered {
		t.Error("hover should move to the new card")
	}
}

func TestControllerEvents(t *testing.T) {
	c, rec := newTestController(t)

	c.SetSearch("billing")
	c.SetSearch("billing")
	c.SetSort(query.SortName)
	c.SetFilter(query.FilterBeta)
	c.SetViewMode(ViewList)
	_ = c.Select("real-time-revenue-analytics")
	c.MarkShared("real-time-revenue-analytics")

	want := []string{
		analytics.EventSearch,
		analytics.EventSortChanged,
		analytics.EventFilterChanged,
		analytics.EventViewModeChanged,
		analytics.EventServiceSelected,
		analytics.EventItemShared,
	}
	if got := rec.Names(); !slices.Equal(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
	if ev := rec.Events()[0]; ev.Label != "billing" || ev.Params["results"] != "2" {
		t.Errorf("search event = %+v", ev)
	}
}

func TestParseViewMode(t *testing.T) {
	if m, err := ParseViewMode("list"); err != nil || m != ViewList {
		t.Errorf("ParseViewMode(list) = %q, %v", m, err)
	}
	if _, err := ParseViewMode("table"); err == nil {
		t.Error("expected error for unknown view")
	}
}
