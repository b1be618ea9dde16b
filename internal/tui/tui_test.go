package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brightwell/svccat/internal/analytics"
	"github.com/brightwell/svccat/internal/browse"
	"github.com/brightwell/svccat/internal/catalog"
	"github.com/brightwell/svccat/internal/query"
	"github.com/brightwell/svccat/internal/roi"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) (*Model, *analytics.Recorder) {
	t.Helper()
	file, err := catalog.Default()
	if err != nil {
		t.Fatalf("load built-in catalog: %v", err)
	}
	tfile, err := catalog.DefaultTestimonials()
	if err != nil {
		t.Fatalf("load built-in testimonials: %v", err)
	}
	rec := &analytics.Recorder{}
	ctrl := browse.NewController(catalog.NewCatalog(file), browse.WithTracker(rec))
	reviews := browse.NewTestimonialBrowser(catalog.NewTestimonials(tfile), rec)
	m := NewModel(ctrl, reviews, nil)
	// Tall enough that no test content is scrolled out of view.
	m.Update(tea.WindowSizeMsg{Width: DefaultWidth, Height: 200})
	return m, rec
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

func TestNewModel(t *testing.T) {
	m, _ := newTestModel(t)
	if m.Screen() != ScreenServices {
		t.Errorf("initial screen = %d, want ScreenServices", m.Screen())
	}
	if m.Init() != nil {
		t.Error("Init should not schedule work")
	}

	view := m.View()
	for _, want := range []string{"Service Catalog", "3 of 3 services", "AI-Powered Billing Automation", "Most Popular"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestQuit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		m, _ := newTestModel(t)
		cmd := press(m, k)
		if cmd == nil {
			t.Fatalf("%s should return a command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s should quit", k)
		}
	}
}

func TestServicesListNavigation(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "v")
	if m.ctrl.ViewMode() != browse.ViewList {
		t.Fatalf("v should switch to list, got %q", m.ctrl.ViewMode())
	}

	press(m, "down")
	if got := m.services.Current().ID; got != "real-time-revenue-analytics" {
		t.Errorf("cursor on %q after down", got)
	}
	if !m.ctrl.CardState("real-time-revenue-analytics").Hovered {
		t.Error("card under the cursor should be hovered")
	}
	if m.ctrl.CardState("ai-powered-billing").Hovered {
		t.Error("hover should move off the previous card")
	}

	press(m, "down", "down", "down")
	if got := m.services.Current().ID; got != "recurring-billing-engine" {
		t.Errorf("cursor should stop on the last record, got %q", got)
	}

	press(m, "enter")
	if m.Screen() != ScreenDetail {
		t.Fatalf("enter should open the detail screen, got %d", m.Screen())
	}
	if m.ctrl.Selected().ID != "recurring-billing-engine" {
		t.Errorf("selected %q", m.ctrl.Selected().ID)
	}
}

func TestServicesGridMovesByRow(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	cols := m.layout.GridColumns()
	if cols != 2 {
		t.Fatalf("GridColumns() = %d at width 120, want 2", cols)
	}
	press(m, "down")
	if got := m.services.cursor; got != cols {
		t.Errorf("down in grid should move one row, cursor = %d", got)
	}
	press(m, "left")
	if got := m.services.cursor; got != cols-1 {
		t.Errorf("left should move one card, cursor = %d", got)
	}
}

func TestServicesSortKeepsCursorRecord(t *testing.T) {
	m, rec := newTestModel(t)

	press(m, "v", "down")
	id := m.services.Current().ID

	press(m, "s")
	if m.ctrl.Query().Sort != query.SortPrice {
		t.Fatalf("s should cycle to price, got %q", m.ctrl.Query().Sort)
	}
	if m.services.Current().ID != id {
		t.Errorf("cursor moved to %q, want it to stay on %q", m.services.Current().ID, id)
	}

	press(m, "f")
	if m.ctrl.Query().Filter != query.FilterAvailable {
		t.Errorf("f should cycle to available, got %q", m.ctrl.Query().Filter)
	}

	names := rec.Names()
	for _, want := range []string{analytics.EventViewModeChanged, analytics.EventSortChanged, analytics.EventFilterChanged} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
			}
		}
		if !found {
			t.Errorf("missing %s event in %v", want, names)
		}
	}
}

func TestServicesSearch(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "/")
	if !m.services.Searching() {
		t.Fatal("/ should focus the search box")
	}

	press(m, "recur")
	if got := m.ctrl.Query().Search; got != "recur" {
		t.Errorf("Search = %q, want recur", got)
	}
	if n := len(m.ctrl.Visible()); n != 1 {
		t.Errorf("visible = %d, want 1", n)
	}

	// Global keys are plain text while typing.
	press(m, "q")
	if got := m.ctrl.Query().Search; got != "recurq" {
		t.Errorf("q should be typed into the search, got %q", got)
	}
	if m.Screen() != ScreenServices {
		t.Error("typing should not change screens")
	}

	press(m, "esc")
	if m.services.Searching() {
		t.Error("esc should leave the search box")
	}
	if got := m.ctrl.Query().Search; got != "" {
		t.Errorf("esc should restore the previous search, got %q", got)
	}

	press(m, "/", "zzz", "enter")
	if m.services.Searching() {
		t.Error("enter should leave the search box")
	}
	if !strings.Contains(m.View(), "No services match") {
		t.Error("empty result should show the empty state")
	}

	press(m, "esc")
	if got := m.ctrl.Query().Search; got != "" {
		t.Errorf("esc outside the box should clear the search, got %q", got)
	}
	if n := len(m.ctrl.Visible()); n != 3 {
		t.Errorf("visible = %d after clearing, want 3", n)
	}
}

func TestServicesLikeAndExpand(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "l")
	if !m.ctrl.CardState("ai-powered-billing").Liked {
		t.Error("l should like the card under the cursor")
	}
	press(m, "e")
	if !m.ctrl.CardState("ai-powered-billing").Expanded {
		t.Error("e should expand the card")
	}
	press(m, "space")
	if m.ctrl.CardState("ai-powered-billing").Expanded {
		t.Error("space should collapse it again")
	}
}

func TestShare(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var copied string
		orig := writeClipboard
		writeClipboard = func(s string) error { copied = s; return nil }
		t.Cleanup(func() { writeClipboard = orig })

		m, rec := newTestModel(t)
		cmd := press(m, "y")
		if cmd == nil {
			t.Fatal("y should return a copy command")
		}
		m.Update(cmd())

		if !strings.HasPrefix(copied, "AI-Powered Billing Automation\n") || !strings.Contains(copied, "Starting from $599/mo") {
			t.Errorf("copied %q", copied)
		}
		if !m.ctrl.CardState("ai-powered-billing").Shared {
			t.Error("card should be marked shared")
		}
		if !strings.Contains(m.View(), "Copied to clipboard") {
			t.Error("status line should confirm the copy")
		}
		names := rec.Names()
		if len(names) == 0 || names[len(names)-1] != analytics.EventItemShared {
			t.Errorf("events = %v, want item_shared last", names)
		}
	})

	t.Run("failure", func(t *testing.T) {
		orig := writeClipboard
		writeClipboard = func(string) error { return errors.New("no clipboard") }
		t.Cleanup(func() { writeClipboard = orig })

		m, _ := newTestModel(t)
		m.Update(press(m, "y")())
		if m.ctrl.CardState("ai-powered-billing").Shared {
			t.Error("failed copy should not mark the card shared")
		}
		if !strings.Contains(m.View(), "Could not copy to clipboard: no clipboard") {
			t.Error("status line should report the failure")
		}

		press(m, "down")
		if m.status != "" {
			t.Error("the next key should clear the status")
		}
	})
}

func TestDetailTabs(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "enter")
	d := m.ctrl.Detail()
	if d.Tab() != browse.TabOverview {
		t.Fatalf("detail should open on Overview, got %v", d.Tab())
	}
	if !strings.Contains(m.View(), "KEY BENEFITS") {
		t.Error("overview should show benefits")
	}

	press(m, "tab")
	if d.Tab() != browse.TabFeatures {
		t.Errorf("tab should move to Features, got %v", d.Tab())
	}
	press(m, "shift+tab", "shift+tab")
	if d.Tab() != browse.TabSupport {
		t.Errorf("shift+tab should wrap to Support, got %v", d.Tab())
	}
	if !strings.Contains(m.View(), "SUPPORT CHANNELS") {
		t.Error("support tab should list channels")
	}
	press(m, "6")
	if d.Tab() != browse.TabCaseStudies {
		t.Errorf("6 should jump to Case Studies, got %v", d.Tab())
	}
}

func TestDetailBackAndReentry(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "v", "s")
	before := m.ctrl.Query()

	press(m, "enter", "3")
	if m.ctrl.Detail().Tab() != browse.TabPricing {
		t.Fatal("3 should open Pricing")
	}

	press(m, "esc")
	if m.Screen() != ScreenServices || m.ctrl.State() != browse.Browsing {
		t.Fatal("esc should return to the services screen")
	}
	if m.ctrl.Query() != before || m.ctrl.ViewMode() != browse.ViewList {
		t.Errorf("query changed across detail: %+v", m.ctrl.Query())
	}

	press(m, "enter")
	if m.ctrl.Detail().Tab() != browse.TabOverview {
		t.Errorf("re-entry should start on Overview, got %v", m.ctrl.Detail().Tab())
	}
}

func TestDetailPricingAndCalculator(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "enter", "3")
	d := m.ctrl.Detail()

	if d.Plan() != catalog.TierProfessional {
		t.Fatalf("default plan = %q, want the popular professional tier", d.Plan())
	}
	view := m.View()
	for _, want := range []string{"PLANS", "MOST POPULAR", "$1,299/mo", "Custom", "ADD-ONS"} {
		if !strings.Contains(view, want) {
			t.Errorf("pricing view missing %q", want)
		}
	}
	if strings.Contains(view, "ROI CALCULATOR") {
		t.Error("calculator should start hidden")
	}

	press(m, "c")
	if !d.CalculatorVisible() {
		t.Fatal("c should show the calculator")
	}
	if !strings.Contains(m.View(), "15%") {
		t.Error("default inputs on the professional plan should estimate 15%")
	}

	press(m, "]")
	if d.Plan() != catalog.TierEnterprise {
		t.Errorf("] should select enterprise, got %q", d.Plan())
	}
	if !strings.Contains(m.View(), "Contact Sales") {
		t.Error("custom priced plan should show Contact Sales")
	}

	press(m, "[", "[")
	if d.Plan() != catalog.TierStarter {
		t.Errorf("[ twice should select starter, got %q", d.Plan())
	}
	if !strings.Contains(m.View(), "150%") {
		t.Error("starter plan should estimate 150%")
	}
}

func TestDetailExpandFeatureAndFAQ(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "enter", "2")
	d := m.ctrl.Detail()
	s := d.Service()

	press(m, "down", "enter")
	if !d.FeatureExpanded(s.Features[1].ID) {
		t.Error("enter should expand the second feature")
	}
	if d.FeatureExpanded(s.Features[0].ID) {
		t.Error("other features stay collapsed")
	}

	press(m, "7")
	if m.detail.item != 0 {
		t.Error("switching tabs should reset the item cursor")
	}
	press(m, "enter")
	if !d.FAQExpanded(0) {
		t.Error("enter should expand the first FAQ")
	}
	if !strings.Contains(m.View(), s.FAQs[0].Answer[:20]) {
		t.Error("expanded FAQ should show its answer")
	}
}

func TestDetailROIForm(t *testing.T) {
	m, rec := newTestModel(t)
	press(m, "enter", "3")
	d := m.ctrl.Detail()

	press(m, "e")
	if !m.detail.Editing() {
		t.Fatal("e should open the ROI form")
	}
	if !d.CalculatorVisible() {
		t.Error("editing inputs should show the calculator")
	}
	if m.detail.formValues.costs != "5000" || m.detail.formValues.size != "medium" {
		t.Errorf("form should start from current inputs, got %+v", m.detail.formValues)
	}

	press(m, "q")
	if m.Screen() != ScreenDetail {
		t.Error("q inside the form should not quit or leave")
	}

	press(m, "esc")
	if m.detail.Editing() {
		t.Fatal("esc should cancel the form")
	}
	if d.Inputs() != roi.DefaultInputs() {
		t.Error("cancelling should keep the inputs")
	}

	press(m, "e")
	m.detail.formValues.costs = "$10,000"
	m.detail.formValues.volume = "-5"
	m.detail.applyForm(d)

	if m.detail.Editing() {
		t.Error("applying should close the form")
	}
	if got := d.Inputs(); got.CurrentCosts != 10000 || got.MonthlyVolume != 0 {
		t.Errorf("Inputs() = %+v", got)
	}
	if !strings.Contains(d.Notice(), "monthly volume") {
		t.Errorf("Notice() = %q, want the clamped field", d.Notice())
	}
	if !strings.Contains(m.View(), "negative values set to 0") {
		t.Error("view should show the clamp notice")
	}
	names := rec.Names()
	if names[len(names)-1] != analytics.EventROICalculated {
		t.Errorf("last event = %s, want roi_calculated", names[len(names)-1])
	}
}

func TestROIFormValues(t *testing.T) {
	tests := []struct {
		name    string
		values  roiFormValues
		want    roi.Inputs
		wantErr string
	}{
		{
			name:   "plain",
			values: roiFormValues{size: "small", volume: "250", costs: "3000", desired: "150"},
			want:   roi.Inputs{PracticeSize: roi.PracticeSmall, MonthlyVolume: 250, CurrentCosts: 3000, DesiredROI: 150},
		},
		{
			name:   "formatted",
			values: roiFormValues{size: "large", volume: "1,200", costs: "$5,000.50", desired: "200%"},
			want:   roi.Inputs{PracticeSize: roi.PracticeLarge, MonthlyVolume: 1200, CurrentCosts: 5000.5, DesiredROI: 200},
		},
		{
			name:   "negative kept for clamping",
			values: roiFormValues{size: "medium", volume: "-1", costs: "-20", desired: "0"},
			want:   roi.Inputs{PracticeSize: roi.PracticeMedium, MonthlyVolume: -1, CurrentCosts: -20},
		},
		{name: "bad size", values: roiFormValues{size: "huge", volume: "1", costs: "1", desired: "1"}, wantErr: "practice size"},
		{name: "bad volume", values: roiFormValues{size: "small", volume: "lots", costs: "1", desired: "1"}, wantErr: "monthly volume"},
		{name: "fractional volume", values: roiFormValues{size: "small", volume: "1.5", costs: "1", desired: "1"}, wantErr: "monthly volume"},
		{name: "empty costs", values: roiFormValues{size: "small", volume: "1", costs: "", desired: "1"}, wantErr: "current costs"},
		{name: "infinite costs", values: roiFormValues{size: "small", volume: "1", costs: "inf", desired: "1"}, wantErr: "current costs"},
		{name: "nan costs", values: roiFormValues{size: "small", volume: "1", costs: "NaN", desired: "1"}, wantErr: "current costs"},
		{name: "overflowing costs", values: roiFormValues{size: "small", volume: "1", costs: "1e400", desired: "1"}, wantErr: "current costs"},
		{name: "bad roi", values: roiFormValues{size: "small", volume: "1", costs: "1", desired: "high"}, wantErr: "desired ROI"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.values.Inputs()
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want mention of %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Inputs() = %+v, want %+v", got, tt.want)
			}
		})
	}

	v := newROIFormValues(roi.DefaultInputs())
	if in, err := v.Inputs(); err != nil || in != roi.DefaultInputs() {
		t.Errorf("round trip of defaults = %+v, %v", in, err)
	}
}

func TestTestimonialsScreen(t *testing.T) {
	m, rec := newTestModel(t)

	press(m, "t")
	if m.Screen() != ScreenTestimonials {
		t.Fatalf("t should open testimonials, got %d", m.Screen())
	}
	view := m.View()
	if !strings.Contains(view, "FEATURED STORIES") || !strings.Contains(view, "4 testimonials") {
		t.Error("All category should show the featured strip and every testimonial")
	}

	press(m, "right")
	if m.reviews.Category() != query.CategoryFeatured {
		t.Fatalf("right should move to Featured, got %q", m.reviews.Category())
	}
	if strings.Contains(m.View(), "FEATURED STORIES") {
		t.Error("featured strip only shows on All")
	}
	if n := len(m.reviews.Visible()); n != 2 {
		t.Errorf("featured visible = %d, want 2", n)
	}

	press(m, "enter")
	open := m.reviews.Opened()
	if open == nil || open.ID != "1" {
		t.Fatalf("enter should open testimonial 1, got %+v", open)
	}
	if p := m.reviews.Player(); p.Playing || !p.Muted {
		t.Errorf("modal should open paused and muted, got %+v", p)
	}

	press(m, "space", "m", "l")
	if p := m.reviews.Player(); !p.Playing || p.Muted {
		t.Errorf("player = %+v, want playing and unmuted", p)
	}
	if got := m.reviews.Likes(open); got != 128 {
		t.Errorf("likes = %d, want 128", got)
	}
	if !strings.Contains(m.View(), "▶ Playing") {
		t.Error("modal should show playback state")
	}

	press(m, "esc")
	if m.reviews.Opened() != nil {
		t.Fatal("esc should close the modal")
	}
	if m.Screen() != ScreenTestimonials {
		t.Error("closing the modal should stay on testimonials")
	}

	press(m, "esc")
	if m.Screen() != ScreenServices {
		t.Error("esc with no modal should return to services")
	}

	names := rec.Names()
	for _, want := range []string{analytics.EventTestimonialCategory, analytics.EventTestimonialOpened, analytics.EventItemLiked} {
		found := false
		for _, n := range names {
			found = found || n == want
		}
		if !found {
			t.Errorf("missing %s in %v", want, names)
		}
	}
}

func TestHelpOverlay(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "?")
	if !strings.Contains(m.View(), "KEYS") {
		t.Error("? should show the key reference")
	}
	press(m, "esc")
	if m.showHelp {
		t.Error("esc should hide the key reference")
	}
}

func TestMouseWheel(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "v")
	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	if m.services.cursor != 1 {
		t.Errorf("wheel down should move the cursor, got %d", m.services.cursor)
	}
	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp})
	if m.services.cursor != 0 {
		t.Errorf("wheel up should move back, got %d", m.services.cursor)
	}
}

func TestLayout(t *testing.T) {
	tests := []struct {
		width    int
		wantCols int
		wantW    int
	}{
		{40, 1, MinWidth},
		{80, 1, 80},
		{120, 2, 120},
		{200, 3, MaxWidth},
	}
	for _, tt := range tests {
		l := NewLayout(tt.width, 40)
		if l.Width != tt.wantW {
			t.Errorf("NewLayout(%d).Width = %d, want %d", tt.width, l.Width, tt.wantW)
		}
		if got := l.GridColumns(); got != tt.wantCols {
			t.Errorf("NewLayout(%d).GridColumns() = %d, want %d", tt.width, got, tt.wantCols)
		}
	}
}

func TestComponents(t *testing.T) {
	s := DefaultStyles

	if got := StarRating(4, s); strings.Count(got, "★") != 4 || strings.Count(got, "☆") != 1 {
		t.Errorf("StarRating(4) = %q", got)
	}
	if got := StarRating(9, s); strings.Count(got, "★") != 5 {
		t.Errorf("StarRating should cap at five, got %q", got)
	}

	if got := Truncate("Real-time Revenue Analytics", 10); got != "Real-time…" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate should leave short text, got %q", got)
	}

	lines := WrapText("one two three four five six", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six" {
		t.Errorf("WrapText lost words: %q", lines)
	}

	grid := Grid{Columns: 2, Gap: 1, Items: []string{"a", "b", "c"}}.Render()
	if grid != "a b\nc" {
		t.Errorf("Grid = %q", grid)
	}

	bar := TabBar([]string{"Overview", "Pricing"}, 1, s)
	if !strings.Contains(bar, "Overview") || strings.Count(bar, "\n") != 2 {
		t.Errorf("TabBar = %q", bar)
	}

	if LabelBadge("Beta Access", s) == "" || LabelBadge("", s) != "" {
		t.Error("LabelBadge should render known labels only")
	}
}
