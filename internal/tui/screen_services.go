package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/brightwell/svccat/internal/browse"
	"github.com/brightwell/svccat/internal/catalog"
	"github.com/brightwell/svccat/internal/query"
)

// cardHeight is the approximate rendered height of a collapsed grid card,
// used to decide how many grid rows fit on screen.
const cardHeight = 10

// ServicesScreenModel is the searchable grid or list of services.
type ServicesScreenModel struct {
	ctrl   *browse.Controller
	styles Styles
	layout Layout

	cursor int
	scroll int

	search     textinput.Model
	searching  bool
	prevSearch string
}

// NewServicesScreenModel creates the services screen over ctrl.
func NewServicesScreenModel(ctrl *browse.Controller, styles Styles) *ServicesScreenModel {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search services..."
	ti.CharLimit = 64
	ti.SetValue(ctrl.Query().Search)

	m := &ServicesScreenModel{
		ctrl:   ctrl,
		styles: styles,
		layout: NewLayout(DefaultWidth, DefaultHeight),
		search: ti,
	}
	m.hover()
	return m
}

// SetLayout updates the terminal size.
func (m *ServicesScreenModel) SetLayout(l Layout) {
	m.layout = l
	m.adjustScroll()
}

// Searching reports whether the search box has focus.
func (m *ServicesScreenModel) Searching() bool { return m.searching }

// Current returns the record under the cursor, or nil when nothing matches.
func (m *ServicesScreenModel) Current() *catalog.ServiceDetail {
	visible := m.ctrl.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return nil
	}
	return visible[m.cursor]
}

// Update handles key events.
func (m *ServicesScreenModel) Update(msg tea.KeyMsg) (*ServicesScreenModel, tea.Cmd) {
	if m.searching {
		return m.handleSearchInput(msg)
	}

	step := 1
	if m.ctrl.ViewMode() == browse.ViewGrid {
		step = m.layout.GridColumns()
	}

	switch msg.String() {
	case "/":
		m.searching = true
		m.prevSearch = m.search.Value()
		return m, m.search.Focus()
	case "up", "k":
		m.move(-step)
	case "down", "j":
		m.move(step)
	case "left":
		m.move(-1)
	case "right":
		m.move(1)
	case "home", "g":
		m.moveTo(0)
	case "end", "G":
		m.moveTo(len(m.ctrl.Visible()) - 1)
	case "enter":
		if cur := m.Current(); cur != nil {
			m.ctrl.SelectRecord(cur)
		}
	case "s":
		m.keepCursor(m.ctrl.CycleSort)
	case "f":
		m.keepCursor(m.ctrl.CycleFilter)
	case "v":
		m.ctrl.ToggleViewMode()
		m.adjustScroll()
	case "l":
		if cur := m.Current(); cur != nil {
			m.ctrl.ToggleLike(cur.ID)
		}
	case "e", " ":
		if cur := m.Current(); cur != nil {
			m.ctrl.ToggleExpanded(cur.ID)
		}
	case "y":
		if cur := m.Current(); cur != nil {
			card := browse.NewCard(cur, m.ctrl.CardState(cur.ID))
			return m, copyToClipboard(cur.ID, card.ShareText())
		}
	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.keepCursor(func() { m.ctrl.SetSearch("") })
		}
	}
	return m, nil
}

func (m *ServicesScreenModel) handleSearchInput(msg tea.KeyMsg) (*ServicesScreenModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue(m.prevSearch)
		m.ctrl.SetSearch(m.prevSearch)
		m.moveTo(0)
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.ctrl.SetSearch(strings.TrimSpace(m.search.Value()))
	m.moveTo(0)
	return m, cmd
}

// keepCursor runs change and keeps the cursor on the same record when it is
// still visible.
func (m *ServicesScreenModel) keepCursor(change func()) {
	var id string
	if cur := m.Current(); cur != nil {
		id = cur.ID
	}
	change()
	for i, s := range m.ctrl.Visible() {
		if s.ID == id {
			m.moveTo(i)
			return
		}
	}
	m.moveTo(0)
}

func (m *ServicesScreenModel) move(delta int) {
	n := len(m.ctrl.Visible())
	if n == 0 {
		return
	}
	next := m.cursor + delta
	if next < 0 || next >= n {
		return
	}
	m.moveTo(next)
}

func (m *ServicesScreenModel) moveTo(i int) {
	n := len(m.ctrl.Visible())
	m.cursor = min(max(i, 0), max(n-1, 0))
	m.adjustScroll()
	m.hover()
}

func (m *ServicesScreenModel) hover() {
	if cur := m.Current(); cur != nil {
		m.ctrl.Hover(cur.ID)
	} else {
		m.ctrl.Hover("")
	}
}

// visibleRows is the number of grid rows or list lines that fit.
func (m *ServicesScreenModel) visibleRows() int {
	if m.ctrl.ViewMode() == browse.ViewGrid {
		return max(m.layout.ContentHeight/cardHeight, 1)
	}
	return max(m.layout.ContentHeight-2, 3)
}

func (m *ServicesScreenModel) cursorRow() int {
	if m.ctrl.ViewMode() == browse.ViewGrid {
		return m.cursor / m.layout.GridColumns()
	}
	return m.cursor
}

func (m *ServicesScreenModel) adjustScroll() {
	row, rows := m.cursorRow(), m.visibleRows()
	if row < m.scroll {
		m.scroll = row
	} else if row >= m.scroll+rows {
		m.scroll = row - rows + 1
	}
}

// View renders the services screen.
func (m *ServicesScreenModel) View() string {
	s := m.styles
	cards := m.ctrl.Cards()

	header := s.Title.Render("Service Catalog") + "  " +
		s.Dim.Render(fmt.Sprintf("%d of %d services", len(cards), m.ctrl.Catalog().Len()))

	var searchLine string
	switch {
	case m.searching:
		searchLine = m.search.View()
	case m.search.Value() != "":
		searchLine = s.SectionName.Render("Search:") + " " + m.search.Value() + "  " + s.Dim.Render("(esc to clear)")
	default:
		searchLine = s.Dim.Render("Press / to search")
	}

	q := m.ctrl.Query()
	var sorts, filters []string
	for _, k := range query.SortKeys {
		sorts = append(sorts, k.Label())
	}
	for _, f := range query.Filters {
		filters = append(filters, f.Label())
	}
	bars := ChipBar("Sort", sorts, q.Sort.Label(), s) + "\n" +
		ChipBar("Filter", filters, q.Filter.Label(), s) + "\n" +
		ChipBar("View", []string{"Grid", "List"}, viewLabel(m.ctrl.ViewMode()), s)

	var body string
	switch {
	case len(cards) == 0:
		body = s.Warning.Render("No services match the current search and filter.") + "\n" +
			s.Dim.Render("Press esc to clear the search or f to change the filter.")
	case m.ctrl.ViewMode() == browse.ViewGrid:
		body = m.renderGrid(cards)
	default:
		body = m.renderList(cards)
	}

	return JoinVertical(1, header, searchLine, bars, body)
}

func (m *ServicesScreenModel) renderGrid(cards []browse.Card) string {
	cols := m.layout.GridColumns()
	start := m.scroll * cols
	end := min(start+m.visibleRows()*cols, len(cards))

	items := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		items = append(items, ServiceCard(cards[i], i == m.cursor, CardWidth, m.styles))
	}
	out := Grid{Columns: cols, Gap: 2, Items: items}.Render()
	if end < len(cards) || start > 0 {
		out += "\n" + m.styles.Dim.Render(fmt.Sprintf("  %d/%d", m.cursor+1, len(cards)))
	}
	return out
}

func (m *ServicesScreenModel) renderList(cards []browse.Card) string {
	s := m.styles
	var b strings.Builder
	b.WriteString(s.Dim.Render(fmt.Sprintf("  %-32s %-17s %-10s %-5s %3s", "SERVICE", "STATUS", "FROM", "RATING", "POP")))
	b.WriteString("\n")
	b.WriteString(Divider(m.layout.ContentWidth, s))

	end := min(m.scroll+m.visibleRows(), len(cards))
	for i := m.scroll; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(ServiceRow(cards[i], i == m.cursor, m.layout.ContentWidth, s))
	}
	if end < len(cards) || m.scroll > 0 {
		b.WriteString("\n\n")
		b.WriteString(s.Dim.Render(fmt.Sprintf("  %d/%d", m.cursor+1, len(cards))))
	}
	return b.String()
}

func viewLabel(v browse.ViewMode) string {
	if v == browse.ViewList {
		return "List"
	}
	return "Grid"
}

// Footer returns footer hints.
func (m *ServicesScreenModel) Footer() string {
	if m.searching {
		return KeyHints([]KeyHint{
			{"Enter", "Apply"},
			{"Esc", "Cancel"},
		}, m.styles)
	}
	return KeyHints([]KeyHint{
		{"/", "Search"},
		{"s", "Sort"},
		{"f", "Filter"},
		{"v", "View"},
		{"Enter", "Details"},
		{"l", "Like"},
		{"y", "Share"},
		{"t", "Testimonials"},
		{"q", "Quit"},
	}, m.styles)
}
