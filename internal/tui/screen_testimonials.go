package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brightwell/svccat/internal/browse"
	"github.com/brightwell/svccat/internal/catalog"
	"github.com/brightwell/svccat/internal/query"
)

// TestimonialsScreenModel shows video testimonials by category with a
// detail modal for one story.
type TestimonialsScreenModel struct {
	browser *browse.TestimonialBrowser
	styles  Styles
	layout  Layout
	cursor  int
}

// NewTestimonialsScreenModel creates the testimonials screen.
func NewTestimonialsScreenModel(browser *browse.TestimonialBrowser, styles Styles) *TestimonialsScreenModel {
	return &TestimonialsScreenModel{
		browser: browser,
		styles:  styles,
		layout:  NewLayout(DefaultWidth, DefaultHeight),
	}
}

// SetLayout updates the terminal size.
func (m *TestimonialsScreenModel) SetLayout(l Layout) { m.layout = l }

// ModalOpen reports whether a testimonial is open.
func (m *TestimonialsScreenModel) ModalOpen() bool { return m.browser.Opened() != nil }

func (m *TestimonialsScreenModel) current() *catalog.VideoTestimonial {
	visible := m.browser.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return nil
	}
	return visible[m.cursor]
}

// Update handles key events.
func (m *TestimonialsScreenModel) Update(msg tea.KeyMsg) (*TestimonialsScreenModel, tea.Cmd) {
	if open := m.browser.Opened(); open != nil {
		switch msg.String() {
		case "esc", "enter":
			m.browser.Close()
		case " ", "p":
			m.browser.TogglePlay()
		case "m":
			m.browser.ToggleMute()
		case "l":
			m.browser.ToggleLike(open.ID)
		case "y":
			return m, copyToClipboard(open.ID, testimonialShareText(open))
		}
		return m, nil
	}

	switch msg.String() {
	case "right", "]", "tab":
		m.browser.CycleCategory(1)
		m.cursor = 0
	case "left", "[", "shift+tab":
		m.browser.CycleCategory(-1)
		m.cursor = 0
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.browser.Visible())-1 {
			m.cursor++
		}
	case "enter":
		if cur := m.current(); cur != nil {
			_ = m.browser.Open(cur.ID)
		}
	case "l":
		if cur := m.current(); cur != nil {
			m.browser.ToggleLike(cur.ID)
		}
	case "y":
		if cur := m.current(); cur != nil {
			return m, copyToClipboard(cur.ID, testimonialShareText(cur))
		}
	}
	return m, nil
}

func testimonialShareText(t *catalog.VideoTestimonial) string {
	return fmt.Sprintf("“%s”\n%s, %s at %s", t.Quote, t.Name, t.Title, t.Company)
}

// View renders the testimonials screen.
func (m *TestimonialsScreenModel) View() string {
	s := m.styles
	if open := m.browser.Opened(); open != nil {
		return m.renderModal(open)
	}

	visible := m.browser.Visible()
	header := s.Title.Render("Customer Stories") + "  " +
		s.Dim.Render(fmt.Sprintf("%d testimonials", len(visible)))
	categories := ChipBar("Category", query.TestimonialCategories, m.browser.Category(), s)

	var hero string
	if m.browser.ShowFeaturedHero() {
		var items []string
		for _, t := range m.browser.Featured() {
			quote := strings.Join(WrapText("“"+t.Quote+"”", CardWidth+10), "\n")
			items = append(items, s.Popular.Render("★ FEATURED")+"\n"+s.Quote.Render(quote)+"\n"+
				s.Bold.Render(t.Name)+s.Dim.Render(", "+t.Company))
		}
		hero = SectionBox("FEATURED STORIES", Grid{Columns: 2, Gap: 4, Items: items}.Render(), m.layout.ContentWidth, s)
	}

	var body string
	if len(visible) == 0 {
		body = s.Dim.Render("No testimonials in this category yet.")
	} else {
		rows := make([]string, len(visible))
		for i, t := range visible {
			rows[i] = m.renderRow(t, i == m.cursor)
		}
		body = strings.Join(rows, "\n\n")
	}

	return JoinVertical(1, header, categories, hero, body)
}

func (m *TestimonialsScreenModel) renderRow(t *catalog.VideoTestimonial, focused bool) string {
	s := m.styles
	cursor := "  "
	name := s.Bold.Render(t.Name)
	if focused {
		cursor = s.Selected.Render("> ")
		name = s.Selected.Render(t.Name)
	}

	head := cursor + name + s.Dim.Render(", "+t.Title+" · "+t.Company) + "  " + StarRating(t.Rating, s)
	meta := "    " + s.Dim.Render(t.Specialty)
	if t.Duration != "" {
		meta += s.Dim.Render("  ·  ▶ " + t.Duration)
	}
	meta += "  " + HeartIcon(m.browser.Liked(t.ID), s) + " " + fmt.Sprint(m.browser.Likes(t)) +
		s.Dim.Render(fmt.Sprintf("  💬 %d", t.Comments))
	quote := "    " + s.Quote.Render(Truncate("“"+t.Quote+"”", m.layout.ContentWidth-4))
	return strings.Join([]string{head, meta, quote}, "\n")
}

func (m *TestimonialsScreenModel) renderModal(t *catalog.VideoTestimonial) string {
	s := m.styles
	width := m.layout.ContentWidth - 4
	player := m.browser.Player()

	lines := []string{
		s.Title.Render(t.Name) + s.Dim.Render(", "+t.Title),
		s.Dim.Render(t.Company + " · " + t.Location + " · " + t.Specialty),
		"",
	}

	play := s.Dim.Render("⏸ Paused")
	if player.Playing {
		play = s.Success.Render("▶ Playing")
	}
	sound := s.Dim.Render("🔊 Sound on")
	if player.Muted {
		sound = s.Dim.Render("🔇 Muted")
	}
	video := play + "  " + sound
	if t.Duration != "" {
		video += "  " + s.Dim.Render(t.Duration)
	}
	lines = append(lines, video, "")

	for _, l := range WrapText("“"+t.Quote+"”", width) {
		lines = append(lines, s.Quote.Render(l))
	}
	lines = append(lines, "")

	metrics := Table{Headers: []string{"Revenue", "Claims accuracy", "Time saved"}, Rows: [][]string{{
		s.Success.Render(t.Metrics.RevenueIncrease),
		s.Success.Render(t.Metrics.ClaimsAccuracy),
		s.Success.Render(t.Metrics.TimesSaved),
	}}}
	lines = append(lines, metrics.Render(s))
	if len(t.Results) > 0 {
		lines = append(lines, "", BulletList(t.Results, "✓", s))
	}

	footer := StarRating(t.Rating, s) + "  " + HeartIcon(m.browser.Liked(t.ID), s) + " " + fmt.Sprint(m.browser.Likes(t))
	if rec, err := t.Recorded(); err == nil {
		footer += s.Dim.Render("  ·  recorded " + rec.Format("January 2006"))
	}
	lines = append(lines, "", footer)

	return SectionBox("TESTIMONIAL", strings.Join(lines, "\n"), m.layout.ContentWidth, s)
}

// Footer returns footer hints.
func (m *TestimonialsScreenModel) Footer() string {
	if m.ModalOpen() {
		return KeyHints([]KeyHint{
			{"Space", "Play/Pause"},
			{"m", "Mute"},
			{"l", "Like"},
			{"y", "Share"},
			{"Esc", "Close"},
		}, m.styles)
	}
	return KeyHints([]KeyHint{
		{"←/→", "Category"},
		{"j/k", "Move"},
		{"Enter", "Watch"},
		{"l", "Like"},
		{"Esc", "Services"},
	}, m.styles)
}
