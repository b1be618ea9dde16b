package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/brightwell/svccat/internal/browse"
)

// Screen represents the current active screen.
type Screen int

const (
	ScreenServices Screen = iota
	ScreenDetail
	ScreenTestimonials
)

// Model is the main TUI model. It owns no browsing state of its own: the
// controller and testimonial browser hold it, and the screens map keys onto
// their operations.
type Model struct {
	ctrl    *browse.Controller
	reviews *browse.TestimonialBrowser
	log     *zap.Logger

	styles   Styles
	layout   Layout
	screen   Screen
	showHelp bool

	status    string
	statusErr bool

	services     *ServicesScreenModel
	detail       *DetailScreenModel
	testimonials *TestimonialsScreenModel
}

// NewModel creates a new TUI model. log may be nil.
func NewModel(ctrl *browse.Controller, reviews *browse.TestimonialBrowser, log *zap.Logger) *Model {
	if log == nil {
		log = zap.NewNop()
	}
	styles := DefaultStyles
	m := &Model{
		ctrl:         ctrl,
		reviews:      reviews,
		log:          log,
		styles:       styles,
		layout:       NewLayout(DefaultWidth, DefaultHeight),
		services:     NewServicesScreenModel(ctrl, styles),
		detail:       NewDetailScreenModel(ctrl, styles),
		testimonials: NewTestimonialsScreenModel(reviews, styles),
	}
	if ctrl.State() == browse.Viewing {
		m.screen = ScreenDetail
	}
	return m
}

// Screen returns the active screen.
func (m *Model) Screen() Screen { return m.screen }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = NewLayout(msg.Width, msg.Height)
		m.services.SetLayout(m.layout)
		m.detail.SetLayout(m.layout)
		m.testimonials.SetLayout(m.layout)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m.handleKey(tea.KeyMsg{Type: tea.KeyUp})
		case tea.MouseButtonWheelDown:
			return m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
		}
		return m, nil

	case clipboardCopyMsg:
		if msg.err != nil {
			m.log.Debug("clipboard copy failed", zap.String("item", msg.id), zap.Error(msg.err))
			m.setStatus("Could not copy to clipboard: "+msg.err.Error(), true)
			return m, nil
		}
		if _, ok := m.ctrl.Catalog().Lookup(msg.id); ok {
			m.ctrl.MarkShared(msg.id)
		}
		m.setStatus("Copied to clipboard", false)
		return m, nil
	}

	// Cursor blinks and form internals.
	switch {
	case m.screen == ScreenDetail && m.detail.Editing():
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	case m.screen == ScreenServices && m.services.Searching():
		var cmd tea.Cmd
		m.services.search, cmd = m.services.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// capturing reports whether keys belong to a focused text field.
func (m *Model) capturing() bool {
	switch m.screen {
	case ScreenServices:
		return m.services.Searching()
	case ScreenDetail:
		return m.detail.Editing()
	}
	return false
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	m.status = ""

	if !m.capturing() {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "t":
			if m.screen == ScreenServices {
				m.screen = ScreenTestimonials
				return m, nil
			}
		case "esc":
			if m.showHelp {
				m.showHelp = false
				return m, nil
			}
			if m.screen == ScreenTestimonials && !m.testimonials.ModalOpen() {
				m.screen = ScreenServices
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.screen {
	case ScreenServices:
		m.services, cmd = m.services.Update(msg)
		if m.ctrl.State() == browse.Viewing {
			m.screen = ScreenDetail
		}
	case ScreenDetail:
		m.detail, cmd = m.detail.Update(msg)
		if m.ctrl.State() == browse.Browsing {
			m.screen = ScreenServices
		}
	case ScreenTestimonials:
		m.testimonials, cmd = m.testimonials.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	s := m.styles

	var content, footer string
	switch m.screen {
	case ScreenServices:
		content, footer = m.services.View(), m.services.Footer()
	case ScreenDetail:
		content, footer = m.detail.View(), m.detail.Footer()
	case ScreenTestimonials:
		content, footer = m.testimonials.View(), m.testimonials.Footer()
	}

	nav := "Services"
	if m.screen == ScreenTestimonials {
		nav = "Testimonials"
	}
	top := s.Header.Render("svccat") + "  " + ChipBar("Browse", []string{"Services", "Testimonials"}, nav, s)

	var status string
	if m.status != "" {
		if m.statusErr {
			status = s.Error.Render(m.status)
		} else {
			status = s.Success.Render(m.status)
		}
	}

	var help string
	if m.showHelp {
		help = m.renderHelp()
	}

	return JoinVertical(1, top, content, status, help, s.Footer.Render(footer))
}

func (m *Model) renderHelp() string {
	t := Table{
		Headers: []string{"Key", "Services", "Details", "Testimonials"},
		Rows: [][]string{
			{"/", "search", "", ""},
			{"s f v", "sort, filter, grid/list", "", ""},
			{"enter", "open details", "expand item", "watch"},
			{"tab", "", "next tab", "next category"},
			{"[ ]", "", "change plan", "change category"},
			{"c e", "", "calculator, edit inputs", ""},
			{"l", "like", "", "like"},
			{"y", "share", "share", "share"},
			{"esc", "clear search", "back", "close / back"},
			{"t", "testimonials", "", ""},
			{"q", "quit", "quit", "quit"},
		},
	}
	return SectionBox("KEYS", t.Render(m.styles), m.layout.ContentWidth, m.styles)
}
