package tui

import (
	"fmt"
	"strings"

	"github.com/brightwell/svccat/internal/browse"
)

// RenderCards draws cards the way the services screen does, without a
// cursor or scrolling, for printing outside the TUI.
func RenderCards(cards []browse.Card, mode browse.ViewMode, width int) string {
	s := DefaultStyles
	l := NewLayout(width, DefaultHeight)

	if mode == browse.ViewList {
		lines := []string{
			s.Dim.Render(fmt.Sprintf("  %-32s %-17s %-10s %-5s %3s", "SERVICE", "STATUS", "FROM", "RATING", "POP")),
			Divider(l.ContentWidth, s),
		}
		for _, c := range cards {
			lines = append(lines, ServiceRow(c, false, l.ContentWidth, s))
		}
		return strings.Join(lines, "\n")
	}

	items := make([]string, len(cards))
	for i, c := range cards {
		items[i] = ServiceCard(c, false, CardWidth, s)
	}
	return Grid{Columns: l.GridColumns(), Gap: 2, Items: items}.Render()
}

// RenderDetail draws the open detail view of ctrl in full, for printing
// outside the TUI. It returns "" when nothing is selected.
func RenderDetail(ctrl *browse.Controller, width int) string {
	m := NewDetailScreenModel(ctrl, DefaultStyles)
	// Tall enough that the content window never scrolls.
	m.SetLayout(NewLayout(width, 10000))
	return m.View()
}
