package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/brightwell/svccat/internal/browse"
)

// SectionBox frames content in a rounded border with the title set into
// the top edge.
//
//	╭─ PRICING ────────────────────────╮
//	│ ...                              │
//	╰──────────────────────────────────╯
func SectionBox(title, content string, width int, s Styles) string {
	if width < 20 {
		width = 60
	}

	border := lipgloss.RoundedBorder()
	body := lipgloss.NewStyle().
		Border(border, false, true, true, true).
		BorderForeground(DefaultTheme.Border).
		Width(width-2).
		Padding(0, 1).
		Render(content)

	label := s.Header.Render(" " + title + " ")
	fill := max(width-3-lipgloss.Width(label), 0)
	edge := lipgloss.NewStyle().Foreground(DefaultTheme.Border)
	top := edge.Render(border.TopLeft+border.Top) + label +
		edge.Render(strings.Repeat(border.Top, fill)+border.TopRight)

	return top + "\n" + body
}

// Table is a borderless column table with a rule under the headers.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render returns "" when there are no rows.
func (t Table) Render(s Styles) string {
	if len(t.Headers) == 0 || len(t.Rows) == 0 {
		return ""
	}

	headers := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = s.SectionName.Render(h)
	}
	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		row := make([]string, len(t.Headers))
		copy(row, r)
		rows[i] = row
	}

	last := len(t.Headers) - 1
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Muted).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(true).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == last {
				return lipgloss.NewStyle()
			}
			return lipgloss.NewStyle().PaddingRight(2)
		}).
		Headers(headers...).
		Rows(rows...).
		Render()
}

// ProgressBar draws a 0-100 value as a bar after label.
//
//	Popularity ━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━  95%
func ProgressBar(label string, percent int, width int, s Styles) string {
	percent = min(max(percent, 0), 100)
	figure := fmt.Sprintf("%3d%%", percent)
	size := max(width-lipgloss.Width(label)-lipgloss.Width(figure)-2, 10)
	on := size * percent / 100

	return fmt.Sprintf("%s %s%s %s", label,
		s.Selected.Render(strings.Repeat("━", on)),
		s.Muted.Render(strings.Repeat("━", size-on)),
		s.Dim.Render(figure))
}

// TabBar renders the tabs as a row of boxes, highlighting selected.
//
//	┌──────────┐┌──────────┐┌─────────┐
//	│ Overview ││ Features ││ Pricing │
//	└──────────┘└──────────┘└─────────┘
func TabBar(tabs []string, selected int, s Styles) string {
	if len(tabs) == 0 {
		return ""
	}

	boxes := make([]string, len(tabs))
	for i, tab := range tabs {
		text := s.Dim
		frame := DefaultTheme.Border
		if i == selected {
			text = s.Selected
			frame = DefaultTheme.Focus
		}
		boxes[i] = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(frame).
			Width(max(lipgloss.Width(tab)+2, 8)).
			Align(lipgloss.Center).
			Render(text.Render(tab))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

// ChipBar renders a one-line choice of options with the active one bracketed.
//
//	Sort: [Most Popular] | Price | Name
func ChipBar(label string, options []string, active string, s Styles) string {
	parts := make([]string, len(options))
	for i, o := range options {
		if o == active {
			parts[i] = s.Selected.Render("[" + o + "]")
		} else {
			parts[i] = s.Dim.Render(o)
		}
	}
	return s.SectionName.Render(label+":") + " " + strings.Join(parts, s.Muted.Render(" | "))
}

// KeyHints renders a row of keyboard shortcuts.
//
//	[/] Search    [s] Sort    [q] Quit
func KeyHints(hints []KeyHint, s Styles) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, s.KeyBinding.Render("["+h.Key+"]")+" "+s.KeyHint.Render(h.Label))
	}
	return strings.Join(parts, "    ")
}

// KeyHint represents a keyboard shortcut hint.
type KeyHint struct {
	Key   string
	Label string
}

// StarRating renders filled and empty stars out of five.
//
//	★★★★☆
func StarRating(filled int, s Styles) string {
	filled = min(max(filled, 0), 5)
	return s.Star.Render(strings.Repeat("★", filled)) + s.Muted.Render(strings.Repeat("☆", 5-filled))
}

// BulletList renders one line per item with the given marker.
func BulletList(items []string, marker string, s Styles) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = s.Dim.Render(marker) + " " + item
	}
	return strings.Join(lines, "\n")
}

// ServiceCard renders one grid card.
//
//	╭──────────────────────────────────╮
//	│ AI-Powered Billing   Available   │
//	│ Revolutionary AI that processes… │
//	│ • Smart Claims Processing        │
//	│ Accuracy 99.8%                   │
//	│ ★★★★☆ 4.9/5        from $599/mo │
//	╰──────────────────────────────────╯
func ServiceCard(c browse.Card, focused bool, width int, s Styles) string {
	inner := max(width-4, 16)

	var lines []string
	title := s.Bold.Render(Truncate(c.Title, inner))
	if focused {
		title = s.Selected.Render(Truncate(c.Title, inner))
	}
	lines = append(lines, title)
	if badge := LabelBadge(c.Badge, s); badge != "" {
		lines = append(lines, badge)
	}

	if c.State.Expanded {
		for _, l := range WrapText(c.Description, inner) {
			lines = append(lines, s.Dim.Render(l))
		}
	} else {
		lines = append(lines, s.Dim.Render(Truncate(c.Description, inner)))
	}

	for _, f := range c.Features {
		lines = append(lines, s.Dim.Render("• ")+Truncate(f, inner-2))
	}
	for _, m := range c.Metrics {
		lines = append(lines, s.Dim.Render(m.Key+" ")+m.Value.String())
	}

	rating := StarRating(c.Stars(), s)
	if c.RatingText != "" {
		rating += " " + s.Dim.Render(Truncate(c.RatingText, 12))
	}
	price := s.Dim.Render("from ") + s.Price.Render(c.Price)
	gap := inner - lipgloss.Width(rating) - lipgloss.Width(price)
	if gap < 1 {
		lines = append(lines, rating, price)
	} else {
		lines = append(lines, rating+strings.Repeat(" ", gap)+price)
	}

	status := HeartIcon(c.State.Liked, s)
	if c.State.Shared {
		status += " " + s.Success.Render("shared")
	}
	lines = append(lines, status)

	style := s.Card
	if focused || c.State.Hovered {
		style = s.CardHovered
	}
	return style.Width(width - 2).Render(strings.Join(lines, "\n"))
}

// ServiceRow renders one dense list-mode row.
func ServiceRow(c browse.Card, focused bool, width int, s Styles) string {
	cursor := "  "
	title := padRight(Truncate(c.Title, 32), 32)
	if focused {
		cursor = s.Selected.Render("> ")
		title = s.Selected.Render(title)
	}
	badge := padRight(LabelBadge(c.Badge, s), 17)
	price := s.Price.Render(padRight(c.Price, 10))
	line := cursor + title + " " + badge + " " + price + " " +
		StarRating(c.Stars(), s) + " " + s.Dim.Render(fmt.Sprintf("%3d", c.Popularity)) + " " +
		HeartIcon(c.State.Liked, s)

	rest := width - lipgloss.Width(line) - 2
	if rest > 10 {
		line += "  " + s.Dim.Render(Truncate(c.Description, rest))
	}
	return line
}

// Divider renders a horizontal divider line.
func Divider(width int, s Styles) string {
	return s.Muted.Render(strings.Repeat("─", width))
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
