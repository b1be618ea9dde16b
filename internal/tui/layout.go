package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	DefaultWidth  = 120
	DefaultHeight = 40
	MinWidth      = 60
	MaxWidth      = 160

	// CardWidth is the outer width of one grid card.
	CardWidth = 38
	// MaxColumns caps the grid at the three columns of a wide screen.
	MaxColumns = 3
)

// Layout is the usable area for the current terminal size.
type Layout struct {
	Width  int
	Height int

	ContentWidth  int
	ContentHeight int
}

// NewLayout clamps width to [MinWidth, MaxWidth] and reserves the chrome.
func NewLayout(width, height int) Layout {
	width = min(max(width, MinWidth), MaxWidth)

	return Layout{
		Width:  width,
		Height: height,
		// Room for the outer padding on both sides.
		ContentWidth: width - 4,
		// Room for the header, query bar and footer.
		ContentHeight: max(height-8, 10),
	}
}

// GridColumns returns how many cards fit side by side.
func (l Layout) GridColumns() int {
	cols := (l.ContentWidth + 2) / (CardWidth + 2)
	return min(max(cols, 1), MaxColumns)
}

// JoinVertical stacks the non-empty blocks with gap blank lines between
// them.
func JoinVertical(gap int, blocks ...string) string {
	kept := blocks[:0:0]
	for _, b := range blocks {
		if b != "" {
			kept = append(kept, b)
		}
	}
	return strings.Join(kept, strings.Repeat("\n", gap+1))
}

// Truncate shortens text to at most width cells, ending in an ellipsis.
// Widths under 4 leave the text alone.
func Truncate(text string, width int) string {
	if width < 4 || lipgloss.Width(text) <= width {
		return text
	}
	var b strings.Builder
	used := 0
	for _, r := range text {
		rw := lipgloss.Width(string(r))
		if used+rw > width-1 {
			break
		}
		b.WriteRune(r)
		used += rw
	}
	return strings.TrimRight(b.String(), " ") + "…"
}

// WrapText breaks text into lines of at most width cells on word
// boundaries. Blank input lines are kept; width has a floor of 10.
func WrapText(text string, width int) []string {
	width = max(width, 10)

	var out []string
	for _, para := range strings.Split(text, "\n") {
		line, lineWidth := "", 0
		for _, word := range strings.Fields(para) {
			ww := lipgloss.Width(word)
			switch {
			case line == "":
				line, lineWidth = word, ww
			case lineWidth+1+ww <= width:
				line += " " + word
				lineWidth += 1 + ww
			default:
				out = append(out, line)
				line, lineWidth = word, ww
			}
		}
		out = append(out, line)
	}
	return out
}

// Grid lays cards out in rows of Columns cells, Gap spaces apart.
type Grid struct {
	Columns int
	Gap     int
	Items   []string
}

// Render joins each row of items side by side and stacks the rows.
func (g Grid) Render() string {
	cols := max(g.Columns, 1)
	gap := strings.Repeat(" ", max(g.Gap, 1))
	if g.Gap < 1 {
		gap = "  "
	}

	rows := make([]string, 0, (len(g.Items)+cols-1)/cols)
	for i := 0; i < len(g.Items); i += cols {
		row := g.Items[i:min(i+cols, len(g.Items))]
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, intersperse(row, gap)...))
	}
	return strings.Join(rows, "\n")
}
