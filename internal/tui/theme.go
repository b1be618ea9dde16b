package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/brightwell/svccat/internal/catalog"
)

// Theme is the colour palette. Each field names what it paints rather than
// the hue, so alternative palettes can be dropped in.
type Theme struct {
	Ink    lipgloss.Color // badge text on coloured backgrounds
	Text   lipgloss.Color
	Subtle lipgloss.Color
	Faint  lipgloss.Color

	Border lipgloss.Color
	Focus  lipgloss.Color

	Brand    lipgloss.Color
	Heading  lipgloss.Color
	Positive lipgloss.Color // available, positive ROI, prices
	Caution  lipgloss.Color // beta
	Negative lipgloss.Color
	Upcoming lipgloss.Color // coming soon
	Premium  lipgloss.Color // enterprise only
	Rating   lipgloss.Color // stars, popular plan
	Liked    lipgloss.Color
}

// DefaultTheme is a dark slate palette with a teal brand colour.
var DefaultTheme = Theme{
	Ink:    lipgloss.Color("#0f172a"),
	Text:   lipgloss.Color("#e2e8f0"),
	Subtle: lipgloss.Color("#94a3b8"),
	Faint:  lipgloss.Color("#475569"),

	Border: lipgloss.Color("#334155"),
	Focus:  lipgloss.Color("#2dd4bf"),

	Brand:    lipgloss.Color("#2dd4bf"),
	Heading:  lipgloss.Color("#a5b4fc"),
	Positive: lipgloss.Color("#4ade80"),
	Caution:  lipgloss.Color("#fbbf24"),
	Negative: lipgloss.Color("#f87171"),
	Upcoming: lipgloss.Color("#60a5fa"),
	Premium:  lipgloss.Color("#c084fc"),
	Rating:   lipgloss.Color("#facc15"),
	Liked:    lipgloss.Color("#f472b6"),
}

// Styles are the lipgloss styles every screen renders with.
type Styles struct {
	Dim   lipgloss.Style
	Muted lipgloss.Style
	Bold  lipgloss.Style

	Title       lipgloss.Style
	Header      lipgloss.Style
	SectionName lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	Selected   lipgloss.Style
	KeyBinding lipgloss.Style
	KeyHint    lipgloss.Style
	Footer     lipgloss.Style

	Card        lipgloss.Style
	CardHovered lipgloss.Style
	Price       lipgloss.Style
	Star        lipgloss.Style
	Like        lipgloss.Style
	Popular     lipgloss.Style
	Quote       lipgloss.Style

	BadgeAvailable  lipgloss.Style
	BadgeBeta       lipgloss.Style
	BadgeComingSoon lipgloss.Style
	BadgeEnterprise lipgloss.Style
}

// NewStyles derives the styles from t.
func NewStyles(t Theme) Styles {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	badge := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(t.Ink).Background(c).Padding(0, 1)
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	return Styles{
		Dim:   fg(t.Subtle),
		Muted: fg(t.Faint),
		Bold:  fg(t.Text).Bold(true),

		Title:       fg(t.Heading).Bold(true),
		Header:      fg(t.Brand).Bold(true),
		SectionName: fg(t.Subtle).Bold(true).Underline(true),

		Success: fg(t.Positive),
		Warning: fg(t.Caution),
		Error:   fg(t.Negative),

		Selected:   fg(t.Brand).Bold(true),
		KeyBinding: fg(t.Brand).Bold(true),
		KeyHint:    fg(t.Subtle),
		Footer:     fg(t.Faint),

		Card:        card,
		CardHovered: card.BorderForeground(t.Focus),
		Price:       fg(t.Positive).Bold(true),
		Star:        fg(t.Rating),
		Like:        fg(t.Liked),
		Popular:     fg(t.Rating).Bold(true),
		Quote:       fg(t.Text).Italic(true),

		BadgeAvailable:  badge(t.Positive),
		BadgeBeta:       badge(t.Caution),
		BadgeComingSoon: badge(t.Upcoming),
		BadgeEnterprise: badge(t.Premium),
	}
}

// DefaultStyles are built from DefaultTheme.
var DefaultStyles = NewStyles(DefaultTheme)

// AvailabilityBadge renders a colored availability label.
func AvailabilityBadge(a catalog.Availability, s Styles) string {
	switch a {
	case catalog.AvailabilityAvailable:
		return s.BadgeAvailable.Render(a.Label())
	case catalog.AvailabilityBeta:
		return s.BadgeBeta.Render(a.Label())
	case catalog.AvailabilityComingSoon:
		return s.BadgeComingSoon.Render(a.Label())
	case catalog.AvailabilityEnterpriseOnly:
		return s.BadgeEnterprise.Render(a.Label())
	}
	return ""
}

// LabelBadge renders the badge for an availability label as carried on a
// card, e.g. "Beta Access".
func LabelBadge(label string, s Styles) string {
	for _, a := range []catalog.Availability{
		catalog.AvailabilityAvailable,
		catalog.AvailabilityBeta,
		catalog.AvailabilityComingSoon,
		catalog.AvailabilityEnterpriseOnly,
	} {
		if a.Label() == label {
			return AvailabilityBadge(a, s)
		}
	}
	return ""
}

// CheckIcon is a green tick, or a red cross when !ok.
func CheckIcon(ok bool, s Styles) string {
	if !ok {
		return s.Error.Render("✗")
	}
	return s.Success.Render("✓")
}

// RadioIcon marks the chosen plan.
func RadioIcon(on bool, s Styles) string {
	if !on {
		return s.Dim.Render("○")
	}
	return s.Selected.Render("●")
}

// HeartIcon returns a filled heart when liked.
func HeartIcon(liked bool, s Styles) string {
	if liked {
		return s.Like.Render("♥")
	}
	return s.Dim.Render("♡")
}
