package browse

import (
	"strconv"
	"strings"

	"github.com/brightwell/svccat/internal/catalog"
)

// PreviewSize is the number of features and metrics shown on a card.
const PreviewSize = 3

// CardState is the per-card local UI state.
type CardState struct {
	Hovered  bool
	Liked    bool
	Shared   bool
	Expanded bool
}

// Card is the view model of one catalog record in the grid or list.
type Card struct {
	ID          string
	Title       string
	Description string
	// Price is the starter price display, e.g. "$599/mo" or "Custom".
	Price    string
	Features []string
	Metrics  []catalog.Attr
	// Badge is the availability label of the lead feature, or "".
	Badge  string
	Rating float64
	// RatingText is the satisfaction metric as written in the catalog.
	RatingText string
	Popularity int
	State      CardState
}

// NewCard builds the card view model for s.
func NewCard(s *catalog.ServiceDetail, state CardState) Card {
	c := Card{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.ShortDescription,
		Price:       PriceLabel(s.StartingPrice()),
		RatingText:  s.Metrics.Satisfaction,
		Rating:      leadingFloat(s.Metrics.Satisfaction),
		Popularity:  s.Popularity(),
		State:       state,
	}
	for _, f := range s.FeaturePreview(PreviewSize) {
		c.Features = append(c.Features, f.Name)
	}
	metrics := s.Metrics.List()
	if len(metrics) > PreviewSize {
		metrics = metrics[:PreviewSize]
	}
	c.Metrics = metrics
	if len(s.Features) > 0 {
		c.Badge = s.Features[0].Availability.Label()
	}
	return c
}

// Stars returns the number of filled rating stars out of five.
func (c Card) Stars() int {
	n := int(c.Rating)
	if n < 0 {
		return 0
	}
	if n > 5 {
		return 5
	}
	return n
}

// ShareText is the plain-text summary copied by the share action.
func (c Card) ShareText() string {
	var b strings.Builder
	b.WriteString(c.Title)
	b.WriteString("\n")
	if c.Description != "" {
		b.WriteString(c.Description)
		b.WriteString("\n")
	}
	b.WriteString("Starting from ")
	b.WriteString(c.Price)
	return b.String()
}

// PriceLabel formats a monthly plan price for display.
func PriceLabel(p catalog.Price) string {
	if p.IsCustom() {
		return p.String()
	}
	return p.String() + "/mo"
}

// leadingFloat parses the number at the start of s ("4.9/5 client rating"),
// returning 0 when there is none.
func leadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.') {
		end++
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}
