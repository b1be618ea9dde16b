package report

import (
	"time"

	"github.com/brightwell/svccat/internal/browse"
	"github.com/brightwell/svccat/internal/catalog"
	"github.com/brightwell/svccat/internal/query"
	"github.com/brightwell/svccat/internal/roi"
)

// Now is the clock used for GeneratedAt. Tests replace it.
var Now = time.Now

// FormatTimestamp returns a RFC3339 UTC timestamp string.
func FormatTimestamp() string {
	return Now().UTC().Format(time.RFC3339)
}

// CatalogReport is the machine-readable form of a catalog listing.
type CatalogReport struct {
	GeneratedAt string         `json:"generated_at"`
	Catalog     string         `json:"catalog"`
	Source      string         `json:"source"`
	Search      string         `json:"search,omitempty"`
	Sort        string         `json:"sort"`
	Filter      string         `json:"filter"`
	Total       int            `json:"total"`
	Matched     int            `json:"matched"`
	Services    []ServiceEntry `json:"services"`
}

// ServiceEntry is one service card.
type ServiceEntry struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Price        string            `json:"price"`
	Availability string            `json:"availability,omitempty"`
	Popularity   int               `json:"popularity"`
	Rating       float64           `json:"rating"`
	Features     []string          `json:"features,omitempty"`
	Metrics      map[string]string `json:"metrics,omitempty"`
}

// NewCatalogReport builds a report from the cards of a listing.
func NewCatalogReport(cat *catalog.Catalog, src catalog.Source, q query.Query, cards []browse.Card) CatalogReport {
	r := CatalogReport{
		GeneratedAt: FormatTimestamp(),
		Catalog:     cat.File().Name,
		Source:      src.String(),
		Search:      q.Search,
		Sort:        string(q.Sort),
		Filter:      string(q.Filter),
		Total:       cat.Len(),
		Matched:     len(cards),
		Services:    make([]ServiceEntry, 0, len(cards)),
	}
	for _, c := range cards {
		e := ServiceEntry{
			ID:           c.ID,
			Title:        c.Title,
			Description:  c.Description,
			Price:        c.Price,
			Availability: c.Badge,
			Popularity:   c.Popularity,
			Rating:       c.Rating,
			Features:     c.Features,
		}
		if len(c.Metrics) > 0 {
			e.Metrics = make(map[string]string, len(c.Metrics))
			for _, m := range c.Metrics {
				e.Metrics[m.Key] = m.Value.String()
			}
		}
		r.Services = append(r.Services, e)
	}
	return r
}

// ROIReport is the machine-readable form of an ROI estimate.
type ROIReport struct {
	GeneratedAt string      `json:"generated_at"`
	Service     string      `json:"service"`
	Inputs      ROIInputs   `json:"inputs"`
	SavingsRate float64     `json:"savings_rate"`
	Selected    string      `json:"selected_plan"`
	Notice      string      `json:"notice,omitempty"`
	Plans       []PlanEntry `json:"plans"`
}

// ROIInputs are the clamped calculator inputs.
type ROIInputs struct {
	PracticeSize  string  `json:"practice_size"`
	MonthlyVolume int     `json:"monthly_volume"`
	CurrentCosts  float64 `json:"current_costs"`
	DesiredROI    int     `json:"desired_roi"`
}

// PlanEntry is the estimate for one plan. ROIPercent is nil unless the
// outcome is an estimate.
type PlanEntry struct {
	Tier           string   `json:"tier"`
	Name           string   `json:"name"`
	Price          string   `json:"price"`
	PriceKind      string   `json:"price_kind"`
	Result         string   `json:"result"`
	ROIPercent     *int     `json:"roi_percent,omitempty"`
	MonthlySavings *float64 `json:"monthly_savings,omitempty"`
	AnnualNet      *float64 `json:"annual_net,omitempty"`
}

// NewROIReport runs calc for every plan of svc.
func NewROIReport(svc *catalog.ServiceDetail, selected catalog.Tier, in roi.Inputs, calc roi.Calculator) ROIReport {
	in, clamped := in.Clamp()
	r := ROIReport{
		GeneratedAt: FormatTimestamp(),
		Service:     svc.ID,
		Inputs: ROIInputs{
			PracticeSize:  string(in.PracticeSize),
			MonthlyVolume: in.MonthlyVolume,
			CurrentCosts:  in.CurrentCosts,
			DesiredROI:    in.DesiredROI,
		},
		SavingsRate: calc.SavingsRate,
		Selected:    string(selected),
		Notice:      clamped.Notice(),
	}
	for _, t := range catalog.Tiers {
		plan := svc.Pricing.Plan(t)
		res := calc.Calculate(in, plan.Price)
		e := PlanEntry{
			Tier:      string(t),
			Name:      t.Label(),
			Price:     browse.PriceLabel(plan.Price),
			PriceKind: plan.Price.Kind().String(),
			Result:    res.String(),
		}
		if res.Outcome == roi.Estimated {
			pct, savings, net := res.Percent, res.MonthlySavings, res.AnnualNet
			e.ROIPercent = &pct
			e.MonthlySavings = &savings
			e.AnnualNet = &net
		}
		r.Plans = append(r.Plans, e)
	}
	return r
}

// ValidationReport is the machine-readable form of catalog validate.
type ValidationReport struct {
	GeneratedAt        string    `json:"generated_at"`
	Catalog            string    `json:"catalog"`
	CatalogSource      string    `json:"catalog_source"`
	Services           int       `json:"services"`
	TestimonialsSource string    `json:"testimonials_source"`
	Testimonials       int       `json:"testimonials"`
	Pass               bool      `json:"pass"`
	Errors             []Finding `json:"errors"`
	Warnings           []Finding `json:"warnings"`
}

// Finding is one validation error or warning.
type Finding struct {
	ID      string `json:"id"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Findings converts validation errors.
func Findings(list []catalog.ValidationError) []Finding {
	out := make([]Finding, 0, len(list))
	for _, e := range list {
		out = append(out, Finding{ID: e.ID, Field: e.Field, Message: e.Message})
	}
	return out
}
