package catalog

import (
	"fmt"
)

// Score bounds.
const (
	MaxPopularity   = 100
	MaxSatisfaction = 5.0
	MinRating       = 1
	MaxRating       = 5
)

// ValidationError represents a catalog validation finding.
type ValidationError struct {
	ID      string
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.ID, e.Field, e.Message)
}

// ValidationResult holds results from catalog validation.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// IsValid returns true if no errors were found.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) errorf(id, field, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{ID: id, Field: field, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(id, field, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{ID: id, Field: field, Message: fmt.Sprintf(format, args...)})
}

// Validate checks every service for bounded scores, ordered pricing and a
// single popular tier. It is an authoring check and never run while browsing.
func Validate(c *Catalog) *ValidationResult {
	result := &ValidationResult{}
	for _, s := range c.ListAll() {
		validateService(s, result)
	}
	return result
}

func validateService(s *ServiceDetail, result *ValidationResult) {
	if s.ShortDescription == "" {
		result.warnf(s.ID, "short_description", "empty, service will only match searches on its title")
	}
	if len(s.Features) == 0 {
		result.warnf(s.ID, "features", "no features, popularity sort will rank it as 0")
	}

	featureIDs := make(map[string]bool)
	for _, f := range s.Features {
		field := "features." + f.ID
		if featureIDs[f.ID] {
			result.errorf(s.ID, field, "duplicate feature id")
		}
		featureIDs[f.ID] = true

		if f.Popularity < 0 || f.Popularity > MaxPopularity {
			result.errorf(s.ID, field+".popularity", "%d out of range 0-%d", f.Popularity, MaxPopularity)
		}
		if f.SatisfactionScore < 0 || f.SatisfactionScore > MaxSatisfaction {
			result.errorf(s.ID, field+".satisfaction_score", "%.1f out of range 0-%.0f", f.SatisfactionScore, MaxSatisfaction)
		}
		if f.Complexity != "" && !f.Complexity.Valid() {
			result.warnf(s.ID, field+".complexity", "unknown complexity %q", f.Complexity)
		}
		validateFeaturePricing(s.ID, field+".pricing", f.Pricing, result)
	}

	validatePricing(s, result)

	caseIDs := make(map[string]bool)
	for i, cs := range s.CaseStudies {
		if cs.ID == "" {
			result.warnf(s.ID, fmt.Sprintf("case_studies[%d]", i), "missing id")
			continue
		}
		if caseIDs[cs.ID] {
			result.errorf(s.ID, "case_studies."+cs.ID, "duplicate case study id")
		}
		caseIDs[cs.ID] = true
	}

	for _, in := range s.Integrations {
		switch in.Type {
		case IntegrationNative, IntegrationAPI, IntegrationWebhook, IntegrationPlugin:
		default:
			result.warnf(s.ID, "integrations."+in.Name, "unknown integration type %q", in.Type)
		}
	}

	for _, a := range s.AddOns {
		if amount, ok := a.Price.Amount(); ok && amount < 0 {
			result.errorf(s.ID, "add_ons."+a.Name, "negative price %s", a.Price)
		}
	}

	for i, q := range s.FAQs {
		if q.Popularity < 0 || q.Popularity > MaxPopularity {
			result.warnf(s.ID, fmt.Sprintf("faqs[%d].popularity", i), "%d out of range 0-%d", q.Popularity, MaxPopularity)
		}
	}
}

func validateFeaturePricing(id, field string, p FeaturePricing, result *ValidationResult) {
	if p.Starter < 0 || p.Professional < 0 || p.Enterprise < 0 {
		result.errorf(id, field, "negative tier price")
		return
	}
	if p.Starter > p.Professional || p.Professional > p.Enterprise {
		result.errorf(id, field, "tiers must not decrease (starter %g, professional %g, enterprise %g)",
			p.Starter, p.Professional, p.Enterprise)
	}
}

func validatePricing(s *ServiceDetail, result *ValidationResult) {
	popular := 0
	for _, t := range Tiers {
		plan := s.Pricing.Plan(t)
		if amount, ok := plan.Price.Amount(); ok && amount < 0 {
			result.errorf(s.ID, "pricing."+string(t), "negative price %s", plan.Price)
		}
		if plan.Popular {
			popular++
		}
	}

	for i := 1; i < len(Tiers); i++ {
		lo, hi := s.Pricing.Plan(Tiers[i-1]), s.Pricing.Plan(Tiers[i])
		if lo.Price.Compare(hi.Price) > 0 {
			result.errorf(s.ID, "pricing."+string(Tiers[i]), "%s price %s is below %s price %s",
				Tiers[i], hi.Price, Tiers[i-1], lo.Price)
		}
	}

	switch {
	case popular == 0:
		result.errorf(s.ID, "pricing", "no tier marked popular")
	case popular > 1:
		result.errorf(s.ID, "pricing", "%d tiers marked popular, want exactly one", popular)
	}
}

// ValidateTestimonials checks ratings, dates and engagement counters.
func ValidateTestimonials(ts *Testimonials) *ValidationResult {
	result := &ValidationResult{}
	for _, t := range ts.ListAll() {
		if t.Rating < MinRating || t.Rating > MaxRating {
			result.errorf(t.ID, "rating", "%d out of range %d-%d", t.Rating, MinRating, MaxRating)
		}
		if _, err := t.Recorded(); err != nil {
			result.errorf(t.ID, "date_recorded", "%q is not a %s date", t.DateRecorded, DateLayout)
		}
		if t.Likes < 0 || t.Comments < 0 {
			result.errorf(t.ID, "engagement", "negative likes or comments")
		}
		if t.Specialty == "" {
			result.warnf(t.ID, "specialty", "empty, testimonial only appears under All and Featured")
		}
	}
	return result
}
