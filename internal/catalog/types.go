// Package catalog provides the service and testimonial catalog types and lookup.
package catalog

import (
	"fmt"
)

// Availability is the release state of a service feature.
type Availability string

const (
	AvailabilityAvailable      Availability = "available"
	AvailabilityBeta           Availability = "beta"
	AvailabilityComingSoon     Availability = "coming-soon"
	AvailabilityEnterpriseOnly Availability = "enterprise-only"
)

// Valid reports whether a is one of the known availability tags.
func (a Availability) Valid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityBeta, AvailabilityComingSoon, AvailabilityEnterpriseOnly:
		return true
	}
	return false
}

// Label returns the human label shown on badges.
func (a Availability) Label() string {
	switch a {
	case AvailabilityAvailable:
		return "Available Now"
	case AvailabilityBeta:
		return "Beta Access"
	case AvailabilityComingSoon:
		return "Coming Soon"
	case AvailabilityEnterpriseOnly:
		return "Enterprise Only"
	}
	return string(a)
}

// Complexity rates how involved a feature is to adopt.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
	ComplexityExpert Complexity = "expert"
)

// Valid reports whether c is one of the known complexity tags.
func (c Complexity) Valid() bool {
	switch c {
	case ComplexityLow, ComplexityMedium, ComplexityHigh, ComplexityExpert:
		return true
	}
	return false
}

// Tier names a pricing plan tier.
type Tier string

const (
	TierStarter      Tier = "starter"
	TierProfessional Tier = "professional"
	TierEnterprise   Tier = "enterprise"
)

// Tiers lists the pricing tiers in display order.
var Tiers = []Tier{TierStarter, TierProfessional, TierEnterprise}

// ParseTier converts a string to a Tier.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierStarter, TierProfessional, TierEnterprise:
		return Tier(s), nil
	}
	return "", fmt.Errorf("unknown pricing tier %q (want starter, professional or enterprise)", s)
}

// Label returns the capitalised tier name.
func (t Tier) Label() string {
	switch t {
	case TierStarter:
		return "Starter"
	case TierProfessional:
		return "Professional"
	case TierEnterprise:
		return "Enterprise"
	}
	return string(t)
}

// IntegrationType describes how a third-party system connects.
type IntegrationType string

const (
	IntegrationNative  IntegrationType = "native"
	IntegrationAPI     IntegrationType = "api"
	IntegrationWebhook IntegrationType = "webhook"
	IntegrationPlugin  IntegrationType = "plugin"
)

// FeaturePricing holds the per-tier monthly price of a single feature.
type FeaturePricing struct {
	Starter      float64 `yaml:"starter"`
	Professional float64 `yaml:"professional"`
	Enterprise   float64 `yaml:"enterprise"`
}

// ServiceFeature is one capability bundled into a service.
type ServiceFeature struct {
	ID                 string         `yaml:"id"`
	Name               string         `yaml:"name"`
	Description        string         `yaml:"description"`
	TechnicalDetails   string         `yaml:"technical_details,omitempty"`
	Benefits           []string       `yaml:"benefits,omitempty"`
	Requirements       []string       `yaml:"requirements,omitempty"`
	Integrations       []string       `yaml:"integrations,omitempty"`
	Pricing            FeaturePricing `yaml:"pricing"`
	Availability       Availability   `yaml:"availability"`
	Popularity         int            `yaml:"popularity"`
	Complexity         Complexity     `yaml:"complexity"`
	Category           string         `yaml:"category,omitempty"`
	Icon               string         `yaml:"icon,omitempty"`
	Color              string         `yaml:"color,omitempty"`
	EstimatedSetupTime string         `yaml:"estimated_setup_time,omitempty"`
	ROI                int            `yaml:"roi,omitempty"`
	SatisfactionScore  float64        `yaml:"satisfaction_score,omitempty"`
}

// PricingPlan is one tier of a service's pricing.
type PricingPlan struct {
	Price       Price    `yaml:"price"`
	Description string   `yaml:"description,omitempty"`
	Features    []string `yaml:"features,omitempty"`
	Limits      Attrs    `yaml:"limits,omitempty"`
	Popular     bool     `yaml:"popular,omitempty"`
}

// Pricing groups the three tiers of a service.
type Pricing struct {
	Starter      PricingPlan `yaml:"starter"`
	Professional PricingPlan `yaml:"professional"`
	Enterprise   PricingPlan `yaml:"enterprise"`
}

// Plan returns the plan for tier t.
func (p *Pricing) Plan(t Tier) *PricingPlan {
	switch t {
	case TierStarter:
		return &p.Starter
	case TierEnterprise:
		return &p.Enterprise
	default:
		return &p.Professional
	}
}

// PopularTier returns the first tier marked popular.
func (p *Pricing) PopularTier() (Tier, bool) {
	for _, t := range Tiers {
		if p.Plan(t).Popular {
			return t, true
		}
	}
	return "", false
}

// Phase is one step of an implementation plan.
type Phase struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description,omitempty"`
	Duration     string   `yaml:"duration,omitempty"`
	Deliverables []string `yaml:"deliverables,omitempty"`
	Milestones   []string `yaml:"milestones,omitempty"`
}

// Implementation describes how a service is rolled out.
type Implementation struct {
	Timeline     string   `yaml:"timeline"`
	Phases       []Phase  `yaml:"phases,omitempty"`
	Requirements []string `yaml:"requirements,omitempty"`
	Support      []string `yaml:"support,omitempty"`
}

// CaseResult is a single before/after metric from a case study.
type CaseResult struct {
	Metric      string `yaml:"metric"`
	Value       string `yaml:"value"`
	Improvement string `yaml:"improvement"`
}

// CaseStudy is a customer story attached to a service.
type CaseStudy struct {
	ID          string       `yaml:"id"`
	Client      string       `yaml:"client"`
	Industry    string       `yaml:"industry,omitempty"`
	Challenge   string       `yaml:"challenge,omitempty"`
	Solution    string       `yaml:"solution,omitempty"`
	Results     []CaseResult `yaml:"results,omitempty"`
	Testimonial string       `yaml:"testimonial,omitempty"`
	ClientLogo  string       `yaml:"client_logo,omitempty"`
}

// FAQ is a question and answer pair.
type FAQ struct {
	Question   string `yaml:"question"`
	Answer     string `yaml:"answer"`
	Category   string `yaml:"category,omitempty"`
	Popularity int    `yaml:"popularity,omitempty"`
}

// Metrics are display-only headline numbers for a service.
type Metrics struct {
	Accuracy     string `yaml:"accuracy,omitempty"`
	Efficiency   string `yaml:"efficiency,omitempty"`
	Satisfaction string `yaml:"satisfaction,omitempty"`
	Reliability  string `yaml:"reliability,omitempty"`
	Security     string `yaml:"security,omitempty"`
}

// List returns the non-empty metrics as label/value pairs in display order.
func (m Metrics) List() []Attr {
	all := []struct {
		label string
		value string
	}{
		{"Accuracy", m.Accuracy},
		{"Efficiency", m.Efficiency},
		{"Satisfaction", m.Satisfaction},
		{"Reliability", m.Reliability},
		{"Security", m.Security},
	}
	var out []Attr
	for _, a := range all {
		if a.value != "" {
			out = append(out, Attr{Key: a.label, Value: TextValue(a.value)})
		}
	}
	return out
}

// Integration is a third-party system the service connects to.
type Integration struct {
	Name       string          `yaml:"name"`
	Type       IntegrationType `yaml:"type"`
	Complexity string          `yaml:"complexity,omitempty"`
	SetupTime  string          `yaml:"setup_time,omitempty"`
	Logo       string          `yaml:"logo,omitempty"`
}

// AddOn is an optional paid extension.
type AddOn struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Price       Price    `yaml:"price"`
	Features    []string `yaml:"features,omitempty"`
}

// Competitor compares the service against an alternative.
type Competitor struct {
	Name       string `yaml:"name"`
	Comparison Attrs  `yaml:"comparison,omitempty"`
}

// RoadmapItem lists features planned for a quarter.
type RoadmapItem struct {
	Quarter  string   `yaml:"quarter"`
	Features []string `yaml:"features,omitempty"`
	Status   string   `yaml:"status,omitempty"`
}

// ServiceDetail is one catalog record.
type ServiceDetail struct {
	ID               string           `yaml:"id"`
	Title            string           `yaml:"title"`
	ShortDescription string           `yaml:"short_description"`
	FullDescription  string           `yaml:"full_description,omitempty"`
	Icon             string           `yaml:"icon,omitempty"`
	HeroImage        string           `yaml:"hero_image,omitempty"`
	VideoDemo        string           `yaml:"video_demo,omitempty"`
	InteractiveDemo  string           `yaml:"interactive_demo,omitempty"`
	Features         []ServiceFeature `yaml:"features,omitempty"`
	Benefits         []string         `yaml:"benefits,omitempty"`
	TechnicalSpecs   Attrs            `yaml:"technical_specs,omitempty"`
	Pricing          Pricing          `yaml:"pricing"`
	Implementation   Implementation   `yaml:"implementation"`
	CaseStudies      []CaseStudy      `yaml:"case_studies,omitempty"`
	FAQs             []FAQ            `yaml:"faqs,omitempty"`
	Metrics          Metrics          `yaml:"metrics"`
	Certifications   []string         `yaml:"certifications,omitempty"`
	Compliance       []string         `yaml:"compliance,omitempty"`
	Integrations     []Integration    `yaml:"integrations,omitempty"`
	AddOns           []AddOn          `yaml:"add_ons,omitempty"`
	Competitors      []Competitor     `yaml:"competitors,omitempty"`
	Roadmap          []RoadmapItem    `yaml:"roadmap,omitempty"`
}

// Popularity returns the popularity of the first feature, or 0 when the
// service has no features.
func (s *ServiceDetail) Popularity() int {
	if len(s.Features) == 0 {
		return 0
	}
	return s.Features[0].Popularity
}

// StartingPrice returns the starter tier price.
func (s *ServiceDetail) StartingPrice() Price {
	return s.Pricing.Starter.Price
}

// FirstCaseStudy returns the first case study if there is one.
func (s *ServiceDetail) FirstCaseStudy() (CaseStudy, bool) {
	if len(s.CaseStudies) == 0 {
		return CaseStudy{}, false
	}
	return s.CaseStudies[0], true
}

// HasAddOns reports whether the service offers add-ons.
func (s *ServiceDetail) HasAddOns() bool { return len(s.AddOns) > 0 }

// HasRoadmap reports whether the service has roadmap entries.
func (s *ServiceDetail) HasRoadmap() bool { return len(s.Roadmap) > 0 }

// HasFeatureWith reports whether any feature has availability a.
func (s *ServiceDetail) HasFeatureWith(a Availability) bool {
	for _, f := range s.Features {
		if f.Availability == a {
			return true
		}
	}
	return false
}

// FeaturePreview returns up to max features from the start of the list.
func (s *ServiceDetail) FeaturePreview(max int) []ServiceFeature {
	if max > len(s.Features) {
		max = len(s.Features)
	}
	out := make([]ServiceFeature, max)
	copy(out, s.Features[:max])
	return out
}

// File represents a services catalog YAML file.
type File struct {
	Version  int              `yaml:"version"`
	Name     string           `yaml:"name"`
	Services []*ServiceDetail `yaml:"services"`
}

// Validate checks the catalog file for structural consistency.
func (f *File) Validate() error {
	if f.Version != 1 {
		return fmt.Errorf("unsupported catalog version: %d", f.Version)
	}

	ids := make(map[string]bool)
	for i, s := range f.Services {
		if s == nil {
			return fmt.Errorf("service %d: empty record", i)
		}
		if s.ID == "" {
			return fmt.Errorf("service %d: missing id", i)
		}
		if ids[s.ID] {
			return fmt.Errorf("service %d: duplicate id %q", i, s.ID)
		}
		ids[s.ID] = true

		if s.Title == "" {
			return fmt.Errorf("service %q: missing title", s.ID)
		}
		for j, feat := range s.Features {
			if feat.ID == "" {
				return fmt.Errorf("service %q: feature %d: missing id", s.ID, j)
			}
			if !feat.Availability.Valid() {
				return fmt.Errorf("service %q: feature %q: unknown availability %q", s.ID, feat.ID, feat.Availability)
			}
		}
	}

	return nil
}
