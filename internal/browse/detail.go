package browse

import (
	"fmt"

	"github.com/brightwell/svccat/internal/analytics"
	"github.com/brightwell/svccat/internal/catalog"
	"github.com/brightwell/svccat/internal/roi"
)

// Tab is one page of the detail view.
type Tab int

const (
	TabOverview Tab = iota
	TabFeatures
	TabPricing
	TabImplementation
	TabIntegrations
	TabCaseStudies
	TabSupport
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TabOverview, TabFeatures, TabPricing, TabImplementation, TabIntegrations, TabCaseStudies, TabSupport}

var tabNames = map[Tab]string{
	TabOverview:       "overview",
	TabFeatures:       "features",
	TabPricing:        "pricing",
	TabImplementation: "implementation",
	TabIntegrations:   "integrations",
	TabCaseStudies:    "case-studies",
	TabSupport:        "support",
}

var tabLabels = map[Tab]string{
	TabOverview:       "Overview",
	TabFeatures:       "Features",
	TabPricing:        "Pricing",
	TabImplementation: "Implementation",
	TabIntegrations:   "Integrations",
	TabCaseStudies:    "Case Studies",
	TabSupport:        "Support",
}

func (t Tab) String() string {
	if n, ok := tabNames[t]; ok {
		return n
	}
	return fmt.Sprintf("Tab(%d)", int(t))
}

// Label returns the tab title.
func (t Tab) Label() string {
	if l, ok := tabLabels[t]; ok {
		return l
	}
	return t.String()
}

// ParseTab converts a tab name such as "case-studies" to a Tab.
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs {
		if tabNames[t] == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown tab %q", s)
}

// Section names a block of content within a tab.
type Section string

const (
	SectionBenefits         Section = "benefits"
	SectionTechnicalSpecs   Section = "technical-specs"
	SectionCaseStudyPreview Section = "case-study-preview"
	SectionFeatures         Section = "features"
	SectionPlans            Section = "plans"
	SectionCalculator       Section = "calculator"
	SectionAddOns           Section = "add-ons"
	SectionPhases           Section = "phases"
	SectionRequirements     Section = "requirements"
	SectionSupportServices  Section = "support-services"
	SectionIntegrations     Section = "integrations"
	SectionCertifications   Section = "certifications"
	SectionCompliance       Section = "compliance"
	SectionCaseStudies      Section = "case-studies"
	SectionFAQs             Section = "faqs"
	SectionChannels         Section = "support-channels"
	SectionRoadmap          Section = "roadmap"
)

// SupportChannel is a way of reaching the support team.
type SupportChannel struct {
	Name         string
	Description  string
	Availability string
}

// SupportChannels are listed on every Support tab.
var SupportChannels = []SupportChannel{
	{Name: "Live Chat", Description: "Instant help from our support team", Availability: "24/7"},
	{Name: "Phone Support", Description: "Direct line to technical experts", Availability: "Business Hours"},
	{Name: "Email Support", Description: "Detailed technical assistance", Availability: "< 4hr response"},
	{Name: "Knowledge Base", Description: "Comprehensive documentation", Availability: "Always available"},
}

// Detail is the state of the detail view for one record. A new Detail is
// created every time a record is selected.
type Detail struct {
	service *catalog.ServiceDetail
	tab     Tab
	plan    catalog.Tier

	showCalculator bool
	inputs         roi.Inputs
	clamped        roi.Clamped
	calc           roi.Calculator

	features map[string]bool
	faqs     map[int]bool

	tracker analytics.Tracker
}

// NewDetail opens s on the Overview tab.
func NewDetail(s *catalog.ServiceDetail, calc roi.Calculator, tracker analytics.Tracker) *Detail {
	if tracker == nil {
		tracker = analytics.Nop{}
	}
	if calc.SavingsRate == 0 {
		calc = roi.New(roi.DefaultSavingsRate)
	}
	return &Detail{
		service:  s,
		tab:      TabOverview,
		plan:     DefaultPlan(s),
		inputs:   roi.DefaultInputs(),
		calc:     calc,
		features: make(map[string]bool),
		faqs:     make(map[int]bool),
		tracker:  tracker,
	}
}

// DefaultPlan returns the tier marked popular, or professional.
func DefaultPlan(s *catalog.ServiceDetail) catalog.Tier {
	if t, ok := s.Pricing.PopularTier(); ok {
		return t
	}
	return catalog.TierProfessional
}

// Service returns the record being viewed.
func (d *Detail) Service() *catalog.ServiceDetail { return d.service }

// Tab returns the active tab.
func (d *Detail) Tab() Tab { return d.tab }

// SetTab switches to t. Any tab is reachable from any other.
func (d *Detail) SetTab(t Tab) {
	if _, ok := tabNames[t]; !ok || t == d.tab {
		return
	}
	d.tab = t
	d.track(analytics.EventTabSwitched, t.String())
}

// NextTab moves to the following tab, wrapping after Support.
func (d *Detail) NextTab() {
	d.SetTab(Tabs[(int(d.tab)+1)%len(Tabs)])
}

// PrevTab moves to the preceding tab, wrapping before Overview.
func (d *Detail) PrevTab() {
	d.SetTab(Tabs[(int(d.tab)+len(Tabs)-1)%len(Tabs)])
}

// Plan returns the selected pricing tier.
func (d *Detail) Plan() catalog.Tier { return d.plan }

// SelectedPlan returns the selected pricing plan.
func (d *Detail) SelectedPlan() *catalog.PricingPlan { return d.service.Pricing.Plan(d.plan) }

// SelectPlan selects tier t.
func (d *Detail) SelectPlan(t catalog.Tier) {
	if t == d.plan {
		return
	}
	d.plan = t
	d.track(analytics.EventPlanSelected, string(t))
}

// CyclePlan selects the next tier by delta steps, wrapping.
func (d *Detail) CyclePlan(delta int) {
	idx := 0
	for i, t := range catalog.Tiers {
		if t == d.plan {
			idx = i
		}
	}
	n := len(catalog.Tiers)
	d.SelectPlan(catalog.Tiers[((idx+delta)%n+n)%n])
}

// CalculatorVisible reports whether the ROI calculator is shown.
func (d *Detail) CalculatorVisible() bool { return d.showCalculator }

// ToggleCalculator shows or hides the ROI calculator.
func (d *Detail) ToggleCalculator() {
	d.showCalculator = !d.showCalculator
	state := "hidden"
	if d.showCalculator {
		state = "shown"
	}
	d.track(analytics.EventCalculatorToggled, state)
}

// Inputs returns the calculator inputs after clamping.
func (d *Detail) Inputs() roi.Inputs { return d.inputs }

// Notice returns the inline message for clamped inputs, or "".
func (d *Detail) Notice() string { return d.clamped.Notice() }

// SetInputs replaces the calculator inputs, clamping negative values.
func (d *Detail) SetInputs(in roi.Inputs) {
	d.inputs, d.clamped = in.Clamp()
	res := d.ROI()
	d.track(analytics.EventROICalculated, res.String(), "plan", string(d.plan))
}

// ROI computes the calculator result for the selected plan.
func (d *Detail) ROI() roi.Result {
	return d.calc.Calculate(d.inputs, d.SelectedPlan().Price)
}

// ToggleFeature expands or collapses the feature card with id.
func (d *Detail) ToggleFeature(id string) {
	d.features[id] = !d.features[id]
}

// FeatureExpanded reports whether feature id is expanded.
func (d *Detail) FeatureExpanded(id string) bool { return d.features[id] }

// ToggleFAQ expands or collapses FAQ i.
func (d *Detail) ToggleFAQ(i int) {
	if i < 0 || i >= len(d.service.FAQs) {
		return
	}
	d.faqs[i] = !d.faqs[i]
}

// FAQExpanded reports whether FAQ i is expanded.
func (d *Detail) FAQExpanded(i int) bool { return d.faqs[i] }

// Sections returns the content blocks rendered for the active tab. Blocks
// backed by empty sequences are left out.
func (d *Detail) Sections() []Section {
	return SectionsFor(d.service, d.tab, d.showCalculator)
}

// SectionsFor returns the content blocks of tab t for s.
func SectionsFor(s *catalog.ServiceDetail, t Tab, calculator bool) []Section {
	var out []Section
	add := func(sec Section, present bool) {
		if present {
			out = append(out, sec)
		}
	}
	switch t {
	case TabOverview:
		add(SectionBenefits, len(s.Benefits) > 0)
		add(SectionTechnicalSpecs, len(s.TechnicalSpecs) > 0)
		_, ok := s.FirstCaseStudy()
		add(SectionCaseStudyPreview, ok)
	case TabFeatures:
		add(SectionFeatures, len(s.Features) > 0)
	case TabPricing:
		add(SectionCalculator, calculator)
		add(SectionPlans, true)
		add(SectionAddOns, s.HasAddOns())
	case TabImplementation:
		add(SectionPhases, len(s.Implementation.Phases) > 0)
		add(SectionRequirements, len(s.Implementation.Requirements) > 0)
		add(SectionSupportServices, len(s.Implementation.Support) > 0)
	case TabIntegrations:
		add(SectionIntegrations, len(s.Integrations) > 0)
		add(SectionCertifications, len(s.Certifications) > 0)
		add(SectionCompliance, len(s.Compliance) > 0)
	case TabCaseStudies:
		add(SectionCaseStudies, len(s.CaseStudies) > 0)
	case TabSupport:
		add(SectionFAQs, len(s.FAQs) > 0)
		add(SectionChannels, true)
		add(SectionRoadmap, s.HasRoadmap())
	}
	return out
}

func (d *Detail) track(name, label string, params ...string) {
	params = append(params, "service", d.service.ID)
	analytics.Safe(d.tracker, analytics.NewEvent(name, label, params...))
}
