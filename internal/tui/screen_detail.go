package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/brightwell/svccat/internal/browse"
	"github.com/brightwell/svccat/internal/catalog"
	"github.com/brightwell/svccat/internal/roi"
)

var sectionTitles = map[browse.Section]string{
	browse.SectionBenefits:         "KEY BENEFITS",
	browse.SectionTechnicalSpecs:   "TECHNICAL SPECIFICATIONS",
	browse.SectionCaseStudyPreview: "SUCCESS STORY",
	browse.SectionFeatures:         "FEATURES",
	browse.SectionPlans:            "PLANS",
	browse.SectionCalculator:       "ROI CALCULATOR",
	browse.SectionAddOns:           "ADD-ONS",
	browse.SectionPhases:           "IMPLEMENTATION PHASES",
	browse.SectionRequirements:     "REQUIREMENTS",
	browse.SectionSupportServices:  "INCLUDED SUPPORT",
	browse.SectionIntegrations:     "INTEGRATIONS",
	browse.SectionCertifications:   "CERTIFICATIONS",
	browse.SectionCompliance:       "COMPLIANCE",
	browse.SectionCaseStudies:      "CASE STUDIES",
	browse.SectionFAQs:             "FREQUENTLY ASKED QUESTIONS",
	browse.SectionChannels:         "SUPPORT CHANNELS",
	browse.SectionRoadmap:          "ROADMAP",
}

// DetailScreenModel renders the tabbed detail view of the selected record.
type DetailScreenModel struct {
	ctrl   *browse.Controller
	styles Styles
	layout Layout

	// detail is the Detail the cursor and scroll belong to; a new selection
	// resets them.
	detail *browse.Detail
	item   int
	offset int

	form       *huh.Form
	formValues *roiFormValues
	formErr    string
}

// NewDetailScreenModel creates the detail screen over ctrl.
func NewDetailScreenModel(ctrl *browse.Controller, styles Styles) *DetailScreenModel {
	return &DetailScreenModel{
		ctrl:   ctrl,
		styles: styles,
		layout: NewLayout(DefaultWidth, DefaultHeight),
	}
}

// SetLayout updates the terminal size.
func (m *DetailScreenModel) SetLayout(l Layout) {
	m.layout = l
	if m.form != nil {
		m.form = m.form.WithWidth(min(l.ContentWidth, 80))
	}
}

// Editing reports whether the ROI form has focus.
func (m *DetailScreenModel) Editing() bool { return m.form != nil }

func (m *DetailScreenModel) sync() *browse.Detail {
	d := m.ctrl.Detail()
	if d != m.detail {
		m.detail = d
		m.item = 0
		m.offset = 0
		m.closeForm()
	}
	return d
}

// Update handles messages while the detail view is shown. Everything but
// key events only matters to the ROI form.
func (m *DetailScreenModel) Update(msg tea.Msg) (*DetailScreenModel, tea.Cmd) {
	d := m.sync()
	if d == nil {
		return m, nil
	}
	if m.form != nil {
		return m.updateForm(d, msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "esc", "backspace", "b":
		m.ctrl.Back()
		m.sync()
	case "tab", "right":
		d.NextTab()
		m.resetTab()
	case "shift+tab", "left":
		d.PrevTab()
		m.resetTab()
	case "1", "2", "3", "4", "5", "6", "7":
		d.SetTab(browse.Tabs[int(key.Runes[0]-'1')])
		m.resetTab()
	case "up", "k":
		if m.item > 0 {
			m.item--
		}
	case "down", "j":
		if m.item < m.itemCount(d)-1 {
			m.item++
		}
	case "pgup", "ctrl+u":
		m.offset = max(m.offset-m.layout.ContentHeight/2, 0)
	case "pgdown", "ctrl+d":
		m.offset += m.layout.ContentHeight / 2
	case "enter", " ":
		m.toggleItem(d)
	case "[":
		if d.Tab() == browse.TabPricing {
			d.CyclePlan(-1)
		}
	case "]":
		if d.Tab() == browse.TabPricing {
			d.CyclePlan(1)
		}
	case "c":
		if d.Tab() == browse.TabPricing {
			d.ToggleCalculator()
		}
	case "e":
		if d.Tab() == browse.TabPricing {
			if !d.CalculatorVisible() {
				d.ToggleCalculator()
			}
			return m, m.openForm(d)
		}
	case "y":
		s := d.Service()
		card := browse.NewCard(s, m.ctrl.CardState(s.ID))
		return m, copyToClipboard(s.ID, card.ShareText())
	}
	return m, nil
}

func (m *DetailScreenModel) resetTab() {
	m.item = 0
	m.offset = 0
}

func (m *DetailScreenModel) itemCount(d *browse.Detail) int {
	switch d.Tab() {
	case browse.TabFeatures:
		return len(d.Service().Features)
	case browse.TabSupport:
		return len(d.Service().FAQs)
	}
	return 0
}

func (m *DetailScreenModel) toggleItem(d *browse.Detail) {
	s := d.Service()
	switch d.Tab() {
	case browse.TabFeatures:
		if m.item < len(s.Features) {
			d.ToggleFeature(s.Features[m.item].ID)
		}
	case browse.TabSupport:
		d.ToggleFAQ(m.item)
	}
}

func (m *DetailScreenModel) openForm(d *browse.Detail) tea.Cmd {
	m.formValues = newROIFormValues(d.Inputs())
	m.formErr = ""
	m.form = buildROIForm(m.formValues).WithWidth(min(m.layout.ContentWidth, 80))
	return m.form.Init()
}

func (m *DetailScreenModel) closeForm() {
	m.form = nil
	m.formValues = nil
}

func (m *DetailScreenModel) updateForm(d *browse.Detail, msg tea.Msg) (*DetailScreenModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.closeForm()
		return m, nil
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.applyForm(d)
		return m, nil
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

// applyForm copies the submitted form values into the calculator.
func (m *DetailScreenModel) applyForm(d *browse.Detail) {
	in, err := m.formValues.Inputs()
	m.closeForm()
	if err != nil {
		m.formErr = err.Error()
		return
	}
	m.formErr = ""
	d.SetInputs(in)
}

// View renders the detail screen.
func (m *DetailScreenModel) View() string {
	d := m.sync()
	if d == nil {
		return ""
	}
	s := m.styles

	header := m.renderHeader(d)

	labels := make([]string, len(browse.Tabs))
	for i, t := range browse.Tabs {
		labels[i] = t.Label()
	}
	tabs := TabBar(labels, int(d.Tab()), s)

	if m.form != nil {
		return JoinVertical(1, header, tabs,
			SectionBox("ROI CALCULATOR", m.form.View(), m.layout.ContentWidth, s))
	}

	var blocks []string
	if d.Tab() == browse.TabOverview && d.Service().FullDescription != "" {
		blocks = append(blocks, strings.Join(WrapText(d.Service().FullDescription, m.layout.ContentWidth), "\n"))
	}
	for _, sec := range d.Sections() {
		blocks = append(blocks, SectionBox(sectionTitles[sec], m.renderSection(d, sec), m.layout.ContentWidth, s))
	}
	if len(blocks) == 0 {
		blocks = append(blocks, s.Dim.Render("Nothing to show on this tab yet."))
	}

	body := m.window(JoinVertical(1, blocks...))
	return JoinVertical(1, header, tabs, body)
}

// window returns the lines of content that fit below the tab bar, starting
// at the scroll offset.
func (m *DetailScreenModel) window(content string) string {
	lines := strings.Split(content, "\n")
	height := max(m.layout.ContentHeight-8, 5)
	m.offset = min(m.offset, max(len(lines)-height, 0))
	end := min(m.offset+height, len(lines))
	out := strings.Join(lines[m.offset:end], "\n")
	if m.offset > 0 || end < len(lines) {
		out += "\n" + m.styles.Dim.Render(fmt.Sprintf("  lines %d-%d of %d (pgup/pgdn)", m.offset+1, end, len(lines)))
	}
	return out
}

func (m *DetailScreenModel) renderHeader(d *browse.Detail) string {
	s := m.styles
	svc := d.Service()

	title := s.Title.Render(svc.Title)
	if len(svc.Features) > 0 {
		title += "  " + AvailabilityBadge(svc.Features[0].Availability, s)
	}
	state := m.ctrl.CardState(svc.ID)
	title += "  " + HeartIcon(state.Liked, s)

	facts := []string{s.Dim.Render("From ") + s.Price.Render(browse.PriceLabel(svc.StartingPrice()))}
	if svc.Implementation.Timeline != "" {
		facts = append(facts, s.Dim.Render("Go-live ")+svc.Implementation.Timeline)
	}
	if svc.Metrics.Satisfaction != "" {
		card := browse.NewCard(svc, state)
		facts = append(facts, StarRating(card.Stars(), s)+" "+s.Dim.Render(svc.Metrics.Satisfaction))
	}

	return JoinVertical(0,
		title,
		s.Dim.Render(Truncate(svc.ShortDescription, m.layout.ContentWidth)),
		strings.Join(facts, s.Muted.Render("  ·  ")),
	)
}

func (m *DetailScreenModel) renderSection(d *browse.Detail, sec browse.Section) string {
	s := m.styles
	svc := d.Service()
	width := m.layout.ContentWidth - 4

	switch sec {
	case browse.SectionBenefits:
		return BulletList(svc.Benefits, "✓", s)

	case browse.SectionTechnicalSpecs:
		return attrTable("Specification", "Value", svc.TechnicalSpecs, s)

	case browse.SectionCaseStudyPreview:
		cs, _ := svc.FirstCaseStudy()
		return m.renderCaseStudy(cs, true, width)

	case browse.SectionFeatures:
		return m.renderFeatures(d, width)

	case browse.SectionPlans:
		return m.renderPlans(d)

	case browse.SectionCalculator:
		return m.renderCalculator(d)

	case browse.SectionAddOns:
		var parts []string
		for _, a := range svc.AddOns {
			lines := []string{s.Bold.Render(a.Name) + "  " + s.Price.Render(browse.PriceLabel(a.Price))}
			if a.Description != "" {
				lines = append(lines, s.Dim.Render(a.Description))
			}
			if len(a.Features) > 0 {
				lines = append(lines, BulletList(a.Features, "•", s))
			}
			parts = append(parts, strings.Join(lines, "\n"))
		}
		return strings.Join(parts, "\n\n")

	case browse.SectionPhases:
		var parts []string
		for i, p := range svc.Implementation.Phases {
			head := s.Header.Render(fmt.Sprintf("%d. %s", i+1, p.Name))
			if p.Duration != "" {
				head += "  " + s.Dim.Render(p.Duration)
			}
			lines := []string{head}
			for _, l := range WrapText(p.Description, width-3) {
				if l != "" {
					lines = append(lines, "   "+l)
				}
			}
			for _, del := range p.Deliverables {
				lines = append(lines, "   "+s.Dim.Render("•")+" "+del)
			}
			for _, ms := range p.Milestones {
				lines = append(lines, "   "+s.Success.Render("◆")+" "+ms)
			}
			parts = append(parts, strings.Join(lines, "\n"))
		}
		return strings.Join(parts, "\n\n")

	case browse.SectionRequirements:
		return BulletList(svc.Implementation.Requirements, "•", s)

	case browse.SectionSupportServices:
		return BulletList(svc.Implementation.Support, "✓", s)

	case browse.SectionIntegrations:
		t := Table{Headers: []string{"Integration", "Type", "Complexity", "Setup"}}
		for _, in := range svc.Integrations {
			t.Rows = append(t.Rows, []string{in.Name, string(in.Type), in.Complexity, in.SetupTime})
		}
		return t.Render(s)

	case browse.SectionCertifications:
		return checkList(svc.Certifications, s)

	case browse.SectionCompliance:
		return checkList(svc.Compliance, s)

	case browse.SectionCaseStudies:
		var parts []string
		for _, cs := range svc.CaseStudies {
			parts = append(parts, m.renderCaseStudy(cs, false, width))
		}
		return strings.Join(parts, "\n\n"+Divider(width, s)+"\n\n")

	case browse.SectionFAQs:
		var lines []string
		for i, f := range svc.FAQs {
			cursor := "  "
			marker := "▸"
			question := f.Question
			if d.FAQExpanded(i) {
				marker = "▾"
			}
			if i == m.item {
				cursor = s.Selected.Render("> ")
				question = s.Selected.Render(question)
			}
			lines = append(lines, cursor+s.Dim.Render(marker)+" "+question)
			if d.FAQExpanded(i) {
				for _, l := range WrapText(f.Answer, width-4) {
					lines = append(lines, "    "+l)
				}
			}
		}
		return strings.Join(lines, "\n")

	case browse.SectionChannels:
		t := Table{Headers: []string{"Channel", "Description", "Availability"}}
		for _, c := range browse.SupportChannels {
			t.Rows = append(t.Rows, []string{c.Name, c.Description, c.Availability})
		}
		return t.Render(s)

	case browse.SectionRoadmap:
		var parts []string
		for _, r := range svc.Roadmap {
			head := s.Header.Render(r.Quarter)
			if r.Status != "" {
				head += "  " + s.Dim.Render("["+r.Status+"]")
			}
			parts = append(parts, head+"\n"+BulletList(r.Features, "•", s))
		}
		return strings.Join(parts, "\n\n")
	}
	return ""
}

func (m *DetailScreenModel) renderFeatures(d *browse.Detail, width int) string {
	s := m.styles
	var parts []string
	for i, f := range d.Service().Features {
		cursor := "  "
		name := s.Bold.Render(f.Name)
		if i == m.item {
			cursor = s.Selected.Render("> ")
			name = s.Selected.Render(f.Name)
		}
		marker := "▸"
		if d.FeatureExpanded(f.ID) {
			marker = "▾"
		}
		head := cursor + s.Dim.Render(marker) + " " + name + "  " + AvailabilityBadge(f.Availability, s)
		if f.SatisfactionScore > 0 {
			head += "  " + s.Star.Render("★") + s.Dim.Render(fmt.Sprintf(" %.1f", f.SatisfactionScore))
		}

		lines := []string{head}
		for _, l := range WrapText(f.Description, width-4) {
			lines = append(lines, "    "+s.Dim.Render(l))
		}
		if d.FeatureExpanded(f.ID) {
			lines = append(lines, "    "+ProgressBar("Popularity", f.Popularity, min(width-4, 60), s))
			if f.TechnicalDetails != "" {
				for _, l := range WrapText(f.TechnicalDetails, width-4) {
					lines = append(lines, "    "+l)
				}
			}
			for _, b := range f.Benefits {
				lines = append(lines, "    "+s.Success.Render("✓")+" "+b)
			}
			for _, r := range f.Requirements {
				lines = append(lines, "    "+s.Dim.Render("•")+" "+r)
			}
			var facts []string
			if f.EstimatedSetupTime != "" {
				facts = append(facts, "Setup "+f.EstimatedSetupTime)
			}
			if f.Complexity != "" {
				facts = append(facts, "Complexity "+string(f.Complexity))
			}
			if f.ROI > 0 {
				facts = append(facts, fmt.Sprintf("ROI %d%%", f.ROI))
			}
			if len(f.Integrations) > 0 {
				facts = append(facts, "Works with "+strings.Join(f.Integrations, ", "))
			}
			if len(facts) > 0 {
				lines = append(lines, "    "+s.Dim.Render(strings.Join(facts, "  ·  ")))
			}
			lines = append(lines, "    "+s.Dim.Render(fmt.Sprintf("Starter %s  ·  Professional %s  ·  Enterprise %s",
				catalog.FormatCurrency(f.Pricing.Starter),
				catalog.FormatCurrency(f.Pricing.Professional),
				catalog.FormatCurrency(f.Pricing.Enterprise))))
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n\n")
}

func (m *DetailScreenModel) renderPlans(d *browse.Detail) string {
	s := m.styles
	colWidth := max((m.layout.ContentWidth-8)/len(catalog.Tiers), 20)

	var cols []string
	for _, t := range catalog.Tiers {
		p := d.Service().Pricing.Plan(t)
		selected := t == d.Plan()

		lines := []string{RadioIcon(selected, s) + " " + s.Bold.Render(t.Label())}
		if p.Popular {
			lines = append(lines, s.Popular.Render("MOST POPULAR"))
		}
		lines = append(lines, s.Price.Render(browse.PriceLabel(p.Price)))
		for _, l := range WrapText(p.Description, colWidth-4) {
			if l != "" {
				lines = append(lines, s.Dim.Render(l))
			}
		}
		for _, f := range p.Features {
			lines = append(lines, s.Success.Render("✓")+" "+Truncate(f, colWidth-6))
		}
		for _, l := range p.Limits {
			lines = append(lines, s.Dim.Render(l.Key+": ")+l.Value.String())
		}

		style := s.Card
		if selected {
			style = s.CardHovered
		}
		cols = append(cols, style.Width(colWidth-2).Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, intersperse(cols, " ")...)
}

func (m *DetailScreenModel) renderCalculator(d *browse.Detail) string {
	s := m.styles

	rows := formatInputs(d.Inputs())
	var lines []string
	for _, r := range rows {
		lines = append(lines, s.Dim.Render(padRight(r[0], 16))+r[1])
	}
	if notice := d.Notice(); notice != "" {
		lines = append(lines, s.Warning.Render(notice))
	}
	if m.formErr != "" {
		lines = append(lines, s.Error.Render(m.formErr))
	}

	res := d.ROI()
	plan := d.SelectedPlan()
	lines = append(lines, "",
		s.Dim.Render(padRight("Plan", 16))+d.Plan().Label()+" "+s.Dim.Render("("+browse.PriceLabel(plan.Price)+")"))

	var figure string
	switch {
	case res.Outcome == roi.ContactSales:
		figure = s.Warning.Render(res.String())
	case res.Outcome == roi.Unavailable:
		figure = s.Dim.Render(res.String())
	case res.Percent < 0:
		figure = s.Error.Render(res.String())
	default:
		figure = s.Success.Render(res.String())
	}
	lines = append(lines,
		s.Dim.Render(padRight("Expected ROI", 16))+figure,
		s.Dim.Render(res.Summary()))
	return strings.Join(lines, "\n")
}

func (m *DetailScreenModel) renderCaseStudy(cs catalog.CaseStudy, preview bool, width int) string {
	s := m.styles
	head := s.Bold.Render(cs.Client)
	if cs.Industry != "" {
		head += "  " + s.Dim.Render(cs.Industry)
	}
	lines := []string{head}

	if !preview {
		if cs.Challenge != "" {
			lines = append(lines, s.SectionName.Render("Challenge"))
			lines = append(lines, WrapText(cs.Challenge, width)...)
		}
		if cs.Solution != "" {
			lines = append(lines, s.SectionName.Render("Solution"))
			lines = append(lines, WrapText(cs.Solution, width)...)
		}
	}

	results := cs.Results
	if preview && len(results) > browse.PreviewSize {
		results = results[:browse.PreviewSize]
	}
	if len(results) > 0 {
		t := Table{Headers: []string{"Metric", "Result", "Improvement"}}
		for _, r := range results {
			t.Rows = append(t.Rows, []string{r.Metric, r.Value, s.Success.Render(r.Improvement)})
		}
		lines = append(lines, "", t.Render(s))
	}
	if cs.Testimonial != "" {
		lines = append(lines, "")
		for _, l := range WrapText("“"+cs.Testimonial+"”", width) {
			lines = append(lines, s.Quote.Render(l))
		}
	}
	return strings.Join(lines, "\n")
}

func attrTable(keyHeader, valueHeader string, attrs catalog.Attrs, s Styles) string {
	t := Table{Headers: []string{keyHeader, valueHeader}}
	for _, a := range attrs {
		t.Rows = append(t.Rows, []string{a.Key, a.Value.String()})
	}
	return t.Render(s)
}

func checkList(items []string, s Styles) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = CheckIcon(true, s) + " " + item
	}
	return strings.Join(parts, "   ")
}

func intersperse(items []string, sep string) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, 2*len(items)-1)
	for i, item := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, item)
	}
	return out
}

// Footer returns footer hints.
func (m *DetailScreenModel) Footer() string {
	if m.form != nil {
		return KeyHints([]KeyHint{
			{"Enter", "Next / Calculate"},
			{"Esc", "Cancel"},
		}, m.styles)
	}
	hints := []KeyHint{
		{"Tab", "Next tab"},
		{"1-7", "Jump"},
		{"Esc", "Back"},
		{"y", "Share"},
	}
	if m.detail != nil {
		switch m.detail.Tab() {
		case browse.TabPricing:
			hints = append(hints, KeyHint{"[ ]", "Plan"}, KeyHint{"c", "Calculator"}, KeyHint{"e", "Edit inputs"})
		case browse.TabFeatures, browse.TabSupport:
			hints = append(hints, KeyHint{"j/k", "Move"}, KeyHint{"Enter", "Expand"})
		}
	}
	return KeyHints(hints, m.styles)
}
