package app

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brightwell/svccat/internal/analytics"
	"github.com/brightwell/svccat/internal/catalog"
	"github.com/brightwell/svccat/internal/errors"
	"github.com/brightwell/svccat/internal/report"
)

func newTestEnv(t *testing.T, opts EnvOptions) *Env {
	t.Helper()
	if opts.CatalogRoot == "" {
		opts.CatalogRoot = t.TempDir()
	}
	if opts.LogLevel == "" {
		opts.LogLevel = "silent"
	}
	env, err := LoadEnv(opts)
	if err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}
	t.Cleanup(func() { _ = env.Close() })
	return env
}

func TestLoadEnvBuiltIn(t *testing.T) {
	env := newTestEnv(t, EnvOptions{})
	if !env.CatalogSource.Embedded || !env.TestimonialSource.Embedded {
		t.Errorf("sources = %s, %s; want built-in", env.CatalogSource, env.TestimonialSource)
	}
	if env.Catalog.Len() != 3 {
		t.Errorf("services = %d, want 3", env.Catalog.Len())
	}
	if env.Testimonials.Len() != 4 {
		t.Errorf("testimonials = %d, want 4", env.Testimonials.Len())
	}
	if env.Tracker == nil {
		t.Error("tracker should be set")
	}
}

func TestLoadEnvFindsCatalogsDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "catalogs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	data := `version: 1
name: Local
services:
  - id: local-only
    title: Local Only Service
    short_description: Found on disk
    pricing:
      starter: {price: 10}
      professional: {price: 20, popular: true}
      enterprise: {price: Custom}
`
	if err := os.WriteFile(filepath.Join(dir, catalog.ServicesFileName), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	env := newTestEnv(t, EnvOptions{CatalogRoot: nested})
	if env.CatalogSource.Embedded {
		t.Fatal("catalog should come from disk")
	}
	if _, ok := env.Catalog.Lookup("local-only"); !ok {
		t.Error("local catalog not loaded")
	}
	if !env.TestimonialSource.Embedded {
		t.Error("testimonials should fall back to built-in")
	}
}

func TestLoadEnvErrors(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "services.yaml")
	data := "version: 1\nservices:\n  - id: x\n    title: X\n    pricing:\n      starter: {price: cheap}\n"
	if err := os.WriteFile(bad, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		opts    EnvOptions
		wantErr string
	}{
		{"bad price", EnvOptions{CatalogPath: bad}, "A price is neither a number nor"},
		{"missing file", EnvOptions{CatalogPath: filepath.Join(t.TempDir(), "nope.yaml")}, "File does not exist"},
		{"bad log level", EnvOptions{LogLevel: "loud"}, "Invalid value for --log-level"},
		{"missing config", EnvOptions{ConfigPath: filepath.Join(t.TempDir(), "svccat.yaml")}, "Configuration error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.opts.CatalogRoot == "" {
				tt.opts.CatalogRoot = t.TempDir()
			}
			_, err := LoadEnv(tt.opts)
			if err == nil {
				t.Fatal("expected error")
			}
			var ufe errors.UserFriendlyError
			if !stderrors.As(err, &ufe) {
				t.Errorf("error %T is not user friendly", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestRunCatalogList(t *testing.T) {
	env := newTestEnv(t, EnvOptions{})

	t.Run("list by price", func(t *testing.T) {
		var buf bytes.Buffer
		if err := RunCatalogList(env, CatalogListOptions{Sort: "price", View: "list", Out: &buf}); err != nil {
			t.Fatalf("RunCatalogList failed: %v", err)
		}
		out := buf.String()
		recurring := strings.Index(out, "Recurring Billing Engine")
		analytics := strings.Index(out, "Real-time Revenue Analytics")
		ai := strings.Index(out, "AI-Powered Billing Automation")
		if recurring < 0 || analytics < 0 || ai < 0 {
			t.Fatalf("missing services in output:\n%s", out)
		}
		if !(recurring < analytics && analytics < ai) {
			t.Errorf("services not in price order:\n%s", out)
		}
		if !strings.Contains(out, "3 of 3 services") {
			t.Errorf("missing count line:\n%s", out)
		}
	})

	t.Run("grid with search", func(t *testing.T) {
		var buf bytes.Buffer
		if err := RunCatalogList(env, CatalogListOptions{Search: "dashboards", View: "grid", Out: &buf}); err != nil {
			t.Fatalf("RunCatalogList failed: %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "1 of 3 services") || !strings.Contains(out, "╭") {
			t.Errorf("want one card:\n%s", out)
		}
	})

	t.Run("no match", func(t *testing.T) {
		var buf bytes.Buffer
		if err := RunCatalogList(env, CatalogListOptions{Search: "zzz", Out: &buf}); err != nil {
			t.Fatalf("RunCatalogList failed: %v", err)
		}
		if !strings.Contains(buf.String(), "No services match") {
			t.Errorf("got %q", buf.String())
		}
	})

	t.Run("bad sort", func(t *testing.T) {
		err := RunCatalogList(env, CatalogListOptions{Sort: "cost", Out: &bytes.Buffer{}})
		if err == nil || !strings.Contains(err.Error(), "--sort") {
			t.Errorf("error = %v, want --sort", err)
		}
	})
}

func TestRunCatalogShow(t *testing.T) {
	env := newTestEnv(t, EnvOptions{})

	var buf bytes.Buffer
	if err := RunCatalogShow(env, CatalogShowOptions{ID: "ai-powered-billing", Out: &buf}); err != nil {
		t.Fatalf("RunCatalogShow failed: %v", err)
	}
	if out := buf.String(); !strings.Contains(out, "AI-Powered Billing Automation") || !strings.Contains(out, "KEY BENEFITS") {
		t.Errorf("overview output:\n%s", out)
	}

	buf.Reset()
	err := RunCatalogShow(env, CatalogShowOptions{ID: "ai-powered-billing", Tab: "pricing", Plan: "starter", Calculator: true, Out: &buf})
	if err != nil {
		t.Fatalf("RunCatalogShow failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"PLANS", "ROI CALCULATOR", "150%"} {
		if !strings.Contains(out, want) {
			t.Errorf("pricing output missing %q", want)
		}
	}

	err = RunCatalogShow(env, CatalogShowOptions{ID: "billing", Out: &bytes.Buffer{}})
	if err == nil {
		t.Fatal("expected not found error")
	}
	if !strings.Contains(err.Error(), "ai-powered-billing") || !strings.Contains(err.Error(), "recurring-billing-engine") {
		t.Errorf("error should suggest matching ids: %v", err)
	}

	err = RunCatalogShow(env, CatalogShowOptions{ID: "ai-powered-billing", Tab: "reviews", Out: &bytes.Buffer{}})
	if err == nil || !strings.Contains(err.Error(), "--tab") {
		t.Errorf("error = %v, want --tab", err)
	}
}

func TestRunCatalogValidate(t *testing.T) {
	env := newTestEnv(t, EnvOptions{})
	var buf bytes.Buffer
	if err := RunCatalogValidate(env, CatalogValidateOptions{Out: &buf}); err != nil {
		t.Fatalf("built-in data should validate: %v\n%s", err, buf.String())
	}
	out := buf.String()
	if !strings.Contains(out, "Validation: PASS") || !strings.Contains(out, "from built-in") {
		t.Errorf("output:\n%s", out)
	}
}

func TestRunTestimonials(t *testing.T) {
	env := newTestEnv(t, EnvOptions{})

	var buf bytes.Buffer
	if err := RunTestimonialsList(env, TestimonialsListOptions{Category: "surgery", Out: &buf}); err != nil {
		t.Fatalf("RunTestimonialsList failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Dr. James Wilson") || strings.Contains(out, "Dr. Sarah Johnson") {
		t.Errorf("surgery list:\n%s", out)
	}
	if !strings.Contains(out, "1 testimonials (Surgery)") {
		t.Errorf("missing count line:\n%s", out)
	}

	err := RunTestimonialsList(env, TestimonialsListOptions{Category: "Dentistry", Out: &bytes.Buffer{}})
	if err == nil || !strings.Contains(err.Error(), "--category") {
		t.Errorf("error = %v, want --category", err)
	}

	buf.Reset()
	if err := RunTestimonialShow(env, TestimonialShowOptions{ID: "1", Out: &buf}); err != nil {
		t.Fatalf("RunTestimonialShow failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Dr. Sarah Johnson") || !strings.Contains(buf.String(), "♥ 127") {
		t.Errorf("show output:\n%s", buf.String())
	}

	if err := RunTestimonialShow(env, TestimonialShowOptions{ID: "99", Out: &bytes.Buffer{}}); err == nil {
		t.Error("expected not found error")
	}
}

func TestRunROI(t *testing.T) {
	env := newTestEnv(t, EnvOptions{})

	var buf bytes.Buffer
	err := RunROI(env, ROIOptions{ServiceID: "ai-powered-billing", Costs: 5000, Volume: 1000, DesiredROI: 200, Out: &buf})
	if err != nil {
		t.Fatalf("RunROI failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"> Professional", "15%", "150%", "Contact Sales", "Costs:        $5,000/mo"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	err = RunROI(env, ROIOptions{ServiceID: "ai-powered-billing", Plan: "enterprise", Costs: -10, Out: &buf})
	if err != nil {
		t.Fatalf("RunROI failed: %v", err)
	}
	out = buf.String()
	if !strings.Contains(out, "negative values set to 0: current costs") {
		t.Errorf("missing clamp note:\n%s", out)
	}
	if !strings.Contains(out, "Enterprise: Custom pricing") {
		t.Errorf("custom plan should point to sales:\n%s", out)
	}

	buf.Reset()
	err = RunROI(env, ROIOptions{ServiceID: "ai-powered-billing", Costs: math.Inf(1), Out: &buf})
	if err != nil {
		t.Fatalf("RunROI with infinite costs failed: %v", err)
	}
	out = buf.String()
	for _, want := range []string{"Costs:        $1,000,000,000/mo", "current costs capped at $1,000,000,000"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Infinity") || strings.Contains(out, "-9223372036854775808") {
		t.Errorf("output leaked a non-finite figure:\n%s", out)
	}

	err = RunROI(env, ROIOptions{ServiceID: "ai-powered-billing", PracticeSize: "huge", Out: &bytes.Buffer{}})
	if err == nil || !strings.Contains(err.Error(), "--practice-size") {
		t.Errorf("error = %v, want --practice-size", err)
	}
}

func TestRunROIJSONCapsCosts(t *testing.T) {
	env := newTestEnv(t, EnvOptions{})

	for _, costs := range []float64{math.Inf(1), 1e300} {
		var buf bytes.Buffer
		err := RunROI(env, ROIOptions{ServiceID: "ai-powered-billing", Costs: costs, Format: "json", Out: &buf})
		if err != nil {
			t.Fatalf("RunROI(costs=%v, json) failed: %v", costs, err)
		}
		var got report.ROIReport
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
		}
		if got.Inputs.CurrentCosts != 1_000_000_000 {
			t.Errorf("current_costs = %v, want the cap", got.Inputs.CurrentCosts)
		}
		if !strings.Contains(got.Notice, "capped") {
			t.Errorf("notice = %q, want the cap reported", got.Notice)
		}
		for _, p := range got.Plans {
			if p.ROIPercent != nil && *p.ROIPercent <= 0 {
				t.Errorf("%s roi_percent = %d, want positive", p.Tier, *p.ROIPercent)
			}
		}
	}
}

func TestRunCatalogExport(t *testing.T) {
	env := newTestEnv(t, EnvOptions{})

	var buf bytes.Buffer
	if err := RunCatalogExport(env, CatalogExportOptions{Out: &buf}); err != nil {
		t.Fatalf("RunCatalogExport to stdout failed: %v", err)
	}
	for _, want := range []string{"id: ai-powered-billing", "price: Custom"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("export missing %q:\n%s", want, buf.String())
		}
	}

	path := filepath.Join(t.TempDir(), "services.yaml")
	buf.Reset()
	if err := RunCatalogExport(env, CatalogExportOptions{Path: path, Out: &buf}); err != nil {
		t.Fatalf("RunCatalogExport to file failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Exported 3 services to "+path) {
		t.Errorf("unexpected output: %q", buf.String())
	}

	reloaded := newTestEnv(t, EnvOptions{CatalogPath: path})
	if reloaded.CatalogSource.Path != path || reloaded.Catalog.Len() != env.Catalog.Len() {
		t.Fatalf("reloaded %d services from %s", reloaded.Catalog.Len(), reloaded.CatalogSource)
	}
	orig, _ := env.Catalog.Lookup("ai-powered-billing")
	got, ok := reloaded.Catalog.Lookup("ai-powered-billing")
	if !ok {
		t.Fatal("ai-powered-billing missing after export")
	}
	if got.Pricing.Plan(catalog.TierEnterprise).Price.Compare(orig.Pricing.Plan(catalog.TierEnterprise).Price) != 0 ||
		got.Pricing.Plan(catalog.TierProfessional).Price.Compare(orig.Pricing.Plan(catalog.TierProfessional).Price) != 0 {
		t.Errorf("prices changed in export: %+v", got.Pricing)
	}

	err := RunCatalogExport(env, CatalogExportOptions{Path: filepath.Join(t.TempDir(), "missing", "services.yaml"), Out: &buf})
	if err == nil {
		t.Error("export into a missing directory should fail")
	}
}

func TestLoadEnvRejectsInvalidCatalogPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "services.yaml")
	if err := os.WriteFile(path, []byte("version: 2\nname: broken\nservices: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadEnv(EnvOptions{CatalogPath: path, CatalogRoot: t.TempDir(), LogLevel: "silent"})
	if err == nil || !strings.Contains(err.Error(), "version") {
		t.Fatalf("error = %v, want the unsupported version reported", err)
	}
}

func TestResolveCatalogRoot(t *testing.T) {
	dir := t.TempDir()
	if got, err := ResolveCatalogRoot(dir); err != nil || got != dir {
		t.Errorf("ResolveCatalogRoot(%q) = %q, %v", dir, got, err)
	}
	if _, err := ResolveCatalogRoot(filepath.Join(dir, "missing")); err == nil {
		t.Error("missing root should fail")
	}
}

func TestJSONFormats(t *testing.T) {
	env := newTestEnv(t, EnvOptions{})

	var buf bytes.Buffer
	if err := RunCatalogList(env, CatalogListOptions{Filter: "beta", Format: "json", Out: &buf}); err != nil {
		t.Fatalf("RunCatalogList failed: %v", err)
	}
	var list report.CatalogReport
	if err := json.Unmarshal(buf.Bytes(), &list); err != nil {
		t.Fatalf("catalog list JSON: %v\n%s", err, buf.String())
	}
	if list.Filter != "beta" || list.Total != 3 || len(list.Services) != 1 || list.Services[0].ID != "real-time-revenue-analytics" {
		t.Errorf("catalog report = %+v", list)
	}

	buf.Reset()
	if err := RunROI(env, ROIOptions{ServiceID: "ai-powered-billing", Costs: 5000, Format: "json", Out: &buf}); err != nil {
		t.Fatalf("RunROI failed: %v", err)
	}
	var r report.ROIReport
	if err := json.Unmarshal(buf.Bytes(), &r); err != nil {
		t.Fatalf("roi JSON: %v\n%s", err, buf.String())
	}
	if r.Selected != "professional" || len(r.Plans) != 3 || r.Plans[2].Result != "Contact Sales" {
		t.Errorf("roi report = %+v", r)
	}

	buf.Reset()
	if err := RunCatalogValidate(env, CatalogValidateOptions{Format: "json", Out: &buf}); err != nil {
		t.Fatalf("RunCatalogValidate failed: %v", err)
	}
	var v report.ValidationReport
	if err := json.Unmarshal(buf.Bytes(), &v); err != nil {
		t.Fatalf("validate JSON: %v\n%s", err, buf.String())
	}
	if !v.Pass || v.Services != 3 || v.CatalogSource != "built-in" {
		t.Errorf("validation report = %+v", v)
	}

	err := RunCatalogList(env, CatalogListOptions{Format: "xml", Out: &bytes.Buffer{}})
	if err == nil || !strings.Contains(err.Error(), "--format") {
		t.Errorf("error = %v, want --format", err)
	}
}

func TestEventLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	env, err := LoadEnv(EnvOptions{CatalogRoot: t.TempDir(), LogLevel: "silent", EventsCSV: path})
	if err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}

	ctrl := env.NewController()
	if err := ctrl.Select("ai-powered-billing"); err != nil {
		t.Fatal(err)
	}
	env.Tracker.Track(analytics.NewEvent(analytics.EventSearch, "billing"))
	if err := env.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	var buf bytes.Buffer
	if err := RunAnalyticsSummary(AnalyticsSummaryOptions{Path: path, Out: &buf}); err != nil {
		t.Fatalf("RunAnalyticsSummary failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Total Events: 2", "Sessions: 1", analytics.EventServiceSelected, "ai-powered-billing"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}

	if err := RunAnalyticsSummary(AnalyticsSummaryOptions{Path: filepath.Join(t.TempDir(), "none.csv")}); err == nil {
		t.Error("expected error for missing event log")
	}
}
