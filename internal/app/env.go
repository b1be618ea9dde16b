package app

import (
	"fmt"
	"io"

	"github.com/brightwell/svccat/internal/analytics"
	"github.com/brightwell/svccat/internal/browse"
	"github.com/brightwell/svccat/internal/catalog"
	"github.com/brightwell/svccat/internal/config"
	"github.com/brightwell/svccat/internal/errors"
	"github.com/brightwell/svccat/internal/logging"
	"github.com/brightwell/svccat/internal/metrics"
	"github.com/brightwell/svccat/internal/roi"
)

// EnvOptions are the settings shared by every command. Empty fields fall
// back to the config file.
type EnvOptions struct {
	ConfigPath       string
	CatalogPath      string
	TestimonialsPath string
	CatalogRoot      string
	LogLevel         string
	LogFile          string
	// EventsCSV overrides analytics.csv_file.
	EventsCSV string
	// Quiet keeps the logger off the terminal, for the TUI.
	Quiet bool
}

// Env is the loaded configuration, logger and data a command runs against.
type Env struct {
	Config  *config.Config
	Log     *logging.Logger
	Tracker analytics.Tracker

	Catalog           *catalog.Catalog
	CatalogSource     catalog.Source
	Testimonials      *catalog.Testimonials
	TestimonialSource catalog.Source

	eventLog *metrics.Writer
}

// LoadEnv reads the config, opens the logger and loads both datasets.
// Callers must Close the returned Env.
func LoadEnv(opts EnvOptions) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.CatalogPath != "" {
		cfg.Catalog.Path = opts.CatalogPath
	}
	if opts.TestimonialsPath != "" {
		cfg.Catalog.TestimonialsPath = opts.TestimonialsPath
	}
	if opts.LogLevel != "" {
		if _, err := logging.ParseLevel(opts.LogLevel); err != nil {
			return nil, errors.WrapInputError(err, "--log-level")
		}
		cfg.Log.Level = opts.LogLevel
	}
	if opts.LogFile != "" {
		cfg.Log.File = opts.LogFile
	}
	if opts.EventsCSV != "" {
		cfg.Analytics.CSVFile = opts.EventsCSV
	}

	logOpts := logging.Options{
		Level:  cfg.LogLevel(),
		File:   cfg.Log.File,
		Format: cfg.Log.Format,
	}
	if opts.Quiet {
		logOpts.Console = io.Discard
	}
	log, err := logging.NewLoggerWithOptions(logOpts)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	env := &Env{Config: cfg, Log: log}
	if err := env.loadData(opts.CatalogRoot); err != nil {
		_ = log.Close()
		return nil, err
	}
	if cfg.Source != "" {
		log.Verbose("Config: %s", cfg.Source)
	}
	log.LogCatalog(env.CatalogSource.String(), env.Catalog.Len(),
		env.TestimonialSource.String(), env.Testimonials.Len())

	trackOpts := analytics.Options{
		Enabled:         cfg.Analytics.Enabled,
		EventsPerSecond: cfg.Analytics.EventsPerSecond,
		Burst:           cfg.Analytics.Burst,
	}
	if cfg.Analytics.Enabled && (cfg.Analytics.CSVFile != "" || cfg.Analytics.JSONFile != "") {
		w, err := metrics.NewWriter(cfg.Analytics.CSVFile, cfg.Analytics.JSONFile)
		if err != nil {
			_ = log.Close()
			return nil, errors.WrapConfigError(err, "analytics event log")
		}
		env.eventLog = w
		trackOpts.Sinks = append(trackOpts.Sinks, w)
		log.Verbose("Event log: csv=%q json=%q", cfg.Analytics.CSVFile, cfg.Analytics.JSONFile)
	}
	env.Tracker = analytics.New(trackOpts, log.Zap().Named("analytics"))

	return env, nil
}

func (e *Env) loadData(root string) error {
	start, err := ResolveCatalogRoot(root)
	if err != nil {
		return err
	}

	file, src, err := catalog.Resolve(e.Config.Catalog.Path, start)
	if err != nil {
		return errors.WrapCatalogError(err, src.Path)
	}
	e.Catalog = catalog.NewCatalog(file)
	e.CatalogSource = src

	tfile, tsrc, err := catalog.ResolveTestimonials(e.Config.Catalog.TestimonialsPath, start)
	if err == nil {
		err = tfile.Validate()
	}
	if err != nil {
		return errors.WrapCatalogError(err, tsrc.Path)
	}
	e.Testimonials = catalog.NewTestimonials(tfile)
	e.TestimonialSource = tsrc
	return nil
}

// NewController returns a controller seeded from the config. opts are
// applied last and override it.
func (e *Env) NewController(opts ...browse.Option) *browse.Controller {
	base := []browse.Option{
		browse.WithTracker(e.Tracker),
		browse.WithQuery(e.Config.Query()),
		browse.WithViewMode(e.Config.ViewMode()),
		browse.WithCalculator(roi.New(e.Config.ROI.SavingsRate)),
	}
	return browse.NewController(e.Catalog, append(base, opts...)...)
}

// NewTestimonialBrowser returns a testimonial browser on the All category.
func (e *Env) NewTestimonialBrowser() *browse.TestimonialBrowser {
	return browse.NewTestimonialBrowser(e.Testimonials, e.Tracker)
}

// Close flushes the event log and the logger.
func (e *Env) Close() error {
	if e == nil {
		return nil
	}
	if e.eventLog != nil {
		written, failed := e.eventLog.Stats()
		if e.Log != nil {
			e.Log.Debug("event log: %d written, %d failed", written, failed)
		}
		if err := e.eventLog.Close(); err != nil && e.Log != nil {
			e.Log.Error("close event log: %v", err)
		}
	}
	if e.Log == nil {
		return nil
	}
	return e.Log.Close()
}
