package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/brightwell/svccat/internal/browse"
)

// Options configures Run.
type Options struct {
	// Log receives diagnostics; console output would corrupt the alt screen,
	// so pass a file-only logger or nil.
	Log *zap.Logger
	// Start is the screen shown first.
	Start Screen
}

// Run starts the catalog browser and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, ctrl *browse.Controller, reviews *browse.TestimonialBrowser, opts Options) error {
	model := NewModel(ctrl, reviews, opts.Log)
	if opts.Start == ScreenTestimonials {
		model.screen = ScreenTestimonials
	}

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := program.Run()
	return err
}
