package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brightwell/svccat/internal/app"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	env := &app.EnvOptions{}

	rootCmd := &cobra.Command{
		Use:   "svccat",
		Short: "Browse the billing service catalog",
		Long: `svccat browses a catalog of billing services and customer testimonials.

Search, sort and filter services, open a detail view with pricing plans and
an ROI estimate, or run the interactive browser with "svccat browse".`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&env.ConfigPath, "config", "", "Config file (default ./svccat.yaml or ~/.config/svccat/svccat.yaml)")
	flags.StringVar(&env.CatalogPath, "catalog", "", "Services catalog YAML (default catalogs/services.yaml, then built-in)")
	flags.StringVar(&env.TestimonialsPath, "testimonials", "", "Testimonials YAML (default catalogs/testimonials.yaml, then built-in)")
	flags.StringVar(&env.CatalogRoot, "catalog-root", "", "Directory to search upward from for catalogs/ (default working directory)")
	flags.StringVar(&env.LogLevel, "log-level", "", "Log level: silent|error|info|verbose|debug")
	flags.StringVar(&env.LogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCatalogCmd(env))
	rootCmd.AddCommand(newTestimonialsCmd(env))
	rootCmd.AddCommand(newROICmd(env))
	rootCmd.AddCommand(newBrowseCmd(env))
	rootCmd.AddCommand(newAnalyticsCmd())
	rootCmd.AddCommand(newConfigCmd())

	setHelp(rootCmd)
	return rootCmd
}

// withEnv loads the shared environment for one command run.
func withEnv(opts *app.EnvOptions, fn func(*app.Env) error) error {
	env, err := app.LoadEnv(*opts)
	if err != nil {
		return err
	}
	defer env.Close()
	return fn(env)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
