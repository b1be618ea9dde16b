package main

import (
	"github.com/spf13/cobra"

	"github.com/brightwell/svccat/internal/app"
)

func newCatalogCmd(env *app.EnvOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List, show, validate and export catalog services",
		Long: `Query the services catalog.

The catalog is read from --catalog, the catalog.path config key, the first
catalogs/services.yaml above the working directory, or the built-in data.`,
	}

	cmd.AddCommand(newCatalogListCmd(env))
	cmd.AddCommand(newCatalogShowCmd(env))
	cmd.AddCommand(newCatalogValidateCmd(env))
	cmd.AddCommand(newCatalogExportCmd(env))

	return cmd
}

// --- catalog list ---

func newCatalogListCmd(env *app.EnvOptions) *cobra.Command {
	opts := app.CatalogListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog services",
		Long:  `List the services that match a search and availability filter, sorted by popularity, price or name.`,
		Example: `  svccat catalog list
  svccat catalog list --sort price --view list
  svccat catalog list --filter beta
  svccat catalog list --search analytics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Out = cmd.OutOrStdout()
			return withEnv(env, func(e *app.Env) error {
				return app.RunCatalogList(e, opts)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Search, "search", "", "Case-insensitive match on title and short description")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "Sort order: popularity|price|name (default from config)")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "Availability: all|available|beta|coming-soon (default from config)")
	cmd.Flags().StringVar(&opts.View, "view", "", "Layout: grid|list (default from config)")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "Output format: text|json")
	cmd.Flags().IntVar(&opts.Width, "width", app.DefaultWidth, "Output width in columns")

	return cmd
}

// --- catalog show ---

func newCatalogShowCmd(env *app.EnvOptions) *cobra.Command {
	opts := app.CatalogShowOptions{}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one tab of a service's details",
		Long: `Print the detail view of a service. Tabs are overview, features, pricing,
implementation, integrations, case-studies and support.`,
		Example: `  svccat catalog show ai-powered-billing
  svccat catalog show ai-powered-billing --tab pricing --calculator
  svccat catalog show real-time-revenue-analytics --tab pricing --plan starter`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return missingArgError(cmd, "<id>")
			}
			opts.ID = args[0]
			opts.Out = cmd.OutOrStdout()
			return withEnv(env, func(e *app.Env) error {
				return app.RunCatalogShow(e, opts)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Tab, "tab", "", "Tab to show (default overview)")
	cmd.Flags().StringVar(&opts.Plan, "plan", "", "Selected plan: starter|professional|enterprise (default the popular plan)")
	cmd.Flags().BoolVar(&opts.Calculator, "calculator", false, "Include the ROI calculator on the pricing tab")
	cmd.Flags().IntVar(&opts.Width, "width", app.DefaultWidth, "Output width in columns")

	return cmd
}

// --- catalog validate ---

func newCatalogValidateCmd(env *app.EnvOptions) *cobra.Command {
	opts := app.CatalogValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the catalog and testimonials",
		Long: `Check both data files for structure, score ranges, price ordering and a
single popular plan per service. Reports errors and warnings.`,
		Example: `  svccat catalog validate
  svccat catalog validate --catalog catalogs/services.yaml
  svccat catalog validate --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Out = cmd.OutOrStdout()
			return withEnv(env, func(e *app.Env) error {
				return app.RunCatalogValidate(e, opts)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "text", "Output format: text|json")
	return cmd
}

// --- catalog export ---

func newCatalogExportCmd(env *app.EnvOptions) *cobra.Command {
	opts := app.CatalogExportOptions{}

	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Write the catalog as YAML",
		Long: `Write the loaded catalog to path, or to stdout when path is omitted or "-".
The output loads back with --catalog.`,
		Example: `  svccat catalog export
  svccat catalog export catalogs/services.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Path = args[0]
			}
			opts.Out = cmd.OutOrStdout()
			return withEnv(env, func(e *app.Env) error {
				return app.RunCatalogExport(e, opts)
			})
		},
	}

	return cmd
}
