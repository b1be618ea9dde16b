package main

import (
	"github.com/spf13/cobra"

	"github.com/brightwell/svccat/internal/app"
)

func newTestimonialsCmd(env *app.EnvOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "testimonials",
		Short: "List and show customer testimonials",
	}

	cmd.AddCommand(newTestimonialsListCmd(env))
	cmd.AddCommand(newTestimonialsShowCmd(env))

	return cmd
}

func newTestimonialsListCmd(env *app.EnvOptions) *cobra.Command {
	opts := app.TestimonialsListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List testimonials by category",
		Example: `  svccat testimonials list
  svccat testimonials list --category featured
  svccat testimonials list --category "Family Medicine"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Out = cmd.OutOrStdout()
			return withEnv(env, func(e *app.Env) error {
				return app.RunTestimonialsList(e, opts)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Category, "category", "", "Category: "+app.Categories())

	return cmd
}

func newTestimonialsShowCmd(env *app.EnvOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "show <id>",
		Short:   "Show one testimonial",
		Example: `  svccat testimonials show 1`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return missingArgError(cmd, "<id>")
			}
			return withEnv(env, func(e *app.Env) error {
				return app.RunTestimonialShow(e, app.TestimonialShowOptions{ID: args[0], Out: cmd.OutOrStdout()})
			})
		},
	}
}
