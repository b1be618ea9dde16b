package main

import (
	"github.com/spf13/cobra"

	"github.com/brightwell/svccat/internal/app"
	"github.com/brightwell/svccat/internal/roi"
)

func newROICmd(env *app.EnvOptions) *cobra.Command {
	defaults := roi.DefaultInputs()
	opts := app.ROIOptions{}

	cmd := &cobra.Command{
		Use:   "roi <service-id>",
		Short: "Estimate the ROI of a service's plans",
		Long: `Estimate annual ROI for each pricing plan of a service from the practice's
current monthly billing costs. Negative inputs are treated as 0. Plans priced
by custom quote show "Contact Sales".`,
		Example: `  svccat roi ai-powered-billing
  svccat roi ai-powered-billing --costs 12000 --plan enterprise
  svccat roi recurring-billing-engine --practice-size small --volume 250
  svccat roi ai-powered-billing --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return missingArgError(cmd, "<service-id>")
			}
			opts.ServiceID = args[0]
			opts.Out = cmd.OutOrStdout()
			return withEnv(env, func(e *app.Env) error {
				return app.RunROI(e, opts)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Plan, "plan", "", "Highlighted plan: starter|professional|enterprise (default the popular plan)")
	cmd.Flags().StringVar(&opts.PracticeSize, "practice-size", string(defaults.PracticeSize), "Practice size: small|medium|large")
	cmd.Flags().IntVar(&opts.Volume, "volume", defaults.MonthlyVolume, "Monthly claim volume")
	cmd.Flags().Float64Var(&opts.Costs, "costs", defaults.CurrentCosts, "Current monthly billing costs in dollars")
	cmd.Flags().IntVar(&opts.DesiredROI, "desired-roi", defaults.DesiredROI, "Desired ROI percentage (shown only)")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "Output format: text|json")

	return cmd
}
