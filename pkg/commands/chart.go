package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/routines/pkg/runner/chart"
)

func addChart(topLevel *cobra.Command) {
	out := ""
	width := 40

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Chart routines per day",
		Example: `
routines chart
routines chart --out routines.png
routines chart --out routines.svg
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, settings, done, err := openRoutines(logger)
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			path := out
			if !cmd.Flags().Changed("out") {
				path = settings.ChartFile
			}
			c := chart.Chart{
				Path:     path,
				Width:    width,
				Routines: svc,
				Out:      cmd.OutOrStdout(),
				Logger:   logger,
			}
			return oo.HandleError(c.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write the chart to a .png or .svg file instead of the terminal.")
	cmd.Flags().IntVar(&width, "width", 40, "Width of the longest bar in the terminal.")
	topLevel.AddCommand(cmd)
}
