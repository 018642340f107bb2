package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/routines/pkg/form"
	"tableflip.dev/routines/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	noChart := false

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
routines ui
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			// Nothing may write to the terminal while the alt screen is up.
			svc, settings, done, err := openRoutines(zap.NewNop())
			if err != nil {
				return err
			}
			defer done()

			cfg := form.DefaultConfig()
			cfg.StudentName = settings.Student
			i := ui.UI{
				Routines:   svc,
				Form:       cfg,
				TimeLayout: settings.TimeLayout,
				Chart:      settings.ChartInTerm && !noChart,
				Logger:     logger,
			}
			return i.Do(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&noChart, "no-chart", false, "Hide the chart pane.")
	topLevel.AddCommand(cmd)
}
