package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/routines/pkg/commands/options"
	"tableflip.dev/routines/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	po := &options.FormatOptions{}
	io := &options.IDOptions{}
	calendar := false

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "get"},
		Short:   "List routines in datetime order",
		Example: `
routines list
routines list --date 2024-05 --name run -k
routines list -o yaml
routines list --calendar
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			format, err := po.Format()
			if err != nil {
				return oo.HandleError(err)
			}
			svc, settings, done, err := openRoutines(logger)
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			l := list.List{
				Criteria: fo.Criteria(),
				Format:   format,
				Calendar: calendar,
				Routines: svc,
				Printer:  pretty(cmd, io.ShowID, settings),
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddFormatArg(cmd, po)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&calendar, "calendar", false, "Show a month calendar of the days with routines.")
	topLevel.AddCommand(cmd)
}
