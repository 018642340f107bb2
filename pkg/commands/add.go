package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/routines/pkg/commands/options"
	"tableflip.dev/routines/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	ro := &options.RoutineOptions{}
	io := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a routine",
		Example: `
routines add Morning run --at 2024-05-01T07:00
routines add Piano --at "2024-05-02 17:30" --student Ana
routines add -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			ro.Name = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, settings, done, err := openRoutines(logger)
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			a := add.Add{
				Name:        ro.Name,
				Datetime:    ro.At,
				Student:     ro.Student,
				StudentName: settings.Student,
				Interactive: io.Interactive,
				Routines:    svc,
				Printer:     pretty(cmd, true, settings),
			}
			return oo.HandleError(a.Do(cmd.Context()))
		},
	}

	options.AddRoutineArgs(cmd, ro)
	options.InteractiveArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
