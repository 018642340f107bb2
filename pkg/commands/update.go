package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/routines/pkg/commands/options"
	"tableflip.dev/routines/pkg/runner/update"
)

func addUpdate(topLevel *cobra.Command) {
	ro := &options.RoutineOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "update <id>",
		Aliases: []string{"edit"},
		Short:   "Change a routine",
		Example: `
routines update 1714546800000 --at 2024-05-01T08:00
routines update 1714546800000 --name "Evening run"
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires one routine id")
			}
			io.IDs = args
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, settings, done, err := openRoutines(logger)
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			u := update.Update{
				ID:          io.IDs[0],
				Name:        ro.Name,
				Datetime:    ro.At,
				Student:     ro.Student,
				SetName:     cmd.Flags().Changed("name"),
				SetDatetime: cmd.Flags().Changed("at"),
				SetStudent:  cmd.Flags().Changed("student"),
				StudentName: settings.Student,
				Routines:    svc,
				Printer:     pretty(cmd, true, settings),
			}
			return oo.HandleError(u.Do(cmd.Context()))
		},
	}

	options.AddNameArg(cmd, ro)
	options.AddRoutineArgs(cmd, ro)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
