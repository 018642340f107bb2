package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/routines/pkg/commands/options"
	"tableflip.dev/routines/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm", "remove"},
		Short:   "Delete routines",
		Example: `
routines delete 1714546800000
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a routine id")
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

			r := remove.Remove{
				IDs:      io.IDs,
				Routines: svc,
				Printer:  pretty(cmd, io.ShowID, settings),
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
