package options

import (
	"github.com/spf13/cobra"
)

// RoutineOptions are the fields of a routine given as flags.
type RoutineOptions struct {
	Name    string
	At      string
	Student string
}

func AddRoutineArgs(cmd *cobra.Command, o *RoutineOptions) {
	cmd.Flags().StringVar(&o.At, "at", "",
		Wrap80(`When the routine happens, example: --at="2024-05-01T07:00". Dates, "2024-05-01 07:00" and RFC3339 are accepted too.`))
	cmd.Flags().StringVarP(&o.Student, "student", "s", "",
		"Student the routine belongs to.")
}

// AddNameArg is for commands that change an existing routine.
func AddNameArg(cmd *cobra.Command, o *RoutineOptions) {
	cmd.Flags().StringVarP(&o.Name, "name", "n", "",
		"New name of the routine.")
}
