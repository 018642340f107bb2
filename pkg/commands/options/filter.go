package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/routines/pkg/filter"
)

// FilterOptions
type FilterOptions struct {
	Date string
	Name string
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVar(&o.Date, "date", "",
		`Only routines whose datetime starts with this, example: --date="2024-05".`)
	cmd.Flags().StringVar(&o.Name, "name", "",
		"Only routines whose name contains this, ignoring case.")
}

func (o *FilterOptions) Criteria() filter.Criteria {
	return filter.Criteria{DatePrefix: o.Date, NameSubstring: o.Name}
}
