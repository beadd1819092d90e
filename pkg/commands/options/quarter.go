package options

import (
	"github.com/spf13/cobra"
)

// QuarterOptions select a quarter relative to the current one.
type QuarterOptions struct {
	Offset int
}

func AddQuarterArgs(cmd *cobra.Command, o *QuarterOptions) {
	cmd.Flags().IntVarP(&o.Offset, "offset", "o", 0,
		"Quarters from the current one, e.g. -1 for the previous quarter.")
}
