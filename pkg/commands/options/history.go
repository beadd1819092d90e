package options

import (
	"github.com/spf13/cobra"
)

// HistoryOptions bound the change log.
type HistoryOptions struct {
	Limit int
}

func AddHistoryArgs(cmd *cobra.Command, o *HistoryOptions) {
	cmd.Flags().IntVarP(&o.Limit, "limit", "n", 0,
		"Number of changes to show, 1 to 500. Defaults to the history.limit config key.")
}
