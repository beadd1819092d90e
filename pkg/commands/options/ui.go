package options

import (
	"github.com/spf13/cobra"
)

// UIOptions configure the terminal UI.
type UIOptions struct {
	View   string
	NoLive bool
}

func AddUIArgs(cmd *cobra.Command, o *UIOptions) {
	cmd.Flags().StringVar(&o.View, "view", "calendar",
		"Tab to open: calendar, timeline or history.")
	cmd.Flags().BoolVar(&o.NoLive, "no-live", false,
		"Do not subscribe to live updates.")
}
