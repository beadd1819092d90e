// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// ServerOptions override the configured store address and log level.
type ServerOptions struct {
	Server   string
	LogLevel string
}

// AddServerArgs registers the global store flags.
func AddServerArgs(cmd *cobra.Command, o *ServerOptions) {
	cmd.PersistentFlags().StringVar(&o.Server, "server", "",
		"Schedule store URL. Overrides the server config key.")
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "",
		"Log level: debug, info, warn or error.")
}
