package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/rota/pkg/commands/options"
	"tableflip.dev/rota/pkg/config"
	"tableflip.dev/rota/pkg/logx"
	"tableflip.dev/rota/pkg/remote"
)

var (
	so  = &options.ServerOptions{}
	cfg *config.Config
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "rota",
		Short: base.Wrap80("Plan and edit a shift schedule one quarter at a time."),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
	options.AddServerArgs(cmd, so)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addShifts(topLevel)
	addSet(topLevel)
	addRemove(topLevel)
	addUndo(topLevel)
	addHistory(topLevel)
	addNext(topLevel)
	addTypes(topLevel)
	addInfo(topLevel)
	addKey(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

func loadConfig() error {
	c, err := config.Load(config.Options{})
	if err != nil {
		return err
	}
	if so.Server != "" {
		c.Server = so.Server
	}
	if so.LogLevel != "" {
		c.LogLevel = so.LogLevel
	}
	cfg = c
	return nil
}

// cliLogger logs to stderr; the terminal UI logs to a file instead.
func cliLogger() logx.Logger {
	return logx.NewConsole(cfg.LogLevel)
}

func newClient(log logx.Logger) *remote.Client {
	return remote.NewClient(cfg.Server,
		remote.WithTimeout(cfg.Timeout),
		remote.WithLogger(log),
	)
}
