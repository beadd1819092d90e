package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/rota/pkg/commands/options"
	"tableflip.dev/rota/pkg/runner/history"
)

func addHistory(topLevel *cobra.Command) {
	ho := &options.HistoryOptions{}
	oo := &base.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"log"},
		Short:   "Show recent changes, newest first",
		Example: `
rota history
rota history --limit 20
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			limit := ho.Limit
			if limit == 0 {
				limit = cfg.HistoryLimit
			}
			h := history.History{
				Source: newClient(cliLogger()),
				Limit:  limit,
				JSON:   oo.JSON,
			}
			err := h.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	options.AddHistoryArgs(cmd, ho)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
