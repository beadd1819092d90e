package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/rota/pkg/runner/info"
)

func addNext(topLevel *cobra.Command) {
	oo := &base.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next upcoming shift",
		Example: `
rota next
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			n := info.Next{
				Store: newClient(cliLogger()),
				JSON:  oo.JSON,
			}
			err := n.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addTypes(topLevel *cobra.Command) {
	oo := &base.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the shift types and their hours",
		Example: `
rota types
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			t := info.Types{
				Store: newClient(cliLogger()),
				JSON:  oo.JSON,
			}
			err := t.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the configuration in use",
		Example: `
rota info
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			i := info.Info{
				Config: cfg,
				Store:  newClient(cliLogger()),
			}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
