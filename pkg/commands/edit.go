package commands

import (
	"errors"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/rota/pkg/runner/edit"
	"tableflip.dev/rota/pkg/shift"
)

func addSet(topLevel *cobra.Command) {
	oo := &base.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "set <date> <type>",
		Short: "Assign a shift to a day",
		Long: base.Wrap80("Assign a shift to a day, replacing whatever was there. " +
			"The date is yyyy-mm-dd, today or tomorrow. The type must be one the store knows, see rota types."),
		Example: `
rota set 2024-01-15 day8
rota set tomorrow night12
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires a date and a shift type")
			}
			return nil
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 1 {
				return shift.DefaultCatalog().Names(), cobra.ShellCompDirectiveNoFileComp
			}
			return []string{"today", "tomorrow"}, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s := edit.Set{
				Store: newClient(cliLogger()),
				Date:  args[0],
				Type:  args[1],
				JSON:  oo.JSON,
			}
			err := s.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <date>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove the shift on a day",
		Example: `
rota rm 2024-01-15
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a date")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			r := edit.Remove{
				Store: newClient(cliLogger()),
				Date:  args[0],
			}
			return r.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}

func addUndo(topLevel *cobra.Command) {
	oo := &base.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Revert the most recent change",
		Example: `
rota undo
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			u := edit.Undo{
				Store: newClient(cliLogger()),
				JSON:  oo.JSON,
			}
			err := u.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
