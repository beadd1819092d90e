package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/rota/pkg/commands/options"
	"tableflip.dev/rota/pkg/runner/shifts"
)

func addShifts(topLevel *cobra.Command) {
	qo := &options.QuarterOptions{}
	oo := &base.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "shifts",
		Aliases: []string{"ls", "quarter"},
		Short:   "Show the shifts of a quarter",
		Example: `
rota shifts
rota shifts --offset -1
rota shifts --json
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			s := shifts.Shifts{
				Source: newClient(cliLogger()),
				Offset: qo.Offset,
				JSON:   oo.JSON,
			}
			err := s.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	options.AddQuarterArgs(cmd, qo)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
