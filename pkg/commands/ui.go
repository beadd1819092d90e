package commands

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/rota/pkg/commands/options"
	"tableflip.dev/rota/pkg/logx"
	"tableflip.dev/rota/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	uo := &options.UIOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
rota ui
rota ui --view timeline
rota ui --server http://rota.local:8000 --no-live
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			fd := os.Stdout.Fd()
			if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
				return errors.New("ui needs an interactive terminal")
			}
			log, closer, err := logx.New(logx.Config{Level: cfg.LogLevel, File: cfg.LogFile, Quiet: true})
			if err != nil {
				return err
			}
			defer closer.Close()

			i := ui.UI{
				Config: cfg,
				Log:    log,
				View:   uo.View,
				Live:   !uo.NoLive,
			}
			return i.Do(cmd.Context())
		},
	}
	options.AddUIArgs(cmd, uo)

	topLevel.AddCommand(cmd)
}
