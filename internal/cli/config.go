package cli

import (
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show effective settings (flags, env and config file combined)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": s})
		},
	})
	return cmd
}
