package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskboard/internal/model"
	"taskboard/internal/state"
)

func newThemeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Theme mode (dark|light)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showTheme(cmd, app)
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the theme mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showTheme(cmd, app)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <dark|light>",
		Short: "Set the theme mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := model.ThemeMode(strings.ToLower(strings.TrimSpace(args[0])))
			if mode != model.ThemeDark && mode != model.ThemeLight {
				return writeErr(cmd, fmt.Errorf("invalid theme mode: %q (expected dark|light)", args[0]))
			}
			return updateTheme(cmd, app, "theme.set", func(st *state.State) { st.SetThemeMode(mode) })
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between dark and light",
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateTheme(cmd, app, "theme.toggle", func(st *state.State) { st.ToggleThemeMode() })
		},
	})
	return cmd
}

func showTheme(cmd *cobra.Command, app *App) error {
	return withSession(cmd, app, func(s *session) error {
		st, err := s.snapshot(cmd)
		if err != nil {
			return err
		}
		return writeOut(cmd, app, map[string]any{"data": st.Theme})
	})
}

func updateTheme(cmd *cobra.Command, app *App, name string, fn func(*state.State)) error {
	return withSession(cmd, app, func(s *session) error {
		st, err := s.update(cmd, name, func(st *state.State) error {
			fn(st)
			return nil
		})
		if err != nil {
			return err
		}
		return writeOut(cmd, app, map[string]any{"data": st.Theme})
	})
}
