package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"taskboard/internal/tui"
)

// runTUI opens the interactive board. Logs go to tui.log in the data dir while
// the terminal is in alt-screen mode.
func runTUI(cmd *cobra.Command, app *App) error {
	return withSession(cmd, app, func(s *session) error {
		if err := s.store.Ensure(); err != nil {
			return err
		}
		f, err := os.OpenFile(filepath.Join(s.store.Dir, "tui.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		s.log.SetOutput(f)

		cfg := s.settings.cfg
		opts := tui.Options{
			Store:       s.store,
			SyncOnStart: cfg.SyncOnStart() && !s.settings.Offline,
			Log:         s.log,
		}
		if cfg.TUI != nil {
			opts.ColorProfile = cfg.TUI.ColorProfile
		}
		return tui.Run(ctxOf(cmd), s.engine, opts)
	})
}
