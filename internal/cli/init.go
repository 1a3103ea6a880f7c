package cli

import (
	"github.com/spf13/cobra"

	"taskboard/internal/store"
)

func newInitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize local storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				if err := s.store.Ensure(); err != nil {
					return err
				}
				st, err := s.snapshot(cmd)
				if err != nil {
					return err
				}
				// Write the (possibly empty) root so later commands find a store.
				if err := s.gateway.Save(ctxOf(cmd), st); err != nil {
					return err
				}
				data := map[string]any{
					"dir":     s.settings.Dir,
					"storage": s.settings.Storage,
					"boards":  len(st.Boards),
				}
				if s.settings.Storage == store.BackendSQLite {
					data["sqlitePath"] = s.store.SQLitePath()
				}
				return writeOut(cmd, app, map[string]any{"data": data})
			})
		},
	}
	return cmd
}
