package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newSyncCmd(app *App) *cobra.Command {
	var boardsOnly bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch boards and tasks from the remote source and merge them in",
		Long: `Fetch the remote board list, then every board's tasks concurrently.

Remote data never overwrites local edits: boards from the remote are listed
first, local-only boards are kept, and tasks already present locally win on
id collision. Per-board failures are reported but do not stop other boards.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				if s.settings.Offline {
					return errors.New("sync is unavailable with --offline")
				}
				ctx := ctxOf(cmd)
				if boardsOnly {
					if err := s.engine.ReloadBoards(ctx); err != nil {
						return err
					}
					st, err := s.snapshot(cmd)
					if err != nil {
						return err
					}
					return writeOut(cmd, app, map[string]any{"data": map[string]any{"boards": len(st.Boards)}})
				}

				res, err := s.engine.Sync(ctx)
				if err != nil && res.BoardsError != "" && res.Boards == 0 {
					return err
				}
				for id, msg := range res.Failed {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: board %s: %s\n", id, msg)
				}
				if res.BoardsError != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: board list: %s\n", res.BoardsError)
				}
				return writeOut(cmd, app, map[string]any{"data": res})
			})
		},
	}

	cmd.Flags().BoolVar(&boardsOnly, "boards-only", false, "Only refresh the board list")
	return cmd
}
