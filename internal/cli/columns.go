package cli

import (
	"github.com/spf13/cobra"

	"taskboard/internal/view"
)

func newColumnsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Active board's tasks bucketed by status column",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				st, err := s.snapshot(cmd)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{
					"data": view.Columns(st),
					"meta": map[string]any{"activeBoardID": st.ActiveBoardID},
				})
			})
		},
	}
	return cmd
}
