package cli

import (
	"github.com/spf13/cobra"

	"taskboard/internal/model"
	"taskboard/internal/mutate"
	"taskboard/internal/state"
)

func newBoardsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "boards",
		Aliases: []string{"board"},
		Short:   "Board commands",
	}
	cmd.AddCommand(newBoardsListCmd(app))
	cmd.AddCommand(newBoardsShowCmd(app))
	cmd.AddCommand(newBoardsCreateCmd(app))
	cmd.AddCommand(newBoardsRenameCmd(app))
	cmd.AddCommand(newBoardsDeleteCmd(app))
	cmd.AddCommand(newBoardsUseCmd(app))
	return cmd
}

type boardListEntry struct {
	model.Board
	Active    bool              `json:"active"`
	TaskCount int               `json:"taskCount"`
	Fetch     state.FetchStatus `json:"fetch"`
}

func newBoardsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List boards in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				st, err := s.snapshot(cmd)
				if err != nil {
					return err
				}
				out := make([]boardListEntry, 0, len(st.Boards))
				for _, b := range st.Boards {
					out = append(out, boardListEntry{
						Board:     b,
						Active:    b.ID == st.ActiveBoardID,
						TaskCount: len(st.Tasks(b.ID)),
						Fetch:     st.TasksFetch[b.ID],
					})
				}
				return writeOut(cmd, app, map[string]any{"data": out})
			})
		},
	}
	return cmd
}

func newBoardsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [board-id]",
		Short: "Show a board and its tasks (default: active board)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				st, err := s.snapshot(cmd)
				if err != nil {
					return err
				}
				id := ""
				if len(args) == 1 {
					id = args[0]
				}
				boardID, err := boardOrActive(st, id)
				if err != nil {
					return err
				}
				b, _ := st.FindBoard(boardID)
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"board":  b,
					"active": boardID == st.ActiveBoardID,
					"tasks":  st.Tasks(boardID),
					"fetch":  st.TasksFetch[boardID],
				}})
			})
		},
	}
	return cmd
}

func newBoardsCreateCmd(app *App) *cobra.Command {
	var name, emoji string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a local board and make it active",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				var b model.Board
				if _, err := s.update(cmd, "board.create", func(st *state.State) error {
					var err error
					b, err = mutate.CreateBoard(st, name, emoji)
					return err
				}); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": b})
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Board name")
	cmd.Flags().StringVar(&emoji, "emoji", "", "Board emoji (default: first logo)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newBoardsRenameCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename <board-id>",
		Short: "Rename a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				st, err := s.update(cmd, "board.rename", func(st *state.State) error {
					_, err := mutate.RenameBoard(st, args[0], name)
					return err
				})
				if err != nil {
					return err
				}
				b, _ := st.FindBoard(args[0])
				return writeOut(cmd, app, map[string]any{"data": b})
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New board name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newBoardsDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <board-id>",
		Short: "Delete a board and all of its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				st, err := s.update(cmd, "board.delete", func(st *state.State) error {
					return mutate.DeleteBoard(st, args[0])
				})
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"deleted":       args[0],
					"activeBoardID": st.ActiveBoardID,
				}})
			})
		},
	}
	return cmd
}

func newBoardsUseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <board-id>",
		Short: "Select the active board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				var b *model.Board
				if _, err := s.update(cmd, "board.use", func(st *state.State) error {
					found, err := mutate.UseBoard(st, args[0])
					if err == nil {
						cp := *found
						b = &cp
					}
					return err
				}); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": b})
			})
		},
	}
	return cmd
}
