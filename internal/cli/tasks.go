package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"taskboard/internal/model"
	"taskboard/internal/mutate"
	"taskboard/internal/state"
	"taskboard/internal/statusutil"
	"taskboard/internal/view"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Task commands",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksEditCmd(app))
	cmd.AddCommand(newTasksMoveCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	cmd.AddCommand(newTasksCopyCmd(app))
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var boardID, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a board's tasks in display order (default: active board)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				st, err := s.snapshot(cmd)
				if err != nil {
					return err
				}
				id, err := boardOrActive(st, boardID)
				if err != nil {
					return err
				}
				var want model.Status
				if strings.TrimSpace(status) != "" {
					if want, err = statusutil.ParseStatus(status); err != nil {
						return err
					}
				}
				out := []model.Task{}
				for _, t := range st.Tasks(id) {
					if want != "" && t.Status != want {
						continue
					}
					out = append(out, t)
				}
				return writeOut(cmd, app, map[string]any{"data": out})
			})
		},
	}

	cmd.Flags().StringVar(&boardID, "board", "", "Board id")
	cmd.Flags().StringVar(&status, "status", "", "Only tasks with this status")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	var boardID string

	cmd := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a task (searches every board unless --board is given)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				st, err := s.snapshot(cmd)
				if err != nil {
					return err
				}
				taskID := strings.TrimSpace(args[0])
				var (
					owner string
					t     *model.Task
				)
				if strings.TrimSpace(boardID) != "" {
					if t, err = st.RequireTask(boardID, taskID); err != nil {
						return err
					}
					owner = boardID
				} else {
					var ok bool
					owner, t, ok = st.FindTaskAnywhere(taskID)
					if !ok {
						return errNotFound("task", taskID)
					}
				}
				b, _ := st.FindBoard(owner)
				tagColors := map[string]view.TagColor{}
				for _, tag := range t.Tags {
					tagColors[tag] = view.ColorForTag(tag)
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"task":        t,
					"board":       b,
					"statusLabel": statusutil.Label(t.Status),
					"tagColors":   tagColors,
				}})
			})
		},
	}

	cmd.Flags().StringVar(&boardID, "board", "", "Board id")
	return cmd
}

func newTasksAddCmd(app *App) *cobra.Command {
	var (
		boardID, title, status, background, after string
		tags                                      []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task (default: active board, backlog)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				in := mutate.TaskInput{Title: title, Tags: tags, Background: background, After: after}
				if strings.TrimSpace(status) != "" {
					parsed, err := statusutil.ParseStatus(status)
					if err != nil {
						return err
					}
					in.Status = parsed
				}
				var t model.Task
				if _, err := s.update(cmd, "task.add", func(st *state.State) error {
					id, err := boardOrActive(st, boardID)
					if err != nil {
						return err
					}
					t, err = mutate.AddTask(st, id, in)
					return err
				}); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": t})
			})
		},
	}

	cmd.Flags().StringVar(&boardID, "board", "", "Board id")
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&status, "status", "", "Status (backlog|in-progress|in-review|completed)")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Tag (repeatable)")
	cmd.Flags().StringVar(&background, "background", "", "Background image reference")
	cmd.Flags().StringVar(&after, "after", "", "Insert directly after this task id")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTasksEditCmd(app *App) *cobra.Command {
	var (
		boardID, title, status, background string
		tags                               []string
		clearTags                          bool
	)

	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Change individual task fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				p := state.TaskPatch{ID: strings.TrimSpace(args[0])}
				if cmd.Flags().Changed("title") {
					v := strings.TrimSpace(title)
					if v == "" {
						return mutate.ValidationError{Field: "title", Message: "Name required"}
					}
					p.Title = &v
				}
				if cmd.Flags().Changed("status") {
					v, err := statusutil.ParseStatus(status)
					if err != nil {
						return err
					}
					p.Status = &v
				}
				if cmd.Flags().Changed("tag") || clearTags {
					v := mutate.NormalizeTags(tags)
					p.Tags = &v
				}
				if cmd.Flags().Changed("background") {
					v := strings.TrimSpace(background)
					p.Background = &v
				}
				if p.Title == nil && p.Status == nil && p.Tags == nil && p.Background == nil {
					return errors.New("nothing to change; pass --title, --status, --tag, --clear-tags or --background")
				}

				var owner string
				st, err := s.update(cmd, "task.edit", func(st *state.State) error {
					id, err := taskBoard(st, boardID, p.ID)
					if err != nil {
						return err
					}
					owner = id
					st.UpdateTask(id, p)
					return nil
				})
				if err != nil {
					return err
				}
				t, _ := st.FindTask(owner, p.ID)
				return writeOut(cmd, app, map[string]any{"data": t})
			})
		},
	}

	cmd.Flags().StringVar(&boardID, "board", "", "Board id (default: the board holding the task)")
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&status, "status", "", "New status")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Replace tags (repeatable)")
	cmd.Flags().BoolVar(&clearTags, "clear-tags", false, "Remove all tags")
	cmd.Flags().StringVar(&background, "background", "", "Background image reference (empty clears)")
	return cmd
}

func newTasksMoveCmd(app *App) *cobra.Command {
	var boardID string

	cmd := &cobra.Command{
		Use:   "move <task-id> <status>",
		Short: "Move a task to another status column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				var res mutate.SetStatusResult
				if _, err := s.update(cmd, "task.move", func(st *state.State) error {
					id, err := taskBoard(st, boardID, args[0])
					if err != nil {
						return err
					}
					res, err = mutate.SetTaskStatus(st, id, args[0], args[1])
					if err == nil {
						cp := res.Task.Clone()
						res.Task = &cp
					}
					return err
				}); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"task":    res.Task,
					"changed": res.Changed,
				}})
			})
		},
	}

	cmd.Flags().StringVar(&boardID, "board", "", "Board id (default: the board holding the task)")
	return cmd
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	var boardID string

	cmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				var owner string
				if _, err := s.update(cmd, "task.delete", func(st *state.State) error {
					id, err := taskBoard(st, boardID, args[0])
					if err != nil {
						return err
					}
					owner = id
					return mutate.DeleteTask(st, id, args[0])
				}); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"deleted": args[0],
					"boardID": owner,
				}})
			})
		},
	}

	cmd.Flags().StringVar(&boardID, "board", "", "Board id (default: the board holding the task)")
	return cmd
}

func newTasksCopyCmd(app *App) *cobra.Command {
	var boardID string

	cmd := &cobra.Command{
		Use:   "copy <task-id>",
		Short: "Duplicate a task directly after its source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				var t model.Task
				if _, err := s.update(cmd, "task.copy", func(st *state.State) error {
					id, err := taskBoard(st, boardID, args[0])
					if err != nil {
						return err
					}
					row, ok := view.FindRow(view.GridRows(st), view.RowID(id, args[0]))
					if !ok {
						return errNotFound("task", args[0])
					}
					t, err = mutate.CopyRow(st, row)
					return err
				}); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": t})
			})
		},
	}

	cmd.Flags().StringVar(&boardID, "board", "", "Board id (default: the board holding the task)")
	return cmd
}

// taskBoard resolves which board holds taskID: the explicit board when given,
// else the active board when it has the task, else the first board that does.
func taskBoard(st *state.State, boardID, taskID string) (string, error) {
	taskID = strings.TrimSpace(taskID)
	if strings.TrimSpace(boardID) != "" {
		if _, err := st.RequireTask(boardID, taskID); err != nil {
			return "", err
		}
		return boardID, nil
	}
	if _, ok := st.FindTask(st.ActiveBoardID, taskID); ok {
		return st.ActiveBoardID, nil
	}
	owner, _, ok := st.FindTaskAnywhere(taskID)
	if !ok {
		return "", errNotFound("task", taskID)
	}
	return owner, nil
}
