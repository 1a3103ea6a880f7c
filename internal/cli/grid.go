package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"taskboard/internal/model"
	"taskboard/internal/mutate"
	"taskboard/internal/state"
	"taskboard/internal/statusutil"
	"taskboard/internal/view"
)

func newGridCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Spreadsheet view over every board's tasks",
	}
	cmd.AddCommand(newGridRowsCmd(app))
	cmd.AddCommand(newGridEditCmd(app))
	cmd.AddCommand(newGridColumnsCmd(app))
	return cmd
}

func newGridRowsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rows",
		Short: "List grid rows (one per task, board order then task order)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				st, err := s.snapshot(cmd)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{
					"data": view.GridRows(st),
					"meta": map[string]any{"columns": view.OrderedGridColumns(st.Grid)},
				})
			})
		},
	}
	return cmd
}

func newGridEditCmd(app *App) *cobra.Command {
	var projectName, title, status, tags, background string

	cmd := &cobra.Command{
		Use:   "edit <row-id>",
		Short: "Edit cells of a grid row",
		Long: `Edit cells of a grid row. Row ids are <board-id>-<task-id>.

Changing --project-name renames the owning board.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				rowID := strings.TrimSpace(args[0])
				var updated model.GridRow
				st, err := s.update(cmd, "grid.edit", func(st *state.State) error {
					oldRow, ok := view.FindRow(view.GridRows(st), rowID)
					if !ok {
						return errNotFound("row", rowID)
					}
					newRow := oldRow
					newRow.Tags = append([]string{}, oldRow.Tags...)
					if cmd.Flags().Changed("project-name") {
						newRow.ProjectName = projectName
					}
					if cmd.Flags().Changed("title") {
						newRow.TaskTitle = title
					}
					if cmd.Flags().Changed("status") {
						v, err := statusutil.ParseStatus(status)
						if err != nil {
							return err
						}
						newRow.Status = v
					}
					if cmd.Flags().Changed("tags") {
						newRow.Tags = mutate.SplitTags(tags)
					}
					if cmd.Flags().Changed("background") {
						if v := strings.TrimSpace(background); v != "" {
							newRow.Background = &v
						} else {
							newRow.Background = nil
						}
					}
					updated = newRow
					return mutate.ApplyRowEdit(st, oldRow, newRow)
				})
				if err != nil {
					return err
				}
				row, ok := view.FindRow(view.GridRows(st), rowID)
				if !ok {
					row = updated
				}
				return writeOut(cmd, app, map[string]any{"data": row})
			})
		},
	}

	cmd.Flags().StringVar(&projectName, "project-name", "", "Rename the owning board")
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&status, "status", "", "Task status")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	cmd.Flags().StringVar(&background, "background", "", "Background image reference (empty clears)")
	return cmd
}

func newGridColumnsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Grid column layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				st, err := s.snapshot(cmd)
				if err != nil {
					return err
				}
				return writeGridLayout(cmd, app, st)
			})
		},
	}
	cmd.AddCommand(newGridColumnsOrderCmd(app))
	cmd.AddCommand(newGridColumnsVisibilityCmd(app))
	return cmd
}

func writeGridLayout(cmd *cobra.Command, app *App, st *state.State) error {
	return writeOut(cmd, app, map[string]any{"data": map[string]any{
		"columnOrder":      st.Grid.ColumnOrder,
		"columnVisibility": st.Grid.ColumnVisibility,
		"effective":        view.OrderedGridColumns(st.Grid),
	}})
}

func knownGridColumn(c string) bool {
	for _, k := range view.GridColumns {
		if k == c {
			return true
		}
	}
	return false
}

func newGridColumnsOrderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order <field>...",
		Short: "Set the grid column order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				order := make([]string, 0, len(args))
				for _, a := range args {
					for _, f := range strings.Split(a, ",") {
						f = strings.TrimSpace(f)
						if f == "" {
							continue
						}
						if !knownGridColumn(f) {
							return fmt.Errorf("unknown column: %q (expected one of %s)", f, strings.Join(view.GridColumns, ", "))
						}
						order = append(order, f)
					}
				}
				st, err := s.update(cmd, "grid.columns.order", func(st *state.State) error {
					st.SetColumnOrder(order)
					return nil
				})
				if err != nil {
					return err
				}
				return writeGridLayout(cmd, app, st)
			})
		},
	}
	return cmd
}

func newGridColumnsVisibilityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visibility <field>=<true|false>...",
		Short: "Show or hide grid columns (project and title always stay visible)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				changes := map[string]bool{}
				for _, a := range args {
					k, v, ok := strings.Cut(a, "=")
					k = strings.TrimSpace(k)
					if !ok || !knownGridColumn(k) {
						return fmt.Errorf("invalid visibility %q (expected <field>=<true|false>)", a)
					}
					b, err := strconv.ParseBool(strings.TrimSpace(v))
					if err != nil {
						return fmt.Errorf("invalid visibility %q: %w", a, err)
					}
					changes[k] = b
				}
				st, err := s.update(cmd, "grid.columns.visibility", func(st *state.State) error {
					vis := map[string]bool{}
					for k, v := range st.Grid.ColumnVisibility {
						vis[k] = v
					}
					for k, v := range changes {
						vis[k] = v
					}
					st.SetColumnVisibility(vis)
					return nil
				})
				if err != nil {
					return err
				}
				return writeGridLayout(cmd, app, st)
			})
		},
	}
	return cmd
}
