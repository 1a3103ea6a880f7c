// Package view computes read-only projections of the normalized state. Nothing
// here holds state of its own; callers recompute after every transition.
package view

import (
	"strings"

	"taskboard/internal/model"
	"taskboard/internal/state"
	"taskboard/internal/statusutil"
)

// RowID is the composite grid-row id. Task ids are only unique per board.
func RowID(boardID, taskID string) string {
	return boardID + "-" + taskID
}

// GridRows flattens every task of every board, in board then task order.
func GridRows(st *state.State) []model.GridRow {
	rows := []model.GridRow{}
	for _, b := range st.Boards {
		for _, t := range st.Tasks(b.ID) {
			t = t.Clone()
			tags := t.Tags
			if tags == nil {
				tags = []string{}
			}
			rows = append(rows, model.GridRow{
				ID:          RowID(b.ID, t.ID),
				TaskID:      t.ID,
				TaskTitle:   t.Title,
				ProjectID:   b.ID,
				ProjectName: b.Name,
				Status:      t.Status,
				Tags:        tags,
				Background:  t.Background,
			})
		}
	}
	return rows
}

func FindRow(rows []model.GridRow, id string) (model.GridRow, bool) {
	id = strings.TrimSpace(id)
	for _, r := range rows {
		if r.ID == id {
			return r, true
		}
	}
	return model.GridRow{}, false
}

type Column struct {
	Status model.Status `json:"status" yaml:"status"`
	Label  string       `json:"label" yaml:"label"`
	Tasks  []model.Task `json:"tasks" yaml:"tasks"`
}

// Columns buckets the active board's tasks by status, keeping each task's
// relative order from the underlying sequence. With no active board every
// column is empty.
func Columns(st *state.State) []Column {
	cols := make([]Column, 0, len(model.Statuses))
	idx := make(map[model.Status]int, len(model.Statuses))
	for i, s := range model.Statuses {
		idx[s] = i
		cols = append(cols, Column{Status: s, Label: statusutil.Label(s), Tasks: []model.Task{}})
	}
	if st.ActiveBoardID == "" {
		return cols
	}
	for _, t := range st.Tasks(st.ActiveBoardID) {
		i, ok := idx[t.Status]
		if !ok {
			// Unknown statuses land in the backlog column.
			i = 0
		}
		cols[i].Tasks = append(cols[i].Tasks, t.Clone())
	}
	return cols
}

// GridColumns are the editable grid fields in default display order.
var GridColumns = []string{"projectName", "taskTitle", "status", "tags", "background"}

// OrderedGridColumns applies a saved column order: known saved fields first in
// their saved order, then any remaining defaults. Hidden columns are dropped.
func OrderedGridColumns(g model.GridState) []string {
	known := map[string]bool{}
	for _, c := range GridColumns {
		known[c] = true
	}
	out := make([]string, 0, len(GridColumns))
	used := map[string]bool{}
	add := func(c string) {
		if used[c] || !known[c] {
			return
		}
		used[c] = true
		if visible, ok := g.ColumnVisibility[c]; ok && !visible {
			return
		}
		out = append(out, c)
	}
	for _, c := range g.ColumnOrder {
		add(c)
	}
	for _, c := range GridColumns {
		add(c)
	}
	return out
}
