package mutate

import (
	"strings"

	"github.com/google/uuid"

	"taskboard/internal/model"
	"taskboard/internal/state"
)

// ApplyRowEdit commits an edited grid row. The task fields always go through
// a full update; the board is renamed only when the project cell changed.
func ApplyRowEdit(st *state.State, oldRow, newRow model.GridRow) error {
	if _, err := st.RequireTask(newRow.ProjectID, newRow.TaskID); err != nil {
		return err
	}
	title := strings.TrimSpace(newRow.TaskTitle)
	if title == "" {
		return ValidationError{Field: "taskTitle", Message: "Name required"}
	}
	if !newRow.Status.Valid() {
		return ErrInvalidStatus
	}
	t := model.Task{
		ID:         newRow.TaskID,
		Title:      title,
		Status:     newRow.Status,
		Tags:       NormalizeTags(newRow.Tags),
		Background: newRow.Background,
	}
	st.UpdateTask(newRow.ProjectID, state.FullPatch(t))

	name := strings.TrimSpace(newRow.ProjectName)
	if name != "" && name != oldRow.ProjectName {
		st.UpdateBoardName(newRow.ProjectID, name)
	}
	return nil
}

// CopyRow duplicates a row's task under a fresh id, directly after the source.
func CopyRow(st *state.State, row model.GridRow) (model.Task, error) {
	if _, err := st.RequireTask(row.ProjectID, row.TaskID); err != nil {
		return model.Task{}, err
	}
	t := model.Task{
		ID:         uuid.NewString(),
		Title:      row.TaskTitle,
		Status:     row.Status,
		Tags:       append([]string{}, row.Tags...),
		Background: row.Background,
	}
	t = t.Clone()
	st.AddTask(row.ProjectID, t, row.TaskID)
	return t, nil
}
