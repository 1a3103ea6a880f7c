package mutate

import (
	"strings"

	"github.com/google/uuid"

	"taskboard/internal/model"
	"taskboard/internal/state"
	"taskboard/internal/statusutil"
)

// TaskInput is what the task dialog (or a CLI flag set) collects.
type TaskInput struct {
	Title      string
	Status     model.Status
	Tags       []string
	Background string
	// After places a new task directly behind an existing one.
	After string
}

func (in TaskInput) validate() (TaskInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, ValidationError{Field: "title", Message: "Name required"}
	}
	if in.Status == "" {
		in.Status = model.StatusBacklog
	}
	if !in.Status.Valid() {
		return in, ErrInvalidStatus
	}
	in.Tags = NormalizeTags(in.Tags)
	in.Background = strings.TrimSpace(in.Background)
	return in, nil
}

func (in TaskInput) task(id string) model.Task {
	t := model.Task{ID: id, Title: in.Title, Status: in.Status, Tags: in.Tags}
	if in.Background != "" {
		bg := in.Background
		t.Background = &bg
	}
	return t
}

// AddTask appends a new task with a fresh id to boardID.
func AddTask(st *state.State, boardID string, in TaskInput) (model.Task, error) {
	if _, err := st.RequireBoard(boardID); err != nil {
		return model.Task{}, err
	}
	in, err := in.validate()
	if err != nil {
		return model.Task{}, err
	}
	t := in.task(uuid.NewString())
	st.AddTask(boardID, t, strings.TrimSpace(in.After))
	return t, nil
}

// EditTask fully replaces the mutable fields of an existing task.
func EditTask(st *state.State, boardID, taskID string, in TaskInput) (model.Task, error) {
	if _, err := st.RequireTask(boardID, taskID); err != nil {
		return model.Task{}, err
	}
	in, err := in.validate()
	if err != nil {
		return model.Task{}, err
	}
	t := in.task(taskID)
	st.UpdateTask(boardID, state.FullPatch(t))
	return t, nil
}

// SaveTaskDialog commits the open dialog against the active board: an edit
// when the dialog was opened on an existing task, an add otherwise. The dialog
// is closed only on success.
func SaveTaskDialog(st *state.State, in TaskInput) (model.Task, error) {
	boardID := st.ActiveBoardID
	var (
		t   model.Task
		err error
	)
	if st.EditingTask != nil {
		t, err = EditTask(st, boardID, st.EditingTask.ID, in)
	} else {
		t, err = AddTask(st, boardID, in)
	}
	if err != nil {
		return model.Task{}, err
	}
	st.CloseTaskDialog()
	return t, nil
}

type SetStatusResult struct {
	Task    *model.Task
	Changed bool
}

// SetTaskStatus moves a task to another column. Aliases accepted by
// statusutil.ParseStatus are resolved first.
func SetTaskStatus(st *state.State, boardID, taskID, status string) (SetStatusResult, error) {
	t, err := st.RequireTask(boardID, taskID)
	if err != nil {
		return SetStatusResult{}, err
	}
	s, err := statusutil.ParseStatus(status)
	if err != nil {
		return SetStatusResult{}, ErrInvalidStatus
	}
	if t.Status == s {
		return SetStatusResult{Task: t, Changed: false}, nil
	}
	st.MoveTask(boardID, taskID, s)
	t, _ = st.FindTask(boardID, taskID)
	return SetStatusResult{Task: t, Changed: true}, nil
}

func DeleteTask(st *state.State, boardID, taskID string) error {
	if _, err := st.RequireTask(boardID, taskID); err != nil {
		return err
	}
	st.DeleteTaskByID(boardID, taskID)
	return nil
}
