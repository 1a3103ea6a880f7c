package state

import (
	"taskboard/internal/model"
)

// TaskPatch is a field-level update. Nil fields are left untouched; an empty
// Background clears the image.
type TaskPatch struct {
	ID         string
	Title      *string
	Status     *model.Status
	Tags       *[]string
	Background *string
}

// FullPatch builds a patch that replaces every mutable field of the task with
// the same id.
func FullPatch(t model.Task) TaskPatch {
	title := t.Title
	status := t.Status
	tags := append([]string{}, t.Tags...)
	bg := ""
	if t.Background != nil {
		bg = *t.Background
	}
	return TaskPatch{ID: t.ID, Title: &title, Status: &status, Tags: &tags, Background: &bg}
}

func (p TaskPatch) apply(t *model.Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Status != nil && p.Status.Valid() {
		t.Status = *p.Status
	}
	if p.Tags != nil {
		t.Tags = model.NormalizeTags(*p.Tags)
	}
	if p.Background != nil {
		if *p.Background == "" {
			t.Background = nil
		} else {
			bg := *p.Background
			t.Background = &bg
		}
	}
}

// SetTasksForBoard replaces a board's collection wholesale.
func (s *State) SetTasksForBoard(boardID string, tasks []model.Task) {
	if _, ok := s.FindBoard(boardID); !ok {
		return
	}
	s.TasksByBoardID[boardID] = dedupeTasks(cloneTasks(tasks))
}

// AddTask inserts t into the board's collection, immediately after nearTaskID
// when that task exists and at the end otherwise. A board without a collection
// gets one. Ids already present in the board are ignored.
func (s *State) AddTask(boardID string, t model.Task, nearTaskID string) {
	if _, ok := s.FindBoard(boardID); !ok || t.ID == "" {
		return
	}
	tasks := s.TasksByBoardID[boardID]
	if tasks == nil {
		tasks = []model.Task{}
	}
	pos := len(tasks)
	for i := range tasks {
		if tasks[i].ID == t.ID {
			return
		}
		if nearTaskID != "" && tasks[i].ID == nearTaskID {
			pos = i + 1
		}
	}
	t = t.Clone()
	t.Tags = model.NormalizeTags(t.Tags)
	tasks = append(tasks, model.Task{})
	copy(tasks[pos+1:], tasks[pos:])
	tasks[pos] = t
	s.TasksByBoardID[boardID] = tasks
}

func (s *State) UpdateTask(boardID string, p TaskPatch) {
	if t, ok := s.FindTask(boardID, p.ID); ok {
		p.apply(t)
	}
}

// MoveTask changes only the status; the task keeps its place in the sequence.
func (s *State) MoveTask(boardID, taskID string, status model.Status) {
	if !status.Valid() {
		return
	}
	if t, ok := s.FindTask(boardID, taskID); ok {
		t.Status = status
	}
}

func (s *State) DeleteTaskByID(boardID, taskID string) {
	tasks, ok := s.TasksByBoardID[boardID]
	if !ok {
		return
	}
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != taskID {
			out = append(out, t)
		}
	}
	s.TasksByBoardID[boardID] = out
}

func (s *State) DeleteTasksForBoard(boardID string) {
	delete(s.TasksByBoardID, boardID)
}
