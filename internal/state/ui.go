package state

import (
	"taskboard/internal/model"
)

// Grid columns that can never be hidden.
var LockedGridColumns = []string{"projectName", "taskTitle"}

func (s *State) OpenAddTaskDialog() {
	s.DialogOpen = true
	s.EditingTask = nil
}

// OpenEditTaskDialog snapshots t so the dialog can pre-fill from it.
func (s *State) OpenEditTaskDialog(t model.Task) {
	snap := t.Clone()
	s.DialogOpen = true
	s.EditingTask = &snap
}

func (s *State) CloseTaskDialog() {
	s.DialogOpen = false
	s.EditingTask = nil
}

func (s *State) SetColumnOrder(order []string) {
	s.Grid.ColumnOrder = append([]string{}, order...)
}

func (s *State) SetColumnVisibility(vis map[string]bool) {
	out := make(map[string]bool, len(vis)+len(LockedGridColumns))
	for k, v := range vis {
		out[k] = v
	}
	for _, k := range LockedGridColumns {
		out[k] = true
	}
	s.Grid.ColumnVisibility = out
}

func (s *State) SetThemeMode(mode model.ThemeMode) {
	switch mode {
	case model.ThemeDark, model.ThemeLight:
		s.Theme.Mode = mode
	}
}

func (s *State) ToggleThemeMode() {
	if s.Theme.Mode == model.ThemeDark {
		s.Theme.Mode = model.ThemeLight
		return
	}
	s.Theme.Mode = model.ThemeDark
}

func (s *State) BeginBoardsFetch() {
	s.BoardsFetch = FetchStatus{Loading: true}
}

// FailBoardsFetch records the failure and leaves the board list untouched.
func (s *State) FailBoardsFetch(msg string) {
	s.BoardsFetch = FetchStatus{Error: msg}
}

func (s *State) BeginTasksFetch(boardID string) {
	s.TasksFetch[boardID] = FetchStatus{Loading: true}
}

// FailTasksFetch records a failure scoped to one board's request.
func (s *State) FailTasksFetch(boardID, msg string) {
	if _, ok := s.FindBoard(boardID); !ok {
		delete(s.TasksFetch, boardID)
		return
	}
	s.TasksFetch[boardID] = FetchStatus{Error: msg}
}
