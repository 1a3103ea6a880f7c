package state

import (
	"sort"
	"strings"

	"taskboard/internal/model"
)

// FetchStatus tracks one outstanding remote request. Error holds the last
// failure message until the request is re-issued.
type FetchStatus struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// State is the normalized root aggregate.
//
// It is not safe for concurrent use: all transitions are applied by a single
// writer (see internal/engine), and readers work on Clone()d snapshots.
type State struct {
	Boards         []model.Board
	ActiveBoardID  string
	TasksByBoardID map[string][]model.Task

	Grid  model.GridState
	Theme model.Theme

	// Transient UI state. Never persisted.
	DialogOpen  bool
	EditingTask *model.Task

	// Transient fetch state. Never persisted.
	BoardsFetch FetchStatus
	TasksFetch  map[string]FetchStatus
}

func New() *State {
	return &State{
		Boards:         []model.Board{},
		TasksByBoardID: map[string][]model.Task{},
		Grid: model.GridState{
			ColumnOrder:      []string{},
			ColumnVisibility: map[string]bool{},
		},
		Theme:      model.Theme{Mode: model.ThemeDark},
		TasksFetch: map[string]FetchStatus{},
	}
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	out := &State{
		Boards:         append([]model.Board{}, s.Boards...),
		ActiveBoardID:  s.ActiveBoardID,
		TasksByBoardID: make(map[string][]model.Task, len(s.TasksByBoardID)),
		Grid: model.GridState{
			ColumnOrder:      append([]string{}, s.Grid.ColumnOrder...),
			ColumnVisibility: make(map[string]bool, len(s.Grid.ColumnVisibility)),
		},
		Theme:       s.Theme,
		DialogOpen:  s.DialogOpen,
		BoardsFetch: s.BoardsFetch,
		TasksFetch:  make(map[string]FetchStatus, len(s.TasksFetch)),
	}
	for id, tasks := range s.TasksByBoardID {
		out.TasksByBoardID[id] = cloneTasks(tasks)
	}
	for k, v := range s.Grid.ColumnVisibility {
		out.Grid.ColumnVisibility[k] = v
	}
	for k, v := range s.TasksFetch {
		out.TasksFetch[k] = v
	}
	if s.EditingTask != nil {
		t := s.EditingTask.Clone()
		out.EditingTask = &t
	}
	return out
}

func cloneTasks(tasks []model.Task) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Clone())
	}
	return out
}

// Normalize repairs a state that did not come from transitions (e.g. one
// rehydrated from storage): task collections of unknown boards are dropped,
// duplicate board/task ids keep their first occurrence, and the active board
// is re-pointed at an existing board.
func (s *State) Normalize() {
	if s.TasksByBoardID == nil {
		s.TasksByBoardID = map[string][]model.Task{}
	}
	if s.TasksFetch == nil {
		s.TasksFetch = map[string]FetchStatus{}
	}
	if s.Grid.ColumnVisibility == nil {
		s.Grid.ColumnVisibility = map[string]bool{}
	}
	if s.Grid.ColumnOrder == nil {
		s.Grid.ColumnOrder = []string{}
	}
	if s.Theme.Mode != model.ThemeLight {
		s.Theme.Mode = model.ThemeDark
	}

	seen := map[string]bool{}
	boards := make([]model.Board, 0, len(s.Boards))
	for _, b := range s.Boards {
		b.ID = strings.TrimSpace(b.ID)
		if b.ID == "" || seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		boards = append(boards, b)
	}
	s.Boards = boards

	// Collection keys get the same trimming as board ids. Collections that
	// collapse onto one key are concatenated in key order.
	byBoard := make(map[string][]model.Task, len(s.TasksByBoardID))
	keys := make([]string, 0, len(s.TasksByBoardID))
	for id := range s.TasksByBoardID {
		keys = append(keys, id)
	}
	sort.Strings(keys)
	for _, id := range keys {
		trimmed := strings.TrimSpace(id)
		byBoard[trimmed] = append(byBoard[trimmed], s.TasksByBoardID[id]...)
	}
	for id, tasks := range byBoard {
		byBoard[id] = dedupeTasks(tasks)
	}
	s.TasksByBoardID = byBoard
	s.ActiveBoardID = strings.TrimSpace(s.ActiveBoardID)

	s.pruneOrphans()
}

// pruneOrphans drops task collections and fetch flags of boards that are not
// in the list and re-points a dangling active board at the first one.
func (s *State) pruneOrphans() {
	present := make(map[string]bool, len(s.Boards))
	for _, b := range s.Boards {
		present[b.ID] = true
	}
	for id := range s.TasksByBoardID {
		if !present[id] {
			delete(s.TasksByBoardID, id)
		}
	}
	for id := range s.TasksFetch {
		if !present[id] {
			delete(s.TasksFetch, id)
		}
	}
	if !present[s.ActiveBoardID] {
		s.ActiveBoardID = s.firstBoardID()
	}
}

func dedupeTasks(tasks []model.Task) []model.Task {
	seen := make(map[string]bool, len(tasks))
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID == "" || seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		t.Tags = model.NormalizeTags(t.Tags)
		out = append(out, t)
	}
	return out
}

func (s *State) firstBoardID() string {
	if len(s.Boards) == 0 {
		return ""
	}
	return s.Boards[0].ID
}

func (s *State) FindBoard(id string) (*model.Board, bool) {
	id = strings.TrimSpace(id)
	for i := range s.Boards {
		if s.Boards[i].ID == id {
			return &s.Boards[i], true
		}
	}
	return nil, false
}

func (s *State) ActiveBoard() (*model.Board, bool) {
	if s.ActiveBoardID == "" {
		return nil, false
	}
	return s.FindBoard(s.ActiveBoardID)
}

// Tasks returns the board's task collection in display order.
func (s *State) Tasks(boardID string) []model.Task {
	return s.TasksByBoardID[boardID]
}

func (s *State) FindTask(boardID, taskID string) (*model.Task, bool) {
	tasks := s.TasksByBoardID[boardID]
	for i := range tasks {
		if tasks[i].ID == taskID {
			return &tasks[i], true
		}
	}
	return nil, false
}

// FindTaskAnywhere resolves a task id without a board, scanning boards in
// display order. Task ids are only unique per board, so the first match wins.
func (s *State) FindTaskAnywhere(taskID string) (string, *model.Task, bool) {
	taskID = strings.TrimSpace(taskID)
	for _, b := range s.Boards {
		if t, ok := s.FindTask(b.ID, taskID); ok {
			return b.ID, t, true
		}
	}
	return "", nil, false
}

// Loading reports whether any fetch is outstanding.
func (s *State) Loading() bool {
	if s.BoardsFetch.Loading {
		return true
	}
	for _, f := range s.TasksFetch {
		if f.Loading {
			return true
		}
	}
	return false
}
