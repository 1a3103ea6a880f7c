package state

import (
	"strings"

	"taskboard/internal/model"
)

// SetBoards replaces the board list. The active board is chosen when none is
// selected yet or the selected one was dropped; task collections of dropped
// boards go with them.
func (s *State) SetBoards(boards []model.Board) {
	s.Boards = append([]model.Board{}, boards...)
	s.pruneOrphans()
}

// AddBoard appends b and makes it the active board. Adding an id that already
// exists only re-selects it.
func (s *State) AddBoard(b model.Board) {
	b.ID = strings.TrimSpace(b.ID)
	if b.ID == "" {
		return
	}
	if _, ok := s.FindBoard(b.ID); !ok {
		s.Boards = append(s.Boards, b)
	}
	if _, ok := s.TasksByBoardID[b.ID]; !ok {
		s.TasksByBoardID[b.ID] = []model.Task{}
	}
	s.ActiveBoardID = b.ID
}

func (s *State) UpdateBoardName(boardID, name string) {
	if b, ok := s.FindBoard(boardID); ok {
		b.Name = name
	}
}

// DeleteBoard removes the board together with its task collection. When the
// active board goes away the new first board (or none) becomes active.
func (s *State) DeleteBoard(boardID string) {
	out := make([]model.Board, 0, len(s.Boards))
	for _, b := range s.Boards {
		if b.ID != boardID {
			out = append(out, b)
		}
	}
	s.Boards = out
	s.DeleteTasksForBoard(boardID)
	delete(s.TasksFetch, boardID)
	if s.ActiveBoardID == boardID {
		s.ActiveBoardID = s.firstBoardID()
	}
}

// SetActiveBoardID selects a board. Unknown ids are ignored so the active id
// always names an existing board.
func (s *State) SetActiveBoardID(boardID string) {
	if _, ok := s.FindBoard(boardID); ok {
		s.ActiveBoardID = boardID
	}
}
