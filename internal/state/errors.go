package state

import (
	"fmt"

	"taskboard/internal/model"
)

// NotFoundError is returned by lookup helpers. Transitions never return it;
// an unknown id is a silent no-op there.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func (s *State) RequireBoard(id string) (*model.Board, error) {
	b, ok := s.FindBoard(id)
	if !ok {
		return nil, NotFoundError{Kind: "board", ID: id}
	}
	return b, nil
}

func (s *State) RequireTask(boardID, taskID string) (*model.Task, error) {
	if _, err := s.RequireBoard(boardID); err != nil {
		return nil, err
	}
	t, ok := s.FindTask(boardID, taskID)
	if !ok {
		return nil, NotFoundError{Kind: "task", ID: taskID}
	}
	return t, nil
}
