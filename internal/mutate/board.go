package mutate

import (
	"strings"

	"github.com/google/uuid"

	"taskboard/internal/model"
	"taskboard/internal/state"
)

// BoardLogos is the fixed set a new board's emoji is picked from.
var BoardLogos = []string{"🛠️", "⚙️", "💻", "📝", "🚀", "🎨", "📚", "🎯"}

// PlaceholderTaskTitle seeds every newly created board.
const PlaceholderTaskTitle = "Add your backlogs here"

// CreateBoard adds a local board with a fresh id, makes it active and seeds it
// with a single backlog task.
func CreateBoard(st *state.State, name, emoji string) (model.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Board{}, ValidationError{Field: "name", Message: "Board name required"}
	}
	emoji = strings.TrimSpace(emoji)
	if emoji == "" {
		emoji = BoardLogos[0]
	}
	b := model.Board{ID: uuid.NewString(), Name: name, Emoji: emoji}
	st.AddBoard(b)
	st.AddTask(b.ID, model.Task{
		ID:     uuid.NewString(),
		Title:  PlaceholderTaskTitle,
		Status: model.StatusBacklog,
		Tags:   []string{},
	}, "")
	return b, nil
}

func RenameBoard(st *state.State, boardID, name string) (*model.Board, error) {
	b, err := st.RequireBoard(boardID)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ValidationError{Field: "name", Message: "Board name required"}
	}
	st.UpdateBoardName(b.ID, name)
	return b, nil
}

func DeleteBoard(st *state.State, boardID string) error {
	if _, err := st.RequireBoard(boardID); err != nil {
		return err
	}
	st.DeleteBoard(boardID)
	return nil
}

func UseBoard(st *state.State, boardID string) (*model.Board, error) {
	b, err := st.RequireBoard(boardID)
	if err != nil {
		return nil, err
	}
	st.SetActiveBoardID(b.ID)
	return b, nil
}
