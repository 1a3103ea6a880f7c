package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const uiStateFileName = "ui_state.json"

// UIState restores where the TUI was left. It is best effort: callers should
// tolerate missing or invalid data.
type UIState struct {
	Version int `json:"version"`

	// View is one of: board|grid
	View string `json:"view,omitempty"`

	// Column is the focused status column in the board view.
	Column int `json:"column,omitempty"`

	SelectedTaskID string `json:"selectedTaskId,omitempty"`
	ShowDetail     bool   `json:"showDetail,omitempty"`
}

func (s Store) uiStatePath() string {
	return filepath.Join(s.Dir, uiStateFileName)
}

func (s Store) LoadUIState() (*UIState, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return &UIState{Version: 1}, nil
	}
	b, err := os.ReadFile(s.uiStatePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &UIState{Version: 1}, nil
		}
		return nil, err
	}
	var st UIState
	if err := json.Unmarshal(b, &st); err != nil {
		// If corrupted, treat as missing.
		return &UIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func (s Store) SaveUIState(st *UIState) error {
	if st == nil || strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(s.Dir, "ui_state.json.*.tmp", s.uiStatePath(), b, 0o644)
}
