package state

import (
	"strings"

	"taskboard/internal/model"
)

// MergeBoardLists puts the remote boards first (deduplicated by id) and keeps
// every local board whose id the remote list does not mention.
func MergeBoardLists(local, remote []model.Board) []model.Board {
	out := make([]model.Board, 0, len(remote)+len(local))
	seen := make(map[string]bool, len(remote))
	for _, b := range remote {
		b.ID = strings.TrimSpace(b.ID)
		if b.ID == "" || seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		out = append(out, b)
	}
	for _, b := range local {
		if seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		out = append(out, b)
	}
	return out
}

// MergeTaskLists appends every fetched task whose id is not already present.
// Existing tasks win on collision, so re-merging the same payload is a no-op.
func MergeTaskLists(existing, fetched []model.Task) []model.Task {
	out := make([]model.Task, 0, len(existing)+len(fetched))
	seen := make(map[string]bool, len(existing)+len(fetched))
	for _, t := range existing {
		seen[t.ID] = true
		out = append(out, t)
	}
	for _, t := range fetched {
		if t.ID == "" || seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		t = t.Clone()
		t.Tags = model.NormalizeTags(t.Tags)
		out = append(out, t)
	}
	return out
}

// MergeBoards applies a successful board-list fetch.
func (s *State) MergeBoards(fetched []model.Board) {
	s.BoardsFetch = FetchStatus{}
	s.Boards = MergeBoardLists(s.Boards, fetched)
	if s.ActiveBoardID == "" && len(s.Boards) > 0 {
		s.ActiveBoardID = s.Boards[0].ID
	}
}

// MergeTasks applies a successful per-board task fetch against whatever the
// board holds now. It returns the number of tasks added. A fetch that lands
// after its board was deleted is dropped.
func (s *State) MergeTasks(boardID string, fetched []model.Task) int {
	if _, ok := s.FindBoard(boardID); !ok {
		delete(s.TasksFetch, boardID)
		return 0
	}
	s.TasksFetch[boardID] = FetchStatus{}
	existing := s.TasksByBoardID[boardID]
	merged := MergeTaskLists(existing, fetched)
	s.TasksByBoardID[boardID] = merged
	return len(merged) - len(existing)
}
