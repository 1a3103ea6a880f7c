package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"taskboard/internal/model"
	"taskboard/internal/state"
)

var errNoSource = errors.New("no remote source configured")

// ReloadBoards fetches the board list and merges it in. On failure the board
// list is left as is and the error is recorded in the boards fetch status.
func (e *Engine) ReloadBoards(ctx context.Context) error {
	if err := e.Do(ctx, "boards.fetch.begin", func(st *state.State) error {
		st.BeginBoardsFetch()
		return nil
	}); err != nil {
		return err
	}

	boards, err := e.fetchBoardList(ctx)
	// Completions must land even if ctx was cancelled mid-flight.
	done := context.WithoutCancel(ctx)
	if err != nil {
		e.log.WithError(err).Warn("board list fetch failed")
		msg := err.Error()
		if perr := e.Do(done, "boards.fetch.fail", func(st *state.State) error {
			st.FailBoardsFetch(msg)
			return nil
		}); perr != nil {
			return perr
		}
		return err
	}

	e.log.WithField("boards_fetched", len(boards)).Debug("board list fetched")
	return e.Do(done, "boards.merge", func(st *state.State) error {
		st.MergeBoards(boards)
		return nil
	})
}

// LoadBoardTasks fetches one board's tasks and merges them against whatever
// the board holds when the result arrives. It returns how many tasks were new.
func (e *Engine) LoadBoardTasks(ctx context.Context, b model.Board) (int, error) {
	fields := log.Fields{"board_id": b.ID, "url": b.Link}
	if err := e.Do(ctx, "tasks.fetch.begin", func(st *state.State) error {
		st.BeginTasksFetch(b.ID)
		return nil
	}); err != nil {
		return 0, err
	}

	tasks, err := e.fetchBoardTasks(ctx, b)
	done := context.WithoutCancel(ctx)
	if err != nil {
		e.log.WithFields(fields).WithError(err).Warn("board tasks fetch failed")
		msg := err.Error()
		if perr := e.Do(done, "tasks.fetch.fail", func(st *state.State) error {
			st.FailTasksFetch(b.ID, msg)
			return nil
		}); perr != nil {
			return 0, perr
		}
		return 0, err
	}

	var added int
	if err := e.Do(done, "tasks.merge", func(st *state.State) error {
		added = st.MergeTasks(b.ID, tasks)
		return nil
	}); err != nil {
		return 0, err
	}
	e.log.WithFields(fields).WithFields(log.Fields{
		"tasks_fetched": len(tasks),
		"tasks_added":   added,
	}).Debug("board tasks merged")
	return added, nil
}

// SyncResult summarizes a Sync run.
type SyncResult struct {
	Boards      int               `json:"boards" yaml:"boards"`
	BoardsError string            `json:"boardsError,omitempty" yaml:"boardsError,omitempty"`
	TasksAdded  map[string]int    `json:"tasksAdded" yaml:"tasksAdded"`
	Failed      map[string]string `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// Sync reloads the board list, then fetches every board's tasks concurrently.
// Each completion is its own transition, applied in completion order. One
// board failing does not stop the others; all failures are joined into the
// returned error and also recorded in state.
func (e *Engine) Sync(ctx context.Context) (SyncResult, error) {
	res := SyncResult{TasksAdded: map[string]int{}, Failed: map[string]string{}}
	var errs []error
	if err := e.ReloadBoards(ctx); err != nil {
		if errors.Is(err, ErrClosed) {
			return res, err
		}
		errs = append(errs, fmt.Errorf("boards: %w", err))
		res.BoardsError = err.Error()
	}

	snap, err := e.Snapshot(ctx)
	if err != nil {
		return res, err
	}
	res.Boards = len(snap.Boards)

	var mu sync.Mutex
	g := new(errgroup.Group)
	if e.fetchLimit > 0 {
		g.SetLimit(e.fetchLimit)
	}
	for _, b := range snap.Boards {
		if b.Link == "" {
			continue
		}
		g.Go(func() error {
			added, err := e.LoadBoardTasks(ctx, b)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("board %s: %w", b.ID, err))
				res.Failed[b.ID] = err.Error()
				return nil
			}
			res.TasksAdded[b.ID] = added
			return nil
		})
	}
	_ = g.Wait()
	return res, errors.Join(errs...)
}

func (e *Engine) fetchBoardList(ctx context.Context) ([]model.Board, error) {
	if e.src == nil {
		return nil, errNoSource
	}
	return e.src.FetchBoardList(ctx)
}

func (e *Engine) fetchBoardTasks(ctx context.Context, b model.Board) ([]model.Task, error) {
	if e.src == nil {
		return nil, errNoSource
	}
	return e.src.FetchBoardTasks(ctx, b)
}
