package store

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	log "github.com/sirupsen/logrus"

	"taskboard/internal/model"
	"taskboard/internal/state"
)

const (
	KeyRoot             = "root"
	KeyColumnOrder      = "columnOrder"
	KeyColumnVisibility = "columnVisibility"

	rootVersion = 1
)

// persistedRoot is the whitelist written under KeyRoot. Fetch status and
// dialog state are deliberately absent.
type persistedRoot struct {
	Version        int                     `json:"version"`
	Boards         []model.Board           `json:"boards"`
	ActiveBoardID  string                  `json:"activeBoardID"`
	TasksByBoardID map[string][]model.Task `json:"tasksByBoardID"`
	GridState      *model.GridState        `json:"gridState"`
	Theme          *model.Theme            `json:"theme"`
}

type columnOrderCache struct {
	OrderedFields []string `json:"orderedFields"`
}

// Gateway mirrors committed state into a KV backend and restores it at
// startup. It is meant to be registered as an engine observer.
type Gateway struct {
	kv  KV
	log *log.Logger

	// Timeout bounds each save issued from Observe.
	Timeout time.Duration

	lastRoot []byte
	lastGrid []byte
}

func NewGateway(kv KV, logger *log.Logger) *Gateway {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Gateway{kv: kv, log: logger, Timeout: 5 * time.Second}
}

func encodeRoot(st *state.State) ([]byte, error) {
	grid := st.Grid
	theme := st.Theme
	return json.Marshal(persistedRoot{
		Version:        rootVersion,
		Boards:         st.Boards,
		ActiveBoardID:  st.ActiveBoardID,
		TasksByBoardID: st.TasksByBoardID,
		GridState:      &grid,
		Theme:          &theme,
	})
}

// Save writes the persisted slices. Unchanged payloads are not rewritten.
func (g *Gateway) Save(ctx context.Context, st *state.State) error {
	root, err := encodeRoot(st)
	if err != nil {
		return err
	}
	if !bytes.Equal(root, g.lastRoot) {
		if err := g.kv.Set(ctx, KeyRoot, root); err != nil {
			return err
		}
		g.lastRoot = root
	}
	return g.SaveGridCache(ctx, st.Grid)
}

// SaveGridCache writes the redundant column keys when the grid changed.
func (g *Gateway) SaveGridCache(ctx context.Context, grid model.GridState) error {
	gridKey, err := json.Marshal(grid)
	if err != nil {
		return err
	}
	if bytes.Equal(gridKey, g.lastGrid) {
		return nil
	}
	order := grid.ColumnOrder
	if order == nil {
		order = []string{}
	}
	ob, err := json.Marshal(columnOrderCache{OrderedFields: order})
	if err != nil {
		return err
	}
	vis := grid.ColumnVisibility
	if vis == nil {
		vis = map[string]bool{}
	}
	vb, err := json.Marshal(vis)
	if err != nil {
		return err
	}
	if err := g.kv.Set(ctx, KeyColumnOrder, ob); err != nil {
		return err
	}
	if err := g.kv.Set(ctx, KeyColumnVisibility, vb); err != nil {
		return err
	}
	g.lastGrid = gridKey
	return nil
}

// Observe matches the engine observer signature. Save failures are logged;
// the in-memory state stays authoritative.
func (g *Gateway) Observe(name string, st *state.State) {
	ctx, cancel := context.WithTimeout(context.Background(), g.Timeout)
	defer cancel()
	if err := g.Save(ctx, st); err != nil {
		g.log.WithError(err).WithField("transition", name).Warn("persist state failed")
	}
}

// LoadGridCache reads the redundant column keys. Missing or malformed keys
// yield ok=false for that part only.
func (g *Gateway) LoadGridCache(ctx context.Context) (model.GridState, bool) {
	var (
		grid  model.GridState
		found bool
	)
	if b, ok, err := g.kv.Get(ctx, KeyColumnOrder); err == nil && ok {
		var oc columnOrderCache
		if err := json.Unmarshal(b, &oc); err == nil && oc.OrderedFields != nil {
			grid.ColumnOrder = oc.OrderedFields
			found = true
		} else {
			g.log.WithField("key", KeyColumnOrder).Debug("ignoring malformed column order cache")
		}
	}
	if b, ok, err := g.kv.Get(ctx, KeyColumnVisibility); err == nil && ok {
		var vis map[string]bool
		if err := json.Unmarshal(b, &vis); err == nil && vis != nil {
			grid.ColumnVisibility = vis
			found = true
		} else {
			g.log.WithField("key", KeyColumnVisibility).Debug("ignoring malformed column visibility cache")
		}
	}
	return grid, found
}

// Rehydrate applies persisted state onto st, which should be freshly created.
// Absent or malformed data leaves defaults in place; only backend I/O errors
// are returned.
func (g *Gateway) Rehydrate(ctx context.Context, st *state.State) error {
	if grid, ok := g.LoadGridCache(ctx); ok {
		applyGrid(st, grid)
	}

	b, ok, err := g.kv.Get(ctx, KeyRoot)
	if err != nil {
		return err
	}
	if !ok {
		g.log.Debug("no persisted state")
		return nil
	}
	var root persistedRoot
	if err := json.Unmarshal(b, &root); err != nil {
		g.log.WithError(err).Debug("ignoring malformed persisted state")
		return nil
	}

	if root.Boards != nil {
		st.Boards = root.Boards
	}
	if root.TasksByBoardID != nil {
		st.TasksByBoardID = map[string][]model.Task{}
		for id, tasks := range root.TasksByBoardID {
			st.TasksByBoardID[id] = sanitizeTasks(tasks)
		}
	}
	st.ActiveBoardID = root.ActiveBoardID
	if root.GridState != nil {
		applyGrid(st, *root.GridState)
	}
	if root.Theme != nil {
		st.SetThemeMode(root.Theme.Mode)
	}
	st.Normalize()

	// Seed the change detector so a no-op first commit does not rewrite.
	if cur, err := encodeRoot(st); err == nil && bytes.Equal(cur, b) {
		g.lastRoot = cur
	}
	g.log.WithFields(log.Fields{
		"boards":          len(st.Boards),
		"active_board_id": st.ActiveBoardID,
	}).Debug("state rehydrated")
	return nil
}

func applyGrid(st *state.State, grid model.GridState) {
	if grid.ColumnOrder != nil {
		st.SetColumnOrder(grid.ColumnOrder)
	}
	if grid.ColumnVisibility != nil {
		st.SetColumnVisibility(grid.ColumnVisibility)
	}
}

func sanitizeTasks(tasks []model.Task) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID == "" {
			continue
		}
		if !t.Status.Valid() {
			t.Status = model.StatusBacklog
		}
		t.Tags = model.NormalizeTags(t.Tags)
		out = append(out, t)
	}
	return out
}
