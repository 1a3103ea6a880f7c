package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"taskboard/internal/engine"
	"taskboard/internal/model"
	"taskboard/internal/mutate"
	"taskboard/internal/state"
	"taskboard/internal/store"
	"taskboard/internal/view"
)

type Options struct {
	// Store holds ui_state.json; an empty Dir disables restore.
	Store        store.Store
	SyncOnStart  bool
	ColorProfile string
	Log          *log.Logger
}

// Run starts the interactive board on top of a running engine.
func Run(ctx context.Context, eng *engine.Engine, opts Options) error {
	applyColorProfilePreference(opts.ColorProfile)

	m, err := newAppModel(ctx, eng, opts)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(appModel); ok {
		fm.saveUIState()
	}
	return nil
}

type viewMode int

const (
	viewBoard viewMode = iota
	viewGrid
)

type (
	stateChangedMsg struct{}
	actionDoneMsg   struct {
		name string
		err  error
	}
	syncDoneMsg struct {
		res engine.SyncResult
		err error
	}
)

type appModel struct {
	ctx  context.Context
	eng  *engine.Engine
	opts Options
	keys keyMap
	log  *log.Logger

	changes <-chan struct{}
	snap    *state.State

	width  int
	height int

	mode       viewMode
	col        int
	rowByCol   [4]int
	gridRow    int
	showDetail bool

	form    form
	status  string
	syncing bool
}

func newAppModel(ctx context.Context, eng *engine.Engine, opts Options) (appModel, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Log
	if logger == nil {
		logger = log.StandardLogger()
	}
	m := appModel{
		ctx:     ctx,
		eng:     eng,
		opts:    opts,
		keys:    defaultKeyMap(),
		syncing: opts.SyncOnStart,
		log:     logger,
		changes: eng.Subscribe(),
		width:   100,
		height:  30,
	}
	if err := m.refresh(); err != nil {
		return m, err
	}
	m.restoreUIState()
	return m, nil
}

func (m *appModel) refresh() error {
	snap, err := m.eng.Snapshot(m.ctx)
	if err != nil {
		return err
	}
	m.snap = snap
	applyThemeMode(snap.Theme.Mode)
	m.syncForm()
	m.clamp()
	return nil
}

// syncForm mirrors the engine's dialog state: the task form is shown exactly
// while the dialog is open.
func (m *appModel) syncForm() {
	switch {
	case m.snap.DialogOpen && m.form.kind != formTask:
		m.form = newTaskForm(m.snap.EditingTask)
	case !m.snap.DialogOpen && m.form.kind == formTask:
		m.form = form{}
	}
}

func (m *appModel) restoreUIState() {
	ui, err := m.opts.Store.LoadUIState()
	if err != nil || ui == nil {
		return
	}
	if ui.View == "grid" {
		m.mode = viewGrid
	}
	if ui.Column >= 0 && ui.Column < len(model.Statuses) {
		m.col = ui.Column
	}
	m.showDetail = ui.ShowDetail
	if ui.SelectedTaskID != "" {
		for ci, c := range view.Columns(m.snap) {
			for ti, t := range c.Tasks {
				if t.ID == ui.SelectedTaskID {
					m.col, m.rowByCol[ci] = ci, ti
				}
			}
		}
	}
}

func (m appModel) saveUIState() {
	ui := &store.UIState{Column: m.col, ShowDetail: m.showDetail, View: "board"}
	if m.mode == viewGrid {
		ui.View = "grid"
	}
	if t, ok := m.selectedTask(); ok {
		ui.SelectedTaskID = t.ID
	}
	if err := m.opts.Store.SaveUIState(ui); err != nil {
		m.log.WithError(err).Debug("save ui state")
	}
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForChange(m.changes)}
	if m.opts.SyncOnStart {
		cmds = append(cmds, m.syncCmd())
	}
	return tea.Batch(cmds...)
}

func (m appModel) syncCmd() tea.Cmd {
	eng, ctx := m.eng, m.ctx
	return func() tea.Msg {
		res, err := eng.Sync(ctx)
		return syncDoneMsg{res: res, err: err}
	}
}

// do runs fn as one engine transition off the UI goroutine.
func (m appModel) do(name string, fn func(*state.State) error) tea.Cmd {
	eng, ctx := m.eng, m.ctx
	return func() tea.Msg {
		return actionDoneMsg{name: name, err: eng.Do(ctx, name, fn)}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case stateChangedMsg:
		if err := m.refresh(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, waitForChange(m.changes)

	case actionDoneMsg:
		if err := m.refresh(); err != nil {
			m.status = err.Error()
		}
		if msg.err != nil {
			if m.form.kind != formNone {
				m.form.err = formError(msg.err)
			} else {
				m.status = msg.err.Error()
			}
			return m, nil
		}
		if m.form.kind == formBoard || m.form.kind == formRow {
			m.form = form{}
		}
		m.status = ""
		return m, nil

	case syncDoneMsg:
		m.syncing = false
		if err := m.refresh(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		if msg.err != nil {
			m.status = "sync: " + firstLine(msg.err.Error())
		} else {
			added := 0
			for _, n := range msg.res.TasksAdded {
				added += n
			}
			m.status = fmt.Sprintf("synced %d boards, %d new tasks", msg.res.Boards, added)
		}
		return m, nil

	case tea.KeyMsg:
		if m.form.kind != formNone {
			return m.updateForm(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m appModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Grid):
		if m.mode == viewBoard {
			m.mode = viewGrid
		} else {
			m.mode = viewBoard
		}
		return m, nil
	case key.Matches(msg, k.Theme):
		return m, m.do("theme.toggle", func(st *state.State) error {
			st.ToggleThemeMode()
			return nil
		})
	case key.Matches(msg, k.Sync):
		if m.syncing {
			return m, nil
		}
		m.status = "syncing…"
		m.syncing = true
		return m, m.syncCmd()
	case key.Matches(msg, k.NextBoard):
		next := m.nextBoardID()
		if next == "" {
			return m, nil
		}
		m.rowByCol = [4]int{}
		return m, m.do("board.use", func(st *state.State) error {
			st.SetActiveBoardID(next)
			return nil
		})
	case key.Matches(msg, k.NewBoard):
		m.form = newBoardForm()
		return m, nil
	case key.Matches(msg, k.Detail):
		m.showDetail = !m.showDetail
		return m, nil
	}

	if m.mode == viewGrid {
		return m.updateGridKeys(msg)
	}
	return m.updateBoardKeys(msg)
}

func (m appModel) updateBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	boardID := m.snap.ActiveBoardID
	switch {
	case key.Matches(msg, k.Left):
		m.col--
		m.clamp()
	case key.Matches(msg, k.Right):
		m.col++
		m.clamp()
	case key.Matches(msg, k.Up):
		m.rowByCol[m.col]--
		m.clamp()
	case key.Matches(msg, k.Down):
		m.rowByCol[m.col]++
		m.clamp()
	case key.Matches(msg, k.MoveLeft), key.Matches(msg, k.MoveRight):
		t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		delta := 1
		if key.Matches(msg, k.MoveLeft) {
			delta = -1
		}
		target := m.col + delta
		if target < 0 || target >= len(model.Statuses) {
			return m, nil
		}
		to := model.Statuses[target]
		// Follow the card into its new column.
		m.col = target
		m.rowByCol[target] = m.countInColumn(to)
		return m, m.do("task.move", func(st *state.State) error {
			_, err := mutate.SetTaskStatus(st, boardID, t.ID, string(to))
			return err
		})
	case key.Matches(msg, k.Add):
		if boardID == "" {
			m.status = "create a board first (B)"
			return m, nil
		}
		return m, m.do("dialog.open", func(st *state.State) error {
			st.OpenAddTaskDialog()
			return nil
		})
	case key.Matches(msg, k.Edit):
		t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		return m, m.do("dialog.open", func(st *state.State) error {
			st.OpenEditTaskDialog(t)
			return nil
		})
	case key.Matches(msg, k.Delete):
		t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		return m, m.do("task.delete", func(st *state.State) error {
			return mutate.DeleteTask(st, boardID, t.ID)
		})
	case key.Matches(msg, k.Copy):
		t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		return m, m.copyRow(view.RowID(boardID, t.ID))
	}
	return m, nil
}

func (m appModel) updateGridKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	rows := view.GridRows(m.snap)
	switch {
	case key.Matches(msg, k.Up):
		m.gridRow--
		m.clamp()
	case key.Matches(msg, k.Down):
		m.gridRow++
		m.clamp()
	case key.Matches(msg, k.Edit):
		if m.gridRow < len(rows) {
			m.form = newRowForm(rows[m.gridRow])
		}
	case key.Matches(msg, k.Delete):
		if m.gridRow < len(rows) {
			r := rows[m.gridRow]
			return m, m.do("task.delete", func(st *state.State) error {
				return mutate.DeleteTask(st, r.ProjectID, r.TaskID)
			})
		}
	case key.Matches(msg, k.Copy):
		if m.gridRow < len(rows) {
			return m, m.copyRow(rows[m.gridRow].ID)
		}
	}
	return m, nil
}

// copyRow resolves the row against the state at apply time.
func (m appModel) copyRow(rowID string) tea.Cmd {
	return m.do("task.copy", func(st *state.State) error {
		row, ok := view.FindRow(view.GridRows(st), rowID)
		if !ok {
			return state.NotFoundError{Kind: "row", ID: rowID}
		}
		_, err := mutate.CopyRow(st, row)
		return err
	})
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Cancel):
		if m.form.kind == formTask {
			return m, m.do("dialog.close", func(st *state.State) error {
				st.CloseTaskDialog()
				return nil
			})
		}
		m.form = form{}
		return m, nil
	case key.Matches(msg, k.Save):
		cmd := m.submitForm()
		return m, cmd
	case key.Matches(msg, k.NextField):
		m.form.setFocus(m.form.focus + 1)
		return m, nil
	case key.Matches(msg, k.PrevField):
		m.form.setFocus(m.form.focus - 1)
		return m, nil
	case key.Matches(msg, k.CycleStatus):
		m.form.cycleStatus()
		return m, nil
	}
	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m *appModel) submitForm() tea.Cmd {
	m.form.err = ""
	switch m.form.kind {
	case formTask:
		in := m.form.taskInput()
		return m.do("dialog.save", func(st *state.State) error {
			_, err := mutate.SaveTaskDialog(st, in)
			return err
		})
	case formBoard:
		name, emoji := m.form.value(0), m.form.value(1)
		return m.do("board.create", func(st *state.State) error {
			_, err := mutate.CreateBoard(st, name, emoji)
			return err
		})
	case formRow:
		oldRow, newRow := m.form.row, m.form.rowEdit()
		return m.do("grid.edit", func(st *state.State) error {
			return mutate.ApplyRowEdit(st, oldRow, newRow)
		})
	}
	return nil
}

func (m appModel) nextBoardID() string {
	bs := m.snap.Boards
	if len(bs) == 0 {
		return ""
	}
	for i, b := range bs {
		if b.ID == m.snap.ActiveBoardID {
			return bs[(i+1)%len(bs)].ID
		}
	}
	return bs[0].ID
}

func (m appModel) countInColumn(s model.Status) int {
	n := 0
	for _, t := range m.snap.Tasks(m.snap.ActiveBoardID) {
		if t.Status == s {
			n++
		}
	}
	return n
}

func (m *appModel) clamp() {
	if m.col < 0 {
		m.col = 0
	}
	if m.col >= len(model.Statuses) {
		m.col = len(model.Statuses) - 1
	}
	cols := view.Columns(m.snap)
	for i := range m.rowByCol {
		n := len(cols[i].Tasks)
		if m.rowByCol[i] >= n {
			m.rowByCol[i] = n - 1
		}
		if m.rowByCol[i] < 0 {
			m.rowByCol[i] = 0
		}
	}
	rows := len(view.GridRows(m.snap))
	if m.gridRow >= rows {
		m.gridRow = rows - 1
	}
	if m.gridRow < 0 {
		m.gridRow = 0
	}
}

func (m appModel) selectedTask() (model.Task, bool) {
	if m.mode == viewGrid {
		rows := view.GridRows(m.snap)
		if m.gridRow < len(rows) {
			r := rows[m.gridRow]
			if t, ok := m.snap.FindTask(r.ProjectID, r.TaskID); ok {
				return t.Clone(), true
			}
		}
		return model.Task{}, false
	}
	cols := view.Columns(m.snap)
	c := cols[m.col]
	i := m.rowByCol[m.col]
	if i < 0 || i >= len(c.Tasks) {
		return model.Task{}, false
	}
	return c.Tasks[i], true
}

func (m appModel) View() string {
	header := m.renderHeader()
	footer := m.renderFooter()
	bodyH := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyH < 3 {
		bodyH = 3
	}

	var body string
	if m.form.kind != formNone {
		body = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center, m.form.View(minInt(m.width, 72)))
	} else {
		mainW := m.width
		detailW := 0
		if m.showDetail {
			detailW = m.width / 3
			mainW = m.width - detailW - 1
		}
		if m.mode == viewGrid {
			body = renderGrid(m.snap, m.gridRow, mainW, bodyH)
		} else {
			body = renderBoard(view.Columns(m.snap), m.col, m.rowByCol, mainW, bodyH)
		}
		if m.showDetail {
			detail := normalizePane(m.renderDetail(detailW), detailW, bodyH)
			body = lipgloss.JoinHorizontal(lipgloss.Top, normalizePane(body, mainW, bodyH), " ", detail)
		}
	}
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m appModel) renderHeader() string {
	title := "No board"
	if b, ok := m.snap.ActiveBoard(); ok {
		title = strings.TrimSpace(b.Emoji + " " + b.Name)
	}
	tabs := make([]string, 0, len(m.snap.Boards))
	for _, b := range m.snap.Boards {
		label := b.Name
		if m.snap.TasksFetch[b.ID].Loading {
			label += " …"
		}
		if b.ID == m.snap.ActiveBoardID {
			tabs = append(tabs, lipgloss.NewStyle().Bold(true).Foreground(colorSelectedFg).Background(colorSelectedBg).Padding(0, 1).Render(label))
		} else {
			tabs = append(tabs, styleMuted().Padding(0, 1).Render(label))
		}
	}
	line1 := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(title)
	if m.mode == viewGrid {
		line1 += styleMuted().Render("  · grid")
	}
	return normalizePane(line1+"\n"+strings.Join(tabs, " "), m.width, 2)
}

func (m appModel) renderFooter() string {
	var msg string
	switch {
	case m.status != "":
		msg = m.status
	case m.snap.BoardsFetch.Loading:
		msg = "loading boards…"
	case m.snap.BoardsFetch.Error != "":
		msg = "boards: " + m.snap.BoardsFetch.Error
	}
	bindings := m.keys.boardHelp()
	if m.form.kind != formNone {
		bindings = m.keys.formHelp()
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	help := styleMuted().Render(strings.Join(parts, " · "))
	if msg != "" {
		return truncate(msg, m.width) + "\n" + truncate(help, m.width)
	}
	return truncate(help, m.width)
}

// formError shows validation failures as their bare message, next to the
// field they came from.
func formError(err error) string {
	var ve mutate.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
