package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/model"
	"taskboard/internal/mutate"
	"taskboard/internal/statusutil"
)

type formKind int

const (
	formNone formKind = iota
	// formTask edits the engine's task dialog (add or edit on the active board).
	formTask
	// formBoard creates a board.
	formBoard
	// formRow edits a grid row in place.
	formRow
)

// form is a small stack of text inputs. Status is not typed; it cycles.
type form struct {
	kind   formKind
	title  string
	inputs []textinput.Model
	labels []string
	focus  int
	status model.Status
	err    string

	row model.GridRow
}

func newInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.SetValue(value)
	return ti
}

func newTaskForm(editing *model.Task) form {
	f := form{kind: formTask, title: "Add task", status: model.StatusBacklog}
	title, tags, bg := "", "", ""
	if editing != nil {
		f.title = "Edit task"
		f.status = editing.Status
		title = editing.Title
		tags = strings.Join(editing.Tags, ", ")
		if editing.Background != nil {
			bg = *editing.Background
		}
	}
	f.labels = []string{"Name", "Tags", "Image"}
	f.inputs = []textinput.Model{
		newInput("Task name", title),
		newInput("comma, separated", tags),
		newInput("image url (optional)", bg),
	}
	f.setFocus(0)
	return f
}

func newBoardForm() form {
	f := form{kind: formBoard, title: "New board"}
	f.labels = []string{"Name", "Emoji"}
	f.inputs = []textinput.Model{
		newInput("Board name", ""),
		newInput(mutate.BoardLogos[0], ""),
	}
	f.setFocus(0)
	return f
}

func newRowForm(row model.GridRow) form {
	f := form{kind: formRow, title: "Edit row", status: row.Status, row: row}
	bg := ""
	if row.Background != nil {
		bg = *row.Background
	}
	f.labels = []string{"Project", "Task", "Tags", "Image"}
	f.inputs = []textinput.Model{
		newInput("Board name", row.ProjectName),
		newInput("Task name", row.TaskTitle),
		newInput("comma, separated", strings.Join(row.Tags, ", ")),
		newInput("image url (optional)", bg),
	}
	f.setFocus(1)
	return f
}

func (f *form) setFocus(i int) {
	if len(f.inputs) == 0 {
		return
	}
	if i < 0 {
		i = len(f.inputs) - 1
	}
	f.focus = i % len(f.inputs)
	for j := range f.inputs {
		if j == f.focus {
			_ = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *form) value(i int) string {
	if i < 0 || i >= len(f.inputs) {
		return ""
	}
	return f.inputs[i].Value()
}

// cycleStatus steps through the columns, wrapping after the last.
func (f *form) cycleStatus() {
	for i, st := range model.Statuses {
		if st == f.status {
			f.status = model.Statuses[(i+1)%len(model.Statuses)]
			return
		}
	}
	f.status = model.StatusBacklog
}

func (f form) taskInput() mutate.TaskInput {
	return mutate.TaskInput{
		Title:      f.value(0),
		Status:     f.status,
		Tags:       mutate.SplitTags(f.value(1)),
		Background: f.value(2),
	}
}

func (f form) rowEdit() model.GridRow {
	r := f.row
	r.ProjectName = strings.TrimSpace(f.value(0))
	r.TaskTitle = f.value(1)
	r.Tags = mutate.SplitTags(f.value(2))
	r.Status = f.status
	if bg := strings.TrimSpace(f.value(3)); bg != "" {
		r.Background = &bg
	} else {
		r.Background = nil
	}
	return r
}

func (f form) View(width int) string {
	if width < 30 {
		width = 30
	}
	labelW := 8
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSelectedBorder).
		Padding(0, 1).
		Width(width - 4)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	labelStyle := lipgloss.NewStyle().Width(labelW).Foreground(colorChromeMutedFg)

	var b strings.Builder
	b.WriteString(titleStyle.Render(f.title))
	b.WriteString("\n\n")
	for i := range f.inputs {
		f.inputs[i].Width = width - labelW - 10
		b.WriteString(labelStyle.Render(f.labels[i]))
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	if f.kind != formBoard {
		b.WriteString(labelStyle.Render("Status"))
		b.WriteString(styleStatus(f.status).Render(statusutil.Label(f.status)))
		b.WriteString(styleMuted().Render("  (ctrl+s to change)"))
		b.WriteString("\n")
	}
	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(colorFlashErrorFg).Render(f.err))
	}
	return box.Render(strings.TrimRight(b.String(), "\n"))
}
