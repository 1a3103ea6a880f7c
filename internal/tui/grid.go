package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"taskboard/internal/model"
	"taskboard/internal/state"
	"taskboard/internal/statusutil"
	"taskboard/internal/view"
)

var gridHeaders = map[string]string{
	"projectName": "Project",
	"taskTitle":   "Task",
	"status":      "Status",
	"tags":        "Tags",
	"background":  "Image",
}

// gridWeights split the available width between visible columns.
var gridWeights = map[string]int{
	"projectName": 3,
	"taskTitle":   5,
	"status":      2,
	"tags":        3,
	"background":  3,
}

// renderGrid draws every task of every board as one table, honouring the
// saved column order and visibility.
func renderGrid(st *state.State, selRow, width, height int) string {
	cols := view.OrderedGridColumns(st.Grid)
	rows := view.GridRows(st)
	widths := gridColumnWidths(cols, width)

	headerCells := make([]string, len(cols))
	for i, c := range cols {
		headerCells[i] = pad(truncate(gridHeaders[c], widths[i]), widths[i])
	}
	header := lipgloss.NewStyle().Bold(true).Foreground(colorChromeMutedFg).Render(strings.Join(headerCells, " "))

	out := []string{header}
	if len(rows) == 0 {
		out = append(out, styleMuted().Render("no tasks"))
		return normalizePane(strings.Join(out, "\n"), width, height)
	}

	// Keep the selected row in the window.
	avail := height - 1
	if avail < 1 {
		avail = 1
	}
	start := 0
	if selRow >= avail {
		start = selRow - avail + 1
	}
	for i := start; i < len(rows) && i < start+avail; i++ {
		line := renderGridRow(rows[i], cols, widths)
		if i == selRow {
			line = lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg).Render(xansi.Strip(line))
		}
		out = append(out, line)
	}
	return normalizePane(strings.Join(out, "\n"), width, height)
}

func renderGridRow(r model.GridRow, cols []string, widths []int) string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		w := widths[i]
		var cell string
		switch c {
		case "projectName":
			cell = truncate(r.ProjectName, w)
		case "taskTitle":
			cell = truncate(r.TaskTitle, w)
		case "status":
			cell = styleStatus(r.Status).Render(truncate(statusutil.Label(r.Status), w))
		case "tags":
			cell = truncate(strings.Join(r.Tags, ", "), w)
		case "background":
			if r.Background != nil {
				cell = styleMuted().Render(truncate(*r.Background, w))
			}
		}
		cells[i] = pad(cell, w)
	}
	return strings.Join(cells, " ")
}

func gridColumnWidths(cols []string, width int) []int {
	total := 0
	for _, c := range cols {
		total += gridWeights[c]
	}
	out := make([]int, len(cols))
	if total == 0 {
		return out
	}
	avail := width - (len(cols) - 1)
	for i, c := range cols {
		out[i] = avail * gridWeights[c] / total
		if out[i] < 4 {
			out[i] = 4
		}
	}
	return out
}

func pad(s string, w int) string {
	if n := xansi.StringWidth(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}
