package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/model"
	"taskboard/internal/view"
)

const minColumnWidth = 18

// renderBoard draws the kanban columns side by side. Each column scrolls
// independently so its selected card stays visible.
func renderBoard(cols []view.Column, selCol int, selRow [4]int, width, height int) string {
	if len(cols) == 0 {
		return normalizePane("", width, height)
	}
	gap := 1
	colW := (width - gap*(len(cols)-1)) / len(cols)
	if colW < minColumnWidth {
		colW = minColumnWidth
	}

	panes := make([]string, 0, len(cols)*2)
	for i, c := range cols {
		if i > 0 {
			panes = append(panes, strings.Repeat(" ", gap))
		}
		active := i == selCol
		row := -1
		if i < len(selRow) && active {
			row = selRow[i]
		}
		panes = append(panes, renderColumn(c, active, row, colW, height))
	}
	return normalizePane(lipgloss.JoinHorizontal(lipgloss.Top, panes...), width, height)
}

func renderColumn(c view.Column, active bool, selRow, width, height int) string {
	header := styleStatus(c.Status).Render(fmt.Sprintf("%s (%d)", c.Label, len(c.Tasks)))
	if active {
		header = lipgloss.NewStyle().Underline(true).Render(header)
	}

	cards := make([]string, 0, len(c.Tasks))
	selStart, selEnd := 0, 0
	used := 0
	for i, t := range c.Tasks {
		card := renderCard(t, i == selRow, width)
		h := lipgloss.Height(card)
		if i == selRow {
			selStart, selEnd = used, used+h
		}
		used += h
		cards = append(cards, card)
	}
	body := strings.Join(cards, "\n")
	if len(cards) == 0 {
		body = styleMuted().Render("no tasks")
	}

	bodyH := height - 2
	lines := strings.Split(body, "\n")
	if bodyH > 0 && selEnd > bodyH {
		off := selEnd - bodyH
		if off > selStart {
			off = selStart
		}
		lines = lines[off:]
	}
	return normalizePane(header+"\n\n"+strings.Join(lines, "\n"), width, height)
}

func renderCard(t model.Task, selected bool, width int) string {
	border := colorCardBorder
	if selected {
		border = colorSelectedBorder
	}
	inner := width - 4
	if inner < 4 {
		inner = 4
	}

	titleStyle := lipgloss.NewStyle().Foreground(colorSurfaceFg)
	if selected {
		titleStyle = titleStyle.Bold(true)
	}
	lines := make([]string, 0, 4)
	if t.Background != nil && strings.TrimSpace(*t.Background) != "" {
		lines = append(lines, styleMuted().Render(truncate("▧ "+*t.Background, inner)))
	}
	for _, ln := range wrapWords(t.Title, inner) {
		lines = append(lines, titleStyle.Render(ln))
	}
	if len(t.Tags) > 0 {
		lines = append(lines, truncate(renderTags(t.Tags), inner))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(width - 2).
		Render(strings.Join(lines, "\n"))
}

func renderTags(tags []string) string {
	pills := make([]string, 0, len(tags))
	for _, tag := range tags {
		pills = append(pills, renderTag(tag))
	}
	return strings.Join(pills, " ")
}
