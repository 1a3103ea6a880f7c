package tui

import (
	"fmt"
	"strings"

	"taskboard/internal/statusutil"
	"taskboard/internal/view"
)

func (m appModel) renderDetail(width int) string {
	t, ok := m.selectedTask()
	if !ok {
		return styleMuted().Render("nothing selected")
	}
	boardName := ""
	if b, ok := m.snap.ActiveBoard(); ok {
		boardName = b.Name
	}
	if m.mode == viewGrid {
		if rows := view.GridRows(m.snap); m.gridRow < len(rows) {
			boardName = rows[m.gridRow].ProjectName
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t.Title)
	fmt.Fprintf(&b, "**Status:** %s\n\n", statusutil.Label(t.Status))
	if boardName != "" {
		fmt.Fprintf(&b, "**Board:** %s\n\n", boardName)
	}
	if len(t.Tags) > 0 {
		tags := make([]string, len(t.Tags))
		for i, tag := range t.Tags {
			tags[i] = "`" + tag + "`"
		}
		fmt.Fprintf(&b, "**Tags:** %s\n\n", strings.Join(tags, " "))
	}
	if t.Background != nil && *t.Background != "" {
		fmt.Fprintf(&b, "**Image:** %s\n", *t.Background)
	}
	return renderMarkdown(b.String(), markdownStyle(m.snap.Theme.Mode), width-2)
}
