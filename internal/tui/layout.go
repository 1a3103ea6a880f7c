package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and height
// lines tall. This makes split-pane rendering stable when using lipgloss.JoinHorizontal.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i := range lines {
		ln := truncate(lines[i], width)
		if w := xansi.StringWidth(ln); w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}
	return strings.Join(lines, "\n")
}

// truncate cuts s to width columns, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return xansi.Cut(s, 0, 1)
	}
	return xansi.Cut(s, 0, width-1) + "…"
}

// wrapWords wraps plain text to maxW columns, splitting words longer than a
// line.
func wrapWords(s string, maxW int) []string {
	if maxW <= 0 {
		return []string{""}
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	lines := make([]string, 0, 2)
	cur, curW := "", 0
	for _, w := range words {
		for xansi.StringWidth(w) > maxW {
			if cur != "" {
				lines = append(lines, cur)
				cur, curW = "", 0
			}
			lines = append(lines, xansi.Cut(w, 0, maxW))
			w = xansi.Cut(w, maxW, xansi.StringWidth(w))
		}
		ww := xansi.StringWidth(w)
		switch {
		case ww == 0:
		case cur == "":
			cur, curW = w, ww
		case curW+1+ww <= maxW:
			cur += " " + w
			curW += 1 + ww
		default:
			lines = append(lines, cur)
			cur, curW = w, ww
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
