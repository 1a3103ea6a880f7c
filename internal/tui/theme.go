package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"taskboard/internal/model"
	"taskboard/internal/view"
)

// Theme/palette helpers.
//
// Colours are adaptive so the board stays readable on both light and dark
// terminals; faint styling is only applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted          lipgloss.TerminalColor = ac("240", "243")
	colorChromeMutedFg  lipgloss.TerminalColor = ac("240", "245")
	colorSelectedBg     lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg     lipgloss.TerminalColor = ac("235", "255")
	colorSelectedBorder lipgloss.TerminalColor = ac("232", "255")
	colorCardBorder     lipgloss.TerminalColor = ac("250", "243")
	colorSurfaceFg      lipgloss.TerminalColor = ac("235", "252")
	colorAccent         lipgloss.TerminalColor = ac("27", "62")
	colorFlashErrorFg   lipgloss.TerminalColor = ac("160", "203")
)

// statusColors follow the board's column accents.
var statusColors = map[model.Status]lipgloss.TerminalColor{
	model.StatusBacklog:    ac("#485e7d", "#94a3b8"),
	model.StatusInProgress: ac("#b45309", "#fbbf24"),
	model.StatusInReview:   ac("#1e40af", "#60a5fa"),
	model.StatusCompleted:  ac("#09913d", "#4ade80"),
}

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleStatus(s model.Status) lipgloss.Style {
	c, ok := statusColors[s]
	if !ok {
		c = colorMuted
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

// renderTag draws a tag as a small pill in its keyword colour.
func renderTag(tag string) string {
	c := view.ColorForTag(tag)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Text)).
		Background(lipgloss.Color(c.Bg)).
		Padding(0, 1).
		Render(tag)
}

// applyColorProfilePreference sets Lip Gloss's colour profile for the TUI.
//
// An explicit profile from config wins. Otherwise only NO_COLOR is honoured
// and TERM/COLORTERM may upgrade termenv's guess.
func applyColorProfilePreference(forced string) {
	switch strings.ToLower(strings.TrimSpace(forced)) {
	case "ascii":
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	case "ansi":
		lipgloss.SetColorProfile(termenv.ANSI)
		return
	case "ansi256":
		lipgloss.SetColorProfile(termenv.ANSI256)
		return
	case "truecolor":
		lipgloss.SetColorProfile(termenv.TrueColor)
		return
	}
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemeMode points adaptive colours at the stored theme mode instead of
// the terminal's reported background.
func applyThemeMode(mode model.ThemeMode) {
	lipgloss.SetHasDarkBackground(mode != model.ThemeLight)
}

func markdownStyle(mode model.ThemeMode) string {
	if mode == model.ThemeLight {
		return "light"
	}
	return "dark"
}
