package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"git.sr.ht/~mariusor/monthcal/calendar"
)

var (
	titleStyle        = lipgloss.NewStyle().Bold(true)
	weekdayStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("8"))
	dayStyle          = lipgloss.NewStyle()
	outOfMonthStyle   = lipgloss.NewStyle().Faint(true)
	pastStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	todayStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	moreStyle         = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	focusedLabelStyle = lipgloss.NewStyle().Bold(true)
	disabledStyle     = lipgloss.NewStyle().Faint(true)
	cursorStyle       = lipgloss.NewStyle().Reverse(true)
	dialogStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	closingStyle      = dialogStyle.Copy().Faint(true)
)

var colorCodes = map[calendar.Color]lipgloss.Color{
	calendar.Red:   lipgloss.Color("1"),
	calendar.Green: lipgloss.Color("2"),
	calendar.Blue:  lipgloss.Color("4"),
}

func colorStyle(c calendar.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorCodes[c])
}

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "…")
}

// eventLine renders a single event row for a day cell or the overflow list.
func eventLine(e calendar.Event, w int) string {
	return colorStyle(e.Color).Render("●") + " " + truncate(e.String(), w-2)
}
