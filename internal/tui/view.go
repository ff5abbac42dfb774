package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"git.sr.ht/~mariusor/monthcal/calendar"
	"git.sr.ht/~mariusor/monthcal/modal"
	"git.sr.ht/~mariusor/monthcal/overflow"
)

const gridHelp = "←↓↑→ move • n/p month • t today • a add • enter day • q quit"

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	screen := lipgloss.JoinVertical(lipgloss.Left, m.header(), m.grid(), m.statusLine())
	if !m.modal.Visible() {
		return screen
	}
	style := dialogStyle
	if m.modal.IsClosing() {
		style = closingStyle
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, style.Render(m.dialog()))
}

func (m *Model) header() string {
	w := m.cellWidth()
	title := titleStyle.Copy().Width(m.width).Align(lipgloss.Center).Render(m.month.Format("January 2006"))
	days := make([]string, 0, 7)
	for _, wd := range calendar.Weekdays(m.conf.WeekStart) {
		days = append(days, weekdayStyle.Copy().Width(w).Render(" "+wd))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, days...))
}

// cellResult returns the last measurement of the cell of date, clamped to the
// events it currently holds.
func (m *Model) cellResult(date time.Time, total int) overflow.Result {
	res := overflow.Result{Total: total}
	if c, ok := m.cells[calendar.DayKey(date)]; ok {
		res.Visible = c.Result().Visible
	}
	if res.Visible > total {
		res.Visible = total
	}
	res.Hidden = total - res.Visible
	return res
}

func (m *Model) dayLabelStyle(d, today time.Time) lipgloss.Style {
	switch {
	case d.Equal(today):
		return todayStyle
	case !calendar.SameMonth(d, m.month):
		return outOfMonthStyle
	case d.Before(today):
		return pastStyle
	}
	return dayStyle
}

func (m *Model) cell(d, today time.Time) string {
	w, h := m.cellWidth(), m.cellHeight()
	inner := w - 2
	events := calendar.SortForDisplay(m.st.GetEventsForDate(d))
	res := m.cellResult(d, len(events))

	label := fmt.Sprintf("%2d", d.Day())
	if d.Equal(m.selected) {
		label = cursorStyle.Render(label)
	}
	lines := []string{m.dayLabelStyle(d, today).Render(label)}
	for _, ev := range events[:res.Visible] {
		lines = append(lines, eventLine(ev, inner))
	}
	if res.ShowMore() {
		lines = append(lines, moreStyle.Render(truncate(res.Label(), inner)))
	}
	if len(lines) > h && h > 0 {
		lines = lines[:h]
	}
	return lipgloss.NewStyle().Width(w).Height(h).PaddingLeft(1).Render(strings.Join(lines, "\n"))
}

func (m *Model) grid() string {
	today := m.today()
	rows := make([]string, 0, m.weeks())
	for i := 0; i < len(m.dates); i += 7 {
		cells := make([]string, 0, 7)
		for _, d := range m.dates[i : i+7] {
			cells = append(cells, m.cell(d, today))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) statusLine() string {
	if err := m.st.PersistErr(); err != nil {
		return errorStyle.Render(truncate("unable to save events: "+err.Error(), m.width))
	}
	if m.status != "" {
		return errorStyle.Render(truncate(m.status, m.width))
	}
	return helpStyle.Render(truncate(gridHelp, m.width))
}

func (m *Model) dialog() string {
	date := m.modal.Date().Format("Mon, 02 Jan 2006")
	switch m.modal.Kind() {
	case modal.AddEvent:
		if m.form != nil {
			return m.form.View("New event on " + date)
		}
	case modal.EditEvent:
		if m.form != nil {
			return m.form.View("Edit event on " + date)
		}
	case modal.Overflow:
		return m.dayList(date)
	}
	return ""
}

func (m *Model) dayList(date string) string {
	events := m.listEvents()
	b := strings.Builder{}
	b.WriteString(titleStyle.Render(date))
	b.WriteString("\n\n")
	if len(events) == 0 {
		b.WriteString(helpStyle.Render("No events"))
		b.WriteString("\n")
	}
	for i, ev := range events {
		line := eventLine(ev, 40)
		if i == m.cursor {
			line = cursorStyle.Render(">") + " " + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("j/k move • e edit • d delete • a add • esc close"))
	return lipgloss.NewStyle().Width(50).Render(b.String())
}
