package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"git.sr.ht/~mariusor/monthcal/calendar"
)

type field int

const (
	fieldName field = iota
	fieldAllDay
	fieldStart
	fieldEnd
	fieldColor
	fieldCount
)

type eventForm struct {
	name   textinput.Model
	start  textinput.Model
	end    textinput.Model
	allDay bool
	color  calendar.Color
	focus  field
	err    error
}

func newInput(placeholder string, limit int, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 30
	ti.SetValue(value)
	return ti
}

func newEventForm(f calendar.EventForm) *eventForm {
	form := &eventForm{
		name:   newInput("Event name", 120, f.Name),
		start:  newInput("hh:mm", 5, f.Start),
		end:    newInput("hh:mm", 5, f.End),
		allDay: f.AllDay,
		color:  f.Color,
	}
	form.setFocus(fieldName)
	return form
}

func (f *eventForm) values() calendar.EventForm {
	return calendar.EventForm{
		Name:   f.name.Value(),
		AllDay: f.allDay,
		Start:  strings.TrimSpace(f.start.Value()),
		End:    strings.TrimSpace(f.end.Value()),
		Color:  f.color,
	}
}

func (f *eventForm) input(fl field) *textinput.Model {
	switch fl {
	case fieldName:
		return &f.name
	case fieldStart:
		return &f.start
	case fieldEnd:
		return &f.end
	}
	return nil
}

// disabled reports fields that can't be focused: times of all-day events.
func (f *eventForm) disabled(fl field) bool {
	return f.allDay && (fl == fieldStart || fl == fieldEnd)
}

func (f *eventForm) setFocus(fl field) tea.Cmd {
	for _, in := range []*textinput.Model{&f.name, &f.start, &f.end} {
		in.Blur()
	}
	f.focus = fl
	if in := f.input(fl); in != nil {
		in.Focus()
		return textinput.Blink
	}
	return nil
}

func (f *eventForm) move(step int) tea.Cmd {
	next := f.focus
	for i := 0; i < int(fieldCount); i++ {
		next = field((int(next) + step + int(fieldCount)) % int(fieldCount))
		if !f.disabled(next) {
			break
		}
	}
	return f.setFocus(next)
}

// Update handles a key press and reports whether the form was submitted.
func (f *eventForm) Update(msg tea.Msg) (bool, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if in := f.input(f.focus); in != nil {
			var cmd tea.Cmd
			*in, cmd = in.Update(msg)
			return false, cmd
		}
		return false, nil
	}

	switch key.String() {
	case "enter":
		return true, nil
	case "tab", "down":
		return false, f.move(1)
	case "shift+tab", "up":
		return false, f.move(-1)
	}

	switch f.focus {
	case fieldAllDay:
		if key.String() == " " || key.String() == "x" {
			f.allDay = !f.allDay
		}
		return false, nil
	case fieldColor:
		switch key.String() {
		case " ", "right", "l":
			f.color = f.color.Next()
		case "left", "h":
			f.color = f.color.Next().Next()
		}
		return false, nil
	}

	in := f.input(f.focus)
	if in == nil {
		return false, nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return false, cmd
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (f *eventForm) label(fl field, s string) string {
	if f.focus == fl {
		return focusedLabelStyle.Render("> " + s)
	}
	if f.disabled(fl) {
		return disabledStyle.Render("  " + s)
	}
	return "  " + s
}

func (f *eventForm) View(title string) string {
	b := strings.Builder{}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(f.label(fieldName, "Name"))
	b.WriteString("\n    ")
	b.WriteString(f.name.View())
	b.WriteString("\n")
	b.WriteString(f.label(fieldAllDay, "All day "+checkbox(f.allDay)))
	b.WriteString("\n")
	b.WriteString(f.label(fieldStart, "Start"))
	b.WriteString("\n    ")
	b.WriteString(f.start.View())
	b.WriteString("\n")
	b.WriteString(f.label(fieldEnd, "End"))
	b.WriteString("\n    ")
	b.WriteString(f.end.View())
	b.WriteString("\n")
	colors := make([]string, len(calendar.Colors))
	for i, c := range calendar.Colors {
		name := string(c)
		if c == f.color {
			name = fmt.Sprintf("(%s)", name)
		}
		colors[i] = colorStyle(c).Render(name)
	}
	b.WriteString(f.label(fieldColor, "Color "+strings.Join(colors, " ")))
	b.WriteString("\n\n")
	if f.err != nil {
		b.WriteString(errorStyle.Render(f.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("tab/shift+tab move • space toggle • enter save • esc cancel"))
	return lipgloss.NewStyle().Width(50).Render(b.String())
}
