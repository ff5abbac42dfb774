// Package tui is the interactive month view of the calendar.
package tui

import (
	"time"

	"git.sr.ht/~mariusor/lw"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"git.sr.ht/~mariusor/monthcal/calendar"
	"git.sr.ht/~mariusor/monthcal/modal"
	"git.sr.ht/~mariusor/monthcal/overflow"
)

// EventStore is the part of the event store used by the month view.
type EventStore interface {
	GetEventsForDate(time.Time) calendar.Events
	AddEvent(time.Time, calendar.Event) calendar.Event
	UpdateEvent(time.Time, string, calendar.Event) error
	DeleteEvent(time.Time, string) error
	PersistErr() error
}

type Config struct {
	WeekStart    time.Weekday
	CellRows     int
	DefaultColor calendar.Color
	Now          func() time.Time
	Logger       lw.Logger
}

const (
	frameInterval = time.Second / 60
	closeDuration = 150 * time.Millisecond

	headerLines = 2
	statusLines = 1
)

type frameMsg struct{}

type closeDoneMsg struct {
	gen int
}

type Model struct {
	st   EventStore
	conf Config
	l    lw.Logger

	month    time.Time
	selected time.Time
	dates    []time.Time

	width  int
	height int

	frames        *overflow.FrameQueue
	frameInFlight bool
	cells         map[string]*overflow.Cell

	modal    modal.Modal
	closeGen int
	form     *eventForm
	cursor   int

	status string
}

func New(st EventStore, conf Config) *Model {
	if conf.Now == nil {
		conf.Now = time.Now
	}
	if conf.CellRows <= 0 {
		conf.CellRows = 4
	}
	if !conf.DefaultColor.IsValid() {
		conf.DefaultColor = calendar.Red
	}
	l := conf.Logger
	if l == nil {
		l = lw.Nil()
	}
	m := &Model{
		st:       st,
		conf:     conf,
		l:        l,
		selected: calendar.Day(conf.Now()),
		frames:   overflow.NewFrameQueue(),
		cells:    make(map[string]*overflow.Cell),
	}
	m.setMonth(m.selected)
	return m
}

// Run starts the month view on the alternate screen and blocks until it quits.
func Run(st EventStore, conf Config) error {
	_, err := tea.NewProgram(New(st, conf), tea.WithAltScreen()).Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) today() time.Time {
	return calendar.Day(m.conf.Now())
}

func (m *Model) setMonth(t time.Time) {
	m.month = calendar.StartOfMonth(t)
	m.dates = calendar.VisibleDates(m.month, m.conf.WeekStart)
	m.layoutCells()
}

func (m *Model) weeks() int {
	return len(m.dates) / 7
}

func (m *Model) cellWidth() int {
	return m.width / 7
}

func (m *Model) cellHeight() int {
	if m.weeks() == 0 {
		return 0
	}
	h := (m.height - headerLines - statusLines) / m.weeks()
	if h < 0 {
		return 0
	}
	return h
}

// containerHeight is the number of lines a cell has for its event rows: the
// cell minus the date line and the line kept for "+N more".
func (m *Model) containerHeight() int {
	h := m.cellHeight() - 2
	if h > m.conf.CellRows {
		h = m.conf.CellRows
	}
	if h < 0 {
		return 0
	}
	return h
}

func rowHeights(n int) []float64 {
	rows := make([]float64, n)
	for i := range rows {
		rows[i] = 1
	}
	return rows
}

// layoutCells makes sure every visible day has an overflow cell sized to the
// current layout, and drops the cells of days no longer visible.
func (m *Model) layoutCells() {
	visible := make(map[string]bool, len(m.dates))
	height := float64(m.containerHeight())
	for _, d := range m.dates {
		key := calendar.DayKey(d)
		visible[key] = true
		c, ok := m.cells[key]
		if !ok {
			c = overflow.NewCell(m.frames)
			m.cells[key] = c
		}
		c.Resize(height)
		c.SetRows(rowHeights(len(m.st.GetEventsForDate(d)))...)
	}
	for key, c := range m.cells {
		if !visible[key] {
			c.Stop()
			delete(m.cells, key)
		}
	}
}

// refreshCell signals that the rows of date changed.
func (m *Model) refreshCell(date time.Time) {
	if c, ok := m.cells[calendar.DayKey(date)]; ok {
		c.SetRows(rowHeights(len(m.st.GetEventsForDate(date)))...)
	}
}

// requestFrame ticks the frame queue when measurements are pending.
func (m *Model) requestFrame() tea.Cmd {
	if m.frameInFlight || m.frames.Pending() == 0 {
		return nil
	}
	m.frameInFlight = true
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

func (m *Model) openModal(kind modal.Kind, date time.Time, id string) tea.Cmd {
	if !m.modal.Open(kind, date, id) {
		return nil
	}
	// a pending close transition no longer applies
	m.closeGen++
	m.cursor = 0
	m.form = nil
	switch kind {
	case modal.AddEvent:
		f := calendar.DefaultForm()
		f.Color = m.conf.DefaultColor
		m.form = newEventForm(f)
		return textinput.Blink
	}
	return nil
}

func (m *Model) closeModal() tea.Cmd {
	if !m.modal.Close() {
		return nil
	}
	m.closeGen++
	gen := m.closeGen
	return tea.Tick(closeDuration, func(time.Time) tea.Msg {
		return closeDoneMsg{gen: gen}
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layoutCells()
	case frameMsg:
		m.frameInFlight = false
		m.frames.RunFrame()
	case closeDoneMsg:
		if msg.gen == m.closeGen && m.modal.TransitionFinished() {
			m.form = nil
		}
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.status = ""
		switch {
		case m.modal.IsOpen() && m.form != nil:
			cmd = m.updateForm(msg)
		case m.modal.IsOpen() && m.modal.Kind() == modal.Overflow:
			cmd = m.updateList(msg)
		default:
			cmd = m.updateGrid(msg)
		}
	default:
		if m.form != nil {
			_, cmd = m.form.Update(msg)
		}
	}
	return m, tea.Batch(cmd, m.requestFrame())
}

func (m *Model) moveSelection(days int) {
	m.selected = m.selected.AddDate(0, 0, days)
	if !calendar.SameMonth(m.selected, m.month) {
		m.setMonth(m.selected)
	}
}

func (m *Model) showMonth(t time.Time) {
	m.selected = calendar.Day(t)
	m.setMonth(t)
}

func (m *Model) updateGrid(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "left", "h":
		m.moveSelection(-1)
	case "right", "l":
		m.moveSelection(1)
	case "up", "k":
		m.moveSelection(-7)
	case "down", "j":
		m.moveSelection(7)
	case "n", "pgdown":
		m.showMonth(calendar.AddMonths(m.month, 1))
	case "p", "pgup":
		m.showMonth(calendar.AddMonths(m.month, -1))
	case "t":
		m.showMonth(m.today())
	case "a":
		return m.openModal(modal.AddEvent, m.selected, "")
	case "enter", "m":
		return m.openModal(modal.Overflow, m.selected, "")
	}
	return nil
}

func (m *Model) listEvents() calendar.Events {
	return calendar.SortForDisplay(m.st.GetEventsForDate(m.modal.Date()))
}

func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	events := m.listEvents()
	switch msg.String() {
	case "esc", "q":
		return m.closeModal()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(events)-1 {
			m.cursor++
		}
	case "a":
		if m.modal.Switch(modal.AddEvent, "") {
			f := calendar.DefaultForm()
			f.Color = m.conf.DefaultColor
			m.form = newEventForm(f)
			return textinput.Blink
		}
	case "e", "enter":
		if m.cursor >= len(events) {
			return nil
		}
		ev := events[m.cursor]
		if m.modal.Switch(modal.EditEvent, ev.ID) {
			m.form = newEventForm(calendar.FormFromEvent(ev))
			return textinput.Blink
		}
	case "d", "x":
		if m.cursor >= len(events) {
			return nil
		}
		date := m.modal.Date()
		ev := events[m.cursor]
		if err := m.st.DeleteEvent(date, ev.ID); err != nil {
			m.status = err.Error()
			return nil
		}
		m.l.WithContext(lw.Ctx{"date": calendar.DayKey(date), "id": ev.ID}).Debugf("event deleted")
		m.refreshCell(date)
		if m.cursor > 0 && m.cursor >= len(events)-1 {
			m.cursor--
		}
	}
	return nil
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "esc" {
		return m.closeModal()
	}
	submit, cmd := m.form.Update(msg)
	if !submit {
		return cmd
	}
	return m.submitForm()
}

func (m *Model) submitForm() tea.Cmd {
	values := m.form.values()
	if err := values.Validate(); err != nil {
		m.form.err = err
		return nil
	}
	date := m.modal.Date()
	lctx := lw.Ctx{"date": calendar.DayKey(date)}
	switch m.modal.Kind() {
	case modal.AddEvent:
		ev := m.st.AddEvent(date, values.Event(""))
		lctx["id"] = ev.ID
		m.l.WithContext(lctx).Debugf("event added")
	case modal.EditEvent:
		id := m.modal.EventID()
		lctx["id"] = id
		if err := m.st.UpdateEvent(date, id, values.Event(id)); err != nil {
			m.l.WithContext(lctx).Warnf("unable to update event: %s", err)
			m.status = err.Error()
		} else {
			m.l.WithContext(lctx).Debugf("event updated")
		}
	}
	m.refreshCell(date)
	return m.closeModal()
}
