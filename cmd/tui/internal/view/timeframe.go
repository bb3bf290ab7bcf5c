package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const dateLayout = "2006-01-02"

// Timeframe represents a predefined or custom date range selection.
type Timeframe int

const (
	TimeframeToday Timeframe = iota
	TimeframeThisWeek
	TimeframeThisMonth
	TimeframeLastMonth
	TimeframeAll
	TimeframeCustom
)

var timeframeLabels = [...]string{
	TimeframeToday:     "Today",
	TimeframeThisWeek:  "This Week",
	TimeframeThisMonth: "This Month",
	TimeframeLastMonth: "Last Month",
	TimeframeAll:       "All Time",
	TimeframeCustom:    "Custom Range",
}

func (t Timeframe) String() string {
	if t < 0 || int(t) >= len(timeframeLabels) {
		return "Unknown"
	}

	return timeframeLabels[t]
}

// DateRange resolves a predefined timeframe relative to now. Both bounds are
// whole days in now's location. It reports false for All and Custom.
func (t Timeframe) DateRange(now time.Time) (time.Time, time.Time, bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var start, end time.Time

	switch t {
	case TimeframeToday:
		start, end = today, today
	case TimeframeThisWeek:
		// Weeks start on Monday.
		offset := (int(today.Weekday()) + 6) % 7
		start, end = today.AddDate(0, 0, -offset), today
	case TimeframeThisMonth:
		start = today.AddDate(0, 0, 1-today.Day())
		end = today
	case TimeframeLastMonth:
		end = today.AddDate(0, 0, -today.Day())
		start = end.AddDate(0, 0, 1-end.Day())
	default:
		return time.Time{}, time.Time{}, false
	}

	return dayBounds(start, end)
}

func dayBounds(start, end time.Time) (time.Time, time.Time, bool) {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999999999, end.Location())

	return start, end, true
}

// TimeframeSelectedMsg is emitted when the user has selected a valid date range.
// Start and End are zero values when All is true.
type TimeframeSelectedMsg struct {
	Start time.Time
	End   time.Time
	All   bool
}

// TimeframePicker is a reusable component for selecting a date range.
type TimeframePicker struct {
	custom   bool
	selected Timeframe
	initial  Timeframe
	now      func() time.Time

	inputs [2]textinput.Model
	focus  int

	err error
}

func NewTimeframePicker(initial Timeframe) TimeframePicker {
	p := TimeframePicker{
		selected: initial,
		initial:  initial,
		now:      time.Now,
	}

	for i, prompt := range []string{"From: ", "To:   "} {
		ti := textinput.New()
		ti.Placeholder = "YYYY-MM-DD"
		ti.CharLimit = len(dateLayout)
		ti.Width = 12
		ti.Prompt = prompt
		p.inputs[i] = ti
	}

	return p
}

func (m TimeframePicker) Init() tea.Cmd {
	return nil
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.custom {
			return m.updateInputs(msg)
		}

		return m, nil
	}

	if m.custom {
		return m.updateCustom(keyMsg)
	}

	switch keyMsg.String() {
	case "up", "k":
		m.selected = max(m.selected-1, 0)
	case "down", "j":
		m.selected = min(m.selected+1, TimeframeCustom)
	case "enter":
		switch m.selected {
		case TimeframeCustom:
			m.custom = true
			m.focus = 0
			m.inputs[0].Focus()

			return m, textinput.Blink
		case TimeframeAll:
			return m, selectTimeframe(TimeframeSelectedMsg{All: true})
		}

		start, end, _ := m.selected.DateRange(m.now())

		return m, selectTimeframe(TimeframeSelectedMsg{Start: start, End: end})
	}

	return m, nil
}

func selectTimeframe(msg TimeframeSelectedMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m TimeframePicker) updateCustom(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.inputs[m.focus].Blur()
		m.focus = 1 - m.focus
		m.inputs[m.focus].Focus()

		return m, textinput.Blink

	case "enter":
		start, err := time.ParseInLocation(dateLayout, strings.TrimSpace(m.inputs[0].Value()), time.Local)
		if err != nil {
			m.err = fmt.Errorf("invalid start date (YYYY-MM-DD)")
			return m, nil
		}

		end, err := time.ParseInLocation(dateLayout, strings.TrimSpace(m.inputs[1].Value()), time.Local)
		if err != nil {
			m.err = fmt.Errorf("invalid end date (YYYY-MM-DD)")
			return m, nil
		}

		if end.Before(start) {
			m.err = fmt.Errorf("end date is before start date")
			return m, nil
		}

		m.err = nil
		start, end, _ = dayBounds(start, end)

		return m, selectTimeframe(TimeframeSelectedMsg{Start: start, End: end})

	case "esc":
		m.custom = false
		m.err = nil

		return m, nil
	}

	return m.updateInputs(msg)
}

func (m TimeframePicker) updateInputs(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m TimeframePicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = "\n\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.custom {
		return fmt.Sprintf(
			"Enter Custom Range:\n\n%s\n%s\n\n(Enter to confirm, Tab to switch, Esc to back)%s",
			m.inputs[0].View(),
			m.inputs[1].View(),
			errStr,
		)
	}

	var b strings.Builder
	b.WriteString("Select Timeframe:\n\n")

	for tf := range TimeframeCustom + 1 {
		cursor := "  "
		label := tf.String()
		if tf == m.selected {
			cursor = "> "
			label = lipgloss.NewStyle().Foreground(accentColor).Render(label)
		}

		b.WriteString(cursor + label + "\n")
	}

	b.WriteString("\n(Enter to select, Esc to back)")

	return b.String() + errStr
}

// IsSelecting returns true if the picker is in the selection state (not custom input).
func (m TimeframePicker) IsSelecting() bool {
	return !m.custom
}

// Reset returns the picker to its initial selection state.
func (m *TimeframePicker) Reset() {
	m.custom = false
	m.selected = m.initial
	m.err = nil

	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
}
