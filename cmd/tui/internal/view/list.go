package view

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/vyaparx/internal/nav"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

// Editor is a form plus the function that commits what it collected. A nil
// Form commits straight away.
type Editor struct {
	Title  string
	Form   *huh.Form
	Submit func(ctx context.Context) (string, error)
}

// Row is one table line. Status feeds the status filter.
type Row struct {
	ID     string
	Status string
	Cells  table.Row
}

// Action is a key bound to the selected row.
type Action struct {
	Key  string
	Help string
	Open func(st store.State, id string) *Editor
}

// Collection describes how one record type is listed and edited.
type Collection struct {
	View     nav.View
	Columns  []table.Column
	Rows     func(st store.State, term string) []Row
	Statuses []string
	Create   func(st store.State) *Editor
	Actions  []Action
	// Detail renders the side panel for the selected row.
	Detail func(st store.State, id string) string
}

type ListModel struct {
	CommonModel
	col Collection
	st  store.State

	table     table.Model
	rows      []Row
	search    textinput.Model
	searching bool
	statusIdx int

	editor *Editor
	status string
	err    error
}

func NewListModel(col Collection) ListModel {
	t := table.New(
		table.WithColumns(col.Columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())

	si := textinput.New()
	si.Prompt = "/ "
	si.Placeholder = "search"
	si.Width = 30

	return ListModel{
		col:    col,
		table:  t,
		search: si,
	}
}

func (m ListModel) Title() string { return m.col.View.Label(m.st.Language) }

func (m ListModel) ShortHelp() string {
	switch {
	case m.editor != nil:
		return "Navigate form | Esc: cancel"
	case m.searching:
		return "Enter: apply | Esc: clear"
	}

	help := "/: search"
	if len(m.col.Statuses) > 0 {
		help += " | s: status filter"
	}
	if m.col.Create != nil {
		help += " | n: new"
	}
	for _, a := range m.col.Actions {
		help += fmt.Sprintf(" | %s: %s", a.Key, a.Help)
	}

	return help
}

func (m ListModel) Init() tea.Cmd {
	return nil
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StateMsg:
		m.st = msg.State
		m.refreshTable()

		return m, nil

	case editorDoneMsg:
		m.status, m.err = msg.text, msg.err
		if m.err != nil {
			m.status = fmt.Sprintf("Error: %v", m.err)
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-14, 5))

		return m, nil
	}

	switch {
	case m.editor != nil:
		return m.updateEditor(msg)
	case m.searching:
		return m.updateSearch(msg)
	}

	return m.updateBrowse(msg)
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)

		return m, cmd
	}

	key := keyMsg.String()
	switch key {
	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.refreshTable()

			return m, nil
		}

		return m, Back
	case "/":
		m.searching = true
		m.table.Blur()

		return m, m.search.Focus()
	case "s":
		if len(m.col.Statuses) > 0 {
			m.statusIdx = (m.statusIdx + 1) % (len(m.col.Statuses) + 1)
			m.refreshTable()
		}

		return m, nil
	case "n":
		if m.col.Create != nil {
			return m.open(m.col.Create(m.st))
		}
	}

	if id, ok := m.selectedID(); ok {
		for _, a := range m.col.Actions {
			if a.Key == key {
				return m.open(a.Open(m.st, id))
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.search.SetValue("")
			fallthrough
		case tea.KeyEnter:
			m.searching = false
			m.search.Blur()
			m.table.Focus()
			m.refreshTable()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refreshTable()

	return m, cmd
}

func (m ListModel) open(e *Editor) (tea.Model, tea.Cmd) {
	if e == nil {
		return m, nil
	}

	m.status, m.err = "", nil

	if e.Form == nil {
		return m, submitCmd(e)
	}

	m.editor = e
	m.table.Blur()

	return m, e.Form.Init()
}

func (m ListModel) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.editor = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.editor.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.editor.Form = f
	}

	switch m.editor.Form.State {
	case huh.StateCompleted:
		e := m.editor
		m.editor = nil
		m.table.Focus()

		return m, submitCmd(e)
	case huh.StateAborted:
		m.editor = nil
		m.table.Focus()

		return m, nil
	}

	return m, cmd
}

func (m ListModel) selectedID() (string, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return "", false
	}

	return m.rows[idx].ID, true
}

func (m ListModel) statusFilter() string {
	if m.statusIdx == 0 {
		return ""
	}

	return m.col.Statuses[m.statusIdx-1]
}

func (m *ListModel) refreshTable() {
	all := m.col.Rows(m.st, m.search.Value())
	status := m.statusFilter()

	rows := make([]Row, 0, len(all))
	cells := make([]table.Row, 0, len(all))

	for _, r := range all {
		if status != "" && r.Status != status {
			continue
		}

		rows = append(rows, r)
		cells = append(cells, r.Cells)
	}

	m.rows = rows

	m.table.SetRows(cells)
	if m.table.Cursor() >= len(cells) {
		m.table.SetCursor(max(len(cells)-1, 0))
	}
}

func (m ListModel) View() string {
	status := "All"
	if s := m.statusFilter(); s != "" {
		status = s
	}

	header := titleStyle.Render(m.Title())
	if len(m.col.Statuses) > 0 {
		header += fmt.Sprintf("   [s] Status: %s", activeStyle(status))
	}
	header += fmt.Sprintf("   %d records", len(m.rows))

	var searchLine string
	if m.searching || m.search.Value() != "" {
		searchLine = m.search.View()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		searchLine,
		boxStyle.Render(m.table.View()),
	)

	switch {
	case m.editor != nil:
		panel := panelStyle.Width(52).Render(
			fmt.Sprintf("%s\n\n%s", titleStyle.Render(m.editor.Title), m.editor.Form.View()),
		)
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	case m.col.Detail != nil:
		if id, ok := m.selectedID(); ok {
			if detail := m.col.Detail(m.st, id); detail != "" {
				content = lipgloss.JoinHorizontal(lipgloss.Top, content, panelStyle.Width(44).Render(detail))
			}
		}
	}

	if m.status != "" {
		style := successStyle
		if m.err != nil {
			style = errorStyle
		}
		content = style.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type editorDoneMsg struct {
	text string
	err  error
}

func submitCmd(e *Editor) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := actionCtx()
		defer cancel()

		text, err := e.Submit(ctx)

		return editorDoneMsg{text: text, err: err}
	}
}
