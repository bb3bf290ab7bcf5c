package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
	"github.com/MrJamesThe3rd/vyaparx/internal/importer"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
)

const importTimeout = 30 * time.Second

type importState int

const (
	importStateKindSelect importState = iota
	importStateFilePick
	importStateParsing
	importStatePreview
	importStateResult
)

type ImportModel struct {
	CommonModel
	importService *importer.Service
	lang          i18n.Language

	state       importState
	filePicker  filepicker.Model
	kindOptions []importer.Kind
	kindCursor  int

	parsed  importer.Result
	preview list.Model

	status string
	err    error
}

func NewImportModel(svc *importer.Service, lang i18n.Language) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt", ".tsv"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		importService: svc,
		lang:          lang,
		filePicker:    fp,
		kindOptions:   []importer.Kind{importer.KindProducts, importer.KindCustomers},
	}
}

func (m ImportModel) Title() string { return "Import Catalog" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStatePreview {
		return "Enter: import all | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) kind() importer.Kind {
	return m.kindOptions[m.kindCursor]
}

func (m ImportModel) Init() tea.Cmd {
	return nil
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		switch m.state {
		case importStateKindSelect:
			return m.updateKindSelect(msg)
		case importStatePreview:
			return m.updatePreview(msg)
		}

	case parsedMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		if msg.result.Len() == 0 {
			m.state = importStateResult
			m.status = "The file has a header but no records."

			return m, nil
		}

		m.parsed = msg.result
		m.state = importStatePreview
		m.preview = m.newPreviewList(msg.result)

		return m, nil

	case appliedMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d %s.", msg.count, m.parsed.Kind)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateParsing
		m.status = fmt.Sprintf("Reading %s...", path)

		return m, m.parseCmd(m.kind(), path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick, importStatePreview, importStateResult:
		m.state = importStateKindSelect
		m.parsed = importer.Result{}
		m.err = nil
		m.status = ""

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateKindSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		m.kindCursor = max(m.kindCursor-1, 0)
	case tea.KeyDown:
		m.kindCursor = min(m.kindCursor+1, len(m.kindOptions)-1)
	case tea.KeyEnter:
		m.state = importStateFilePick
		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		return m, m.applyCmd(m.parsed)
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateKindSelect:
		return m.viewKindSelect()
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select a %s sheet (CSV, any delimiter):\n\n%s", m.kind(), m.filePicker.View()),
		)
	case importStateParsing:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStatePreview:
		return lipgloss.NewStyle().Padding(1).Render(m.preview.View())
	case importStateResult:
		style := successStyle
		if m.err != nil {
			style = errorStyle
		}

		return lipgloss.NewStyle().Padding(2).Render(style.Render(m.status) + "\n\n(Esc to go back)")
	}

	return ""
}

func (m ImportModel) viewKindSelect() string {
	s := "What does the sheet contain?\n\n"

	for i, kind := range m.kindOptions {
		cursor := " "
		if i == m.kindCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, kind)
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m ImportModel) newPreviewList(res importer.Result) list.Model {
	items := make([]list.Item, 0, res.Len())
	for _, p := range res.Products {
		items = append(items, productPreview{in: p, lang: m.lang})
	}
	for _, c := range res.Customers {
		items = append(items, customerPreview{in: c})
	}

	l := list.New(items, previewDelegate{}, 80, 20)
	l.Title = fmt.Sprintf("%d %s ready to import", res.Len(), res.Kind)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

// Messages

type parsedMsg struct {
	result importer.Result
	err    error
}

type appliedMsg struct {
	count int
	err   error
}

func (m ImportModel) parseCmd(kind importer.Kind, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parsedMsg{err: err}
		}
		defer f.Close()

		res, err := m.importService.Import(kind, f)

		return parsedMsg{result: res, err: err}
	}
}

func (m ImportModel) applyCmd(res importer.Result) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		if err := m.importService.Apply(ctx, res); err != nil {
			return appliedMsg{err: err}
		}

		return appliedMsg{count: res.Len()}
	}
}

// Preview list items

type productPreview struct {
	in   merchant.ProductInput
	lang i18n.Language
}

func (p productPreview) FilterValue() string { return p.in.Name }

func (p productPreview) line() string {
	return fmt.Sprintf("%-28s %10s  stock %-4d min %-4d %s",
		truncate(p.in.Name, 28), FormatAmount(p.lang, p.in.Price), p.in.Stock, p.in.MinStock, p.in.Category)
}

type customerPreview struct {
	in merchant.CustomerInput
}

func (c customerPreview) FilterValue() string { return c.in.Name }

func (c customerPreview) line() string {
	return fmt.Sprintf("%-24s %-15s %s", truncate(c.in.Name, 24), c.in.Phone, c.in.Email)
}

type previewDelegate struct{}

func (d previewDelegate) Height() int                             { return 1 }
func (d previewDelegate) Spacing() int                            { return 0 }
func (d previewDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d previewDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	liner, ok := item.(interface{ line() string })
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	fmt.Fprintf(w, "%s%s", cursor, liner.line())
}
