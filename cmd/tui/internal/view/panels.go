package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
	"github.com/MrJamesThe3rd/vyaparx/internal/nav"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

// PanelModel is a read-only screen rendered from the latest snapshot.
type PanelModel struct {
	CommonModel
	view   nav.View
	st     store.State
	render func(st store.State) string
}

func NewMessagingModel() PanelModel {
	return PanelModel{view: nav.Messaging, render: messagingPanel}
}

func NewProfileModel(business string) PanelModel {
	return PanelModel{
		view: nav.Profile,
		render: func(st store.State) string {
			return profilePanel(business, st)
		},
	}
}

func (m PanelModel) Title() string { return m.view.Label(m.st.Language) }

func (m PanelModel) ShortHelp() string { return "Esc: back" }

func (m PanelModel) Init() tea.Cmd { return nil }

func (m PanelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StateMsg:
		m.st = msg.State
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m PanelModel) View() string {
	return lipgloss.NewStyle().Padding(1).Render(
		titleStyle.Render(m.Title()) + "\n\n" + m.render(m.st),
	)
}

func messagingPanel(st store.State) string {
	channels := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Width(30).Render("WhatsApp Business\n\n"+faintStyle.Render("Bulk messages and customer conversations")),
		panelStyle.Width(30).Render("SMS Gateway\n\n"+faintStyle.Render("Promotional and transactional SMS")),
		panelStyle.Width(30).Render("Email Marketing\n\n"+faintStyle.Render("Create and send email campaigns")),
	)

	var b strings.Builder
	b.WriteString(faintStyle.Render("Provider integrations are not connected. Incoming WhatsApp messages are tracked as leads.") + "\n\n")
	b.WriteString(channels + "\n")

	for _, l := range st.WhatsAppLeads[:min(5, len(st.WhatsAppLeads))] {
		fmt.Fprintf(&b, "%s  %-18s %s\n", l.Timestamp.Format("01-02 15:04"), truncate(l.CustomerName, 18), truncate(l.Message, 50))
	}

	return b.String()
}

func profilePanel(business string, st store.State) string {
	return panelStyle.Width(50).Render(fmt.Sprintf(
		"%s\n\nLanguage:   %s\nCustomers:  %d\nProducts:   %d\nInvoices:   %d\nCampaigns:  %d",
		titleStyle.Render(business),
		st.Language.NativeName(),
		len(st.Customers),
		len(st.Products),
		len(st.Invoices),
		len(st.Campaigns),
	))
}

// SettingsModel switches the interface language.
type SettingsModel struct {
	CommonModel
	store *store.Store
	st    store.State

	form   *huh.Form
	status string
}

func NewSettingsModel(s *store.Store) SettingsModel {
	m := SettingsModel{store: s}
	m.resetForm(s.Language())

	return m
}

func (m *SettingsModel) resetForm(current i18n.Language) {
	opts := make([]huh.Option[i18n.Language], 0, len(i18n.Languages()))
	for _, l := range i18n.Languages() {
		opts = append(opts, huh.NewOption(l.NativeName(), l))
	}

	choice := new(current)
	m.form = newForm(huh.NewSelect[i18n.Language]().Title("Language").Options(opts...).Value(choice))
	m.form.SubmitCmd = func() tea.Msg { return languageChosenMsg{lang: *choice} }
}

type languageChosenMsg struct {
	lang i18n.Language
}

func (m SettingsModel) Title() string { return nav.Settings.Label(m.st.Language) }

func (m SettingsModel) ShortHelp() string { return "Enter: apply | Esc: back" }

func (m SettingsModel) Init() tea.Cmd { return m.form.Init() }

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StateMsg:
		m.st = msg.State
		return m, nil
	case languageChosenMsg:
		m.store.SetLanguage(msg.lang)
		m.status = "Language set to " + msg.lang.NativeName()
		m.resetForm(msg.lang)

		return m, m.form.Init()
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	return m, cmd
}

func (m SettingsModel) View() string {
	body := m.form.View()
	if m.status != "" {
		body = successStyle.Render(m.status) + "\n\n" + body
	}

	return lipgloss.NewStyle().Padding(1).Render(
		titleStyle.Render(m.Title()) + "\n\n" + panelStyle.Width(formWidth+4).Render(body) +
			"\n\n" + faintStyle.Render("ctrl+t toggles the language from any screen"),
	)
}
