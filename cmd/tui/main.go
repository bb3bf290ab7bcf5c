package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/vyaparx/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/vyaparx/internal/billing"
	"github.com/MrJamesThe3rd/vyaparx/internal/config"
	"github.com/MrJamesThe3rd/vyaparx/internal/delivery"
	"github.com/MrJamesThe3rd/vyaparx/internal/export"
	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
	"github.com/MrJamesThe3rd/vyaparx/internal/importer"
	"github.com/MrJamesThe3rd/vyaparx/internal/intake"
	"github.com/MrJamesThe3rd/vyaparx/internal/marketing"
	"github.com/MrJamesThe3rd/vyaparx/internal/nav"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
	"github.com/MrJamesThe3rd/vyaparx/internal/voice"
)

const sidebarWidth = 22

type overlay int

const (
	overlayNone overlay = iota
	overlayImport
	overlayExport
)

var (
	accent     = lipgloss.Color("205")
	headerBar  = lipgloss.NewStyle().Bold(true).Padding(0, 1).Background(lipgloss.Color("57")).Foreground(lipgloss.Color("229"))
	sidebarBox = lipgloss.NewStyle().Width(sidebarWidth).Padding(1, 1).BorderStyle(lipgloss.NormalBorder()).BorderRight(true).BorderForeground(lipgloss.Color("240"))
	faint      = lipgloss.NewStyle().Faint(true)
)

type model struct {
	appName       string
	store         *store.Store
	watcher       *view.Watcher
	importService *importer.Service
	exportService *export.Service

	st store.State

	screens    map[nav.View]view.View
	overlay    overlay
	importView view.ImportModel
	exportView view.ExportModel

	voice     view.VoiceModel
	voiceOpen bool

	menuCursor int
	speech     string
	flash      string
	flashErr   bool
	width      int
	height     int
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.watcher.Next(),
		func() tea.Msg { return view.StateMsg{State: m.store.Snapshot()} },
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case view.StateMsg:
		return m.applyState(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		inner := tea.WindowSizeMsg{Width: msg.Width - sidebarWidth - 2, Height: msg.Height - 6}

		return m, m.broadcast(inner)

	case view.VoiceOutcomeMsg:
		var cmd tea.Cmd
		m.voice, cmd = m.voice.Update(msg)
		m.voiceOpen = m.voice.Listening()

		switch {
		case errors.Is(msg.Err, context.Canceled):
		case msg.Err != nil:
			m.flash, m.flashErr = msg.Err.Error(), true
		case msg.Outcome.Spoken != "":
			m.flash, m.flashErr = msg.Outcome.Spoken, !msg.Outcome.Matched
		}

		return m, cmd

	case view.SpeechMsg:
		m.speech = ""
		if msg.Speaking {
			m.speech = msg.Utterance.Text
		}

		return m, nil

	case view.BackMsg:
		if m.overlay != overlayNone {
			m.overlay = overlayNone
			return m, nil
		}

		if m.st.ActiveView != nav.Dashboard {
			m.store.SetActiveView(nav.Dashboard)
		}

		return m, nil

	case tea.KeyMsg:
		if next, cmd, handled := m.handleGlobalKey(msg); handled {
			return next, cmd
		}
	}

	return m.route(msg)
}

func (m model) applyState(msg view.StateMsg) (tea.Model, tea.Cmd) {
	prev := m.st.ActiveView
	m.st = msg.State

	cmds := []tea.Cmd{m.watcher.Next(), m.broadcast(msg)}

	if prev != m.st.ActiveView {
		m.overlay = overlayNone
		for i, v := range nav.Menu() {
			if v == m.st.ActiveView {
				m.menuCursor = i
			}
		}

		if s, ok := m.screens[m.st.ActiveView]; ok {
			cmds = append(cmds, s.Init())
		}
	}

	return m, tea.Batch(cmds...)
}

// broadcast hands msg to every screen, not only the visible one, so a
// screen is current when it is switched to.
func (m model) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.screens))
	for v, s := range m.screens {
		updated, cmd := s.Update(msg)
		m.screens[v] = updated.(view.View)
		cmds = append(cmds, cmd)
	}

	return tea.Batch(cmds...)
}

func (m model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		m.voice = m.voice.Close()
		m.watcher.Close()

		return m, tea.Quit, true
	case "ctrl+s":
		m.store.SetSidebarOpen(!m.st.SidebarOpen)
		return m, nil, true
	case "ctrl+t":
		m.store.SetLanguage(m.st.Language.Toggle())
		return m, nil, true
	case "ctrl+r":
		var cmd tea.Cmd
		m.voice, cmd = m.voice.Open(m.st.Language)
		m.voiceOpen = true
		m.flash = ""

		return m, cmd, true
	case "ctrl+o":
		m.overlay = overlayImport
		m.importView = view.NewImportModel(m.importService, m.st.Language)

		return m, m.importView.Init(), true
	case "ctrl+x":
		m.overlay = overlayExport
		m.exportView = view.NewExportModel(m.exportService, m.st.Language)

		return m, m.exportView.Init(), true
	}

	if m.voiceOpen {
		if msg.Type == tea.KeyEsc {
			m.voice = m.voice.Close()
			m.voiceOpen = false

			return m, nil, true
		}

		var cmd tea.Cmd
		m.voice, cmd = m.voice.Update(msg)

		return m, cmd, true
	}

	if m.st.SidebarOpen && m.overlay == overlayNone {
		menu := nav.Menu()

		switch msg.String() {
		case "up", "k":
			m.menuCursor = max(m.menuCursor-1, 0)
		case "down", "j":
			m.menuCursor = min(m.menuCursor+1, len(menu)-1)
		case "enter":
			target := menu[m.menuCursor]
			m.store.Do(func(tx *store.Tx) {
				tx.SetActiveView(target)
				tx.SetSidebarOpen(false)
			})
		case "esc":
			m.store.SetSidebarOpen(false)
		}

		return m, nil, true
	}

	return m, nil, false
}

// route delivers msg to whatever has focus.
func (m model) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.voiceOpen {
		if _, isKey := msg.(tea.KeyMsg); !isKey {
			var cmd tea.Cmd
			m.voice, cmd = m.voice.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	switch m.overlay {
	case overlayImport:
		updated, cmd := m.importView.Update(msg)
		m.importView = updated.(view.ImportModel)
		cmds = append(cmds, cmd)
	case overlayExport:
		updated, cmd := m.exportView.Update(msg)
		m.exportView = updated.(view.ExportModel)
		cmds = append(cmds, cmd)
	default:
		if s, ok := m.screens[m.st.ActiveView]; ok {
			updated, cmd := s.Update(msg)
			m.screens[m.st.ActiveView] = updated.(view.View)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m model) current() view.View {
	switch m.overlay {
	case overlayImport:
		return m.importView
	case overlayExport:
		return m.exportView
	}

	if s, ok := m.screens[m.st.ActiveView]; ok {
		return s
	}

	return m.screens[nav.Dashboard]
}

func (m model) View() string {
	lang := m.st.Language
	screen := m.current()

	header := headerBar.Render(fmt.Sprintf("%s · व्यापार एक्स", m.appName)) +
		faint.Render(fmt.Sprintf("  %s  ·  %s  ·  🔔 %d", screen.Title(), lang.NativeName(), m.st.UnreadNotifications()))

	body := screen.View()
	if m.st.SidebarOpen {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), body)
	}

	parts := []string{header, body}

	if m.voiceOpen {
		parts = append(parts, m.voice.View())
	}

	if m.speech != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(accent).Render("🔊 "+m.speech))
	}

	if m.flash != "" {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
		if m.flashErr {
			style = style.Foreground(lipgloss.Color("214"))
		}
		parts = append(parts, style.Render(m.flash))
	}

	help := screen.ShortHelp()
	if m.voiceOpen {
		help = "Enter: run command | Esc: close"
	}
	parts = append(parts, faint.Render(help+"\nctrl+s menu · ctrl+r voice · ctrl+t language · ctrl+o import · ctrl+x export · ctrl+c quit"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m model) sidebar() string {
	var b strings.Builder

	for i, v := range nav.Menu() {
		cursor := "  "
		if i == m.menuCursor {
			cursor = "> "
		}

		label := v.Label(m.st.Language)
		if v == m.st.ActiveView {
			label = lipgloss.NewStyle().Foreground(accent).Bold(true).Render(label)
		}

		b.WriteString(cursor + label + "\n")
	}

	b.WriteString("\n" + faint.Render(i18n.English.NativeName()+" / "+i18n.Hindi.NativeName()))

	return sidebarBox.Render(b.String())
}

func initialModel(cfg *config.Config, st *store.Store, speaker *voice.Speaker) model {
	svc := view.Services{
		Store:     st,
		Billing:   billing.NewService(st),
		Delivery:  delivery.NewService(st),
		Intake:    intake.NewService(st),
		Marketing: marketing.NewService(st),
	}

	matcher := voice.NewMatcher(voice.DefaultTables(), voice.Config{
		SuggestionThreshold: cfg.Voice.SuggestionThreshold,
		MaxSuggestions:      cfg.Voice.MaxSuggestions,
	})
	recognizer := voice.NewTypedRecognizer()
	assistant := voice.NewAssistant(matcher, st, speaker, recognizer)

	screens := map[nav.View]view.View{
		nav.Dashboard: view.NewDashboardModel(false),
		nav.Reports:   view.NewDashboardModel(true),
		nav.Messaging: view.NewMessagingModel(),
		nav.Profile:   view.NewProfileModel(cfg.App.Name),
		nav.Settings:  view.NewSettingsModel(st),
	}
	for v, col := range view.Collections(svc) {
		screens[v] = view.NewListModel(col)
	}

	return model{
		appName:       cfg.App.Name,
		store:         st,
		watcher:       view.NewWatcher(st),
		importService: importer.NewService(st),
		exportService: export.NewService(st),
		screens:       screens,
		voice:         view.NewVoiceModel(assistant, recognizer, matcher),
	}
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logFile, err := tea.LogToFile(cfg.TUI.LogFile, "vyaparx")
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	lang, err := i18n.Parse(cfg.App.DefaultLanguage)
	if err != nil {
		slog.Error("invalid default language", "error", err)
		os.Exit(1)
	}

	opts := []store.Option{store.WithLanguage(lang)}
	if cfg.App.DemoData {
		opts = append(opts, store.WithDemoData())
	}
	st := store.New(opts...)

	var p *tea.Program
	speaker := voice.NewSpeaker(func(u voice.Utterance, speaking bool) {
		// Speak is also called from inside Update; Send must not block it.
		go p.Send(view.SpeechMsg{Utterance: u, Speaking: speaking})
	})

	p = tea.NewProgram(initialModel(cfg, st, speaker), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
