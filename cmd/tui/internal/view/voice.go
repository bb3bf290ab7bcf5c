package view

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
	"github.com/MrJamesThe3rd/vyaparx/internal/voice"
)

const transcriptPoll = 150 * time.Millisecond

// VoiceModel is the command prompt. Typed lines go through the recognizer
// so a session behaves as it would with captured speech.
type VoiceModel struct {
	assistant *voice.Assistant
	rec       *voice.TypedRecognizer
	matcher   *voice.Matcher

	input     textinput.Model
	lang      i18n.Language
	session   int
	cancel    context.CancelFunc
	listening bool
	interim   string
	err       error
}

func NewVoiceModel(a *voice.Assistant, rec *voice.TypedRecognizer, matcher *voice.Matcher) VoiceModel {
	ti := textinput.New()
	ti.Prompt = "🎤 "
	ti.Placeholder = "show customers"
	ti.Width = 50

	return VoiceModel{
		assistant: a,
		rec:       rec,
		matcher:   matcher,
		input:     ti,
	}
}

// VoiceOutcomeMsg ends a capture session.
type VoiceOutcomeMsg struct {
	Session int
	Outcome voice.Outcome
	Err     error
}

// SpeechMsg mirrors the synthesizer's current utterance.
type SpeechMsg struct {
	Utterance voice.Utterance
	Speaking  bool
}

type transcriptTickMsg struct {
	session int
}

// Open starts a capture session in lang.
func (m VoiceModel) Open(lang i18n.Language) (VoiceModel, tea.Cmd) {
	m = m.Close()

	ctx, cancel := context.WithCancel(context.Background())
	m.session++
	m.cancel = cancel
	m.lang = lang
	m.listening = true
	m.interim = ""
	m.err = nil
	m.input.SetValue("")

	m.assistant.Greet()

	return m, tea.Batch(m.input.Focus(), m.listenCmd(ctx, m.session), m.tick())
}

// Close abandons the running session, if any.
func (m VoiceModel) Close() VoiceModel {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	m.listening = false
	m.input.Blur()

	return m
}

func (m VoiceModel) Listening() bool { return m.listening }

func (m VoiceModel) Update(msg tea.Msg) (VoiceModel, tea.Cmd) {
	switch msg := msg.(type) {
	case VoiceOutcomeMsg:
		if msg.Session != m.session {
			return m, nil
		}

		m = m.Close()
		m.err = msg.Err

		return m, nil

	case transcriptTickMsg:
		if msg.session != m.session || !m.listening {
			return m, nil
		}

		m.interim = m.assistant.Transcript()

		return m, m.tick()

	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter && m.listening {
			if !m.rec.Submit(m.input.Value()) {
				m.err = errors.New("recognizer is busy, try again")
				return m, nil
			}

			m.input.SetValue("")

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m VoiceModel) View() string {
	var b strings.Builder

	state := m.assistant.State().String()
	fmt.Fprintf(&b, "%s  %s\n\n", titleStyle.Render("Voice Command"), faintStyle.Render(state+" · "+m.lang.SpeechLocale()))
	b.WriteString(m.input.View() + "\n")

	if m.interim != "" {
		b.WriteString("\n" + faintStyle.Render("heard: ") + m.interim + "\n")
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}

	if table, ok := m.matcher.Table(m.lang); ok && len(table.Examples) > 0 {
		b.WriteString("\n" + faintStyle.Render("Try: "+strings.Join(table.Examples, " · ")))
	}

	return lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Render(b.String())
}

func (m VoiceModel) listenCmd(ctx context.Context, session int) tea.Cmd {
	return func() tea.Msg {
		// A session cancelled by Close may still be winding down.
		for {
			out, err := m.assistant.Listen(ctx)
			if !errors.Is(err, voice.ErrAlreadyListening) {
				return VoiceOutcomeMsg{Session: session, Outcome: out, Err: err}
			}

			select {
			case <-ctx.Done():
				return VoiceOutcomeMsg{Session: session}
			case <-time.After(20 * time.Millisecond):
			}
		}
	}
}

func (m VoiceModel) tick() tea.Cmd {
	session := m.session

	return tea.Tick(transcriptPoll, func(time.Time) tea.Msg {
		return transcriptTickMsg{session: session}
	})
}
