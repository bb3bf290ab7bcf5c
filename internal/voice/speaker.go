package voice

import (
	"log/slog"
	"sync"

	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
)

type Utterance struct {
	Text   string        `json:"text"`
	Lang   i18n.Language `json:"lang"`
	Locale string        `json:"locale"`
}

// Speaker is the in-process Synthesizer. It has no audio output: it keeps
// the current utterance for display and logs it. A new Speak replaces
// whatever was being spoken.
type Speaker struct {
	mu       sync.Mutex
	current  *Utterance
	onChange func(u Utterance, speaking bool)
}

// NewSpeaker returns a Speaker. onChange, when non-nil, is called after
// every Speak and Cancel.
func NewSpeaker(onChange func(u Utterance, speaking bool)) *Speaker {
	return &Speaker{onChange: onChange}
}

func (s *Speaker) Speak(text string, lang i18n.Language) {
	u := Utterance{Text: text, Lang: lang, Locale: lang.SpeechLocale()}

	s.mu.Lock()
	if s.current != nil {
		slog.Debug("utterance interrupted", "text", s.current.Text)
	}
	s.current = &u
	s.mu.Unlock()

	slog.Info("speaking", "text", text, "locale", u.Locale)

	if s.onChange != nil {
		s.onChange(u, true)
	}
}

func (s *Speaker) Cancel() {
	s.mu.Lock()
	prev := s.current
	s.current = nil
	s.mu.Unlock()

	if prev != nil && s.onChange != nil {
		s.onChange(*prev, false)
	}
}

// Current returns the utterance being spoken, if any.
func (s *Speaker) Current() (Utterance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return Utterance{}, false
	}

	return *s.current, true
}
