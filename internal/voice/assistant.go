package voice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
	"github.com/MrJamesThe3rd/vyaparx/internal/nav"
)

var ErrAlreadyListening = errors.New("voice: already listening")

//go:generate mockgen -source=assistant.go -destination=assistant_mock.go -package=voice

// Navigator applies a recognized command. Navigate must switch the view and
// record the announcing notification as one change.
type Navigator interface {
	Language() i18n.Language
	Navigate(view nav.View, phrase string)
}

type Synthesizer interface {
	Speak(text string, lang i18n.Language)
	Cancel()
}

type Recognizer interface {
	Start(ctx context.Context, lang i18n.Language) (<-chan Event, error)
}

type EventKind int

const (
	EventInterim EventKind = iota
	EventFinal
	EventError
	EventEnd
)

// ErrorCode classifies a failed capture session.
type ErrorCode string

const (
	CodeNoSpeech     ErrorCode = "no-speech"
	CodeAudioCapture ErrorCode = "audio-capture"
	CodeNotAllowed   ErrorCode = "not-allowed"
)

func (c ErrorCode) message() string {
	switch c {
	case CodeNoSpeech:
		return i18n.MsgNoSpeech
	case CodeAudioCapture:
		return i18n.MsgAudioCapture
	case CodeNotAllowed:
		return i18n.MsgNotAllowed
	default:
		return i18n.MsgRecognitionError
	}
}

type Event struct {
	Kind       EventKind
	Transcript string
	Confidence float64
	Code       ErrorCode
}

type State int

const (
	Idle State = iota
	Listening
)

func (s State) String() string {
	if s == Listening {
		return "listening"
	}

	return "idle"
}

// Outcome describes what happened to one transcript.
type Outcome struct {
	Transcript  string    `json:"transcript"`
	Matched     bool      `json:"matched"`
	Kind        MatchKind `json:"kind,omitempty"`
	Phrase      string    `json:"phrase,omitempty"`
	Target      nav.View  `json:"target,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
	Spoken      string    `json:"spoken"`
	Confidence  float64   `json:"confidence,omitempty"`
	Error       ErrorCode `json:"error,omitempty"`
}

type Assistant struct {
	matcher *Matcher
	nav     Navigator
	synth   Synthesizer
	rec     Recognizer

	mu         sync.Mutex
	state      State
	transcript string
}

func NewAssistant(matcher *Matcher, navigator Navigator, synth Synthesizer, rec Recognizer) *Assistant {
	return &Assistant{
		matcher: matcher,
		nav:     navigator,
		synth:   synth,
		rec:     rec,
	}
}

func (a *Assistant) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.state
}

// Transcript is the latest interim or final text of the current or last
// session. It is for display only.
func (a *Assistant) Transcript() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.transcript
}

// Listen runs one capture session and blocks until it ends. The returned
// Outcome reflects the final transcript or the capture error, if any.
func (a *Assistant) Listen(ctx context.Context) (Outcome, error) {
	a.mu.Lock()
	if a.state == Listening {
		a.mu.Unlock()
		return Outcome{}, ErrAlreadyListening
	}
	a.state = Listening
	a.transcript = ""
	a.mu.Unlock()

	defer a.setState(Idle)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lang := a.nav.Language()

	events, err := a.rec.Start(ctx, lang)
	if err != nil {
		return Outcome{}, fmt.Errorf("starting recognizer: %w", err)
	}

	var out Outcome
	for {
		select {
		case <-ctx.Done():
			return out, nil
		case ev, ok := <-events:
			if !ok {
				return out, nil
			}

			switch ev.Kind {
			case EventInterim:
				a.setTranscript(ev.Transcript)
			case EventFinal:
				a.setTranscript(ev.Transcript)
				out = a.Execute(ev.Transcript)
				out.Confidence = ev.Confidence
			case EventError:
				slog.Warn("speech recognition error", "code", ev.Code)
				msg := i18n.T(lang, ev.Code.message())
				a.synth.Speak(msg, lang)

				return Outcome{Spoken: msg, Error: ev.Code}, nil
			case EventEnd:
				return out, nil
			}
		}
	}
}

// Execute matches transcript in the navigator's current language and acts
// on the result. A miss changes nothing and speaks the suggestions.
func (a *Assistant) Execute(transcript string) Outcome {
	lang := a.nav.Language()
	res := a.matcher.Match(lang, transcript)

	out := Outcome{
		Transcript:  normalize(transcript),
		Matched:     res.Matched,
		Kind:        res.Kind,
		Phrase:      res.Phrase,
		Target:      res.Target,
		Suggestions: res.Suggestions,
	}

	if res.Matched {
		a.nav.Navigate(res.Target, res.Phrase)
		out.Spoken = i18n.T(lang, i18n.MsgCommandExecuted)
	} else {
		joined := strings.Join(res.Suggestions, i18n.T(lang, i18n.MsgOr))
		out.Spoken = i18n.T(lang, i18n.MsgCommandNotRecognized, joined)
	}

	slog.Info("voice command", "transcript", out.Transcript, "matched", out.Matched, "target", out.Target)
	a.synth.Speak(out.Spoken, lang)

	return out
}

// Greet speaks the ready prompt.
func (a *Assistant) Greet() {
	lang := a.nav.Language()
	a.synth.Speak(i18n.T(lang, i18n.MsgAssistantReady), lang)
}

func (a *Assistant) StopSpeaking() {
	a.synth.Cancel()
}

func (a *Assistant) setState(s State) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.state = s
}

func (a *Assistant) setTranscript(t string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.transcript = normalize(t)
}
