package voice

import (
	"context"
	"strings"

	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
)

// TypedRecognizer feeds typed lines through the recognizer protocol. Each
// session consumes one submitted line: one interim event per word prefix,
// then a final event and the end marker. A blank line reports no-speech.
type TypedRecognizer struct {
	lines chan string
}

func NewTypedRecognizer() *TypedRecognizer {
	return &TypedRecognizer{lines: make(chan string, 8)}
}

// Submit queues a line for the running or next session. It reports false when the
// queue is full.
func (r *TypedRecognizer) Submit(line string) bool {
	select {
	case r.lines <- line:
		return true
	default:
		return false
	}
}

// drain drops lines queued for a session that was cancelled before reading
// them, so the next session does not act on them.
func (r *TypedRecognizer) drain() {
	for {
		select {
		case <-r.lines:
		default:
			return
		}
	}
}

func (r *TypedRecognizer) Start(ctx context.Context, _ i18n.Language) (<-chan Event, error) {
	events := make(chan Event)

	go func() {
		defer close(events)

		send := func(ev Event) bool {
			select {
			case events <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		}

		var line string
		select {
		case line = <-r.lines:
		case <-ctx.Done():
			r.drain()
			return
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			if send(Event{Kind: EventError, Code: CodeNoSpeech}) {
				send(Event{Kind: EventEnd})
			}

			return
		}

		for i := range words {
			if !send(Event{Kind: EventInterim, Transcript: strings.Join(words[:i+1], " ")}) {
				return
			}
		}

		if send(Event{Kind: EventFinal, Transcript: line, Confidence: 1}) {
			send(Event{Kind: EventEnd})
		}
	}()

	return events, nil
}
