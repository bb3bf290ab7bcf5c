package voice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
	"github.com/MrJamesThe3rd/vyaparx/internal/nav"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
	"github.com/MrJamesThe3rd/vyaparx/internal/voice"
)

type mocks struct {
	nav   *voice.MockNavigator
	synth *voice.MockSynthesizer
	rec   *voice.MockRecognizer
}

func newAssistant(t *testing.T, setup func(m mocks)) *voice.Assistant {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mocks{
		nav:   voice.NewMockNavigator(ctrl),
		synth: voice.NewMockSynthesizer(ctrl),
		rec:   voice.NewMockRecognizer(ctrl),
	}
	if setup != nil {
		setup(m)
	}

	matcher := voice.NewMatcher(voice.DefaultTables(), voice.DefaultConfig())

	return voice.NewAssistant(matcher, m.nav, m.synth, m.rec)
}

func eventStream(events ...voice.Event) <-chan voice.Event {
	ch := make(chan voice.Event, len(events))
	for _, ev := range events {
		ch <- ev
	}
	close(ch)

	return ch
}

func TestAssistant_Execute(t *testing.T) {
	type testCase struct {
		name       string
		transcript string
		setupMock  func(m mocks)
		wantMatch  bool
		wantTarget nav.View
		wantSpoken string
	}

	tests := []testCase{
		{
			name:       "Hit",
			transcript: "show customers",
			setupMock: func(m mocks) {
				m.nav.EXPECT().Language().Return(i18n.English)
				m.nav.EXPECT().Navigate(nav.Customers, "show customers")
				m.synth.EXPECT().Speak("Command executed successfully", i18n.English)
			},
			wantMatch:  true,
			wantTarget: nav.Customers,
			wantSpoken: "Command executed successfully",
		},
		{
			name:       "MissSpeaksSuggestions",
			transcript: "xyz abc",
			setupMock: func(m mocks) {
				m.nav.EXPECT().Language().Return(i18n.English)
				m.synth.EXPECT().Speak("Command not recognized. Did you mean: show dashboard or open dashboard?", i18n.English)
			},
			wantSpoken: "Command not recognized. Did you mean: show dashboard or open dashboard?",
		},
		{
			name:       "HindiHit",
			transcript: "बिल बनाओ",
			setupMock: func(m mocks) {
				m.nav.EXPECT().Language().Return(i18n.Hindi)
				m.nav.EXPECT().Navigate(nav.Billing, "बिल बनाओ")
				m.synth.EXPECT().Speak("कमांड सफलतापूर्वक निष्पादित", i18n.Hindi)
			},
			wantMatch:  true,
			wantTarget: nav.Billing,
			wantSpoken: "कमांड सफलतापूर्वक निष्पादित",
		},
		{
			name:       "HindiMiss",
			transcript: "xyz",
			setupMock: func(m mocks) {
				m.nav.EXPECT().Language().Return(i18n.Hindi)
				m.synth.EXPECT().Speak("कमांड समझ नहीं आया। क्या आपका मतलब था: डैशबोर्ड दिखाओ या डैशबोर्ड खोलो?", i18n.Hindi)
			},
			wantSpoken: "कमांड समझ नहीं आया। क्या आपका मतलब था: डैशबोर्ड दिखाओ या डैशबोर्ड खोलो?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAssistant(t, tt.setupMock)

			got := a.Execute(tt.transcript)

			assert.Equal(t, tt.wantMatch, got.Matched)
			assert.Equal(t, tt.wantTarget, got.Target)
			assert.Equal(t, tt.wantSpoken, got.Spoken)
			if !tt.wantMatch {
				assert.Len(t, got.Suggestions, 2)
			}
		})
	}
}

func TestAssistant_Listen(t *testing.T) {
	a := newAssistant(t, func(m mocks) {
		m.nav.EXPECT().Language().Return(i18n.English).Times(2)
		m.rec.EXPECT().Start(gomock.Any(), i18n.English).Return(eventStream(
			voice.Event{Kind: voice.EventInterim, Transcript: "show"},
			voice.Event{Kind: voice.EventFinal, Transcript: "Show Products", Confidence: 0.92},
			voice.Event{Kind: voice.EventEnd},
		), nil)
		m.nav.EXPECT().Navigate(nav.Products, "show products")
		m.synth.EXPECT().Speak("Command executed successfully", i18n.English)
	})

	got, err := a.Listen(context.Background())

	require.NoError(t, err)
	assert.True(t, got.Matched)
	assert.Equal(t, nav.Products, got.Target)
	assert.InDelta(t, 0.92, got.Confidence, 1e-9)
	assert.Equal(t, "show products", a.Transcript())
	assert.Equal(t, voice.Idle, a.State())
}

func TestAssistant_Listen_CaptureErrors(t *testing.T) {
	tests := []struct {
		code voice.ErrorCode
		want string
	}{
		{voice.CodeNoSpeech, "No speech detected. Please try again."},
		{voice.CodeAudioCapture, "Microphone not accessible. Please check permissions."},
		{voice.CodeNotAllowed, "Microphone permission denied."},
		{voice.ErrorCode("network"), "Voice recognition error. Please try again."},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			a := newAssistant(t, func(m mocks) {
				m.nav.EXPECT().Language().Return(i18n.English)
				m.rec.EXPECT().Start(gomock.Any(), i18n.English).Return(eventStream(
					voice.Event{Kind: voice.EventError, Code: tt.code},
				), nil)
				m.synth.EXPECT().Speak(tt.want, i18n.English)
			})

			got, err := a.Listen(context.Background())

			require.NoError(t, err)
			assert.False(t, got.Matched)
			assert.Equal(t, tt.code, got.Error)
			assert.Equal(t, tt.want, got.Spoken)
			assert.Equal(t, voice.Idle, a.State())
		})
	}
}

func TestAssistant_Listen_StartError(t *testing.T) {
	startErr := errors.New("no microphone")
	a := newAssistant(t, func(m mocks) {
		m.nav.EXPECT().Language().Return(i18n.English)
		m.rec.EXPECT().Start(gomock.Any(), i18n.English).Return(nil, startErr)
	})

	_, err := a.Listen(context.Background())

	require.ErrorIs(t, err, startErr)
	assert.Equal(t, voice.Idle, a.State())
}

func TestAssistant_Listen_AlreadyListening(t *testing.T) {
	started := make(chan struct{})
	pending := make(chan voice.Event)

	a := newAssistant(t, func(m mocks) {
		m.nav.EXPECT().Language().Return(i18n.English)
		m.rec.EXPECT().Start(gomock.Any(), i18n.English).
			DoAndReturn(func(context.Context, i18n.Language) (<-chan voice.Event, error) {
				close(started)
				return pending, nil
			})
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		_, err := a.Listen(ctx)
		done <- err
	}()

	<-started
	assert.Equal(t, voice.Listening, a.State())

	_, err := a.Listen(context.Background())
	assert.ErrorIs(t, err, voice.ErrAlreadyListening)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("listen did not stop after cancel")
	}
	assert.Equal(t, voice.Idle, a.State())
}

func TestAssistant_WithStore(t *testing.T) {
	s := store.New(store.WithIDGenerator(store.SequentialIDs()))
	speaker := voice.NewSpeaker(nil)
	rec := voice.NewTypedRecognizer()
	a := voice.NewAssistant(voice.NewMatcher(voice.DefaultTables(), voice.DefaultConfig()), s, speaker, rec)

	require.True(t, rec.Submit("open the customer list please"))
	got, err := a.Listen(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Matched)

	st := s.Snapshot()
	assert.Equal(t, nav.Customers, st.ActiveView)
	require.Len(t, st.Notifications, 1)
	assert.Equal(t, "Navigating to customer list", st.Notifications[0].Message)

	u, ok := speaker.Current()
	require.True(t, ok)
	assert.Equal(t, "Command executed successfully", u.Text)

	require.True(t, rec.Submit("xyz abc"))
	before := s.Snapshot()
	got, err = a.Listen(context.Background())
	require.NoError(t, err)
	assert.False(t, got.Matched)
	assert.Equal(t, before, s.Snapshot(), "a miss changes nothing")
}

func TestAssistant_GreetAndStop(t *testing.T) {
	a := newAssistant(t, func(m mocks) {
		m.nav.EXPECT().Language().Return(i18n.Hindi)
		m.synth.EXPECT().Speak("आवाज़ सहायक कमांड के लिए तैयार", i18n.Hindi)
		m.synth.EXPECT().Cancel()
	})

	a.Greet()
	a.StopSpeaking()
}
