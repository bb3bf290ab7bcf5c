package voice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
	"github.com/MrJamesThe3rd/vyaparx/internal/nav"
	"github.com/MrJamesThe3rd/vyaparx/internal/voice"
)

func TestMatcher_Match(t *testing.T) {
	type want struct {
		matched     bool
		kind        voice.MatchKind
		phrase      string
		target      nav.View
		suggestions []string
	}

	tests := []struct {
		name       string
		lang       i18n.Language
		transcript string
		want       want
	}{
		{
			name:       "ExactMatch",
			lang:       i18n.English,
			transcript: "show customers",
			want:       want{matched: true, kind: voice.MatchExact, phrase: "show customers", target: nav.Customers},
		},
		{
			name:       "ExactMatchIsCaseAndSpaceInsensitive",
			lang:       i18n.English,
			transcript: "  Show Customers ",
			want:       want{matched: true, kind: voice.MatchExact, phrase: "show customers", target: nav.Customers},
		},
		{
			name:       "SubstringMatch",
			lang:       i18n.English,
			transcript: "open the customer list please",
			want:       want{matched: true, kind: voice.MatchSubstring, phrase: "customer list", target: nav.Customers},
		},
		{
			name:       "TranscriptInsidePhrase",
			lang:       i18n.English,
			transcript: "payment hist",
			want:       want{matched: true, kind: voice.MatchSubstring, phrase: "payment history", target: nav.Payments},
		},
		{
			name:       "FuzzyWordMatch",
			lang:       i18n.English,
			transcript: "show me stuff",
			want:       want{matched: true, kind: voice.MatchFuzzy, phrase: "show dashboard", target: nav.Dashboard},
		},
		{
			name:       "MissFallsBackToFirstPhrases",
			lang:       i18n.English,
			transcript: "xyz abc",
			want:       want{suggestions: []string{"show dashboard", "open dashboard"}},
		},
		{
			name:       "EmptyTranscriptNeverMatches",
			lang:       i18n.English,
			transcript: "   ",
			want:       want{suggestions: []string{"show dashboard", "open dashboard"}},
		},
		{
			name:       "HindiExact",
			lang:       i18n.Hindi,
			transcript: "ग्राहक दिखाओ",
			want:       want{matched: true, kind: voice.MatchExact, phrase: "ग्राहक दिखाओ", target: nav.Customers},
		},
		{
			name:       "HindiMiss",
			lang:       i18n.Hindi,
			transcript: "xyz",
			want:       want{suggestions: []string{"डैशबोर्ड दिखाओ", "डैशबोर्ड खोलो"}},
		},
		{
			name:       "UnknownLanguage",
			lang:       i18n.Language("fr"),
			transcript: "show customers",
			want:       want{},
		},
	}

	m := voice.NewMatcher(voice.DefaultTables(), voice.DefaultConfig())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Match(tt.lang, tt.transcript)

			assert.Equal(t, tt.want.matched, got.Matched)
			assert.Equal(t, tt.want.kind, got.Kind)
			assert.Equal(t, tt.want.phrase, got.Phrase)
			assert.Equal(t, tt.want.target, got.Target)
			assert.Equal(t, tt.want.suggestions, got.Suggestions)
		})
	}
}

func TestMatcher_TableOrderBreaksTies(t *testing.T) {
	tables := voice.Tables{
		i18n.English: {Lang: i18n.English, Phrases: []voice.Phrase{
			{Text: "orders", Target: nav.Delivery},
			{Text: "orders today", Target: nav.Requirements},
		}},
	}
	m := voice.NewMatcher(tables, voice.DefaultConfig())

	got := m.Match(i18n.English, "pending orders")

	assert.True(t, got.Matched)
	assert.Equal(t, nav.Delivery, got.Target)
}

func TestMatcher_SuggestionsRankedBySimilarity(t *testing.T) {
	// Phrases share no words with each other so the fuzzy tier cannot fire;
	// a threshold below zero lets every phrase through for ranking.
	tables := voice.Tables{
		i18n.English: {Lang: i18n.English, Phrases: []voice.Phrase{
			{Text: "alpha", Target: nav.Dashboard},
			{Text: "beta", Target: nav.Products},
			{Text: "gamma", Target: nav.Reports},
		}},
	}
	m := voice.NewMatcher(tables, voice.Config{SuggestionThreshold: -1, MaxSuggestions: 3})

	got := m.Match(i18n.English, "zzz")

	assert.False(t, got.Matched)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, got.Suggestions)
}

func TestMatcher_ConfigurableSuggestionCount(t *testing.T) {
	m := voice.NewMatcher(voice.DefaultTables(), voice.Config{SuggestionThreshold: 0.3, MaxSuggestions: 3})

	got := m.Match(i18n.English, "xyz abc")

	assert.Equal(t, []string{"show dashboard", "open dashboard", "go to dashboard"}, got.Suggestions)
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"show customers", "show customers", 1},
		{"customer list", "show customers", 0.5},
		{"Show", "show dashboard", 0.5},
		{"xyz abc", "show dashboard", 0},
		{"", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"|"+tt.b, func(t *testing.T) {
			assert.InDelta(t, tt.want, voice.Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestDefaultTables(t *testing.T) {
	tables := voice.DefaultTables()

	for _, lang := range i18n.Languages() {
		tbl, ok := tables[lang]
		if !assert.True(t, ok, lang) {
			continue
		}

		assert.Equal(t, lang, tbl.Lang)
		assert.NotEmpty(t, tbl.Examples)

		seen := map[string]bool{}
		for _, ph := range tbl.Phrases {
			assert.True(t, ph.Target.Valid(), ph.Text)
			assert.False(t, seen[ph.Text], "duplicate phrase %q", ph.Text)
			seen[ph.Text] = true
		}
	}

	en := tables[i18n.English].Phrases
	assert.Len(t, en, 48)
	assert.Equal(t, voice.Phrase{Text: "show dashboard", Target: nav.Dashboard}, en[0])
	assert.Equal(t, voice.Phrase{Text: "requirements", Target: nav.Requirements}, en[len(en)-1])
}
