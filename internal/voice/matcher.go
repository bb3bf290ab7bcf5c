package voice

import (
	"cmp"
	"slices"
	"strings"

	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
	"github.com/MrJamesThe3rd/vyaparx/internal/nav"
)

type Config struct {
	SuggestionThreshold float64
	MaxSuggestions      int
}

func DefaultConfig() Config {
	return Config{SuggestionThreshold: 0.3, MaxSuggestions: 2}
}

type MatchKind string

const (
	MatchNone      MatchKind = ""
	MatchExact     MatchKind = "exact"
	MatchSubstring MatchKind = "substring"
	MatchFuzzy     MatchKind = "fuzzy"
)

type Result struct {
	Matched     bool      `json:"matched"`
	Kind        MatchKind `json:"kind,omitempty"`
	Phrase      string    `json:"phrase,omitempty"`
	Target      nav.View  `json:"target,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
}

type Matcher struct {
	tables Tables
	cfg    Config
}

func NewMatcher(tables Tables, cfg Config) *Matcher {
	if cfg.MaxSuggestions < 1 {
		cfg.MaxSuggestions = DefaultConfig().MaxSuggestions
	}

	return &Matcher{tables: tables, cfg: cfg}
}

func (m *Matcher) Table(lang i18n.Language) (Table, bool) {
	t, ok := m.tables[lang]
	return t, ok
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Match resolves transcript against the table of lang. Tiers are tried in
// order (exact, substring, fuzzy word); within a tier the first phrase in
// table order wins. A miss carries suggestions.
func (m *Matcher) Match(lang i18n.Language, transcript string) Result {
	t, ok := m.tables[lang]
	if !ok {
		return Result{}
	}

	text := normalize(transcript)
	if text == "" {
		return Result{Suggestions: m.suggest(t, text)}
	}

	tiers := []struct {
		kind MatchKind
		hit  func(phrase string) bool
	}{
		{MatchExact, func(p string) bool { return text == p }},
		{MatchSubstring, func(p string) bool { return strings.Contains(text, p) || strings.Contains(p, text) }},
		{MatchFuzzy, func(p string) bool { return anyWordOverlaps(strings.Fields(p), strings.Fields(text)) }},
	}

	for _, tier := range tiers {
		for _, ph := range t.Phrases {
			if tier.hit(normalize(ph.Text)) {
				return Result{Matched: true, Kind: tier.kind, Phrase: ph.Text, Target: ph.Target}
			}
		}
	}

	return Result{Suggestions: m.suggest(t, text)}
}

func anyWordOverlaps(phraseWords, words []string) bool {
	for _, pw := range phraseWords {
		for _, w := range words {
			if overlaps(pw, w) {
				return true
			}
		}
	}

	return false
}

func overlaps(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// suggest ranks phrases by Similarity. When fewer than MaxSuggestions clear
// the threshold, the first MaxSuggestions phrases of the table are returned.
func (m *Matcher) suggest(t Table, text string) []string {
	type scored struct {
		text  string
		score float64
	}

	var ranked []scored
	for _, ph := range t.Phrases {
		if s := Similarity(text, ph.Text); s > m.cfg.SuggestionThreshold {
			ranked = append(ranked, scored{ph.Text, s})
		}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	n := m.cfg.MaxSuggestions
	if len(ranked) < n {
		out := make([]string, 0, n)
		for _, ph := range t.Phrases[:min(n, len(t.Phrases))] {
			out = append(out, ph.Text)
		}

		return out
	}

	out := make([]string, n)
	for i := range n {
		out[i] = ranked[i].text
	}

	return out
}

// Similarity is the number of word pairs where one word contains the other,
// divided by the larger word count.
func Similarity(a, b string) float64 {
	wa := strings.Fields(strings.ToLower(a))
	wb := strings.Fields(strings.ToLower(b))

	total := max(len(wa), len(wb))
	if total == 0 {
		return 0
	}

	matches := 0
	for _, x := range wa {
		for _, y := range wb {
			if overlaps(x, y) {
				matches++
			}
		}
	}

	return float64(matches) / float64(total)
}
