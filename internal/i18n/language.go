// Package i18n holds the two-language string table of the dashboard and the
// locale aware number formatting built on golang.org/x/text.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language is a supported UI language code.
type Language string

const (
	English Language = "en"
	Hindi   Language = "hi"
)

// Languages lists the supported languages in display order.
func Languages() []Language {
	return []Language{English, Hindi}
}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Hindi})

// Parse accepts a language code or BCP 47 tag ("hi", "hi-IN", "en-GB") and
// returns the closest supported language.
func Parse(s string) (Language, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty language code")
	}

	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("parsing language %q: %w", s, err)
	}

	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "", fmt.Errorf("unsupported language %q", s)
	}

	return Languages()[idx], nil
}

func (l Language) Tag() language.Tag {
	if l == Hindi {
		return language.Hindi
	}

	return language.English
}

// SpeechLocale is the locale handed to speech capture and synthesis.
func (l Language) SpeechLocale() string {
	if l == Hindi {
		return "hi-IN"
	}

	return "en-IN"
}

// Toggle flips between English and Hindi.
func (l Language) Toggle() Language {
	if l == Hindi {
		return English
	}

	return Hindi
}

func (l Language) NativeName() string {
	if l == Hindi {
		return "हिन्दी"
	}

	return "English"
}
