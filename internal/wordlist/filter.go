package wordlist

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/typewriter/internal/grapheme"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForLang returns the filter for a list language. Every language drops
// words the typewriter cannot show as one token: empty ones and those holding
// whitespace or control graphemes. English lists additionally keep only Latin
// words, with apostrophes and hyphens allowed between letters.
func FilterForLang(lang string) FilterFunc {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "en":
		return func(word string) bool {
			return displayable(word) && latinWord(word)
		}
	default:
		return displayable
	}
}

func displayable(word string) bool {
	if word == "" {
		return false
	}
	for _, g := range grapheme.Segment(word) {
		r, _ := utf8.DecodeRuneInString(string(g))
		if r == utf8.RuneError || unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
		// A lone format rune (zero-width joiner, BOM) draws nothing.
		if unicode.Is(unicode.Cf, r) && utf8.RuneLen(r) == len(g) {
			return false
		}
	}
	return true
}

func latinWord(word string) bool {
	g := grapheme.Segment(word)
	for i, cluster := range g {
		r, _ := utf8.DecodeRuneInString(string(cluster))
		switch {
		case unicode.Is(unicode.Latin, r):
		case isJoiner(r) && i > 0 && i < len(g)-1:
		default:
			return false
		}
	}
	return true
}

func isJoiner(r rune) bool {
	return r == '\'' || r == '’' || r == '-'
}
