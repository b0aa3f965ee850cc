// Package farsitext provides low-level Persian text utilities shared by the
// date and location resolution layers: digit folding, Arabic-script word
// boundary detection, and ZWNJ-preserving tokenization.
package farsitext

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ZWNJ is the zero-width non-joiner used inside Persian compound words.
// It must survive tokenization so compound place names are not split.
const ZWNJ = '\u200c'

// NormalizeDigits replaces Persian (and Arabic-Indic) decimal digits with
// their ASCII equivalents, leaving all other characters unchanged.
func NormalizeDigits(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		switch {
		case r >= '۰' && r <= '۹': // U+06F0..U+06F9
			b.WriteRune('0' + (r - '۰'))
		case r >= '٠' && r <= '٩': // U+0660..U+0669
			b.WriteRune('0' + (r - '٠'))
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

// Normalize applies NFC normalization and digit folding.
func Normalize(text string) string {
	return NormalizeDigits(norm.NFC.String(text))
}

// IsArabicScript reports whether r belongs to one of the Unicode blocks used
// by Persian text. The ZWNJ counts as script so compounds stay one word.
func IsArabicScript(r rune) bool {
	switch {
	case r >= 0x0600 && r <= 0x06FF: // Arabic
		return true
	case r >= 0x0750 && r <= 0x077F: // Arabic Supplement
		return true
	case r >= 0xFB50 && r <= 0xFDFF: // Arabic Presentation Forms-A
		return true
	case r >= 0xFE70 && r <= 0xFEFF: // Arabic Presentation Forms-B
		return true
	case r == ZWNJ:
		return true
	}

	return false
}

// ContainsWord reports whether word occurs in text as a whole word and
// returns the byte index of the first such occurrence. A match is rejected
// when the adjacent rune on either side is Arabic-script, so a month name
// embedded inside a longer Persian word does not count. A regex \b cannot
// express this: it has no notion of Arabic script runs.
func ContainsWord(text, word string) (int, bool) {
	if word == "" {
		return -1, false
	}

	from := 0

	for {
		i := strings.Index(text[from:], word)
		if i < 0 {
			return -1, false
		}

		start := from + i
		end := start + len(word)

		if !joinsScript(text, start, end) {
			return start, true
		}

		from = start + 1
	}
}

// joinsScript reports whether the match at [start,end) touches an
// Arabic-script rune on either side.
func joinsScript(text string, start, end int) bool {
	if start > 0 {
		prev, _ := lastRune(text[:start])
		if IsArabicScript(prev) {
			return true
		}
	}

	if end < len(text) {
		for _, next := range text[end:] {
			if IsArabicScript(next) {
				return true
			}

			break
		}
	}

	return false
}

func lastRune(s string) (rune, int) {
	var (
		r    rune
		size int
	)

	for i, c := range s {
		r = c
		size = len(s) - i
	}

	return r, size
}

// Tokenize splits text on whitespace and punctuation while keeping ZWNJ
// joiners inside tokens.
func Tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		if r == ZWNJ {
			return false
		}

		return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}
