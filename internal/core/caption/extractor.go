// Package caption is the deterministic fallback extractor, used when no
// AI-derived date or location candidate resolved. It scans free-form
// caption text for date phrase patterns and known place names.
package caption

import (
	"strings"
	"time"

	"github.com/kavehram/ganjine/internal/core/dates"
	"github.com/kavehram/ganjine/internal/core/domain"
	"github.com/kavehram/ganjine/internal/core/farsitext"
)

// DefaultWindowRadius is the character radius scanned around a matched
// month name when hunting for its day and year.
const DefaultWindowRadius = 40

// Extractor scans captions for dates and locations the AI layer missed.
type Extractor struct {
	parser *dates.Parser
	places map[string]struct{}
	radius int
}

// NewExtractor creates an extractor over the given known place names
// (single- and multi-word, local script).
func NewExtractor(parser *dates.Parser, places []string, radius int) *Extractor {
	if radius <= 0 {
		radius = DefaultWindowRadius
	}

	set := make(map[string]struct{}, len(places))
	for _, p := range places {
		set[p] = struct{}{}
	}

	return &Extractor{parser: parser, places: set, radius: radius}
}

// ExtractDate scans the caption for a resolvable date: numeric patterns
// first, then windows around each month name, then relative-day and weekday
// vocabulary. First success wins; nil when nothing resolves.
func (e *Extractor) ExtractDate(text string, ref time.Time) *domain.ResolvedDate {
	text = farsitext.Normalize(text)

	if d := e.parser.ParseNumeric(text); d != nil {
		return d
	}

	for _, window := range dates.MonthWindows(text, e.radius) {
		if d := e.parser.Parse(window, ref); d != nil {
			return d
		}
	}

	return dates.ResolveRelative(text, ref)
}

// ExtractLocation tokenizes the caption (ZWNJ joiners kept inside tokens)
// and slides 3-word, then 2-word, then 1-word windows over it against the
// known-place set, so a multi-word place name always beats any single-word
// sub-match it contains. Returns nil when no token window matches.
func (e *Extractor) ExtractLocation(text string) *domain.LocationCandidate {
	tokens := farsitext.Tokenize(farsitext.Normalize(text))

	for _, width := range []int{3, 2, 1} {
		for i := 0; i+width <= len(tokens); i++ {
			name := strings.Join(tokens[i:i+width], " ")
			if _, ok := e.places[name]; ok {
				return &domain.LocationCandidate{CityFa: name}
			}
		}
	}

	return nil
}
