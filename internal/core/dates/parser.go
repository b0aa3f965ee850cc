// Package dates resolves informal Persian date expressions against a
// reference date. It recognizes numeric Jalali dates, month-name phrases
// with ordinal or numeric days, relative-day words, and weekday names.
package dates

import (
	"regexp"
	"strconv"
	"time"

	"github.com/kavehram/ganjine/internal/core/domain"
	"github.com/kavehram/ganjine/internal/core/farsitext"
	"github.com/kavehram/ganjine/internal/core/jalali"
)

// Pre-compiled patterns; all run on digit-normalized text.
var (
	numericDateRegex = regexp.MustCompile(`(\d{4})[/-](\d{1,2})[/-](\d{1,2})`)
	yearRegex        = regexp.MustCompile(`(?:^|[^0-9])(\d{4})(?:[^0-9]|$)`)
	shortNumberRegex = regexp.MustCompile(`(?:^|[^0-9])(\d{1,2})(?:[^0-9]|$)`)
)

// Parser converts Persian date phrases to Gregorian dates.
type Parser struct {
	// defaultYear is the Jalali year assumed when neither the phrase nor a
	// reference date provides one.
	defaultYear int
}

// NewParser creates a phrase parser. defaultYear may be zero if callers
// always pass a reference date.
func NewParser(defaultYear int) *Parser {
	return &Parser{defaultYear: defaultYear}
}

// Parse resolves a single phrase, trying numeric, month-name, relative-day,
// and weekday patterns in that order. ref disambiguates a missing year or
// anchors relative expressions; a zero ref falls back to the default year.
// Returns nil when nothing matches.
func (p *Parser) Parse(text string, ref time.Time) *domain.ResolvedDate {
	text = farsitext.Normalize(text)

	if d := p.ParseNumeric(text); d != nil {
		return d
	}

	if d := p.parseMonthName(text, ref); d != nil {
		return d
	}

	return ResolveRelative(text, ref)
}

// MonthWindows returns a window of radius runes before and after each
// whole-word month-name occurrence, for callers that scan long free-form
// text and want the day/year search scoped near the month.
func MonthWindows(text string, radius int) []string {
	runes := []rune(text)

	var windows []string

	for name := range monthNames {
		idx, ok := farsitext.ContainsWord(text, name)
		if !ok {
			continue
		}

		at := len([]rune(text[:idx]))

		start := at - radius
		if start < 0 {
			start = 0
		}

		end := at + len([]rune(name)) + radius
		if end > len(runes) {
			end = len(runes)
		}

		windows = append(windows, string(runes[start:end]))
	}

	return windows
}

// ParseNumeric matches YYYY/M/D or YYYY-M-D as a Jalali date, on
// digit-normalized text.
func (p *Parser) ParseNumeric(text string) *domain.ResolvedDate {
	m := numericDateRegex.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	g, err := jalali.ToGregorian(year, month, day)
	if err != nil {
		return nil
	}

	return newResolved(g, domain.SourceNumericJalali)
}

// parseMonthName scans the text for any of the twelve month names as whole
// words. A match only counts when a day can be determined; month-only
// mentions are skipped rather than given a fabricated day.
func (p *Parser) parseMonthName(text string, ref time.Time) *domain.ResolvedDate {
	for name, month := range monthNames {
		if _, ok := farsitext.ContainsWord(text, name); !ok {
			continue
		}

		day, ok := findDay(text)
		if !ok {
			continue
		}

		g, err := jalali.ToGregorian(p.yearFor(text, ref), month, day)
		if err != nil {
			continue
		}

		return newResolved(g, domain.SourceMonthName)
	}

	return nil
}

// findDay prefers an ordinal word (longest first) and falls back to the
// first 1-2 digit number that is not part of a 4-digit year.
func findDay(text string) (int, bool) {
	for _, word := range ordinalsByLength {
		if _, ok := farsitext.ContainsWord(text, word); ok {
			return ordinalDays[word], true
		}
	}

	if m := shortNumberRegex.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		return day, true
	}

	return 0, false
}

// yearFor returns the first 4-digit number in the text, else the reference
// date's Jalali year, else the fixed default.
func (p *Parser) yearFor(text string, ref time.Time) int {
	if m := yearRegex.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		return year
	}

	if !ref.IsZero() {
		if jd, err := jalali.FromGregorian(ref); err == nil {
			return jd.Year
		}
	}

	return p.defaultYear
}

// newResolved builds a ResolvedDate with its Jalali rendering filled in.
func newResolved(g time.Time, source domain.DateSource) *domain.ResolvedDate {
	js, err := jalali.Format(g)
	if err != nil {
		// Out of the supported Jalali range; still return the Gregorian day.
		js = ""
	}

	return &domain.ResolvedDate{Gregorian: g, Jalali: js, Source: source}
}
