package dates

import (
	"time"

	"github.com/kavehram/ganjine/internal/core/domain"
	"github.com/kavehram/ganjine/internal/core/farsitext"
)

// ResolveRelative resolves relative-day words (today, yesterday, ...) and
// weekday names against the reference date. Weekday phrases always mean the
// most recent past instance: a phrase naming the reference date's own
// weekday resolves to seven days earlier, never to the reference itself.
// Returns nil when the text contains neither vocabulary, or when ref is zero
// (relative expressions are meaningless without an anchor).
func ResolveRelative(text string, ref time.Time) *domain.ResolvedDate {
	if ref.IsZero() {
		return nil
	}

	text = farsitext.Normalize(text)
	day := midnightUTC(ref)

	for _, word := range relativesByLength {
		if _, ok := farsitext.ContainsWord(text, word); ok {
			return newResolved(day.AddDate(0, 0, relativeDays[word]), domain.SourceRelativeDay)
		}
	}

	for _, word := range weekdaysByLength {
		if _, ok := farsitext.ContainsWord(text, word); !ok {
			continue
		}

		diff := int(weekdayNames[word] - day.Weekday())
		if diff >= 0 {
			diff -= 7
		}

		return newResolved(day.AddDate(0, 0, diff), domain.SourceWeekday)
	}

	return nil
}

// midnightUTC truncates a timestamp to its UTC day.
func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
