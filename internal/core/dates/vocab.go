package dates

import (
	"sort"
	"time"
)

// monthNames maps the twelve Persian month names to their month number.
// Amordad is a common alternate spelling of Mordad.
var monthNames = map[string]int{
	"فروردین":  1,
	"اردیبهشت": 2,
	"خرداد":    3,
	"تیر":      4,
	"مرداد":    5,
	"امرداد":   5,
	"شهریور":   6,
	"مهر":      7,
	"آبان":     8,
	"آذر":      9,
	"دی":       10,
	"بهمن":     11,
	"اسفند":    12,
}

// ordinalDays maps Persian ordinal words to day-of-month numbers.
// Compound ordinals are full phrases so they can win over their parts
// when matched longest-first.
var ordinalDays = map[string]int{
	"اول":           1,
	"یکم":           1,
	"دوم":           2,
	"سوم":           3,
	"چهارم":         4,
	"پنجم":          5,
	"ششم":           6,
	"هفتم":          7,
	"هشتم":          8,
	"نهم":           9,
	"دهم":           10,
	"یازدهم":        11,
	"دوازدهم":       12,
	"سیزدهم":        13,
	"چهاردهم":       14,
	"پانزدهم":       15,
	"شانزدهم":       16,
	"هفدهم":         17,
	"هجدهم":         18,
	"نوزدهم":        19,
	"بیستم":         20,
	"بیست و یکم":    21,
	"بیست و دوم":    22,
	"بیست و سوم":    23,
	"بیست و چهارم":  24,
	"بیست و پنجم":   25,
	"بیست و ششم":    26,
	"بیست و هفتم":   27,
	"بیست و هشتم":   28,
	"بیست و نهم":    29,
	"سی‌ام":          30,
	"سیام":          30,
	"سی ام":         30,
	"سی و یکم":      31,
}

// relativeDays maps relative-day vocabulary to signed day offsets from the
// reference date.
var relativeDays = map[string]int{
	"امروز":    0,
	"دیروز":    -1,
	"پریروز":   -2,
	"فردا":     1,
	"پس‌فردا":   2,
	"پسفردا":   2,
}

// weekdayNames maps Persian weekday names to Go weekday indices. Shanbeh
// (Saturday) starts the Persian week, which in the 0-indexed Sunday-first
// scheme lands on index 6; the rest follow from there.
var weekdayNames = map[string]time.Weekday{
	"شنبه":     time.Saturday,
	"یکشنبه":   time.Sunday,
	"یک‌شنبه":   time.Sunday,
	"دوشنبه":   time.Monday,
	"سه‌شنبه":   time.Tuesday,
	"سهشنبه":   time.Tuesday,
	"چهارشنبه": time.Wednesday,
	"پنجشنبه":  time.Thursday,
	"پنج‌شنبه":  time.Thursday,
	"جمعه":     time.Friday,
	"آدینه":    time.Friday,
}

// byLengthDesc returns the map keys sorted longest first so that a longer
// phrase is never shadowed by a shorter one that is its prefix.
func byLengthDesc[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}

		return keys[i] < keys[j]
	})

	return keys
}

var (
	ordinalsByLength  = byLengthDesc(ordinalDays)
	relativesByLength = byLengthDesc(relativeDays)
	weekdaysByLength  = byLengthDesc(weekdayNames)
)
