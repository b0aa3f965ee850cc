package dates

import (
	"testing"
	"time"

	"github.com/kavehram/ganjine/internal/core/domain"
)

const defaultTestYear = 1404

// ref is a Sunday, Jalali 1403/09/11.
var ref = time.Date(2024, 12, 1, 14, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	p := NewParser(defaultTestYear)

	tests := []struct {
		name       string
		text       string
		ref        time.Time
		want       time.Time
		wantSource domain.DateSource
		wantJalali string
	}{
		{
			name:       "numeric jalali with slashes",
			text:       "۱۴۰۳/۱۰/۱۸",
			ref:        ref,
			want:       day(2025, time.January, 7),
			wantSource: domain.SourceNumericJalali,
			wantJalali: "1403/10/18",
		},
		{
			name:       "numeric jalali with dashes and ascii digits",
			text:       "تاریخ 1403-10-18 ثبت شد",
			ref:        ref,
			want:       day(2025, time.January, 7),
			wantSource: domain.SourceNumericJalali,
			wantJalali: "1403/10/18",
		},
		{
			name:       "month name with numeric day, year from reference",
			text:       "18 دی",
			ref:        ref,
			want:       day(2025, time.January, 7),
			wantSource: domain.SourceMonthName,
			wantJalali: "1403/10/18",
		},
		{
			name:       "month name with persian digits",
			text:       "۱۸ دی",
			ref:        ref,
			want:       day(2025, time.January, 7),
			wantSource: domain.SourceMonthName,
			wantJalali: "1403/10/18",
		},
		{
			name:       "month name with explicit year overrides reference",
			text:       "18 دی 1402",
			ref:        ref,
			want:       day(2024, time.January, 8),
			wantSource: domain.SourceMonthName,
			wantJalali: "1402/10/18",
		},
		{
			name:       "ordinal day",
			text:       "هجدهم دی ۱۴۰۳",
			ref:        ref,
			want:       day(2025, time.January, 7),
			wantSource: domain.SourceMonthName,
			wantJalali: "1403/10/18",
		},
		{
			name:       "compound ordinal wins over its shorter tail",
			text:       "بیست و یکم بهمن ۱۴۰۳",
			ref:        ref,
			want:       day(2025, time.February, 9),
			wantSource: domain.SourceMonthName,
			wantJalali: "1403/11/21",
		},
		{
			name:       "month name without reference uses default year",
			text:       "18 دی",
			ref:        time.Time{},
			want:       day(2026, time.January, 8),
			wantSource: domain.SourceMonthName,
			wantJalali: "1404/10/18",
		},
		{
			name:       "yesterday",
			text:       "دیروز",
			ref:        ref,
			want:       day(2024, time.November, 30),
			wantSource: domain.SourceRelativeDay,
			wantJalali: "1403/09/10",
		},
		{
			name:       "day after tomorrow with joiner",
			text:       "پس‌فردا",
			ref:        ref,
			want:       day(2024, time.December, 3),
			wantSource: domain.SourceRelativeDay,
			wantJalali: "1403/09/13",
		},
		{
			name:       "weekday resolves to most recent past instance",
			text:       "جمعه",
			ref:        ref, // Sunday
			want:       day(2024, time.November, 29),
			wantSource: domain.SourceWeekday,
			wantJalali: "1403/09/09",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Parse(tt.text, tt.ref)
			if got == nil {
				t.Fatalf("Parse(%q) = nil, want %s", tt.text, tt.want.Format("2006-01-02"))
			}

			if !got.Gregorian.Equal(tt.want) {
				t.Errorf("Parse(%q) = %s, want %s", tt.text, got.Gregorian.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}

			if got.Source != tt.wantSource {
				t.Errorf("Parse(%q) source = %s, want %s", tt.text, got.Source, tt.wantSource)
			}

			if got.Jalali != tt.wantJalali {
				t.Errorf("Parse(%q) jalali = %s, want %s", tt.text, got.Jalali, tt.wantJalali)
			}
		})
	}
}

func TestParseNoMatch(t *testing.T) {
	p := NewParser(defaultTestYear)

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"plain text", "سلام دوستان"},
		{"month name embedded in longer word", "نزدیک"},
		{"month only, no day", "دی"},
		{"month inside compound word", "دیماه"},
		{"invalid numeric date skipped", "1403/13/01"},
		{"out of range day for month", "31 مهر"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Parse(tt.text, ref); got != nil {
				t.Errorf("Parse(%q) = %+v, want nil", tt.text, got)
			}
		})
	}
}

func TestResolveRelativeOffsets(t *testing.T) {
	tests := []struct {
		text string
		days int
	}{
		{"امروز", 0},
		{"دیروز", -1},
		{"پریروز", -2},
		{"فردا", 1},
		{"پس‌فردا", 2},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := ResolveRelative(tt.text, ref)
			if got == nil {
				t.Fatalf("ResolveRelative(%q) = nil", tt.text)
			}

			want := day(2024, time.December, 1).AddDate(0, 0, tt.days)
			if !got.Gregorian.Equal(want) {
				t.Errorf("ResolveRelative(%q) = %s, want %s", tt.text, got.Gregorian.Format("2006-01-02"), want.Format("2006-01-02"))
			}
		})
	}
}

func TestResolveWeekdaySameDayGoesBackAWeek(t *testing.T) {
	// ref is a Sunday; the Persian word for Sunday must resolve to the
	// previous Sunday, not the reference day.
	got := ResolveRelative("یکشنبه", ref)
	if got == nil {
		t.Fatal("ResolveRelative returned nil")
	}

	want := day(2024, time.November, 24)
	if !got.Gregorian.Equal(want) {
		t.Errorf("ResolveRelative(same weekday) = %s, want %s", got.Gregorian.Format("2006-01-02"), want.Format("2006-01-02"))
	}

	if got.Source != domain.SourceWeekday {
		t.Errorf("source = %s, want %s", got.Source, domain.SourceWeekday)
	}
}

func TestResolveRelativeNeedsReference(t *testing.T) {
	if got := ResolveRelative("دیروز", time.Time{}); got != nil {
		t.Errorf("ResolveRelative with zero reference = %+v, want nil", got)
	}
}
