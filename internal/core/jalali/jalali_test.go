package jalali

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/kavehram/ganjine/internal/core/errors"
)

func TestToGregorianKnownDates(t *testing.T) {
	tests := []struct {
		name    string
		jy, jm, jd int
		want    string
	}{
		{"nowruz 1400", 1400, 1, 1, "2021-03-21"},
		{"nowruz 1403 (leap year)", 1403, 1, 1, "2024-03-20"},
		{"18 dey 1403", 1403, 10, 18, "2025-01-07"},
		{"esfand 30 in leap year", 1403, 12, 30, "2025-03-20"},
		{"last day of 1402", 1402, 12, 29, "2024-03-19"},
		{"mid summer", 1401, 5, 15, "2022-08-06"},
		{"revolution anniversary", 1357, 11, 22, "1979-02-11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToGregorian(tt.jy, tt.jm, tt.jd)
			if err != nil {
				t.Fatalf("ToGregorian(%d,%d,%d) error = %v", tt.jy, tt.jm, tt.jd, err)
			}

			if got.Format("2006-01-02") != tt.want {
				t.Errorf("ToGregorian(%d,%d,%d) = %s, want %s",
					tt.jy, tt.jm, tt.jd, got.Format("2006-01-02"), tt.want)
			}

			if h, m, s := got.Clock(); h != 0 || m != 0 || s != 0 {
				t.Errorf("ToGregorian(%d,%d,%d) not at midnight: %v", tt.jy, tt.jm, tt.jd, got)
			}

			if got.Location() != time.UTC {
				t.Errorf("ToGregorian(%d,%d,%d) not UTC: %v", tt.jy, tt.jm, tt.jd, got.Location())
			}
		})
	}
}

func TestToGregorianInvalid(t *testing.T) {
	tests := []struct {
		name    string
		jy, jm, jd int
	}{
		{"month zero", 1403, 0, 1},
		{"month thirteen", 1403, 13, 1},
		{"day zero", 1403, 1, 0},
		{"farvardin 32", 1403, 1, 32},
		{"mehr 31", 1403, 7, 31},
		{"esfand 30 in common year", 1402, 12, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ToGregorian(tt.jy, tt.jm, tt.jd); !errors.Is(err, apperrors.ErrInvalidDate) {
				t.Errorf("ToGregorian(%d,%d,%d) error = %v, want ErrInvalidDate", tt.jy, tt.jm, tt.jd, err)
			}
		})
	}
}

func TestYearOutOfRange(t *testing.T) {
	if _, err := ToGregorian(3500, 1, 1); !errors.Is(err, apperrors.ErrYearOutOfRange) {
		t.Errorf("ToGregorian(3500,1,1) error = %v, want ErrYearOutOfRange", err)
	}
}

func TestRoundTrip(t *testing.T) {
	// Every valid Jalali day in a range spanning several leap boundaries
	// must survive a Jalali -> Gregorian -> Jalali round trip.
	for jy := 1340; jy <= 1450; jy++ {
		for jm := 1; jm <= 12; jm++ {
			days, err := MonthDays(jy, jm)
			if err != nil {
				t.Fatalf("MonthDays(%d,%d) error = %v", jy, jm, err)
			}

			for jd := 1; jd <= days; jd++ {
				g, err := ToGregorian(jy, jm, jd)
				if err != nil {
					t.Fatalf("ToGregorian(%d,%d,%d) error = %v", jy, jm, jd, err)
				}

				back, err := FromGregorian(g)
				if err != nil {
					t.Fatalf("FromGregorian(%v) error = %v", g, err)
				}

				if back.Year != jy || back.Month != jm || back.Day != jd {
					t.Fatalf("round trip %d/%d/%d -> %s -> %v", jy, jm, jd, g.Format("2006-01-02"), back)
				}
			}
		}
	}
}

func TestNoTimezoneDrift(t *testing.T) {
	// Converting through a non-UTC wall clock near year boundaries must not
	// shift the resolved day.
	tehran := time.FixedZone("Asia/Tehran", int(3*time.Hour+30*time.Minute)/int(time.Second))

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"gregorian new year eve, tehran evening", time.Date(2024, 12, 31, 23, 30, 0, 0, tehran), "1403/10/11"},
		{"nowruz eve utc", time.Date(2024, 3, 19, 23, 59, 59, 0, time.UTC), "1402/12/29"},
		{"nowruz day utc", time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), "1403/01/01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.t)
			if err != nil {
				t.Fatalf("Format(%v) error = %v", tt.t, err)
			}

			if got != tt.want {
				t.Errorf("Format(%v) = %s, want %s", tt.t, got, tt.want)
			}
		})
	}
}

func TestIsLeapYear(t *testing.T) {
	leaps := map[int]bool{1395: true, 1399: true, 1403: true, 1400: false, 1401: false, 1402: false, 1404: false}

	for jy, want := range leaps {
		got, err := IsLeapYear(jy)
		if err != nil {
			t.Fatalf("IsLeapYear(%d) error = %v", jy, err)
		}

		if got != want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", jy, got, want)
		}
	}
}
