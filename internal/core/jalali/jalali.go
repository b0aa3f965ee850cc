// Package jalali converts between the Jalali (Persian) calendar and the
// Gregorian calendar using the astronomical 33-year leap cycle, not a fixed
// offset. All conversions operate at UTC-midnight granularity: the time
// portion of every produced time.Time is fixed to 00:00:00 UTC so that a
// round trip can never shift the date by a day through a local timezone.
package jalali

import (
	"fmt"
	"time"

	apperrors "github.com/kavehram/ganjine/internal/core/errors"
)

// Date is a Jalali (year, month, day) triple.
type Date struct {
	Year  int
	Month int
	Day   int
}

// String renders the date as YYYY/MM/DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// breaks lists the Jalali years in which the leap pattern changes, per the
// Birashk-derived calendrical algorithm. Years outside [breaks[0],
// breaks[last]) are unsupported.
var breaks = [...]int{
	-61, 9, 38, 199, 426, 686, 756, 818, 1111, 1181,
	1210, 1635, 2060, 2097, 2192, 2262, 2324, 2394, 2456, 3178,
}

// MonthDays returns the number of days in the given Jalali month.
func MonthDays(year, month int) (int, error) {
	switch {
	case month >= 1 && month <= 6:
		return 31, nil
	case month >= 7 && month <= 11:
		return 30, nil
	case month == 12:
		leap, err := IsLeapYear(year)
		if err != nil {
			return 0, err
		}

		if leap {
			return 30, nil
		}

		return 29, nil
	}

	return 0, fmt.Errorf("%w: month %d", apperrors.ErrInvalidDate, month)
}

// IsLeapYear reports whether the given Jalali year has 366 days.
func IsLeapYear(year int) (bool, error) {
	c, err := calendar(year)
	if err != nil {
		return false, err
	}

	return c.leap == 0, nil
}

// ToGregorian converts a Jalali date to the equivalent Gregorian day at UTC
// midnight. It validates the month and the day against the month's length
// for that year, including the leap length of Esfand.
func ToGregorian(year, month, day int) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: %04d/%02d/%02d", apperrors.ErrInvalidDate, year, month, day)
	}

	days, err := MonthDays(year, month)
	if err != nil {
		return time.Time{}, err
	}

	if day < 1 || day > days {
		return time.Time{}, fmt.Errorf("%w: %04d/%02d/%02d", apperrors.ErrInvalidDate, year, month, day)
	}

	jdn, err := toJulianDay(year, month, day)
	if err != nil {
		return time.Time{}, err
	}

	gy, gm, gd := julianDayToGregorian(jdn)

	return time.Date(gy, time.Month(gm), gd, 0, 0, 0, 0, time.UTC), nil
}

// FromGregorian converts a Gregorian timestamp to its Jalali date. Only the
// UTC date portion of t is considered.
func FromGregorian(t time.Time) (Date, error) {
	t = t.UTC()

	jdn := gregorianToJulianDay(t.Year(), int(t.Month()), t.Day())

	return fromJulianDay(jdn)
}

// Format renders the Jalali equivalent of t as YYYY/MM/DD.
func Format(t time.Time) (string, error) {
	d, err := FromGregorian(t)
	if err != nil {
		return "", err
	}

	return d.String(), nil
}

// calResult carries the leap state of a Jalali year and the Gregorian
// calendar anchor of its first day.
type calResult struct {
	leap  int // day count into the 4-year leap sub-cycle; 0 means leap year
	gy    int // Gregorian year of 1 Farvardin
	march int // day of March of 1 Farvardin
}

func calendar(jy int) (calResult, error) {
	if jy < breaks[0] || jy >= breaks[len(breaks)-1] {
		return calResult{}, fmt.Errorf("%w: %d", apperrors.ErrYearOutOfRange, jy)
	}

	gy := jy + 621
	leapJ := -14
	jp := breaks[0]

	var jump int

	for i := 1; i < len(breaks); i++ {
		jm := breaks[i]
		jump = jm - jp

		if jy < jm {
			break
		}

		leapJ += div(jump, 33)*8 + div(mod(jump, 33), 4)
		jp = jm
	}

	n := jy - jp

	leapJ += div(n, 33)*8 + div(mod(n, 33)+3, 4)
	if mod(jump, 33) == 4 && jump-n == 4 {
		leapJ++
	}

	leapG := div(gy, 4) - div((div(gy, 100)+1)*3, 4) - 150
	march := 20 + leapJ - leapG

	if jump-n < 6 {
		n = n - jump + div(jump+4, 33)*33
	}

	leap := mod(mod(n+1, 33)-1, 4)
	if leap == -1 {
		leap = 4
	}

	return calResult{leap: leap, gy: gy, march: march}, nil
}

func toJulianDay(jy, jm, jd int) (int, error) {
	c, err := calendar(jy)
	if err != nil {
		return 0, err
	}

	return gregorianToJulianDay(c.gy, 3, c.march) +
		(jm-1)*31 - div(jm, 7)*(jm-7) + jd - 1, nil
}

func fromJulianDay(jdn int) (Date, error) {
	gy, _, _ := julianDayToGregorian(jdn)
	jy := gy - 621

	c, err := calendar(jy)
	if err != nil {
		return Date{}, err
	}

	jdn1f := gregorianToJulianDay(c.gy, 3, c.march)

	k := jdn - jdn1f
	if k >= 0 {
		if k <= 185 {
			return Date{Year: jy, Month: 1 + div(k, 31), Day: mod(k, 31) + 1}, nil
		}

		k -= 186
	} else {
		jy--
		k += 179

		if c.leap == 1 {
			k++
		}
	}

	return Date{Year: jy, Month: 7 + div(k, 30), Day: mod(k, 30) + 1}, nil
}

func gregorianToJulianDay(gy, gm, gd int) int {
	d := div((gy+div(gm-8, 6)+100100)*1461, 4) +
		div(153*mod(gm+9, 12)+2, 5) + gd - 34840408
	d = d - div(div(gy+100100+div(gm-8, 6), 100)*3, 4) + 752

	return d
}

func julianDayToGregorian(jdn int) (gy, gm, gd int) {
	j := 4*jdn + 139361631
	j += div(div(4*jdn+183187720, 146097)*3, 4)*4 - 3908
	i := div(mod(j, 1461), 4)*5 + 308

	gd = div(mod(i, 153), 5) + 1
	gm = mod(div(i, 153), 12) + 1
	gy = div(j, 1461) - 100100 + div(8-gm, 6)

	return gy, gm, gd
}

// div is floor division; Go's / truncates toward zero.
func div(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}

// mod is floor modulus, always in [0, b).
func mod(a, b int) int {
	m := a % b
	if m != 0 && ((a < 0) != (b < 0)) {
		m += b
	}

	return m
}
