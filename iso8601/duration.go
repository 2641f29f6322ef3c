// Package iso8601 implements the ISO 8601 date-time data model: durations,
// UTC offsets, time points in calendar, ordinal and week representations
// (optionally truncated) and recurring time series, together with their
// arithmetic. Calendar rules come from the calendar package's Default
// calendar.
package iso8601

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ngrash/go-isodatetime/calendar"
)

// Duration is a signed span of time. Years and months are nominal units
// whose length depends on where the duration is applied; the other units are
// exact. A Duration is either in week form, holding only weeks, or in unit
// form, holding everything else.
//
// The zero value is a zero-length duration.
type Duration struct {
	years, months, weeks, days int
	hours, minutes, seconds    float64
	inWeeks                    bool
}

// DurationSpec holds the constructor arguments of a Duration. Years, months,
// weeks and days must be whole numbers.
type DurationSpec struct {
	Years, Months, Weeks, Days float64
	Hours, Minutes, Seconds    float64

	// Standardize carries seconds into minutes, minutes into hours and hours
	// into days so that each is below its unit's size. Years and months are
	// left alone.
	Standardize bool
}

// NewDuration builds a Duration from s. A duration given only in weeks is
// kept in week form; otherwise weeks are folded into days.
func NewDuration(s DurationSpec) (Duration, error) {
	var errs []error
	var whole [4]int
	for i, f := range []struct {
		name string
		v    float64
	}{{"years", s.Years}, {"months", s.Months}, {"weeks", s.Weeks}, {"days", s.Days}} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v != math.Trunc(f.v) {
			errs = append(errs, notInteger(f.name, f.v))
			continue
		}
		whole[i] = int(f.v)
	}
	if err := errors.Join(errs...); err != nil {
		return Duration{}, err
	}
	d := newDuration(whole[0], whole[1], whole[2], whole[3], s.Hours, s.Minutes, s.Seconds)
	if s.Standardize {
		d = d.standardize()
	}
	return d, nil
}

func newDuration(years, months, weeks, days int, hours, minutes, seconds float64) Duration {
	if weeks != 0 && years == 0 && months == 0 && days == 0 && hours == 0 && minutes == 0 && seconds == 0 {
		return Duration{weeks: weeks, inWeeks: true}
	}
	return Duration{
		years:   years,
		months:  months,
		days:    days + weeks*calendar.DaysInWeek,
		hours:   hours,
		minutes: minutes,
		seconds: seconds,
	}
}

func Years(n int) Duration  { return Duration{years: n} }
func Months(n int) Duration { return Duration{months: n} }
func Weeks(n int) Duration  { return newDuration(0, 0, n, 0, 0, 0, 0) }
func Days(n int) Duration   { return Duration{days: n} }

func Hours(n float64) Duration   { return Duration{hours: n} }
func Minutes(n float64) Duration { return Duration{minutes: n} }
func Seconds(n float64) Duration { return Duration{seconds: n} }

func (d Duration) standardize() Duration {
	if d.seconds != 0 {
		var q float64
		q, d.seconds = floorDivMod(d.seconds, calendar.SecondsInMinute)
		d.minutes += q
	}
	if d.minutes != 0 {
		var q float64
		q, d.minutes = floorDivMod(d.minutes, calendar.MinutesInHour)
		d.hours += q
	}
	if d.hours != 0 {
		var q float64
		q, d.hours = floorDivMod(d.hours, calendar.HoursInDay)
		d.days += int(q)
	}
	return d
}

func (d Duration) Years() int       { return d.years }
func (d Duration) Months() int      { return d.months }
func (d Duration) Weeks() int       { return d.weeks }
func (d Duration) Days() int        { return d.days }
func (d Duration) Hours() float64   { return d.hours }
func (d Duration) Minutes() float64 { return d.minutes }
func (d Duration) Seconds() float64 { return d.seconds }

// TotalSeconds returns the length of d in seconds. It is exact when
// d.IsExact(), and otherwise counts years and months as their rough lengths.
func (d Duration) TotalSeconds() float64 {
	if d.IsExact() {
		return d.exactSeconds()
	}
	days, secs := d.DaysAndSeconds()
	return float64(days)*calendar.SecondsInDay + secs
}

// InWeeks reports whether d is in week form.
func (d Duration) InWeeks() bool { return d.inWeeks }

// IsExact reports whether d has no years or months.
func (d Duration) IsExact() bool {
	return d.years == 0 && d.months == 0
}

// IsZero reports whether every component of d is zero.
func (d Duration) IsZero() bool {
	return d.years == 0 && d.months == 0 && d.weeks == 0 && d.days == 0 &&
		d.hours == 0 && d.minutes == 0 && d.seconds == 0
}

// ToDays converts a week-form duration to days.
func (d Duration) ToDays() Duration {
	if !d.inWeeks {
		return d
	}
	return Duration{days: d.weeks * calendar.DaysInWeek}
}

// ToWeeks converts d to week form, discarding everything but whole weeks of days.
func (d Duration) ToWeeks() Duration {
	if d.inWeeks {
		return d
	}
	return Weeks(floorDiv(d.days, calendar.DaysInWeek))
}

// exactSeconds is the length of the exact units only.
func (d Duration) exactSeconds() float64 {
	if d.inWeeks {
		return float64(d.weeks * calendar.DaysInWeek * calendar.SecondsInDay)
	}
	return float64(d.days)*calendar.SecondsInDay +
		d.hours*calendar.SecondsInHour +
		d.minutes*calendar.SecondsInMinute +
		d.seconds
}

// DaysAndSeconds roughly converts d to whole days and seconds in
// [0, seconds in a day), counting a year as the calendar's common year
// length and a month as 30 days.
func (d Duration) DaysAndSeconds() (int, float64) {
	if d.inWeeks {
		return d.weeks * calendar.DaysInWeek, 0
	}
	days := d.years*calendar.Default().RoughDaysInYear() + d.months*calendar.RoughDaysInMonth + d.days
	secs := d.hours*calendar.SecondsInHour + d.minutes*calendar.SecondsInMinute + d.seconds
	q, secs := floorDivMod(secs, calendar.SecondsInDay)
	return days + int(q), secs
}

func (d Duration) Add(o Duration) Duration {
	if d.inWeeks && o.inWeeks {
		return Duration{weeks: d.weeks + o.weeks, inWeeks: true}
	}
	d, o = d.ToDays(), o.ToDays()
	return Duration{
		years:   d.years + o.years,
		months:  d.months + o.months,
		days:    d.days + o.days,
		hours:   d.hours + o.hours,
		minutes: d.minutes + o.minutes,
		seconds: d.seconds + o.seconds,
	}
}

func (d Duration) Sub(o Duration) Duration {
	return d.Add(o.Neg())
}

// Scale multiplies every component of d by n.
func (d Duration) Scale(n int) Duration {
	f := float64(n)
	return Duration{
		years:   d.years * n,
		months:  d.months * n,
		weeks:   d.weeks * n,
		days:    d.days * n,
		hours:   d.hours * f,
		minutes: d.minutes * f,
		seconds: d.seconds * f,
		inWeeks: d.inWeeks,
	}
}

// Div divides every component of d by n, truncating each toward zero.
// It panics if n is zero.
func (d Duration) Div(n int) Duration {
	if n == 0 {
		panic("iso8601: duration divided by zero")
	}
	f := float64(n)
	return Duration{
		years:   d.years / n,
		months:  d.months / n,
		weeks:   d.weeks / n,
		days:    d.days / n,
		hours:   math.Trunc(d.hours / f),
		minutes: math.Trunc(d.minutes / f),
		seconds: math.Trunc(d.seconds / f),
		inWeeks: d.inWeeks,
	}
}

func (d Duration) Neg() Duration {
	return d.Scale(-1)
}

func (d Duration) Abs() Duration {
	return Duration{
		years:   absInt(d.years),
		months:  absInt(d.months),
		weeks:   absInt(d.weeks),
		days:    absInt(d.days),
		hours:   math.Abs(d.hours),
		minutes: math.Abs(d.minutes),
		seconds: math.Abs(d.seconds),
		inWeeks: d.inWeeks,
	}
}

// Equal reports whether d and o have the same years, months and exact
// length. An exact duration never equals one with years or months, so
// P1Y is not equal to P365D while P1W equals P7D and PT168H.
func (d Duration) Equal(o Duration) bool {
	if d.IsExact() || o.IsExact() {
		return d.IsExact() && o.IsExact() && d.exactSeconds() == o.exactSeconds()
	}
	return d.years == o.years && d.months == o.months && d.exactSeconds() == o.exactSeconds()
}

// Compare orders d and o by their rough lengths from DaysAndSeconds and
// returns -1, 0 or +1. Durations with nominal units may compare as 0
// without being Equal.
func (d Duration) Compare(o Duration) int {
	dd, ds := d.DaysAndSeconds()
	od, os := o.DaysAndSeconds()
	switch {
	case dd < od:
		return -1
	case dd > od:
		return 1
	case ds < os:
		return -1
	case ds > os:
		return 1
	default:
		return 0
	}
}

func (d Duration) Less(o Duration) bool         { return d.Compare(o) < 0 }
func (d Duration) LessEqual(o Duration) bool    { return d.Compare(o) <= 0 }
func (d Duration) Greater(o Duration) bool      { return d.Compare(o) > 0 }
func (d Duration) GreaterEqual(o Duration) bool { return d.Compare(o) >= 0 }

// String renders d as PnYnMnDTnHnMnS, PnW for week form, P0Y when zero,
// with a leading '-' when no component is positive and some is negative.
// Fractions use a decimal comma.
func (d Duration) String() string {
	if d.IsZero() {
		return "P0Y"
	}
	if d.isFullyNegative() {
		return "-" + d.Abs().String()
	}
	if d.inWeeks {
		return "P" + strconv.Itoa(d.weeks) + "W"
	}

	var b strings.Builder
	b.WriteString("P")
	for _, c := range []struct {
		v    float64
		unit byte
	}{{float64(d.years), 'Y'}, {float64(d.months), 'M'}, {float64(d.days), 'D'}} {
		if c.v != 0 {
			b.WriteString(formatNumber(c.v))
			b.WriteByte(c.unit)
		}
	}
	if d.hours != 0 || d.minutes != 0 || d.seconds != 0 {
		b.WriteString("T")
		for _, c := range []struct {
			v    float64
			unit byte
		}{{d.hours, 'H'}, {d.minutes, 'M'}, {d.seconds, 'S'}} {
			if c.v != 0 {
				b.WriteString(formatNumber(c.v))
				b.WriteByte(c.unit)
			}
		}
	}
	return b.String()
}

func (d Duration) isFullyNegative() bool {
	negative := false
	for _, v := range []float64{float64(d.years), float64(d.months), float64(d.weeks), float64(d.days), d.hours, d.minutes, d.seconds} {
		if v > 0 {
			return false
		}
		if v < 0 {
			negative = true
		}
	}
	return negative
}

// formatNumber renders v without trailing zeros and with a decimal comma.
func formatNumber(v float64) string {
	return strings.Replace(decimal.NewFromFloat(v).String(), ".", ",", 1)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

func floorDivMod(a, b float64) (float64, float64) {
	q := math.Floor(a / b)
	return q, a - q*b
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
