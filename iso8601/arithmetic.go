package iso8601

import (
	"errors"
	"fmt"
	"math"

	"github.com/ngrash/go-isodatetime/calendar"
)

// maxTruncatedSteps bounds the day, week and month walks of AddTruncated.
// The longest legitimate walk is to the next day 366, eight Gregorian
// years away.
const maxTruncatedSteps = 12 * 366

// Add returns p shifted by d. Units are applied from seconds up to years,
// carrying after each. Months step one at a time and clamp the day of month
// to the new month's length, as do years.
func (p TimePoint) Add(d Duration) (TimePoint, error) {
	if p.truncated {
		return p, fmt.Errorf("%w: add %v to truncated time point %v", ErrUnsupported, d, p)
	}
	return p.add(d), nil
}

// Sub returns p shifted back by d.
func (p TimePoint) Sub(d Duration) (TimePoint, error) {
	return p.Add(d.Neg())
}

func (p TimePoint) add(d Duration) TimePoint {
	d = d.ToDays()
	if d.seconds != 0 {
		switch {
		case p.has(fSecond):
			p.second += d.seconds
		case p.has(fMinute):
			p.minute += d.seconds / calendar.SecondsInMinute
		default:
			p.hour += d.seconds / calendar.SecondsInHour
		}
		p.tickOver()
	}
	if d.minutes != 0 {
		if p.has(fMinute) {
			p.minute += d.minutes
		} else {
			p.hour += d.minutes / calendar.MinutesInHour
		}
		p.tickOver()
	}
	if d.hours != 0 {
		p.hour += d.hours
		p.tickOver()
	}
	if d.days != 0 {
		switch p.Form() {
		case CalendarForm:
			p.dayOfMonth += d.days
		case OrdinalForm:
			p.dayOfYear += d.days
		default:
			p.dayOfWeek += d.days
		}
		p.tickOver()
	}
	if d.months != 0 {
		p = p.addMonths(d.months)
	}
	if d.years != 0 {
		p.year += d.years
		c := calendar.Default()
		switch p.Form() {
		case CalendarForm:
			p.dayOfMonth = min(p.dayOfMonth, c.DaysInMonth(p.month, p.year))
		case OrdinalForm:
			p.dayOfYear = min(p.dayOfYear, c.DaysInYear(p.year))
		case WeekForm:
			p.week = min(p.week, c.WeeksInYear(p.year))
		}
	}
	return p
}

// AddMonths returns p moved by n calendar months. The day of month is
// clamped after every step, so 31 January plus one month is the last day
// of February. The stored date form is kept.
func (p TimePoint) AddMonths(n int) (TimePoint, error) {
	if p.truncated {
		return p, fmt.Errorf("%w: add months to truncated time point %v", ErrUnsupported, p)
	}
	return p.addMonths(n), nil
}

func (p TimePoint) addMonths(n int) TimePoint {
	if n == 0 {
		return p
	}
	form := p.Form()
	p = p.ToCalendarDate()
	c := calendar.Default()
	step := 1
	if n < 0 {
		step = -1
	}
	for range absInt(n) {
		p.month += step
		switch {
		case p.month > calendar.MonthsInYear:
			p.month -= calendar.MonthsInYear
			p.year++
		case p.month < 1:
			p.month += calendar.MonthsInYear
			p.year--
		}
		p.dayOfMonth = min(p.dayOfMonth, c.DaysInMonth(p.month, p.year))
	}
	p.tickOver()
	switch form {
	case OrdinalForm:
		p = p.ToOrdinalDate()
	case WeekForm:
		p = p.ToWeekDate()
	}
	return p
}

// tickOver carries fractions and overflow from the smallest present unit to
// the largest, leaving every unit in range.
func (p *TimePoint) tickOver() {
	c := calendar.Default()

	if p.has(fHour) && p.has(fMinute) {
		frac := p.hour - math.Trunc(p.hour)
		p.hour -= frac
		p.minute += frac * calendar.MinutesInHour
	}
	if p.has(fMinute) && p.has(fSecond) {
		frac := p.minute - math.Trunc(p.minute)
		p.minute -= frac
		p.second += frac * calendar.SecondsInMinute
	}
	if p.has(fSecond) {
		var q float64
		q, p.second = floorDivMod(p.second, calendar.SecondsInMinute)
		if p.has(fMinute) {
			p.minute += q
		}
	}
	if p.has(fMinute) {
		var q float64
		q, p.minute = floorDivMod(p.minute, calendar.MinutesInHour)
		if p.has(fHour) {
			p.hour += q
		}
	}
	if p.has(fHour) {
		var q float64
		q, p.hour = floorDivMod(p.hour, calendar.HoursInDay)
		days := int(q)
		switch {
		case p.has(fDayOfWeek):
			p.dayOfWeek += days
		case p.has(fDayOfMonth):
			p.dayOfMonth += days
		case p.has(fDayOfYear):
			p.dayOfYear += days
		}
	}
	if p.has(fDayOfWeek) {
		weeks := floorDiv(p.dayOfWeek-1, calendar.DaysInWeek)
		p.dayOfWeek = floorMod(p.dayOfWeek-1, calendar.DaysInWeek) + 1
		if p.has(fWeek) {
			p.week += weeks
		}
	}
	if !p.has(fYear) {
		return
	}
	if p.has(fMonth) && p.has(fDayOfMonth) {
		p.tickOverDayOfMonth(c)
	}
	if p.has(fDayOfYear) {
		p.year, p.dayOfYear = c.AddOrdinalDays(p.year, p.dayOfYear, 0)
	}
	if p.has(fWeek) {
		for p.week < 1 {
			p.year--
			p.week += c.WeeksInYear(p.year)
		}
		for n := c.WeeksInYear(p.year); p.week > n; n = c.WeeksInYear(p.year) {
			p.week -= n
			p.year++
		}
	}
	if p.has(fMonth) {
		p.year += floorDiv(p.month-1, calendar.MonthsInYear)
		p.month = floorMod(p.month-1, calendar.MonthsInYear) + 1
	}
}

// tickOverDayOfMonth resolves a day of month outside its month by walking
// days across month and year boundaries.
func (p *TimePoint) tickOverDayOfMonth(c *calendar.Calendar) {
	p.year += floorDiv(p.month-1, calendar.MonthsInYear)
	p.month = floorMod(p.month-1, calendar.MonthsInYear) + 1
	if p.dayOfMonth >= 1 && p.dayOfMonth <= c.DaysInMonth(p.month, p.year) {
		return
	}
	y, doy := c.OrdinalFromCalendar(p.year, p.month, 1)
	y, doy = c.AddOrdinalDays(y, doy, p.dayOfMonth-1)
	p.year, p.month, p.dayOfMonth = c.CalendarFromOrdinal(y, doy)
}

// AddTimePoint combines a truncated point with a non-truncated one: the
// result is the first instant at or after the non-truncated point whose
// units match the truncated point's. The result keeps the zone of the
// non-truncated point.
func (p TimePoint) AddTimePoint(q TimePoint) (TimePoint, error) {
	switch {
	case p.truncated && !q.truncated:
		f, _ := p.TruncatedProperties()
		r, err := q.ToTimeZone(p.zone).AddTruncated(f)
		if err != nil {
			return p, err
		}
		return r.ToTimeZone(q.zone), nil
	case q.truncated && !p.truncated:
		return q.AddTimePoint(p)
	default:
		return p, fmt.Errorf("%w: add time point %v to %v: exactly one must be truncated", ErrUnsupported, q, p)
	}
}

// AddTruncated returns the first instant at or after p whose units equal
// the non-nil fields of f. Units are matched from seconds up to years; an
// hour implies zero minutes and seconds unless they are given.
func (p TimePoint) AddTruncated(f TruncatedFields) (TimePoint, error) {
	if p.truncated {
		return p, fmt.Errorf("%w: add truncated fields to truncated time point %v", ErrUnsupported, p)
	}
	if f.HourOfDay != nil && f.MinuteOfHour == nil {
		f.MinuteOfHour = Float(0)
	}
	if (f.HourOfDay != nil || f.MinuteOfHour != nil) && f.SecondOfMinute == nil {
		f.SecondOfMinute = Float(0)
	}
	if err := f.check(); err != nil {
		return p, err
	}

	q := p
	if f.SecondOfMinute != nil || f.MinuteOfHour != nil {
		q = q.ToHourMinuteSecond()
	}
	if f.SecondOfMinute != nil {
		q.second += floorModFloat(*f.SecondOfMinute-q.second, calendar.SecondsInMinute)
		q.tickOver()
	}
	if f.MinuteOfHour != nil {
		q.minute += floorModFloat(*f.MinuteOfHour-q.minute, calendar.MinutesInHour)
		q.tickOver()
	}
	if f.HourOfDay != nil {
		q.hour += floorModFloat(*f.HourOfDay-q.hour, calendar.HoursInDay)
		q.tickOver()
	}
	if f.DayOfWeek != nil {
		q = q.ToWeekDate()
		q.dayOfWeek += floorMod(*f.DayOfWeek-q.dayOfWeek, calendar.DaysInWeek)
		q.tickOver()
	}

	var err error
	step := func(name string, form func(TimePoint) TimePoint, cur func(*TimePoint) *int, target *int) {
		if target == nil || err != nil {
			return
		}
		q = form(q)
		for i := 0; *cur(&q) != *target; i++ {
			if i == maxTruncatedSteps {
				err = outOfBounds(name, *target)
				return
			}
			*cur(&q)++
			q.tickOver()
		}
	}
	step("day of month", TimePoint.ToCalendarDate, func(t *TimePoint) *int { return &t.dayOfMonth }, f.DayOfMonth)
	step("day of year", TimePoint.ToOrdinalDate, func(t *TimePoint) *int { return &t.dayOfYear }, f.DayOfYear)
	step("week of year", TimePoint.ToWeekDate, func(t *TimePoint) *int { return &t.week }, f.WeekOfYear)
	step("month of year", TimePoint.ToCalendarDate, func(t *TimePoint) *int { return &t.month }, f.MonthOfYear)
	if err != nil {
		return p, err
	}

	for _, y := range []struct {
		target *int
		modulo int
	}{{f.YearOfDecade, 10}, {f.YearOfCentury, 100}} {
		if y.target == nil {
			continue
		}
		q = q.ToCalendarDate()
		q.year += floorMod(*y.target-q.year, y.modulo)
		q.dayOfMonth = min(q.dayOfMonth, calendar.Default().DaysInMonth(q.month, q.year))
	}
	return q, nil
}

func (f TruncatedFields) check() error {
	c := calendar.Default()
	var errs []error
	for _, g := range []struct {
		name   string
		v      *int
		lo, hi int
	}{
		{"year of century", f.YearOfCentury, 0, 99},
		{"year of decade", f.YearOfDecade, 0, 9},
		{"month of year", f.MonthOfYear, 1, calendar.MonthsInYear},
		{"week of year", f.WeekOfYear, 1, calendar.MaxWeeksInYear},
		{"day of year", f.DayOfYear, 1, c.LeapYearDays()},
		{"day of month", f.DayOfMonth, 1, c.MaxDaysInMonth()},
		{"day of week", f.DayOfWeek, 1, calendar.DaysInWeek},
	} {
		if g.v != nil {
			errs = checkRange(errs, g.name, *g.v, g.lo, g.hi)
		}
	}
	for _, g := range []struct {
		name  string
		v     *float64
		upper float64
	}{
		{"hour of day", f.HourOfDay, calendar.HoursInDay},
		{"minute of hour", f.MinuteOfHour, calendar.MinutesInHour},
		{"second of minute", f.SecondOfMinute, calendar.SecondsInMinute},
	} {
		if g.v != nil {
			errs = checkUpper(errs, g.name, *g.v, 0, g.upper)
		}
	}
	return errors.Join(errs...)
}

// Diff returns the exact duration from q to p in days, hours, minutes and
// seconds. It is negative when q is later than p.
func (p TimePoint) Diff(q TimePoint) (Duration, error) {
	if p.truncated || q.truncated {
		return Duration{}, fmt.Errorf("%w: difference of truncated time points %v and %v", ErrUnsupported, p, q)
	}
	if p.compare(q) < 0 {
		d, err := q.Diff(p)
		return d.Neg(), err
	}
	q = q.ToTimeZone(p.zone)
	y1, d1 := p.ordinalDate()
	y2, d2 := q.ordinalDate()
	days := calendar.Default().OrdinalDaysBetween(y2, d2, y1, d1)

	h1, m1, s1 := p.hourMinuteSecond()
	h2, m2, s2 := q.hourMinuteSecond()
	h, m, s := h1-h2, m1-m2, s1-s2
	if s < 0 {
		m--
		s += calendar.SecondsInMinute
	}
	if m < 0 {
		h--
		m += calendar.MinutesInHour
	}
	if h < 0 {
		days--
		h += calendar.HoursInDay
	}
	return Duration{days: days, hours: h, minutes: m, seconds: s}, nil
}

// ToTimeZone returns the same instant expressed in zone z. An unknown z,
// or a truncated p, leaves p unchanged.
func (p TimePoint) ToTimeZone(z TimeZone) TimePoint {
	if z.unknown || p.truncated {
		return p
	}
	r := p.add(z.Sub(p.zone))
	r.zone = z
	return r
}

func (p TimePoint) ToUTC() TimePoint {
	return p.ToTimeZone(UTC)
}

func (p TimePoint) ToLocalTimeZone() TimePoint {
	return p.ToTimeZone(LocalTimeZone())
}

func floorModFloat(a, b float64) float64 {
	_, r := floorDivMod(a, b)
	return r
}
