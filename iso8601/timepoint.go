package iso8601

import (
	"errors"
	"fmt"
	"math"

	"github.com/ngrash/go-isodatetime/calendar"
)

// field is a set of stored TimePoint fields.
type field uint16

const (
	fYear field = 1 << iota
	fMonth
	fDayOfMonth
	fDayOfYear
	fWeek
	fDayOfWeek
	fHour
	fMinute
	fSecond
)

func (s field) has(f field) bool { return s&f != 0 }

// Property names a unit of a time point. Only PropYearOfDecade and
// PropYearOfCentury are valid truncated properties.
type Property string

const (
	PropCentury         Property = "century"
	PropDecadeOfCentury Property = "decade_of_century"
	PropYearOfCentury   Property = "year_of_century"
	PropYearOfDecade    Property = "year_of_decade"
	PropMonthOfYear     Property = "month_of_year"
	PropWeekOfYear      Property = "week_of_year"
	PropDayOfYear       Property = "day_of_year"
	PropDayOfMonth      Property = "day_of_month"
	PropDayOfWeek       Property = "day_of_week"
	PropHourOfDay       Property = "hour_of_day"
	PropMinuteOfHour    Property = "minute_of_hour"
	PropSecondOfMinute  Property = "second_of_minute"
)

// DateForm is the representation a TimePoint stores its date in.
type DateForm int

const (
	NoDateForm DateForm = iota
	CalendarForm
	OrdinalForm
	WeekForm
)

func (f DateForm) String() string {
	switch f {
	case CalendarForm:
		return "calendar"
	case OrdinalForm:
		return "ordinal"
	case WeekForm:
		return "week"
	default:
		return "none"
	}
}

// TimePoint is an instant in time stored as a calendar date
// (year, month, day of month), an ordinal date (year, day of year) or a week
// date (week-year, week, day of week), plus a time of day and a UTC offset.
//
// A truncated TimePoint deliberately omits its larger units, such as "the
// 15th at 06:00" without a year or month. Its year, if any, holds only the
// digits named by its truncated property.
//
// TimePoints are immutable values; operations return new points.
type TimePoint struct {
	set               field
	year              int
	month             int
	dayOfMonth        int
	dayOfYear         int
	week              int
	dayOfWeek         int
	hour              float64
	minute            float64
	second            float64
	zone              TimeZone
	truncated         bool
	truncatedProperty Property
	expandedDigits    int
}

// TimePointSpec holds the constructor arguments of a TimePoint. Nil
// pointers are absent fields.
type TimePointSpec struct {
	// ExpandedYearDigits is the agreed number of year digits beyond four.
	ExpandedYearDigits int

	Year        *int
	MonthOfYear *int
	WeekOfYear  *int
	DayOfYear   *int
	DayOfMonth  *int
	DayOfWeek   *int

	HourOfDay      *int
	MinuteOfHour   *int
	SecondOfMinute *int
	// Fractions in [0, 1) of the smallest given time unit. A fraction
	// excludes all smaller units.
	HourOfDayDecimal      *float64
	MinuteOfHourDecimal   *float64
	SecondOfMinuteDecimal *float64

	TimeZoneHour   *int
	TimeZoneMinute *int

	Truncated         bool
	TruncatedProperty Property
}

func Int(v int) *int { return &v }

func Float(v float64) *float64 { return &v }

// NewTimePoint validates s and builds a TimePoint from it.
//
// A non-truncated point needs a year. Its missing date fields default to
// the first month, week or day and its missing time fields to zero; its
// zone defaults to UTC. A truncated point without a zone has an unknown
// zone.
func NewTimePoint(s TimePointSpec) (TimePoint, error) {
	switch s.TruncatedProperty {
	case "", PropYearOfDecade, PropYearOfCentury:
	default:
		return TimePoint{}, outOfBounds("truncated property", s.TruncatedProperty)
	}
	if s.ExpandedYearDigits < 0 {
		return TimePoint{}, outOfBounds("expanded year digits", s.ExpandedYearDigits)
	}

	p := TimePoint{
		truncated:         s.Truncated,
		truncatedProperty: s.TruncatedProperty,
		expandedDigits:    s.ExpandedYearDigits,
	}
	for _, f := range []struct {
		bit field
		dst *int
		v   *int
	}{
		{fYear, &p.year, s.Year},
		{fMonth, &p.month, s.MonthOfYear},
		{fWeek, &p.week, s.WeekOfYear},
		{fDayOfYear, &p.dayOfYear, s.DayOfYear},
		{fDayOfMonth, &p.dayOfMonth, s.DayOfMonth},
		{fDayOfWeek, &p.dayOfWeek, s.DayOfWeek},
	} {
		if f.v != nil {
			*f.dst = *f.v
			p.set |= f.bit
		}
	}
	for _, f := range []struct {
		bit field
		dst *float64
		v   *int
	}{
		{fHour, &p.hour, s.HourOfDay},
		{fMinute, &p.minute, s.MinuteOfHour},
		{fSecond, &p.second, s.SecondOfMinute},
	} {
		if f.v != nil {
			*f.dst = float64(*f.v)
			p.set |= f.bit
		}
	}

	if d := s.HourOfDayDecimal; d != nil {
		if s.HourOfDay == nil {
			return TimePoint{}, missing("hour of day decimal", "hour of day")
		}
		if *d < 0 || *d >= 1 {
			return TimePoint{}, outOfBounds("hour of day decimal", *d)
		}
		p.hour += *d
		if s.MinuteOfHour != nil {
			return TimePoint{}, conflict("minute of hour", "hour of day decimal")
		}
		if s.SecondOfMinute != nil {
			return TimePoint{}, conflict("second of minute", "hour of day decimal")
		}
	}
	if d := s.MinuteOfHourDecimal; d != nil {
		if s.MinuteOfHour == nil {
			return TimePoint{}, missing("minute of hour decimal", "minute of hour")
		}
		if *d < 0 || *d >= 1 {
			return TimePoint{}, outOfBounds("minute of hour decimal", *d)
		}
		p.minute += *d
		if s.SecondOfMinute != nil {
			return TimePoint{}, conflict("second of minute", "minute of hour decimal")
		}
	}
	if d := s.SecondOfMinuteDecimal; d != nil {
		if s.SecondOfMinute == nil {
			return TimePoint{}, missing("second of minute decimal", "second of minute")
		}
		if *d < 0 || *d >= 1 {
			return TimePoint{}, outOfBounds("second of minute decimal", *d)
		}
		p.second += *d
	}

	if !p.truncated {
		if !p.set.has(fYear) {
			return TimePoint{}, &inputError{ErrMissing, "year", "required unless truncated"}
		}
		p.set |= fHour
		if s.HourOfDayDecimal == nil {
			p.set |= fMinute
			if s.MinuteOfHourDecimal == nil {
				p.set |= fSecond
			}
		}
	}

	if p.truncated && s.TimeZoneHour == nil && s.TimeZoneMinute == nil {
		p.zone = UnknownTimeZone
	} else {
		var h, m int
		if s.TimeZoneHour != nil {
			h = *s.TimeZoneHour
		}
		if s.TimeZoneMinute != nil {
			m = *s.TimeZoneMinute
		}
		z, err := NewTimeZone(h, m)
		if err != nil {
			return TimePoint{}, err
		}
		p.zone = z
	}

	monthly := p.set.has(fMonth) || p.set.has(fDayOfMonth)
	weekly := p.set.has(fWeek) || p.set.has(fDayOfWeek)
	switch {
	case monthly && weekly:
		return TimePoint{}, conflict("week of year or day of week", "month of year or day of month")
	case monthly && p.set.has(fDayOfYear):
		return TimePoint{}, conflict("day of year", "month of year or day of month")
	case weekly && p.set.has(fDayOfYear):
		return TimePoint{}, conflict("day of year", "week of year or day of week")
	}

	if !p.truncated && !p.set.has(fDayOfYear) {
		if weekly {
			if !p.set.has(fWeek) {
				p.week = 1
			}
			if !p.set.has(fDayOfWeek) {
				p.dayOfWeek = 1
			}
			p.set |= fWeek | fDayOfWeek
		} else {
			if !p.set.has(fMonth) {
				p.month = 1
			}
			if !p.set.has(fDayOfMonth) {
				p.dayOfMonth = 1
			}
			p.set |= fMonth | fDayOfMonth
		}
	}

	if err := p.checkBounds(); err != nil {
		return TimePoint{}, err
	}
	return p, nil
}

// MustTimePoint is like NewTimePoint but panics on error.
func MustTimePoint(s TimePointSpec) TimePoint {
	p, err := NewTimePoint(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p TimePoint) checkBounds() error {
	c := calendar.Default()
	var errs []error

	maxDayOfMonth := c.MaxDaysInMonth()
	if p.set.has(fMonth) {
		errs = checkRange(errs, "month of year", p.month, 1, calendar.MonthsInYear)
		if p.month >= 1 && p.month <= calendar.MonthsInYear {
			if p.set.has(fYear) {
				maxDayOfMonth = c.DaysInMonth(p.month, p.year)
			} else {
				maxDayOfMonth = c.DaysInLeapMonth(p.month)
			}
		}
	}
	if p.set.has(fDayOfMonth) {
		errs = checkRange(errs, "day of month", p.dayOfMonth, 1, maxDayOfMonth)
	}
	maxWeek, maxDayOfYear := calendar.MaxWeeksInYear, c.LeapYearDays()
	if p.set.has(fYear) {
		maxWeek, maxDayOfYear = c.WeeksInYear(p.year), c.DaysInYear(p.year)
	}
	if p.set.has(fWeek) {
		errs = checkRange(errs, "week of year", p.week, 1, maxWeek)
	}
	if p.set.has(fDayOfYear) {
		errs = checkRange(errs, "day of year", p.dayOfYear, 1, maxDayOfYear)
	}
	if p.set.has(fDayOfWeek) {
		errs = checkRange(errs, "day of week", p.dayOfWeek, 1, calendar.DaysInWeek)
	}

	if p.set.has(fHour) {
		errs = checkRange(errs, "hour of day", p.hour, 0, calendar.HoursInDay)
	}
	if p.set.has(fHour) && p.hour == calendar.HoursInDay {
		if p.set.has(fMinute) {
			errs = checkRange(errs, "minute of hour", p.minute, 0, 0)
		}
		if p.set.has(fSecond) {
			errs = checkRange(errs, "second of minute", p.second, 0, 0)
		}
	} else {
		if p.set.has(fMinute) {
			errs = checkUpper(errs, "minute of hour", p.minute, 0, calendar.MinutesInHour)
		}
		if p.set.has(fSecond) {
			errs = checkUpper(errs, "second of minute", p.second, 0, calendar.SecondsInMinute)
		}
	}
	return errors.Join(errs...)
}

// Form returns the stored date representation.
func (p TimePoint) Form() DateForm {
	switch {
	case p.set.has(fMonth):
		return CalendarForm
	case p.set.has(fDayOfYear):
		return OrdinalForm
	case p.set.has(fWeek):
		return WeekForm
	default:
		return NoDateForm
	}
}

// hasDate reports whether the date can be converted between forms.
func (p TimePoint) hasDate() bool {
	if !p.set.has(fYear) {
		return false
	}
	switch p.Form() {
	case CalendarForm:
		return p.set.has(fDayOfMonth)
	case OrdinalForm:
		return true
	case WeekForm:
		return p.set.has(fDayOfWeek)
	}
	return false
}

func (p TimePoint) Truncated() bool             { return p.truncated }
func (p TimePoint) TruncatedProperty() Property { return p.truncatedProperty }
func (p TimePoint) ExpandedYearDigits() int     { return p.expandedDigits }
func (p TimePoint) TimeZone() TimeZone          { return p.zone }
func (p TimePoint) Year() (int, bool)           { return p.year, p.has(fYear) }
func (p TimePoint) HourOfDay() (float64, bool)  { return p.hour, p.has(fHour) }
func (p TimePoint) IsCalendarDate() bool        { return p.Form() == CalendarForm }
func (p TimePoint) IsOrdinalDate() bool         { return p.Form() == OrdinalForm }
func (p TimePoint) IsWeekDate() bool            { return p.Form() == WeekForm }

func (p TimePoint) has(f field) bool { return p.set.has(f) }

func (p TimePoint) storedInt(f field, v int) (int, bool) { return v, p.set.has(f) }

// The date getters return the stored value, or compute it from the stored
// representation when the point has a complete date.

func (p TimePoint) MonthOfYear() (int, bool) {
	if p.has(fMonth) || !p.hasDate() {
		return p.storedInt(fMonth, p.month)
	}
	_, m, _ := p.calendarDate()
	return m, true
}

func (p TimePoint) DayOfMonth() (int, bool) {
	if p.has(fDayOfMonth) || !p.hasDate() {
		return p.storedInt(fDayOfMonth, p.dayOfMonth)
	}
	_, _, d := p.calendarDate()
	return d, true
}

func (p TimePoint) DayOfYear() (int, bool) {
	if p.has(fDayOfYear) || !p.hasDate() {
		return p.storedInt(fDayOfYear, p.dayOfYear)
	}
	_, d := p.ordinalDate()
	return d, true
}

func (p TimePoint) WeekOfYear() (int, bool) {
	if p.has(fWeek) || !p.hasDate() {
		return p.storedInt(fWeek, p.week)
	}
	_, w, _ := p.weekDate()
	return w, true
}

func (p TimePoint) DayOfWeek() (int, bool) {
	if p.has(fDayOfWeek) || !p.hasDate() {
		return p.storedInt(fDayOfWeek, p.dayOfWeek)
	}
	_, _, d := p.weekDate()
	return d, true
}

func (p TimePoint) MinuteOfHour() (float64, bool) {
	if p.has(fMinute) || !p.has(fHour) {
		return p.minute, p.has(fMinute)
	}
	_, m, _ := p.hourMinuteSecond()
	return m, true
}

func (p TimePoint) SecondOfMinute() (float64, bool) {
	if p.has(fSecond) || !p.has(fHour) {
		return p.second, p.has(fSecond)
	}
	_, _, s := p.hourMinuteSecond()
	return s, true
}

// CalendarDate returns the date as year, month and day of month. ok is
// false when the point lacks a complete date.
func (p TimePoint) CalendarDate() (year, month, day int, ok bool) {
	if !p.hasDate() {
		return 0, 0, 0, false
	}
	year, month, day = p.calendarDate()
	return year, month, day, true
}

// OrdinalDate returns the date as year and day of year.
func (p TimePoint) OrdinalDate() (year, day int, ok bool) {
	if !p.hasDate() {
		return 0, 0, false
	}
	year, day = p.ordinalDate()
	return year, day, true
}

// WeekDate returns the date as week-year, week and day of week.
func (p TimePoint) WeekDate() (year, week, day int, ok bool) {
	if !p.hasDate() {
		return 0, 0, 0, false
	}
	year, week, day = p.weekDate()
	return year, week, day, true
}

// HourMinuteSecond returns the time of day with fractional hours or minutes
// spread into the smaller units.
func (p TimePoint) HourMinuteSecond() (hour, minute, second float64, ok bool) {
	if !p.has(fHour) {
		return 0, 0, 0, false
	}
	hour, minute, second = p.hourMinuteSecond()
	return hour, minute, second, true
}

func (p TimePoint) calendarDate() (int, int, int) {
	c := calendar.Default()
	switch p.Form() {
	case OrdinalForm:
		return c.CalendarFromOrdinal(p.year, p.dayOfYear)
	case WeekForm:
		return c.CalendarFromWeek(p.year, p.week, p.dayOfWeek)
	default:
		return p.year, p.month, p.dayOfMonth
	}
}

func (p TimePoint) ordinalDate() (int, int) {
	c := calendar.Default()
	switch p.Form() {
	case CalendarForm:
		return c.OrdinalFromCalendar(p.year, p.month, p.dayOfMonth)
	case WeekForm:
		return c.OrdinalFromWeek(p.year, p.week, p.dayOfWeek)
	default:
		return p.year, p.dayOfYear
	}
}

func (p TimePoint) weekDate() (int, int, int) {
	c := calendar.Default()
	switch p.Form() {
	case CalendarForm:
		return c.WeekFromCalendar(p.year, p.month, p.dayOfMonth)
	case OrdinalForm:
		return c.WeekFromOrdinal(p.year, p.dayOfYear)
	default:
		return p.year, p.week, p.dayOfWeek
	}
}

func (p TimePoint) hourMinuteSecond() (float64, float64, float64) {
	h, m, s := p.hour, p.minute, p.second
	if !p.has(fSecond) {
		if !p.has(fMinute) {
			whole := math.Trunc(h)
			h, m = whole, (h-whole)*calendar.MinutesInHour
		}
		whole := math.Trunc(m)
		m, s = whole, (m-whole)*calendar.SecondsInMinute
	}
	return h, m, s
}

const dateFields = fMonth | fDayOfMonth | fDayOfYear | fWeek | fDayOfWeek

// ToCalendarDate returns p with its date stored as a calendar date.
// Points without a complete date are returned unchanged.
func (p TimePoint) ToCalendarDate() TimePoint {
	if p.Form() == CalendarForm || !p.hasDate() {
		return p
	}
	p.year, p.month, p.dayOfMonth = p.calendarDate()
	p.set = p.set&^dateFields | fMonth | fDayOfMonth
	p.dayOfYear, p.week, p.dayOfWeek = 0, 0, 0
	return p
}

// ToOrdinalDate returns p with its date stored as an ordinal date.
func (p TimePoint) ToOrdinalDate() TimePoint {
	if p.Form() == OrdinalForm || !p.hasDate() {
		return p
	}
	p.year, p.dayOfYear = p.ordinalDate()
	p.set = p.set&^dateFields | fDayOfYear
	p.month, p.dayOfMonth, p.week, p.dayOfWeek = 0, 0, 0, 0
	return p
}

// ToWeekDate returns p with its date stored as a week date; its year
// becomes the week-year.
func (p TimePoint) ToWeekDate() TimePoint {
	if p.Form() == WeekForm || !p.hasDate() {
		return p
	}
	p.year, p.week, p.dayOfWeek = p.weekDate()
	p.set = p.set&^dateFields | fWeek | fDayOfWeek
	p.month, p.dayOfMonth, p.dayOfYear = 0, 0, 0
	return p
}

// ToHourMinuteSecond returns p with fractional hours or minutes expanded
// into hours, minutes and seconds.
func (p TimePoint) ToHourMinuteSecond() TimePoint {
	if !p.has(fHour) {
		return p
	}
	p.hour, p.minute, p.second = p.hourMinuteSecond()
	p.set |= fMinute | fSecond
	return p
}

// SecondOfDay returns the seconds elapsed since the start of the day.
func (p TimePoint) SecondOfDay() float64 {
	var s float64
	if p.has(fSecond) {
		s += p.second
	}
	if p.has(fMinute) {
		s += p.minute * calendar.SecondsInMinute
	}
	if p.has(fHour) {
		s += p.hour * calendar.SecondsInHour
	}
	return s
}

// Year decomposition. These use the stored year, so for a week date they
// describe the week-year.

func (p TimePoint) Century() int {
	return absInt(p.year) % 10000 / 100
}

func (p TimePoint) YearOfCentury() int {
	return absInt(p.year) % 100
}

func (p TimePoint) YearOfDecade() int {
	return absInt(p.year) % 10
}

func (p TimePoint) DecadeOfCentury() int {
	return (absInt(p.year)%100 - absInt(p.year)%10) / 10
}

// TruncatedFields are the units present in a truncated TimePoint, used as
// targets by AddTruncated. Nil fields are absent.
type TruncatedFields struct {
	YearOfCentury  *int
	YearOfDecade   *int
	MonthOfYear    *int
	WeekOfYear     *int
	DayOfYear      *int
	DayOfMonth     *int
	DayOfWeek      *int
	HourOfDay      *float64
	MinuteOfHour   *float64
	SecondOfMinute *float64
}

// TruncatedProperties returns the units present in a truncated point.
// ok is false if p is not truncated.
func (p TimePoint) TruncatedProperties() (f TruncatedFields, ok bool) {
	if !p.truncated {
		return f, false
	}
	switch p.truncatedProperty {
	case PropYearOfDecade:
		f.YearOfDecade = Int(floorMod(p.year, 10))
	case PropYearOfCentury:
		f.YearOfCentury = Int(floorMod(p.year, 100))
	}
	for _, g := range []struct {
		bit field
		dst **int
		v   int
	}{
		{fMonth, &f.MonthOfYear, p.month},
		{fWeek, &f.WeekOfYear, p.week},
		{fDayOfYear, &f.DayOfYear, p.dayOfYear},
		{fDayOfMonth, &f.DayOfMonth, p.dayOfMonth},
		{fDayOfWeek, &f.DayOfWeek, p.dayOfWeek},
	} {
		if p.has(g.bit) {
			*g.dst = Int(g.v)
		}
	}
	if p.has(fHour) {
		f.HourOfDay = Float(p.hour)
	}
	if p.has(fMinute) {
		f.MinuteOfHour = Float(p.minute)
	}
	if p.has(fSecond) {
		f.SecondOfMinute = Float(p.second)
	}
	return f, true
}

// truncatedOrder lists the truncated units from largest to smallest, each
// with the next larger unit that a truncated point omits.
var truncatedOrder = []struct {
	prop, missing Property
	present       func(TruncatedFields) bool
}{
	{PropYearOfCentury, PropCentury, func(f TruncatedFields) bool { return f.YearOfCentury != nil }},
	{PropYearOfDecade, PropDecadeOfCentury, func(f TruncatedFields) bool { return f.YearOfDecade != nil }},
	{PropMonthOfYear, PropYearOfCentury, func(f TruncatedFields) bool { return f.MonthOfYear != nil }},
	{PropWeekOfYear, PropYearOfCentury, func(f TruncatedFields) bool { return f.WeekOfYear != nil }},
	{PropDayOfYear, PropYearOfCentury, func(f TruncatedFields) bool { return f.DayOfYear != nil }},
	{PropDayOfMonth, PropMonthOfYear, func(f TruncatedFields) bool { return f.DayOfMonth != nil }},
	{PropDayOfWeek, PropWeekOfYear, func(f TruncatedFields) bool { return f.DayOfWeek != nil }},
	{PropHourOfDay, PropDayOfMonth, func(f TruncatedFields) bool { return f.HourOfDay != nil }},
	{PropMinuteOfHour, PropHourOfDay, func(f TruncatedFields) bool { return f.MinuteOfHour != nil }},
	{PropSecondOfMinute, PropMinuteOfHour, func(f TruncatedFields) bool { return f.SecondOfMinute != nil }},
}

// LargestTruncatedProperty returns the largest unit present in a truncated
// point.
func (p TimePoint) LargestTruncatedProperty() (Property, bool) {
	f, ok := p.TruncatedProperties()
	if !ok {
		return "", false
	}
	for _, u := range truncatedOrder {
		if u.present(f) {
			return u.prop, true
		}
	}
	return "", false
}

// SmallestMissingProperty returns the smallest unit a truncated point
// omits, the one just above its largest present unit.
func (p TimePoint) SmallestMissingProperty() (Property, bool) {
	f, ok := p.TruncatedProperties()
	if !ok {
		return "", false
	}
	for _, u := range truncatedOrder {
		if u.present(f) {
			return u.missing, true
		}
	}
	return "", false
}

func (p TimePoint) GoString() string {
	return fmt.Sprintf("iso8601.TimePoint(%s)", p)
}
