// Package calendar implements the day-count rules of the proleptic Gregorian
// calendar and of the fixed 360, 365 and 366 day calendars, and conversions
// between calendar, ordinal and ISO week dates.
//
// Results of the non-trivial functions are memoized per (arguments, mode) in
// bounded, insert-only caches, so switching the mode of a Calendar never
// returns a result computed under a different mode.
package calendar

import (
	"fmt"

	"github.com/ngrash/go-isodatetime/internal/log"
	"github.com/ngrash/go-isodatetime/internal/memo"
)

const (
	MonthsInYear    = 12
	DaysInWeek      = 7
	HoursInDay      = 24
	MinutesInHour   = 60
	SecondsInMinute = 60
	SecondsInHour   = SecondsInMinute * MinutesInHour
	MinutesInDay    = MinutesInHour * HoursInDay
	SecondsInDay    = SecondsInHour * HoursInDay

	MaxWeeksInYear   = 53
	RoughDaysInMonth = 30

	// Week-year 2000 starts on calendar date 2000-01-03, ordinal date 2000-003.
	WeekStartReferenceYear       = 2000
	WeekStartReferenceMonth      = 1
	WeekStartReferenceDayOfMonth = 3
	WeekStartReferenceDayOfYear  = 3

	UnixEpochYear = 1970
)

type (
	yearKey struct {
		year int
		mode Mode
	}
	rangeKey struct {
		start, end int
		mode       Mode
	}
)

// Calendar holds the active mode and the tables derived from it.
// The zero value is not usable; use New or Default.
type Calendar struct {
	mode Mode

	daysInMonths     [MonthsInYear]int
	daysInMonthsLeap [MonthsInYear]int
	// cumulative[i] is the number of days before month i+1.
	cumulative     [MonthsInYear + 1]int
	cumulativeLeap [MonthsInYear + 1]int

	daysInYear     int
	daysInYearLeap int
	maxDaysInMonth int

	capacity         int
	leap             *memo.Cache[yearKey, bool]
	yearRanges       *memo.Cache[rangeKey, int]
	weekStarts       *memo.Cache[yearKey, [3]int]
	ordinalWeekStart *memo.Cache[yearKey, [2]int]
	weeksInYear      *memo.Cache[yearKey, int]
}

// New returns a Calendar in the given mode with caches of the default capacity.
func New(mode Mode) (*Calendar, error) {
	c := &Calendar{}
	c.SetCacheCapacity(memo.DefaultCapacity)
	if err := c.SetMode(mode); err != nil {
		return nil, err
	}
	return c, nil
}

var defaultCalendar = mustNew(Gregorian)

func mustNew(mode Mode) *Calendar {
	c, err := New(mode)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the process-wide Calendar. It starts in Gregorian mode.
// Changing its mode is not safe for concurrent use with other calls.
func Default() *Calendar {
	return defaultCalendar
}

// SetMode switches the calendar to mode. Aliases accepted by ParseMode are
// accepted here too.
func (c *Calendar) SetMode(mode Mode) error {
	m, err := ParseMode(string(mode))
	if err != nil {
		return err
	}
	common, leap := m.tables()
	c.mode = m
	c.daysInMonths = common
	c.daysInMonthsLeap = leap
	c.daysInYear, c.daysInYearLeap, c.maxDaysInMonth = 0, 0, 0
	for i := 0; i < MonthsInYear; i++ {
		c.cumulative[i+1] = c.cumulative[i] + common[i]
		c.cumulativeLeap[i+1] = c.cumulativeLeap[i] + leap[i]
		c.maxDaysInMonth = max(c.maxDaysInMonth, common[i], leap[i])
	}
	c.daysInYear = c.cumulative[MonthsInYear]
	c.daysInYearLeap = c.cumulativeLeap[MonthsInYear]
	log.Debug("calendar: mode set", "mode", m)
	return nil
}

// SetCacheCapacity replaces all caches with empty ones holding at most n entries each.
func (c *Calendar) SetCacheCapacity(n int) {
	c.capacity = n
	c.leap = memo.New[yearKey, bool]("is_leap_year", n)
	c.yearRanges = memo.New[rangeKey, int]("days_in_year_range", n)
	c.weekStarts = memo.New[yearKey, [3]int]("week_date_start", n)
	c.ordinalWeekStart = memo.New[yearKey, [2]int]("ordinal_week_date_start", n)
	c.weeksInYear = memo.New[yearKey, int]("weeks_in_year", n)
}

func (c *Calendar) Mode() Mode {
	return c.mode
}

func (c *Calendar) CacheCapacity() int {
	return c.capacity
}

// DaysInMonths returns the month lengths of a common year.
func (c *Calendar) DaysInMonths() [MonthsInYear]int {
	return c.daysInMonths
}

// DaysInMonthsLeap returns the month lengths of a leap year.
func (c *Calendar) DaysInMonthsLeap() [MonthsInYear]int {
	return c.daysInMonthsLeap
}

// CommonYearDays is the length of a non-leap year.
func (c *Calendar) CommonYearDays() int {
	return c.daysInYear
}

func (c *Calendar) LeapYearDays() int {
	return c.daysInYearLeap
}

func (c *Calendar) MaxDaysInMonth() int {
	return c.maxDaysInMonth
}

// RoughDaysInYear is the number of days a nominal year counts for when
// durations are compared.
func (c *Calendar) RoughDaysInYear() int {
	return c.daysInYear
}

func (c *Calendar) String() string {
	return fmt.Sprintf("calendar(%s)", c.mode)
}
