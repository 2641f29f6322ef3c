package calendar

import "fmt"

// IsLeapYear reports whether year has a leap-length February. Gregorian
// years follow the usual 4/100/400 rule; 360 and 365 day calendars have no
// leap years and every 366 day year is a leap year.
func (c *Calendar) IsLeapYear(year int) bool {
	return c.leap.Do(yearKey{year, c.mode}, func() bool {
		switch c.mode {
		case Gregorian:
			return year%4 == 0 && (year%100 != 0 || year%400 == 0)
		case Mode366Day:
			return true
		default:
			return false
		}
	})
}

// DaysInYear returns the number of days in year.
func (c *Calendar) DaysInYear(year int) int {
	if c.IsLeapYear(year) {
		return c.daysInYearLeap
	}
	return c.daysInYear
}

// DaysInMonth returns the number of days in a month of a specific year.
func (c *Calendar) DaysInMonth(month, year int) int {
	checkMonth(month)
	if c.IsLeapYear(year) {
		return c.daysInMonthsLeap[month-1]
	}
	return c.daysInMonths[month-1]
}

// DaysInLeapMonth returns the number of days in month of a leap year. It is
// used where the month is known but the year is not.
func (c *Calendar) DaysInLeapMonth(month int) int {
	checkMonth(month)
	return c.daysInMonthsLeap[month-1]
}

// DaysInYearRange returns the number of days in the years start to end,
// inclusive. It is 0 if start > end.
func (c *Calendar) DaysInYearRange(start, end int) int {
	if start > end {
		return 0
	}
	if start == end {
		return c.DaysInYear(start)
	}
	return c.yearRanges.Do(rangeKey{start, end, c.mode}, func() int {
		days := (end - start + 1) * c.daysInYear
		if extra := c.daysInYearLeap - c.daysInYear; extra != 0 {
			days += (gregorianLeapYearsThrough(end) - gregorianLeapYearsThrough(start-1)) * extra
		}
		return days
	})
}

// gregorianLeapYearsThrough counts the Gregorian leap years in [0, n] for
// n >= 0, and is offset by a constant for negative n, which cancels out in
// differences.
func gregorianLeapYearsThrough(n int) int {
	return floorDiv(n, 4) - floorDiv(n, 100) + floorDiv(n, 400)
}

// DaysSince1AD returns the number of days from 0001-01-01 to the end of
// year, or 0 for years before 1.
func (c *Calendar) DaysSince1AD(year int) int {
	if year < 1 {
		return 0
	}
	return c.DaysInYearRange(1, year)
}

// OrdinalDaysBetween returns the signed number of days from ordinal date
// y1-d1 to ordinal date y2-d2.
func (c *Calendar) OrdinalDaysBetween(y1, d1, y2, d2 int) int {
	switch {
	case y2 > y1:
		return c.DaysInYearRange(y1, y2-1) - d1 + d2
	case y2 < y1:
		return -(c.DaysInYearRange(y2, y1-1) - d2 + d1)
	default:
		return d2 - d1
	}
}

// AddOrdinalDays adds n days to the ordinal date year-dayOfYear. The day of
// year does not need to be in range beforehand.
func (c *Calendar) AddOrdinalDays(year, dayOfYear, n int) (int, int) {
	dayOfYear += n
	for dayOfYear < 1 {
		year--
		dayOfYear += c.DaysInYear(year)
	}
	for dayOfYear > c.DaysInYear(year) {
		dayOfYear -= c.DaysInYear(year)
		year++
	}
	return year, dayOfYear
}

// WeekDateStart returns the calendar date of the first day of ISO week-year
// year. Week years start on the Monday of the week containing the year's
// fourth day, which may fall in the previous calendar year.
func (c *Calendar) WeekDateStart(year int) (int, int, int) {
	d := c.weekStarts.Do(yearKey{year, c.mode}, func() [3]int {
		// n is the number of days from the reference Monday to 1 January.
		var n int
		switch {
		case year > WeekStartReferenceYear:
			n = c.DaysInYearRange(WeekStartReferenceYear, year-1) - (WeekStartReferenceDayOfYear - 1)
		case year < WeekStartReferenceYear:
			n = -(c.DaysInYearRange(year, WeekStartReferenceYear-1) + WeekStartReferenceDayOfYear - 1)
		default:
			n = 1 - WeekStartReferenceDayOfYear
		}
		weekday := floorMod(n, DaysInWeek) + 1
		switch {
		case weekday == 1:
			return [3]int{year, 1, 1}
		case weekday > 4:
			// 1 January belongs to the last week of the previous week-year.
			return [3]int{year, 1, 1 + DaysInWeek + 1 - weekday}
		default:
			return [3]int{year - 1, MonthsInYear, c.DaysInMonth(MonthsInYear, year-1) - (weekday - 2)}
		}
	})
	return d[0], d[1], d[2]
}

// OrdinalWeekDateStart returns the ordinal date of the first day of ISO
// week-year year.
func (c *Calendar) OrdinalWeekDateStart(year int) (int, int) {
	d := c.ordinalWeekStart.Do(yearKey{year, c.mode}, func() [2]int {
		y, doy := c.OrdinalFromCalendar(c.WeekDateStart(year))
		return [2]int{y, doy}
	})
	return d[0], d[1]
}

// WeeksInYear returns the number of weeks, 52 or 53, in ISO week-year year.
func (c *Calendar) WeeksInYear(year int) int {
	return c.weeksInYear.Do(yearKey{year, c.mode}, func() int {
		y1, d1 := c.OrdinalWeekDateStart(year)
		y2, d2 := c.OrdinalWeekDateStart(year + 1)
		return c.OrdinalDaysBetween(y1, d1, y2, d2) / DaysInWeek
	})
}

// OrdinalFromCalendar converts a calendar date to an ordinal date.
// It panics if the date does not exist.
func (c *Calendar) OrdinalFromCalendar(year, month, day int) (int, int) {
	if month < 1 || month > MonthsInYear || day < 1 || day > c.DaysInMonth(month, year) {
		panic(fmt.Errorf("bad calendar date: %d-%02d-%02d", year, month, day))
	}
	if c.IsLeapYear(year) {
		return year, c.cumulativeLeap[month-1] + day
	}
	return year, c.cumulative[month-1] + day
}

// CalendarFromOrdinal converts an ordinal date to a calendar date.
// It panics if the date does not exist.
func (c *Calendar) CalendarFromOrdinal(year, dayOfYear int) (int, int, int) {
	if dayOfYear < 1 || dayOfYear > c.DaysInYear(year) {
		panic(fmt.Errorf("bad ordinal date: %d-%03d", year, dayOfYear))
	}
	cumulative := &c.cumulative
	if c.IsLeapYear(year) {
		cumulative = &c.cumulativeLeap
	}
	month := 1
	for dayOfYear > cumulative[month] {
		month++
	}
	return year, month, dayOfYear - cumulative[month-1]
}

// WeekFromOrdinal converts an ordinal date to an ISO week date. The week-year
// may differ from year near the year boundary.
func (c *Calendar) WeekFromOrdinal(year, dayOfYear int) (int, int, int) {
	if dayOfYear < 1 || dayOfYear > c.DaysInYear(year) {
		panic(fmt.Errorf("bad ordinal date: %d-%03d", year, dayOfYear))
	}
	for _, weekYear := range []int{year + 1, year, year - 1} {
		sy, sd := c.OrdinalWeekDateStart(weekYear)
		if days := c.OrdinalDaysBetween(sy, sd, year, dayOfYear); days >= 0 {
			return weekYear, days/DaysInWeek + 1, days%DaysInWeek + 1
		}
	}
	panic(fmt.Errorf("no week-year contains ordinal date %d-%03d", year, dayOfYear))
}

// WeekFromCalendar converts a calendar date to an ISO week date.
func (c *Calendar) WeekFromCalendar(year, month, day int) (int, int, int) {
	return c.WeekFromOrdinal(c.OrdinalFromCalendar(year, month, day))
}

// OrdinalFromWeek converts an ISO week date to an ordinal date.
// It panics if the week date does not exist.
func (c *Calendar) OrdinalFromWeek(weekYear, week, dayOfWeek int) (int, int) {
	if week < 1 || week > c.WeeksInYear(weekYear) || dayOfWeek < 1 || dayOfWeek > DaysInWeek {
		panic(fmt.Errorf("bad week date: %d-W%02d-%d", weekYear, week, dayOfWeek))
	}
	sy, sd := c.OrdinalWeekDateStart(weekYear)
	return c.AddOrdinalDays(sy, sd, (week-1)*DaysInWeek+dayOfWeek-1)
}

// CalendarFromWeek converts an ISO week date to a calendar date.
func (c *Calendar) CalendarFromWeek(weekYear, week, dayOfWeek int) (int, int, int) {
	return c.CalendarFromOrdinal(c.OrdinalFromWeek(weekYear, week, dayOfWeek))
}

func checkMonth(month int) {
	if month < 1 || month > MonthsInYear {
		panic(fmt.Errorf("bad month of year: %d", month))
	}
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
