package calendar

// The functions below operate on the Default calendar.

func SetMode(mode Mode) error { return Default().SetMode(mode) }

func IsLeapYear(year int) bool { return Default().IsLeapYear(year) }

func DaysInYear(year int) int { return Default().DaysInYear(year) }

func DaysInMonth(month, year int) int { return Default().DaysInMonth(month, year) }

func DaysInYearRange(start, end int) int { return Default().DaysInYearRange(start, end) }

func WeeksInYear(year int) int { return Default().WeeksInYear(year) }

func DaysSince1AD(year int) int { return Default().DaysSince1AD(year) }

func WeekDateStart(year int) (int, int, int) { return Default().WeekDateStart(year) }

func OrdinalFromCalendar(year, month, day int) (int, int) {
	return Default().OrdinalFromCalendar(year, month, day)
}

func CalendarFromOrdinal(year, dayOfYear int) (int, int, int) {
	return Default().CalendarFromOrdinal(year, dayOfYear)
}

func WeekFromCalendar(year, month, day int) (int, int, int) {
	return Default().WeekFromCalendar(year, month, day)
}

func CalendarFromWeek(weekYear, week, dayOfWeek int) (int, int, int) {
	return Default().CalendarFromWeek(weekYear, week, dayOfWeek)
}
