// Package unixtime converts between proleptic Gregorian ordinal dates and
// Unix time without going through time.Location.
package unixtime

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour

	daysPer400Years = 365*400 + 97
)

// daysBeforeYear returns the number of days from 0000-01-01 to the start of year.
// It is valid for negative years.
func daysBeforeYear(year int64) int64 {
	y := year - 1
	return 365*year + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) + 1
}

// unixEpochDays is daysBeforeYear(1970).
var unixEpochDays = daysBeforeYear(1970)

// FromOrdinal returns the number of seconds since 1970-001T00:00:00Z of the
// given UTC ordinal date and second of day. It ignores leap seconds.
func FromOrdinal(year, dayOfYear int, secondOfDay int64) int64 {
	days := daysBeforeYear(int64(year)) - unixEpochDays + int64(dayOfYear) - 1
	return days*secondsPerDay + secondOfDay
}

// ToOrdinal is the inverse of FromOrdinal.
func ToOrdinal(unix int64) (year, dayOfYear int, secondOfDay int64) {
	days := floorDiv(unix, secondsPerDay)
	secondOfDay = unix - days*secondsPerDay
	days += unixEpochDays

	// Estimate the year from whole 400-year cycles, then correct.
	y := floorDiv(days*400, daysPer400Years)
	for daysBeforeYear(y) > days {
		y--
	}
	for daysBeforeYear(y+1) <= days {
		y++
	}
	return int(y), int(days-daysBeforeYear(y)) + 1, secondOfDay
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
