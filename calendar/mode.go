package calendar

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects the day-count rules of a Calendar.
type Mode string

const (
	// Gregorian is the proleptic Gregorian calendar.
	Gregorian  Mode = "gregorian"
	Mode360Day Mode = "360day"
	Mode365Day Mode = "365day"
	Mode366Day Mode = "366day"
)

var ErrUnknownMode = errors.New("unknown calendar mode")

var (
	daysInMonths360 = [MonthsInYear]int{30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30}
	daysInMonths365 = [MonthsInYear]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	daysInMonths366 = [MonthsInYear]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
)

// ParseMode accepts a mode name or one of its aliases ("360_day" for
// "360day" and so on), ignoring case. The empty string is Gregorian.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "gregorian":
		return Gregorian, nil
	case "360day", "360_day":
		return Mode360Day, nil
	case "365day", "365_day":
		return Mode365Day, nil
	case "366day", "366_day":
		return Mode366Day, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// tables returns the month lengths of common and leap years for m.
func (m Mode) tables() (common, leap [MonthsInYear]int) {
	switch m {
	case Gregorian:
		return daysInMonths365, daysInMonths366
	case Mode360Day:
		return daysInMonths360, daysInMonths360
	case Mode365Day:
		return daysInMonths365, daysInMonths365
	case Mode366Day:
		return daysInMonths366, daysInMonths366
	default:
		panic(fmt.Errorf("%w: %q", ErrUnknownMode, string(m)))
	}
}

func (m Mode) String() string {
	return string(m)
}
