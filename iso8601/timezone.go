package iso8601

import (
	"fmt"
	"time"

	"github.com/ngrash/go-isodatetime/calendar"
)

// TimeZone is an offset from UTC. An unknown zone takes no part in
// conversions. The zero value is UTC.
type TimeZone struct {
	hours, minutes int
	unknown        bool
}

var (
	UTC             = TimeZone{}
	UnknownTimeZone = TimeZone{unknown: true}
)

// NewTimeZone returns the offset hours:minutes. Hours must be in
// [-99, 99]; non-zero minutes must have the sign of non-zero hours.
func NewTimeZone(hours, minutes int) (TimeZone, error) {
	if hours < -99 || hours > 99 {
		return TimeZone{}, outOfBounds("time zone hours", hours)
	}
	lo, hi := 1-calendar.MinutesInHour, calendar.MinutesInHour-1
	if hours > 0 {
		lo = 0
	} else if hours < 0 {
		hi = 0
	}
	if minutes < lo || minutes > hi {
		return TimeZone{}, outOfBounds("time zone minutes", minutes)
	}
	return TimeZone{hours: hours, minutes: minutes}, nil
}

// timeZoneFromOffset splits an offset in seconds east of UTC. Seconds below
// a minute are dropped.
func timeZoneFromOffset(seconds int) TimeZone {
	sign := 1
	if seconds < 0 {
		sign = -1
	}
	m := sign * seconds / calendar.SecondsInMinute
	return TimeZone{
		hours:   sign * (m / calendar.MinutesInHour),
		minutes: sign * (m % calendar.MinutesInHour),
	}
}

// LocalTimeZone returns the current UTC offset of the local time zone,
// daylight saving included.
func LocalTimeZone() TimeZone {
	_, offset := time.Now().Zone()
	return timeZoneFromOffset(offset)
}

func (z TimeZone) Hours() int    { return z.hours }
func (z TimeZone) Minutes() int  { return z.minutes }
func (z TimeZone) Unknown() bool { return z.unknown }

// Duration returns the offset as an exact Duration. An unknown zone yields
// a zero Duration.
func (z TimeZone) Duration() Duration {
	if z.unknown {
		return Duration{}
	}
	return Duration{hours: float64(z.hours), minutes: float64(z.minutes)}
}

// Sub returns the offset from o to z. If either zone is unknown the result
// is a zero Duration.
func (z TimeZone) Sub(o TimeZone) Duration {
	if z.unknown || o.unknown {
		return Duration{}
	}
	return Duration{
		hours:   float64(z.hours - o.hours),
		minutes: float64(z.minutes - o.minutes),
	}
}

func (z TimeZone) offsetMinutes() int {
	return z.hours*calendar.MinutesInHour + z.minutes
}

func (z TimeZone) Equal(o TimeZone) bool {
	return z == o
}

// IsUTC reports whether z is a known zero offset.
func (z TimeZone) IsUTC() bool {
	return !z.unknown && z.hours == 0 && z.minutes == 0
}

// String returns "Z" for UTC, "" for an unknown zone and ±hh:mm otherwise.
func (z TimeZone) String() string {
	return z.Format(TimeZoneExtended)
}

// TimeZoneFormat selects how Format renders a non-zero offset.
type TimeZoneFormat int

const (
	TimeZoneNormal   TimeZoneFormat = iota // +hhmm
	TimeZoneReduced                        // +hh, or +hhmm when minutes are non-zero
	TimeZoneExtended                       // +hh:mm
)

func (z TimeZone) Format(f TimeZoneFormat) string {
	if z.unknown {
		return ""
	}
	if z.hours == 0 && z.minutes == 0 {
		return "Z"
	}
	sign := '+'
	if z.hours < 0 || z.minutes < 0 {
		sign = '-'
	}
	hh, mm := absInt(z.hours), absInt(z.minutes)
	switch f {
	case TimeZoneReduced:
		if mm == 0 {
			return fmt.Sprintf("%c%02d", sign, hh)
		}
		return fmt.Sprintf("%c%02d%02d", sign, hh, mm)
	case TimeZoneExtended:
		return fmt.Sprintf("%c%02d:%02d", sign, hh, mm)
	default:
		return fmt.Sprintf("%c%02d%02d", sign, hh, mm)
	}
}

// LocalTimeZoneFormat renders the local UTC offset in style f.
func LocalTimeZoneFormat(f TimeZoneFormat) string {
	return LocalTimeZone().Format(f)
}
