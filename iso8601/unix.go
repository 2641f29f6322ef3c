package iso8601

import (
	"fmt"
	"math"
	"time"

	"github.com/ngrash/go-isodatetime/calendar"
	"github.com/ngrash/go-isodatetime/internal/unixtime"
)

// unixEpoch returns 1970-01-01T00:00:00Z in the current calendar.
func unixEpoch() TimePoint {
	return MustTimePoint(TimePointSpec{Year: Int(calendar.UnixEpochYear)})
}

// SecondsSinceUnixEpoch returns the whole seconds from
// 1970-01-01T00:00:00Z to p in the current calendar, ignoring leap seconds.
// Fractions are truncated toward zero.
func (p TimePoint) SecondsSinceUnixEpoch() (int64, error) {
	if p.truncated {
		return 0, fmt.Errorf("%w: unix time of truncated time point %v", ErrUnsupported, p)
	}
	if calendar.Default().Mode() == calendar.Gregorian {
		u := p.ToUTC()
		y, doy := u.ordinalDate()
		return int64(float64(unixtime.FromOrdinal(y, doy, 0)) + u.SecondOfDay()), nil
	}
	d, err := p.Diff(unixEpoch())
	if err != nil {
		return 0, err
	}
	days, secs := d.DaysAndSeconds()
	return int64(float64(days)*calendar.SecondsInDay + secs), nil
}

// FromUnixSeconds returns the point secs seconds after
// 1970-01-01T00:00:00Z in the current calendar, expressed in zone z as a
// calendar date.
func FromUnixSeconds(secs float64, z TimeZone) TimePoint {
	if calendar.Default().Mode() != calendar.Gregorian {
		return unixEpoch().add(Seconds(secs)).ToTimeZone(z)
	}
	whole := math.Floor(secs)
	y, doy, sod := unixtime.ToOrdinal(int64(whole))
	p := TimePoint{
		set:       fYear | fDayOfYear | fHour | fMinute | fSecond,
		year:      y,
		dayOfYear: doy,
		hour:      float64(sod / calendar.SecondsInHour),
		minute:    float64(sod % calendar.SecondsInHour / calendar.SecondsInMinute),
		second:    float64(sod%calendar.SecondsInMinute) + secs - whole,
	}
	return p.ToCalendarDate().ToTimeZone(z)
}

// Now returns the current time in the local time zone.
func Now() TimePoint {
	return nowIn(LocalTimeZone())
}

// NowUTC returns the current time in UTC.
func NowUTC() TimePoint {
	return nowIn(UTC)
}

func nowIn(z TimeZone) TimePoint {
	return FromUnixSeconds(float64(time.Now().UnixNano())/1e9, z)
}

// Time converts p to a time.Time with a fixed zone. It needs the Gregorian
// calendar and a non-truncated point.
func (p TimePoint) Time() (time.Time, error) {
	if calendar.Default().Mode() != calendar.Gregorian {
		return time.Time{}, fmt.Errorf("%w: time.Time in %s calendar", ErrUnsupported, calendar.Default().Mode())
	}
	if p.truncated {
		return time.Time{}, fmt.Errorf("%w: time.Time of truncated time point %v", ErrUnsupported, p)
	}
	y, m, d := p.calendarDate()
	h, mi, s := p.hourMinuteSecond()
	whole := math.Floor(s)
	ns := int(math.Round((s - whole) * 1e9))
	loc := time.FixedZone(p.zone.Format(TimeZoneNormal), p.zone.offsetMinutes()*calendar.SecondsInMinute)
	return time.Date(y, time.Month(m), d, int(h), int(mi), int(whole), ns, loc), nil
}

// FromTime converts t to a calendar-date TimePoint in t's UTC offset.
// Seconds of the offset are dropped. It needs the Gregorian calendar.
func FromTime(t time.Time) (TimePoint, error) {
	if calendar.Default().Mode() != calendar.Gregorian {
		return TimePoint{}, fmt.Errorf("%w: time.Time in %s calendar", ErrUnsupported, calendar.Default().Mode())
	}
	_, offset := t.Zone()
	z := timeZoneFromOffset(offset)
	t = t.In(time.FixedZone("", z.offsetMinutes()*calendar.SecondsInMinute))
	return TimePoint{
		set:        fYear | fMonth | fDayOfMonth | fHour | fMinute | fSecond,
		year:       t.Year(),
		month:      int(t.Month()),
		dayOfMonth: t.Day(),
		hour:       float64(t.Hour()),
		minute:     float64(t.Minute()),
		second:     float64(t.Second()) + float64(t.Nanosecond())/1e9,
		zone:       z,
	}, nil
}
