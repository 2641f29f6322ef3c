package iso8601

import (
	"fmt"
	"math"

	"github.com/teambition/rrule-go"

	"github.com/ngrash/go-isodatetime/calendar"
)

// RRule exports r as an RFC 5545 recurrence rule. It needs the Gregorian
// calendar, a start point, no min point and a duration that is either
// nominal (years and months only, starting on a day of month that exists
// in every month) or exact with whole seconds.
func (r Recurrence) RRule() (*rrule.RRule, error) {
	if m := calendar.Default().Mode(); m != calendar.Gregorian {
		return nil, fmt.Errorf("%w: recurrence rule in %s calendar", ErrUnsupported, m)
	}
	if r.start == nil {
		return nil, fmt.Errorf("%w: recurrence rule of %v without a start point", ErrUnsupported, r)
	}
	if r.min != nil {
		return nil, fmt.Errorf("%w: recurrence rule of %v with a min point", ErrUnsupported, r)
	}
	start, err := r.start.Time()
	if err != nil {
		return nil, err
	}
	opt := rrule.ROption{Dtstart: start, Count: r.repetitions}
	if r.max != nil {
		if opt.Until, err = r.max.Time(); err != nil {
			return nil, err
		}
	}

	d := Duration{}
	if r.duration != nil {
		d = *r.duration
	}
	switch {
	case r.duration == nil || d.IsZero():
		opt.Freq, opt.Interval, opt.Count = rrule.DAILY, 1, 1
	case d.InWeeks():
		opt.Freq, opt.Interval = rrule.WEEKLY, d.weeks
	case !d.IsExact():
		if d.days != 0 || d.hours != 0 || d.minutes != 0 || d.seconds != 0 {
			return nil, fmt.Errorf("%w: recurrence rule with mixed duration %v", ErrUnsupported, d)
		}
		if _, _, day := r.start.calendarDate(); day > 28 {
			return nil, fmt.Errorf("%w: monthly recurrence rule from day %d", ErrUnsupported, day)
		}
		months := d.years*calendar.MonthsInYear + d.months
		if months <= 0 {
			return nil, fmt.Errorf("%w: recurrence rule with duration %v", ErrUnsupported, d)
		}
		opt.Freq, opt.Interval = rrule.MONTHLY, months
		if months%calendar.MonthsInYear == 0 {
			opt.Freq, opt.Interval = rrule.YEARLY, months/calendar.MonthsInYear
		}
	default:
		secs := d.TotalSeconds()
		if secs != math.Trunc(secs) {
			return nil, fmt.Errorf("%w: recurrence rule with fractional seconds %v", ErrUnsupported, d)
		}
		n := int(secs)
		switch {
		case n%calendar.SecondsInDay == 0:
			opt.Freq, opt.Interval = rrule.DAILY, n/calendar.SecondsInDay
		case n%calendar.SecondsInHour == 0:
			opt.Freq, opt.Interval = rrule.HOURLY, n/calendar.SecondsInHour
		case n%calendar.SecondsInMinute == 0:
			opt.Freq, opt.Interval = rrule.MINUTELY, n/calendar.SecondsInMinute
		default:
			opt.Freq, opt.Interval = rrule.SECONDLY, n
		}
	}
	return rrule.NewRRule(opt)
}
