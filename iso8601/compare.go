package iso8601

import (
	"cmp"
	"fmt"
)

// Compare returns -1, 0 or +1 as p is before, at or after q.
//
// Non-truncated points are compared as instants, after expressing q in p's
// zone. Truncated points compare only with truncated points holding the
// same units, field by field from the largest; any other pairing is
// ErrUnsupported.
func (p TimePoint) Compare(q TimePoint) (int, error) {
	if p.truncated != q.truncated {
		return 0, fmt.Errorf("%w: compare truncated and non-truncated time points %v and %v", ErrUnsupported, p, q)
	}
	if !p.truncated {
		return p.compare(q), nil
	}
	if p.set != q.set || p.truncatedProperty != q.truncatedProperty || p.zone.unknown != q.zone.unknown {
		return 0, fmt.Errorf("%w: compare truncated time points %v and %v with different units", ErrUnsupported, p, q)
	}
	for _, c := range []int{
		cmp.Compare(p.expandedDigits, q.expandedDigits),
		cmp.Compare(p.year, q.year),
		cmp.Compare(p.month, q.month),
		cmp.Compare(p.dayOfYear, q.dayOfYear),
		cmp.Compare(p.dayOfMonth, q.dayOfMonth),
		cmp.Compare(p.dayOfWeek, q.dayOfWeek),
		cmp.Compare(p.week, q.week),
		cmp.Compare(p.hour, q.hour),
		cmp.Compare(p.minute, q.minute),
		cmp.Compare(p.second, q.second),
		cmp.Compare(p.zone.offsetMinutes(), q.zone.offsetMinutes()),
	} {
		if c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

// compare orders two non-truncated points.
func (p TimePoint) compare(q TimePoint) int {
	q = q.ToTimeZone(p.zone)
	var a, b [3]int
	if p.Form() == CalendarForm {
		a[0], a[1], a[2] = p.calendarDate()
		b[0], b[1], b[2] = q.calendarDate()
	} else {
		a[0], a[1] = p.ordinalDate()
		b[0], b[1] = q.ordinalDate()
	}
	for i := range a {
		if c := cmp.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(p.SecondOfDay(), q.SecondOfDay())
}

// Equal reports whether p and q compare equal. Points that cannot be
// compared are not equal.
func (p TimePoint) Equal(q TimePoint) bool {
	c, err := p.Compare(q)
	return err == nil && c == 0
}

// Before and After report the order of two comparable points.
func (p TimePoint) Before(q TimePoint) bool {
	c, err := p.Compare(q)
	return err == nil && c < 0
}

func (p TimePoint) After(q TimePoint) bool {
	c, err := p.Compare(q)
	return err == nil && c > 0
}
