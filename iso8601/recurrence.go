package iso8601

import (
	"fmt"
	"iter"
	"strconv"
)

// Recurrence is a series of time points spaced by a fixed duration. It is
// built from one of three ISO 8601 forms:
//
//	1. start and the end of the first interval (R5/2020-01-01/2020-01-05),
//	3. start and duration (R5/2020-01-01/P4D),
//	4. duration and end (R5/P4D/2020-01-17).
//
// Without repetitions the series is unbounded in the direction away from
// its anchor. Min and max points further restrict which points are valid.
type Recurrence struct {
	format      int
	repetitions int
	start       *TimePoint
	end         *TimePoint
	duration    *Duration
	min, max    *TimePoint

	// second is the end of the first interval in form 1. Zero
	// repetitions mean an unbounded series.
	second *TimePoint
}

// RecurrenceSpec holds the constructor arguments of a Recurrence. Nil
// fields are absent.
type RecurrenceSpec struct {
	// Repetitions counts the points in the series, including the first.
	Repetitions *int
	Start       *TimePoint
	End         *TimePoint
	Duration    *Duration
	Min         *TimePoint
	Max         *TimePoint
}

// NewRecurrence picks the form from the fields of s and normalizes it to a
// start, duration, end and repetition count.
//
// One repetition, or a zero duration, makes a single point series. In
// form 1 the duration is the difference of the two points and, with a
// repetition count, the end becomes the last point of the series.
func NewRecurrence(s RecurrenceSpec) (Recurrence, error) {
	for _, p := range []struct {
		name string
		p    *TimePoint
	}{{"start", s.Start}, {"end", s.End}, {"min", s.Min}, {"max", s.Max}} {
		if p.p != nil && p.p.truncated {
			return Recurrence{}, fmt.Errorf("%w: %s point %v is truncated", ErrRecurrence, p.name, p.p)
		}
	}
	r := Recurrence{min: s.Min, max: s.Max, start: s.Start, end: s.End, duration: s.Duration}
	if s.Repetitions != nil {
		if *s.Repetitions <= 0 {
			return Recurrence{}, fmt.Errorf("%w: repetitions %d must be positive", ErrRecurrence, *s.Repetitions)
		}
		r.repetitions = *s.Repetitions
	}
	if s.Duration != nil && s.Duration.Less(Duration{}) {
		return Recurrence{}, fmt.Errorf("%w: duration %v is negative", ErrRecurrence, *s.Duration)
	}

	switch {
	case s.Duration == nil:
		r.format = 1
		if r.repetitions == 1 {
			if s.Start == nil {
				return Recurrence{}, fmt.Errorf("%w: single repetition needs a start point", ErrRecurrence)
			}
			r.second, r.end = s.Start, s.Start
			return r, nil
		}
		if s.Start == nil || s.End == nil {
			return Recurrence{}, fmt.Errorf("%w: need a start and end point, or a duration", ErrRecurrence)
		}
		c := s.End.compare(*s.Start)
		switch {
		case c == 0:
			r.repetitions = 1
			r.second = s.End
			return r, nil
		case c < 0:
			return Recurrence{}, fmt.Errorf("%w: end of first interval %v is before start %v", ErrRecurrence, *s.End, *s.Start)
		}
		r.second = s.End
		d, _ := s.End.Diff(*s.Start)
		r.duration = &d
		r.end = nil
		if r.repetitions > 0 {
			r.end = ptr(s.Start.add(d.Scale(r.repetitions - 1)))
		}
	case s.Start != nil && s.End == nil:
		r.format = 3
		if r.repetitions == 1 || s.Duration.Equal(Duration{}) {
			r.end, r.repetitions, r.duration = s.Start, 1, nil
		} else if r.repetitions > 0 {
			r.end = ptr(s.Start.add(s.Duration.Scale(r.repetitions - 1)))
		}
	case s.Start == nil && s.End != nil:
		r.format = 4
		if r.repetitions == 1 || s.Duration.Equal(Duration{}) {
			r.start, r.repetitions, r.duration = s.End, 1, nil
		} else if r.repetitions > 0 {
			r.start = ptr(s.End.add(s.Duration.Scale(r.repetitions - 1).Neg()))
		}
	default:
		return Recurrence{}, fmt.Errorf("%w: need exactly one of start and end point with a duration", ErrRecurrence)
	}
	return r, nil
}

func ptr[T any](v T) *T { return &v }

// Format returns the ISO 8601 recurrence form: 1, 3 or 4.
func (r Recurrence) Format() int { return r.format }

// Repetitions returns the number of points; ok is false when unbounded.
func (r Recurrence) Repetitions() (n int, ok bool) {
	return r.repetitions, r.repetitions > 0
}

func (r Recurrence) Start() (TimePoint, bool)   { return deref(r.start) }
func (r Recurrence) End() (TimePoint, bool)     { return deref(r.end) }
func (r Recurrence) Min() (TimePoint, bool)     { return deref(r.min) }
func (r Recurrence) Max() (TimePoint, bool)     { return deref(r.max) }
func (r Recurrence) Duration() (Duration, bool) { return deref(r.duration) }

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

// inBounds reports whether p lies within the series' start and end and
// within its min and max.
func (r Recurrence) inBounds(p TimePoint) bool {
	if p.truncated {
		return false
	}
	switch {
	case r.start != nil && p.compare(*r.start) < 0,
		r.min != nil && p.compare(*r.min) < 0,
		r.max != nil && p.compare(*r.max) > 0,
		r.end != nil && p.compare(*r.end) > 0:
		return false
	}
	return true
}

// Next returns the point one duration after p, if that is in bounds.
func (r Recurrence) Next(p TimePoint) (TimePoint, bool) {
	if r.repetitions == 1 || r.duration == nil || p.truncated {
		return TimePoint{}, false
	}
	q := p.add(*r.duration)
	if !r.inBounds(q) {
		return TimePoint{}, false
	}
	return q, true
}

// Prev returns the point one duration before p, if that is in bounds.
func (r Recurrence) Prev(p TimePoint) (TimePoint, bool) {
	if r.repetitions == 1 || r.duration == nil || p.truncated {
		return TimePoint{}, false
	}
	q := p.add(r.duration.Neg())
	if !r.inBounds(q) {
		return TimePoint{}, false
	}
	return q, true
}

// All yields the points of the series in bounds, forward from the start,
// or backward from the end when there is no start. It stops at the first
// point out of bounds.
func (r Recurrence) All() iter.Seq[TimePoint] {
	return func(yield func(TimePoint) bool) {
		next := r.Next
		p := r.start
		if p == nil {
			next, p = r.Prev, r.end
		}
		if p == nil || !r.inBounds(*p) {
			return
		}
		if r.repetitions == 1 || r.duration == nil || r.duration.IsZero() {
			yield(*p)
			return
		}
		for q, ok := *p, true; ok; q, ok = next(q) {
			if !yield(q) {
				return
			}
		}
	}
}

// IsValid reports whether p is a point of the series and in bounds.
func (r Recurrence) IsValid(p TimePoint) bool {
	if !r.inBounds(p) {
		return false
	}
	for q := range r.All() {
		c := q.compare(p)
		switch {
		case c == 0:
			return true
		case r.start == nil && c < 0, r.end == nil && c > 0:
			return false
		}
	}
	return false
}

// At returns the index-th point yielded by All.
func (r Recurrence) At(index int) (TimePoint, error) {
	if index < 0 {
		return TimePoint{}, outOfBounds("recurrence index", index)
	}
	i := 0
	for p := range r.All() {
		if i == index {
			return p, nil
		}
		i++
	}
	return TimePoint{}, outOfBounds("recurrence index", index)
}

// Add returns the recurrence of the same form with its anchor points
// shifted by d.
func (r Recurrence) Add(d Duration) (Recurrence, error) {
	s := RecurrenceSpec{Min: r.min, Max: r.max}
	if r.repetitions > 0 {
		s.Repetitions = Int(r.repetitions)
	}
	switch r.format {
	case 1:
		s.Start = ptr(r.start.add(d))
		s.End = ptr(r.second.add(d))
	case 3:
		s.Start = ptr(r.start.add(d))
		s.Duration = r.duration
	case 4:
		s.End = ptr(r.end.add(d))
		s.Duration = r.duration
	}
	if s.Duration == nil && r.format != 1 {
		s.Duration = &Duration{}
	}
	return NewRecurrence(s)
}

func (r Recurrence) Sub(d Duration) (Recurrence, error) {
	return r.Add(d.Neg())
}

// Equal reports whether r and o describe the same series: equal
// repetitions, start, end, duration, min and max.
func (r Recurrence) Equal(o Recurrence) bool {
	return r.repetitions == o.repetitions &&
		equalPoints(r.start, o.start) &&
		equalPoints(r.end, o.end) &&
		equalPtr(r.duration, o.duration, Duration.Equal) &&
		equalPoints(r.min, o.min) &&
		equalPoints(r.max, o.max)
}

func equalPoints(a, b *TimePoint) bool {
	return equalPtr(a, b, TimePoint.Equal)
}

func equalPtr[T any](a, b *T, eq func(T, T) bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return eq(*a, *b)
}

// String renders r as R[n]/A/B in its own form.
func (r Recurrence) String() string {
	prefix := "R/"
	if r.repetitions > 0 {
		prefix = "R" + strconv.Itoa(r.repetitions) + "/"
	}
	duration := "P0Y"
	if r.duration != nil {
		duration = r.duration.String()
	}
	switch r.format {
	case 1:
		return prefix + r.start.String() + "/" + r.second.String()
	case 3:
		return prefix + r.start.String() + "/" + duration
	case 4:
		return prefix + duration + "/" + r.end.String()
	}
	return "R/?/?"
}
