package iso8601

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ngrash/go-isodatetime/calendar"
)

func mustRecurrence(t *testing.T, s RecurrenceSpec) Recurrence {
	t.Helper()
	r, err := NewRecurrence(s)
	if err != nil {
		t.Fatalf("NewRecurrence(%+v): %v", s, err)
	}
	return r
}

// utc returns a UTC calendar date point at a whole hour.
func utc(t *testing.T, y, m, d, hh int) *TimePoint {
	t.Helper()
	return ptr(date(t, y, m, d, hh, 0, 0))
}

func dur(t *testing.T, s DurationSpec) *Duration {
	t.Helper()
	return ptr(mustDuration(t, s))
}

// firstPoints renders up to n points of r.
func firstPoints(r Recurrence, n int) []string {
	var out []string
	for p := range r.All() {
		if len(out) == n {
			break
		}
		out = append(out, p.String())
	}
	return out
}

func TestRecurrenceExpansion(t *testing.T) {
	cases := []struct {
		name string
		in   RecurrenceSpec
		want []string
	}{
		{
			"R5/2020-01-01T00Z/2020-01-05T00Z",
			RecurrenceSpec{Repetitions: Int(5), Start: utc(t, 2020, 1, 1, 0), End: utc(t, 2020, 1, 5, 0)},
			[]string{"2020-01-01T00:00:00Z", "2020-01-05T00:00:00Z", "2020-01-09T00:00:00Z", "2020-01-13T00:00:00Z", "2020-01-17T00:00:00Z"},
		},
		{
			"R3/1001-W01-1T00Z/1002-W52-6T00-05:30",
			RecurrenceSpec{
				Repetitions: Int(3),
				Start:       ptr(mustPoint(t, TimePointSpec{Year: Int(1001), WeekOfYear: Int(1), DayOfWeek: Int(1)})),
				End:         ptr(mustPoint(t, TimePointSpec{Year: Int(1002), WeekOfYear: Int(52), DayOfWeek: Int(6), TimeZoneHour: Int(-5), TimeZoneMinute: Int(-30)})),
			},
			[]string{"1001-W01-1T00:00:00Z", "1002-W52-6T05:30:00Z", "1005-W01-4T11:00:00Z"},
		},
		{
			"R3/P700D/1957-W01-1T06,5Z",
			RecurrenceSpec{
				Repetitions: Int(3),
				Duration:    ptr(Days(700)),
				End:         ptr(mustPoint(t, TimePointSpec{Year: Int(1957), WeekOfYear: Int(1), DayOfWeek: Int(1), HourOfDay: Int(6), HourOfDayDecimal: Float(0.5)})),
			},
			[]string{"1953-W10-1T06,5Z", "1955-W05-1T06,5Z", "1957-W01-1T06,5Z"},
		},
		{
			"R3/P5DT2,5S/1001-W11-1T00:30:02,5-02:00",
			RecurrenceSpec{
				Repetitions: Int(3),
				Duration:    dur(t, DurationSpec{Days: 5, Seconds: 2.5}),
				End: ptr(mustPoint(t, TimePointSpec{
					Year: Int(1001), WeekOfYear: Int(11), DayOfWeek: Int(1),
					HourOfDay: Int(0), MinuteOfHour: Int(30), SecondOfMinute: Int(2), SecondOfMinuteDecimal: Float(0.5),
					TimeZoneHour: Int(-2),
				})),
			},
			[]string{"1001-W09-5T00:29:57,5-02:00", "1001-W10-3T00:30:00-02:00", "1001-W11-1T00:30:02,5-02:00"},
		},
		{
			"R/+000001-W45-7T06Z/P4M1D",
			RecurrenceSpec{
				Start:    ptr(mustPoint(t, TimePointSpec{ExpandedYearDigits: 2, Year: Int(1), WeekOfYear: Int(45), DayOfWeek: Int(7), HourOfDay: Int(6)})),
				Duration: dur(t, DurationSpec{Months: 4, Days: 1}),
			},
			[]string{"+000001-W45-7T06:00:00Z", "+000002-W11-2T06:00:00Z", "+000002-W28-6T06:00:00Z"},
		},
		{
			"R/P4M1DT6M/+002302-002T06:00:00-00:30",
			RecurrenceSpec{
				Duration: dur(t, DurationSpec{Months: 4, Days: 1, Minutes: 6}),
				End:      ptr(mustPoint(t, TimePointSpec{ExpandedYearDigits: 2, Year: Int(2302), DayOfYear: Int(2), HourOfDay: Int(6), TimeZoneHour: Int(0), TimeZoneMinute: Int(-30)})),
			},
			[]string{"+002302-002T06:00:00-00:30", "+002301-244T05:54:00-00:30", "+002301-120T05:48:00-00:30"},
		},
		{
			"R/P30Y2DT15H/-099994-02-12T17:00:00-02:30",
			RecurrenceSpec{
				Duration: dur(t, DurationSpec{Years: 30, Days: 2, Hours: 15}),
				End: ptr(mustPoint(t, TimePointSpec{
					ExpandedYearDigits: 2, Year: Int(-99994), MonthOfYear: Int(2), DayOfMonth: Int(12),
					HourOfDay: Int(17), TimeZoneHour: Int(-2), TimeZoneMinute: Int(-30),
				})),
			},
			[]string{"-099994-02-12T17:00:00-02:30", "-100024-02-10T02:00:00-02:30", "-100054-02-07T11:00:00-02:30"},
		},
		{
			"R/-100024-02-10T17:00:00-12:30/PT5,5H",
			RecurrenceSpec{
				Start: ptr(mustPoint(t, TimePointSpec{
					ExpandedYearDigits: 2, Year: Int(-100024), MonthOfYear: Int(2), DayOfMonth: Int(10),
					HourOfDay: Int(17), TimeZoneHour: Int(-12), TimeZoneMinute: Int(-30),
				})),
				Duration: ptr(Hours(5.5)),
			},
			[]string{"-100024-02-10T17:00:00-12:30", "-100024-02-10T22:30:00-12:30", "-100024-02-11T04:00:00-12:30"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := mustRecurrence(t, c.in)
			if diff := cmp.Diff(c.want, firstPoints(r, len(c.want))); diff != "" {
				t.Errorf("All() mismatch (-want +got):\n%s", diff)
			}

			forward, backward := r.Next, r.Prev
			if _, ok := r.Start(); !ok {
				forward, backward = r.Prev, r.Next
			}
			first, err := r.At(0)
			if err != nil {
				t.Fatal(err)
			}
			got := []string{first.String()}
			for p := first; len(got) < len(c.want); {
				var ok bool
				if p, ok = forward(p); !ok {
					t.Fatalf("no point after %v", got[len(got)-1])
				}
				got = append(got, p.String())
			}
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("stepping mismatch (-want +got):\n%s", diff)
			}
			if p, ok := backward(first); ok {
				t.Errorf("point %v before the first point %v", p, first)
			}
		})
	}
}

func TestRecurrenceAt(t *testing.T) {
	r := mustRecurrence(t, RecurrenceSpec{Repetitions: Int(5), Start: utc(t, 2020, 1, 1, 0), Duration: ptr(Days(4))})
	p, err := r.At(2)
	if err != nil {
		t.Fatal(err)
	}
	if s := p.String(); s != "2020-01-09T00:00:00Z" {
		t.Errorf("At(2) = %q", s)
	}
	for _, i := range []int{-1, 5} {
		if _, err := r.At(i); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("At(%d) error = %v, want %v", i, err, ErrOutOfBounds)
		}
	}
}

func TestRecurrenceBounds(t *testing.T) {
	r := mustRecurrence(t, RecurrenceSpec{Start: utc(t, 2020, 1, 1, 0), Duration: ptr(Days(1)), Max: utc(t, 2020, 1, 3, 12)})
	want := []string{"2020-01-01T00:00:00Z", "2020-01-02T00:00:00Z", "2020-01-03T00:00:00Z"}
	if diff := cmp.Diff(want, firstPoints(r, 10)); diff != "" {
		t.Errorf("max bounded mismatch (-want +got):\n%s", diff)
	}

	r = mustRecurrence(t, RecurrenceSpec{End: utc(t, 2020, 1, 10, 0), Duration: ptr(Days(1)), Min: utc(t, 2020, 1, 8, 0)})
	want = []string{"2020-01-10T00:00:00Z", "2020-01-09T00:00:00Z", "2020-01-08T00:00:00Z"}
	if diff := cmp.Diff(want, firstPoints(r, 10)); diff != "" {
		t.Errorf("min bounded mismatch (-want +got):\n%s", diff)
	}

	r = mustRecurrence(t, RecurrenceSpec{Start: utc(t, 2020, 1, 1, 0), Duration: ptr(Days(1)), Min: utc(t, 2020, 2, 1, 0)})
	if got := firstPoints(r, 10); len(got) != 0 {
		t.Errorf("start below min yields %v", got)
	}
}

func TestRecurrenceIsValid(t *testing.T) {
	fmt1 := mustRecurrence(t, RecurrenceSpec{Repetitions: Int(5), Start: utc(t, 2020, 1, 1, 0), End: utc(t, 2020, 1, 5, 0)})
	weekly := mustRecurrence(t, RecurrenceSpec{
		Repetitions: Int(3),
		Start:       ptr(mustPoint(t, TimePointSpec{Year: Int(1001), WeekOfYear: Int(1), DayOfWeek: Int(1)})),
		End:         ptr(mustPoint(t, TimePointSpec{Year: Int(1002), WeekOfYear: Int(52), DayOfWeek: Int(6), TimeZoneHour: Int(-5), TimeZoneMinute: Int(-30)})),
	})
	backward := mustRecurrence(t, RecurrenceSpec{
		Repetitions: Int(3),
		Duration:    ptr(Days(700)),
		End:         ptr(mustPoint(t, TimePointSpec{Year: Int(1957), WeekOfYear: Int(1), DayOfWeek: Int(1), HourOfDay: Int(6), HourOfDayDecimal: Float(0.5)})),
	})
	week := func(y, w, d, hh, mm, zh int) TimePoint {
		return mustPoint(t, TimePointSpec{Year: Int(y), WeekOfYear: Int(w), DayOfWeek: Int(d), HourOfDay: Int(hh), MinuteOfHour: Int(mm), TimeZoneHour: Int(zh)})
	}
	halfPast := func(s TimePointSpec, h int) TimePoint {
		s.HourOfDay, s.HourOfDayDecimal = Int(h), Float(0.5)
		return mustPoint(t, s)
	}

	cases := []struct {
		r    Recurrence
		p    TimePoint
		want bool
	}{
		{fmt1, *utc(t, 2020, 1, 2, 0), false},
		{fmt1, *utc(t, 2020, 1, 17, 0), true},
		{fmt1, *utc(t, 2020, 1, 21, 0), false},

		{weekly, week(1001, 1, 1, 0, 0, 0), true},
		{weekly, *utc(t, 1000, 12, 29, 0), true},
		{weekly, date(t, 901, 7, 8, 12, 45, 0), false},
		{weekly, week(1001, 1, 2, 0, 0, 0), false},
		{weekly, week(1002, 52, 6, 5, 30, 0), true},
		{weekly, week(1002, 52, 6, 3, 30, -2), true},
		{weekly, week(1002, 52, 6, 7, 30, 2), true},
		{weekly, week(1005, 1, 4, 11, 0, 0), true},
		{weekly, *utc(t, 1003, 1, 1, 0), false},

		{backward, halfPast(TimePointSpec{Year: Int(1953), WeekOfYear: Int(10), DayOfWeek: Int(1)}, 6), true},
		{backward, halfPast(TimePointSpec{Year: Int(1953), MonthOfYear: Int(3), DayOfMonth: Int(2)}, 6), true},
		{backward, halfPast(TimePointSpec{Year: Int(1952), MonthOfYear: Int(3), DayOfMonth: Int(2)}, 6), false},
		{backward, halfPast(TimePointSpec{Year: Int(1955), WeekOfYear: Int(5), DayOfWeek: Int(1)}, 6), true},
		{backward, halfPast(TimePointSpec{Year: Int(1957), WeekOfYear: Int(1), DayOfWeek: Int(1)}, 6), true},
		{backward, halfPast(TimePointSpec{Year: Int(1956), DayOfYear: Int(366)}, 6), true},
		{backward, halfPast(TimePointSpec{Year: Int(1956), DayOfYear: Int(356)}, 4), false},
	}
	for _, c := range cases {
		if got := c.r.IsValid(c.p); got != c.want {
			t.Errorf("%v.IsValid(%v) = %v, want %v", c.r, c.p, got, c.want)
		}
	}

	trunc := mustPoint(t, TimePointSpec{Truncated: true, DayOfMonth: Int(1)})
	if fmt1.IsValid(trunc) {
		t.Errorf("%v.IsValid(%v) = true", fmt1, trunc)
	}
}

func TestRecurrenceEqual(t *testing.T) {
	ord := func(y, d, h int) *TimePoint {
		return ptr(mustPoint(t, TimePointSpec{Year: Int(y), DayOfYear: Int(d), HourOfDay: Int(h)}))
	}
	mk := func(s RecurrenceSpec) Recurrence { return mustRecurrence(t, s) }
	base := mk(RecurrenceSpec{Repetitions: Int(5), Start: ord(2020, 36, 0), Duration: ptr(Minutes(15))})
	fmt1 := mk(RecurrenceSpec{Repetitions: Int(5), Start: ord(2020, 1, 0), End: ord(2020, 5, 0)})
	hourly := mk(RecurrenceSpec{Start: utc(t, 2020, 2, 7, 9), End: utc(t, 2020, 2, 7, 10)})

	cases := []struct {
		name string
		a, b Recurrence
		want bool
	}{
		{"same", base, mk(RecurrenceSpec{Repetitions: Int(5), Start: ord(2020, 36, 0), Duration: ptr(Minutes(15))}), true},
		{"repetitions", base, mk(RecurrenceSpec{Repetitions: Int(4), Start: ord(2020, 36, 0), Duration: ptr(Minutes(15))}), false},
		{"start", base, mk(RecurrenceSpec{Repetitions: Int(5), Start: ord(2020, 36, 1), Duration: ptr(Minutes(15))}), false},
		{"duration", base, mk(RecurrenceSpec{Repetitions: Int(5), Start: ord(2020, 36, 0), Duration: ptr(Minutes(14))}), false},

		{"form 3 and 4",
			mk(RecurrenceSpec{Repetitions: Int(4), Start: utc(t, 2020, 1, 1, 0), Duration: ptr(Days(1))}),
			mk(RecurrenceSpec{Repetitions: Int(4), Duration: ptr(Days(1)), End: utc(t, 2020, 1, 4, 0)}), true},
		{"unbounded form 3 and 4",
			mk(RecurrenceSpec{Start: utc(t, 2020, 1, 1, 0), Duration: ptr(Days(1))}),
			mk(RecurrenceSpec{Duration: ptr(Days(1)), End: utc(t, 2020, 1, 4, 0)}), false},

		{"form 1 and 3", fmt1, mk(RecurrenceSpec{Repetitions: Int(5), Start: ord(2020, 1, 0), Duration: ptr(Days(4))}), true},
		{"unbounded form 1 and 3", hourly, mk(RecurrenceSpec{Start: utc(t, 2020, 2, 7, 9), Duration: ptr(Hours(1))}), true},
		{"form 1 and 4 at second point", fmt1, mk(RecurrenceSpec{Repetitions: Int(5), Duration: ptr(Days(4)), End: ord(2020, 5, 0)}), false},
		{"form 1 and 4 at last point", fmt1, mk(RecurrenceSpec{Repetitions: Int(5), Duration: ptr(Days(4)), End: ord(2020, 17, 0)}), true},
		{"unbounded form 1 and 4", hourly, mk(RecurrenceSpec{Duration: ptr(Hours(1)), End: utc(t, 2020, 2, 7, 10)}), false},

		{"other zone and units",
			mk(RecurrenceSpec{Repetitions: Int(3), Start: utc(t, 2020, 5, 1, 16), Duration: ptr(Hours(3))}),
			mk(RecurrenceSpec{
				Repetitions: Int(3),
				Start: ptr(mustPoint(t, TimePointSpec{
					Year: Int(2020), WeekOfYear: Int(18), DayOfWeek: Int(5),
					HourOfDay: Int(18), MinuteOfHour: Int(30), TimeZoneHour: Int(2), TimeZoneMinute: Int(30),
				})),
				Duration: ptr(Minutes(180)),
			}), true},
		{"single repetition",
			mk(RecurrenceSpec{
				Repetitions: Int(27),
				Start:       utc(t, 2020, 10, 8, 0),
				End:         ptr(mustPoint(t, TimePointSpec{Year: Int(2020), MonthOfYear: Int(10), DayOfMonth: Int(8), HourOfDay: Int(4), TimeZoneHour: Int(4)})),
			}),
			mk(RecurrenceSpec{Repetitions: Int(1), Start: utc(t, 2020, 10, 8, 0), End: utc(t, 2020, 10, 8, 0)}), true},
	}
	for _, c := range cases {
		if got := c.a.Equal(c.b); got != c.want {
			t.Errorf("%s: %v.Equal(%v) = %v, want %v", c.name, c.a, c.b, got, c.want)
		}
		if got := c.b.Equal(c.a); got != c.want {
			t.Errorf("%s: %v.Equal(%v) = %v, want %v", c.name, c.b, c.a, got, c.want)
		}
		if _, ok := c.a.Repetitions(); !ok {
			continue
		}
		if _, ok := c.b.Repetitions(); !ok {
			continue
		}
		same := cmp.Diff(firstPoints(c.a, 100), firstPoints(c.b, 100)) == ""
		if c.want && !same {
			t.Errorf("%s: equal recurrences %v and %v yield different points", c.name, c.a, c.b)
		}
	}
}

func TestRecurrenceAdd(t *testing.T) {
	start := utc(t, 2020, 3, 13, 0)
	week := ptr(Days(7))
	forms := []Recurrence{
		mustRecurrence(t, RecurrenceSpec{Repetitions: Int(4), Start: start, End: utc(t, 2020, 3, 20, 0)}),
		mustRecurrence(t, RecurrenceSpec{Repetitions: Int(4), Start: start, Duration: week}),
		mustRecurrence(t, RecurrenceSpec{Repetitions: Int(4), Duration: week, End: utc(t, 2020, 4, 3, 0)}),
	}
	if !forms[0].Equal(forms[1]) || !forms[1].Equal(forms[2]) {
		t.Fatalf("forms differ: %v, %v, %v", forms[0], forms[1], forms[2])
	}

	offset := mustDuration(t, DurationSpec{Hours: 9, Minutes: 59})
	later := mustRecurrence(t, RecurrenceSpec{Repetitions: Int(4), Start: ptr(start.add(offset)), Duration: week})
	earlier := mustRecurrence(t, RecurrenceSpec{Repetitions: Int(4), Start: ptr(start.add(offset.Neg())), Duration: week})
	for _, r := range forms {
		got, err := r.Add(offset)
		if err != nil {
			t.Fatal(err)
		}
		if !got.Equal(later) {
			t.Errorf("%v + %v = %v, want %v", r, offset, got, later)
		}
		if got.Format() != r.Format() {
			t.Errorf("%v + %v changed form to %d", r, offset, got.Format())
		}
		got, err = r.Sub(offset)
		if err != nil {
			t.Fatal(err)
		}
		if !got.Equal(earlier) {
			t.Errorf("%v - %v = %v, want %v", r, offset, got, earlier)
		}
	}

	single := mustRecurrence(t, RecurrenceSpec{Repetitions: Int(1), Start: start, Duration: week})
	got, err := single.Add(offset)
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := got.Repetitions(); n != 1 || got.Format() != 3 {
		t.Errorf("single point %v + %v = %v", single, offset, got)
	}
}

func TestNewRecurrenceInvalid(t *testing.T) {
	start := ptr(mustPoint(t, TimePointSpec{Year: Int(2020), DayOfMonth: Int(9)}))
	end := ptr(mustPoint(t, TimePointSpec{Year: Int(2020), DayOfMonth: Int(30)}))
	d := ptr(Hours(36))

	cases := []RecurrenceSpec{
		{Repetitions: Int(0), Start: start, Duration: d},
		{Repetitions: Int(-2), Start: start, Duration: d},
		{Start: ptr(mustPoint(t, TimePointSpec{Truncated: true, DayOfMonth: Int(9)})), Duration: d},
	}
	for _, reps := range []*int{Int(4), nil} {
		cases = append(cases,
			RecurrenceSpec{Repetitions: reps, Start: start, End: end, Duration: d},
			RecurrenceSpec{Repetitions: reps, Start: start},
			RecurrenceSpec{Repetitions: reps, End: end},
			RecurrenceSpec{Repetitions: reps, Duration: d},
			RecurrenceSpec{Repetitions: reps, Start: start, Duration: ptr(Minutes(-20))},
			RecurrenceSpec{Repetitions: reps, Start: end, End: start},
		)
	}
	for _, s := range cases {
		if _, err := NewRecurrence(s); !errors.Is(err, ErrRecurrence) {
			t.Errorf("NewRecurrence(%+v) error = %v, want %v", s, err, ErrRecurrence)
		}
	}
}

func TestRecurrenceString(t *testing.T) {
	cases := []struct {
		in   RecurrenceSpec
		want string
	}{
		{RecurrenceSpec{Repetitions: Int(5), Start: utc(t, 2020, 1, 1, 0), End: utc(t, 2020, 1, 5, 0)}, "R5/2020-01-01T00:00:00Z/2020-01-05T00:00:00Z"},
		{RecurrenceSpec{Repetitions: Int(5), Start: utc(t, 2020, 1, 1, 0), Duration: ptr(Days(4))}, "R5/2020-01-01T00:00:00Z/P4D"},
		{RecurrenceSpec{Duration: ptr(Days(1)), End: utc(t, 2020, 1, 4, 0)}, "R/P1D/2020-01-04T00:00:00Z"},
		{RecurrenceSpec{Repetitions: Int(1), Start: utc(t, 2020, 1, 1, 0), Duration: ptr(Days(4))}, "R1/2020-01-01T00:00:00Z/P0Y"},
	}
	for _, c := range cases {
		if got := mustRecurrence(t, c.in).String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestRecurrenceAlternateCalendars(t *testing.T) {
	days := func(n int) *Duration { return ptr(Days(n)) }
	type expansion struct {
		in   func(t *testing.T) RecurrenceSpec
		want []string
	}
	from := func(reps, y, m, d int, step *Duration) func(*testing.T) RecurrenceSpec {
		return func(t *testing.T) RecurrenceSpec {
			return RecurrenceSpec{Repetitions: Int(reps), Start: utc(t, y, m, d, 0), Duration: step}
		}
	}
	until := func(reps int, step *Duration, y, m, d int) func(*testing.T) RecurrenceSpec {
		return func(t *testing.T) RecurrenceSpec {
			return RecurrenceSpec{Repetitions: Int(reps), Duration: step, End: utc(t, y, m, d, 0)}
		}
	}
	monthly := func(y, day int) []string {
		var out []string
		for i := 0; i < 13; i++ {
			out = append(out, fmt.Sprintf("%04d-%02d-%02dT00:00:00Z", y+i/12, i%12+1, day))
		}
		return out
	}
	month, year := ptr(Months(1)), ptr(Years(1))
	yearDay := ptr(mustDuration(t, DurationSpec{Years: 1, Days: 1}))

	cases := map[calendar.Mode][]expansion{
		calendar.Mode360Day: {
			{from(13, 1984, 1, 30, month), monthly(1984, 30)},
			{from(2, 1984, 1, 30, days(1)), []string{"1984-01-30T00:00:00Z", "1984-02-01T00:00:00Z"}},
			{until(2, days(1), 1984, 2, 1), []string{"1984-01-30T00:00:00Z", "1984-02-01T00:00:00Z"}},
			{until(2, days(1), 1984, 1, 1), []string{"1983-12-30T00:00:00Z", "1984-01-01T00:00:00Z"}},
			{from(2, 1983, 12, 30, days(1)), []string{"1983-12-30T00:00:00Z", "1984-01-01T00:00:00Z"}},
			{until(2, days(1), 2005, 1, 1), []string{"2004-12-30T00:00:00Z", "2005-01-01T00:00:00Z"}},
			{from(2, 2003, 12, 30, days(1)), []string{"2003-12-30T00:00:00Z", "2004-01-01T00:00:00Z"}},
			{until(3, year, 2005, 2, 30), []string{"2003-02-30T00:00:00Z", "2004-02-30T00:00:00Z", "2005-02-30T00:00:00Z"}},
			{from(3, 2003, 2, 30, year), []string{"2003-02-30T00:00:00Z", "2004-02-30T00:00:00Z", "2005-02-30T00:00:00Z"}},
		},
		calendar.Mode365Day: {
			{from(13, 1985, 1, 30, month), append([]string{"1985-01-30T00:00:00Z"}, monthly(1985, 28)[1:]...)},
			{from(2, 1984, 1, 30, days(1)), []string{"1984-01-30T00:00:00Z", "1984-01-31T00:00:00Z"}},
			{until(2, days(1), 1984, 2, 1), []string{"1984-01-31T00:00:00Z", "1984-02-01T00:00:00Z"}},
			{until(2, days(1), 1984, 1, 1), []string{"1983-12-31T00:00:00Z", "1984-01-01T00:00:00Z"}},
			{from(2, 2000, 2, 28, yearDay), []string{"2000-02-28T00:00:00Z", "2001-03-01T00:00:00Z"}},
			{from(2, 2001, 2, 28, yearDay), []string{"2001-02-28T00:00:00Z", "2002-03-01T00:00:00Z"}},
		},
		calendar.Mode366Day: {
			{from(13, 1985, 1, 30, month), append([]string{"1985-01-30T00:00:00Z"}, monthly(1985, 29)[1:]...)},
			{from(2, 1983, 12, 30, days(1)), []string{"1983-12-30T00:00:00Z", "1983-12-31T00:00:00Z"}},
			{from(2, 1999, 2, 28, yearDay), []string{"1999-02-28T00:00:00Z", "2000-02-29T00:00:00Z"}},
			{from(2, 2001, 2, 28, yearDay), []string{"2001-02-28T00:00:00Z", "2002-02-29T00:00:00Z"}},
		},
	}
	for mode, tests := range cases {
		t.Run(string(mode), func(t *testing.T) {
			setMode(t, mode)
			for _, c := range tests {
				r := mustRecurrence(t, c.in(t))
				var got []string
				for p := range r.All() {
					got = append(got, p.String())
				}
				if diff := cmp.Diff(c.want, got); diff != "" {
					t.Errorf("%v mismatch (-want +got):\n%s", r, diff)
				}
			}
		})
	}
}
