package iso8601

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// String renders p in extended ISO 8601 form, such as
// 2020-02-29T06:30:00Z, 2020-060T06,5+01:00 or 2020-W09-6T06:30:15,25Z.
// Truncated points render their present units only, such as --02-29,
// -W-6 or T-30.
func (p TimePoint) String() string {
	if p.truncated {
		return p.truncatedString()
	}
	var b strings.Builder
	b.WriteString(p.yearString())
	switch p.Form() {
	case CalendarForm:
		fmt.Fprintf(&b, "-%02d-%02d", p.month, p.dayOfMonth)
	case OrdinalForm:
		fmt.Fprintf(&b, "-%03d", p.dayOfYear)
	case WeekForm:
		fmt.Fprintf(&b, "-W%02d-%d", p.week, p.dayOfWeek)
	}
	fmt.Fprintf(&b, "T%02d", int(p.hour))
	switch {
	case !p.has(fMinute):
		b.WriteString("," + fractionDigits(p.hour))
	case !p.has(fSecond):
		fmt.Fprintf(&b, ":%02d,%s", int(p.minute), fractionDigits(p.minute))
	default:
		fmt.Fprintf(&b, ":%02d:%02d", int(p.minute), int(p.second))
		if p.second != math.Trunc(p.second) {
			b.WriteString("," + fractionDigits(p.second))
		}
	}
	b.WriteString(p.zone.String())
	return b.String()
}

// yearString pads the year to four digits plus the expanded digits. An
// expanded year always carries a sign.
func (p TimePoint) yearString() string {
	width := 4 + p.expandedDigits
	switch {
	case p.expandedDigits > 0 && p.year < 0:
		return fmt.Sprintf("-%0*d", width, -p.year)
	case p.expandedDigits > 0:
		return fmt.Sprintf("+%0*d", width, p.year)
	case p.year < 0:
		return fmt.Sprintf("-%0*d", width, -p.year)
	default:
		return fmt.Sprintf("%0*d", width, p.year)
	}
}

func (p TimePoint) truncatedString() string {
	year := "-"
	switch p.truncatedProperty {
	case PropYearOfDecade:
		year = fmt.Sprintf("-%d", floorMod(p.year, 10))
	case PropYearOfCentury:
		year = fmt.Sprintf("%02d", floorMod(p.year, 100))
		if p.has(fMonth) && !p.has(fDayOfMonth) {
			year = "-" + year
		}
	}
	// sep joins the year part to the following date unit.
	sep := "-"
	if year == "-" {
		sep = ""
	}

	date := year
	switch {
	case p.has(fMonth):
		date = fmt.Sprintf("%s-%02d", year, p.month)
		if p.has(fDayOfMonth) {
			date += fmt.Sprintf("-%02d", p.dayOfMonth)
		}
	case p.has(fDayOfMonth) && year == "-":
		date = fmt.Sprintf("---%02d", p.dayOfMonth)
	case p.has(fDayOfMonth):
		date = fmt.Sprintf("%s-%02d", year, p.dayOfMonth)
	}
	if p.has(fDayOfYear) {
		date = fmt.Sprintf("%s%s%03d", year, sep, p.dayOfYear)
	}
	switch {
	case p.has(fWeek):
		date = fmt.Sprintf("%s%sW%02d", year, sep, p.week)
		if p.has(fDayOfWeek) {
			date += fmt.Sprintf("-%d", p.dayOfWeek)
		}
	case p.has(fDayOfWeek):
		date = fmt.Sprintf("%s%sW-%d", year, sep, p.dayOfWeek)
	}

	var t strings.Builder
	switch {
	case !p.has(fHour) && (p.has(fMinute) || p.has(fSecond)):
		t.WriteString("T-")
	case p.has(fHour) && p.hour != math.Trunc(p.hour):
		fmt.Fprintf(&t, "T%02d,%s", int(p.hour), fractionDigits(p.hour))
	case p.has(fHour):
		fmt.Fprintf(&t, "T%02d", int(p.hour))
	}
	switch {
	case !p.has(fMinute) && p.has(fSecond):
		t.WriteString("-")
	case p.has(fMinute):
		if p.has(fHour) {
			t.WriteString(":")
		}
		fmt.Fprintf(&t, "%02d", int(p.minute))
		if p.minute != math.Trunc(p.minute) {
			t.WriteString("," + fractionDigits(p.minute))
		}
	}
	if p.has(fSecond) {
		if p.has(fMinute) {
			t.WriteString(":")
		}
		fmt.Fprintf(&t, "%02d", int(p.second))
		if p.second != math.Trunc(p.second) {
			t.WriteString("," + fractionDigits(p.second))
		}
	}
	clock := t.String()
	if clock != "" {
		clock += p.zone.String()
	}

	switch date {
	case "-":
		date = ""
	case year:
		if p.truncatedProperty == PropYearOfCentury {
			// A bare two digit year would read as a century.
			date = "-" + date
			clock = strings.ReplaceAll(clock, ":", "")
		}
	}
	return date + clock
}

// fractionDigits returns the digits after the decimal point of v, rounded
// to six places without carrying into the integer part.
func fractionDigits(v float64) string {
	frac := v - math.Trunc(v)
	if frac >= 0.9999995 {
		return "999999"
	}
	s := decimal.NewFromFloat(frac).StringFixed(6)
	_, digits, _ := strings.Cut(s, ".")
	digits = strings.TrimRight(digits, "0")
	if digits == "" {
		return "0"
	}
	return digits
}
