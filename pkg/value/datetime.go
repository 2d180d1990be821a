package value

import (
	"fmt"
	"time"
)

// Date is a calendar date with no time of day and no timezone.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate validates the calendar day and creates a Date.
func NewDate(year int, month time.Month, day int) (Date, error) {
	if month < time.January || month > time.December {
		return Date{}, newValueError("Date month must be 1-12: %d", int(month))
	}
	if day < 1 || day > daysIn(year, month) {
		return Date{}, newValueError("Date day %d is out of range for %04d-%02d", day, year, int(month))
	}
	return Date{year: year, month: month, day: day}, nil
}

// Year returns the year.
func (d Date) Year() int { return d.year }

// Month returns the month.
func (d Date) Month() time.Month { return d.month }

// Day returns the day of month.
func (d Date) Day() int { return d.day }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// Kind returns KindDate.
func (Date) Kind() Kind { return KindDate }

func (Date) sealed() {}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Time is a time of day with no date and no timezone.
type Time struct {
	hour   int
	minute int
	second int
	nanos  int
}

// NewTime validates the fields and creates a Time.
func NewTime(hour, minute, second, nanos int) (Time, error) {
	if hour < 0 || hour > 23 {
		return Time{}, newValueError("Time hour must be 0-23: %d", hour)
	}
	if minute < 0 || minute > 59 {
		return Time{}, newValueError("Time minute must be 0-59: %d", minute)
	}
	if second < 0 || second > 59 {
		return Time{}, newValueError("Time second must be 0-59: %d", second)
	}
	if nanos < 0 || nanos > 999_999_999 {
		return Time{}, newValueError("Time nanoseconds must be 0-999999999: %d", nanos)
	}
	return Time{hour: hour, minute: minute, second: second, nanos: nanos}, nil
}

// Hour returns the hour (0-23).
func (t Time) Hour() int { return t.hour }

// Minute returns the minute (0-59).
func (t Time) Minute() int { return t.minute }

// Second returns the second (0-59).
func (t Time) Second() int { return t.second }

// Nanos returns the sub-second component in nanoseconds.
func (t Time) Nanos() int { return t.nanos }

// String formats the time as hh:mm:ss with milliseconds when present.
func (t Time) String() string {
	if t.nanos == 0 {
		return fmt.Sprintf("%02d:%02d:%02d", t.hour, t.minute, t.second)
	}
	return fmt.Sprintf("%02d:%02d:%02d.%03d", t.hour, t.minute, t.second, t.nanos/1_000_000)
}

// Kind returns KindTime.
func (Time) Kind() Kind { return KindTime }

func (Time) sealed() {}

// DateTime is an instant paired with an IANA-style timezone name.
//
// The instant keeps the offset it was constructed or decoded with, so
// encode/decode round-trips reproduce the original offset. The zone
// name is the Haystack short form, e.g. "Sydney" for
// "Australia/Sydney", or "UTC".
type DateTime struct {
	instant time.Time
	tz      string
}

// NewDateTime creates a DateTime from an instant and a Haystack zone
// name. The zone name must be non-empty; the instant's own offset is
// preserved as-is.
func NewDateTime(instant time.Time, tz string) (DateTime, error) {
	if tz == "" {
		return DateTime{}, newValueError("DateTime timezone name must be non-empty")
	}
	return DateTime{instant: instant, tz: tz}, nil
}

// DateTimeFromGo creates a DateTime from a time.Time, deriving the
// Haystack zone name from the location ("America/New_York" becomes
// "New_York"; the UTC location becomes "UTC").
func DateTimeFromGo(t time.Time) DateTime {
	return DateTime{instant: t, tz: ShortTZ(t.Location().String())}
}

// Time returns the instant, offset intact.
func (dt DateTime) Time() time.Time { return dt.instant }

// TZ returns the Haystack timezone name.
func (dt DateTime) TZ() string { return dt.tz }

// Location resolves the Haystack zone name against the IANA database.
// Falls back to the instant's fixed offset when the name is unknown.
func (dt DateTime) Location() *time.Location {
	if loc, err := LoadTZ(dt.tz); err == nil {
		return loc
	}
	return dt.instant.Location()
}

// String formats the DateTime the way Zinc does: RFC 3339 followed by
// the zone name, e.g. "2010-11-28T07:23:02.773-08:00 Los_Angeles".
func (dt DateTime) String() string {
	ts := dt.instant.Format("2006-01-02T15:04:05.999999999Z07:00")
	if dt.tz == "UTC" {
		return ts + " UTC"
	}
	return ts + " " + dt.tz
}

// Kind returns KindDateTime.
func (DateTime) Kind() Kind { return KindDateTime }

func (DateTime) sealed() {}
