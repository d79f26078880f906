package bizday

import (
	"errors"
	"strings"
	"time"
)

// Location is the fixed business timezone (UTC+9). It is a fixed offset on
// purpose so day attribution never depends on the host tzdata.
var Location = time.FixedZone("JST", 9*60*60)

const DateLayout = "2006-01-02"

var ErrInvalidInstant = errors.New("invalid timestamp")

// naiveLayouts carry no offset and are interpreted as business-local wall clock.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ToUTC converts a zoned instant to UTC.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// FromLocalClock takes the wall clock of t as business-local time and
// returns the matching UTC instant. Any zone attached to t is ignored.
func FromLocalClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), Location).UTC()
}

// ParseInstant parses an RFC3339 timestamp (zoned) or one of the offset-less
// layouts (naive, read as UTC+9) and returns it in UTC.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ToUTC(t), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FromLocalClock(t), nil
		}
	}
	return time.Time{}, ErrInvalidInstant
}

// Of returns the business day an instant belongs to, as a date at 00:00 UTC.
func Of(t time.Time) time.Time {
	local := t.In(Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// Today is the business day of now.
func Today(now time.Time) time.Time {
	return Of(now)
}

// ParseDate parses YYYY-MM-DD into a date at 00:00 UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// FormatDate renders a business day as YYYY-MM-DD.
func FormatDate(day time.Time) string {
	return day.Format(DateLayout)
}

// DayBounds returns the UTC instants [start, end) covered by a business day.
func DayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, Location)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

// NormalizeRange swaps from and to when they are reversed.
func NormalizeRange(from, to time.Time) (time.Time, time.Time) {
	if to.Before(from) {
		return to, from
	}
	return from, to
}

// Days lists every calendar date in [from, to], ascending.
func Days(from, to time.Time) []time.Time {
	from, to = NormalizeRange(dateOnly(from), dateOnly(to))
	days := make([]time.Time, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// WeekOf returns the Monday..Sunday week containing day.
func WeekOf(day time.Time) (time.Time, time.Time) {
	day = dateOnly(day)
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// MonthOf returns the first and last date of the calendar month containing day.
func MonthOf(day time.Time) (time.Time, time.Time) {
	first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
