// Package timeutil handles the naive, server-local timestamps used across the API.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	ClockLayout    = "15:04"
)

var dateTimeLayouts = []string{
	DateTimeLayout,
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

// ParseTimestamp parses a wall-clock timestamp in time.Local. RFC3339 input
// keeps its wall-clock fields and drops the offset.
func ParseTimestamp(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Naive(t), nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
}

// ParseDate parses YYYY-MM-DD as local midnight.
func ParseDate(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(raw), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}
	return t, nil
}

// Naive re-reads the wall clock of t in time.Local.
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local)
}

// Day truncates t to midnight of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Range is a half-open interval [From, To).
type Range struct {
	From time.Time
	To   time.Time
}

// Days widens the range to whole calendar days.
func (r Range) Days() Range {
	to := Day(r.To)
	if !to.Equal(r.To) {
		to = to.AddDate(0, 0, 1)
	}
	return Range{From: Day(r.From), To: to}
}

// MonthOf returns the calendar month containing now.
func MonthOf(now time.Time) Range {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Range{From: first, To: first.AddDate(0, 1, 0)}
}

// ParseRange builds a range from query values. Each bound accepts a date or
// a timestamp; a date-only end covers that whole day and a timestamp end is
// inclusive. Missing bounds fall back to the month containing now.
func ParseRange(startRaw, endRaw string, now time.Time) (Range, error) {
	r := MonthOf(now)

	if s := strings.TrimSpace(startRaw); s != "" {
		from, _, err := parseBound(s)
		if err != nil {
			return Range{}, err
		}
		r.From = from
	}
	if s := strings.TrimSpace(endRaw); s != "" {
		to, dateOnly, err := parseBound(s)
		if err != nil {
			return Range{}, err
		}
		if dateOnly {
			r.To = to.AddDate(0, 0, 1)
		} else {
			r.To = to.Add(time.Nanosecond)
		}
	}
	if r.To.Before(r.From) {
		return Range{}, fmt.Errorf("end_date is before start_date")
	}
	return r, nil
}

func parseBound(s string) (time.Time, bool, error) {
	if t, err := ParseDate(s); err == nil {
		return t, true, nil
	}
	t, err := ParseTimestamp(s)
	return t, false, err
}

// FormatHMS renders seconds as HH:MM:SS. Hours are not wrapped at 24.
func FormatHMS(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

// ISOLayout is the JSON wire format for naive timestamps.
const ISOLayout = "2006-01-02T15:04:05"

// Timestamp marshals as a naive ISO timestamp without offset.
type Timestamp time.Time

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format(ISOLayout) + `"`), nil
}

// NullableTimestamp returns nil for a nil time.
func NullableTimestamp(t *time.Time) *Timestamp {
	if t == nil {
		return nil
	}
	ts := Timestamp(*t)
	return &ts
}
