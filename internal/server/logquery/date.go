package logquery

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// DateLayout renders a date as day-of-week, month, day and year.
const DateLayout = "Mon Jan 02 2006"

// ErrInvalidDate is returned by ParseDate for input in no supported format.
var ErrInvalidDate = errors.New("invalid date")

var inputLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01",
	DateLayout,
	"Mon Jan 2 2006",
}

// yearDigits is the length of a bare year; longer digit strings are Unix
// milliseconds.
const yearDigits = 4

// RenderDate formats t in UTC using DateLayout, dropping the time of day.
func RenderDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate accepts a calendar date (2006-01-02, 2006-1-2, 2006-01 or a
// bare 2006), an RFC 3339 timestamp, a local timestamp without zone (read as
// UTC), a rendered date, or a Unix timestamp in milliseconds (more than four
// digits). The result is in UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}

	if isDigits(s) {
		if len(s) <= yearDigits {
			if len(s) != yearDigits {
				return time.Time{}, ErrInvalidDate
			}
			t, err := time.Parse("2006", s)
			if err != nil {
				return time.Time{}, ErrInvalidDate
			}
			return t.UTC(), nil
		}
		ms, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}, ErrInvalidDate
		}
		return time.UnixMilli(ms).UTC(), nil
	}

	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// day truncates t to midnight UTC by rendering and re-reading it.
func day(t time.Time) time.Time {
	d, err := time.Parse(DateLayout, RenderDate(t))
	if err != nil {
		// DateLayout always round-trips its own output.
		panic(err)
	}
	return d
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
