// Package codec converts date values between their description form and the
// canonical form written into generated code.
package codec

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrRelativeDate is returned for dates relative to evaluation time ("now"),
// which cannot be frozen into a literal.
var ErrRelativeDate = errors.New("codec: relative date has no literal form")

// jsISO mirrors JavaScript's Date.prototype.toISOString.
const jsISO = "2006-01-02T15:04:05.000Z07:00"

// ParseDate accepts RFC3339 strings (fractional seconds optional) and
// integral millisecond timestamps, returning the instant in UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "now" {
		return time.Time{}, ErrRelativeDate
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2.UTC(), nil
		}
		if t3, err3 := time.Parse(time.DateOnly, s); err3 == nil {
			return t3.UTC(), nil
		}
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// FormatDate renders t the way JavaScript's toISOString does
// (millisecond precision, UTC, "Z" suffix).
func FormatDate(t time.Time) string {
	return t.UTC().Format(jsISO)
}

// Canonical parses s and returns its canonical ISO form.
func Canonical(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return FormatDate(t), nil
}
