// Package sdt computes scheduled downtime windows.
//
// Windows are expressed as millisecond epoch pairs, the unit used by the
// /sdt/sdts endpoint. Wall-clock inputs are interpreted in the local
// timezone and accept either 24-hour or am/pm notation.
package sdt

import (
	"fmt"
	"strings"
	"time"
)

const (
	layout24        = "2006-01-02 15:04"
	layout12        = "2006-01-02 03:04 pm"
	layoutHint      = `"yyyy-MM-dd HH:mm" or "yyyy-MM-dd hh:mm am/pm"`
	millisPerMinute = 60_000
)

// timeNow is replaced in tests.
var timeNow = time.Now

// Interval is a downtime window in millisecond epochs.
type Interval struct {
	StartMillis int64
	EndMillis   int64
}

// ParseTime parses a wall-clock timestamp in the local timezone. A trailing
// am/pm marker selects 12-hour notation, otherwise the hour is read as
// 24-hour.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	layout := layout24
	lower := strings.ToLower(s)
	if strings.HasSuffix(lower, "am") || strings.HasSuffix(lower, "pm") {
		layout = layout12
		s = lower
	}
	t, err := time.ParseInLocation(layout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected %s: %w", s, layoutHint, err)
	}
	return t, nil
}

// Compute derives the downtime window. An empty start means now. When an
// end time is given it is used verbatim and the duration is ignored;
// otherwise the window runs duration minutes from the start.
func Compute(startTime, endTime string, durationMinutes int) (Interval, error) {
	var start int64
	if startTime == "" {
		start = timeNow().UnixMilli()
	} else {
		t, err := ParseTime(startTime)
		if err != nil {
			return Interval{}, fmt.Errorf("start time: %w", err)
		}
		start = t.UnixMilli()
	}

	var end int64
	switch {
	case endTime != "":
		t, err := ParseTime(endTime)
		if err != nil {
			return Interval{}, fmt.Errorf("end time: %w", err)
		}
		end = t.UnixMilli()
	case durationMinutes > 0:
		end = start + int64(durationMinutes)*millisPerMinute
	default:
		return Interval{}, fmt.Errorf("duration must be positive, got %d", durationMinutes)
	}

	if end <= start {
		return Interval{}, fmt.Errorf("downtime window must end after it starts")
	}
	return Interval{StartMillis: start, EndMillis: end}, nil
}

// NoteTime parses an event timestamp into a millisecond epoch for the ops
// note happenedOnInSec field. The field name says seconds but the endpoint
// takes milliseconds. An empty input means now.
func NoteTime(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return timeNow().UnixMilli(), nil
	}
	t, err := ParseTime(s)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}
