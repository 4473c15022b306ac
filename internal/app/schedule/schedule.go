// Package schedule implements meeting-time parsing and overlap detection for
// course schedules. A course meets on a set of weekdays (single-letter tokens,
// e.g. "MWF") within one clock-time range per day.
package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/emre/enrollhub/internal/pkg/apperrors"
)

// RangeSeparator splits the start and end of a time range. It is an en-dash
// (U+2013), not an ASCII hyphen; stored data uses this exact character.
const RangeSeparator = "–"

const clockLayout = "15:04"

// TimeRange is a half-open interval of minutes since midnight, same-day.
type TimeRange struct {
	Start int
	End   int
}

// ParseTimeRange parses a "HH:MM–HH:MM" string (24-hour clock, en-dash
// separator). Whitespace around either side is ignored. A range whose start
// equals its end is a valid zero-length interval.
func ParseTimeRange(s string) (TimeRange, error) {
	start, end, found := strings.Cut(s, RangeSeparator)
	if !found {
		return TimeRange{}, fmt.Errorf("%w: missing %q separator in %q", apperrors.ErrMalformedTimeRange, RangeSeparator, s)
	}

	startMin, err := parseClock(strings.TrimSpace(start))
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: bad start time in %q: %v", apperrors.ErrMalformedTimeRange, s, err)
	}

	endMin, err := parseClock(strings.TrimSpace(end))
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: bad end time in %q: %v", apperrors.ErrMalformedTimeRange, s, err)
	}

	return TimeRange{Start: startMin, End: endMin}, nil
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Overlaps reports whether two half-open ranges intersect. Touching
// endpoints (one ends exactly when the other starts) do not overlap, and a
// zero-length range never overlaps anything.
func (r TimeRange) Overlaps(other TimeRange) bool {
	if r.Start == r.End || other.Start == other.End {
		return false
	}
	return r.Start < other.End && r.End > other.Start
}

// String renders the range back in the stored wire format.
func (r TimeRange) String() string {
	return fmt.Sprintf("%02d:%02d%s%02d:%02d", r.Start/60, r.Start%60, RangeSeparator, r.End/60, r.End%60)
}

// DaySet is a set of single-rune weekday tokens.
type DaySet map[rune]struct{}

// ParseDays builds a DaySet from a day-token string such as "MWF" or "TR".
// Duplicate tokens collapse; order carries no meaning.
func ParseDays(s string) DaySet {
	days := make(DaySet, len(s))
	for _, token := range s {
		days[token] = struct{}{}
	}
	return days
}

// Intersects reports whether the two sets share at least one day.
func (d DaySet) Intersects(other DaySet) bool {
	small, large := d, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for token := range small {
		if _, ok := large[token]; ok {
			return true
		}
	}
	return false
}

// Meeting is a parsed course schedule: the days it meets and the time range.
type Meeting struct {
	Days DaySet
	Time TimeRange
}

// ParseMeeting parses a day-token string and a time-range string together.
func ParseMeeting(days, timeRange string) (Meeting, error) {
	tr, err := ParseTimeRange(timeRange)
	if err != nil {
		return Meeting{}, err
	}
	return Meeting{Days: ParseDays(days), Time: tr}, nil
}

// ConflictsWith reports whether two meetings collide: at least one shared
// weekday and strictly overlapping time ranges.
func (m Meeting) ConflictsWith(other Meeting) bool {
	return m.Days.Intersects(other.Days) && m.Time.Overlaps(other.Time)
}
