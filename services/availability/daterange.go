package availability

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day format used on the wire and in storage.
const DateLayout = "2006-01-02"

// DateRange is a half-open interval of calendar days: [Start, End).
// Both bounds are normalized to midnight UTC of their calendar day.
type DateRange struct {
	Start time.Time `json:"start" bson:"start"`
	End   time.Time `json:"end" bson:"end"`
}

// NewDateRange normalizes both bounds to calendar days. It does not validate.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: DateOf(start), End: DateOf(end)}
}

// DateOf returns the calendar day of t in t's own location, as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the viewer's current calendar day in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(now.In(loc))
}

// ParseDate parses a YYYY-MM-DD calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// ParseDateRange parses two YYYY-MM-DD strings. Either empty means the range
// has not been chosen yet and nil is returned without error.
func ParseDateRange(start, end string) (*DateRange, error) {
	if start == "" || end == "" {
		return nil, nil
	}
	s, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return nil, err
	}
	r := NewDateRange(s, e)
	return &r, nil
}

// Valid reports whether the range has a positive width.
func (r DateRange) Valid() bool {
	return r.Start.Before(r.End)
}

// Overlaps applies the half-open interval test, so a checkout day equal to
// another stay's check-in day does not conflict.
func (r DateRange) Overlaps(o DateRange) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

// Nights is the number of whole days between Start and End. It is negative
// for inverted ranges.
func (r DateRange) Nights() int {
	return int(DateOf(r.End).Sub(DateOf(r.Start)).Hours() / 24)
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start.Format(DateLayout), r.End.Format(DateLayout))
}
