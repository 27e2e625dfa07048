package timerange

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange = errors.New("timerange: end must be after start")
)

// Range represents a half-open interval [Start, End)
type Range struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) (Range, error) {
	r := Range{Start: start.UTC(), End: end.UTC()}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

func (r Range) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return ErrInvalidRange
	}
	if !r.End.After(r.Start) {
		return ErrInvalidRange
	}
	return nil
}

func (r Range) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

func (r Range) Overlaps(other Range) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

func (r Range) ContainsTime(t time.Time) bool {
	t = t.UTC()
	return (t.Equal(r.Start) || t.After(r.Start)) && t.Before(r.End)
}

// SameDay reports whether the whole range falls on the given UTC calendar day.
func (r Range) SameDay(day time.Time) bool {
	day = day.UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	return !r.Start.Before(start) && !r.End.After(end)
}
