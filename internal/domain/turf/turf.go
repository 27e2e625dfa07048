package turf

import (
	"context"
	"errors"
	"time"

	"turfmania/internal/domain/shared/money"
)

var (
	ErrTurfNotFound        = errors.New("turf: not found")
	ErrInvalidOperatingDay = errors.New("turf: malformed operating hours entry")
)

type TurfID string

// OperatingWindow holds a single day's opening hours as "15:04" strings,
// the format the organization portal submits.
type OperatingWindow struct {
	Open  string
	Close string
}

// OperatingHours maps lowercase weekday names (monday..sunday) to windows.
// A missing day means the turf is closed on that day.
type OperatingHours map[string]OperatingWindow

// Turf is reference data owned by the organization directory. The booking
// core reads it for operating hours, base price and organization scoping,
// and never mutates it.
type Turf struct {
	ID             TurfID
	OrganizationID string
	Name           string
	BasePrice      money.Money
	Sports         []string
	TeamSize       int
	OperatingHours OperatingHours
	ImageURLs      []string
	CreatedAt      time.Time
}

type Repository interface {
	ByID(ctx context.Context, id TurfID) (*Turf, error)
	Save(ctx context.Context, t *Turf) error
}

// Window resolves the operating window for the given day as concrete UTC
// instants on that day. ok is false when the turf is closed.
func (h OperatingHours) Window(day time.Time) (open, close time.Time, ok bool, err error) {
	day = day.UTC()
	w, found := h[weekdayKey(day.Weekday())]
	if !found || w.Open == "" || w.Close == "" {
		return time.Time{}, time.Time{}, false, nil
	}
	openT, err := time.Parse("15:04", w.Open)
	if err != nil {
		return time.Time{}, time.Time{}, false, ErrInvalidOperatingDay
	}
	closeT, err := time.Parse("15:04", w.Close)
	if err != nil {
		return time.Time{}, time.Time{}, false, ErrInvalidOperatingDay
	}
	open = time.Date(day.Year(), day.Month(), day.Day(), openT.Hour(), openT.Minute(), 0, 0, time.UTC)
	close = time.Date(day.Year(), day.Month(), day.Day(), closeT.Hour(), closeT.Minute(), 0, 0, time.UTC)
	if !close.After(open) {
		return time.Time{}, time.Time{}, false, nil
	}
	return open, close, true, nil
}

func weekdayKey(w time.Weekday) string {
	switch w {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	default:
		return "sunday"
	}
}
