package slot

import (
	"errors"
	"time"

	"turfmania/internal/domain/shared/timerange"
	"turfmania/internal/domain/turf"
)

var (
	ErrInvalidDateRange = errors.New("slot: start date must not be after end date")
	ErrInvalidDuration  = errors.New("slot: duration must be positive")
)

// GenerateParams describes one generator run over a turf's schedule.
type GenerateParams struct {
	Turf     *turf.Turf
	From     time.Time
	To       time.Time
	Duration time.Duration
	// Existing slots of the turf overlapping the run's date range; intervals
	// already covered are skipped so re-runs are idempotent.
	Existing []*TimeSlot
	Now      time.Time
	NewID    func() SlotID
}

// Generate produces one TimeSlot per contiguous duration-sized interval
// inside the turf's operating hours for every day in [From, To]. A trailing
// remainder shorter than the duration is dropped, and days without an
// operating-hours entry yield no slots.
func Generate(p GenerateParams) ([]*TimeSlot, error) {
	if p.Duration <= 0 {
		return nil, ErrInvalidDuration
	}
	from := truncateToDay(p.From)
	to := truncateToDay(p.To)
	if from.After(to) {
		return nil, ErrInvalidDateRange
	}

	newID := p.NewID
	if newID == nil {
		return nil, errors.New("slot: id generator required")
	}

	var out []*TimeSlot
	for day := from; !day.After(to); day = day.Add(24 * time.Hour) {
		open, close, ok, err := p.Turf.OperatingHours.Window(day)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		for start := open; !start.Add(p.Duration).After(close); start = start.Add(p.Duration) {
			r := timerange.Range{Start: start, End: start.Add(p.Duration)}
			if overlapsAny(r, p.Existing) || overlapsGenerated(r, out) {
				continue
			}
			out = append(out, &TimeSlot{
				ID:        newID(),
				TurfID:    p.Turf.ID,
				Range:     r,
				Available: true,
				CreatedAt: p.Now.UTC(),
			})
		}
	}
	return out, nil
}

func overlapsAny(r timerange.Range, existing []*TimeSlot) bool {
	for _, s := range existing {
		if s.Range.Overlaps(r) {
			return true
		}
	}
	return false
}

func overlapsGenerated(r timerange.Range, generated []*TimeSlot) bool {
	for _, s := range generated {
		if s.Range.Overlaps(r) {
			return true
		}
	}
	return false
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
