package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domainslot "turfmania/internal/domain/slot"
	domainturf "turfmania/internal/domain/turf"
)

// SlotRepository keeps time slots in memory. Claim is all-or-nothing under
// a single lock, mirroring the transactional conditional update of the
// Mongo implementation.
type SlotRepository struct {
	mu    sync.RWMutex
	items map[domainslot.SlotID]*domainslot.TimeSlot
}

func NewSlotRepository() *SlotRepository {
	return &SlotRepository{items: make(map[domainslot.SlotID]*domainslot.TimeSlot)}
}

func (r *SlotRepository) ByIDs(ctx context.Context, turfID domainturf.TurfID, ids []domainslot.SlotID) ([]*domainslot.TimeSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainslot.TimeSlot, 0, len(ids))
	for _, id := range ids {
		s, ok := r.items[id]
		if !ok || s.TurfID != turfID {
			continue
		}
		copy := *s
		out = append(out, &copy)
	}
	sortByStart(out)
	return out, nil
}

func (r *SlotRepository) ListRange(ctx context.Context, turfID domainturf.TurfID, from, to time.Time) ([]*domainslot.TimeSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainslot.TimeSlot
	for _, s := range r.items {
		if s.TurfID != turfID {
			continue
		}
		if !s.Range.Start.Before(to) || !s.Range.End.After(from) {
			continue
		}
		copy := *s
		out = append(out, &copy)
	}
	sortByStart(out)
	return out, nil
}

func (r *SlotRepository) ListAvailable(ctx context.Context, turfID domainturf.TurfID, day time.Time) ([]*domainslot.TimeSlot, error) {
	day = day.UTC()
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainslot.TimeSlot
	for _, s := range r.items {
		if s.TurfID != turfID || !s.Available {
			continue
		}
		if s.Range.Start.Before(dayStart) || !s.Range.Start.Before(dayEnd) {
			continue
		}
		copy := *s
		out = append(out, &copy)
	}
	sortByStart(out)
	return out, nil
}

func (r *SlotRepository) InsertBatch(ctx context.Context, slots []*domainslot.TimeSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range slots {
		copy := *s
		r.items[s.ID] = &copy
	}
	return nil
}

func (r *SlotRepository) Claim(ctx context.Context, turfID domainturf.TurfID, ids []domainslot.SlotID, bookingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		s, ok := r.items[id]
		if !ok || s.TurfID != turfID || !s.Available {
			return domainslot.ErrSlotConflict
		}
	}
	for _, id := range ids {
		s := r.items[id]
		s.Available = false
		s.ClaimedBy = bookingID
	}
	return nil
}

func (r *SlotRepository) Release(ctx context.Context, bookingID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	released := 0
	for _, s := range r.items {
		if s.ClaimedBy == bookingID && !s.Available {
			s.Available = true
			s.ClaimedBy = ""
			released++
		}
	}
	return released, nil
}

func sortByStart(slots []*domainslot.TimeSlot) {
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Range.Start.Before(slots[j].Range.Start)
	})
}
