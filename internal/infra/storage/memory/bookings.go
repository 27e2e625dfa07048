package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	domainbooking "turfmania/internal/domain/booking"
	domainslot "turfmania/internal/domain/slot"
	domainturf "turfmania/internal/domain/turf"
)

var ErrConcurrentUpdate = errors.New("memory: concurrent update detected")

// BookingRepository keeps bookings in memory with the same optimistic
// version semantics the Mongo implementation enforces.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.BookingID]*domainbooking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[domainbooking.BookingID]*domainbooking.Booking)}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrBookingNotFound
	}
	return cloneBooking(b), nil
}

func (r *BookingRepository) Insert(ctx context.Context, b *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[b.ID] = cloneBooking(b)
	return nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.items[b.ID]
	if !ok {
		return domainbooking.ErrBookingNotFound
	}
	if current.Version != b.Version {
		return ErrConcurrentUpdate
	}
	b.Version++
	r.items[b.ID] = cloneBooking(b)
	return nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainbooking.Booking
	for _, b := range r.items {
		if b.UserID == userID {
			out = append(out, cloneBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *BookingRepository) ListByTurf(ctx context.Context, turfID domainturf.TurfID, f domainbooking.ListFilters) ([]*domainbooking.Booking, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*domainbooking.Booking
	for _, b := range r.items {
		if b.TurfID != turfID {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if f.Paid != nil && b.Paid != *f.Paid {
			continue
		}
		if !f.From.IsZero() && b.CreatedAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !b.CreatedAt.Before(f.To) {
			continue
		}
		matches = append(matches, cloneBooking(b))
	}

	asc := f.SortOrder == "asc"
	sort.Slice(matches, func(i, j int) bool {
		var less bool
		switch f.SortBy {
		case "total_amount":
			less = matches[i].Total.Amount < matches[j].Total.Amount
		default:
			less = matches[i].CreatedAt.Before(matches[j].CreatedAt)
		}
		if asc {
			return less
		}
		return !less
	})

	total := int64(len(matches))
	start := (f.Page - 1) * f.Limit
	if start >= len(matches) {
		return nil, total, nil
	}
	end := start + f.Limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[start:end], total, nil
}

func (r *BookingRepository) MonthlyEarnings(ctx context.Context, turfID domainturf.TurfID, year int, component domainbooking.EarningsComponent) (map[time.Month]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[time.Month]int64, 12)
	for _, b := range r.items {
		if b.TurfID != turfID || b.Status != domainbooking.StatusCompleted || !b.Paid {
			continue
		}
		created := b.CreatedAt.UTC()
		if created.Year() != year {
			continue
		}
		var amount int64
		switch component {
		case domainbooking.ComponentAdvance:
			amount = b.Advance.Amount
		case domainbooking.ComponentFinal:
			amount = b.Final.Amount
		default:
			amount = b.Total.Amount
		}
		out[created.Month()] += amount
	}
	return out, nil
}

func (r *BookingRepository) HasCompletedForTurf(ctx context.Context, userID string, turfID domainturf.TurfID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.items {
		if b.UserID == userID && b.TurfID == turfID && b.Status == domainbooking.StatusCompleted {
			return true, nil
		}
	}
	return false, nil
}

func cloneBooking(b *domainbooking.Booking) *domainbooking.Booking {
	copy := *b
	copy.SlotIDs = append([]domainslot.SlotID(nil), b.SlotIDs...)
	return &copy
}
