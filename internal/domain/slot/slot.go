package slot

import (
	"context"
	"errors"
	"time"

	"turfmania/internal/domain/shared/money"
	"turfmania/internal/domain/shared/timerange"
	"turfmania/internal/domain/turf"
)

var (
	ErrSlotNotFound = errors.New("slot: not found")
	// ErrSlotConflict signals that at least one targeted slot was claimed by
	// another booking between the availability read and the commit.
	ErrSlotConflict = errors.New("slot: no longer available")
)

type SlotID string

// TimeSlot is one bookable interval of a turf. Availability is flipped only
// through the booking ledger's transactional claim/release operations.
type TimeSlot struct {
	ID            SlotID
	TurfID        turf.TurfID
	Range         timerange.Range
	PriceOverride *money.Money
	Available     bool
	ClaimedBy     string
	CreatedAt     time.Time
}

// Price resolves the effective price for the slot given the turf base price.
func (s *TimeSlot) Price(base money.Money) money.Money {
	if s.PriceOverride != nil {
		return *s.PriceOverride
	}
	return base
}

type Repository interface {
	// ByIDs loads the given slots, restricted to the turf. A missing id
	// results in a shorter slice, not an error.
	ByIDs(ctx context.Context, turfID turf.TurfID, ids []SlotID) ([]*TimeSlot, error)
	// ListRange returns all slots of the turf intersecting [from, to),
	// ordered by start ascending.
	ListRange(ctx context.Context, turfID turf.TurfID, from, to time.Time) ([]*TimeSlot, error)
	// ListAvailable returns available slots of the turf on the given UTC
	// day, ordered by start ascending.
	ListAvailable(ctx context.Context, turfID turf.TurfID, day time.Time) ([]*TimeSlot, error)
	// InsertBatch persists freshly generated slots as one batch.
	InsertBatch(ctx context.Context, slots []*TimeSlot) error
	// Claim marks every listed slot unavailable on behalf of a booking.
	// All-or-nothing: if any slot is not currently available it returns
	// ErrSlotConflict and must leave no partial claim behind.
	Claim(ctx context.Context, turfID turf.TurfID, ids []SlotID, bookingID string) error
	// Release makes the booking's claimed slots available again. Idempotent;
	// returns the number of slots actually released.
	Release(ctx context.Context, bookingID string) (int, error)
}
