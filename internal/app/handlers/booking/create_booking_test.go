package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainbooking "turfmania/internal/domain/booking"
	"turfmania/internal/domain/shared/money"
	"turfmania/internal/domain/shared/timerange"
	domainslot "turfmania/internal/domain/slot"
	domainturf "turfmania/internal/domain/turf"
	"turfmania/internal/infra/storage/memory"
)

type fixture struct {
	factory  memory.Factory
	turfs    *memory.TurfRepository
	slots    *memory.SlotRepository
	bookings *memory.BookingRepository
	reviews  *memory.ReviewRepository
	outbox   *memory.Outbox
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		turfs:    memory.NewTurfRepository(),
		slots:    memory.NewSlotRepository(),
		bookings: memory.NewBookingRepository(),
		reviews:  memory.NewReviewRepository(),
		outbox:   memory.NewOutbox(),
	}
	f.factory = memory.Factory{
		TurfRepo:    f.turfs,
		SlotRepo:    f.slots,
		BookingRepo: f.bookings,
		ReviewRepo:  f.reviews,
	}
	return f
}

var slotDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func (f *fixture) seedTurf(t *testing.T, id, orgID string) *domainturf.Turf {
	t.Helper()
	turf := &domainturf.Turf{
		ID:             domainturf.TurfID(id),
		OrganizationID: orgID,
		Name:           "Test Arena",
		BasePrice:      money.Must(100000, "BDT"),
		OperatingHours: domainturf.OperatingHours{
			"monday": {Open: "09:00", Close: "22:00"},
		},
		CreatedAt: slotDay,
	}
	require.NoError(t, f.turfs.Save(context.Background(), turf))
	return turf
}

func (f *fixture) seedSlots(t *testing.T, turfID string, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	slots := make([]*domainslot.TimeSlot, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("%s-slot-%d", turfID, i+1)
		start := slotDay.Add(time.Duration(9+i) * time.Hour)
		slots = append(slots, &domainslot.TimeSlot{
			ID:        domainslot.SlotID(id),
			TurfID:    domainturf.TurfID(turfID),
			Range:     timerange.Range{Start: start, End: start.Add(time.Hour)},
			Available: true,
			CreatedAt: slotDay,
		})
		ids = append(ids, id)
	}
	require.NoError(t, f.slots.InsertBatch(context.Background(), slots))
	return ids
}

func (f *fixture) createHandler() *CreateBookingHandler {
	return &CreateBookingHandler{
		UoWFactory:     f.factory,
		Outbox:         f.outbox,
		AdvancePercent: 50,
	}
}

func TestCreateBooking(t *testing.T) {
	f := newFixture(t)
	f.seedTurf(t, "turf-1", "org-1")
	slotIDs := f.seedSlots(t, "turf-1", 2)

	result, err := f.createHandler().Handle(context.Background(), CreateBookingCommand{
		UserID:               "user-1",
		TurfID:               "turf-1",
		SlotIDs:              slotIDs,
		AdvanceTransactionID: "txn-adv-1",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domainbooking.StatusAdvancePaid), result.Status)
	assert.Equal(t, int64(200000), result.TotalAmount.Amount)
	assert.Equal(t, int64(100000), result.AdvanceAmount.Amount)
	assert.Equal(t, int64(100000), result.FinalAmount.Amount)
	assert.False(t, result.IsPaid)

	stored, err := f.bookings.ByID(context.Background(), domainbooking.BookingID(result.ID))
	require.NoError(t, err)
	assert.Equal(t, domainbooking.StatusAdvancePaid, stored.Status)

	for _, id := range slotIDs {
		loaded, err := f.slots.ByIDs(context.Background(), "turf-1", []domainslot.SlotID{domainslot.SlotID(id)})
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.False(t, loaded[0].Available)
		assert.Equal(t, result.ID, loaded[0].ClaimedBy)
	}

	events := f.outbox.Pending()
	require.Len(t, events, 2)
	assert.Equal(t, "booking.requested", events[0].Name)
	assert.Equal(t, "booking.advance_verified", events[1].Name)
}

func TestCreateBookingOddTotalRoundsAdvanceDown(t *testing.T) {
	f := newFixture(t)
	turf := f.seedTurf(t, "turf-1", "org-1")
	turf.BasePrice = money.Must(100001, "BDT")
	require.NoError(t, f.turfs.Save(context.Background(), turf))
	slotIDs := f.seedSlots(t, "turf-1", 1)

	result, err := f.createHandler().Handle(context.Background(), CreateBookingCommand{
		UserID:               "user-1",
		TurfID:               "turf-1",
		SlotIDs:              slotIDs,
		AdvanceTransactionID: "txn-adv-1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50000), result.AdvanceAmount.Amount)
	assert.Equal(t, int64(50001), result.FinalAmount.Amount)
	assert.Equal(t, result.TotalAmount.Amount, result.AdvanceAmount.Amount+result.FinalAmount.Amount)
}

func TestCreateBookingConflictOnClaimedSlot(t *testing.T) {
	f := newFixture(t)
	f.seedTurf(t, "turf-1", "org-1")
	slotIDs := f.seedSlots(t, "turf-1", 2)

	handler := f.createHandler()
	_, err := handler.Handle(context.Background(), CreateBookingCommand{
		UserID:               "user-1",
		TurfID:               "turf-1",
		SlotIDs:              slotIDs[:1],
		AdvanceTransactionID: "txn-adv-1",
	})
	require.NoError(t, err)

	// Second request includes the already claimed slot; the whole set fails.
	_, err = handler.Handle(context.Background(), CreateBookingCommand{
		UserID:               "user-2",
		TurfID:               "turf-1",
		SlotIDs:              slotIDs,
		AdvanceTransactionID: "txn-adv-2",
	})
	assert.ErrorIs(t, err, domainslot.ErrSlotConflict)

	free, err := f.slots.ByIDs(context.Background(), "turf-1", []domainslot.SlotID{domainslot.SlotID(slotIDs[1])})
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.True(t, free[0].Available, "losing request must not hold a partial claim")
}

func TestCreateBookingConcurrentSingleWinner(t *testing.T) {
	f := newFixture(t)
	f.seedTurf(t, "turf-1", "org-1")
	slotIDs := f.seedSlots(t, "turf-1", 1)
	handler := f.createHandler()

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = handler.Handle(context.Background(), CreateBookingCommand{
				UserID:               fmt.Sprintf("user-%d", i),
				TurfID:               "turf-1",
				SlotIDs:              slotIDs,
				AdvanceTransactionID: fmt.Sprintf("txn-%d", i),
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, domainslot.ErrSlotConflict)
		}
	}
	assert.Equal(t, 1, winners, "exactly one racing booking wins the slot")
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture(t)
	f.seedTurf(t, "turf-1", "org-1")
	slotIDs := f.seedSlots(t, "turf-1", 1)
	handler := f.createHandler()

	t.Run("empty slot set", func(t *testing.T) {
		_, err := handler.Handle(context.Background(), CreateBookingCommand{
			UserID:               "user-1",
			TurfID:               "turf-1",
			AdvanceTransactionID: "txn",
		})
		assert.ErrorIs(t, err, domainbooking.ErrEmptySlotSet)
	})

	t.Run("duplicate slots", func(t *testing.T) {
		_, err := handler.Handle(context.Background(), CreateBookingCommand{
			UserID:               "user-1",
			TurfID:               "turf-1",
			SlotIDs:              []string{slotIDs[0], slotIDs[0]},
			AdvanceTransactionID: "txn",
		})
		assert.ErrorIs(t, err, domainbooking.ErrDuplicateSlots)
	})

	t.Run("unknown turf", func(t *testing.T) {
		_, err := handler.Handle(context.Background(), CreateBookingCommand{
			UserID:               "user-1",
			TurfID:               "turf-missing",
			SlotIDs:              slotIDs,
			AdvanceTransactionID: "txn",
		})
		assert.ErrorIs(t, err, domainturf.ErrTurfNotFound)
	})

	t.Run("slot from another turf", func(t *testing.T) {
		f.seedTurf(t, "turf-2", "org-1")
		otherIDs := f.seedSlots(t, "turf-2", 1)
		_, err := handler.Handle(context.Background(), CreateBookingCommand{
			UserID:               "user-1",
			TurfID:               "turf-1",
			SlotIDs:              otherIDs,
			AdvanceTransactionID: "txn",
		})
		assert.ErrorIs(t, err, domainslot.ErrSlotNotFound)
	})
}
