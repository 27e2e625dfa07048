package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainbooking "turfmania/internal/domain/booking"
	domainturf "turfmania/internal/domain/turf"
	"turfmania/internal/infra/storage/memory"
)

func TestListTurfBookings(t *testing.T) {
	f := newFixture(t)
	f.seedTurf(t, "turf-1", "org-1")
	slotIDs := f.seedSlots(t, "turf-1", 4)

	first := f.createBooking(t, "user-1", "turf-1", slotIDs[:1])
	f.createBooking(t, "user-2", "turf-1", slotIDs[1:2])
	f.createBooking(t, "user-3", "turf-1", slotIDs[2:3])

	_, err := f.completeHandler().HandleCash(context.Background(), CompleteCashCommand{
		BookingID:      first.ID,
		OrganizationID: "org-1",
	})
	require.NoError(t, err)

	handler := &ListTurfBookingsHandler{UoWFactory: f.factory}

	t.Run("all bookings with pagination", func(t *testing.T) {
		result, err := handler.Handle(context.Background(), ListTurfBookingsQuery{
			TurfID:         "turf-1",
			OrganizationID: "org-1",
			Filters:        domainbooking.ListFilters{Page: 1, Limit: 2},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), result.Meta.Total)
		assert.Equal(t, 2, result.Meta.Pages)
		assert.Len(t, result.Items, 2)
	})

	t.Run("status filter", func(t *testing.T) {
		result, err := handler.Handle(context.Background(), ListTurfBookingsQuery{
			TurfID:         "turf-1",
			OrganizationID: "org-1",
			Filters:        domainbooking.ListFilters{Status: domainbooking.StatusCompleted},
		})
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, first.ID, result.Items[0].ID)
		assert.Equal(t, "completed", result.Meta.Filters["status"])
	})

	t.Run("paid filter", func(t *testing.T) {
		paid := true
		result, err := handler.Handle(context.Background(), ListTurfBookingsQuery{
			TurfID:         "turf-1",
			OrganizationID: "org-1",
			Filters:        domainbooking.ListFilters{Paid: &paid},
		})
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.True(t, result.Items[0].IsPaid)
	})

	t.Run("wrong organization", func(t *testing.T) {
		_, err := handler.Handle(context.Background(), ListTurfBookingsQuery{
			TurfID:         "turf-1",
			OrganizationID: "org-other",
		})
		assert.ErrorIs(t, err, domainbooking.ErrNotAuthorized)
	})
}

func TestMyBookings(t *testing.T) {
	f := newFixture(t)
	f.seedTurf(t, "turf-1", "org-1")
	slotIDs := f.seedSlots(t, "turf-1", 3)
	f.createBooking(t, "user-1", "turf-1", slotIDs[:1])
	f.createBooking(t, "user-1", "turf-1", slotIDs[1:2])
	f.createBooking(t, "user-2", "turf-1", slotIDs[2:])

	handler := &MyBookingsHandler{UoWFactory: f.factory}
	result, err := handler.Handle(context.Background(), MyBookingsQuery{UserID: "user-1"})
	require.NoError(t, err)
	require.Len(t, result, 2)
	for _, b := range result {
		assert.Equal(t, "user-1", b.UserID)
	}

	empty, err := handler.Handle(context.Background(), MyBookingsQuery{UserID: "user-unknown"})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMonthlyEarnings(t *testing.T) {
	f := newFixture(t)
	f.seedTurf(t, "turf-1", "org-1")
	slotIDs := f.seedSlots(t, "turf-1", 2)

	booked := f.createBooking(t, "user-1", "turf-1", slotIDs[:1])
	_, err := f.completeHandler().HandleCash(context.Background(), CompleteCashCommand{
		BookingID:      booked.ID,
		OrganizationID: "org-1",
	})
	require.NoError(t, err)
	// Advance-paid only: excluded from earnings.
	f.createBooking(t, "user-2", "turf-1", slotIDs[1:])

	handler := MonthlyEarningsHandler{&EarningsHandler{UoWFactory: f.factory}}
	year := time.Now().UTC().Year()

	result, err := handler.Handle(context.Background(), MonthlyEarningsQuery{
		TurfID:         "turf-1",
		OrganizationID: "org-1",
		Year:           year,
		Component:      domainbooking.ComponentTotal,
	})
	require.NoError(t, err)
	require.Len(t, result.Months, 12, "series is always zero filled")
	assert.Equal(t, "BDT", result.Currency)

	var sum int64
	for _, m := range result.Months {
		sum += m.Amount
	}
	assert.Equal(t, int64(100000), sum)

	advance, err := handler.Handle(context.Background(), MonthlyEarningsQuery{
		TurfID:         "turf-1",
		OrganizationID: "org-1",
		Year:           year,
		Component:      domainbooking.ComponentAdvance,
	})
	require.NoError(t, err)
	sum = 0
	for _, m := range advance.Months {
		sum += m.Amount
	}
	assert.Equal(t, int64(50000), sum)
}

func TestCurrentMonthEarnings(t *testing.T) {
	f := newFixture(t)
	f.seedTurf(t, "turf-1", "org-1")
	slotIDs := f.seedSlots(t, "turf-1", 1)
	booked := f.createBooking(t, "user-1", "turf-1", slotIDs)
	_, err := f.completeHandler().HandleCash(context.Background(), CompleteCashCommand{
		BookingID:      booked.ID,
		OrganizationID: "org-1",
	})
	require.NoError(t, err)

	handler := CurrentMonthEarningsHandler{&EarningsHandler{UoWFactory: f.factory}}
	result, err := handler.Handle(context.Background(), CurrentMonthEarningsQuery{
		TurfID:         "turf-1",
		OrganizationID: "org-1",
		Component:      domainbooking.ComponentFinal,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50000), result.Amount)
	assert.Equal(t, int(time.Now().UTC().Month()), result.Month)
}

type failingEarningsRepo struct {
	domainbooking.Repository
}

func (failingEarningsRepo) MonthlyEarnings(context.Context, domainturf.TurfID, int, domainbooking.EarningsComponent) (map[time.Month]int64, error) {
	return nil, errors.New("aggregation pipeline failed")
}

func TestMonthlyEarningsDegradesToZeroSeries(t *testing.T) {
	f := newFixture(t)
	f.seedTurf(t, "turf-1", "org-1")

	factory := memory.Factory{
		TurfRepo:    f.turfs,
		SlotRepo:    f.slots,
		BookingRepo: failingEarningsRepo{Repository: f.bookings},
		ReviewRepo:  f.reviews,
	}
	handler := MonthlyEarningsHandler{&EarningsHandler{UoWFactory: factory}}

	result, err := handler.Handle(context.Background(), MonthlyEarningsQuery{
		TurfID:         "turf-1",
		OrganizationID: "org-1",
		Year:           2026,
	})
	require.NoError(t, err, "aggregation failure must not fail the request")
	require.Len(t, result.Months, 12)
	for _, m := range result.Months {
		assert.Zero(t, m.Amount)
	}
}
