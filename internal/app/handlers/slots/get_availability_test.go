package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainslot "turfmania/internal/domain/slot"
	domainturf "turfmania/internal/domain/turf"
)

func TestGetAvailability(t *testing.T) {
	f := newFixture(t)
	f.seedTurf(t, "turf-1", "org-1")

	_, err := f.generateHandler().Handle(context.Background(), GenerateSlotsCommand{
		TurfID:         "turf-1",
		OrganizationID: "org-1",
		StartDate:      monday,
		EndDate:        monday,
		SlotDuration:   time.Hour,
	})
	require.NoError(t, err)

	handler := &GetAvailabilityHandler{UoWFactory: f.factory}
	result, err := handler.Handle(context.Background(), GetAvailabilityQuery{
		TurfID: "turf-1",
		Day:    monday,
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 3)

	for i := 1; i < len(result.Items); i++ {
		assert.True(t, result.Items[i-1].Start.Before(result.Items[i].Start), "slots are ordered by start time")
	}
	for _, item := range result.Items {
		assert.True(t, item.IsAvailable)
		assert.Equal(t, int64(100000), item.Price.Amount)
		assert.Equal(t, "BDT", item.Price.Currency)
	}
}

func TestGetAvailabilityExcludesClaimedSlots(t *testing.T) {
	f := newFixture(t)
	f.seedTurf(t, "turf-1", "org-1")

	generated, err := f.generateHandler().Handle(context.Background(), GenerateSlotsCommand{
		TurfID:         "turf-1",
		OrganizationID: "org-1",
		StartDate:      monday,
		EndDate:        monday,
		SlotDuration:   time.Hour,
	})
	require.NoError(t, err)
	require.Len(t, generated.SlotIDs, 3)

	claimed := domainslot.SlotID(generated.SlotIDs[0])
	require.NoError(t, f.slots.Claim(context.Background(), "turf-1", []domainslot.SlotID{claimed}, "booking-1"))

	handler := &GetAvailabilityHandler{UoWFactory: f.factory}
	result, err := handler.Handle(context.Background(), GetAvailabilityQuery{TurfID: "turf-1", Day: monday})
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	for _, item := range result.Items {
		assert.NotEqual(t, string(claimed), item.ID)
	}

	// Releasing the claim puts the slot back on offer.
	released, err := f.slots.Release(context.Background(), "booking-1")
	require.NoError(t, err)
	require.Equal(t, 1, released)

	result, err = handler.Handle(context.Background(), GetAvailabilityQuery{TurfID: "turf-1", Day: monday})
	require.NoError(t, err)
	assert.Len(t, result.Items, 3)
}

func TestGetAvailabilityUnknownTurf(t *testing.T) {
	f := newFixture(t)

	handler := &GetAvailabilityHandler{UoWFactory: f.factory}
	_, err := handler.Handle(context.Background(), GetAvailabilityQuery{TurfID: "turf-missing", Day: monday})
	assert.ErrorIs(t, err, domainturf.ErrTurfNotFound)
}
