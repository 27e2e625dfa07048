package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainbooking "turfmania/internal/domain/booking"
	"turfmania/internal/domain/shared/money"
	domainturf "turfmania/internal/domain/turf"
	"turfmania/internal/infra/storage/memory"
)

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

type fixture struct {
	factory memory.Factory
	turfs   *memory.TurfRepository
	slots   *memory.SlotRepository
	outbox  *memory.Outbox
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		turfs:  memory.NewTurfRepository(),
		slots:  memory.NewSlotRepository(),
		outbox: memory.NewOutbox(),
	}
	f.factory = memory.Factory{
		TurfRepo:    f.turfs,
		SlotRepo:    f.slots,
		BookingRepo: memory.NewBookingRepository(),
		ReviewRepo:  memory.NewReviewRepository(),
	}
	return f
}

func (f *fixture) seedTurf(t *testing.T, id, orgID string) *domainturf.Turf {
	t.Helper()
	turf := &domainturf.Turf{
		ID:             domainturf.TurfID(id),
		OrganizationID: orgID,
		Name:           "Test Arena",
		BasePrice:      money.Must(100000, "BDT"),
		OperatingHours: domainturf.OperatingHours{
			"monday":  {Open: "09:00", Close: "12:00"},
			"tuesday": {Open: "10:00", Close: "11:00"},
		},
		CreatedAt: monday,
	}
	require.NoError(t, f.turfs.Save(context.Background(), turf))
	return turf
}

func (f *fixture) generateHandler() *GenerateSlotsHandler {
	return &GenerateSlotsHandler{UoWFactory: f.factory, Outbox: f.outbox}
}

func TestGenerateSlots(t *testing.T) {
	f := newFixture(t)
	f.seedTurf(t, "turf-1", "org-1")

	result, err := f.generateHandler().Handle(context.Background(), GenerateSlotsCommand{
		TurfID:         "turf-1",
		OrganizationID: "org-1",
		StartDate:      monday,
		EndDate:        monday.Add(24 * time.Hour),
		SlotDuration:   time.Hour,
	})
	require.NoError(t, err)

	// Three hourly slots on Monday, one on Tuesday.
	assert.Equal(t, 4, result.Generated)
	assert.Len(t, result.SlotIDs, 4)

	stored, err := f.slots.ListRange(context.Background(), "turf-1", monday, monday.Add(48*time.Hour))
	require.NoError(t, err)
	assert.Len(t, stored, 4)
	for _, s := range stored {
		assert.True(t, s.Available)
	}

	pending := f.outbox.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "slots.generated", pending[0].Name)
}

func TestGenerateSlotsRerunOnlyFillsGaps(t *testing.T) {
	f := newFixture(t)
	f.seedTurf(t, "turf-1", "org-1")
	handler := f.generateHandler()

	cmd := GenerateSlotsCommand{
		TurfID:         "turf-1",
		OrganizationID: "org-1",
		StartDate:      monday,
		EndDate:        monday,
		SlotDuration:   time.Hour,
	}
	first, err := handler.Handle(context.Background(), cmd)
	require.NoError(t, err)
	require.Equal(t, 3, first.Generated)

	second, err := handler.Handle(context.Background(), cmd)
	require.NoError(t, err)
	assert.Zero(t, second.Generated)

	stored, err := f.slots.ListRange(context.Background(), "turf-1", monday, monday.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestGenerateSlotsAuthorization(t *testing.T) {
	f := newFixture(t)
	f.seedTurf(t, "turf-1", "org-1")
	handler := f.generateHandler()

	_, err := handler.Handle(context.Background(), GenerateSlotsCommand{
		TurfID:         "turf-1",
		OrganizationID: "org-other",
		StartDate:      monday,
		EndDate:        monday,
		SlotDuration:   time.Hour,
	})
	assert.ErrorIs(t, err, domainbooking.ErrNotAuthorized)

	_, err = handler.Handle(context.Background(), GenerateSlotsCommand{
		TurfID:         "turf-missing",
		OrganizationID: "org-1",
		StartDate:      monday,
		EndDate:        monday,
		SlotDuration:   time.Hour,
	})
	assert.ErrorIs(t, err, domainturf.ErrTurfNotFound)
}
