package slots

import (
	"context"
	"time"

	"turfmania/internal/app/dto"
	"turfmania/internal/app/handlers/support"
	"turfmania/internal/app/queries"
	"turfmania/internal/app/uow"
	domainturf "turfmania/internal/domain/turf"
)

const getAvailabilityKey = "slots.availability"

// GetAvailabilityQuery lists open slots for a turf on a given day, ordered
// by start time.
type GetAvailabilityQuery struct {
	TurfID string
	Day    time.Time
}

func (q GetAvailabilityQuery) Key() string { return getAvailabilityKey }

type GetAvailabilityHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetAvailabilityHandler) Handle(ctx context.Context, q GetAvailabilityQuery) (*dto.TimeSlotCollection, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	turf, err := unit.Turfs().ByID(ctx, domainturf.TurfID(q.TurfID))
	if err != nil {
		return nil, err
	}
	open, err := unit.Slots().ListAvailable(ctx, turf.ID, q.Day)
	if err != nil {
		return nil, err
	}
	collection := dto.MapTimeSlots(open, turf.BasePrice)
	return &collection, nil
}

var _ queries.Handler[GetAvailabilityQuery, *dto.TimeSlotCollection] = (*GetAvailabilityHandler)(nil)
