package booking

import (
	"context"

	"turfmania/internal/app/dto"
	"turfmania/internal/app/handlers/support"
	"turfmania/internal/app/queries"
	"turfmania/internal/app/uow"
)

const myBookingsKey = "booking.list_mine"

// MyBookingsQuery lists all bookings belonging to the calling user, newest
// first.
type MyBookingsQuery struct {
	UserID string
}

func (q MyBookingsQuery) Key() string { return myBookingsKey }

type MyBookingsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *MyBookingsHandler) Handle(ctx context.Context, q MyBookingsQuery) ([]dto.Booking, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	items, err := unit.Bookings().ListByUser(ctx, q.UserID)
	if err != nil {
		return nil, err
	}
	return dto.MapBookings(items), nil
}

var _ queries.Handler[MyBookingsQuery, []dto.Booking] = (*MyBookingsHandler)(nil)
