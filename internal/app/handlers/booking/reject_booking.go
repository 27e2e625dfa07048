package booking

import (
	"context"
	"time"

	"turfmania/internal/app/commands"
	"turfmania/internal/app/dto"
	"turfmania/internal/app/handlers/support"
	"turfmania/internal/app/middleware"
	"turfmania/internal/app/outbox"
	"turfmania/internal/app/uow"
	domainbooking "turfmania/internal/domain/booking"
)

const rejectBookingKey = "booking.reject"

// RejectBookingCommand cancels a booking and releases its slot claims in the
// same transaction, so the slots reappear in availability atomically.
type RejectBookingCommand struct {
	BookingID      string
	OrganizationID string
	RequestKey     string
}

func (c RejectBookingCommand) Key() string { return rejectBookingKey }

func (c RejectBookingCommand) IdempotencyKey() string { return c.RequestKey }

func (c RejectBookingCommand) ResultPrototype() any { return &dto.Booking{} }

type RejectBookingHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *RejectBookingHandler) Handle(ctx context.Context, cmd RejectBookingCommand) (*dto.Booking, error) {
	unit, ctx, managed, cleanup, err := support.BeginWriteUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	committed := false
	if managed {
		defer func() {
			if !committed {
				cleanup()
			}
		}()
	}

	b, err := unit.Bookings().ByID(ctx, domainbooking.BookingID(cmd.BookingID))
	if err != nil {
		return nil, err
	}
	turf, err := unit.Turfs().ByID(ctx, b.TurfID)
	if err != nil {
		return nil, err
	}
	if turf.OrganizationID != cmd.OrganizationID {
		return nil, domainbooking.ErrNotAuthorized
	}

	if err := b.Reject(time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := unit.Bookings().Save(ctx, b); err != nil {
		return nil, err
	}
	if _, err := unit.Slots().Release(ctx, string(b.ID)); err != nil {
		return nil, err
	}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, b.PendingEvents()); err != nil {
		return nil, err
	}
	b.ClearEvents()

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}

	result := dto.MapBooking(b)
	return &result, nil
}

var (
	_ commands.Handler[RejectBookingCommand, *dto.Booking] = (*RejectBookingHandler)(nil)
	_ middleware.IdempotentCommand                         = RejectBookingCommand{}
)
