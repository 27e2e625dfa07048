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

const (
	completeCashKey   = "booking.complete_cash"
	completeStripeKey = "booking.complete_stripe"
)

// CompleteCashCommand settles the remaining balance of a booking in cash.
// Only the organization that owns the booked turf may complete it.
type CompleteCashCommand struct {
	BookingID      string
	OrganizationID string
	RequestKey     string
}

func (c CompleteCashCommand) Key() string { return completeCashKey }

func (c CompleteCashCommand) IdempotencyKey() string { return c.RequestKey }

func (c CompleteCashCommand) ResultPrototype() any { return &dto.Booking{} }

// CompleteStripeCommand settles the remaining balance by card, recording the
// provider transaction id.
type CompleteStripeCommand struct {
	BookingID          string
	OrganizationID     string
	FinalTransactionID string
	RequestKey         string
}

func (c CompleteStripeCommand) Key() string { return completeStripeKey }

func (c CompleteStripeCommand) IdempotencyKey() string { return c.RequestKey }

func (c CompleteStripeCommand) ResultPrototype() any { return &dto.Booking{} }

type CompleteBookingHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *CompleteBookingHandler) HandleCash(ctx context.Context, cmd CompleteCashCommand) (*dto.Booking, error) {
	return h.complete(ctx, cmd.BookingID, cmd.OrganizationID, func(b *domainbooking.Booking, now time.Time) error {
		return b.CompleteCash(now)
	})
}

func (h *CompleteBookingHandler) HandleStripe(ctx context.Context, cmd CompleteStripeCommand) (*dto.Booking, error) {
	return h.complete(ctx, cmd.BookingID, cmd.OrganizationID, func(b *domainbooking.Booking, now time.Time) error {
		return b.CompleteStripe(cmd.FinalTransactionID, now)
	})
}

func (h *CompleteBookingHandler) complete(ctx context.Context, bookingID, organizationID string, transition func(*domainbooking.Booking, time.Time) error) (*dto.Booking, error) {
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

	b, err := unit.Bookings().ByID(ctx, domainbooking.BookingID(bookingID))
	if err != nil {
		return nil, err
	}
	turf, err := unit.Turfs().ByID(ctx, b.TurfID)
	if err != nil {
		return nil, err
	}
	if turf.OrganizationID != organizationID {
		return nil, domainbooking.ErrNotAuthorized
	}

	if err := transition(b, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := unit.Bookings().Save(ctx, b); err != nil {
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

// cashHandler and stripeHandler expose the shared handler under the two
// command types the bus expects.
type CashHandler struct{ *CompleteBookingHandler }

func (h CashHandler) Handle(ctx context.Context, cmd CompleteCashCommand) (*dto.Booking, error) {
	return h.HandleCash(ctx, cmd)
}

type StripeHandler struct{ *CompleteBookingHandler }

func (h StripeHandler) Handle(ctx context.Context, cmd CompleteStripeCommand) (*dto.Booking, error) {
	return h.HandleStripe(ctx, cmd)
}

var (
	_ commands.Handler[CompleteCashCommand, *dto.Booking]   = CashHandler{}
	_ commands.Handler[CompleteStripeCommand, *dto.Booking] = StripeHandler{}
	_ middleware.IdempotentCommand                          = CompleteCashCommand{}
	_ middleware.IdempotentCommand                          = CompleteStripeCommand{}
)
