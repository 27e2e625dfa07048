package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"turfmania/internal/app/commands"
	"turfmania/internal/app/dto"
	"turfmania/internal/app/handlers/support"
	"turfmania/internal/app/middleware"
	"turfmania/internal/app/outbox"
	"turfmania/internal/app/uow"
	domainbooking "turfmania/internal/domain/booking"
	domainslot "turfmania/internal/domain/slot"
	domainturf "turfmania/internal/domain/turf"
)

const createBookingKey = "booking.create"

// CreateBookingCommand books a set of slots for a user after the advance
// payment has been taken. The slot claim and the booking insert commit in
// the same transaction, so two requests racing for a slot cannot both win.
type CreateBookingCommand struct {
	UserID               string
	TurfID               string
	SlotIDs              []string
	AdvanceTransactionID string
	RequestKey           string
}

func (c CreateBookingCommand) Key() string { return createBookingKey }

func (c CreateBookingCommand) IdempotencyKey() string { return c.RequestKey }

func (c CreateBookingCommand) ResultPrototype() any { return &dto.Booking{} }

type CreateBookingHandler struct {
	UoWFactory     uow.UoWFactory
	Outbox         outbox.Outbox
	Encoder        outbox.EventEncoder
	AdvancePercent int64
}

func (h *CreateBookingHandler) Handle(ctx context.Context, cmd CreateBookingCommand) (*dto.Booking, error) {
	slotIDs, err := parseSlotIDs(cmd.SlotIDs)
	if err != nil {
		return nil, err
	}

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

	turf, err := unit.Turfs().ByID(ctx, domainturf.TurfID(cmd.TurfID))
	if err != nil {
		return nil, err
	}
	slots, err := unit.Slots().ByIDs(ctx, turf.ID, slotIDs)
	if err != nil {
		return nil, err
	}
	if len(slots) != len(slotIDs) {
		return nil, domainslot.ErrSlotNotFound
	}

	total := turf.BasePrice
	total.Amount = 0
	for _, s := range slots {
		if !s.Available {
			return nil, domainslot.ErrSlotConflict
		}
		total, err = total.Add(s.Price(turf.BasePrice))
		if err != nil {
			return nil, err
		}
	}
	advance := total.Percent(h.advancePercent())
	final, err := total.Sub(advance)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	b, err := domainbooking.New(domainbooking.CreateParams{
		ID:                   domainbooking.BookingID(uuid.NewString()),
		UserID:               cmd.UserID,
		TurfID:               turf.ID,
		SlotIDs:              slotIDs,
		Total:                total,
		Advance:              advance,
		Final:                final,
		AdvanceTransactionID: cmd.AdvanceTransactionID,
		CreatedAt:            now,
	})
	if err != nil {
		return nil, err
	}
	if err := b.VerifyAdvance(now); err != nil {
		return nil, err
	}

	// The conditional claim is the arbiter under concurrency: the read
	// above may be stale, the claim cannot be.
	if err := unit.Slots().Claim(ctx, turf.ID, slotIDs, string(b.ID)); err != nil {
		return nil, err
	}
	if err := unit.Bookings().Insert(ctx, b); err != nil {
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

func (h *CreateBookingHandler) advancePercent() int64 {
	if h.AdvancePercent <= 0 || h.AdvancePercent > 100 {
		return 50
	}
	return h.AdvancePercent
}

func parseSlotIDs(raw []string) ([]domainslot.SlotID, error) {
	if len(raw) == 0 {
		return nil, domainbooking.ErrEmptySlotSet
	}
	seen := make(map[string]struct{}, len(raw))
	ids := make([]domainslot.SlotID, 0, len(raw))
	for _, id := range raw {
		if _, ok := seen[id]; ok {
			return nil, domainbooking.ErrDuplicateSlots
		}
		seen[id] = struct{}{}
		ids = append(ids, domainslot.SlotID(id))
	}
	return ids, nil
}

var (
	_ commands.Handler[CreateBookingCommand, *dto.Booking] = (*CreateBookingHandler)(nil)
	_ middleware.IdempotentCommand                         = CreateBookingCommand{}
)
