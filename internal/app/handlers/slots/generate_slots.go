package slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"turfmania/internal/app/commands"
	"turfmania/internal/app/handlers/support"
	"turfmania/internal/app/middleware"
	"turfmania/internal/app/outbox"
	"turfmania/internal/app/uow"
	domainbooking "turfmania/internal/domain/booking"
	"turfmania/internal/domain/shared/events"
	domainslot "turfmania/internal/domain/slot"
	domainturf "turfmania/internal/domain/turf"
)

const generateSlotsKey = "slots.generate"

// GenerateSlotsCommand materializes bookable time slots for a turf over an
// inclusive date range. Re-running the same range only fills gaps.
type GenerateSlotsCommand struct {
	TurfID         string
	OrganizationID string
	StartDate      time.Time
	EndDate        time.Time
	SlotDuration   time.Duration
	RequestKey     string
}

func (c GenerateSlotsCommand) Key() string { return generateSlotsKey }

func (c GenerateSlotsCommand) IdempotencyKey() string { return c.RequestKey }

func (c GenerateSlotsCommand) ResultPrototype() any { return &GenerateSlotsResult{} }

type GenerateSlotsResult struct {
	TurfID    string   `json:"turf_id"`
	Generated int      `json:"generated"`
	SlotIDs   []string `json:"slot_ids"`
}

type GenerateSlotsHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *GenerateSlotsHandler) Handle(ctx context.Context, cmd GenerateSlotsCommand) (*GenerateSlotsResult, error) {
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
	if turf.OrganizationID != cmd.OrganizationID {
		return nil, domainbooking.ErrNotAuthorized
	}

	// Existing slots over the whole window make re-runs idempotent.
	from := cmd.StartDate.UTC()
	to := cmd.EndDate.UTC().Add(24 * time.Hour)
	existing, err := unit.Slots().ListRange(ctx, turf.ID, from, to)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	generated, err := domainslot.Generate(domainslot.GenerateParams{
		Turf:     turf,
		From:     cmd.StartDate,
		To:       cmd.EndDate,
		Duration: cmd.SlotDuration,
		Existing: existing,
		Now:      now,
		NewID:    func() domainslot.SlotID { return domainslot.SlotID(uuid.NewString()) },
	})
	if err != nil {
		return nil, err
	}

	if len(generated) > 0 {
		if err := unit.Slots().InsertBatch(ctx, generated); err != nil {
			return nil, err
		}
		ev := domainslot.SlotsGenerated{
			TurfID: turf.ID,
			From:   cmd.StartDate.UTC(),
			To:     cmd.EndDate.UTC(),
			Count:  len(generated),
			At:     now,
		}
		if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, []events.DomainEvent{ev}); err != nil {
			return nil, err
		}
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}

	ids := make([]string, 0, len(generated))
	for _, s := range generated {
		ids = append(ids, string(s.ID))
	}
	return &GenerateSlotsResult{TurfID: cmd.TurfID, Generated: len(generated), SlotIDs: ids}, nil
}

var (
	_ commands.Handler[GenerateSlotsCommand, *GenerateSlotsResult] = (*GenerateSlotsHandler)(nil)
	_ middleware.IdempotentCommand                                 = GenerateSlotsCommand{}
)
