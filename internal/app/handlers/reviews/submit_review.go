package reviews

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"turfmania/internal/app/commands"
	"turfmania/internal/app/dto"
	"turfmania/internal/app/handlers/support"
	"turfmania/internal/app/middleware"
	"turfmania/internal/app/outbox"
	"turfmania/internal/app/uow"
	domainbooking "turfmania/internal/domain/booking"
	domainreviews "turfmania/internal/domain/reviews"
	domainturf "turfmania/internal/domain/turf"
)

const submitReviewKey = "reviews.submit"

// SubmitReviewCommand records a rating for a turf. Only the author of a
// completed booking on that turf may review it, once per booking.
type SubmitReviewCommand struct {
	TurfID     string
	BookingID  string
	AuthorID   string
	Rating     int
	Text       string
	RequestKey string
}

func (c SubmitReviewCommand) Key() string { return submitReviewKey }

func (c SubmitReviewCommand) IdempotencyKey() string { return c.RequestKey }

func (c SubmitReviewCommand) ResultPrototype() any { return &dto.Review{} }

type SubmitReviewHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *SubmitReviewHandler) Handle(ctx context.Context, cmd SubmitReviewCommand) (*dto.Review, error) {
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
	if b.UserID != cmd.AuthorID || string(b.TurfID) != cmd.TurfID {
		return nil, domainreviews.ErrNotEligible
	}
	if b.Status != domainbooking.StatusCompleted {
		return nil, domainreviews.ErrNotEligible
	}

	if _, err := unit.Reviews().ByBooking(ctx, b.ID, cmd.AuthorID); err == nil {
		return nil, domainreviews.ErrAlreadySubmitted
	} else if !errors.Is(err, domainreviews.ErrNotFound) {
		return nil, err
	}

	review, err := domainreviews.Submit(domainreviews.SubmitParams{
		ID:        domainreviews.ReviewID(uuid.NewString()),
		BookingID: b.ID,
		AuthorID:  cmd.AuthorID,
		TurfID:    domainturf.TurfID(cmd.TurfID),
		Rating:    cmd.Rating,
		Text:      cmd.Text,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	if err := unit.Reviews().Save(ctx, review); err != nil {
		return nil, err
	}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, review.PendingEvents()); err != nil {
		return nil, err
	}
	review.ClearEvents()

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}

	result := dto.MapReview(review)
	return &result, nil
}

var (
	_ commands.Handler[SubmitReviewCommand, *dto.Review] = (*SubmitReviewHandler)(nil)
	_ middleware.IdempotentCommand                       = SubmitReviewCommand{}
)
