package reviews

import (
	"context"
	"errors"
	"strings"
	"time"

	"turfmania/internal/domain/booking"
	"turfmania/internal/domain/shared/events"
	"turfmania/internal/domain/turf"
)

var (
	ErrInvalidRating    = errors.New("reviews: rating must be between 1 and 5")
	ErrNotFound         = errors.New("reviews: not found")
	ErrAlreadySubmitted = errors.New("reviews: booking already reviewed")
	ErrNotEligible      = errors.New("reviews: only completed bookings can be reviewed")
)

type ReviewID string

type Review struct {
	ID        ReviewID
	BookingID booking.BookingID
	AuthorID  string
	TurfID    turf.TurfID
	Rating    int
	Text      string
	CreatedAt time.Time
	events.EventRecorder
}

type Repository interface {
	ByBooking(ctx context.Context, bookingID booking.BookingID, authorID string) (*Review, error)
	ListByTurf(ctx context.Context, turfID turf.TurfID, limit, offset int) ([]*Review, error)
	Save(ctx context.Context, review *Review) error
}

type SubmitParams struct {
	ID        ReviewID
	BookingID booking.BookingID
	AuthorID  string
	TurfID    turf.TurfID
	Rating    int
	Text      string
	CreatedAt time.Time
}

func Submit(params SubmitParams) (*Review, error) {
	if params.Rating < 1 || params.Rating > 5 {
		return nil, ErrInvalidRating
	}
	review := &Review{
		ID:        params.ID,
		BookingID: params.BookingID,
		AuthorID:  params.AuthorID,
		TurfID:    params.TurfID,
		Rating:    params.Rating,
		Text:      strings.TrimSpace(params.Text),
		CreatedAt: params.CreatedAt.UTC(),
	}
	review.Record(ReviewSubmitted{ReviewID: review.ID, BookingID: review.BookingID, TurfID: review.TurfID, Rating: review.Rating, At: review.CreatedAt})
	return review, nil
}

type ReviewSubmitted struct {
	ReviewID  ReviewID
	BookingID booking.BookingID
	TurfID    turf.TurfID
	Rating    int
	At        time.Time
}

func (e ReviewSubmitted) EventName() string     { return "reviews.submitted" }
func (e ReviewSubmitted) AggregateID() string   { return string(e.ReviewID) }
func (e ReviewSubmitted) OccurredAt() time.Time { return e.At }
