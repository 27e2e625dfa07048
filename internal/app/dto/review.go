package dto

import (
	"time"

	domainreviews "turfmania/internal/domain/reviews"
)

type Review struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	AuthorID  string    `json:"author_id"`
	TurfID    string    `json:"turf_id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewCollection struct {
	Items []Review `json:"items"`
}

func MapReview(r *domainreviews.Review) Review {
	return Review{
		ID:        string(r.ID),
		BookingID: string(r.BookingID),
		AuthorID:  r.AuthorID,
		TurfID:    string(r.TurfID),
		Rating:    r.Rating,
		Text:      r.Text,
		CreatedAt: r.CreatedAt,
	}
}
