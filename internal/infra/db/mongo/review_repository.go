package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "turfmania/internal/domain/booking"
	domainreviews "turfmania/internal/domain/reviews"
	domainturf "turfmania/internal/domain/turf"
)

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	col := db.Collection("turf_reviews")
	// One review per booking and author.
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "booking_id", Value: 1}, {Key: "author_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &ReviewRepository{col: col}
}

func (r *ReviewRepository) ByBooking(ctx context.Context, bookingID domainbooking.BookingID, authorID string) (*domainreviews.Review, error) {
	var doc reviewDocument
	filter := bson.M{"booking_id": string(bookingID), "author_id": authorID}
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainreviews.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ReviewRepository) ListByTurf(ctx context.Context, turfID domainturf.TurfID, limit, offset int) ([]*domainreviews.Review, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{"turf_id": string(turfID)}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*domainreviews.Review
	for cur.Next(ctx) {
		var doc reviewDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cur.Err()
}

func (r *ReviewRepository) Save(ctx context.Context, review *domainreviews.Review) error {
	_, err := r.col.InsertOne(ctx, newReviewDocument(review))
	if mongo.IsDuplicateKeyError(err) {
		return domainreviews.ErrAlreadySubmitted
	}
	return err
}

type reviewDocument struct {
	ID        string `bson:"_id"`
	BookingID string `bson:"booking_id"`
	AuthorID  string `bson:"author_id"`
	TurfID    string `bson:"turf_id"`
	Rating    int    `bson:"rating"`
	Text      string `bson:"text"`
	CreatedAt int64  `bson:"created_at"`
}

func newReviewDocument(r *domainreviews.Review) reviewDocument {
	return reviewDocument{
		ID:        string(r.ID),
		BookingID: string(r.BookingID),
		AuthorID:  r.AuthorID,
		TurfID:    string(r.TurfID),
		Rating:    r.Rating,
		Text:      r.Text,
		CreatedAt: r.CreatedAt.UnixMilli(),
	}
}

func (d reviewDocument) toAggregate() *domainreviews.Review {
	return &domainreviews.Review{
		ID:        domainreviews.ReviewID(d.ID),
		BookingID: domainbooking.BookingID(d.BookingID),
		AuthorID:  d.AuthorID,
		TurfID:    domainturf.TurfID(d.TurfID),
		Rating:    d.Rating,
		Text:      d.Text,
		CreatedAt: time.UnixMilli(d.CreatedAt).UTC(),
	}
}
