package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"turfmania/internal/domain/shared/money"
	"turfmania/internal/domain/shared/timerange"
	domainslot "turfmania/internal/domain/slot"
	domainturf "turfmania/internal/domain/turf"
)

type SlotRepository struct {
	col *mongo.Collection
}

func NewSlotRepository(db *mongo.Database) *SlotRepository {
	return &SlotRepository{col: db.Collection("time_slots")}
}

func (r *SlotRepository) ByIDs(ctx context.Context, turfID domainturf.TurfID, ids []domainslot.SlotID) ([]*domainslot.TimeSlot, error) {
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, string(id))
	}
	filter := bson.M{"_id": bson.M{"$in": raw}, "turf_id": string(turfID)}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}}))
}

func (r *SlotRepository) ListRange(ctx context.Context, turfID domainturf.TurfID, from, to time.Time) ([]*domainslot.TimeSlot, error) {
	filter := bson.M{
		"turf_id":    string(turfID),
		"start_time": bson.M{"$lt": to.UnixMilli()},
		"end_time":   bson.M{"$gt": from.UnixMilli()},
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}}))
}

func (r *SlotRepository) ListAvailable(ctx context.Context, turfID domainturf.TurfID, day time.Time) ([]*domainslot.TimeSlot, error) {
	day = day.UTC()
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)
	filter := bson.M{
		"turf_id":      string(turfID),
		"is_available": true,
		"start_time":   bson.M{"$gte": dayStart.UnixMilli(), "$lt": dayEnd.UnixMilli()},
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}}))
}

func (r *SlotRepository) InsertBatch(ctx context.Context, slots []*domainslot.TimeSlot) error {
	if len(slots) == 0 {
		return nil
	}
	docs := make([]any, 0, len(slots))
	for _, s := range slots {
		docs = append(docs, newSlotDocument(s))
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}

// Claim conditionally flips availability on every targeted slot. Under a
// session transaction a short modified count aborts the whole booking, so
// of two racing requests exactly one wins.
func (r *SlotRepository) Claim(ctx context.Context, turfID domainturf.TurfID, ids []domainslot.SlotID, bookingID string) error {
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, string(id))
	}
	filter := bson.M{
		"_id":          bson.M{"$in": raw},
		"turf_id":      string(turfID),
		"is_available": true,
	}
	update := bson.M{"$set": bson.M{"is_available": false, "claimed_by": bookingID}}
	res, err := r.col.UpdateMany(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.ModifiedCount != int64(len(ids)) {
		return domainslot.ErrSlotConflict
	}
	return nil
}

func (r *SlotRepository) Release(ctx context.Context, bookingID string) (int, error) {
	filter := bson.M{"claimed_by": bookingID, "is_available": false}
	update := bson.M{"$set": bson.M{"is_available": true, "claimed_by": ""}}
	res, err := r.col.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return int(res.ModifiedCount), nil
}

func (r *SlotRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*domainslot.TimeSlot, error) {
	cur, err := r.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*domainslot.TimeSlot
	for cur.Next(ctx) {
		var doc slotDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cur.Err()
}

type slotDocument struct {
	ID            string         `bson:"_id"`
	TurfID        string         `bson:"turf_id"`
	StartTime     int64          `bson:"start_time"`
	EndTime       int64          `bson:"end_time"`
	PriceOverride *moneyDocument `bson:"price_override,omitempty"`
	IsAvailable   bool           `bson:"is_available"`
	ClaimedBy     string         `bson:"claimed_by"`
	CreatedAt     int64          `bson:"created_at"`
}

func newSlotDocument(s *domainslot.TimeSlot) slotDocument {
	doc := slotDocument{
		ID:          string(s.ID),
		TurfID:      string(s.TurfID),
		StartTime:   s.Range.Start.UnixMilli(),
		EndTime:     s.Range.End.UnixMilli(),
		IsAvailable: s.Available,
		ClaimedBy:   s.ClaimedBy,
		CreatedAt:   s.CreatedAt.UnixMilli(),
	}
	if s.PriceOverride != nil {
		doc.PriceOverride = &moneyDocument{Amount: s.PriceOverride.Amount, Currency: s.PriceOverride.Currency}
	}
	return doc
}

func (d slotDocument) toAggregate() *domainslot.TimeSlot {
	s := &domainslot.TimeSlot{
		ID:        domainslot.SlotID(d.ID),
		TurfID:    domainturf.TurfID(d.TurfID),
		Range:     timerange.Range{Start: time.UnixMilli(d.StartTime).UTC(), End: time.UnixMilli(d.EndTime).UTC()},
		Available: d.IsAvailable,
		ClaimedBy: d.ClaimedBy,
		CreatedAt: time.UnixMilli(d.CreatedAt).UTC(),
	}
	if d.PriceOverride != nil {
		s.PriceOverride = &money.Money{Amount: d.PriceOverride.Amount, Currency: d.PriceOverride.Currency}
	}
	return s
}
