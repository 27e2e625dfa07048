package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "turfmania/internal/domain/booking"
	"turfmania/internal/domain/shared/money"
	domainslot "turfmania/internal/domain/slot"
	domainturf "turfmania/internal/domain/turf"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection("bookings")}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrBookingNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *BookingRepository) Insert(ctx context.Context, b *domainbooking.Booking) error {
	_, err := r.col.InsertOne(ctx, newBookingDocument(b))
	return err
}

// Save applies a state transition with an optimistic version check.
func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	filter := bson.M{"_id": doc.ID, "version": b.Version}
	doc.Version = b.Version + 1
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrConcurrentUpdate
	}
	b.Version = doc.Version
	return nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]*domainbooking.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{"user_id": userID}, opts)
}

func (r *BookingRepository) ListByTurf(ctx context.Context, turfID domainturf.TurfID, f domainbooking.ListFilters) ([]*domainbooking.Booking, int64, error) {
	filter := bson.M{"turf_id": string(turfID)}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.Paid != nil {
		filter["is_paid"] = *f.Paid
	}
	created := bson.M{}
	if !f.From.IsZero() {
		created["$gte"] = f.From.UnixMilli()
	}
	if !f.To.IsZero() {
		created["$lt"] = f.To.UnixMilli()
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	order := -1
	if f.SortOrder == "asc" {
		order = 1
	}
	sortField := f.SortBy
	if sortField == "" {
		sortField = "created_at"
	}
	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: order}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	items, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// MonthlyEarnings groups completed paid bookings of one calendar year by
// month of creation, summing the selected amount component.
func (r *BookingRepository) MonthlyEarnings(ctx context.Context, turfID domainturf.TurfID, year int, component domainbooking.EarningsComponent) (map[time.Month]int64, error) {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)

	field := "$total_amount.amount"
	switch component {
	case domainbooking.ComponentAdvance:
		field = "$advance_amount.amount"
	case domainbooking.ComponentFinal:
		field = "$final_amount.amount"
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"turf_id":    string(turfID),
			"status":     string(domainbooking.StatusCompleted),
			"is_paid":    true,
			"created_at": bson.M{"$gte": yearStart.UnixMilli(), "$lt": yearEnd.UnixMilli()},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":    bson.M{"$month": bson.M{"$toDate": "$created_at"}},
			"amount": bson.M{"$sum": field},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[time.Month]int64, 12)
	for cur.Next(ctx) {
		var row struct {
			Month  int   `bson:"_id"`
			Amount int64 `bson:"amount"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		if row.Month >= 1 && row.Month <= 12 {
			out[time.Month(row.Month)] = row.Amount
		}
	}
	return out, cur.Err()
}

func (r *BookingRepository) HasCompletedForTurf(ctx context.Context, userID string, turfID domainturf.TurfID) (bool, error) {
	filter := bson.M{
		"user_id": userID,
		"turf_id": string(turfID),
		"status":  string(domainbooking.StatusCompleted),
	}
	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *BookingRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*domainbooking.Booking, error) {
	cur, err := r.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*domainbooking.Booking
	for cur.Next(ctx) {
		var doc bookingDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cur.Err()
}

type bookingDocument struct {
	ID                   string        `bson:"_id"`
	UserID               string        `bson:"user_id"`
	TurfID               string        `bson:"turf_id"`
	SlotIDs              []string      `bson:"time_slot_ids"`
	TotalAmount          moneyDocument `bson:"total_amount"`
	AdvanceAmount        moneyDocument `bson:"advance_amount"`
	FinalAmount          moneyDocument `bson:"final_amount"`
	Status               string        `bson:"status"`
	AdvanceTransactionID string        `bson:"advance_payment_transaction_id"`
	FinalTransactionID   string        `bson:"final_payment_transaction_id"`
	FinalPaymentMethod   string        `bson:"final_payment_method"`
	IsPaid               bool          `bson:"is_paid"`
	CreatedAt            int64         `bson:"created_at"`
	UpdatedAt            int64         `bson:"updated_at"`
	Version              int64         `bson:"version"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	slotIDs := make([]string, 0, len(b.SlotIDs))
	for _, id := range b.SlotIDs {
		slotIDs = append(slotIDs, string(id))
	}
	return bookingDocument{
		ID:                   string(b.ID),
		UserID:               b.UserID,
		TurfID:               string(b.TurfID),
		SlotIDs:              slotIDs,
		TotalAmount:          moneyDocument{Amount: b.Total.Amount, Currency: b.Total.Currency},
		AdvanceAmount:        moneyDocument{Amount: b.Advance.Amount, Currency: b.Advance.Currency},
		FinalAmount:          moneyDocument{Amount: b.Final.Amount, Currency: b.Final.Currency},
		Status:               string(b.Status),
		AdvanceTransactionID: b.AdvanceTransactionID,
		FinalTransactionID:   b.FinalTransactionID,
		FinalPaymentMethod:   string(b.FinalPaymentMethod),
		IsPaid:               b.Paid,
		CreatedAt:            b.CreatedAt.UnixMilli(),
		UpdatedAt:            b.UpdatedAt.UnixMilli(),
		Version:              b.Version,
	}
}

func (d bookingDocument) toAggregate() *domainbooking.Booking {
	slotIDs := make([]domainslot.SlotID, 0, len(d.SlotIDs))
	for _, id := range d.SlotIDs {
		slotIDs = append(slotIDs, domainslot.SlotID(id))
	}
	return &domainbooking.Booking{
		ID:                   domainbooking.BookingID(d.ID),
		UserID:               d.UserID,
		TurfID:               domainturf.TurfID(d.TurfID),
		SlotIDs:              slotIDs,
		Total:                money.Money{Amount: d.TotalAmount.Amount, Currency: d.TotalAmount.Currency},
		Advance:              money.Money{Amount: d.AdvanceAmount.Amount, Currency: d.AdvanceAmount.Currency},
		Final:                money.Money{Amount: d.FinalAmount.Amount, Currency: d.FinalAmount.Currency},
		Status:               domainbooking.Status(d.Status),
		AdvanceTransactionID: d.AdvanceTransactionID,
		FinalTransactionID:   d.FinalTransactionID,
		FinalPaymentMethod:   domainbooking.PaymentMethod(d.FinalPaymentMethod),
		Paid:                 d.IsPaid,
		CreatedAt:            time.UnixMilli(d.CreatedAt).UTC(),
		UpdatedAt:            time.UnixMilli(d.UpdatedAt).UTC(),
		Version:              d.Version,
	}
}
