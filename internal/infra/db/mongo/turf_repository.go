package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"turfmania/internal/domain/shared/money"
	domainturf "turfmania/internal/domain/turf"
)

type TurfRepository struct {
	col *mongo.Collection
}

func NewTurfRepository(db *mongo.Database) *TurfRepository {
	return &TurfRepository{col: db.Collection("turfs")}
}

func (r *TurfRepository) ByID(ctx context.Context, id domainturf.TurfID) (*domainturf.Turf, error) {
	var doc turfDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainturf.ErrTurfNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *TurfRepository) Save(ctx context.Context, t *domainturf.Turf) error {
	doc := newTurfDocument(t)
	_, err := r.col.UpdateByID(ctx, doc.ID, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	return err
}

type turfDocument struct {
	ID             string                    `bson:"_id"`
	OrganizationID string                    `bson:"organization_id"`
	Name           string                    `bson:"name"`
	BasePrice      moneyDocument             `bson:"base_price"`
	Sports         []string                  `bson:"sports"`
	TeamSize       int                       `bson:"team_size"`
	OperatingHours map[string]windowDocument `bson:"operating_hours"`
	ImageURLs      []string                  `bson:"image_urls"`
	CreatedAt      int64                     `bson:"created_at"`
}

type moneyDocument struct {
	Amount   int64  `bson:"amount"`
	Currency string `bson:"currency"`
}

type windowDocument struct {
	Open  string `bson:"open"`
	Close string `bson:"close"`
}

func newTurfDocument(t *domainturf.Turf) turfDocument {
	hours := make(map[string]windowDocument, len(t.OperatingHours))
	for day, w := range t.OperatingHours {
		hours[day] = windowDocument{Open: w.Open, Close: w.Close}
	}
	return turfDocument{
		ID:             string(t.ID),
		OrganizationID: t.OrganizationID,
		Name:           t.Name,
		BasePrice:      moneyDocument{Amount: t.BasePrice.Amount, Currency: t.BasePrice.Currency},
		Sports:         t.Sports,
		TeamSize:       t.TeamSize,
		OperatingHours: hours,
		ImageURLs:      t.ImageURLs,
		CreatedAt:      t.CreatedAt.UnixMilli(),
	}
}

func (d turfDocument) toAggregate() *domainturf.Turf {
	hours := make(domainturf.OperatingHours, len(d.OperatingHours))
	for day, w := range d.OperatingHours {
		hours[day] = domainturf.OperatingWindow{Open: w.Open, Close: w.Close}
	}
	return &domainturf.Turf{
		ID:             domainturf.TurfID(d.ID),
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		BasePrice:      money.Money{Amount: d.BasePrice.Amount, Currency: d.BasePrice.Currency},
		Sports:         d.Sports,
		TeamSize:       d.TeamSize,
		OperatingHours: hours,
		ImageURLs:      d.ImageURLs,
		CreatedAt:      time.UnixMilli(d.CreatedAt).UTC(),
	}
}
