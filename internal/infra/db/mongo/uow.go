package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"turfmania/internal/app/uow"
	domainbooking "turfmania/internal/domain/booking"
	domainreviews "turfmania/internal/domain/reviews"
	domainslot "turfmania/internal/domain/slot"
	domainturf "turfmania/internal/domain/turf"
)

// Factory wires Mongo sessions into the generic UnitOfWork interface. The
// slot claim and the booking insert of one request run under the same
// session transaction.
type Factory struct {
	DB *mongo.Database

	TurfRepo    domainturf.Repository
	SlotRepo    domainslot.Repository
	BookingRepo domainbooking.Repository
	ReviewRepo  domainreviews.Repository
}

var ErrUnitOfWorkNotConfigured = errors.New("mongo: unit of work factory missing database")

// Begin starts a MongoDB session/transaction.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.DB == nil {
		return nil, ErrUnitOfWorkNotConfigured
	}
	session, err := f.DB.Client().StartSession()
	if err != nil {
		return nil, err
	}
	txnOpts := options.Transaction().
		SetReadConcern(f.DB.ReadConcern()).
		SetWriteConcern(f.DB.WriteConcern())
	if err := session.StartTransaction(txnOpts); err != nil {
		session.EndSession(ctx)
		return nil, err
	}
	return &Unit{
		db:       f.DB,
		session:  session,
		turfs:    f.TurfRepo,
		slots:    f.SlotRepo,
		bookings: f.BookingRepo,
		reviews:  f.ReviewRepo,
	}, nil
}

type Unit struct {
	db      *mongo.Database
	session mongo.Session

	turfs    domainturf.Repository
	slots    domainslot.Repository
	bookings domainbooking.Repository
	reviews  domainreviews.Repository
}

func (u *Unit) Turfs() domainturf.Repository { return u.turfs }

func (u *Unit) Slots() domainslot.Repository { return u.slots }

func (u *Unit) Bookings() domainbooking.Repository { return u.bookings }

func (u *Unit) Reviews() domainreviews.Repository { return u.reviews }

func (u *Unit) Commit(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.CommitTransaction(ctx)
}

func (u *Unit) Rollback(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.AbortTransaction(ctx)
}

// InjectContext makes the Mongo session available to downstream repositories.
func (u *Unit) InjectContext(ctx context.Context) context.Context {
	return mongo.NewSessionContext(ctx, u.session)
}
