package memory

import (
	"context"
	"errors"

	"turfmania/internal/app/uow"
	domainbooking "turfmania/internal/domain/booking"
	domainreviews "turfmania/internal/domain/reviews"
	domainslot "turfmania/internal/domain/slot"
	domainturf "turfmania/internal/domain/turf"
)

// Factory wires in-memory repositories into a unit-of-work boundary.
type Factory struct {
	TurfRepo    domainturf.Repository
	SlotRepo    domainslot.Repository
	BookingRepo domainbooking.Repository
	ReviewRepo  domainreviews.Repository
}

var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Begin starts a lightweight transaction boundary. No isolation is provided
// but the abstraction matches the application ports; the slot repository's
// single-lock claim preserves the all-or-nothing guarantee.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.TurfRepo == nil || f.SlotRepo == nil || f.BookingRepo == nil || f.ReviewRepo == nil {
		return nil, ErrFactoryMisconfigured
	}
	return &Unit{
		turfs:    f.TurfRepo,
		slots:    f.SlotRepo,
		bookings: f.BookingRepo,
		reviews:  f.ReviewRepo,
	}, nil
}

// Unit is a lightweight uow.UnitOfWork backed by in-memory stores.
type Unit struct {
	turfs    domainturf.Repository
	slots    domainslot.Repository
	bookings domainbooking.Repository
	reviews  domainreviews.Repository
}

func (u *Unit) Turfs() domainturf.Repository { return u.turfs }

func (u *Unit) Slots() domainslot.Repository { return u.slots }

func (u *Unit) Bookings() domainbooking.Repository { return u.bookings }

func (u *Unit) Reviews() domainreviews.Repository { return u.reviews }

func (u *Unit) Commit(ctx context.Context) error { return nil }

func (u *Unit) Rollback(ctx context.Context) error { return nil }
