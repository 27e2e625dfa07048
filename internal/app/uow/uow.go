package uow

import (
	"context"

	domainbooking "turfmania/internal/domain/booking"
	domainreviews "turfmania/internal/domain/reviews"
	domainslot "turfmania/internal/domain/slot"
	domainturf "turfmania/internal/domain/turf"
)

// UnitOfWork coordinates repositories inside a transaction boundary. Every
// slot claim/release is applied in the same unit as the booking write it
// belongs to.
type UnitOfWork interface {
	Turfs() domainturf.Repository
	Slots() domainslot.Repository
	Bookings() domainbooking.Repository
	Reviews() domainreviews.Repository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UoWFactory starts unit of work instances.
type UoWFactory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
