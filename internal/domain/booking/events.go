package booking

import (
	"time"

	"turfmania/internal/domain/shared/money"
	"turfmania/internal/domain/slot"
	"turfmania/internal/domain/turf"
)

type BookingRequested struct {
	BookingID BookingID
	TurfID    turf.TurfID
	UserID    string
	SlotIDs   []slot.SlotID
	Total     money.Money
	At        time.Time
}

func (e BookingRequested) EventName() string     { return "booking.requested" }
func (e BookingRequested) AggregateID() string   { return string(e.BookingID) }
func (e BookingRequested) OccurredAt() time.Time { return e.At }

type AdvanceVerified struct {
	BookingID     BookingID
	TransactionID string
	Amount        money.Money
	At            time.Time
}

func (e AdvanceVerified) EventName() string     { return "booking.advance_verified" }
func (e AdvanceVerified) AggregateID() string   { return string(e.BookingID) }
func (e AdvanceVerified) OccurredAt() time.Time { return e.At }

type BookingCompleted struct {
	BookingID BookingID
	TurfID    turf.TurfID
	Method    PaymentMethod
	Total     money.Money
	At        time.Time
}

func (e BookingCompleted) EventName() string     { return "booking.completed" }
func (e BookingCompleted) AggregateID() string   { return string(e.BookingID) }
func (e BookingCompleted) OccurredAt() time.Time { return e.At }

type BookingRejected struct {
	BookingID BookingID
	TurfID    turf.TurfID
	SlotIDs   []slot.SlotID
	At        time.Time
}

func (e BookingRejected) EventName() string     { return "booking.rejected" }
func (e BookingRejected) AggregateID() string   { return string(e.BookingID) }
func (e BookingRejected) OccurredAt() time.Time { return e.At }
