package booking

import (
	"context"
	"errors"
	"time"

	"turfmania/internal/domain/shared/events"
	"turfmania/internal/domain/shared/money"
	"turfmania/internal/domain/slot"
	"turfmania/internal/domain/turf"
)

var (
	ErrBookingNotFound    = errors.New("booking: not found")
	ErrInvalidState       = errors.New("booking: invalid state transition")
	ErrEmptySlotSet       = errors.New("booking: time slot set must not be empty")
	ErrDuplicateSlots     = errors.New("booking: duplicate time slot references")
	ErrAdvanceTxnRequired = errors.New("booking: advance payment transaction id required")
	ErrFinalTxnRequired   = errors.New("booking: final payment transaction id required")
	ErrNotAuthorized      = errors.New("booking: organization not authorized")
	ErrAmountMismatch     = errors.New("booking: total must equal advance plus final")
)

type BookingID string

type Status string

const (
	// StatusCreated exists in the machine but is never persisted: bookings
	// are inserted only after the advance verification transition.
	StatusCreated     Status = "created"
	StatusAdvancePaid Status = "advance_payment_completed"
	StatusCompleted   Status = "completed"
	StatusRejected    Status = "rejected"
)

type PaymentMethod string

const (
	MethodStripe PaymentMethod = "stripe"
	MethodCash   PaymentMethod = "cash"
)

// Booking is a user's claim over one or more time slots of a turf, tracked
// through the advance/final payment lifecycle.
type Booking struct {
	ID                   BookingID
	UserID               string
	TurfID               turf.TurfID
	SlotIDs              []slot.SlotID
	Total                money.Money
	Advance              money.Money
	Final                money.Money
	Status               Status
	AdvanceTransactionID string
	FinalTransactionID   string
	FinalPaymentMethod   PaymentMethod
	Paid                 bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
	Version              int64
	events.EventRecorder
}

type CreateParams struct {
	ID                   BookingID
	UserID               string
	TurfID               turf.TurfID
	SlotIDs              []slot.SlotID
	Total                money.Money
	Advance              money.Money
	Final                money.Money
	AdvanceTransactionID string
	CreatedAt            time.Time
}

func New(params CreateParams) (*Booking, error) {
	if params.UserID == "" {
		return nil, errors.New("booking: user id required")
	}
	if len(params.SlotIDs) == 0 {
		return nil, ErrEmptySlotSet
	}
	if hasDuplicates(params.SlotIDs) {
		return nil, ErrDuplicateSlots
	}
	if params.AdvanceTransactionID == "" {
		return nil, ErrAdvanceTxnRequired
	}
	if params.Advance.IsNegative() || params.Final.IsNegative() {
		return nil, ErrAmountMismatch
	}
	sum, err := params.Advance.Add(params.Final)
	if err != nil || sum != params.Total {
		return nil, ErrAmountMismatch
	}
	now := params.CreatedAt.UTC()
	b := &Booking{
		ID:                   params.ID,
		UserID:               params.UserID,
		TurfID:               params.TurfID,
		SlotIDs:              append([]slot.SlotID(nil), params.SlotIDs...),
		Total:                params.Total,
		Advance:              params.Advance,
		Final:                params.Final,
		Status:               StatusCreated,
		AdvanceTransactionID: params.AdvanceTransactionID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	b.Record(BookingRequested{BookingID: b.ID, TurfID: b.TurfID, UserID: b.UserID, SlotIDs: b.SlotIDs, Total: b.Total, At: now})
	return b, nil
}

// VerifyAdvance moves a freshly created booking to advance_payment_completed.
// The advance transaction id is treated as an opaque token already verified
// by the payment provider.
func (b *Booking) VerifyAdvance(now time.Time) error {
	if b.Status != StatusCreated {
		return ErrInvalidState
	}
	b.Status = StatusAdvancePaid
	b.UpdatedAt = now.UTC()
	b.Record(AdvanceVerified{BookingID: b.ID, TransactionID: b.AdvanceTransactionID, Amount: b.Advance, At: b.UpdatedAt})
	return nil
}

// CompleteCash settles the remaining balance in cash at the venue.
func (b *Booking) CompleteCash(now time.Time) error {
	return b.complete(MethodCash, "", now)
}

// CompleteStripe settles the remaining balance by card, recording the final
// payment transaction id.
func (b *Booking) CompleteStripe(transactionID string, now time.Time) error {
	if transactionID == "" {
		return ErrFinalTxnRequired
	}
	return b.complete(MethodStripe, transactionID, now)
}

func (b *Booking) complete(method PaymentMethod, transactionID string, now time.Time) error {
	if b.Status != StatusAdvancePaid {
		return ErrInvalidState
	}
	b.Status = StatusCompleted
	b.FinalPaymentMethod = method
	b.FinalTransactionID = transactionID
	b.Paid = true
	b.UpdatedAt = now.UTC()
	b.Record(BookingCompleted{BookingID: b.ID, TurfID: b.TurfID, Method: method, Total: b.Total, At: b.UpdatedAt})
	return nil
}

// Reject cancels the booking before completion. The caller must release the
// claimed slots in the same transaction.
func (b *Booking) Reject(now time.Time) error {
	if b.Status != StatusCreated && b.Status != StatusAdvancePaid {
		return ErrInvalidState
	}
	b.Status = StatusRejected
	b.UpdatedAt = now.UTC()
	b.Record(BookingRejected{BookingID: b.ID, TurfID: b.TurfID, SlotIDs: b.SlotIDs, At: b.UpdatedAt})
	return nil
}

func hasDuplicates(ids []slot.SlotID) bool {
	seen := make(map[slot.SlotID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}

// EarningsComponent selects which amount the earnings aggregation sums.
type EarningsComponent string

const (
	ComponentTotal   EarningsComponent = "total"
	ComponentAdvance EarningsComponent = "advance"
	ComponentFinal   EarningsComponent = "final"
)

// ListFilters narrows organization-side booking listings.
type ListFilters struct {
	Status    Status
	From      time.Time
	To        time.Time
	Paid      *bool
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	Insert(ctx context.Context, b *Booking) error
	// Save persists state transitions with an optimistic version check.
	Save(ctx context.Context, b *Booking) error
	ListByUser(ctx context.Context, userID string) ([]*Booking, error)
	ListByTurf(ctx context.Context, turfID turf.TurfID, f ListFilters) ([]*Booking, int64, error)
	// MonthlyEarnings sums the selected component over completed, paid
	// bookings of the turf, keyed by month (1..12) of the given year.
	MonthlyEarnings(ctx context.Context, turfID turf.TurfID, year int, component EarningsComponent) (map[time.Month]int64, error)
	// HasCompletedForTurf reports whether the user has at least one
	// completed booking on the turf; gates review submission.
	HasCompletedForTurf(ctx context.Context, userID string, turfID turf.TurfID) (bool, error)
}
