package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turfmania/internal/domain/shared/money"
	"turfmania/internal/domain/slot"
)

func validParams() CreateParams {
	return CreateParams{
		ID:                   "bk-1",
		UserID:               "user-1",
		TurfID:               "turf-1",
		SlotIDs:              []slot.SlotID{"s1", "s2"},
		Total:                money.Must(200000, "BDT"),
		Advance:              money.Must(100000, "BDT"),
		Final:                money.Must(100000, "BDT"),
		AdvanceTransactionID: "txn-adv-1",
		CreatedAt:            time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewBooking(t *testing.T) {
	b, err := New(validParams())
	require.NoError(t, err)
	assert.Equal(t, StatusCreated, b.Status)
	assert.False(t, b.Paid)
	require.Len(t, b.PendingEvents(), 1)
	assert.Equal(t, "booking.requested", b.PendingEvents()[0].EventName())
}

func TestNewBookingValidation(t *testing.T) {
	t.Run("empty slot set", func(t *testing.T) {
		p := validParams()
		p.SlotIDs = nil
		_, err := New(p)
		assert.ErrorIs(t, err, ErrEmptySlotSet)
	})

	t.Run("duplicate slots", func(t *testing.T) {
		p := validParams()
		p.SlotIDs = []slot.SlotID{"s1", "s1"}
		_, err := New(p)
		assert.ErrorIs(t, err, ErrDuplicateSlots)
	})

	t.Run("missing advance transaction", func(t *testing.T) {
		p := validParams()
		p.AdvanceTransactionID = ""
		_, err := New(p)
		assert.ErrorIs(t, err, ErrAdvanceTxnRequired)
	})

	t.Run("amounts must sum to total", func(t *testing.T) {
		p := validParams()
		p.Advance = money.Must(50000, "BDT")
		_, err := New(p)
		assert.ErrorIs(t, err, ErrAmountMismatch)
	})

	t.Run("negative component", func(t *testing.T) {
		p := validParams()
		p.Advance = money.Must(250000, "BDT")
		p.Final = money.Must(-50000, "BDT")
		_, err := New(p)
		assert.ErrorIs(t, err, ErrAmountMismatch)
	})
}

func TestAdvanceVerification(t *testing.T) {
	b, err := New(validParams())
	require.NoError(t, err)

	require.NoError(t, b.VerifyAdvance(time.Now()))
	assert.Equal(t, StatusAdvancePaid, b.Status)
	assert.False(t, b.Paid)

	assert.ErrorIs(t, b.VerifyAdvance(time.Now()), ErrInvalidState)
}

func TestCompleteCash(t *testing.T) {
	b, err := New(validParams())
	require.NoError(t, err)
	require.NoError(t, b.VerifyAdvance(time.Now()))

	require.NoError(t, b.CompleteCash(time.Now()))
	assert.Equal(t, StatusCompleted, b.Status)
	assert.Equal(t, MethodCash, b.FinalPaymentMethod)
	assert.Empty(t, b.FinalTransactionID)
	assert.True(t, b.Paid, "paid flips only on completion")

	assert.ErrorIs(t, b.CompleteCash(time.Now()), ErrInvalidState)
}

func TestCompleteStripe(t *testing.T) {
	b, err := New(validParams())
	require.NoError(t, err)
	require.NoError(t, b.VerifyAdvance(time.Now()))

	assert.ErrorIs(t, b.CompleteStripe("", time.Now()), ErrFinalTxnRequired)

	require.NoError(t, b.CompleteStripe("txn-final-1", time.Now()))
	assert.Equal(t, StatusCompleted, b.Status)
	assert.Equal(t, MethodStripe, b.FinalPaymentMethod)
	assert.Equal(t, "txn-final-1", b.FinalTransactionID)
	assert.True(t, b.Paid)
}

func TestCompleteRequiresAdvance(t *testing.T) {
	b, err := New(validParams())
	require.NoError(t, err)
	assert.ErrorIs(t, b.CompleteCash(time.Now()), ErrInvalidState)
}

func TestReject(t *testing.T) {
	t.Run("from created", func(t *testing.T) {
		b, err := New(validParams())
		require.NoError(t, err)
		require.NoError(t, b.Reject(time.Now()))
		assert.Equal(t, StatusRejected, b.Status)
		assert.False(t, b.Paid)
	})

	t.Run("from advance paid", func(t *testing.T) {
		b, err := New(validParams())
		require.NoError(t, err)
		require.NoError(t, b.VerifyAdvance(time.Now()))
		require.NoError(t, b.Reject(time.Now()))
		assert.Equal(t, StatusRejected, b.Status)
	})

	t.Run("terminal states", func(t *testing.T) {
		b, err := New(validParams())
		require.NoError(t, err)
		require.NoError(t, b.VerifyAdvance(time.Now()))
		require.NoError(t, b.CompleteCash(time.Now()))
		assert.ErrorIs(t, b.Reject(time.Now()), ErrInvalidState)

		rejected, err := New(validParams())
		require.NoError(t, err)
		require.NoError(t, rejected.Reject(time.Now()))
		assert.ErrorIs(t, rejected.Reject(time.Now()), ErrInvalidState)
		assert.ErrorIs(t, rejected.VerifyAdvance(time.Now()), ErrInvalidState)
	})
}

func TestLifecycleEvents(t *testing.T) {
	b, err := New(validParams())
	require.NoError(t, err)
	require.NoError(t, b.VerifyAdvance(time.Now()))
	require.NoError(t, b.CompleteStripe("txn-final-1", time.Now()))

	names := make([]string, 0, 3)
	for _, ev := range b.PendingEvents() {
		names = append(names, ev.EventName())
	}
	assert.Equal(t, []string{"booking.requested", "booking.advance_verified", "booking.completed"}, names)

	b.ClearEvents()
	assert.Empty(t, b.PendingEvents())
}
