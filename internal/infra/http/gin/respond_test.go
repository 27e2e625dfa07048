package ginserver

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	domainbooking "turfmania/internal/domain/booking"
	domainreviews "turfmania/internal/domain/reviews"
	domainslot "turfmania/internal/domain/slot"
	domainturf "turfmania/internal/domain/turf"
	"turfmania/internal/infra/storage/memory"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domainturf.ErrTurfNotFound, http.StatusNotFound},
		{domainbooking.ErrBookingNotFound, http.StatusNotFound},
		{domainslot.ErrSlotNotFound, http.StatusNotFound},
		{domainreviews.ErrNotFound, http.StatusNotFound},
		{domainslot.ErrSlotConflict, http.StatusConflict},
		{domainbooking.ErrInvalidState, http.StatusConflict},
		{domainreviews.ErrAlreadySubmitted, http.StatusConflict},
		{memory.ErrConcurrentUpdate, http.StatusConflict},
		{domainbooking.ErrNotAuthorized, http.StatusForbidden},
		{domainreviews.ErrNotEligible, http.StatusForbidden},
		{domainbooking.ErrEmptySlotSet, http.StatusBadRequest},
		{domainbooking.ErrDuplicateSlots, http.StatusBadRequest},
		{domainslot.ErrInvalidDateRange, http.StatusBadRequest},
		{domainreviews.ErrInvalidRating, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, statusFor(tc.err), "error %v", tc.err)
	}

	// Wrapped errors keep their mapping.
	wrapped := fmt.Errorf("claiming slots: %w", domainslot.ErrSlotConflict)
	assert.Equal(t, http.StatusConflict, statusFor(wrapped))
}
