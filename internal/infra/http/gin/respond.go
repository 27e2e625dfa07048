package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	domainbooking "turfmania/internal/domain/booking"
	domainreviews "turfmania/internal/domain/reviews"
	"turfmania/internal/domain/shared/money"
	"turfmania/internal/domain/shared/timerange"
	domainslot "turfmania/internal/domain/slot"
	domainturf "turfmania/internal/domain/turf"
	"turfmania/internal/infra/db/mongo"
	"turfmania/internal/infra/storage/memory"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondOK(c *gin.Context, status int, data any, message string) {
	c.JSON(status, envelope{Success: true, Data: data, Message: message})
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), envelope{Success: false, Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domainturf.ErrTurfNotFound),
		errors.Is(err, domainbooking.ErrBookingNotFound),
		errors.Is(err, domainslot.ErrSlotNotFound),
		errors.Is(err, domainreviews.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainslot.ErrSlotConflict),
		errors.Is(err, domainbooking.ErrInvalidState),
		errors.Is(err, domainreviews.ErrAlreadySubmitted),
		errors.Is(err, mongo.ErrConcurrentUpdate),
		errors.Is(err, memory.ErrConcurrentUpdate):
		return http.StatusConflict
	case errors.Is(err, domainbooking.ErrNotAuthorized),
		errors.Is(err, domainreviews.ErrNotEligible):
		return http.StatusForbidden
	case errors.Is(err, domainbooking.ErrEmptySlotSet),
		errors.Is(err, domainbooking.ErrDuplicateSlots),
		errors.Is(err, domainbooking.ErrAdvanceTxnRequired),
		errors.Is(err, domainbooking.ErrFinalTxnRequired),
		errors.Is(err, domainbooking.ErrAmountMismatch),
		errors.Is(err, domainslot.ErrInvalidDateRange),
		errors.Is(err, domainslot.ErrInvalidDuration),
		errors.Is(err, domainreviews.ErrInvalidRating),
		errors.Is(err, domainturf.ErrInvalidOperatingDay),
		errors.Is(err, timerange.ErrInvalidRange),
		errors.Is(err, money.ErrInvalidCurrency),
		errors.Is(err, money.ErrCurrencyMismatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
