package dto

import (
	"time"

	domainbooking "turfmania/internal/domain/booking"
	"turfmania/internal/domain/shared/money"
)

type MoneyDTO struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func MapMoney(value money.Money) MoneyDTO {
	return MoneyDTO{
		Amount:   value.Amount,
		Currency: value.Currency,
	}
}

type Booking struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"user_id"`
	TurfID               string    `json:"turf_id"`
	TimeSlotIDs          []string  `json:"time_slot_ids"`
	TotalAmount          MoneyDTO  `json:"total_amount"`
	AdvanceAmount        MoneyDTO  `json:"advance_amount"`
	FinalAmount          MoneyDTO  `json:"final_amount"`
	Status               string    `json:"status"`
	AdvanceTransactionID string    `json:"advance_payment_transaction_id"`
	FinalTransactionID   string    `json:"final_payment_transaction_id,omitempty"`
	FinalPaymentMethod   string    `json:"final_payment_method,omitempty"`
	IsPaid               bool      `json:"is_paid"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// BookingCollection is a filtered page of bookings with listing metadata.
type BookingCollection struct {
	Items []Booking   `json:"items"`
	Meta  BookingMeta `json:"meta"`
}

type BookingMeta struct {
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	Pages   int            `json:"pages"`
	Filters map[string]any `json:"filters"`
}

func MapBooking(b *domainbooking.Booking) Booking {
	slotIDs := make([]string, 0, len(b.SlotIDs))
	for _, id := range b.SlotIDs {
		slotIDs = append(slotIDs, string(id))
	}
	return Booking{
		ID:                   string(b.ID),
		UserID:               b.UserID,
		TurfID:               string(b.TurfID),
		TimeSlotIDs:          slotIDs,
		TotalAmount:          MapMoney(b.Total),
		AdvanceAmount:        MapMoney(b.Advance),
		FinalAmount:          MapMoney(b.Final),
		Status:               string(b.Status),
		AdvanceTransactionID: b.AdvanceTransactionID,
		FinalTransactionID:   b.FinalTransactionID,
		FinalPaymentMethod:   string(b.FinalPaymentMethod),
		IsPaid:               b.Paid,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}
}

func MapBookings(items []*domainbooking.Booking) []Booking {
	out := make([]Booking, 0, len(items))
	for _, b := range items {
		out = append(out, MapBooking(b))
	}
	return out
}
