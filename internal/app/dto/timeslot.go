package dto

import (
	"time"

	domainslot "turfmania/internal/domain/slot"
	"turfmania/internal/domain/shared/money"
)

type TimeSlot struct {
	ID          string    `json:"id"`
	TurfID      string    `json:"turf_id"`
	Start       time.Time `json:"start_time"`
	End         time.Time `json:"end_time"`
	Price       MoneyDTO  `json:"price"`
	IsAvailable bool      `json:"is_available"`
}

type TimeSlotCollection struct {
	Items []TimeSlot `json:"items"`
}

func MapTimeSlot(s *domainslot.TimeSlot, basePrice money.Money) TimeSlot {
	return TimeSlot{
		ID:          string(s.ID),
		TurfID:      string(s.TurfID),
		Start:       s.Range.Start,
		End:         s.Range.End,
		Price:       MapMoney(s.Price(basePrice)),
		IsAvailable: s.Available,
	}
}

func MapTimeSlots(slots []*domainslot.TimeSlot, basePrice money.Money) TimeSlotCollection {
	items := make([]TimeSlot, 0, len(slots))
	for _, s := range slots {
		items = append(items, MapTimeSlot(s, basePrice))
	}
	return TimeSlotCollection{Items: items}
}
