package slot

import (
	"time"

	"turfmania/internal/domain/turf"
)

type SlotsGenerated struct {
	TurfID turf.TurfID
	From   time.Time
	To     time.Time
	Count  int
	At     time.Time
}

func (e SlotsGenerated) EventName() string     { return "slots.generated" }
func (e SlotsGenerated) AggregateID() string   { return string(e.TurfID) }
func (e SlotsGenerated) OccurredAt() time.Time { return e.At }
