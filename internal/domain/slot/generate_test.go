package slot

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turfmania/internal/domain/shared/money"
	"turfmania/internal/domain/shared/timerange"
	"turfmania/internal/domain/turf"
)

func mustNewRange(t *testing.T, start, end time.Time) timerange.Range {
	t.Helper()
	r, err := timerange.New(start, end)
	require.NoError(t, err)
	return r
}

func testTurf(hours turf.OperatingHours) *turf.Turf {
	return &turf.Turf{
		ID:             "turf-1",
		OrganizationID: "org-1",
		Name:           "Test Arena",
		BasePrice:      money.Must(100000, "BDT"),
		OperatingHours: hours,
	}
}

func sequentialIDs() func() SlotID {
	n := 0
	return func() SlotID {
		n++
		return SlotID(fmt.Sprintf("slot-%d", n))
	}
}

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestGenerateFillsOperatingWindow(t *testing.T) {
	tf := testTurf(turf.OperatingHours{
		"monday": {Open: "09:00", Close: "11:00"},
	})
	slots, err := Generate(GenerateParams{
		Turf:     tf,
		From:     monday,
		To:       monday,
		Duration: time.Hour,
		Now:      time.Now(),
		NewID:    sequentialIDs(),
	})
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, monday.Add(9*time.Hour), slots[0].Range.Start)
	assert.Equal(t, monday.Add(10*time.Hour), slots[0].Range.End)
	assert.Equal(t, monday.Add(10*time.Hour), slots[1].Range.Start)
	assert.Equal(t, monday.Add(11*time.Hour), slots[1].Range.End)
	for _, s := range slots {
		assert.True(t, s.Available)
		assert.Equal(t, turf.TurfID("turf-1"), s.TurfID)
	}
}

func TestGenerateDropsTrailingRemainder(t *testing.T) {
	tf := testTurf(turf.OperatingHours{
		"monday": {Open: "09:00", Close: "10:30"},
	})
	slots, err := Generate(GenerateParams{
		Turf:     tf,
		From:     monday,
		To:       monday,
		Duration: time.Hour,
		Now:      time.Now(),
		NewID:    sequentialIDs(),
	})
	require.NoError(t, err)
	require.Len(t, slots, 1, "the 10:00-10:30 remainder must not become a slot")
}

func TestGenerateSkipsClosedDays(t *testing.T) {
	tf := testTurf(turf.OperatingHours{
		"monday": {Open: "09:00", Close: "11:00"},
	})
	tuesday := monday.Add(24 * time.Hour)
	slots, err := Generate(GenerateParams{
		Turf:     tf,
		From:     monday,
		To:       tuesday,
		Duration: time.Hour,
		Now:      time.Now(),
		NewID:    sequentialIDs(),
	})
	require.NoError(t, err)
	assert.Len(t, slots, 2, "tuesday has no operating hours")
}

func TestGenerateIdempotentRerun(t *testing.T) {
	tf := testTurf(turf.OperatingHours{
		"monday": {Open: "09:00", Close: "12:00"},
	})
	first, err := Generate(GenerateParams{
		Turf:     tf,
		From:     monday,
		To:       monday,
		Duration: time.Hour,
		Now:      time.Now(),
		NewID:    sequentialIDs(),
	})
	require.NoError(t, err)
	require.Len(t, first, 3)

	second, err := Generate(GenerateParams{
		Turf:     tf,
		From:     monday,
		To:       monday,
		Duration: time.Hour,
		Existing: first,
		Now:      time.Now(),
		NewID:    sequentialIDs(),
	})
	require.NoError(t, err)
	assert.Empty(t, second, "fully covered window yields no new slots")
}

func TestGeneratePartialRerunFillsGapsOnly(t *testing.T) {
	tf := testTurf(turf.OperatingHours{
		"monday": {Open: "09:00", Close: "12:00"},
	})
	existing := []*TimeSlot{{
		ID:     "existing-1",
		TurfID: tf.ID,
		Range:  mustNewRange(t, monday.Add(9*time.Hour), monday.Add(10*time.Hour)),
	}}
	slots, err := Generate(GenerateParams{
		Turf:     tf,
		From:     monday,
		To:       monday,
		Duration: time.Hour,
		Existing: existing,
		Now:      time.Now(),
		NewID:    sequentialIDs(),
	})
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, monday.Add(10*time.Hour), slots[0].Range.Start)
	assert.Equal(t, monday.Add(11*time.Hour), slots[1].Range.Start)
}

func TestGenerateValidatesInput(t *testing.T) {
	tf := testTurf(turf.OperatingHours{})
	_, err := Generate(GenerateParams{Turf: tf, From: monday, To: monday, Duration: 0, NewID: sequentialIDs()})
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = Generate(GenerateParams{Turf: tf, From: monday.Add(48 * time.Hour), To: monday, Duration: time.Hour, NewID: sequentialIDs()})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestPriceOverride(t *testing.T) {
	base := money.Must(100000, "BDT")
	s := &TimeSlot{}
	assert.Equal(t, base, s.Price(base))

	override := money.Must(150000, "BDT")
	s.PriceOverride = &override
	assert.Equal(t, override, s.Price(base))
}
