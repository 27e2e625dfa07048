package timerange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, start, end string) Range {
	t.Helper()
	s, err := time.Parse(time.RFC3339, start)
	require.NoError(t, err)
	e, err := time.Parse(time.RFC3339, end)
	require.NoError(t, err)
	r, err := New(s, e)
	require.NoError(t, err)
	return r
}

func TestNewRejectsInvertedRange(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	_, err := New(start, start)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(start, start.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestOverlapsHalfOpen(t *testing.T) {
	a := mustRange(t, "2026-03-01T10:00:00Z", "2026-03-01T11:00:00Z")
	adjacent := mustRange(t, "2026-03-01T11:00:00Z", "2026-03-01T12:00:00Z")
	overlapping := mustRange(t, "2026-03-01T10:30:00Z", "2026-03-01T11:30:00Z")
	contained := mustRange(t, "2026-03-01T10:15:00Z", "2026-03-01T10:45:00Z")

	assert.False(t, a.Overlaps(adjacent), "touching ranges share no instant")
	assert.False(t, adjacent.Overlaps(a))
	assert.True(t, a.Overlaps(overlapping))
	assert.True(t, a.Overlaps(contained))
	assert.True(t, contained.Overlaps(a))
}

func TestContainsTime(t *testing.T) {
	r := mustRange(t, "2026-03-01T10:00:00Z", "2026-03-01T11:00:00Z")
	assert.True(t, r.ContainsTime(r.Start))
	assert.True(t, r.ContainsTime(r.Start.Add(30*time.Minute)))
	assert.False(t, r.ContainsTime(r.End), "end is exclusive")
}

func TestDuration(t *testing.T) {
	r := mustRange(t, "2026-03-01T10:00:00Z", "2026-03-01T11:30:00Z")
	assert.Equal(t, 90*time.Minute, r.Duration())
}

func TestSameDay(t *testing.T) {
	r := mustRange(t, "2026-03-01T10:00:00Z", "2026-03-01T11:00:00Z")
	assert.True(t, r.SameDay(time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)))
	assert.False(t, r.SameDay(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
}
