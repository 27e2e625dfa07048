package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m, err := New(250000, "bdt")
	require.NoError(t, err)
	assert.Equal(t, "BDT", m.Currency, "currency is normalized to upper case")

	_, err = New(100, "taka")
	assert.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestArithmeticGuardsCurrency(t *testing.T) {
	bdt := Must(100, "BDT")
	usd := Must(100, "USD")

	_, err := bdt.Add(usd)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
	_, err = bdt.Sub(Money{})
	assert.ErrorIs(t, err, ErrInvalidCurrency)

	sum, err := bdt.Add(Must(50, "BDT"))
	require.NoError(t, err)
	assert.Equal(t, int64(150), sum.Amount)

	diff, err := bdt.Sub(Must(30, "BDT"))
	require.NoError(t, err)
	assert.Equal(t, int64(70), diff.Amount)
}

func TestPercentRoundsDown(t *testing.T) {
	assert.Equal(t, int64(50), Must(101, "BDT").Percent(50).Amount)
	assert.Equal(t, int64(50000), Must(100001, "BDT").Percent(50).Amount)
	assert.Equal(t, int64(100), Must(100, "BDT").Percent(100).Amount)
}

func TestPredicates(t *testing.T) {
	assert.True(t, Must(0, "BDT").IsZero())
	assert.True(t, Must(-1, "BDT").IsNegative())
	assert.False(t, Must(1, "BDT").IsNegative())
}
