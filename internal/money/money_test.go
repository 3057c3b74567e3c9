package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCents_RoundsHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, int64(1234), Cents(dec("12.34")))
	assert.Equal(t, int64(1235), Cents(dec("12.345")))
	assert.Equal(t, int64(-1235), Cents(dec("-12.345")))
}

func TestFromCents(t *testing.T) {
	assert.True(t, dec("12.34").Equal(FromCents(1234)))
	assert.True(t, dec("-0.01").Equal(FromCents(-1)))
}

func TestSplitEqual_RemainderToFirst(t *testing.T) {
	amounts := SplitEqual(dec("100.00"), 3)
	require.Len(t, amounts, 3)
	assert.True(t, dec("33.34").Equal(amounts[0]), "first participant absorbs the extra cent")
	assert.True(t, dec("33.33").Equal(amounts[1]))
	assert.True(t, dec("33.33").Equal(amounts[2]))
	assert.True(t, dec("100.00").Equal(Sum(amounts)))
}

func TestSplitEqual_ExactDivision(t *testing.T) {
	amounts := SplitEqual(dec("90.00"), 3)
	for _, a := range amounts {
		assert.True(t, dec("30.00").Equal(a))
	}
}

func TestSplitEqual_TwoCentRemainder(t *testing.T) {
	amounts := SplitEqual(dec("1.00"), 3)
	assert.True(t, dec("0.34").Equal(amounts[0]))
	assert.True(t, dec("0.33").Equal(amounts[1]))
	assert.True(t, dec("0.33").Equal(amounts[2]))
}

func TestAllocate_ResidueToLast(t *testing.T) {
	weights := []decimal.Decimal{dec("33.33"), dec("33.33"), dec("33.34")}
	amounts := Allocate(dec("1000.00"), weights)
	require.Len(t, amounts, 3)
	assert.True(t, dec("1000.00").Equal(Sum(amounts)), "allocation must sum exactly to the total")
}

func TestAllocate_SumExactAcrossAwkwardWeights(t *testing.T) {
	cases := [][]decimal.Decimal{
		{dec("1"), dec("1"), dec("1")},
		{dec("7"), dec("2"), dec("1")},
		{dec("50"), dec("25"), dec("25")},
		{dec("1"), dec("6")},
	}
	for _, weights := range cases {
		amounts := Allocate(dec("99.99"), weights)
		assert.True(t, dec("99.99").Equal(Sum(amounts)))
	}
}

func TestIsNegligible(t *testing.T) {
	assert.True(t, IsNegligible(dec("0.01")))
	assert.True(t, IsNegligible(dec("-0.01")))
	assert.False(t, IsNegligible(dec("0.02")))
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, WithinTolerance(dec("100.00"), dec("100.01")))
	assert.False(t, WithinTolerance(dec("100.00"), dec("100.02")))
}
