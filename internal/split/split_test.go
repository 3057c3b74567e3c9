package split

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitledger-dev/splitledger/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func shareSum(shares []model.Share) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s.Amount)
	}
	return sum
}

func TestCalculate_EqualThreeWay(t *testing.T) {
	shares, err := Calculate(dec("100.00"), model.SplitEqual, []model.Participant{
		{MemberID: "alice"},
		{MemberID: "bob"},
		{MemberID: "carol"},
	})
	require.NoError(t, err)
	require.Len(t, shares, 3)
	assert.True(t, dec("33.34").Equal(shares[0].Amount), "first participant absorbs the extra cent")
	assert.True(t, dec("33.33").Equal(shares[1].Amount))
	assert.True(t, dec("33.33").Equal(shares[2].Amount))
	assert.Equal(t, "alice", shares[0].MemberID)
}

func TestCalculate_EqualNoParticipants(t *testing.T) {
	_, err := Calculate(dec("100.00"), model.SplitEqual, nil)
	require.Error(t, err)
	var verr model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "at least one participant is required", verr.Reason)
}

func TestCalculate_NonPositiveTotal(t *testing.T) {
	_, err := Calculate(dec("0"), model.SplitEqual, []model.Participant{{MemberID: "alice"}})
	var verr model.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCalculate_ExactMatchesTotal(t *testing.T) {
	shares, err := Calculate(dec("75.00"), model.SplitExact, []model.Participant{
		{MemberID: "alice", Amount: dec("50.00")},
		{MemberID: "bob", Amount: dec("25.00")},
	})
	require.NoError(t, err)
	assert.True(t, dec("50.00").Equal(shares[0].Amount))
	assert.True(t, dec("25.00").Equal(shares[1].Amount))
}

func TestCalculate_ExactWrongSum(t *testing.T) {
	_, err := Calculate(dec("75.00"), model.SplitExact, []model.Participant{
		{MemberID: "alice", Amount: dec("50.00")},
		{MemberID: "bob", Amount: dec("20.00")},
	})
	var verr model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "exact amounts must sum to the expense total", verr.Reason)
}

func TestCalculate_ExactToleratedCentGoesToLast(t *testing.T) {
	// One cent short of the total is within tolerance; the last participant
	// picks it up so the shares still sum exactly.
	shares, err := Calculate(dec("75.00"), model.SplitExact, []model.Participant{
		{MemberID: "alice", Amount: dec("50.00")},
		{MemberID: "bob", Amount: dec("24.99")},
	})
	require.NoError(t, err)
	assert.True(t, dec("75.00").Equal(shareSum(shares)))
	assert.True(t, dec("25.00").Equal(shares[1].Amount))
}

func TestCalculate_PercentageSumsExactly(t *testing.T) {
	shares, err := Calculate(dec("1000.00"), model.SplitPercentage, []model.Participant{
		{MemberID: "alice", Percentage: dec("33.33")},
		{MemberID: "bob", Percentage: dec("33.33")},
		{MemberID: "carol", Percentage: dec("33.34")},
	})
	require.NoError(t, err)
	assert.True(t, dec("1000.00").Equal(shareSum(shares)))
}

func TestCalculate_PercentageNotHundred(t *testing.T) {
	_, err := Calculate(dec("100.00"), model.SplitPercentage, []model.Participant{
		{MemberID: "alice", Percentage: dec("50")},
		{MemberID: "bob", Percentage: dec("40")},
	})
	var verr model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "percentages must sum to 100", verr.Reason)
}

func TestCalculate_SharesWeighted(t *testing.T) {
	shares, err := Calculate(dec("100.00"), model.SplitShares, []model.Participant{
		{MemberID: "alice", Shares: 2},
		{MemberID: "bob", Shares: 1},
	})
	require.NoError(t, err)
	assert.True(t, dec("66.67").Equal(shares[0].Amount))
	assert.True(t, dec("33.33").Equal(shares[1].Amount))
	assert.True(t, dec("100.00").Equal(shareSum(shares)))
}

func TestCalculate_SharesZeroTotal(t *testing.T) {
	_, err := Calculate(dec("100.00"), model.SplitShares, []model.Participant{
		{MemberID: "alice", Shares: 0},
		{MemberID: "bob", Shares: 0},
	})
	var verr model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "total shares must be greater than zero", verr.Reason)
}

func TestCalculate_UnknownMethod(t *testing.T) {
	_, err := Calculate(dec("100.00"), model.SplitMethod("random"), []model.Participant{{MemberID: "alice"}})
	var verr model.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCalculate_SumEqualsTotalForEveryMethod(t *testing.T) {
	participants := map[model.SplitMethod][]model.Participant{
		model.SplitEqual: {
			{MemberID: "a"}, {MemberID: "b"}, {MemberID: "c"}, {MemberID: "d"},
		},
		model.SplitExact: {
			{MemberID: "a", Amount: dec("11.11")},
			{MemberID: "b", Amount: dec("22.22")},
			{MemberID: "c", Amount: dec("33.34")},
		},
		model.SplitPercentage: {
			{MemberID: "a", Percentage: dec("12.5")},
			{MemberID: "b", Percentage: dec("37.5")},
			{MemberID: "c", Percentage: dec("50")},
		},
		model.SplitShares: {
			{MemberID: "a", Shares: 3},
			{MemberID: "b", Shares: 5},
			{MemberID: "c", Shares: 7},
		},
	}
	totals := []string{"66.67", "0.05", "123.45", "999.99"}

	for method, ps := range participants {
		for _, total := range totals {
			if method == model.SplitExact && total != "66.67" {
				continue // exact inputs are tied to one total
			}
			shares, err := Calculate(dec(total), method, ps)
			require.NoError(t, err, "method %s total %s", method, total)
			assert.True(t, dec(total).Equal(shareSum(shares)), "method %s total %s", method, total)
		}
	}
}
