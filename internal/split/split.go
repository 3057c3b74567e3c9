// Package split turns an expense total and a split method into exact
// per-participant owed amounts. Pure functions, no side effects.
package split

import (
	"github.com/shopspring/decimal"

	"github.com/splitledger-dev/splitledger/internal/model"
	"github.com/splitledger-dev/splitledger/internal/money"
)

var hundred = decimal.NewFromInt(100)

// Calculate divides total among participants according to method. The
// returned shares are in participant input order and always sum to total
// exactly, in cents. Malformed input yields a model.ValidationError.
func Calculate(total decimal.Decimal, method model.SplitMethod, participants []model.Participant) ([]model.Share, error) {
	if len(participants) == 0 {
		return nil, model.Invalidf("at least one participant is required")
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return nil, model.Invalidf("expense amount must be positive")
	}

	switch method {
	case model.SplitEqual:
		return equalSplit(total, participants), nil
	case model.SplitExact:
		return exactSplit(total, participants)
	case model.SplitPercentage:
		return percentageSplit(total, participants)
	case model.SplitShares:
		return sharesSplit(total, participants)
	default:
		return nil, model.Invalidf("unknown split method %q", method)
	}
}

// equalSplit divides the total in cents; the first remainder participants
// (in input order) absorb the extra cent each.
func equalSplit(total decimal.Decimal, participants []model.Participant) []model.Share {
	amounts := money.SplitEqual(total, len(participants))
	return toShares(participants, amounts)
}

// exactSplit uses the amounts as given. The sum must match the total within
// tolerance; any sub-cent residue left by tolerant input is assigned to the
// last participant so the shares still sum to the total exactly.
func exactSplit(total decimal.Decimal, participants []model.Participant) ([]model.Share, error) {
	sum := decimal.Zero
	for _, p := range participants {
		if p.Amount.IsNegative() {
			return nil, model.Invalidf("exact amounts must not be negative")
		}
		sum = sum.Add(p.Amount)
	}
	if !money.WithinTolerance(sum, total) {
		return nil, model.Invalidf("exact amounts must sum to the expense total")
	}

	amounts := make([]decimal.Decimal, len(participants))
	for i, p := range participants {
		amounts[i] = money.Round2(p.Amount)
	}
	last := len(amounts) - 1
	amounts[last] = amounts[last].Add(total.Sub(money.Sum(amounts)))
	return toShares(participants, amounts), nil
}

func percentageSplit(total decimal.Decimal, participants []model.Participant) ([]model.Share, error) {
	weights := make([]decimal.Decimal, len(participants))
	sum := decimal.Zero
	for i, p := range participants {
		if p.Percentage.IsNegative() {
			return nil, model.Invalidf("percentages must not be negative")
		}
		weights[i] = p.Percentage
		sum = sum.Add(p.Percentage)
	}
	if !money.WithinTolerance(sum, hundred) {
		return nil, model.Invalidf("percentages must sum to 100")
	}

	return toShares(participants, money.Allocate(total, weights)), nil
}

func sharesSplit(total decimal.Decimal, participants []model.Participant) ([]model.Share, error) {
	weights := make([]decimal.Decimal, len(participants))
	var totalShares int64
	for i, p := range participants {
		if p.Shares < 0 {
			return nil, model.Invalidf("share counts must not be negative")
		}
		weights[i] = decimal.NewFromInt(p.Shares)
		totalShares += p.Shares
	}
	if totalShares == 0 {
		return nil, model.Invalidf("total shares must be greater than zero")
	}

	return toShares(participants, money.Allocate(total, weights)), nil
}

func toShares(participants []model.Participant, amounts []decimal.Decimal) []model.Share {
	shares := make([]model.Share, len(participants))
	for i, p := range participants {
		shares[i] = model.Share{MemberID: p.MemberID, Amount: amounts[i]}
	}
	return shares
}
