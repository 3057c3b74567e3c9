// Package netting implements the greedy creditor/debtor matching primitive
// shared by peer settlement and entity cashflow allocation. Both reduce to
// the same problem: a set of parties owed money, a set of parties owing it,
// and a pairing that discharges everything in few transfers.
package netting

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/splitledger-dev/splitledger/internal/money"
)

// Party is one side of a netting problem. Amount is a positive magnitude:
// how much the party is owed (creditor) or owes (debtor).
type Party struct {
	ID     string
	Amount decimal.Decimal
}

// Transfer moves Amount from a debtor to a creditor.
type Transfer struct {
	FromID string
	ToID   string
	Amount decimal.Decimal
}

// Match pairs the largest debtor against the largest creditor until both
// sides are exhausted. Transfers below floor are suppressed: the
// constraining party is dropped without a payment, on the grounds that the
// transfer is not worth executing. Ties sort by ID so the output is a
// deterministic function of the input.
//
// If every transfer executes, all remainders end within one cent of zero,
// and at most len(debtors)+len(creditors)-1 transfers are produced.
func Match(debtors, creditors []Party, floor decimal.Decimal) []Transfer {
	debtors = sortedByAmountDesc(debtors)
	creditors = sortedByAmountDesc(creditors)

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := decimal.Min(debtors[i].Amount, creditors[j].Amount)

		if floor.IsPositive() && amount.LessThan(floor) {
			// Not worth executing. Drop the constraining side.
			if debtors[i].Amount.LessThanOrEqual(creditors[j].Amount) {
				i++
			} else {
				j++
			}
			continue
		}

		transfers = append(transfers, Transfer{
			FromID: debtors[i].ID,
			ToID:   creditors[j].ID,
			Amount: amount,
		})
		debtors[i].Amount = debtors[i].Amount.Sub(amount)
		creditors[j].Amount = creditors[j].Amount.Sub(amount)

		if money.IsNegligible(debtors[i].Amount) {
			i++
		}
		if money.IsNegligible(creditors[j].Amount) {
			j++
		}
	}
	return transfers
}

// sortedByAmountDesc copies and sorts parties by amount descending, then ID
// ascending. The copy keeps Match free of side effects on its inputs.
func sortedByAmountDesc(parties []Party) []Party {
	sorted := make([]Party, len(parties))
	copy(sorted, parties)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Amount.Equal(sorted[j].Amount) {
			return sorted[i].Amount.GreaterThan(sorted[j].Amount)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}
