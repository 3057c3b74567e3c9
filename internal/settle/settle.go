// Package settle reduces a group's net balances to a short list of
// suggested payments (debt simplification). Greedy largest-against-largest
// matching: few transfers in practice, not the NP-hard global minimum.
package settle

import (
	"github.com/shopspring/decimal"

	"github.com/splitledger-dev/splitledger/internal/model"
	"github.com/splitledger-dev/splitledger/internal/money"
	"github.com/splitledger-dev/splitledger/internal/netting"
)

// Optimize turns a balance map into suggested settlements that discharge
// every debt. Members within one cent of zero are left alone. The result is
// a deterministic function of the input and never contains more than
// (members with nonzero balance - 1) transfers.
//
// Suggestions are ephemeral: they carry no ID or date until a user confirms
// and records them.
func Optimize(balances map[string]decimal.Decimal) []model.Settlement {
	var debtors, creditors []netting.Party
	for id, b := range balances {
		switch {
		case b.GreaterThan(money.Tolerance):
			creditors = append(creditors, netting.Party{ID: id, Amount: b})
		case b.LessThan(money.Tolerance.Neg()):
			debtors = append(debtors, netting.Party{ID: id, Amount: b.Neg()})
		}
	}

	transfers := netting.Match(debtors, creditors, decimal.Zero)

	settlements := make([]model.Settlement, len(transfers))
	for i, t := range transfers {
		settlements[i] = model.Settlement{
			FromID: t.FromID,
			ToID:   t.ToID,
			Amount: t.Amount,
		}
	}
	return settlements
}
