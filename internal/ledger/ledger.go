// Package ledger derives per-member net balances from expenses and recorded
// settlements. Balances are never stored or mutated in place: they are a
// pure function of their inputs, and the caller owns any caching.
//
// Callers that persist confirmed settlements must serialize writes per
// group; the engine has no transactional primitive of its own.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/splitledger-dev/splitledger/internal/model"
	"github.com/splitledger-dev/splitledger/internal/money"
)

// InvariantViolation reports a broken zero-sum post-condition. This is an
// internal defect (bad shares got past the split calculator), not a user
// error: the operation must abort and the caller should log it loudly.
type InvariantViolation struct {
	Sum     decimal.Decimal
	Members int
}

func (e InvariantViolation) Error() string {
	return fmt.Sprintf("balance sum %s is outside the zero-sum tolerance for %d members", e.Sum.StringFixed(2), e.Members)
}

// ComputeBalances folds expenses and recorded settlements into a net balance
// per member: positive means owed money, negative means owing. Every listed
// member gets an entry, zero or not; members appearing only in the data are
// picked up as well.
//
// Post-condition: the balances sum to zero within one cent per member (one
// rounding residue each at most). A larger residue returns an
// InvariantViolation alongside the computed balances.
func ComputeBalances(members []model.Member, expenses []model.Expense, settlements []model.Settlement) (map[string]decimal.Decimal, error) {
	balances := make(map[string]decimal.Decimal, len(members))
	for _, m := range members {
		balances[m.ID] = decimal.Zero
	}

	for _, e := range expenses {
		if e.Settled {
			continue
		}
		// The payer fronted the whole amount; each participant owes their
		// share. A payer who is also a participant nets out naturally.
		balances[e.PayerID] = balances[e.PayerID].Add(e.Amount)
		for _, s := range e.Shares {
			balances[s.MemberID] = balances[s.MemberID].Sub(s.Amount)
		}
	}

	for _, s := range settlements {
		// A completed payment discharges what the payer owed: inverse sign
		// of a fresh debt.
		balances[s.FromID] = balances[s.FromID].Add(s.Amount)
		balances[s.ToID] = balances[s.ToID].Sub(s.Amount)
	}

	sum := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b)
	}
	allowed := money.Tolerance.Mul(decimal.NewFromInt(int64(len(balances))))
	if sum.Abs().GreaterThan(allowed) {
		return balances, InvariantViolation{Sum: sum, Members: len(balances)}
	}

	return balances, nil
}
