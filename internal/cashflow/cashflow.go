// Package cashflow generalizes debt netting to a fleet of business
// entities: instead of balances, each entity carries cash and burn, and
// excess or need is measured against a goal-specific target before the same
// largest-against-largest matching applies.
package cashflow

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/splitledger-dev/splitledger/internal/model"
	"github.com/splitledger-dev/splitledger/internal/netting"
)

// Runway thresholds, in months.
var (
	criticalRunway = decimal.NewFromInt(3)  // below this an entity needs rescue
	rescueTarget   = decimal.NewFromInt(6)  // maximize_runway tops critical entities up to this
	donorRunway    = decimal.NewFromInt(12) // maximize_runway draws from entities above this
	donorFloor     = decimal.NewFromInt(9)  // donors keep at least this many months
	runwaySentinel = decimal.NewFromInt(999)
)

// Allocator proposes cash transfers across a fleet of entities. Pure,
// single-shot computation per call; safe for concurrent use.
type Allocator struct {
	logger *zap.Logger
}

// NewAllocator creates an Allocator. A nil logger falls back to a nop.
func NewAllocator(logger *zap.Logger) *Allocator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Allocator{logger: logger}
}

// Runway returns an entity's months of cash at its current burn. Zero burn
// means indefinite runway, clamped to a 999-month sentinel.
func Runway(e model.Entity) decimal.Decimal {
	if !e.MonthlyBurn.IsPositive() {
		return runwaySentinel
	}
	r := e.Cash.Div(e.MonthlyBurn)
	if r.GreaterThan(runwaySentinel) {
		return runwaySentinel
	}
	return r
}

// Allocate proposes transfers that move the fleet toward the given goal.
// Donors are never drawn below the minimum cash constraint, and transfers
// below the minimum transfer floor are suppressed.
func (a *Allocator) Allocate(entities []model.Entity, goal model.AllocationGoal, c model.Constraints) ([]model.Transfer, error) {
	if len(entities) < 2 {
		return nil, model.Invalidf("at least two entities are required to allocate cash")
	}

	switch goal {
	case model.GoalMaximizeRunway:
		return a.rescue(entities, c, rescueTarget, donorRunway, "critical-runway"), nil
	case model.GoalMinimizeRisk:
		return a.riskRebalance(entities, c), nil
	case model.GoalBalanced:
		// Intentionally only the rescue pass; no further equalization.
		return a.rescue(entities, c, criticalRunway, donorFloor, "critical-runway"), nil
	default:
		return nil, model.Invalidf("unknown allocation goal %q", goal)
	}
}

// rescue brings every entity under the critical runway up to targetMonths of
// burn, pulling from entities whose runway exceeds minDonorRunway. Donors
// give their surplus above donorFloor months, capped by the min-cash
// constraint.
func (a *Allocator) rescue(entities []model.Entity, c model.Constraints, targetMonths, minDonorRunway decimal.Decimal, reason string) []model.Transfer {
	var donors, recipients []netting.Party
	for _, e := range entities {
		runway := Runway(e)
		switch {
		case runway.LessThan(criticalRunway):
			need := e.MonthlyBurn.Mul(targetMonths).Sub(e.Cash)
			if need.IsPositive() {
				recipients = append(recipients, netting.Party{ID: e.ID, Amount: need})
				a.logger.Debug("entity needs rescue",
					zap.String("entity", e.ID),
					zap.String("runway_months", runway.StringFixed(1)),
					zap.String("need", need.StringFixed(2)))
			}
		case runway.GreaterThan(minDonorRunway):
			available := donorCapacity(e, e.MonthlyBurn.Mul(donorFloor), c)
			if available.IsPositive() {
				donors = append(donors, netting.Party{ID: e.ID, Amount: available})
				a.logger.Debug("entity can donate",
					zap.String("entity", e.ID),
					zap.String("runway_months", runway.StringFixed(1)),
					zap.String("available", available.StringFixed(2)))
			}
		}
	}

	return toTransfers(netting.Match(donors, recipients, c.MinTransfer), reason)
}

// riskRebalance levels every entity toward the fleet-wide blended runway
// (total cash over total burn). Deviations beyond the transfer floor make an
// entity a donor or recipient.
func (a *Allocator) riskRebalance(entities []model.Entity, c model.Constraints) []model.Transfer {
	totalCash, totalBurn := decimal.Zero, decimal.Zero
	for _, e := range entities {
		totalCash = totalCash.Add(e.Cash)
		totalBurn = totalBurn.Add(e.MonthlyBurn)
	}
	if !totalBurn.IsPositive() {
		a.logger.Debug("fleet has no burn; nothing to rebalance")
		return nil
	}
	blended := totalCash.Div(totalBurn)
	a.logger.Debug("blended fleet runway", zap.String("months", blended.StringFixed(1)))

	var donors, recipients []netting.Party
	for _, e := range entities {
		target := e.MonthlyBurn.Mul(blended)
		deviation := e.Cash.Sub(target)
		switch {
		case deviation.GreaterThan(c.MinTransfer):
			available := donorCapacity(e, target, c)
			if available.IsPositive() {
				donors = append(donors, netting.Party{ID: e.ID, Amount: available})
			}
		case deviation.LessThan(c.MinTransfer.Neg()):
			recipients = append(recipients, netting.Party{ID: e.ID, Amount: deviation.Neg()})
		}
	}

	return toTransfers(netting.Match(donors, recipients, c.MinTransfer), "risk-rebalance")
}

// donorCapacity is how much an entity can give: its cash above keep, never
// dipping below the min-cash constraint.
func donorCapacity(e model.Entity, keep decimal.Decimal, c model.Constraints) decimal.Decimal {
	if c.MinCashPerEntity.GreaterThan(keep) {
		keep = c.MinCashPerEntity
	}
	return e.Cash.Sub(keep)
}

func toTransfers(matched []netting.Transfer, reason string) []model.Transfer {
	transfers := make([]model.Transfer, len(matched))
	for i, t := range matched {
		transfers[i] = model.Transfer{
			FromID: t.FromID,
			ToID:   t.ToID,
			Amount: t.Amount,
			Reason: reason,
		}
	}
	return transfers
}
