package model

import "github.com/shopspring/decimal"

// Entity is an independent business unit in a fleet: its own cash position
// and trailing monthly burn. Runway is derived, never stored.
type Entity struct {
	ID           string
	Name         string
	Cash         decimal.Decimal
	MonthlyBurn  decimal.Decimal
	TargetRunway decimal.Decimal // months; informational
}

// AllocationGoal selects the cashflow allocation strategy.
type AllocationGoal string

const (
	GoalMaximizeRunway AllocationGoal = "maximize_runway"
	GoalMinimizeRisk   AllocationGoal = "minimize_risk"
	GoalBalanced       AllocationGoal = "balanced"
)

// Constraints bound what the allocator may propose.
type Constraints struct {
	MinCashPerEntity decimal.Decimal // never draw a donor below this
	MinTransfer      decimal.Decimal // suppress transfers smaller than this
}
