package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SplitMethod selects the rule used to divide an expense total among its
// participants.
type SplitMethod string

const (
	SplitEqual      SplitMethod = "equal"
	SplitExact      SplitMethod = "exact"
	SplitPercentage SplitMethod = "percentage"
	SplitShares     SplitMethod = "shares"
)

// Participant is one member's input to a split calculation. Amount,
// Percentage and Shares are interpreted according to the split method;
// fields not used by the method are ignored.
type Participant struct {
	MemberID   string
	Amount     decimal.Decimal
	Percentage decimal.Decimal
	Shares     int64
}

// Share is one member's owed portion of an expense. The shares of an
// expense always sum to its total exactly, in cents.
type Share struct {
	MemberID string
	Amount   decimal.Decimal
}

// Expense is a recorded shared cost. Immutable once created, except for the
// Settled flag which is flipped when the whole expense has been discharged.
type Expense struct {
	ID          string // "YYYY-MM-NNN"
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Currency    string
	PayerID     string
	Method      SplitMethod
	Shares      []Share
	Settled     bool
}
