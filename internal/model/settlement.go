package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement is a payment between two group members. A suggested settlement
// comes out of the optimizer and has no date; a recorded settlement has been
// confirmed by a user and feeds back into the balance ledger.
type Settlement struct {
	ID     string
	Date   time.Time // zero for suggestions
	FromID string    // the debtor paying
	ToID   string    // the creditor being paid
	Amount decimal.Decimal
	Note   string
}

// Transfer is a suggested cash movement between two business entities.
type Transfer struct {
	ID     string
	FromID string
	ToID   string
	Amount decimal.Decimal
	Reason string // short machine tag, e.g. "critical-runway"
}
