// Package money holds the cent-exact arithmetic helpers shared by the whole
// engine. Every rounding decision lives here: amounts are decimals carrying
// at most two decimal places, summation happens in integer cents, and any
// rounding residue is assigned explicitly rather than lost.
package money

import "github.com/shopspring/decimal"

// Tolerance absorbs floating-point noise in caller-supplied amounts.
// Internal arithmetic after the initial parse is cent-exact.
var Tolerance = decimal.New(1, -2) // 0.01

// Cents returns d in integer minor units, rounding half away from zero.
func Cents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

// FromCents converts integer minor units back to a decimal amount.
func FromCents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// IsNegligible reports whether d is within the dead-zone around zero.
func IsNegligible(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(Tolerance)
}

// WithinTolerance reports whether a and b differ by at most Tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Tolerance)
}

// SplitEqual divides total into n equal cent amounts. The remainder cents go
// to the first participants in order: splitting 100.00 three ways yields
// 33.34, 33.33, 33.33. n must be positive.
func SplitEqual(total decimal.Decimal, n int) []decimal.Decimal {
	totalCents := Cents(total)
	base := totalCents / int64(n)
	remainder := totalCents - base*int64(n)

	amounts := make([]decimal.Decimal, n)
	for i := range amounts {
		c := base
		if int64(i) < remainder {
			c++
		}
		amounts[i] = FromCents(c)
	}
	return amounts
}

// Allocate distributes total across weights so the results sum to total
// exactly: each amount is the weight's proportional share rounded to cents,
// and the rounding residue is assigned to the last weight. The weight sum
// must be nonzero.
func Allocate(total decimal.Decimal, weights []decimal.Decimal) []decimal.Decimal {
	sum := decimal.Zero
	for _, w := range weights {
		sum = sum.Add(w)
	}

	amounts := make([]decimal.Decimal, len(weights))
	allocated := decimal.Zero
	for i, w := range weights {
		amounts[i] = Round2(total.Mul(w).Div(sum))
		allocated = allocated.Add(amounts[i])
	}

	last := len(amounts) - 1
	amounts[last] = amounts[last].Add(total.Sub(allocated))
	return amounts
}

// Sum adds a slice of amounts.
func Sum(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
