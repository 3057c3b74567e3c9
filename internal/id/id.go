// Package id formats and parses expense identifiers.
package id

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatExpenseID returns an expense ID like "2025-01-003": year, month,
// and a per-month sequence number.
func FormatExpenseID(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// ParseExpenseID parses "2025-01-003" into year, month, seq.
func ParseExpenseID(id string) (year, month, seq int, err error) {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid expense ID format: %q", id)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in expense ID %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in expense ID %q: %w", id, err)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in expense ID %q: %w", id, err)
	}

	return year, month, seq, nil
}
