// Package planfile exports a proposed settlement or allocation plan as CSV,
// for handing off to whatever executes or reviews the payments.
package planfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitledger-dev/splitledger/internal/model"
)

// Entry is one proposed payment in an exported plan.
type Entry struct {
	ID        string
	CreatedAt time.Time
	FromID    string
	ToID      string
	Amount    decimal.Decimal
	Reason    string
}

// Header is the CSV header for an exported plan.
const Header = "id,created_at,from,to,amount,reason"

const (
	numFields    = 6
	colID        = 0
	colCreatedAt = 1
	colFrom      = 2
	colTo        = 3
	colAmount    = 4
	colReason    = 5
)

// FromSettlements stamps suggested settlements into plan entries, assigning
// each a fresh ID.
func FromSettlements(settlements []model.Settlement, createdAt time.Time) []Entry {
	entries := make([]Entry, len(settlements))
	for i, s := range settlements {
		entries[i] = Entry{
			ID:        uuid.NewString(),
			CreatedAt: createdAt,
			FromID:    s.FromID,
			ToID:      s.ToID,
			Amount:    s.Amount,
		}
	}
	return entries
}

// FromTransfers stamps proposed entity transfers into plan entries.
func FromTransfers(transfers []model.Transfer, createdAt time.Time) []Entry {
	entries := make([]Entry, len(transfers))
	for i, t := range transfers {
		entries[i] = Entry{
			ID:        uuid.NewString(),
			CreatedAt: createdAt,
			FromID:    t.FromID,
			ToID:      t.ToID,
			Amount:    t.Amount,
			Reason:    t.Reason,
		}
	}
	return entries
}

// Write writes a plan (header plus entries) to w.
func Write(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range entries {
		if err := cw.Write(marshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	return cw.Error()
}

// Read reads a previously exported plan.
func Read(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading plan CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := unmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func marshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colID] = e.ID
	row[colCreatedAt] = e.CreatedAt.Format(time.RFC3339)
	row[colFrom] = e.FromID
	row[colTo] = e.ToID
	row[colAmount] = e.Amount.StringFixed(2)
	row[colReason] = e.Reason
	return row
}

func unmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	createdAt, err := time.Parse(time.RFC3339, record[colCreatedAt])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing created_at %q: %w", record[colCreatedAt], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return Entry{
		ID:        record[colID],
		CreatedAt: createdAt,
		FromID:    record[colFrom],
		ToID:      record[colTo],
		Amount:    amount,
		Reason:    record[colReason],
	}, nil
}
