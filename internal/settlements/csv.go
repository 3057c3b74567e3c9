package settlements

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitledger-dev/splitledger/internal/model"
)

// Header is the CSV header for settlements.csv.
const Header = "id,date,from,to,amount,note"

const (
	numFields  = 6
	dateFormat = "2006-01-02"
	colID      = 0
	colDate    = 1
	colFrom    = 2
	colTo      = 3
	colAmount  = 4
	colNote    = 5
)

// ReadSettlements reads all recorded settlements from a settlements.csv reader.
func ReadSettlements(r io.Reader) ([]model.Settlement, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading settlements CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var settlements []model.Settlement
	for i, rec := range records[1:] {
		s, err := UnmarshalSettlement(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		settlements = append(settlements, s)
	}
	return settlements, nil
}

// AppendSettlements appends settlements to a settlements.csv writer (no header).
func AppendSettlements(w io.Writer, settlements []model.Settlement) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, s := range settlements {
		if err := cw.Write(MarshalSettlement(s)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// MarshalSettlement converts a Settlement to a CSV row.
func MarshalSettlement(s model.Settlement) []string {
	row := make([]string, numFields)
	row[colID] = s.ID
	row[colDate] = s.Date.Format(dateFormat)
	row[colFrom] = s.FromID
	row[colTo] = s.ToID
	row[colAmount] = s.Amount.StringFixed(2)
	row[colNote] = s.Note
	return row
}

// UnmarshalSettlement converts a CSV row to a Settlement.
func UnmarshalSettlement(record []string) (model.Settlement, error) {
	if len(record) != numFields {
		return model.Settlement{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Settlement{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Settlement{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return model.Settlement{
		ID:     record[colID],
		Date:   date,
		FromID: record[colFrom],
		ToID:   record[colTo],
		Amount: amount,
		Note:   record[colNote],
	}, nil
}
