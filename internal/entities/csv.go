package entities

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/splitledger-dev/splitledger/internal/model"
)

const (
	numFields       = 5
	colID           = 0
	colName         = 1
	colCash         = 2
	colBurn         = 3
	colTargetRunway = 4
)

// ReadEntities reads entities.csv.
func ReadEntities(r io.Reader) ([]model.Entity, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading entities CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var ents []model.Entity
	for i, rec := range records[1:] {
		e, err := UnmarshalEntity(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		ents = append(ents, e)
	}
	return ents, nil
}

// WriteEntities writes entities.csv.
func WriteEntities(w io.Writer, ents []model.Entity) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"id", "name", "cash", "monthly_burn", "target_runway"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range ents {
		if err := cw.Write(MarshalEntity(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalEntity converts an Entity to a CSV row.
func MarshalEntity(e model.Entity) []string {
	row := make([]string, numFields)
	row[colID] = e.ID
	row[colName] = e.Name
	row[colCash] = e.Cash.StringFixed(2)
	row[colBurn] = e.MonthlyBurn.StringFixed(2)
	if !e.TargetRunway.IsZero() {
		row[colTargetRunway] = e.TargetRunway.String()
	}
	return row
}

// UnmarshalEntity converts a CSV row to an Entity.
func UnmarshalEntity(record []string) (model.Entity, error) {
	if len(record) != numFields {
		return model.Entity{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	cash, err := decimal.NewFromString(record[colCash])
	if err != nil {
		return model.Entity{}, fmt.Errorf("parsing cash %q: %w", record[colCash], err)
	}

	burn, err := decimal.NewFromString(record[colBurn])
	if err != nil {
		return model.Entity{}, fmt.Errorf("parsing monthly_burn %q: %w", record[colBurn], err)
	}

	var target decimal.Decimal
	if record[colTargetRunway] != "" {
		target, err = decimal.NewFromString(record[colTargetRunway])
		if err != nil {
			return model.Entity{}, fmt.Errorf("parsing target_runway %q: %w", record[colTargetRunway], err)
		}
	}

	return model.Entity{
		ID:           record[colID],
		Name:         record[colName],
		Cash:         cash,
		MonthlyBurn:  burn,
		TargetRunway: target,
	}, nil
}
