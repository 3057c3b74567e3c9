package expenses

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitledger-dev/splitledger/internal/model"
)

// Header is the CSV header for expenses.csv.
const Header = "id,date,description,amount,currency,payer,method,shares,settled"

const (
	numFields   = 9
	dateFormat  = "2006-01-02"
	colID       = 0
	colDate     = 1
	colDesc     = 2
	colAmount   = 3
	colCurrency = 4
	colPayer    = 5
	colMethod   = 6
	colShares   = 7
	colSettled  = 8
)

// ReadExpenses reads all expenses from an expenses.csv reader.
func ReadExpenses(r io.Reader) ([]model.Expense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading expenses CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var expenses []model.Expense
	for i, rec := range records[1:] {
		e, err := UnmarshalExpense(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// WriteExpenses writes expenses to an expenses.csv writer (including header).
func WriteExpenses(w io.Writer, expenses []model.Expense) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range expenses {
		if err := cw.Write(MarshalExpense(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// AppendExpenses appends expenses to an existing expenses.csv writer (no header).
func AppendExpenses(w io.Writer, expenses []model.Expense) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, e := range expenses {
		if err := cw.Write(MarshalExpense(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// MarshalExpense converts an Expense to a CSV row.
func MarshalExpense(e model.Expense) []string {
	row := make([]string, numFields)
	row[colID] = e.ID
	row[colDate] = e.Date.Format(dateFormat)
	row[colDesc] = e.Description
	row[colAmount] = e.Amount.StringFixed(2)
	row[colCurrency] = e.Currency
	row[colPayer] = e.PayerID
	row[colMethod] = string(e.Method)
	row[colShares] = encodeShares(e.Shares)
	if e.Settled {
		row[colSettled] = "true"
	}
	return row
}

// UnmarshalExpense converts a CSV row to an Expense.
func UnmarshalExpense(record []string) (model.Expense, error) {
	if len(record) != numFields {
		return model.Expense{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	shares, err := decodeShares(record[colShares])
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing shares %q: %w", record[colShares], err)
	}

	return model.Expense{
		ID:          record[colID],
		Date:        date,
		Description: record[colDesc],
		Amount:      amount,
		Currency:    record[colCurrency],
		PayerID:     record[colPayer],
		Method:      model.SplitMethod(record[colMethod]),
		Shares:      shares,
		Settled:     record[colSettled] == "true",
	}, nil
}

// encodeShares renders shares as "alice=33.34;bob=33.33".
func encodeShares(shares []model.Share) string {
	parts := make([]string, len(shares))
	for i, s := range shares {
		parts[i] = s.MemberID + "=" + s.Amount.StringFixed(2)
	}
	return strings.Join(parts, ";")
}

func decodeShares(encoded string) ([]model.Share, error) {
	if encoded == "" {
		return nil, nil
	}
	parts := strings.Split(encoded, ";")
	shares := make([]model.Share, len(parts))
	for i, part := range parts {
		member, amount, ok := strings.Cut(part, "=")
		if !ok || member == "" {
			return nil, fmt.Errorf("malformed share %q", part)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("share amount %q: %w", amount, err)
		}
		shares[i] = model.Share{MemberID: member, Amount: d}
	}
	return shares, nil
}
