package expenses

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/splitledger-dev/splitledger/internal/id"
	"github.com/splitledger-dev/splitledger/internal/model"
	"github.com/splitledger-dev/splitledger/internal/money"
)

// Filename is the expense journal file inside a group directory.
const Filename = "expenses.csv"

// Service provides access to a group's expense journal. It does no locking:
// concurrent writers for the same group must be serialized by the caller.
type Service struct {
	root string
}

// NewService creates an expense Service rooted at a group directory.
func NewService(root string) *Service {
	return &Service{root: root}
}

// Validate checks that an expense is internally consistent before it enters
// the journal: the payer is set and the shares sum to the total exactly.
func Validate(e model.Expense) error {
	if e.PayerID == "" {
		return model.Invalidf("expense %s has no payer", e.ID)
	}
	if len(e.Shares) == 0 {
		return model.Invalidf("expense %s has no shares", e.ID)
	}
	sum := money.Sum(shareAmounts(e.Shares))
	if !sum.Equal(e.Amount) {
		return model.Invalidf("expense %s shares sum to %s, expected %s", e.ID, sum.StringFixed(2), e.Amount.StringFixed(2))
	}
	return nil
}

// ReadAll reads and validates every expense in the journal. A missing
// journal file is an empty journal.
func (s *Service) ReadAll() ([]model.Expense, error) {
	f, err := os.Open(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening expenses: %w", err)
	}
	defer f.Close()

	expenses, err := ReadExpenses(f)
	if err != nil {
		return nil, fmt.Errorf("reading expenses: %w", err)
	}
	for _, e := range expenses {
		if err := Validate(e); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// Append validates an expense and appends it to the journal, creating the
// file with a header if needed.
func (s *Service) Append(e model.Expense) error {
	if err := Validate(e); err != nil {
		return err
	}

	path := s.path()
	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening expenses: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendExpenses(f, []model.Expense{e}); err != nil {
		return fmt.Errorf("appending expense: %w", err)
	}
	return nil
}

// MarkSettled flips the settled flag on an expense and rewrites the journal.
func (s *Service) MarkSettled(expenseID string) error {
	expenses, err := s.ReadAll()
	if err != nil {
		return err
	}

	found := false
	for i := range expenses {
		if expenses[i].ID == expenseID {
			expenses[i].Settled = true
			found = true
		}
	}
	if !found {
		return model.Invalidf("expense %s not found", expenseID)
	}

	f, err := os.Create(s.path())
	if err != nil {
		return fmt.Errorf("rewriting expenses: %w", err)
	}
	defer f.Close()

	return WriteExpenses(f, expenses)
}

// NextSeq returns the next available sequence number for a year/month.
func (s *Service) NextSeq(year, month int) (int, error) {
	expenses, err := s.ReadAll()
	if err != nil {
		return 0, err
	}

	maxSeq := 0
	for _, e := range expenses {
		y, m, seq, err := id.ParseExpenseID(e.ID)
		if err != nil || y != year || m != month {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1, nil
}

func (s *Service) path() string {
	return filepath.Join(s.root, Filename)
}

func shareAmounts(shares []model.Share) []decimal.Decimal {
	amounts := make([]decimal.Decimal, len(shares))
	for i, s := range shares {
		amounts[i] = s.Amount
	}
	return amounts
}
