// Package settlements stores recorded (user-confirmed) settlements for a
// group. Suggested settlements never touch this file; only confirmations do.
package settlements

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitledger-dev/splitledger/internal/model"
)

// Filename is the settlements file inside a group directory.
const Filename = "settlements.csv"

// Service provides access to a group's recorded settlements. No locking:
// concurrent confirmations for one group must be serialized by the caller
// (single-writer contract).
type Service struct {
	root string
}

// NewService creates a settlements Service rooted at a group directory.
func NewService(root string) *Service {
	return &Service{root: root}
}

// ReadAll reads every recorded settlement. A missing file means none yet.
func (s *Service) ReadAll() ([]model.Settlement, error) {
	f, err := os.Open(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening settlements: %w", err)
	}
	defer f.Close()

	settlements, err := ReadSettlements(f)
	if err != nil {
		return nil, fmt.Errorf("reading settlements: %w", err)
	}
	return settlements, nil
}

// Record confirms a payment: it assigns an ID and date and appends the
// settlement to the file. Returns the recorded settlement.
func (s *Service) Record(fromID, toID string, amount decimal.Decimal, note string, date time.Time) (model.Settlement, error) {
	if fromID == "" || toID == "" {
		return model.Settlement{}, model.Invalidf("settlement needs both a payer and a recipient")
	}
	if fromID == toID {
		return model.Settlement{}, model.Invalidf("a member cannot settle with themselves")
	}
	if !amount.IsPositive() {
		return model.Settlement{}, model.Invalidf("settlement amount must be positive")
	}

	recorded := model.Settlement{
		ID:     uuid.NewString(),
		Date:   date,
		FromID: fromID,
		ToID:   toID,
		Amount: amount,
		Note:   note,
	}

	path := s.path()
	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return model.Settlement{}, fmt.Errorf("opening settlements: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return model.Settlement{}, fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendSettlements(f, []model.Settlement{recorded}); err != nil {
		return model.Settlement{}, fmt.Errorf("appending settlement: %w", err)
	}
	return recorded, nil
}

func (s *Service) path() string {
	return filepath.Join(s.root, Filename)
}
