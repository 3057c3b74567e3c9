package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/splitledger-dev/splitledger/internal/expenses"
	"github.com/splitledger-dev/splitledger/internal/id"
	"github.com/splitledger-dev/splitledger/internal/model"
	"github.com/splitledger-dev/splitledger/internal/money"
	"github.com/splitledger-dev/splitledger/internal/split"
)

const dateFormat = "2006-01-02"

func newExpenseCommand() *cobra.Command {
	expenseCmd := &cobra.Command{
		Use:   "expense",
		Short: "Expense journal operations",
	}
	expenseCmd.AddCommand(newExpenseAddCommand())
	expenseCmd.AddCommand(newExpenseListCommand())
	expenseCmd.AddCommand(newExpenseSettleCommand())
	return expenseCmd
}

func newExpenseAddCommand() *cobra.Command {
	var dir string
	var amount, payer, method, description, date string
	var participants []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a shared expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpenseAdd(dir, amount, payer, method, description, date, participants)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "group directory")
	cmd.Flags().StringVar(&amount, "amount", "", "total amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&payer, "payer", "", "member who paid (required)")
	_ = cmd.MarkFlagRequired("payer")
	cmd.Flags().StringVar(&method, "method", string(model.SplitEqual), "split method (equal, exact, percentage, shares)")
	cmd.Flags().StringVar(&description, "desc", "", "description")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().StringSliceVar(&participants, "participants", nil,
		"participants: ids for equal, id=value for exact/percentage/shares (required)")
	_ = cmd.MarkFlagRequired("participants")

	return cmd
}

func runExpenseAdd(dir, amount, payer, method, description, date string, participantSpecs []string) error {
	g, err := loadGroup(dir)
	if err != nil {
		return err
	}

	total, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("parsing amount %q: %w", amount, err)
	}
	total = money.Round2(total)

	when := time.Now()
	if date != "" {
		when, err = time.Parse(dateFormat, date)
		if err != nil {
			return fmt.Errorf("parsing date %q: %w", date, err)
		}
	}

	if !g.cfg.HasMember(payer) {
		return model.Invalidf("payer %q is not a member of this group", payer)
	}

	splitMethod := model.SplitMethod(method)
	parts, err := parseParticipants(splitMethod, participantSpecs)
	if err != nil {
		return err
	}
	for _, p := range parts {
		if !g.cfg.HasMember(p.MemberID) {
			return model.Invalidf("participant %q is not a member of this group", p.MemberID)
		}
	}

	shares, err := split.Calculate(total, splitMethod, parts)
	if err != nil {
		return err
	}

	svc := expenses.NewService(dir)
	seq, err := svc.NextSeq(when.Year(), int(when.Month()))
	if err != nil {
		return err
	}

	e := model.Expense{
		ID:          id.FormatExpenseID(when.Year(), int(when.Month()), seq),
		Date:        when,
		Description: description,
		Amount:      total,
		Currency:    g.cfg.Group.Currency,
		PayerID:     payer,
		Method:      splitMethod,
		Shares:      shares,
	}
	if err := svc.Append(e); err != nil {
		return err
	}

	fmt.Printf("Recorded expense %s (%s %s paid by %s)\n", e.ID, e.Amount.StringFixed(2), e.Currency, payer)
	return nil
}

// parseParticipants turns flag values into split inputs. Equal splits take
// bare member IDs; the other methods take id=value pairs.
func parseParticipants(method model.SplitMethod, specs []string) ([]model.Participant, error) {
	parts := make([]model.Participant, 0, len(specs))
	for _, spec := range specs {
		memberID, value, hasValue := strings.Cut(spec, "=")
		if memberID == "" {
			return nil, model.Invalidf("malformed participant %q", spec)
		}

		p := model.Participant{MemberID: memberID}
		switch method {
		case model.SplitEqual:
			if hasValue {
				return nil, model.Invalidf("equal splits take bare member ids, got %q", spec)
			}
		case model.SplitExact, model.SplitPercentage:
			if !hasValue {
				return nil, model.Invalidf("%s splits need id=value, got %q", method, spec)
			}
			d, err := decimal.NewFromString(value)
			if err != nil {
				return nil, model.Invalidf("participant %q: %q is not a number", memberID, value)
			}
			if method == model.SplitExact {
				p.Amount = d
			} else {
				p.Percentage = d
			}
		case model.SplitShares:
			if !hasValue {
				return nil, model.Invalidf("shares splits need id=count, got %q", spec)
			}
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, model.Invalidf("participant %q: %q is not a share count", memberID, value)
			}
			p.Shares = n
		default:
			return nil, model.Invalidf("unknown split method %q", method)
		}
		parts = append(parts, p)
	}
	return parts, nil
}

func newExpenseListCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded expenses",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpenseList(dir)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "group directory")
	return cmd
}

func runExpenseList(dir string) error {
	all, err := expenses.NewService(dir).ReadAll()
	if err != nil {
		return err
	}

	for _, e := range all {
		settled := ""
		if e.Settled {
			settled = " [settled]"
		}
		fmt.Printf("%s  %s  %8s %s  %-10s %s%s\n",
			e.ID, e.Date.Format(dateFormat), e.Amount.StringFixed(2), e.Currency, e.PayerID, e.Description, settled)
	}
	return nil
}

func newExpenseSettleCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "settle <expense-id>",
		Short: "Mark an expense as settled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := expenses.NewService(dir).MarkSettled(args[0]); err != nil {
				return err
			}
			fmt.Printf("Marked expense %s as settled\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "group directory")
	return cmd
}
