package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/splitledger-dev/splitledger/internal/ledger"
	"github.com/splitledger-dev/splitledger/internal/model"
	"github.com/splitledger-dev/splitledger/internal/planfile"
	"github.com/splitledger-dev/splitledger/internal/settle"
	"github.com/splitledger-dev/splitledger/internal/settlements"
)

func newSettleCommand(logLevel *string) *cobra.Command {
	settleCmd := &cobra.Command{
		Use:   "settle",
		Short: "Plan and record settlements",
	}
	settleCmd.AddCommand(newSettlePlanCommand(logLevel))
	settleCmd.AddCommand(newSettleRecordCommand())
	return settleCmd
}

func newSettlePlanCommand(logLevel *string) *cobra.Command {
	var dir string
	var out string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Suggest the payments that settle the group",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettlePlan(dir, out, *logLevel)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "group directory")
	cmd.Flags().StringVar(&out, "out", "", "export the plan as CSV to this file")
	return cmd
}

func runSettlePlan(dir, out, logLevel string) error {
	logger, err := newLogger(logLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	g, err := loadGroup(dir)
	if err != nil {
		return err
	}

	balances, err := ledger.ComputeBalances(g.cfg.MemberList(), g.expenses, g.settlements)
	if err != nil {
		return err
	}

	suggestions := settle.Optimize(balances)
	logger.Debug("settlement plan computed",
		zap.Int("members", len(balances)),
		zap.Int("transfers", len(suggestions)))

	if len(suggestions) == 0 {
		fmt.Println("Everyone is settled up.")
		return nil
	}

	for _, s := range suggestions {
		fmt.Printf("%s pays %s %s %s\n",
			g.memberName(s.FromID), g.memberName(s.ToID), s.Amount.StringFixed(2), g.cfg.Group.Currency)
	}

	if out != "" {
		if err := exportPlan(out, planfile.FromSettlements(suggestions, time.Now())); err != nil {
			return err
		}
		fmt.Printf("Plan exported to %s\n", out)
	}
	return nil
}

func newSettleRecordCommand() *cobra.Command {
	var dir string
	var from, to, amount, note, date string

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a confirmed payment between members",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettleRecord(dir, from, to, amount, note, date)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "group directory")
	cmd.Flags().StringVar(&from, "from", "", "paying member (required)")
	_ = cmd.MarkFlagRequired("from")
	cmd.Flags().StringVar(&to, "to", "", "receiving member (required)")
	_ = cmd.MarkFlagRequired("to")
	cmd.Flags().StringVar(&amount, "amount", "", "amount paid (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&note, "note", "", "free-form note")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")

	return cmd
}

func runSettleRecord(dir, from, to, amount, note, date string) error {
	g, err := loadGroup(dir)
	if err != nil {
		return err
	}

	if !g.cfg.HasMember(from) {
		return model.Invalidf("payer %q is not a member of this group", from)
	}
	if !g.cfg.HasMember(to) {
		return model.Invalidf("recipient %q is not a member of this group", to)
	}

	paid, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("parsing amount %q: %w", amount, err)
	}

	when := time.Now()
	if date != "" {
		when, err = time.Parse(dateFormat, date)
		if err != nil {
			return fmt.Errorf("parsing date %q: %w", date, err)
		}
	}

	recorded, err := settlements.NewService(dir).Record(from, to, paid, note, when)
	if err != nil {
		return err
	}

	fmt.Printf("Recorded settlement %s: %s paid %s %s %s\n",
		recorded.ID, g.memberName(from), g.memberName(to), recorded.Amount.StringFixed(2), g.cfg.Group.Currency)
	return nil
}

func exportPlan(path string, entries []planfile.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating plan file: %w", err)
	}
	defer f.Close()

	if err := planfile.Write(f, entries); err != nil {
		return fmt.Errorf("writing plan: %w", err)
	}
	return nil
}
