package commands

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/splitledger-dev/splitledger/internal/ledger"
)

func newBalancesCommand(logLevel *string) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Show net balances per member",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBalances(dir, *logLevel)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "group directory")
	return cmd
}

func runBalances(dir, logLevel string) error {
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
		var violation ledger.InvariantViolation
		if errors.As(err, &violation) {
			logger.Error("balances do not sum to zero; the ledger data is inconsistent",
				zap.String("sum", violation.Sum.StringFixed(2)),
				zap.Int("members", violation.Members))
		}
		return err
	}

	ids := make([]string, 0, len(balances))
	for id := range balances {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		b := balances[id]
		switch {
		case b.GreaterThan(decimal.Zero):
			fmt.Printf("%-20s is owed %s %s\n", g.memberName(id), b.StringFixed(2), g.cfg.Group.Currency)
		case b.LessThan(decimal.Zero):
			fmt.Printf("%-20s owes %s %s\n", g.memberName(id), b.Neg().StringFixed(2), g.cfg.Group.Currency)
		default:
			fmt.Printf("%-20s is settled up\n", g.memberName(id))
		}
	}
	return nil
}
