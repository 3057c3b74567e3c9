package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/splitledger-dev/splitledger/internal/cashflow"
	"github.com/splitledger-dev/splitledger/internal/config"
	"github.com/splitledger-dev/splitledger/internal/entities"
	"github.com/splitledger-dev/splitledger/internal/model"
	"github.com/splitledger-dev/splitledger/internal/planfile"
)

func newAllocateCommand(logLevel *string) *cobra.Command {
	var dir string
	var goal string
	var out string

	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Propose cash transfers across a fleet of entities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAllocate(dir, goal, out, *logLevel)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "group directory")
	cmd.Flags().StringVar(&goal, "goal", "", "allocation goal (maximize_runway, minimize_risk, balanced); default from config")
	cmd.Flags().StringVar(&out, "out", "", "export the plan as CSV to this file")
	return cmd
}

func runAllocate(dir, goal, out, logLevel string) error {
	logger, err := newLogger(logLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := config.Load(filepath.Join(dir, config.Filename))
	if err != nil {
		return err
	}
	if goal == "" {
		goal = cfg.Cashflow.Goal
	}

	fleet, err := entities.Load(dir)
	if err != nil {
		return err
	}

	allocator := cashflow.NewAllocator(logger)
	transfers, err := allocator.Allocate(fleet.All(), model.AllocationGoal(goal), cfg.Constraints())
	if err != nil {
		return err
	}

	if len(transfers) == 0 {
		fmt.Println("No transfers proposed.")
		return nil
	}

	for _, t := range transfers {
		fromName, toName := t.FromID, t.ToID
		if e, ok := fleet.Get(t.FromID); ok {
			fromName = e.Name
		}
		if e, ok := fleet.Get(t.ToID); ok {
			toName = e.Name
		}
		fmt.Printf("%s -> %s  %s %s  (%s)\n",
			fromName, toName, t.Amount.StringFixed(2), cfg.Group.Currency, t.Reason)
	}

	if out != "" {
		if err := exportPlan(out, planfile.FromTransfers(transfers, time.Now())); err != nil {
			return err
		}
		fmt.Printf("Plan exported to %s\n", out)
	}

	logger.Debug("allocation computed",
		zap.String("goal", goal),
		zap.Int("entities", len(fleet.All())),
		zap.Int("transfers", len(transfers)))
	return nil
}
