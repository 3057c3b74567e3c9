package commands

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/splitledger-dev/splitledger/internal/config"
	"github.com/splitledger-dev/splitledger/internal/expenses"
	"github.com/splitledger-dev/splitledger/internal/model"
	"github.com/splitledger-dev/splitledger/internal/settlements"
)

// group bundles everything loaded from a group directory.
type group struct {
	root        string
	cfg         *config.Config
	expenses    []model.Expense
	settlements []model.Settlement
}

// loadGroup reads the group config, expense journal, and recorded
// settlements. The three files are independent, so they load concurrently.
func loadGroup(root string) (*group, error) {
	g := &group{root: root}

	var eg errgroup.Group
	eg.Go(func() error {
		cfg, err := config.Load(filepath.Join(root, config.Filename))
		if err != nil {
			return err
		}
		g.cfg = cfg
		return nil
	})
	eg.Go(func() error {
		exps, err := expenses.NewService(root).ReadAll()
		if err != nil {
			return err
		}
		g.expenses = exps
		return nil
	})
	eg.Go(func() error {
		setts, err := settlements.NewService(root).ReadAll()
		if err != nil {
			return err
		}
		g.settlements = setts
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("loading group %s: %w", root, err)
	}
	return g, nil
}

// memberName resolves a member ID to its display name, falling back to the
// ID itself.
func (g *group) memberName(id string) string {
	for _, m := range g.cfg.Members {
		if m.ID == id {
			return m.Name
		}
	}
	return id
}
