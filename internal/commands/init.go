package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/splitledger-dev/splitledger/internal/config"
	"github.com/splitledger-dev/splitledger/internal/expenses"
	"github.com/splitledger-dev/splitledger/internal/settlements"
)

func newInitCommand() *cobra.Command {
	var name string
	var currency string
	var members []string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new group directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name, currency, members)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "group name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&currency, "currency", "USD", "group currency code")
	cmd.Flags().StringSliceVar(&members, "member", nil, "group member as id or id=Display Name (repeatable)")

	return cmd
}

func runInit(dir, name, currency string, members []string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating group directory: %w", err)
	}

	cfg := config.Default(name, currency)
	for _, m := range members {
		memberID, display, ok := strings.Cut(m, "=")
		if !ok {
			display = memberID
		}
		cfg.Members = append(cfg.Members, config.MemberConfig{ID: memberID, Name: display})
	}

	if err := config.Save(filepath.Join(dir, config.Filename), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Seed empty journals so the group directory is self-describing.
	if err := writeHeaderFile(filepath.Join(dir, expenses.Filename), expenses.Header); err != nil {
		return err
	}
	if err := writeHeaderFile(filepath.Join(dir, settlements.Filename), settlements.Header); err != nil {
		return err
	}

	fmt.Printf("Initialized group %q at %s\n", name, dir)
	return nil
}

func writeHeaderFile(path, header string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // never clobber an existing journal
	}
	if err := os.WriteFile(path, []byte(header+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
