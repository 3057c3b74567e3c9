// Package config reads and writes splitledger.yaml, the group
// configuration file at the root of a group directory.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/splitledger-dev/splitledger/internal/model"
	"github.com/splitledger-dev/splitledger/internal/money"
)

// Filename is the config file name inside a group directory.
const Filename = "splitledger.yaml"

// Config represents the top-level splitledger.yaml configuration.
type Config struct {
	Group      GroupConfig      `yaml:"group"`
	Members    []MemberConfig   `yaml:"members,omitempty"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Cashflow   CashflowConfig   `yaml:"cashflow"`
}

// GroupConfig identifies the group and its single computation currency.
type GroupConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"`
}

// MemberConfig is one group member.
type MemberConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// ThresholdsConfig controls when a computed transfer is worth proposing.
// Amounts are plain numbers in the file; they are rounded to cents on load.
type ThresholdsConfig struct {
	MinTransfer float64 `yaml:"min_transfer"`
}

// CashflowConfig controls the multi-entity allocation variant.
type CashflowConfig struct {
	MinCashPerEntity float64 `yaml:"min_cash_per_entity"`
	Goal             string  `yaml:"goal"`
}

// Load reads a splitledger.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new group.
func Default(name, currency string) *Config {
	return &Config{
		Group: GroupConfig{
			Name:     name,
			Currency: currency,
		},
		Thresholds: ThresholdsConfig{
			MinTransfer: 1.00,
		},
		Cashflow: CashflowConfig{
			Goal: string(model.GoalBalanced),
		},
	}
}

// MemberList converts the configured members to domain members.
func (c *Config) MemberList() []model.Member {
	members := make([]model.Member, len(c.Members))
	for i, m := range c.Members {
		members[i] = model.Member{ID: m.ID, Name: m.Name}
	}
	return members
}

// HasMember reports whether a member ID is configured.
func (c *Config) HasMember(id string) bool {
	for _, m := range c.Members {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Constraints converts the configured thresholds to engine constraints,
// rounding the float inputs to cents.
func (c *Config) Constraints() model.Constraints {
	return model.Constraints{
		MinCashPerEntity: money.Round2(decimal.NewFromFloat(c.Cashflow.MinCashPerEntity)),
		MinTransfer:      money.Round2(decimal.NewFromFloat(c.Thresholds.MinTransfer)),
	}
}
