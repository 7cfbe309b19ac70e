package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"lbo-model/internal/model"
	"lbo-model/internal/sensitivity"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load deal assumptions from a separate YAML (e.g. examples/deals/*.yaml).
	// If both DealFile and Deal are provided, Deal overrides DealFile.
	DealFile    string            `yaml:"deal_file"`
	Deal        DealConfig        `yaml:"deal"`
	Sensitivity SensitivityConfig `yaml:"sensitivity"`
	Output      OutputConfig      `yaml:"output"`
}

type DealConfig struct {
	Company   string `yaml:"company"`
	EntryYear int    `yaml:"entry_year"`
	ExitYear  int    `yaml:"exit_year"`

	RevenueEntry      float64 `yaml:"revenue_entry"`
	EBITDAMarginEntry float64 `yaml:"ebitda_margin_entry"`
	RevenueGrowth     float64 `yaml:"revenue_growth"`
	EBITDAMarginExit  float64 `yaml:"ebitda_margin_exit"`

	CapexPercent float64 `yaml:"capex_percent"`
	DSO          float64 `yaml:"dso"`
	DPO          float64 `yaml:"dpo"`
	DSI          float64 `yaml:"dsi"`

	PurchasePriceMultiple float64 `yaml:"purchase_price_multiple"`
	DebtPercentage        float64 `yaml:"debt_percentage"`
	InterestRate          float64 `yaml:"interest_rate"`
	AmortizationYears     int     `yaml:"amortization_years"`
	TaxRate               float64 `yaml:"tax_rate"`
}

// SensitivityConfig selects the sweep grids. Empty lists fall back to the
// default grid around the deal's base value for each axis.
type SensitivityConfig struct {
	ExitMultiples  []float64 `yaml:"exit_multiples"`
	RevenueGrowths []float64 `yaml:"revenue_growths"`
	ExitMargins    []float64 `yaml:"exit_margins"`
}

type OutputConfig struct {
	CSVDir     string `yaml:"csv_dir"`
	PDF        string `yaml:"pdf"`
	Statements bool   `yaml:"statements"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If deal_file is set, load it and merge in any explicit overrides from c.Deal.
	if c.DealFile != "" {
		dealPath := c.DealFile
		if !filepath.IsAbs(dealPath) {
			// Prefer interpreting relative paths as relative to the config file directory,
			// but fall back to the provided path (relative to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), dealPath)
			if _, err := os.Stat(cand); err == nil {
				dealPath = cand
			}
		}
		loaded, err := LoadDealFile(dealPath)
		if err != nil {
			return nil, err
		}
		c.Deal = MergeDeal(loaded, c.Deal)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Deal.Company == "" {
		return errors.New("deal.company is required")
	}
	// Validate deal assumptions by constructing a model.AssumptionSet.
	_, err := model.NewAssumptionSet(c.Deal.ToAssumptions())
	if err != nil {
		return fmt.Errorf("deal config invalid: %w", err)
	}
	return nil
}

func (d DealConfig) ToAssumptions() model.Assumptions {
	return model.Assumptions{
		Company:   d.Company,
		EntryYear: d.EntryYear,
		ExitYear:  d.ExitYear,

		RevenueEntry:      d.RevenueEntry,
		EBITDAMarginEntry: d.EBITDAMarginEntry,
		RevenueGrowth:     d.RevenueGrowth,
		EBITDAMarginExit:  d.EBITDAMarginExit,

		CapexPercent: d.CapexPercent,
		DSO:          d.DSO,
		DPO:          d.DPO,
		DSI:          d.DSI,

		PurchasePriceMultiple: d.PurchasePriceMultiple,
		DebtPercentage:        d.DebtPercentage,
		InterestRate:          d.InterestRate,
		AmortizationYears:     d.AmortizationYears,
		TaxRate:               d.TaxRate,
	}
}

// ToSweep converts the configured grids to the sweep's config shape.
// Empty YAML lists unmarshal to nil, which selects the default grid.
func (s SensitivityConfig) ToSweep() sensitivity.Config {
	return sensitivity.Config{
		ExitMultiples:  s.ExitMultiples,
		RevenueGrowths: s.RevenueGrowths,
		ExitMargins:    s.ExitMargins,
	}
}

type dealFileWrapper struct {
	Deal DealConfig `yaml:"deal"`
}

// LoadDealFile reads a standalone deal YAML of the shape {deal: {...}}.
func LoadDealFile(path string) (DealConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return DealConfig{}, err
	}
	var w dealFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return DealConfig{}, err
	}
	return w.Deal, nil
}

// MergeDeal overlays non-zero fields from override onto base.
// This is used when loading a deal file and then applying overrides from the config or CLI.
func MergeDeal(base, override DealConfig) DealConfig {
	out := base
	if override.Company != "" {
		out.Company = override.Company
	}
	if override.EntryYear != 0 {
		out.EntryYear = override.EntryYear
	}
	if override.ExitYear != 0 {
		out.ExitYear = override.ExitYear
	}
	if override.RevenueEntry != 0 {
		out.RevenueEntry = override.RevenueEntry
	}
	if override.EBITDAMarginEntry != 0 {
		out.EBITDAMarginEntry = override.EBITDAMarginEntry
	}
	// Note: zero growth is a legal assumption, but an override of exactly 0
	// cannot be told apart from an absent field and keeps the base value.
	if override.RevenueGrowth != 0 {
		out.RevenueGrowth = override.RevenueGrowth
	}
	if override.EBITDAMarginExit != 0 {
		out.EBITDAMarginExit = override.EBITDAMarginExit
	}
	if override.CapexPercent != 0 {
		out.CapexPercent = override.CapexPercent
	}
	if override.DSO != 0 {
		out.DSO = override.DSO
	}
	if override.DPO != 0 {
		out.DPO = override.DPO
	}
	if override.DSI != 0 {
		out.DSI = override.DSI
	}
	if override.PurchasePriceMultiple != 0 {
		out.PurchasePriceMultiple = override.PurchasePriceMultiple
	}
	if override.DebtPercentage != 0 {
		out.DebtPercentage = override.DebtPercentage
	}
	if override.InterestRate != 0 {
		out.InterestRate = override.InterestRate
	}
	if override.AmortizationYears != 0 {
		out.AmortizationYears = override.AmortizationYears
	}
	if override.TaxRate != 0 {
		out.TaxRate = override.TaxRate
	}
	return out
}
