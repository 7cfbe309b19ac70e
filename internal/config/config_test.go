package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const acmeDealYAML = `deal:
  company: Acme Corp
  entry_year: 2023
  exit_year: 2028
  revenue_entry: 500
  ebitda_margin_entry: 25
  revenue_growth: 8
  ebitda_margin_exit: 30
  capex_percent: 4
  dso: 45
  dpo: 60
  dsi: 30
  purchase_price_multiple: 10
  debt_percentage: 60
  interest_rate: 8
  amortization_years: 5
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", acmeDealYAML+`sensitivity:
  exit_multiples: [8, 10, 12]
output:
  csv_dir: out
  statements: true
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Deal.Company != "Acme Corp" {
		t.Errorf("expected Acme Corp, got %q", c.Deal.Company)
	}
	if c.Deal.PurchasePriceMultiple != 10 {
		t.Errorf("expected multiple 10, got %v", c.Deal.PurchasePriceMultiple)
	}
	if len(c.Sensitivity.ExitMultiples) != 3 {
		t.Errorf("expected 3 exit multiples, got %v", c.Sensitivity.ExitMultiples)
	}
	if c.Sensitivity.RevenueGrowths != nil {
		t.Errorf("absent grid should stay nil, got %v", c.Sensitivity.RevenueGrowths)
	}
	if c.Output.CSVDir != "out" || !c.Output.Statements {
		t.Errorf("unexpected output config: %+v", c.Output)
	}

	in := c.Deal.ToAssumptions()
	if in.EntryYear != 2023 || in.ExitYear != 2028 || in.RevenueEntry != 500 {
		t.Errorf("unexpected assumptions: %+v", in)
	}
}

func TestLoadDealFileMerge(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "acme.yaml", acmeDealYAML)
	path := writeFile(t, dir, "config.yaml", `deal_file: acme.yaml
deal:
  company: Acme Corp (levered)
  debt_percentage: 75
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Deal.Company != "Acme Corp (levered)" {
		t.Errorf("override should win: got %q", c.Deal.Company)
	}
	if c.Deal.DebtPercentage != 75 {
		t.Errorf("override should win: got %v", c.Deal.DebtPercentage)
	}
	if c.Deal.RevenueEntry != 500 || c.Deal.AmortizationYears != 5 {
		t.Errorf("base deal fields should survive the merge: %+v", c.Deal)
	}
}

func TestLoadDealFileRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "deals")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, sub, "acme.yaml", acmeDealYAML)
	path := writeFile(t, dir, "config.yaml", "deal_file: deals/acme.yaml\n")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Deal.Company != "Acme Corp" {
		t.Errorf("expected deal loaded relative to config dir, got %+v", c.Deal)
	}
}

func TestLoadRejectsInvalidDeal(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `deal:
  company: Backwards Inc
  entry_year: 2028
  exit_year: 2023
  revenue_entry: 100
  amortization_years: 5
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error")
	} else if !strings.Contains(err.Error(), "deal config invalid") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadRejectsMissingCompany(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `deal:
  entry_year: 2023
  exit_year: 2028
  revenue_entry: 100
  amortization_years: 5
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for missing company")
	}
}

func TestLoadUncheckedSkipsValidation(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "deal:\n  company: Partial LLC\n")

	c, err := LoadUnchecked(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Deal.Company != "Partial LLC" {
		t.Errorf("unexpected deal: %+v", c.Deal)
	}
}

func TestMergeDeal(t *testing.T) {
	base := DealConfig{
		Company:           "Base Co",
		EntryYear:         2023,
		ExitYear:          2028,
		RevenueEntry:      500,
		RevenueGrowth:     8,
		AmortizationYears: 5,
	}
	merged := MergeDeal(base, DealConfig{ExitYear: 2030, RevenueEntry: 650})

	if merged.ExitYear != 2030 || merged.RevenueEntry != 650 {
		t.Errorf("overrides not applied: %+v", merged)
	}
	if merged.Company != "Base Co" || merged.EntryYear != 2023 || merged.RevenueGrowth != 8 {
		t.Errorf("zero-valued override fields should keep base values: %+v", merged)
	}
}

func TestToSweepPreservesNil(t *testing.T) {
	sw := SensitivityConfig{ExitMargins: []float64{28, 30, 32}}.ToSweep()
	if sw.ExitMultiples != nil || sw.RevenueGrowths != nil {
		t.Errorf("unset grids should stay nil: %+v", sw)
	}
	if len(sw.ExitMargins) != 3 {
		t.Errorf("configured grid lost: %+v", sw)
	}
}
