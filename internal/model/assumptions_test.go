package model

import (
	"errors"
	"math"
	"testing"
)

func acmeAssumptions() Assumptions {
	return Assumptions{
		Company:               "Acme Corp",
		EntryYear:             2023,
		ExitYear:              2028,
		RevenueEntry:          500,
		EBITDAMarginEntry:     25,
		RevenueGrowth:         8,
		EBITDAMarginExit:      30,
		CapexPercent:          4,
		DSO:                   45,
		DPO:                   60,
		DSI:                   30,
		PurchasePriceMultiple: 10.0,
		DebtPercentage:        60,
		InterestRate:          8,
		AmortizationYears:     5,
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewAssumptionSet_NormalizesPercents(t *testing.T) {
	as, err := NewAssumptionSet(acmeAssumptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !approx(as.EBITDAMarginEntry, 0.25) {
		t.Errorf("expected entry margin 0.25, got %v", as.EBITDAMarginEntry)
	}
	if !approx(as.EBITDAMarginExit, 0.30) {
		t.Errorf("expected exit margin 0.30, got %v", as.EBITDAMarginExit)
	}
	if !approx(as.RevenueGrowth, 0.08) {
		t.Errorf("expected growth 0.08, got %v", as.RevenueGrowth)
	}
	if !approx(as.CapexPercent, 0.04) {
		t.Errorf("expected capex 0.04, got %v", as.CapexPercent)
	}
	if !approx(as.DebtPercentage, 0.60) {
		t.Errorf("expected debt fraction 0.60, got %v", as.DebtPercentage)
	}
	if !approx(as.InterestRate, 0.08) {
		t.Errorf("expected interest rate 0.08, got %v", as.InterestRate)
	}
	// Day counts and the multiple pass through unchanged.
	if as.DSO != 45 || as.DPO != 60 || as.DSI != 30 {
		t.Errorf("day counts changed: dso=%v dpo=%v dsi=%v", as.DSO, as.DPO, as.DSI)
	}
	if as.PurchasePriceMultiple != 10.0 {
		t.Errorf("expected multiple 10.0, got %v", as.PurchasePriceMultiple)
	}
}

func TestNewAssumptionSet_DerivedValues(t *testing.T) {
	as, err := NewAssumptionSet(acmeAssumptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !approx(as.EntryEBITDA, 125) {
		t.Errorf("expected entry EBITDA 125, got %v", as.EntryEBITDA)
	}
	if !approx(as.PurchasePrice, 1250) {
		t.Errorf("expected purchase price 1250, got %v", as.PurchasePrice)
	}
	if !approx(as.DebtAmount, 750) {
		t.Errorf("expected debt 750, got %v", as.DebtAmount)
	}
	if !approx(as.EquityAmount, 500) {
		t.Errorf("expected equity 500, got %v", as.EquityAmount)
	}
	if as.HoldingPeriod != 5 {
		t.Errorf("expected holding period 5, got %d", as.HoldingPeriod)
	}
	if as.NumYears() != 6 {
		t.Errorf("expected 6 projection years, got %d", as.NumYears())
	}
	if as.Years[0] != 2023 || as.Years[len(as.Years)-1] != 2028 {
		t.Errorf("expected years 2023..2028, got %v", as.Years)
	}
	if !approx(as.AnnualInstallment(), 150) {
		t.Errorf("expected installment 150, got %v", as.AnnualInstallment())
	}
}

func TestNewAssumptionSet_TaxRateDefault(t *testing.T) {
	as, err := NewAssumptionSet(acmeAssumptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if as.TaxRate != DefaultTaxRate {
		t.Errorf("expected default tax rate %v, got %v", DefaultTaxRate, as.TaxRate)
	}

	in := acmeAssumptions()
	in.TaxRate = 0.30
	as, err = NewAssumptionSet(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if as.TaxRate != 0.30 {
		t.Errorf("expected tax rate 0.30, got %v", as.TaxRate)
	}
}

func TestNewAssumptionSet_RejectsExitBeforeEntry(t *testing.T) {
	in := acmeAssumptions()
	in.ExitYear = in.EntryYear

	_, err := NewAssumptionSet(in)
	if err == nil {
		t.Fatal("expected error for exit year equal to entry year, got nil")
	}
	var iae *InvalidAssumptionError
	if !errors.As(err, &iae) {
		t.Fatalf("expected InvalidAssumptionError, got %T", err)
	}
	if iae.Field != "ExitYear" {
		t.Errorf("expected field ExitYear, got %s", iae.Field)
	}
}

func TestNewAssumptionSet_RejectsNonPositiveAmortization(t *testing.T) {
	for _, years := range []int{0, -3} {
		in := acmeAssumptions()
		in.AmortizationYears = years

		_, err := NewAssumptionSet(in)
		if err == nil {
			t.Fatalf("expected error for amortization years %d, got nil", years)
		}
		var iae *InvalidAssumptionError
		if !errors.As(err, &iae) {
			t.Fatalf("expected InvalidAssumptionError, got %T", err)
		}
		if iae.Field != "AmortizationYears" {
			t.Errorf("expected field AmortizationYears, got %s", iae.Field)
		}
	}
}

func TestNewAssumptionSet_RejectsNonPositiveRevenue(t *testing.T) {
	for _, rev := range []float64{0, -100} {
		in := acmeAssumptions()
		in.RevenueEntry = rev

		_, err := NewAssumptionSet(in)
		if err == nil {
			t.Fatalf("expected error for revenue %v, got nil", rev)
		}
		var iae *InvalidAssumptionError
		if !errors.As(err, &iae) {
			t.Fatalf("expected InvalidAssumptionError, got %T", err)
		}
		if iae.Field != "RevenueEntry" {
			t.Errorf("expected field RevenueEntry, got %s", iae.Field)
		}
	}
}

func TestAssumptionSet_InputPreserved(t *testing.T) {
	in := acmeAssumptions()
	as, err := NewAssumptionSet(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if as.Input != in {
		t.Errorf("expected raw input to be preserved, got %+v", as.Input)
	}
	// Perturbing a copy of the input must not require un-normalizing.
	perturbed := as.Input
	perturbed.RevenueGrowth = 10
	as2, err := NewAssumptionSet(perturbed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approx(as2.RevenueGrowth, 0.10) {
		t.Errorf("expected perturbed growth 0.10, got %v", as2.RevenueGrowth)
	}
}
