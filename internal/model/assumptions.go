package model

import "fmt"

// DefaultTaxRate is applied when Assumptions.TaxRate is left zero.
const DefaultTaxRate = 0.21

// Assumptions defines the deal inputs exactly as a user writes them.
// Units:
// - RevenueEntry: $M
// - EBITDAMarginEntry, EBITDAMarginExit, RevenueGrowth, CapexPercent,
//   DebtPercentage, InterestRate: percent-as-number (25 means 25%)
// - DSO/DPO/DSI: days
// - PurchasePriceMultiple: turns of entry EBITDA
// - TaxRate: fraction (0.21 means 21%); zero selects DefaultTaxRate
type Assumptions struct {
	Company   string
	EntryYear int
	ExitYear  int

	RevenueEntry      float64
	EBITDAMarginEntry float64
	RevenueGrowth     float64
	EBITDAMarginExit  float64

	CapexPercent float64
	DSO          float64
	DPO          float64
	DSI          float64

	PurchasePriceMultiple float64
	DebtPercentage        float64
	InterestRate          float64
	AmortizationYears     int
	TaxRate               float64
}

// AssumptionSet is the validated, normalized form the projection engine
// consumes. Percent fields are fractions here. Immutable after construction;
// build one per model run (or per sensitivity point) via NewAssumptionSet.
type AssumptionSet struct {
	// Input preserves the raw percent-as-number assumptions, so a caller can
	// copy them, change one field and construct a perturbed set.
	Input Assumptions

	Company   string
	EntryYear int
	ExitYear  int

	RevenueEntry      float64
	EBITDAMarginEntry float64
	RevenueGrowth     float64
	EBITDAMarginExit  float64

	CapexPercent float64
	DSO          float64
	DPO          float64
	DSI          float64

	PurchasePriceMultiple float64
	DebtPercentage        float64
	InterestRate          float64
	AmortizationYears     int
	TaxRate               float64

	// Derived at construction.
	EntryEBITDA   float64
	PurchasePrice float64
	DebtAmount    float64
	EquityAmount  float64
	HoldingPeriod int
	Years         []int
}

// InvalidAssumptionError reports an input that fails validation. Detected at
// construction; nothing is computed from a rejected assumption set.
type InvalidAssumptionError struct {
	Field  string
	Reason string
}

func (e *InvalidAssumptionError) Error() string {
	return fmt.Sprintf("invalid assumption %s: %s", e.Field, e.Reason)
}

func NewAssumptionSet(in Assumptions) (*AssumptionSet, error) {
	tax := in.TaxRate
	if tax == 0 {
		tax = DefaultTaxRate
	}
	as := &AssumptionSet{
		Input:     in,
		Company:   in.Company,
		EntryYear: in.EntryYear,
		ExitYear:  in.ExitYear,

		RevenueEntry:      in.RevenueEntry,
		EBITDAMarginEntry: in.EBITDAMarginEntry / 100,
		RevenueGrowth:     in.RevenueGrowth / 100,
		EBITDAMarginExit:  in.EBITDAMarginExit / 100,

		CapexPercent: in.CapexPercent / 100,
		DSO:          in.DSO,
		DPO:          in.DPO,
		DSI:          in.DSI,

		PurchasePriceMultiple: in.PurchasePriceMultiple,
		DebtPercentage:        in.DebtPercentage / 100,
		InterestRate:          in.InterestRate / 100,
		AmortizationYears:     in.AmortizationYears,
		TaxRate:               tax,
	}
	if err := as.Validate(); err != nil {
		return nil, err
	}

	as.EntryEBITDA = as.RevenueEntry * as.EBITDAMarginEntry
	as.PurchasePrice = as.EntryEBITDA * as.PurchasePriceMultiple
	as.DebtAmount = as.PurchasePrice * as.DebtPercentage
	as.EquityAmount = as.PurchasePrice - as.DebtAmount
	as.HoldingPeriod = as.ExitYear - as.EntryYear
	as.Years = make([]int, 0, as.HoldingPeriod+1)
	for y := as.EntryYear; y <= as.ExitYear; y++ {
		as.Years = append(as.Years, y)
	}
	return as, nil
}

// Validate checks the construction rules. With integer years, ExitYear >
// EntryYear already guarantees a holding period of at least one year.
func (as *AssumptionSet) Validate() error {
	if as.ExitYear <= as.EntryYear {
		return &InvalidAssumptionError{
			Field:  "ExitYear",
			Reason: "must be greater than EntryYear (need at least one projection year)",
		}
	}
	if as.AmortizationYears <= 0 {
		return &InvalidAssumptionError{Field: "AmortizationYears", Reason: "must be > 0"}
	}
	if as.RevenueEntry <= 0 {
		return &InvalidAssumptionError{Field: "RevenueEntry", Reason: "must be > 0"}
	}
	return nil
}

// AnnualInstallment is the fixed straight-line principal payment.
func (as *AssumptionSet) AnnualInstallment() float64 {
	return as.DebtAmount / float64(as.AmortizationYears)
}

// NumYears is the projection length including the entry year.
func (as *AssumptionSet) NumYears() int {
	return len(as.Years)
}
