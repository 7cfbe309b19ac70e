package models

// ModelRequest represents the request body for solving an LBO model
type ModelRequest struct {
	DealFile string       `json:"deal_file,omitempty"`
	Deal     DealRequest  `json:"deal,omitempty"`
	Options  ModelOptions `json:"options,omitempty"`
}

// DealRequest defines deal assumptions. When deal_file is set these act as
// overrides on top of the file; otherwise they describe the whole deal.
type DealRequest struct {
	Company               string  `json:"company,omitempty"`
	EntryYear             int     `json:"entry_year,omitempty"`
	ExitYear              int     `json:"exit_year,omitempty"`
	RevenueEntry          float64 `json:"revenue_entry,omitempty"` // $M
	EBITDAMarginEntry     float64 `json:"ebitda_margin_entry,omitempty"`
	RevenueGrowth         float64 `json:"revenue_growth,omitempty"`
	EBITDAMarginExit      float64 `json:"ebitda_margin_exit,omitempty"`
	CapexPercent          float64 `json:"capex_percent,omitempty"`
	DSO                   float64 `json:"dso,omitempty"` // days
	DPO                   float64 `json:"dpo,omitempty"`
	DSI                   float64 `json:"dsi,omitempty"`
	PurchasePriceMultiple float64 `json:"purchase_price_multiple,omitempty"`
	DebtPercentage        float64 `json:"debt_percentage,omitempty"`
	InterestRate          float64 `json:"interest_rate,omitempty"`
	AmortizationYears     int     `json:"amortization_years,omitempty"`
	TaxRate               float64 `json:"tax_rate,omitempty"` // fraction, default 0.21
}

// ModelOptions contains optional model parameters
type ModelOptions struct {
	IncludeStatements bool `json:"include_statements,omitempty"` // default: false
}

// SensitivityRequest represents the request body for a sensitivity sweep
type SensitivityRequest struct {
	DealFile string           `json:"deal_file,omitempty"`
	Deal     DealRequest      `json:"deal,omitempty"`
	Grids    SensitivityGrids `json:"grids,omitempty"`
}

// SensitivityGrids overrides the default sweep grid per dimension.
// An omitted grid falls back to five unit steps centered on the base value.
type SensitivityGrids struct {
	ExitMultiples  []float64 `json:"exit_multiples,omitempty"`
	RevenueGrowths []float64 `json:"revenue_growths,omitempty"`
	ExitMargins    []float64 `json:"exit_margins,omitempty"`
}
