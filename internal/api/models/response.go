package models

// ModelResponse represents the response from a model run
type ModelResponse struct {
	ID          string             `json:"id,omitempty"`
	Status      string             `json:"status"`
	Summary     ModelSummary       `json:"summary"`
	Statements  *Statements        `json:"statements,omitempty"`
	Sensitivity *SensitivityResult `json:"sensitivity,omitempty"`
}

// ModelSummary contains headline transaction and return figures
type ModelSummary struct {
	Company            string        `json:"company"`
	EntryYear          int           `json:"entry_year"`
	ExitYear           int           `json:"exit_year"`
	HoldingPeriodYears int           `json:"holding_period_years"`
	EntryEBITDA        float64       `json:"entry_ebitda"`
	PurchasePrice      float64       `json:"purchase_price"`
	DebtAmount         float64       `json:"debt_amount"`
	EquityAmount       float64       `json:"equity_amount"`
	ExitEBITDA         float64       `json:"exit_ebitda"`
	ExitDebt           float64       `json:"exit_debt"`
	ExitEquityValue    float64       `json:"exit_equity_value"`
	Returns            ReturnMetrics `json:"returns"`
}

// ReturnMetrics contains the equity return measures
type ReturnMetrics struct {
	IRR  float64 `json:"irr"`  // percent
	MOIC float64 `json:"moic"` // multiple of invested capital
	DPI  float64 `json:"dpi"`
	TVPI float64 `json:"tvpi"`
}

// Statements carries the year-by-year projection tables
type Statements struct {
	Income   []IncomeRow   `json:"income"`
	CashFlow []CashFlowRow `json:"cash_flow"`
	Balance  []BalanceRow  `json:"balance"`
}

// IncomeRow represents one projected year of the income statement
type IncomeRow struct {
	Year            int     `json:"year"`
	Revenue         float64 `json:"revenue"`
	EBITDAMargin    float64 `json:"ebitda_margin"` // fraction
	EBITDA          float64 `json:"ebitda"`
	Depreciation    float64 `json:"depreciation"`
	EBIT            float64 `json:"ebit"`
	InterestExpense float64 `json:"interest_expense"`
	EBT             float64 `json:"ebt"`
	Tax             float64 `json:"tax"`
	NetIncome       float64 `json:"net_income"`
}

// CashFlowRow represents one projected year of levered cash flows
type CashFlowRow struct {
	Year                 int     `json:"year"`
	NetIncome            float64 `json:"net_income"`
	Depreciation         float64 `json:"depreciation"`
	WorkingCapitalChange float64 `json:"working_capital_change"`
	Capex                float64 `json:"capex"`
	FCF                  float64 `json:"fcf"`
	DebtAmortization     float64 `json:"debt_amortization"`
	InterestPaid         float64 `json:"interest_paid"`
	LFCF                 float64 `json:"lfcf"`
	CumulativeLFCF       float64 `json:"cumulative_lfcf"`
}

// BalanceRow represents one projected year of the balance sheet
type BalanceRow struct {
	Year            int     `json:"year"`
	DebtBalance     float64 `json:"debt_balance"`
	EquityBalance   float64 `json:"equity_balance"`
	EnterpriseValue float64 `json:"enterprise_value"`
	ImpliedEVEBITDA float64 `json:"implied_ev_ebitda"`
}

// SensitivityResponse represents the response from a sensitivity sweep
type SensitivityResponse struct {
	ID          string            `json:"id,omitempty"`
	Status      string            `json:"status"`
	Summary     ModelSummary      `json:"summary"`
	Sensitivity SensitivityResult `json:"sensitivity"`
}

// SensitivityResult groups sweep points per dimension
type SensitivityResult struct {
	ExitMultiple  []SweepPoint `json:"exit_multiple"`
	RevenueGrowth []SweepPoint `json:"revenue_growth"`
	ExitMargin    []SweepPoint `json:"exit_margin"`
}

// SweepPoint is one point on a sensitivity grid
type SweepPoint struct {
	Value float64 `json:"value"`
	IRR   float64 `json:"irr"`
	MOIC  float64 `json:"moic"`
}

// DealInfo represents information about a saved deal
type DealInfo struct {
	ID      string    `json:"id"`
	Company string    `json:"company"`
	File    string    `json:"file"`
	Specs   DealSpecs `json:"specs"`
}

// DealSpecs contains headline deal figures
type DealSpecs struct {
	RevenueEntry          float64 `json:"revenue_entry"`
	PurchasePriceMultiple float64 `json:"purchase_price_multiple"`
	DebtPercentage        float64 `json:"debt_percentage"`
}

// DimensionInfo represents information about a sensitivity dimension
type DimensionInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Unit        string `json:"unit"` // "turns", "percent"
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
