package projection

// IncomeYear is one projected income-statement row.
type IncomeYear struct {
	Year int

	Revenue      float64
	EBITDAMargin float64 // fraction
	EBITDA       float64
	Depreciation float64
	EBIT         float64

	InterestExpense float64
	EBT             float64
	Tax             float64
	NetIncome       float64
}

// CashFlowYear is one projected cash-flow row.
// Convention: DebtAmortization and InterestPaid are cash outflows, so they
// are stored as non-positive amounts.
type CashFlowYear struct {
	Year int

	NetIncome            float64
	Depreciation         float64
	WorkingCapitalChange float64
	Capex                float64

	DebtAmortization float64
	InterestPaid     float64

	FCF            float64
	LFCF           float64
	CumulativeLFCF float64
}

// BalanceYear is one projected balance-sheet row.
type BalanceYear struct {
	Year int

	DebtBalance     float64
	EquityBalance   float64
	EnterpriseValue float64
	ImpliedEVEBITDA float64
}

// ReturnMetrics summarizes the investor outcome. IRR is a percentage; the
// multiples are plain ratios.
type ReturnMetrics struct {
	IRR  float64
	MOIC float64
	DPI  float64
	TVPI float64

	ExitEquityValue float64
}

// Result is the complete projected output for one assumption set.
// This is the primary artifact every consumer reads from.
type Result struct {
	Company string
	Years   []int

	Income   []IncomeYear
	CashFlow []CashFlowYear
	Balance  []BalanceYear

	// CashFlows is the vector the rate solver saw: equity outflow at entry,
	// interim levered free cash flows, exit equity value last.
	CashFlows []float64

	Returns ReturnMetrics
}

// ExitEBITDA is the final projected year's EBITDA.
func (r *Result) ExitEBITDA() float64 {
	return r.Income[len(r.Income)-1].EBITDA
}

// ExitDebt is the final projected year's debt balance.
func (r *Result) ExitDebt() float64 {
	return r.Balance[len(r.Balance)-1].DebtBalance
}

// Statement names one of the three projected tables.
type Statement string

const (
	StatementIncome   Statement = "income"
	StatementCashFlow Statement = "cash_flow"
	StatementBalance  Statement = "balance"
)

// AllStatements lists the statements in presentation order.
func AllStatements() []Statement {
	return []Statement{StatementIncome, StatementCashFlow, StatementBalance}
}

// Title is the heading used by reports.
func (s Statement) Title() string {
	switch s {
	case StatementIncome:
		return "Income Statement"
	case StatementCashFlow:
		return "Cash Flow Statement"
	case StatementBalance:
		return "Balance Sheet"
	}
	return string(s)
}

// FileName is the per-statement CSV export name.
func (s Statement) FileName() string {
	return string(s) + ".csv"
}
