package projection

import (
	"errors"
	"fmt"
	"math"

	"lbo-model/internal/model"
	"lbo-model/internal/returns"
)

// ErrDegenerateHoldingPeriod means the projection window has fewer than two
// years, so the margin interpolation step is undefined.
var ErrDegenerateHoldingPeriod = errors.New("holding period too short: need at least two projection years")

// depreciationCapexShare fixes depreciation at 80% of capex spend. A
// simplifying convention of the model, not a tunable assumption.
const depreciationCapexShare = 0.8

const daysPerYear = 365

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run projects the three statements and return metrics for one assumption
// set. Pure: no I/O, no shared state; identical inputs produce identical
// results. Either a fully populated Result comes back or an error.
func (e *Engine) Run(as *model.AssumptionSet) (*Result, error) {
	if as == nil {
		return nil, fmt.Errorf("assumption set is nil")
	}
	if len(as.Years) < 2 {
		return nil, ErrDegenerateHoldingPeriod
	}

	income := buildIncome(as)
	cash := buildCashFlow(as, income)
	balance := buildBalance(as, income, cash)

	res := &Result{
		Company:  as.Company,
		Years:    append([]int(nil), as.Years...),
		Income:   income,
		CashFlow: cash,
		Balance:  balance,
	}
	if err := solveReturns(as, res); err != nil {
		return nil, err
	}
	return res, nil
}

func buildIncome(as *model.AssumptionSet) []IncomeYear {
	n := as.NumYears()
	marginStep := (as.EBITDAMarginExit - as.EBITDAMarginEntry) / float64(n-1)
	installment := as.AnnualInstallment()

	rows := make([]IncomeYear, 0, n)
	remaining := as.DebtAmount
	for t, year := range as.Years {
		revenue := as.RevenueEntry * math.Pow(1+as.RevenueGrowth, float64(t))
		margin := as.EBITDAMarginEntry + marginStep*float64(t)
		ebitda := revenue * margin
		dep := revenue * as.CapexPercent * depreciationCapexShare
		ebit := ebitda - dep

		// Interest is charged on the start-of-year balance after that
		// year's scheduled paydown. Year 0 carries the full debt amount.
		// This sidesteps the circular dependency between interest and cash
		// available for paydown; consumers rely on this exact convention.
		if t > 0 {
			remaining = math.Max(0, remaining-installment)
		}
		interest := remaining * as.InterestRate

		ebt := ebit - interest
		tax := math.Max(0, ebt*as.TaxRate)

		rows = append(rows, IncomeYear{
			Year: year,

			Revenue:      revenue,
			EBITDAMargin: margin,
			EBITDA:       ebitda,
			Depreciation: dep,
			EBIT:         ebit,

			InterestExpense: interest,
			EBT:             ebt,
			Tax:             tax,
			NetIncome:       ebt - tax,
		})
	}
	return rows
}

func buildCashFlow(as *model.AssumptionSet, income []IncomeYear) []CashFlowYear {
	n := len(income)
	installment := as.AnnualInstallment()

	rows := make([]CashFlowYear, 0, n)
	// Principal is tracked separately from the income-statement schedule;
	// the two threads may differ only in the year the debt is exhausted.
	remaining := as.DebtAmount
	cum := 0.0
	for t := 0; t < n; t++ {
		inc := income[t]

		// Working-capital delta from the year-over-year revenue change.
		// More payables is a cash inflow; more receivables and inventory
		// are outflows. Year 0 has no prior year, so no delta.
		wc := 0.0
		if t > 0 {
			diff := inc.Revenue - income[t-1].Revenue
			ar := diff * as.DSO / daysPerYear
			inv := diff * as.DSI / daysPerYear
			ap := diff * as.DPO / daysPerYear
			wc = ap - (ar + inv)
		}

		capex := -inc.Revenue * as.CapexPercent

		// No principal payment in the acquisition year; afterwards the
		// payment is clamped to what is still outstanding.
		amort := 0.0
		if t > 0 {
			payment := math.Min(installment, remaining)
			amort = -payment
			remaining -= payment
		}

		interestPaid := -inc.InterestExpense
		fcf := inc.NetIncome + inc.Depreciation + wc + capex
		lfcf := fcf + amort + interestPaid
		cum += lfcf

		rows = append(rows, CashFlowYear{
			Year: inc.Year,

			NetIncome:            inc.NetIncome,
			Depreciation:         inc.Depreciation,
			WorkingCapitalChange: wc,
			Capex:                capex,

			DebtAmortization: amort,
			InterestPaid:     interestPaid,

			FCF:            fcf,
			LFCF:           lfcf,
			CumulativeLFCF: cum,
		})
	}
	return rows
}

func buildBalance(as *model.AssumptionSet, income []IncomeYear, cash []CashFlowYear) []BalanceYear {
	n := len(income)

	rows := make([]BalanceYear, 0, n)
	debt := as.DebtAmount
	for t := 0; t < n; t++ {
		if t > 0 {
			// DebtAmortization is non-positive, so adding it pays down.
			debt += cash[t].DebtAmortization
		}
		equity := as.EquityAmount + cash[t].CumulativeLFCF
		ev := debt + equity

		rows = append(rows, BalanceYear{
			Year: income[t].Year,

			DebtBalance:     debt,
			EquityBalance:   equity,
			EnterpriseValue: ev,
			ImpliedEVEBITDA: ev / income[t].EBITDA,
		})
	}
	return rows
}

// solveReturns builds the investor cash-flow vector and derives the return
// metrics. The vector holds the equity outflow at entry, the levered free
// cash flow of each year strictly between entry and exit, and the exit
// equity value (exit EBITDA at the entry multiple, less remaining debt).
func solveReturns(as *model.AssumptionSet, res *Result) error {
	n := len(res.Years)

	flows := make([]float64, 0, n)
	flows = append(flows, -as.EquityAmount)
	for t := 1; t < n-1; t++ {
		flows = append(flows, res.CashFlow[t].LFCF)
	}
	exitEquity := res.ExitEBITDA()*as.PurchasePriceMultiple - res.ExitDebt()
	flows = append(flows, exitEquity)

	irr, err := returns.IRR(flows)
	if err != nil {
		return fmt.Errorf("solve rate of return: %w", err)
	}

	distributions := 0.0
	for _, cf := range flows[1:] {
		if cf > 0 {
			distributions += cf
		}
	}

	res.CashFlows = flows
	res.Returns = ReturnMetrics{
		IRR:  irr,
		MOIC: exitEquity / as.EquityAmount,
		DPI:  distributions / as.EquityAmount,
		TVPI: exitEquity / as.EquityAmount,

		ExitEquityValue: exitEquity,
	}
	return nil
}
