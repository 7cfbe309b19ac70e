package projection

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
)

// WriteCSVDir writes one CSV per statement into dir, creating it if needed.
func WriteCSVDir(dir string, res *Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := WriteIncomeCSV(filepath.Join(dir, StatementIncome.FileName()), res.Income); err != nil {
		return err
	}
	if err := WriteCashFlowCSV(filepath.Join(dir, StatementCashFlow.FileName()), res.CashFlow); err != nil {
		return err
	}
	return WriteBalanceCSV(filepath.Join(dir, StatementBalance.FileName()), res.Balance)
}

func WriteIncomeCSV(path string, rows []IncomeYear) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"year",
		"revenue",
		"ebitda_margin",
		"ebitda",
		"depreciation",
		"ebit",
		"interest_expense",
		"ebt",
		"tax",
		"net_income",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.Year),
			fmtFloat(r.Revenue),
			fmtFloat(r.EBITDAMargin),
			fmtFloat(r.EBITDA),
			fmtFloat(r.Depreciation),
			fmtFloat(r.EBIT),
			fmtFloat(r.InterestExpense),
			fmtFloat(r.EBT),
			fmtFloat(r.Tax),
			fmtFloat(r.NetIncome),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func WriteCashFlowCSV(path string, rows []CashFlowYear) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"year",
		"net_income",
		"depreciation",
		"working_capital_change",
		"capex",
		"debt_amortization",
		"interest_paid",
		"fcf",
		"lfcf",
		"cumulative_lfcf",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.Year),
			fmtFloat(r.NetIncome),
			fmtFloat(r.Depreciation),
			fmtFloat(r.WorkingCapitalChange),
			fmtFloat(r.Capex),
			fmtFloat(r.DebtAmortization),
			fmtFloat(r.InterestPaid),
			fmtFloat(r.FCF),
			fmtFloat(r.LFCF),
			fmtFloat(r.CumulativeLFCF),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func WriteBalanceCSV(path string, rows []BalanceYear) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"year",
		"debt_balance",
		"equity_balance",
		"enterprise_value",
		"implied_ev_ebitda",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.Year),
			fmtFloat(r.DebtBalance),
			fmtFloat(r.EquityBalance),
			fmtFloat(r.EnterpriseValue),
			fmtFloat(r.ImpliedEVEBITDA),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
