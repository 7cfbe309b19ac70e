package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"lbo-model/internal/projection"
	"lbo-model/internal/sensitivity"
)

// WriteStatements renders the three projected statements as aligned text
// tables, one row per projection year. Margins print as fractions; every
// other figure is in millions.
func WriteStatements(w io.Writer, res *projection.Result) error {
	if _, err := fmt.Fprintln(w, "\nIncome Statement Projections:"); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Year\tRevenue\tMargin\tEBITDA\tD&A\tEBIT\tInterest\tEBT\tTax\tNet Income\t")
	for _, row := range res.Income {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t\n",
			row.Year, row.Revenue, row.EBITDAMargin, row.EBITDA, row.Depreciation,
			row.EBIT, row.InterestExpense, row.EBT, row.Tax, row.NetIncome)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "\nCash Flow Projections:"); err != nil {
		return err
	}
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Year\tNet Income\tD&A\tWC Change\tCapex\tFCF\tAmort\tInterest\tLFCF\tCum LFCF\t")
	for _, row := range res.CashFlow {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t\n",
			row.Year, row.NetIncome, row.Depreciation, row.WorkingCapitalChange, row.Capex,
			row.FCF, row.DebtAmortization, row.InterestPaid, row.LFCF, row.CumulativeLFCF)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "\nBalance Sheet Projections:"); err != nil {
		return err
	}
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Year\tDebt\tEquity\tEV\tEV/EBITDA\t")
	for _, row := range res.Balance {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t%.2f\t\n",
			row.Year, row.DebtBalance, row.EquityBalance, row.EnterpriseValue, row.ImpliedEVEBITDA)
	}
	return tw.Flush()
}

// WriteSensitivity renders the three sweep tables.
func WriteSensitivity(w io.Writer, analysis *sensitivity.Analysis) error {
	if _, err := fmt.Fprintln(w, "\nExit Multiple Sensitivity:"); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Exit Multiple\tIRR\tMOIC\t")
	for _, p := range analysis.ExitMultiple {
		fmt.Fprintf(tw, "%.1fx\t%.1f%%\t%.2fx\t\n", p.Value, p.IRR, p.MOIC)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "\nRevenue Growth Sensitivity:"); err != nil {
		return err
	}
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Growth Rate\tIRR\tMOIC\t")
	for _, p := range analysis.RevenueGrowth {
		fmt.Fprintf(tw, "%.1f%%\t%.1f%%\t%.2fx\t\n", p.Value, p.IRR, p.MOIC)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "\nEBITDA Margin Sensitivity:"); err != nil {
		return err
	}
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Exit Margin\tIRR\tMOIC\t")
	for _, p := range analysis.ExitMargin {
		fmt.Fprintf(tw, "%.1f%%\t%.1f%%\t%.2fx\t\n", p.Value, p.IRR, p.MOIC)
	}
	return tw.Flush()
}
