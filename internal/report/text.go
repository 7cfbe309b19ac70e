package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"lbo-model/internal/model"
	"lbo-model/internal/projection"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders an amount in millions of dollars with thousands
// grouping, e.g. "$1,250.00M".
func FormatMoney(amount float64) string {
	return moneyPrinter.Sprintf("$%.2fM", amount)
}

// WriteSummary renders the headline deal summary: entry capitalization,
// exit metrics and the return profile.
func WriteSummary(w io.Writer, as *model.AssumptionSet, res *projection.Result) error {
	var b strings.Builder

	fmt.Fprintf(&b, "LBO Model Summary for %s\n", as.Company)
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "Entry Year: %d\n", as.EntryYear)
	fmt.Fprintf(&b, "Exit Year: %d\n", as.ExitYear)
	fmt.Fprintf(&b, "Holding Period: %d years\n", as.HoldingPeriod)

	fmt.Fprintf(&b, "\nEntry EBITDA: %s\n", FormatMoney(as.EntryEBITDA))
	fmt.Fprintf(&b, "Purchase Price (at %gx EBITDA): %s\n", as.PurchasePriceMultiple, FormatMoney(as.PurchasePrice))
	b.WriteString("Financing Structure:\n")
	fmt.Fprintf(&b, "  - Debt: %s (%.1f%%)\n", FormatMoney(as.DebtAmount), as.DebtPercentage*100)
	fmt.Fprintf(&b, "  - Equity: %s (%.1f%%)\n", FormatMoney(as.EquityAmount), (1-as.DebtPercentage)*100)

	b.WriteString("\nExit Metrics:\n")
	fmt.Fprintf(&b, "Exit EBITDA: %s\n", FormatMoney(res.ExitEBITDA()))
	exitMargin := res.Income[len(res.Income)-1].EBITDAMargin
	fmt.Fprintf(&b, "Exit EBITDA Margin: %.1f%%\n", exitMargin*100)

	b.WriteString("\nReturns:\n")
	fmt.Fprintf(&b, "IRR: %.1f%%\n", res.Returns.IRR)
	fmt.Fprintf(&b, "MOIC: %.2fx\n", res.Returns.MOIC)
	fmt.Fprintf(&b, "DPI: %.2fx\n", res.Returns.DPI)
	fmt.Fprintf(&b, "TVPI: %.2fx\n", res.Returns.TVPI)

	_, err := io.WriteString(w, b.String())
	return err
}
