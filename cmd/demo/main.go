package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"lbo-model/internal/model"
	"lbo-model/internal/projection"
	"lbo-model/internal/report"
	"lbo-model/internal/sensitivity"
)

// Demo:
// - Build the Acme Corp example deal (2023 entry, 2028 exit)
// - Project the statements and solve equity returns
// - Print the summary, the three statements and the default sensitivity sweep
func main() {
	company := flag.String("company", "Acme Corp", "Company name")
	growth := flag.Float64("growth", 8, "Annual revenue growth (percent)")
	multiple := flag.Float64("multiple", 10, "Purchase price multiple (x EBITDA)")
	debtPct := flag.Float64("debt-pct", 60, "Debt share of purchase price (percent)")
	rate := flag.Float64("rate", 8, "Interest rate (percent)")
	csvDir := flag.String("csv-dir", "", "Optional directory to write statement CSVs")
	flag.Parse()

	as, err := model.NewAssumptionSet(model.Assumptions{
		Company:               *company,
		EntryYear:             2023,
		ExitYear:              2028,
		RevenueEntry:          500,
		EBITDAMarginEntry:     25,
		RevenueGrowth:         *growth,
		EBITDAMarginExit:      30,
		CapexPercent:          4,
		DSO:                   45,
		DPO:                   60,
		DSI:                   30,
		PurchasePriceMultiple: *multiple,
		DebtPercentage:        *debtPct,
		InterestRate:          *rate,
		AmortizationYears:     5,
	})
	if err != nil {
		panic(err)
	}

	engine := projection.New()
	res, err := engine.Run(as)
	if err != nil {
		panic(err)
	}

	if err := report.WriteSummary(os.Stdout, as, res); err != nil {
		panic(err)
	}
	if err := report.WriteStatements(os.Stdout, res); err != nil {
		panic(err)
	}

	// Default grids: five unit steps centered on each base assumption
	analysis, err := sensitivity.Run(context.Background(), as, res, sensitivity.Config{})
	if err != nil {
		panic(err)
	}
	if err := report.WriteSensitivity(os.Stdout, analysis); err != nil {
		panic(err)
	}

	if *csvDir != "" {
		if err := projection.WriteCSVDir(*csvDir, res); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote statement CSVs to %s\n", *csvDir)
	}
}
