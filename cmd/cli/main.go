package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"lbo-model/internal/config"
	"lbo-model/internal/model"
	"lbo-model/internal/projection"
	"lbo-model/internal/report"
	"lbo-model/internal/sensitivity"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "run":
		cmdRun(os.Args[2:])
	case "sensitivity":
		cmdSensitivity(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli run --config examples/config.yaml --statements")
	fmt.Println("  cli run --deal examples/deals/acme_corp.yaml --csv-dir results --pdf results/report.pdf")
	fmt.Println("  cli sensitivity --deal examples/deals/acme_corp.yaml")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - run solves the model and prints the summary (add --statements for the projections)")
	fmt.Println("  - sensitivity sweeps exit multiple, revenue growth and exit margin around the base deal")
	fmt.Println("  - deal fields can be overridden per run, e.g. --growth 12 --multiple 9.5")
}

// dealFlags holds the shared deal-selection and override flags. Overrides are
// applied only when the flag was set on the command line, so an explicit 0
// wins over the file value.
type dealFlags struct {
	config string
	deal   string

	company    string
	growth     float64
	marginExit float64
	multiple   float64
	debtPct    float64
	rate       float64
}

func addDealFlags(fs *flag.FlagSet) *dealFlags {
	df := &dealFlags{}
	fs.StringVar(&df.config, "config", "", "Path to YAML config")
	fs.StringVar(&df.deal, "deal", "", "Path to deal YAML (merged over the config deal)")
	fs.StringVar(&df.company, "company", "", "Override: company name")
	fs.Float64Var(&df.growth, "growth", 0, "Override: annual revenue growth (percent)")
	fs.Float64Var(&df.marginExit, "margin-exit", 0, "Override: exit-year EBITDA margin (percent)")
	fs.Float64Var(&df.multiple, "multiple", 0, "Override: purchase price multiple (x EBITDA)")
	fs.Float64Var(&df.debtPct, "debt-pct", 0, "Override: debt share of purchase price (percent)")
	fs.Float64Var(&df.rate, "rate", 0, "Override: interest rate (percent)")
	return df
}

func (df *dealFlags) resolve(fs *flag.FlagSet) (config.DealConfig, *config.Config) {
	if df.config == "" && df.deal == "" {
		fmt.Println("either --config or --deal is required")
		os.Exit(2)
	}

	var cfg *config.Config
	var deal config.DealConfig

	if df.config != "" {
		loaded, err := config.Load(df.config)
		if err != nil {
			panic(err)
		}
		cfg = loaded
		deal = cfg.Deal
	}
	if df.deal != "" {
		loaded, err := config.LoadDealFile(df.deal)
		if err != nil {
			panic(err)
		}
		deal = config.MergeDeal(deal, loaded)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "company":
			deal.Company = df.company
		case "growth":
			deal.RevenueGrowth = df.growth
		case "margin-exit":
			deal.EBITDAMarginExit = df.marginExit
		case "multiple":
			deal.PurchasePriceMultiple = df.multiple
		case "debt-pct":
			deal.DebtPercentage = df.debtPct
		case "rate":
			deal.InterestRate = df.rate
		}
	})

	return deal, cfg
}

func cmdRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	df := addDealFlags(fs)
	csvDir := fs.String("csv-dir", "", "Optional: write income/cash_flow/balance CSVs to this directory")
	pdfPath := fs.String("pdf", "", "Optional: write a PDF report to this path")
	statements := fs.Bool("statements", false, "Print full statement projections")
	_ = fs.Parse(args)

	deal, cfg := df.resolve(fs)

	// Config output block supplies defaults; flags win
	if cfg != nil {
		if *csvDir == "" {
			*csvDir = cfg.Output.CSVDir
		}
		if *pdfPath == "" {
			*pdfPath = cfg.Output.PDF
		}
		if !*statements {
			*statements = cfg.Output.Statements
		}
	}

	as, err := model.NewAssumptionSet(deal.ToAssumptions())
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
	if *statements {
		if err := report.WriteStatements(os.Stdout, res); err != nil {
			panic(err)
		}
	}

	if *csvDir != "" {
		if err := projection.WriteCSVDir(*csvDir, res); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote statement CSVs to %s\n", *csvDir)
	}
	if *pdfPath != "" {
		writePDF(*pdfPath, as, res, nil)
	}
}

func cmdSensitivity(args []string) {
	fs := flag.NewFlagSet("sensitivity", flag.ExitOnError)
	df := addDealFlags(fs)
	pdfPath := fs.String("pdf", "", "Optional: write a PDF report (with sweep tables) to this path")
	_ = fs.Parse(args)

	deal, cfg := df.resolve(fs)

	sweep := sensitivity.Config{}
	if cfg != nil {
		sweep = cfg.Sensitivity.ToSweep()
	}

	as, err := model.NewAssumptionSet(deal.ToAssumptions())
	if err != nil {
		panic(err)
	}

	engine := projection.New()
	base, err := engine.Run(as)
	if err != nil {
		panic(err)
	}

	analysis, err := sensitivity.Run(context.Background(), as, base, sweep)
	if err != nil {
		panic(err)
	}

	if err := report.WriteSummary(os.Stdout, as, base); err != nil {
		panic(err)
	}
	if err := report.WriteSensitivity(os.Stdout, analysis); err != nil {
		panic(err)
	}

	if *pdfPath != "" {
		writePDF(*pdfPath, as, base, analysis)
	}
}

func writePDF(path string, as *model.AssumptionSet, res *projection.Result, analysis *sensitivity.Analysis) {
	pdf, err := report.GeneratePDFReport(as, res, analysis)
	if err != nil {
		panic(err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			panic(err)
		}
	}
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote PDF report to %s\n", path)
}
