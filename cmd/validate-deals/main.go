package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lbo-model/internal/config"
	"lbo-model/internal/data"
	"lbo-model/internal/model"
	"lbo-model/internal/projection"
)

func main() {
	var (
		dir   = flag.String("dir", "", "Deal directory (default: DEAL_DIR or ./examples/deals)")
		solve = flag.Bool("solve", true, "Also run the projection and returns solver per deal")
	)
	flag.Parse()

	if *dir == "" {
		*dir = data.DefaultDealDir()
	}

	entries, err := os.ReadDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read deal dir %s: %v\n", *dir, err)
		os.Exit(1)
	}

	fmt.Printf("Validating deals in %s\n", *dir)

	var checked, failed int
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		checked++

		info, err := validateDeal(filepath.Join(*dir, name), *solve)
		if err != nil {
			failed++
			fmt.Printf("  FAIL %-28s %v\n", name, err)
			continue
		}
		fmt.Printf("  PASS %-28s %s\n", name, info)
	}

	if checked == 0 {
		fmt.Println("No deal files found")
		return
	}

	fmt.Printf("Checked %d deal files, %d failed\n", checked, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

// validateDeal parses and validates one deal file. With solve set it also
// runs the projection so solver failures (no IRR root, divergence) surface
// here instead of at serving time.
func validateDeal(path string, solve bool) (string, error) {
	deal, err := config.LoadDealFile(path)
	if err != nil {
		return "", err
	}
	if deal.Company == "" {
		return "", fmt.Errorf("company is required")
	}

	as, err := model.NewAssumptionSet(deal.ToAssumptions())
	if err != nil {
		return deal.Company, err
	}
	if !solve {
		return deal.Company, nil
	}

	res, err := projection.New().Run(as)
	if err != nil {
		return deal.Company, err
	}
	return fmt.Sprintf("%s (IRR %.1f%%, MOIC %.2fx)", deal.Company, res.Returns.IRR, res.Returns.MOIC), nil
}
