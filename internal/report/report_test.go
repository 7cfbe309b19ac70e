package report

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"lbo-model/internal/model"
	"lbo-model/internal/projection"
	"lbo-model/internal/sensitivity"
)

func acmeModel(t *testing.T) (*model.AssumptionSet, *projection.Result) {
	t.Helper()
	as, err := model.NewAssumptionSet(model.Assumptions{
		Company:   "Acme Corp",
		EntryYear: 2023,
		ExitYear:  2028,

		RevenueEntry:      500,
		EBITDAMarginEntry: 25,
		RevenueGrowth:     8,
		EBITDAMarginExit:  30,

		CapexPercent: 4,
		DSO:          45,
		DPO:          60,
		DSI:          30,

		PurchasePriceMultiple: 10,
		DebtPercentage:        60,
		InterestRate:          8,
		AmortizationYears:     5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := projection.New().Run(as)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return as, res
}

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{1250, "$1,250.00M"},
		{125, "$125.00M"},
		{0.5, "$0.50M"},
		{-25.29, "$-25.29M"},
		{1234567.89, "$1,234,567.89M"},
	}
	for _, tc := range cases {
		if got := FormatMoney(tc.amount); got != tc.want {
			t.Errorf("FormatMoney(%v): expected %q, got %q", tc.amount, tc.want, got)
		}
	}
}

func TestWriteSummary(t *testing.T) {
	as, res := acmeModel(t)

	var buf bytes.Buffer
	if err := WriteSummary(&buf, as, res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"LBO Model Summary for Acme Corp",
		"Entry Year: 2023",
		"Exit Year: 2028",
		"Holding Period: 5 years",
		"Entry EBITDA: $125.00M",
		"Purchase Price (at 10x EBITDA): $1,250.00M",
		"  - Debt: $750.00M (60.0%)",
		"  - Equity: $500.00M (40.0%)",
		"Exit EBITDA: $220.40M",
		"Exit EBITDA Margin: 30.0%",
		"MOIC: 4.41x",
		"DPI: 4.41x",
		"TVPI: 4.41x",
		"IRR: ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestWriteStatements(t *testing.T) {
	_, res := acmeModel(t)

	var buf bytes.Buffer
	if err := WriteStatements(&buf, res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Income Statement Projections:",
		"Cash Flow Projections:",
		"Balance Sheet Projections:",
		"Net Income",
		"EV/EBITDA",
		"2023",
		"2028",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("statements missing %q", want)
		}
	}
}

func TestWriteSensitivity(t *testing.T) {
	as, res := acmeModel(t)
	analysis, err := sensitivity.Run(context.Background(), as, res, sensitivity.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteSensitivity(&buf, analysis); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Exit Multiple Sensitivity:",
		"Revenue Growth Sensitivity:",
		"EBITDA Margin Sensitivity:",
		"10.0x",
		"8.0%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("sensitivity output missing %q:\n%s", want, out)
		}
	}
}

func TestGeneratePDFReport(t *testing.T) {
	as, res := acmeModel(t)
	analysis, err := sensitivity.Run(context.Background(), as, res, sensitivity.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pdf, err := GeneratePDFReport(as, res, analysis)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Errorf("expected a PDF header, got %q", pdf[:min(8, len(pdf))])
	}
	if len(pdf) < 1000 {
		t.Errorf("suspiciously small PDF: %d bytes", len(pdf))
	}
}

func TestGeneratePDFReportWithoutSensitivity(t *testing.T) {
	as, res := acmeModel(t)

	pdf, err := GeneratePDFReport(as, res, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Error("expected a PDF header")
	}
}

func TestGeneratePDFReportNilModel(t *testing.T) {
	if _, err := GeneratePDFReport(nil, nil, nil); err == nil {
		t.Fatal("expected error for nil inputs")
	}
}
