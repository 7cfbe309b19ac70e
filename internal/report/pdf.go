package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"lbo-model/internal/model"
	"lbo-model/internal/projection"
	"lbo-model/internal/sensitivity"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// pdfReport renders one solved deal as a PDF document.
type pdfReport struct {
	pdf      *fpdf.Fpdf
	as       *model.AssumptionSet
	res      *projection.Result
	analysis *sensitivity.Analysis
}

// GeneratePDFReport builds the deal report: a title page with the entry
// capitalization and return profile, the three projected statements, and the
// sensitivity tables when an analysis is supplied.
func GeneratePDFReport(as *model.AssumptionSet, res *projection.Result, analysis *sensitivity.Analysis) ([]byte, error) {
	if as == nil || res == nil {
		return nil, fmt.Errorf("pdf report requires a solved model")
	}

	r := &pdfReport{
		pdf:      fpdf.New("P", "mm", "A4", ""),
		as:       as,
		res:      res,
		analysis: analysis,
	}

	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)

	r.addTitlePage()
	r.addStatements()
	if analysis != nil {
		r.addSensitivity()
	}

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *pdfReport) addTitlePage() {
	r.pdf.AddPage()

	r.pdf.SetFont("Arial", "B", 26)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.Ln(40)
	r.pdf.CellFormat(contentWidth, 14, "Leveraged Buyout Model", "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "", 14)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.Ln(6)
	r.pdf.CellFormat(contentWidth, 10, r.as.Company, "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "I", 11)
	r.pdf.Ln(10)
	r.pdf.CellFormat(contentWidth, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2 January 2006")), "", 1, "C", false, 0, "")

	// Transaction box
	r.pdf.Ln(15)
	r.pdf.SetFillColor(245, 247, 250)
	r.pdf.SetDrawColor(200, 200, 200)

	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, "Transaction", "1", 1, "C", true, 0, "")

	r.pdf.SetFont("Arial", "", 11)
	r.pdf.SetTextColor(50, 50, 50)
	lines := []string{
		fmt.Sprintf("Holding Period: %d to %d (%d years)", r.as.EntryYear, r.as.ExitYear, r.as.HoldingPeriod),
		fmt.Sprintf("Entry EBITDA: %s at %gx", FormatMoney(r.as.EntryEBITDA), r.as.PurchasePriceMultiple),
		fmt.Sprintf("Purchase Price: %s", FormatMoney(r.as.PurchasePrice)),
		fmt.Sprintf("Debt: %s (%.1f%%)   Equity: %s (%.1f%%)",
			FormatMoney(r.as.DebtAmount), r.as.DebtPercentage*100,
			FormatMoney(r.as.EquityAmount), (1-r.as.DebtPercentage)*100),
	}
	for i, line := range lines {
		border := "LR"
		if i == len(lines)-1 {
			border = "LRB"
		}
		r.pdf.CellFormat(contentWidth, 7, line, border, 1, "C", true, 0, "")
	}

	// Returns box
	r.pdf.Ln(10)
	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, "Returns", "1", 1, "C", true, 0, "")

	r.pdf.SetFont("Arial", "", 11)
	r.pdf.SetTextColor(50, 50, 50)
	ret := r.res.Returns
	retLines := []string{
		fmt.Sprintf("IRR: %.1f%%", ret.IRR),
		fmt.Sprintf("MOIC: %.2fx   DPI: %.2fx   TVPI: %.2fx", ret.MOIC, ret.DPI, ret.TVPI),
		fmt.Sprintf("Exit EBITDA: %s   Exit Equity: %s", FormatMoney(r.res.ExitEBITDA()), FormatMoney(ret.ExitEquityValue)),
	}
	for i, line := range retLines {
		border := "LR"
		if i == len(retLines)-1 {
			border = "LRB"
		}
		r.pdf.CellFormat(contentWidth, 7, line, border, 1, "C", true, 0, "")
	}
}

func (r *pdfReport) addStatements() {
	r.pdf.AddPage()
	r.drawSectionHeader(projection.StatementIncome.Title())

	incomeWidths := []float64{14, 19, 17, 19, 17, 19, 18, 19, 18, 20}
	r.drawTableHeader([]string{"Year", "Revenue", "Margin", "EBITDA", "D&A", "EBIT", "Interest", "EBT", "Tax", "Net Inc"}, incomeWidths)
	for i, row := range r.res.Income {
		r.drawTableRow([]string{
			fmt.Sprintf("%d", row.Year),
			fmt.Sprintf("%.1f", row.Revenue),
			fmt.Sprintf("%.1f%%", row.EBITDAMargin*100),
			fmt.Sprintf("%.1f", row.EBITDA),
			fmt.Sprintf("%.1f", row.Depreciation),
			fmt.Sprintf("%.1f", row.EBIT),
			fmt.Sprintf("%.1f", row.InterestExpense),
			fmt.Sprintf("%.1f", row.EBT),
			fmt.Sprintf("%.1f", row.Tax),
			fmt.Sprintf("%.1f", row.NetIncome),
		}, incomeWidths, i == len(r.res.Income)-1)
	}

	r.pdf.Ln(8)
	r.drawSectionHeader(projection.StatementCashFlow.Title())

	cashWidths := []float64{14, 19, 17, 19, 17, 19, 18, 19, 18, 20}
	r.drawTableHeader([]string{"Year", "Net Inc", "D&A", "WC Chg", "Capex", "FCF", "Amort", "Interest", "LFCF", "Cum LFCF"}, cashWidths)
	for i, row := range r.res.CashFlow {
		r.drawTableRow([]string{
			fmt.Sprintf("%d", row.Year),
			fmt.Sprintf("%.1f", row.NetIncome),
			fmt.Sprintf("%.1f", row.Depreciation),
			fmt.Sprintf("%.1f", row.WorkingCapitalChange),
			fmt.Sprintf("%.1f", row.Capex),
			fmt.Sprintf("%.1f", row.FCF),
			fmt.Sprintf("%.1f", row.DebtAmortization),
			fmt.Sprintf("%.1f", row.InterestPaid),
			fmt.Sprintf("%.1f", row.LFCF),
			fmt.Sprintf("%.1f", row.CumulativeLFCF),
		}, cashWidths, i == len(r.res.CashFlow)-1)
	}

	r.pdf.Ln(8)
	r.drawSectionHeader(projection.StatementBalance.Title())

	balanceWidths := []float64{20, 40, 40, 40, 40}
	r.drawTableHeader([]string{"Year", "Debt", "Equity", "EV", "EV/EBITDA"}, balanceWidths)
	for i, row := range r.res.Balance {
		r.drawTableRow([]string{
			fmt.Sprintf("%d", row.Year),
			FormatMoney(row.DebtBalance),
			FormatMoney(row.EquityBalance),
			FormatMoney(row.EnterpriseValue),
			fmt.Sprintf("%.2fx", row.ImpliedEVEBITDA),
		}, balanceWidths, i == len(r.res.Balance)-1)
	}
}

func (r *pdfReport) addSensitivity() {
	r.pdf.AddPage()
	r.drawSectionHeader("Sensitivity Analysis")

	widths := []float64{60, 60, 60}

	r.drawSubHeader("Exit Multiple")
	r.drawTableHeader([]string{"Exit Multiple", "IRR", "MOIC"}, widths)
	for i, p := range r.analysis.ExitMultiple {
		r.drawTableRow([]string{
			fmt.Sprintf("%.1fx", p.Value),
			fmt.Sprintf("%.1f%%", p.IRR),
			fmt.Sprintf("%.2fx", p.MOIC),
		}, widths, i == len(r.analysis.ExitMultiple)-1)
	}

	r.pdf.Ln(6)
	r.drawSubHeader("Revenue Growth")
	r.drawTableHeader([]string{"Growth Rate", "IRR", "MOIC"}, widths)
	for i, p := range r.analysis.RevenueGrowth {
		r.drawTableRow([]string{
			fmt.Sprintf("%.1f%%", p.Value),
			fmt.Sprintf("%.1f%%", p.IRR),
			fmt.Sprintf("%.2fx", p.MOIC),
		}, widths, i == len(r.analysis.RevenueGrowth)-1)
	}

	r.pdf.Ln(6)
	r.drawSubHeader("Exit EBITDA Margin")
	r.drawTableHeader([]string{"Exit Margin", "IRR", "MOIC"}, widths)
	for i, p := range r.analysis.ExitMargin {
		r.drawTableRow([]string{
			fmt.Sprintf("%.1f%%", p.Value),
			fmt.Sprintf("%.1f%%", p.IRR),
			fmt.Sprintf("%.2fx", p.MOIC),
		}, widths, i == len(r.analysis.ExitMargin)-1)
	}
}

func (r *pdfReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 16)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 10, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(5)
}

func (r *pdfReport) drawSubHeader(title string) {
	r.pdf.SetFont("Arial", "B", 11)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 7, title, "", 1, "L", false, 0, "")
}

func (r *pdfReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 8)

	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, header, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) drawTableRow(cells []string, widths []float64, isLast bool) {
	r.pdf.SetFillColor(250, 250, 250)
	r.pdf.SetTextColor(50, 50, 50)

	if isLast {
		r.pdf.SetFont("Arial", "B", 8)
		r.pdf.SetFillColor(240, 240, 240)
	} else {
		r.pdf.SetFont("Arial", "", 8)
	}

	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, cell, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}
