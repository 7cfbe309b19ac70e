package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"lbo-model/internal/api/models"
	"lbo-model/internal/config"
	"lbo-model/internal/data"
	"lbo-model/internal/model"
	"lbo-model/internal/projection"
	"lbo-model/internal/report"
	"lbo-model/internal/returns"
	"lbo-model/internal/sensitivity"

	"github.com/gin-gonic/gin"
)

// ModelHandler handles LBO model requests
type ModelHandler struct {
	runs *data.RunStore
}

// NewModelHandler creates a new model handler
func NewModelHandler(runs *data.RunStore) *ModelHandler {
	return &ModelHandler{runs: runs}
}

// RunModel handles POST /api/v1/model
func (h *ModelHandler) RunModel(c *gin.Context) {
	var req models.ModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	// Resolve deal from file and/or inline assumptions
	deal := buildDeal(req.DealFile, req.Deal)
	if deal.Company == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "deal company is required (set deal.company or a valid deal_file)",
			},
		})
		return
	}

	// Validate and normalize assumptions
	as, err := model.NewAssumptionSet(deal.ToAssumptions())
	if err != nil {
		var iaErr *model.InvalidAssumptionError
		detail := models.ErrorDetail{
			Code:    "INVALID_ASSUMPTION",
			Message: err.Error(),
		}
		if errors.As(err, &iaErr) {
			detail.Details = map[string]interface{}{
				"field": iaErr.Field,
			}
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: detail})
		return
	}

	// Run projection and solve returns
	engine := projection.New()
	result, err := engine.Run(as)
	if err != nil {
		status := http.StatusInternalServerError
		code := "INTERNAL_ERROR"
		if errors.Is(err, projection.ErrDegenerateHoldingPeriod) {
			status = http.StatusBadRequest
			code = "DEGENERATE_HOLDING_PERIOD"
		} else if errors.Is(err, returns.ErrNoRoot) {
			status = http.StatusUnprocessableEntity
			code = "NO_ROOT"
		} else if errors.Is(err, returns.ErrNonConvergent) {
			status = http.StatusUnprocessableEntity
			code = "NON_CONVERGENT"
		}
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    code,
				Message: err.Error(),
			},
		})
		return
	}

	// Store for later retrieval
	id := h.runs.Put(&data.StoredRun{
		Input:  as.Input,
		Result: result,
	})

	// Build response
	response := models.ModelResponse{
		ID:      id,
		Status:  "completed",
		Summary: buildModelSummary(as, result),
	}
	if req.Options.IncludeStatements {
		response.Statements = convertStatements(result)
	}
	c.JSON(http.StatusOK, response)
}

// GetRun handles GET /api/v1/runs/:id
func (h *ModelHandler) GetRun(c *gin.Context) {
	id := c.Param("id")
	run, ok := h.runs.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "RUN_NOT_FOUND",
				Message: fmt.Sprintf("run %q not found or expired", id),
			},
		})
		return
	}

	as, err := model.NewAssumptionSet(run.Input)
	if err != nil {
		// Stored inputs were validated on the way in, so this is unexpected.
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	response := models.ModelResponse{
		ID:         run.ID,
		Status:     "completed",
		Summary:    buildModelSummary(as, run.Result),
		Statements: convertStatements(run.Result),
	}
	if run.Sensitivity != nil {
		response.Sensitivity = convertSweep(run.Sensitivity)
	}
	c.JSON(http.StatusOK, response)
}

// GetRunPDF handles GET /api/v1/runs/:id/pdf
func (h *ModelHandler) GetRunPDF(c *gin.Context) {
	id := c.Param("id")
	run, ok := h.runs.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "RUN_NOT_FOUND",
				Message: fmt.Sprintf("run %q not found or expired", id),
			},
		})
		return
	}

	as, err := model.NewAssumptionSet(run.Input)
	if err == nil {
		var pdf []byte
		pdf, err = report.GeneratePDFReport(as, run.Result, run.Sensitivity)
		if err == nil {
			c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=lbo_model_%s.pdf", run.ID))
			c.Data(http.StatusOK, "application/pdf", pdf)
			return
		}
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INTERNAL_ERROR",
			Message: err.Error(),
		},
	})
}

// Helper functions shared with the sensitivity handler

// buildDeal resolves the effective deal assumptions from an optional deal
// file plus request overrides. deal_file is just the deal ID (e.g.
// "acme_corp"); files are always looked up in the deal directory.
func buildDeal(dealFile string, req models.DealRequest) config.DealConfig {
	deal := config.DealConfig{
		Company:               req.Company,
		EntryYear:             req.EntryYear,
		ExitYear:              req.ExitYear,
		RevenueEntry:          req.RevenueEntry,
		EBITDAMarginEntry:     req.EBITDAMarginEntry,
		RevenueGrowth:         req.RevenueGrowth,
		EBITDAMarginExit:      req.EBITDAMarginExit,
		CapexPercent:          req.CapexPercent,
		DSO:                   req.DSO,
		DPO:                   req.DPO,
		DSI:                   req.DSI,
		PurchasePriceMultiple: req.PurchasePriceMultiple,
		DebtPercentage:        req.DebtPercentage,
		InterestRate:          req.InterestRate,
		AmortizationYears:     req.AmortizationYears,
		TaxRate:               req.TaxRate,
	}

	if dealFile != "" {
		dealPath := filepath.Join(data.DefaultDealDir(), dealFile+".yaml")
		loaded, err := config.LoadDealFile(dealPath)
		if err == nil {
			// Merge: deal file is base, request fields are overrides
			deal = config.MergeDeal(loaded, deal)
		} else {
			log.Printf("ModelHandler: failed to load deal file %s: %v", dealPath, err)
		}
	}

	return deal
}

func buildModelSummary(as *model.AssumptionSet, res *projection.Result) models.ModelSummary {
	return models.ModelSummary{
		Company:            as.Company,
		EntryYear:          as.EntryYear,
		ExitYear:           as.ExitYear,
		HoldingPeriodYears: as.HoldingPeriod,
		EntryEBITDA:        as.EntryEBITDA,
		PurchasePrice:      as.PurchasePrice,
		DebtAmount:         as.DebtAmount,
		EquityAmount:       as.EquityAmount,
		ExitEBITDA:         res.ExitEBITDA(),
		ExitDebt:           res.ExitDebt(),
		ExitEquityValue:    res.Returns.ExitEquityValue,
		Returns: models.ReturnMetrics{
			IRR:  res.Returns.IRR,
			MOIC: res.Returns.MOIC,
			DPI:  res.Returns.DPI,
			TVPI: res.Returns.TVPI,
		},
	}
}

func convertStatements(res *projection.Result) *models.Statements {
	st := &models.Statements{
		Income:   make([]models.IncomeRow, len(res.Income)),
		CashFlow: make([]models.CashFlowRow, len(res.CashFlow)),
		Balance:  make([]models.BalanceRow, len(res.Balance)),
	}
	for i, row := range res.Income {
		st.Income[i] = models.IncomeRow{
			Year:            row.Year,
			Revenue:         row.Revenue,
			EBITDAMargin:    row.EBITDAMargin,
			EBITDA:          row.EBITDA,
			Depreciation:    row.Depreciation,
			EBIT:            row.EBIT,
			InterestExpense: row.InterestExpense,
			EBT:             row.EBT,
			Tax:             row.Tax,
			NetIncome:       row.NetIncome,
		}
	}
	for i, row := range res.CashFlow {
		st.CashFlow[i] = models.CashFlowRow{
			Year:                 row.Year,
			NetIncome:            row.NetIncome,
			Depreciation:         row.Depreciation,
			WorkingCapitalChange: row.WorkingCapitalChange,
			Capex:                row.Capex,
			FCF:                  row.FCF,
			DebtAmortization:     row.DebtAmortization,
			InterestPaid:         row.InterestPaid,
			LFCF:                 row.LFCF,
			CumulativeLFCF:       row.CumulativeLFCF,
		}
	}
	for i, row := range res.Balance {
		st.Balance[i] = models.BalanceRow{
			Year:            row.Year,
			DebtBalance:     row.DebtBalance,
			EquityBalance:   row.EquityBalance,
			EnterpriseValue: row.EnterpriseValue,
			ImpliedEVEBITDA: row.ImpliedEVEBITDA,
		}
	}
	return st
}

func convertSweep(a *sensitivity.Analysis) *models.SensitivityResult {
	return &models.SensitivityResult{
		ExitMultiple:  convertPoints(a.ExitMultiple),
		RevenueGrowth: convertPoints(a.RevenueGrowth),
		ExitMargin:    convertPoints(a.ExitMargin),
	}
}

func convertPoints(points []sensitivity.Point) []models.SweepPoint {
	result := make([]models.SweepPoint, len(points))
	for i, p := range points {
		result[i] = models.SweepPoint{
			Value: p.Value,
			IRR:   p.IRR,
			MOIC:  p.MOIC,
		}
	}
	return result
}
