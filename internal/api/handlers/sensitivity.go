package handlers

import (
	"errors"
	"net/http"

	"lbo-model/internal/api/models"
	"lbo-model/internal/data"
	"lbo-model/internal/model"
	"lbo-model/internal/projection"
	"lbo-model/internal/returns"
	"lbo-model/internal/sensitivity"

	"github.com/gin-gonic/gin"
)

// SensitivityHandler handles sensitivity sweep requests
type SensitivityHandler struct {
	runs *data.RunStore
}

// NewSensitivityHandler creates a new sensitivity handler
func NewSensitivityHandler(runs *data.RunStore) *SensitivityHandler {
	return &SensitivityHandler{runs: runs}
}

// RunSensitivity handles POST /api/v1/sensitivity
func (h *SensitivityHandler) RunSensitivity(c *gin.Context) {
	var req models.SensitivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

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

	// Solve the base model once; every sweep axis perturbs from here
	engine := projection.New()
	base, err := engine.Run(as)
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

	sweep := sensitivity.Config{
		ExitMultiples:  req.Grids.ExitMultiples,
		RevenueGrowths: req.Grids.RevenueGrowths,
		ExitMargins:    req.Grids.ExitMargins,
	}
	analysis, err := sensitivity.Run(c.Request.Context(), as, base, sweep)
	if err != nil {
		status := http.StatusInternalServerError
		code := "INTERNAL_ERROR"
		if errors.Is(err, returns.ErrNoRoot) {
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

	id := h.runs.Put(&data.StoredRun{
		Input:       as.Input,
		Result:      base,
		Sensitivity: analysis,
	})

	c.JSON(http.StatusOK, models.SensitivityResponse{
		ID:          id,
		Status:      "completed",
		Summary:     buildModelSummary(as, base),
		Sensitivity: *convertSweep(analysis),
	})
}
