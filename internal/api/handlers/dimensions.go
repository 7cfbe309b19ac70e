package handlers

import (
	"log"
	"net/http"

	"lbo-model/internal/api/models"

	"github.com/gin-gonic/gin"
)

// DimensionHandler handles sensitivity dimension requests
type DimensionHandler struct{}

// NewDimensionHandler creates a new dimension handler
func NewDimensionHandler() *DimensionHandler {
	return &DimensionHandler{}
}

// ListDimensions handles GET /api/v1/dimensions
func (h *DimensionHandler) ListDimensions(c *gin.Context) {
	log.Printf("DimensionHandler: ListDimensions called")
	dimensions := []models.DimensionInfo{
		{
			Name:        "exit_multiple",
			Description: "EV/EBITDA multiple applied to exit-year EBITDA. Revalues the solved exit without re-running the projection.",
			Unit:        "turns",
		},
		{
			Name:        "revenue_growth",
			Description: "Annual revenue growth rate. Each grid point re-runs the full projection with the perturbed rate.",
			Unit:        "percent",
		},
		{
			Name:        "exit_margin",
			Description: "EBITDA margin in the exit year. Each grid point re-runs the full projection with the perturbed margin.",
			Unit:        "percent",
		},
	}

	log.Printf("DimensionHandler: Returning %d dimensions", len(dimensions))
	c.JSON(http.StatusOK, gin.H{"dimensions": dimensions})
}
