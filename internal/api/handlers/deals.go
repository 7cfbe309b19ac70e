package handlers

import (
	"log"
	"net/http"
	"path/filepath"

	"lbo-model/internal/api/models"
	"lbo-model/internal/data"

	"github.com/gin-gonic/gin"
)

// DealHandler handles deal catalog requests
type DealHandler struct {
	dealDir string
}

// GetDealDir returns the deal directory path (for debugging)
func (h *DealHandler) GetDealDir() string {
	return h.dealDir
}

// NewDealHandler creates a new deal handler
func NewDealHandler() *DealHandler {
	dir := data.DefaultDealDir()

	// Convert to absolute path for reliability
	absDir, err := filepath.Abs(dir)
	if err == nil {
		dir = absDir
	}

	log.Printf("DealHandler: Using deal directory: %s", dir)

	return &DealHandler{
		dealDir: dir,
	}
}

// ListDeals handles GET /api/v1/deals
func (h *DealHandler) ListDeals(c *gin.Context) {
	deals := []models.DealInfo{}

	found, err := data.ListDeals(h.dealDir)
	if err != nil {
		log.Printf("DealHandler: Failed to read deal directory %s: %v", h.dealDir, err)
		c.JSON(http.StatusOK, gin.H{"deals": deals})
		return
	}

	for _, d := range found {
		deals = append(deals, models.DealInfo{
			ID:      d.ID,
			Company: d.Company,
			File:    d.Path,
			Specs: models.DealSpecs{
				RevenueEntry:          d.Config.RevenueEntry,
				PurchasePriceMultiple: d.Config.PurchasePriceMultiple,
				DebtPercentage:        d.Config.DebtPercentage,
			},
		})
	}

	log.Printf("DealHandler: Returning %d deals", len(deals))

	c.JSON(http.StatusOK, gin.H{"deals": deals})
}
