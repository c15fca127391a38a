package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"health-chatbot-backend/services"
)

// HealthDataController serves government health-data lookups.
type HealthDataController struct {
	health *services.HealthDataService
}

func NewHealthDataController(health *services.HealthDataService) *HealthDataController {
	return &HealthDataController{health: health}
}

// GetCOVIDStatistics returns case counts for ?state= and optional &district=.
func (hc *HealthDataController) GetCOVIDStatistics(c *gin.Context) {
	state := c.Query("state")
	if state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state query parameter is required"})
		return
	}

	stats, err := hc.health.GetCOVIDStatistics(state, c.Query("district"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetVaccinationCenters lists centers for ?pincode= and optional &date=
// (DD-MM-YYYY).
func (hc *HealthDataController) GetVaccinationCenters(c *gin.Context) {
	pincode := c.Query("pincode")
	if pincode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pincode query parameter is required"})
		return
	}

	centers, err := hc.health.GetVaccinationCenters(pincode, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch vaccination centers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":   len(centers),
		"centers": centers,
	})
}

// GetAdvisories returns the active advisory feed.
func (hc *HealthDataController) GetAdvisories(c *gin.Context) {
	advisories, err := hc.health.GetHealthAdvisories()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch advisories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":      len(advisories),
		"advisories": advisories,
	})
}
