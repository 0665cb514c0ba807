package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetMaintenance returns the current maintenance flag.
func GetMaintenance(c *gin.Context) {
	enabled, err := gate.MaintenanceEnabled()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"maintenance": enabled})
}

// SetMaintenance flips the maintenance flag. Enabling it fails while
// trips are open; disabling it fails while a station is disconnected.
func SetMaintenance(c *gin.Context) {
	var input struct {
		Maintenance *bool `json:"maintenance" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := gate.Set(*input.Maintenance); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"maintenance": *input.Maintenance})
}
