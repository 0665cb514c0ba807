package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"mrt_fare/internal/config"
	"mrt_fare/internal/models"
)

// ListFares returns the full fare schedule.
func ListFares(c *gin.Context) {
	var fares []models.FareComponent
	if err := config.DB.Order("type").Find(&fares).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"fares": fares})
}

// UpsertFare sets the price of one named fare component. A negative
// price floors at zero rather than failing; prices are never negative
// in storage.
func UpsertFare(c *gin.Context) {
	fareType := c.Param("type")
	if !models.KnownFareType(fareType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown fare type: " + fareType})
		return
	}

	var input struct {
		Price *int64 `json:"price" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	price := *input.Price
	if price < 0 {
		price = 0
	}

	var fare models.FareComponent
	err := config.DB.Where("type = ?", fareType).First(&fare).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fare = models.FareComponent{Type: fareType, Price: price}
		if err := config.DB.Create(&fare).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	} else {
		fare.Price = price
		if err := config.DB.Save(&fare).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	logrus.WithFields(logrus.Fields{"type": fareType, "price": price}).Info("fare component updated")
	c.JSON(http.StatusOK, gin.H{"fare": fare})
}
