package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"mrt_fare/internal/models"
)

type tapInput struct {
	CardNumber string `json:"card_number" binding:"required"`
	StationID  uint   `json:"station_id" binding:"required"`
}

// TapIn starts a trip: debits the minimum fare and activates the card
// at the entry station.
func TapIn(c *gin.Context) {
	var input tapInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("TapIn: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidCardNumber(input.CardNumber) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed card number"})
		return
	}

	card, err := tapLedger.TapIn(input.CardNumber, input.StationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"card": card})
}

// TapOut ends the open trip: charges the shortest-path fare from the
// stored origin and deactivates the card.
func TapOut(c *gin.Context) {
	var input tapInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("TapOut: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidCardNumber(input.CardNumber) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed card number"})
		return
	}

	result, err := tapLedger.TapOut(input.CardNumber, input.StationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"card":            result.Card,
		"fare":            result.Fare,
		"path":            result.Path,
		"distance_meters": result.Distance,
	})
}
