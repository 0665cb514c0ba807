package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"mrt_fare/internal/config"
	"mrt_fare/internal/models"
)

// IssueCard creates a new card. When no explicit balance is supplied
// the card is loaded with DEFAULT_LOAD + MINIMUM_FARE, so a fresh card
// can complete one trip before needing a top-up.
func IssueCard(c *gin.Context) {
	var input struct {
		CardNumber string `json:"card_number" binding:"required"`
		UserID     *uint  `json:"user_id"`
		Balance    *int64 `json:"balance"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidCardNumber(input.CardNumber) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "card number must be 15 digits starting with " + models.CardNumberPrefix})
		return
	}

	var balance int64
	if input.Balance != nil {
		balance = *input.Balance
		if balance < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "balance cannot be negative"})
			return
		}
	} else {
		load, err := dataStore.Price(models.FareDefaultLoad)
		if err != nil {
			respondError(c, err)
			return
		}
		minimum, err := dataStore.Price(models.FareMinimum)
		if err != nil {
			respondError(c, err)
			return
		}
		balance = load + minimum
	}

	if input.UserID != nil {
		var user models.User
		if err := config.DB.First(&user, *input.UserID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "linked user does not exist"})
			return
		}
	}

	card := models.Card{CardNumber: input.CardNumber, UserID: input.UserID, Balance: balance}
	if err := config.DB.Create(&card).Error; err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "card number already issued"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue card: " + err.Error()})
		return
	}

	logrus.WithFields(logrus.Fields{"card": card.CardNumber, "balance": balance}).Info("card issued")
	c.JSON(http.StatusCreated, gin.H{"card": card})
}

// GetCard returns a single card snapshot by serial.
func GetCard(c *gin.Context) {
	number := c.Param("number")
	if !models.ValidCardNumber(number) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed card number"})
		return
	}

	var card models.Card
	if err := config.DB.Where("card_number = ?", number).Preload("OriginStation").First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"card": card})
}

// ListCards returns all cards (admin only).
func ListCards(c *gin.Context) {
	var cards []models.Card
	if err := config.DB.Find(&cards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cards": cards})
}

// AdjustBalance sets a card's stored value. This is the operator's
// recovery path for an underfunded open trip; a negative balance is
// rejected outright.
func AdjustBalance(c *gin.Context) {
	number := c.Param("number")

	var input struct {
		Balance *int64 `json:"balance" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *input.Balance < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "balance cannot be negative"})
		return
	}

	var card models.Card
	if err := config.DB.Where("card_number = ?", number).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	before := card.Balance
	card.Balance = *input.Balance
	if err := config.DB.Save(&card).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logrus.WithFields(logrus.Fields{
		"card": card.CardNumber, "before": before, "after": card.Balance,
	}).Info("balance adjusted")
	c.JSON(http.StatusOK, gin.H{"card": card})
}

// ListCardTransactions returns the append-only tap history of one card,
// newest first.
func ListCardTransactions(c *gin.Context) {
	number := c.Param("number")

	var card models.Card
	if err := config.DB.Where("card_number = ?", number).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var txs []models.TapTransaction
	if err := config.DB.Where("card_number = ?", number).Order("timestamp desc").Find(&txs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}
