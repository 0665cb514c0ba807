package models

import (
	"regexp"

	"gorm.io/gorm"
)

// CardNumberPrefix is the issuer prefix every card serial starts with.
const CardNumberPrefix = "6378"

var cardNumberPattern = regexp.MustCompile(`^` + CardNumberPrefix + `\d{11}$`)

// Card is a rechargeable transit card. Balance never goes negative;
// Active is true while the card is inside the system (tapped in but not
// yet tapped out), and OriginStation holds the open trip's entry station
// for exactly that window.
type Card struct {
	gorm.Model
	CardNumber      string   `json:"card_number" gorm:"unique;not null"`
	UserID          *uint    `json:"user_id,omitempty" gorm:"index"`
	User            *User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Balance         int64    `json:"balance" gorm:"not null;default:0"`
	Active          bool     `json:"active" gorm:"not null;default:false"`
	OriginStationID *uint    `json:"origin_station_id,omitempty"`
	OriginStation   *Station `json:"origin_station,omitempty" gorm:"foreignKey:OriginStationID"`
}

// ValidCardNumber reports whether s is a well-formed 15-digit card
// serial carrying the issuer prefix.
func ValidCardNumber(s string) bool {
	return cardNumberPattern.MatchString(s)
}
