package models

import (
	"time"

	"gorm.io/gorm"
)

// Tap directions.
const (
	DirectionTapIn  = "tapIn"
	DirectionTapOut = "tapOut"
)

// TapTransaction is one row of the append-only tap log. Rows are never
// updated or deleted. OriginStationID and Fare are set on tap-out only.
type TapTransaction struct {
	gorm.Model
	CardNumber      string    `json:"card_number" gorm:"index;not null"`
	Direction       string    `json:"direction" gorm:"not null"`
	OriginStationID *uint     `json:"origin_station_id,omitempty"`
	StationID       uint      `json:"station_id" gorm:"not null"`
	Fare            *int64    `json:"fare,omitempty"`
	BalanceBefore   int64     `json:"balance_before"`
	BalanceAfter    int64     `json:"balance_after"`
	Timestamp       time.Time `json:"timestamp" gorm:"index"`
}
