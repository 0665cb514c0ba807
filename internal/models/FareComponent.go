package models

import "gorm.io/gorm"

// Fare component type names. Exactly one component exists per name.
const (
	FareMinimum     = "MINIMUM_FARE" // flat price of the first 500 m and of every further increment
	FareDefaultLoad = "DEFAULT_LOAD" // stored value credited to a newly issued card
	FarePenalty     = "PENALTY_FEE"  // charged on irregular exits, e.g. a surrendered card
)

// FareComponent is a single named price in the fare schedule.
type FareComponent struct {
	gorm.Model
	Type  string `json:"type" gorm:"unique;not null"`
	Price int64  `json:"price" gorm:"not null;default:0"`
}

// KnownFareType reports whether t is one of the schedule's component names.
func KnownFareType(t string) bool {
	switch t {
	case FareMinimum, FareDefaultLoad, FarePenalty:
		return true
	}
	return false
}
