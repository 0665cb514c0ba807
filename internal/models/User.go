package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"` // "commuter" or "admin"

	// Cards issued to this user
	Cards []Card `gorm:"foreignKey:UserID" json:"cards,omitempty"`
}
