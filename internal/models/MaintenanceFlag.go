package models

import "gorm.io/gorm"

// MaintenanceFlag is the single system-wide mode record. Enabled=true
// opens the admin-edit window (topology edits allowed, riders locked
// out); Enabled=false enables rider service.
type MaintenanceFlag struct {
	gorm.Model
	Enabled bool `json:"enabled" gorm:"not null;default:false"`
}
