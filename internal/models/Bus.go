// internal/models/bus.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Valid bus statuses. A bus in "maintenance" is surfaced on the dashboard
// as an alert; "scheduled" means a service visit is booked.
const (
	BusStatusActive      = "active"
	BusStatusMaintenance = "maintenance"
	BusStatusIdle        = "idle"
	BusStatusScheduled   = "scheduled"
)

type Bus struct {
	gorm.Model
	Number   string `json:"number" binding:"required"`
	Capacity int    `json:"capacity"` // total seat count, >= 1
	Status   string `json:"status" gorm:"default:active"`

	RouteID  *uint `json:"route_id" gorm:"index"`
	DriverID *uint `json:"driver_id"`

	MaintenanceNotes    string     `json:"maintenance_notes"`
	NextMaintenanceDate *time.Time `json:"next_maintenance_date"`
	LastOdometerReading *int64     `json:"last_odometer_reading"`

	Driver *Driver `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
}

// ValidStatus reports whether s is one of the known bus statuses.
func ValidStatus(s string) bool {
	switch s {
	case BusStatusActive, BusStatusMaintenance, BusStatusIdle, BusStatusScheduled:
		return true
	}
	return false
}
