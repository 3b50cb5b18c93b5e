// internal/models/driver.go
package models

import (
	"gorm.io/gorm"
)

type Driver struct {
	gorm.Model
	Name          string `json:"name" binding:"required"`
	PhoneNumber   string `json:"phone_number"`
	LicenseNumber string `json:"license_number"`
}
