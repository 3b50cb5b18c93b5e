package models

import (
	"gorm.io/gorm"
)

// Stop is a named pickup/dropoff point along a route.
// Seq gives the visit order; coordinates are optional.
type Stop struct {
	gorm.Model

	Name string  `json:"name" binding:"required"`
	Seq  int     `json:"seq"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`

	RouteID uint `json:"route_id" gorm:"index"`
}
