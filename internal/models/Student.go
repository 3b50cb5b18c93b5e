package models

import (
	"gorm.io/gorm"
)

// Student is a passenger optionally bound to a route, a bus on that route,
// and a seat on that bus. When SeatNumber is set, BusID must be set too and
// the pair (bus_id, seat_number) is unique across live rows; the partial
// unique index created in config.InitDB enforces this at the store level.
//
// StudentID is the school roll number. It is unique by policy but not
// enforced here.
type Student struct {
	gorm.Model
	Name      string `json:"name" binding:"required"`
	StudentID string `json:"student_id" gorm:"index" binding:"required"`

	RouteID    *uint `json:"route_id"`
	BusID      *uint `json:"bus_id" gorm:"index"`
	SeatNumber *int  `json:"seat_number"`

	Route *Route `gorm:"foreignKey:RouteID" json:"route,omitempty"`
}
