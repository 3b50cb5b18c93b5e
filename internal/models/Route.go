package models

import (
	"gorm.io/gorm"
)

// Route represents a transit path served by zero or more buses.
// A route always owns an ordered collection of stops; a bus belongs to at
// most one route at a time (one-route-to-many-buses).
type Route struct {
	gorm.Model

	Name string `json:"name" binding:"required"`

	// Optional path geometry stored as WKB (LINESTRING, SRID 4326).
	// Clients exchange it as GeoJSON; see the route controller.
	Geometry []byte `gorm:"type:bytea" json:"-"`

	// Associations
	Stops []Stop `gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"stops,omitempty"`
	Buses []Bus  `gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"buses,omitempty"`
}
