package seating

import (
	"bus_fleet/internal/models"
)

// ResolveCapacity locates busID among the route's buses and returns its
// seat count. The route must have been loaded with its Buses association.
func ResolveCapacity(route *models.Route, busID uint) (int, error) {
	for i := range route.Buses {
		if route.Buses[i].ID == busID {
			return route.Buses[i].Capacity, nil
		}
	}
	return 0, BusNotOnRouteError{RouteID: route.ID, BusID: busID}
}
