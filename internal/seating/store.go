package seating

import (
	"context"

	"bus_fleet/internal/models"
)

// Occupancy maps seat number -> occupying student id for one bus. Each
// lookup produces a fresh snapshot; nothing is cached between calls.
type Occupancy map[int]uint

// Occupied reports whether seat is held.
func (o Occupancy) Occupied(seat int) bool {
	_, ok := o[seat]
	return ok
}

// RouteStore loads routes together with their associated buses.
type RouteStore interface {
	// GetRoute returns the route with Buses populated, or
	// RouteNotFoundError.
	GetRoute(ctx context.Context, routeID uint) (*models.Route, error)
}

// StudentStore reads and commits student seat state. The students table is
// the only shared resource the allocator mutates.
type StudentStore interface {
	// GetOccupancy scans students bound to the bus with a non-null seat
	// number, excluding excludeStudentID when non-zero (so a student
	// re-confirming their own seat does not conflict with themselves).
	GetOccupancy(ctx context.Context, busID uint, excludeStudentID uint) (Occupancy, error)

	// GetOccupantNames returns seat number -> student name for the bus,
	// used by the seat map view.
	GetOccupantNames(ctx context.Context, busID uint) (map[int]string, error)

	// AssignSeat atomically binds the student to (route, bus, seat) and
	// returns the updated record. Implementations must guarantee that two
	// concurrent calls for the same (bus, seat) cannot both succeed: one
	// returns the student, the other SeatConflictError. A missing student
	// yields StudentNotFoundError; other failures PersistenceError.
	AssignSeat(ctx context.Context, studentID, routeID, busID uint, seat int) (*models.Student, error)
}
