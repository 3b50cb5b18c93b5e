package seating

import (
	"context"

	logrus "github.com/sirupsen/logrus"

	"bus_fleet/internal/models"
)

// AssignRequest is one seat allocation attempt: bind a student to a seat on
// a specific bus of a route.
type AssignRequest struct {
	StudentID  uint
	RouteID    uint
	BusID      uint
	SeatNumber int
}

// Allocator enforces the seat invariant: at most one student per
// (bus, seat). Stores are injected; the allocator holds no other state, so
// attempts for different buses proceed fully in parallel.
type Allocator struct {
	routes   RouteStore
	students StudentStore
}

func NewAllocator(routes RouteStore, students StudentStore) *Allocator {
	return &Allocator{routes: routes, students: students}
}

// Assign validates the request and commits the assignment, or returns a
// typed rejection. The sequence short-circuits: input shape, route
// existence, bus membership, capacity, occupancy conflict, then a single
// atomic update of the student record. Re-assigning a student to the seat
// they already hold succeeds; moving to another bus re-validates against
// the new bus and implicitly frees the old seat.
func (a *Allocator) Assign(ctx context.Context, req AssignRequest) (*models.Student, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	route, err := a.routes.GetRoute(ctx, req.RouteID)
	if err != nil {
		return nil, err
	}

	capacity, err := ResolveCapacity(route, req.BusID)
	if err != nil {
		return nil, err
	}
	if req.SeatNumber > capacity {
		return nil, CapacityError{BusID: req.BusID, Seat: req.SeatNumber, Capacity: capacity}
	}

	occ, err := a.students.GetOccupancy(ctx, req.BusID, req.StudentID)
	if err != nil {
		return nil, err
	}
	if holder, taken := occ[req.SeatNumber]; taken {
		return nil, SeatConflictError{BusID: req.BusID, Seat: req.SeatNumber, HeldBy: holder}
	}

	// The store commit is conditional: a unique violation raised between
	// the snapshot above and the write surfaces as SeatConflictError, so
	// two racing requests for the same seat produce exactly one winner.
	student, err := a.students.AssignSeat(ctx, req.StudentID, req.RouteID, req.BusID, req.SeatNumber)
	if err != nil {
		if IsConflict(err) {
			return nil, SeatConflictError{BusID: req.BusID, Seat: req.SeatNumber}
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"student_id": req.StudentID,
		"bus_id":     req.BusID,
		"seat":       req.SeatNumber,
	}).Info("seat assigned")

	return student, nil
}

// CapacityOf resolves the seat count of a bus on a route without side
// effects.
func (a *Allocator) CapacityOf(ctx context.Context, routeID, busID uint) (int, error) {
	route, err := a.routes.GetRoute(ctx, routeID)
	if err != nil {
		return 0, err
	}
	return ResolveCapacity(route, busID)
}

// SeatMapFor builds the seat map view for one bus of a route. selected may
// be zero for no selection.
func (a *Allocator) SeatMapFor(ctx context.Context, routeID, busID uint, selected int) (*SeatMap, error) {
	capacity, err := a.CapacityOf(ctx, routeID, busID)
	if err != nil {
		return nil, err
	}
	occ, err := a.students.GetOccupancy(ctx, busID, 0)
	if err != nil {
		return nil, err
	}
	names, err := a.students.GetOccupantNames(ctx, busID)
	if err != nil {
		return nil, err
	}
	m := BuildSeatMap(capacity, occ, names, selected)
	return &m, nil
}

func (r AssignRequest) validate() error {
	switch {
	case r.StudentID == 0:
		return ValidationError{Field: "student_id", Msg: "must be a valid student id"}
	case r.RouteID == 0:
		return ValidationError{Field: "route_id", Msg: "must be a valid route id"}
	case r.BusID == 0:
		return ValidationError{Field: "bus_id", Msg: "must be a valid bus id"}
	case r.SeatNumber < 1:
		return ValidationError{Field: "seat_number", Msg: "must be at least 1"}
	}
	return nil
}
