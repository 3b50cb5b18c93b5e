package seating

import (
	"errors"
	"fmt"
)

// ValidationError rejects a malformed assignment request before any store
// access.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	return e.Msg
}

// RouteNotFoundError means the requested route does not exist.
type RouteNotFoundError struct {
	RouteID uint
}

func (e RouteNotFoundError) Error() string {
	return fmt.Sprintf("route %d not found", e.RouteID)
}

// StudentNotFoundError means the assignment target does not exist.
type StudentNotFoundError struct {
	StudentID uint
}

func (e StudentNotFoundError) Error() string {
	return fmt.Sprintf("student %d not found", e.StudentID)
}

// BusNotOnRouteError means the bus exists outside the requested route, or
// not at all. A route with no buses rejects every assignment this way.
type BusNotOnRouteError struct {
	RouteID uint
	BusID   uint
}

func (e BusNotOnRouteError) Error() string {
	return fmt.Sprintf("bus %d is not assigned to route %d", e.BusID, e.RouteID)
}

// CapacityError rejects a seat number beyond the bus's seat count. The
// message carries the capacity so the caller can surface it verbatim.
type CapacityError struct {
	BusID    uint
	Seat     int
	Capacity int
}

func (e CapacityError) Error() string {
	return fmt.Sprintf("seat %d exceeds bus capacity of %d", e.Seat, e.Capacity)
}

// SeatConflictError means another student already holds the seat. HeldBy is
// zero when the conflict was detected by the store's unique index rather
// than the occupancy pre-check.
type SeatConflictError struct {
	BusID  uint
	Seat   int
	HeldBy uint
}

func (e SeatConflictError) Error() string {
	return fmt.Sprintf("seat %d is already occupied on this bus", e.Seat)
}

// PersistenceError wraps a store failure that is not a business rejection.
type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e PersistenceError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is a missing route or student.
func IsNotFound(err error) bool {
	var route RouteNotFoundError
	var student StudentNotFoundError
	return errors.As(err, &route) || errors.As(err, &student)
}

func IsConflict(err error) bool {
	var target SeatConflictError
	return errors.As(err, &target)
}

func IsCapacity(err error) bool {
	var target CapacityError
	return errors.As(err, &target)
}

func IsBusNotOnRoute(err error) bool {
	var target BusNotOnRouteError
	return errors.As(err, &target)
}
