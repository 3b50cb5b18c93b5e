package seating

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"bus_fleet/internal/config"
	"bus_fleet/internal/models"
)

// GormRouteStore reads routes through gorm. A zero value falls back to the
// shared config.DB handle.
type GormRouteStore struct {
	DB *gorm.DB
}

func (s GormRouteStore) db() *gorm.DB {
	if s.DB != nil {
		return s.DB
	}
	return config.DB
}

func (s GormRouteStore) GetRoute(ctx context.Context, routeID uint) (*models.Route, error) {
	var route models.Route
	if err := s.db().WithContext(ctx).Preload("Buses").First(&route, routeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, RouteNotFoundError{RouteID: routeID}
		}
		return nil, PersistenceError{Op: "load route", Err: err}
	}
	return &route, nil
}

// GormStudentStore reads and commits student seat state through gorm.
type GormStudentStore struct {
	DB *gorm.DB
}

func (s GormStudentStore) db() *gorm.DB {
	if s.DB != nil {
		return s.DB
	}
	return config.DB
}

func (s GormStudentStore) GetOccupancy(ctx context.Context, busID uint, excludeStudentID uint) (Occupancy, error) {
	var rows []struct {
		ID         uint
		SeatNumber int
	}
	q := s.db().WithContext(ctx).Model(&models.Student{}).
		Where("bus_id = ? AND seat_number IS NOT NULL", busID)
	if excludeStudentID != 0 {
		q = q.Where("id <> ?", excludeStudentID)
	}
	if err := q.Select("id", "seat_number").Find(&rows).Error; err != nil {
		return nil, PersistenceError{Op: "scan occupancy", Err: err}
	}

	occ := Occupancy{}
	for _, r := range rows {
		occ[r.SeatNumber] = r.ID
	}
	return occ, nil
}

func (s GormStudentStore) GetOccupantNames(ctx context.Context, busID uint) (map[int]string, error) {
	var rows []struct {
		Name       string
		SeatNumber int
	}
	err := s.db().WithContext(ctx).Model(&models.Student{}).
		Where("bus_id = ? AND seat_number IS NOT NULL", busID).
		Select("name", "seat_number").Find(&rows).Error
	if err != nil {
		return nil, PersistenceError{Op: "scan occupants", Err: err}
	}

	names := map[int]string{}
	for _, r := range rows {
		names[r.SeatNumber] = r.Name
	}
	return names, nil
}

func (s GormStudentStore) AssignSeat(ctx context.Context, studentID, routeID, busID uint, seat int) (*models.Student, error) {
	res := s.db().WithContext(ctx).Model(&models.Student{}).
		Where("id = ?", studentID).
		Updates(map[string]interface{}{
			"route_id":    routeID,
			"bus_id":      busID,
			"seat_number": seat,
		})
	if res.Error != nil {
		// The unique index on (bus_id, seat_number) turns a lost race
		// into a conflict instead of a double booking.
		if IsUniqueViolation(res.Error) {
			return nil, SeatConflictError{BusID: busID, Seat: seat}
		}
		return nil, PersistenceError{Op: "commit seat assignment", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return nil, StudentNotFoundError{StudentID: studentID}
	}

	var student models.Student
	if err := s.db().WithContext(ctx).First(&student, studentID).Error; err != nil {
		return nil, PersistenceError{Op: "reload student", Err: err}
	}
	return &student, nil
}

// IsUniqueViolation reports whether err is a unique-constraint failure,
// covering both gorm's translated error and a raw postgres 23505.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
