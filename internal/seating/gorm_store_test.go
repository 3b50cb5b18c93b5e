package seating

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db, PreferSimpleProtocol: true}), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("gorm open error: %v", err)
	}
	return gdb, mock
}

func TestGormStudentStoreOccupancy(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT "id","seat_number" FROM "students"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "seat_number"}).
			AddRow(3, 12).
			AddRow(4, 1))

	store := GormStudentStore{DB: gdb}
	occ, err := store.GetOccupancy(context.Background(), 5, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(occ) != 2 || occ[12] != 3 || occ[1] != 4 {
		t.Fatalf("unexpected occupancy: %v", occ)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGormStudentStoreAssignSeat(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "students" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "students"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "student_id", "route_id", "bus_id", "seat_number"}).
			AddRow(9, "Asha", "S-001", 1, 2, 14))

	store := GormStudentStore{DB: gdb}
	student, err := store.AssignSeat(context.Background(), 9, 1, 2, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if student.ID != 9 || student.SeatNumber == nil || *student.SeatNumber != 14 {
		t.Fatalf("unexpected student: %+v", student)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGormStudentStoreAssignSeatUniqueViolation(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "students" SET`).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	store := GormStudentStore{DB: gdb}
	_, err := store.AssignSeat(context.Background(), 9, 1, 2, 14)
	if !IsConflict(err) {
		t.Fatalf("expected seat conflict on unique violation, got %v", err)
	}
}

func TestGormStudentStoreAssignSeatMissingStudent(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "students" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	store := GormStudentStore{DB: gdb}
	_, err := store.AssignSeat(context.Background(), 42, 1, 2, 14)
	if !IsNotFound(err) {
		t.Fatalf("expected student-not-found, got %v", err)
	}
}

func TestGormRouteStoreGetRoute(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "routes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Northgate Loop"))
	mock.ExpectQuery(`SELECT \* FROM "buses"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "number", "capacity", "route_id"}).
			AddRow(2, "BF-12", 40, 1))

	store := GormRouteStore{DB: gdb}
	route, err := store.GetRoute(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(route.Buses) != 1 || route.Buses[0].Capacity != 40 {
		t.Fatalf("unexpected route: %+v", route)
	}
}

func TestGormRouteStoreGetRouteNotFound(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "routes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	store := GormRouteStore{DB: gdb}
	_, err := store.GetRoute(context.Background(), 99)
	var notFound RouteNotFoundError
	if !errors.As(err, &notFound) || notFound.RouteID != 99 {
		t.Fatalf("expected RouteNotFoundError for 99, got %v", err)
	}
}
