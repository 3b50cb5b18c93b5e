package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bus_fleet/internal/models"
	"bus_fleet/internal/seating"
)

type stubRouteStore struct {
	routes map[uint]*models.Route
}

func (s stubRouteStore) GetRoute(_ context.Context, routeID uint) (*models.Route, error) {
	r, ok := s.routes[routeID]
	if !ok {
		return nil, seating.RouteNotFoundError{RouteID: routeID}
	}
	return r, nil
}

type stubStudentStore struct {
	mu    sync.Mutex
	seats map[uint]map[int]uint // busID -> seat -> studentID
	names map[uint]string
}

func (s *stubStudentStore) GetOccupancy(_ context.Context, busID, excludeStudentID uint) (seating.Occupancy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	occ := seating.Occupancy{}
	for seat, sid := range s.seats[busID] {
		if sid != excludeStudentID {
			occ[seat] = sid
		}
	}
	return occ, nil
}

func (s *stubStudentStore) GetOccupantNames(_ context.Context, busID uint) (map[int]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := map[int]string{}
	for seat, sid := range s.seats[busID] {
		names[seat] = s.names[sid]
	}
	return names, nil
}

func (s *stubStudentStore) AssignSeat(_ context.Context, studentID, routeID, busID uint, seat int) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.names[studentID]; !ok {
		return nil, seating.StudentNotFoundError{StudentID: studentID}
	}
	if holder, taken := s.seats[busID][seat]; taken && holder != studentID {
		return nil, seating.SeatConflictError{BusID: busID, Seat: seat, HeldBy: holder}
	}
	for bid, m := range s.seats {
		for sn, sid := range m {
			if sid == studentID {
				delete(s.seats[bid], sn)
			}
		}
	}
	if s.seats[busID] == nil {
		s.seats[busID] = map[int]uint{}
	}
	s.seats[busID][seat] = studentID
	return &models.Student{
		Model:      gorm.Model{ID: studentID},
		Name:       s.names[studentID],
		RouteID:    &routeID,
		BusID:      &busID,
		SeatNumber: &seat,
	}, nil
}

func newSeatTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	routeStore := stubRouteStore{routes: map[uint]*models.Route{
		1: {
			Model: gorm.Model{ID: 1},
			Name:  "Northgate Loop",
			Buses: []models.Bus{
				{Model: gorm.Model{ID: 10}, Number: "KBF-001", Capacity: 4},
			},
		},
	}}
	studentStore := &stubStudentStore{
		seats: map[uint]map[int]uint{10: {2: 2}},
		names: map[uint]string{1: "Asha", 2: "Brian"},
	}
	alloc := seating.NewAllocator(routeStore, studentStore)

	r := gin.New()
	r.POST("/seats/assign", AssignSeat(alloc))
	r.GET("/seats/map", GetSeatMap(alloc))
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAssignSeatHandler(t *testing.T) {
	r := newSeatTestRouter()

	w := doRequest(t, r, http.MethodPost, "/seats/assign",
		`{"student_id":1,"route_id":1,"bus_id":10,"seat_number":3}`)
	if w.Code != http.StatusOK {
		t.Fatalf("assign: status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Student models.Student `json:"student"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Student.SeatNumber == nil || *resp.Student.SeatNumber != 3 {
		t.Errorf("unexpected student in response: %+v", resp.Student)
	}
}

func TestAssignSeatHandlerConflict(t *testing.T) {
	r := newSeatTestRouter()

	w := doRequest(t, r, http.MethodPost, "/seats/assign",
		`{"student_id":1,"route_id":1,"bus_id":10,"seat_number":2}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("conflict: status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestAssignSeatHandlerCapacity(t *testing.T) {
	r := newSeatTestRouter()

	w := doRequest(t, r, http.MethodPost, "/seats/assign",
		`{"student_id":1,"route_id":1,"bus_id":10,"seat_number":5}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("capacity: status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "4") {
		t.Errorf("capacity response should carry the bus capacity, got %s", w.Body.String())
	}
}

func TestAssignSeatHandlerBusNotOnRoute(t *testing.T) {
	r := newSeatTestRouter()

	w := doRequest(t, r, http.MethodPost, "/seats/assign",
		`{"student_id":1,"route_id":1,"bus_id":99,"seat_number":1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bus not on route: status = %d, body = %s", w.Code, w.Body.String())
	}

	if w := doRequest(t, r, http.MethodGet, "/seats/map?route_id=1&bus_id=99", ""); w.Code != http.StatusBadRequest {
		t.Errorf("seat map for foreign bus: status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestAssignSeatHandlerRouteNotFound(t *testing.T) {
	r := newSeatTestRouter()

	w := doRequest(t, r, http.MethodPost, "/seats/assign",
		`{"student_id":1,"route_id":9,"bus_id":10,"seat_number":1}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("route not found: status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestAssignSeatHandlerBadPayload(t *testing.T) {
	r := newSeatTestRouter()

	w := doRequest(t, r, http.MethodPost, "/seats/assign", `{"student_id":1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad payload: status = %d", w.Code)
	}
}

func TestGetSeatMapHandler(t *testing.T) {
	r := newSeatTestRouter()

	w := doRequest(t, r, http.MethodGet, "/seats/map?route_id=1&bus_id=10&selected=1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("seat map: status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		SeatMap seating.SeatMap `json:"seat_map"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SeatMap.TotalSeats != 4 {
		t.Fatalf("total seats = %d, want 4", resp.SeatMap.TotalSeats)
	}

	states := map[int]seating.SeatState{}
	for _, seat := range resp.SeatMap.Seats {
		states[seat.Number] = seat.State
	}
	if states[1] != seating.SeatSelected {
		t.Errorf("seat 1 = %s, want selected", states[1])
	}
	if states[2] != seating.SeatOccupied {
		t.Errorf("seat 2 = %s, want occupied", states[2])
	}
	if states[3] != seating.SeatAvailable {
		t.Errorf("seat 3 = %s, want available", states[3])
	}
}

func TestGetSeatMapHandlerMissingParams(t *testing.T) {
	r := newSeatTestRouter()

	if w := doRequest(t, r, http.MethodGet, "/seats/map?bus_id=10", ""); w.Code != http.StatusBadRequest {
		t.Errorf("missing route_id: status = %d", w.Code)
	}
	if w := doRequest(t, r, http.MethodGet, "/seats/map?route_id=1", ""); w.Code != http.StatusBadRequest {
		t.Errorf("missing bus_id: status = %d", w.Code)
	}
	if w := doRequest(t, r, http.MethodGet, "/seats/map?route_id=1&bus_id=10&selected=0", ""); w.Code != http.StatusBadRequest {
		t.Errorf("invalid selected: status = %d", w.Code)
	}
}
