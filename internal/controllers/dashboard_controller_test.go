package controllers

import (
	"testing"

	"gorm.io/gorm"

	"bus_fleet/internal/models"
)

func uintPtr(v uint) *uint { return &v }
func intPtr(v int) *int    { return &v }

func TestBuildDashboardStats(t *testing.T) {
	routeA := uint(1)
	routeB := uint(2)

	buses := []models.Bus{
		{Model: gorm.Model{ID: 10}, Number: "KBF-001", Capacity: 40, Status: models.BusStatusActive, RouteID: &routeA},
		{Model: gorm.Model{ID: 11}, Number: "KBF-002", Capacity: 30, Status: models.BusStatusMaintenance, RouteID: &routeA},
		{Model: gorm.Model{ID: 12}, Number: "KBF-003", Capacity: 30, Status: models.BusStatusIdle},
	}
	students := []models.Student{
		{Model: gorm.Model{ID: 1}, Name: "Asha", RouteID: &routeA, BusID: uintPtr(10), SeatNumber: intPtr(3)},
		{Model: gorm.Model{ID: 2}, Name: "Brian", RouteID: &routeA, BusID: uintPtr(10), SeatNumber: intPtr(7)},
		{Model: gorm.Model{ID: 3}, Name: "Cyrus", RouteID: &routeB},
	}
	routes := []models.Route{
		{Model: gorm.Model{ID: routeA}, Name: "Northgate Loop"},
		{Model: gorm.Model{ID: routeB}, Name: "Riverside Express"},
	}

	stats := buildDashboardStats(buses, students, routes)

	if stats.FleetStatus.Active != 1 || stats.FleetStatus.Maintenance != 1 || stats.FleetStatus.Idle != 1 {
		t.Errorf("unexpected fleet status: %+v", stats.FleetStatus)
	}
	if stats.TotalStudents != 3 {
		t.Errorf("total students = %d, want 3", stats.TotalStudents)
	}
	if stats.ActiveRoutes != 1 {
		t.Errorf("active routes = %d, want 1", stats.ActiveRoutes)
	}
	if stats.TotalCapacity != 100 {
		t.Errorf("total capacity = %d, want 100", stats.TotalCapacity)
	}
	if stats.TotalOccupied != 2 {
		t.Errorf("total occupied = %d, want 2", stats.TotalOccupied)
	}
	if stats.OccupancyRate != 2.0 {
		t.Errorf("occupancy rate = %v, want 2.0", stats.OccupancyRate)
	}
	if len(stats.MaintenanceAlerts) != 1 || stats.MaintenanceAlerts[0].Number != "KBF-002" {
		t.Errorf("unexpected maintenance alerts: %+v", stats.MaintenanceAlerts)
	}
	if len(stats.RouteInsights) != 2 {
		t.Fatalf("route insights = %d, want 2", len(stats.RouteInsights))
	}
	top := stats.RouteInsights[0]
	if top.Name != "Northgate Loop" || top.Assigned != 2 || top.Capacity != 70 {
		t.Errorf("unexpected top route insight: %+v", top)
	}
}

func TestBuildDashboardStatsEmpty(t *testing.T) {
	stats := buildDashboardStats(nil, nil, nil)
	if stats.OccupancyRate != 0 {
		t.Errorf("occupancy rate on empty fleet = %v, want 0", stats.OccupancyRate)
	}
	if stats.MaintenanceAlerts == nil || stats.RouteInsights == nil {
		t.Error("alert and insight slices should be non-nil")
	}
}

func TestBuildDashboardStatsTopThreeRoutes(t *testing.T) {
	var routes []models.Route
	var students []models.Student
	for i := uint(1); i <= 5; i++ {
		routes = append(routes, models.Route{Model: gorm.Model{ID: i}, Name: "R"})
		rid := i
		for j := uint(0); j < i; j++ {
			students = append(students, models.Student{RouteID: &rid})
		}
	}

	stats := buildDashboardStats(nil, students, routes)
	if len(stats.RouteInsights) != 3 {
		t.Fatalf("route insights = %d, want 3", len(stats.RouteInsights))
	}
	if stats.RouteInsights[0].Assigned != 5 || stats.RouteInsights[2].Assigned != 3 {
		t.Errorf("insights not ordered by assigned count: %+v", stats.RouteInsights)
	}
}
