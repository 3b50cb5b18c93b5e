package controllers

import (
	"math"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"bus_fleet/internal/config"
	"bus_fleet/internal/models"
)

type fleetStatus struct {
	Active      int `json:"active"`
	Maintenance int `json:"maintenance"`
	Idle        int `json:"idle"`
}

type maintenanceAlert struct {
	ID     uint   `json:"id"`
	Number string `json:"number"`
}

type routeInsight struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Assigned int    `json:"assigned"`
	Capacity int    `json:"capacity"`
}

type dashboardStats struct {
	FleetStatus       fleetStatus        `json:"fleet_status"`
	TotalStudents     int                `json:"total_students"`
	ActiveRoutes      int                `json:"active_routes"`
	TotalCapacity     int                `json:"total_capacity"`
	TotalOccupied     int                `json:"total_occupied"`
	OccupancyRate     float64            `json:"occupancy_rate"`
	MaintenanceAlerts []maintenanceAlert `json:"maintenance_alerts"`
	RouteInsights     []routeInsight     `json:"route_insights"`
}

// buildDashboardStats aggregates fleet, student and route figures.
// Routes count as active when at least one bus is assigned to them;
// occupancy rate is occupied seats over total seats, as a percentage
// rounded to one decimal.
func buildDashboardStats(buses []models.Bus, students []models.Student, routes []models.Route) dashboardStats {
	stats := dashboardStats{
		MaintenanceAlerts: []maintenanceAlert{},
		RouteInsights:     []routeInsight{},
	}

	busCapacity := make(map[uint]int, len(buses))
	routeHasBus := make(map[uint]bool)
	for _, b := range buses {
		busCapacity[b.ID] = b.Capacity
		switch b.Status {
		case models.BusStatusActive:
			stats.FleetStatus.Active++
		case models.BusStatusMaintenance:
			stats.FleetStatus.Maintenance++
			stats.MaintenanceAlerts = append(stats.MaintenanceAlerts, maintenanceAlert{ID: b.ID, Number: b.Number})
		case models.BusStatusIdle:
			stats.FleetStatus.Idle++
		}
		stats.TotalCapacity += b.Capacity
		if b.RouteID != nil {
			routeHasBus[*b.RouteID] = true
		}
	}

	stats.TotalStudents = len(students)
	routeAssigned := make(map[uint]int)
	for _, s := range students {
		if s.BusID != nil && s.SeatNumber != nil {
			stats.TotalOccupied++
		}
		if s.RouteID != nil {
			routeAssigned[*s.RouteID]++
		}
	}

	if stats.TotalCapacity > 0 {
		rate := float64(stats.TotalOccupied) / float64(stats.TotalCapacity) * 100
		stats.OccupancyRate = math.Round(rate*10) / 10
	}

	routeCapacity := make(map[uint]int)
	for _, b := range buses {
		if b.RouteID != nil {
			routeCapacity[*b.RouteID] += busCapacity[b.ID]
		}
	}

	insights := make([]routeInsight, 0, len(routes))
	for _, r := range routes {
		if routeHasBus[r.ID] {
			stats.ActiveRoutes++
		}
		insights = append(insights, routeInsight{
			ID:       r.ID,
			Name:     r.Name,
			Assigned: routeAssigned[r.ID],
			Capacity: routeCapacity[r.ID],
		})
	}

	// Busiest routes first, top three only.
	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Assigned > insights[j].Assigned
	})
	if len(insights) > 3 {
		insights = insights[:3]
	}
	stats.RouteInsights = insights

	return stats
}

// GetDashboardStats serves the admin dashboard summary.
func GetDashboardStats(c *gin.Context) {
	var buses []models.Bus
	if err := config.DB.Find(&buses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading buses: " + err.Error()})
		return
	}

	var students []models.Student
	if err := config.DB.Find(&students).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading students: " + err.Error()})
		return
	}

	var routes []models.Route
	if err := config.DB.Find(&routes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading routes: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": buildDashboardStats(buses, students, routes)})
}
