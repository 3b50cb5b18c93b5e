package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"bus_fleet/internal/middleware"
	"bus_fleet/internal/seating"
)

type assignSeatInput struct {
	StudentID  uint `json:"student_id" binding:"required"`
	RouteID    uint `json:"route_id" binding:"required"`
	BusID      uint `json:"bus_id" binding:"required"`
	SeatNumber int  `json:"seat_number" binding:"required,min=1"`
}

// respondSeatingError maps allocator errors onto HTTP status codes.
// Rejections the caller can act on (bad input, bus not on route, seat
// beyond capacity) go back as 400 with the allocator's message intact.
func respondSeatingError(c *gin.Context, err error) {
	switch {
	case seating.IsValidation(err), seating.IsBusNotOnRoute(err), seating.IsCapacity(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case seating.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case seating.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).
			WithField("request_id", middleware.GetRequestID(c)).
			Error("seat allocation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Seat allocation failed"})
	}
}

// AssignSeat returns the handler for POST /seats/assign. Exactly one
// request wins when two race for the same (bus, seat) pair.
func AssignSeat(alloc *seating.Allocator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input assignSeatInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment input: " + err.Error()})
			return
		}

		student, err := alloc.Assign(c.Request.Context(), seating.AssignRequest{
			StudentID:  input.StudentID,
			RouteID:    input.RouteID,
			BusID:      input.BusID,
			SeatNumber: input.SeatNumber,
		})
		if err != nil {
			respondSeatingError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"student": student})
	}
}

// GetSeatMap returns the handler for GET /seats/map. Query params:
// route_id and bus_id (required), selected (optional seat to highlight).
func GetSeatMap(alloc *seating.Allocator) gin.HandlerFunc {
	return func(c *gin.Context) {
		routeID, err := strconv.ParseUint(c.Query("route_id"), 10, 32)
		if err != nil || routeID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "route_id is required"})
			return
		}
		busID, err := strconv.ParseUint(c.Query("bus_id"), 10, 32)
		if err != nil || busID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bus_id is required"})
			return
		}

		selected := 0
		if raw := c.Query("selected"); raw != "" {
			selected, err = strconv.Atoi(raw)
			if err != nil || selected < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "selected must be a positive seat number"})
				return
			}
		}

		seatMap, err := alloc.SeatMapFor(c.Request.Context(), uint(routeID), uint(busID), selected)
		if err != nil {
			respondSeatingError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"seat_map": seatMap})
	}
}
