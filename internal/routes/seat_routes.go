package routes

import (
	"bus_fleet/internal/controllers"
	"bus_fleet/internal/middleware"
	"bus_fleet/internal/seating"

	"github.com/gin-gonic/gin"
)

func SeatRoutes(r *gin.Engine, alloc *seating.Allocator) {
	seats := r.Group("/seats")
	seats.Use(middleware.RequireAuth())
	{
		seats.POST("/assign", controllers.AssignSeat(alloc))
		seats.GET("/map", controllers.GetSeatMap(alloc))
	}
}
