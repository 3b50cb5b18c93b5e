package routes

import (
	"bus_fleet/internal/controllers"
	"bus_fleet/internal/middleware"

	"github.com/gin-gonic/gin"
)

func BusRoutes(r *gin.Engine) {
	buses := r.Group("/buses")
	buses.Use(middleware.RequireAuth())
	{
		buses.GET("/", controllers.ListBuses)
		buses.GET("/:id", controllers.GetBus)
		buses.POST("/", controllers.CreateBus)
		buses.PUT("/:id", controllers.UpdateBus)
		buses.DELETE("/:id", controllers.DeleteBus)
	}
}
