package routes

import (
	"bus_fleet/internal/controllers"
	"bus_fleet/internal/middleware"

	"github.com/gin-gonic/gin"
)

func DriverRoutes(r *gin.Engine) {
	drivers := r.Group("/drivers")
	drivers.Use(middleware.RequireAuth())
	{
		drivers.GET("/", controllers.ListDrivers)
		drivers.GET("/:id", controllers.GetDriver)
		drivers.POST("/", controllers.CreateDriver)
		drivers.PUT("/:id", controllers.UpdateDriver)
		drivers.DELETE("/:id", controllers.DeleteDriver)
	}
}
