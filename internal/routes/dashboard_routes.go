package routes

import (
	"bus_fleet/internal/controllers"
	"bus_fleet/internal/middleware"

	"github.com/gin-gonic/gin"
)

func DashboardRoutes(r *gin.Engine) {
	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.RequireAuth())
	{
		dashboard.GET("/stats", controllers.GetDashboardStats)
	}
}
