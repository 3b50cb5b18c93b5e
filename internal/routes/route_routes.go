package routes

import (
	"bus_fleet/internal/controllers"
	"bus_fleet/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RouteRoutes exposes reads publicly; mutations need a valid token.
func RouteRoutes(r *gin.Engine) {
	routes := r.Group("/routes")
	{
		routes.GET("/", controllers.ListRoutes)
		routes.GET("/:id", controllers.GetRoute)
	}

	protected := r.Group("/routes")
	protected.Use(middleware.RequireAuth())
	{
		protected.POST("/", controllers.CreateRoute)
		protected.PUT("/:id", controllers.UpdateRoute)
		protected.DELETE("/:id", controllers.DeleteRoute)
	}
}
