package routes

import (
	"bus_fleet/internal/controllers"
	"bus_fleet/internal/middleware"

	"github.com/gin-gonic/gin"
)

func StudentRoutes(r *gin.Engine) {
	students := r.Group("/students")
	students.Use(middleware.RequireAuth())
	{
		students.GET("/", controllers.ListStudents)
		students.GET("/:id", controllers.GetStudent)
		students.POST("/", controllers.CreateStudent)
		students.PUT("/:id", controllers.UpdateStudent)
		students.DELETE("/:id", controllers.DeleteStudent)
	}
}
