package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"bus_fleet/internal/middleware"
	"bus_fleet/internal/seating"
)

func SetupRouter() *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(ginlog.SetLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	alloc := seating.NewAllocator(seating.GormRouteStore{}, seating.GormStudentStore{})

	AuthRoutes(r)
	BusRoutes(r)
	DriverRoutes(r)
	RouteRoutes(r)
	StudentRoutes(r)
	SeatRoutes(r, alloc)
	DashboardRoutes(r)
	AdminRoutes(r)

	return r
}
