package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bus_fleet/internal/config"
	"bus_fleet/internal/models"
)

type createBusInput struct {
	Number              string     `json:"number" binding:"required"`
	Capacity            int        `json:"capacity" binding:"required,min=1"`
	Status              string     `json:"status"`
	RouteID             *uint      `json:"route_id"`
	DriverID            *uint      `json:"driver_id"`
	MaintenanceNotes    string     `json:"maintenance_notes"`
	NextMaintenanceDate *time.Time `json:"next_maintenance_date"`
	LastOdometerReading *int64     `json:"last_odometer_reading"`
}

type updateBusInput struct {
	Number              *string    `json:"number"`
	Capacity            *int       `json:"capacity"`
	Status              *string    `json:"status"`
	RouteID             *uint      `json:"route_id"`
	DriverID            *uint      `json:"driver_id"`
	MaintenanceNotes    *string    `json:"maintenance_notes"`
	NextMaintenanceDate *time.Time `json:"next_maintenance_date"`
	LastOdometerReading *int64     `json:"last_odometer_reading"`
}

// pagination is the shared list envelope for paginated endpoints.
type pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

func parsePageParams(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit, (page - 1) * limit
}

func paginationFor(page, limit int, total int64) pagination {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// ListBuses returns the fleet newest first, paginated via page/limit.
func ListBuses(c *gin.Context) {
	page, limit, offset := parsePageParams(c)

	var total int64
	if err := config.DB.Model(&models.Bus{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting buses: " + err.Error()})
		return
	}

	var buses []models.Bus
	if err := config.DB.Preload("Driver").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&buses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing buses: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       buses,
		"pagination": paginationFor(page, limit, total),
	})
}

func GetBus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bus ID"})
		return
	}

	var bus models.Bus
	if err := config.DB.Preload("Driver").First(&bus, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bus not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"bus": bus})
}

func CreateBus(c *gin.Context) {
	var input createBusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bus input: " + err.Error()})
		return
	}

	status := input.Status
	if status == "" {
		status = models.BusStatusActive
	}
	if !models.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bus status: " + status})
		return
	}

	bus := models.Bus{
		Number:              input.Number,
		Capacity:            input.Capacity,
		Status:              status,
		RouteID:             input.RouteID,
		DriverID:            input.DriverID,
		MaintenanceNotes:    input.MaintenanceNotes,
		NextMaintenanceDate: input.NextMaintenanceDate,
		LastOdometerReading: input.LastOdometerReading,
	}

	if err := config.DB.Create(&bus).Error; err != nil {
		logrus.WithError(err).Error("CreateBus: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bus: " + err.Error()})
		return
	}

	logrus.WithField("bus_id", bus.ID).Info("bus created")
	c.JSON(http.StatusCreated, gin.H{"bus": bus})
}

func UpdateBus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bus ID"})
		return
	}

	var bus models.Bus
	if err := config.DB.First(&bus, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bus not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input updateBusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update: " + err.Error()})
		return
	}

	if input.Number != nil {
		bus.Number = *input.Number
	}
	if input.Capacity != nil {
		if *input.Capacity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Capacity must be at least 1"})
			return
		}
		bus.Capacity = *input.Capacity
	}
	if input.Status != nil {
		if !models.ValidStatus(*input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bus status: " + *input.Status})
			return
		}
		bus.Status = *input.Status
	}
	if input.RouteID != nil {
		bus.RouteID = input.RouteID
	}
	if input.DriverID != nil {
		bus.DriverID = input.DriverID
	}
	if input.MaintenanceNotes != nil {
		bus.MaintenanceNotes = *input.MaintenanceNotes
	}
	if input.NextMaintenanceDate != nil {
		bus.NextMaintenanceDate = input.NextMaintenanceDate
	}
	if input.LastOdometerReading != nil {
		bus.LastOdometerReading = input.LastOdometerReading
	}

	if err := config.DB.Save(&bus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bus": bus})
}

func DeleteBus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bus ID"})
		return
	}

	var bus models.Bus
	if err := config.DB.First(&bus, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bus not found"})
		return
	}

	config.DB.Delete(&bus)
	c.JSON(http.StatusOK, gin.H{"message": "Bus deleted"})
}
