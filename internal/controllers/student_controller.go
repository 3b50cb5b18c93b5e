package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bus_fleet/internal/config"
	"bus_fleet/internal/models"
	"bus_fleet/internal/seating"
)

type createStudentInput struct {
	Name       string `json:"name" binding:"required"`
	StudentID  string `json:"student_id" binding:"required"`
	RouteID    *uint  `json:"route_id"`
	BusID      *uint  `json:"bus_id"`
	SeatNumber *int   `json:"seat_number"`
}

type updateStudentInput struct {
	Name      *string `json:"name"`
	StudentID *string `json:"student_id"`
	RouteID   *uint   `json:"route_id"`
}

// ListStudents returns students ordered by name, optionally filtered
// by ?route_id= and/or ?bus_id=, paginated.
func ListStudents(c *gin.Context) {
	page, limit, offset := parsePageParams(c)

	q := config.DB.Model(&models.Student{})
	if routeID := c.Query("route_id"); routeID != "" {
		id, err := strconv.ParseUint(routeID, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route_id filter"})
			return
		}
		q = q.Where("route_id = ?", uint(id))
	}
	if busID := c.Query("bus_id"); busID != "" {
		id, err := strconv.ParseUint(busID, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bus_id filter"})
			return
		}
		q = q.Where("bus_id = ?", uint(id))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting students: " + err.Error()})
		return
	}

	var students []models.Student
	if err := q.Preload("Route").Order("name ASC").Offset(offset).Limit(limit).Find(&students).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing students: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       students,
		"pagination": paginationFor(page, limit, total),
	})
}

func GetStudent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	var student models.Student
	if err := config.DB.Preload("Route").First(&student, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"student": student})
}

// CreateStudent registers a student, optionally pre-assigned to a route.
// When bus_id and seat_number are supplied the seat goes through the
// same allocation path as POST /seats/assign, so a losing race still
// yields exactly one occupant.
func CreateStudent(c *gin.Context) {
	var input createStudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student input: " + err.Error()})
		return
	}

	if input.BusID != nil || input.SeatNumber != nil {
		if input.BusID == nil || input.SeatNumber == nil || input.RouteID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Seat assignment needs route_id, bus_id and seat_number together"})
			return
		}
	}

	if input.RouteID != nil {
		var route models.Route
		if err := config.DB.First(&route, *input.RouteID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Route does not exist"})
			return
		}
	}

	student := models.Student{
		Name:      input.Name,
		StudentID: input.StudentID,
		RouteID:   input.RouteID,
	}

	if err := config.DB.Create(&student).Error; err != nil {
		logrus.WithError(err).Error("CreateStudent: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create student: " + err.Error()})
		return
	}

	if input.BusID != nil {
		alloc := seating.NewAllocator(seating.GormRouteStore{}, seating.GormStudentStore{})
		assigned, err := alloc.Assign(c.Request.Context(), seating.AssignRequest{
			StudentID:  student.ID,
			RouteID:    *input.RouteID,
			BusID:      *input.BusID,
			SeatNumber: *input.SeatNumber,
		})
		if err != nil {
			// Roll the registration back rather than leave a half-placed student.
			config.DB.Unscoped().Delete(&student)
			respondSeatingError(c, err)
			return
		}
		student = *assigned
	}

	c.JSON(http.StatusCreated, gin.H{"student": student})
}

// UpdateStudent updates name, student number or route. Changing route
// clears any existing bus and seat assignment since seats belong to a
// bus on the old route.
func UpdateStudent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	var student models.Student
	if err := config.DB.First(&student, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input updateStudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update: " + err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.StudentID != nil {
		updates["student_id"] = *input.StudentID
	}
	if input.RouteID != nil {
		var route models.Route
		if err := config.DB.First(&route, *input.RouteID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Route does not exist"})
			return
		}
		routeChanged := student.RouteID == nil || *student.RouteID != *input.RouteID
		updates["route_id"] = *input.RouteID
		if routeChanged {
			updates["bus_id"] = nil
			updates["seat_number"] = nil
		}
	}

	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{"student": student})
		return
	}

	if err := config.DB.Model(&student).Updates(updates).Error; err != nil {
		if seating.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Seat already occupied"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}

	config.DB.Preload("Route").First(&student, student.ID)
	c.JSON(http.StatusOK, gin.H{"student": student})
}

func DeleteStudent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	var student models.Student
	if err := config.DB.First(&student, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	if err := config.DB.Delete(&student).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Delete failed: " + err.Error()})
		return
	}

	logrus.WithField("student_id", student.ID).Info("student deleted, seat released")
	c.JSON(http.StatusOK, gin.H{"message": "Student deleted"})
}
