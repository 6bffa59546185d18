package courseController

import (
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"
)

// Catalog writes require ADMIN (enforced by the AdminOnly middleware on the
// route). The system this replaces shipped these routes unprotected.

func (ctl *CourseController) CreateCourse(c *fiber.Ctx) error {
	reqData := c.Locals("validatedCourse").(*courseValidator.CourseRequest)

	course := models.Course{
		Title:          reqData.Title,
		Description:    reqData.Description,
		Category:       reqData.Category,
		Level:          reqData.Level,
		Price:          reqData.Price,
		InstructorName: reqData.InstructorName,
		ThumbnailURL:   reqData.ThumbnailURL,
		ModulesCount:   reqData.ModulesCount,
		Status:         reqData.Status,
	}
	if course.Level == "" {
		course.Level = "BEGINNER"
	}
	if course.Status == "" {
		course.Status = "ACTIVE"
	}

	if err := ctl.DB.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

func (ctl *CourseController) UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	reqData := c.Locals("validatedCourse").(*courseValidator.CourseRequest)

	var course models.Course
	if err := ctl.DB.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.Title = reqData.Title
	course.Description = reqData.Description
	course.Category = reqData.Category
	course.Price = reqData.Price
	course.InstructorName = reqData.InstructorName
	course.ThumbnailURL = reqData.ThumbnailURL
	course.ModulesCount = reqData.ModulesCount
	if reqData.Level != "" {
		course.Level = reqData.Level
	}
	if reqData.Status != "" {
		course.Status = reqData.Status
	}

	if err := ctl.DB.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse soft-deletes the course and cascades soft-delete to its
// reviews. Enrollments stay for the students' history.
func (ctl *CourseController) DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := ctl.DB.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	tx := ctl.DB.Begin()

	course.IsDeleted = true
	course.Status = "INACTIVE"
	if err := tx.Save(&course).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	if err := tx.Model(&models.Review{}).Where("course_id = ?", course.ID).
		Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
