package enrollmentController

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lms/middleware"
	"lms/models"
	"lms/utils"
	enrollmentValidator "lms/validators/enrollment"
)

type EnrollmentController struct {
	DB *gorm.DB
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{DB: db}
}

// Enroll creates an enrollment for the caller, or reactivates a previously
// soft-deleted one for the same course. The (user, course) pair maps to at
// most one row for its whole lifetime.
func (ctl *EnrollmentController) Enroll(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedEnroll").(*enrollmentValidator.EnrollRequest)

	// Check if course exists and is active
	var course models.Course
	if err := ctl.DB.Where("id = ? AND is_deleted = ? AND status = ?", reqData.CourseID, false, "ACTIVE").First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not active!", nil)
	}

	now := time.Now()

	var existing models.Enrollment
	err := ctl.DB.Where("user_id = ? AND course_id = ?", userID, reqData.CourseID).First(&existing).Error
	if err == nil {
		if existing.IsActive {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", nil)
		}

		// Reactivate in place: progress and module history survive, the
		// start date resets.
		existing.IsActive = true
		existing.StartDate = now
		existing.LastAccessedAt = now
		if err := ctl.DB.Save(&existing).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Re-enrolled in course successfully!", existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	enrollment := models.Enrollment{
		UserID:         userID,
		CourseID:       reqData.CourseID,
		Progress:       0,
		StartDate:      now,
		LastAccessedAt: now,
		IsActive:       true,
	}

	if err := ctl.DB.Create(&enrollment).Error; err != nil {
		// Lost a concurrent-enroll race; the unique index is the arbiter
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", enrollment)
}

// GetEnrollments lists the caller's enrollments, most recently accessed first
func (ctl *EnrollmentController) GetEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedEnrollmentList").(*enrollmentValidator.EnrollmentListQuery)

	db := ctl.DB.Model(&models.Enrollment{}).Where("user_id = ?", userID)

	switch reqData.Status {
	case "completed":
		db = db.Where("progress = ?", 100)
	case "in-progress":
		db = db.Where("progress < ?", 100)
	}
	if reqData.IsActive != nil {
		db = db.Where("is_active = ?", *reqData.IsActive)
	}

	var total int64
	db.Count(&total)

	offset := (reqData.Page - 1) * reqData.Limit

	var enrollments []models.Enrollment
	if err := db.Preload("CompletedModules").
		Order("last_accessed_at desc").
		Offset(offset).Limit(reqData.Limit).
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
		"pagination": fiber.Map{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	})
}

// GetEnrollment returns one enrollment; visible to its owner and to admins
func (ctl *EnrollmentController) GetEnrollment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)

	var enrollment models.Enrollment
	if err := ctl.DB.Preload("CompletedModules").Where("id = ?", enrollmentID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if enrollment.UserID != userID && !ctl.isAdmin(userID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only view your own enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment fetched successfully!", enrollment)
}

// UpdateProgress sets the progress percentage and optionally marks one module
// as completed. CompletionDate tracks the progress==100 invariant; the first
// climb to 100 also issues the certificate.
func (ctl *EnrollmentController) UpdateProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)
	reqData := c.Locals("validatedProgress").(*enrollmentValidator.ProgressRequest)
	newProgress := *reqData.Progress

	var enrollment models.Enrollment
	if err := ctl.DB.Where("id = ?", enrollmentID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if enrollment.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only update your own progress!", nil)
	}

	now := time.Now()
	certificateIssuedNow := false
	certNumber := ""

	enrollment.Progress = newProgress
	enrollment.LastAccessedAt = now

	if newProgress == 100 {
		if enrollment.CompletionDate == nil {
			enrollment.CompletionDate = &now
		}
		if !enrollment.CertificateIssued {
			certNumber = fmt.Sprintf("CERT-%d-%d-%s", enrollment.CourseID, enrollment.UserID, uuid.NewString())
			enrollment.CertificateIssued = true
			enrollment.CertificateURL = "/certificates/" + certNumber + ".pdf"
			certificateIssuedNow = true
		}
	} else {
		// Certificates, once issued, are not revoked
		enrollment.CompletionDate = nil
	}

	tx := ctl.DB.Begin()
	if err := tx.Save(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	if reqData.CompletedModuleIndex != nil {
		var existing models.ModuleCompletion
		err := tx.Where("enrollment_id = ? AND module_index = ?", enrollment.ID, *reqData.CompletedModuleIndex).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			completion := models.ModuleCompletion{
				EnrollmentID: enrollment.ID,
				ModuleIndex:  *reqData.CompletedModuleIndex,
				CompletedAt:  now,
			}
			if err := tx.Create(&completion).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
			}
		} else if err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
		// Already completed: resubmitting the same index is a no-op
	}

	tx.Commit()

	if certificateIssuedNow {
		var student models.User
		var course models.Course
		ctl.DB.Where("id = ?", enrollment.UserID).First(&student)
		ctl.DB.Where("id = ?", enrollment.CourseID).First(&course)

		go utils.SendCertificateEmail(student.Email, student.Name, course.Title, certNumber)
		go utils.NotifyCourseCompletion(enrollment.UserID, enrollment.CourseID, certNumber)
	}

	ctl.DB.Preload("CompletedModules").First(&enrollment, enrollment.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", enrollment)
}

// Unenroll soft-deletes the enrollment; progress and history are retained so
// a later re-enrollment resumes where the student left off
func (ctl *EnrollmentController) Unenroll(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)

	var enrollment models.Enrollment
	if err := ctl.DB.Where("id = ?", enrollmentID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if enrollment.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only unenroll yourself!", nil)
	}

	enrollment.IsActive = false
	enrollment.LastAccessedAt = time.Now()
	if err := ctl.DB.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unenroll!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unenrolled from course successfully!", nil)
}

// GetForCourse returns the caller's enrollment for a course, or null
func (ctl *EnrollmentController) GetForCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment models.Enrollment
	err := ctl.DB.Preload("CompletedModules").Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No enrollment for this course.", nil)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment fetched successfully!", enrollment)
}

func (ctl *EnrollmentController) isAdmin(userID uint) bool {
	var user models.User
	if err := ctl.DB.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return false
	}
	return user.Role == "ADMIN"
}
