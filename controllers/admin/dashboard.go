package adminController

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/middleware"
	"lms/models"
	"lms/utils"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// Stats aggregates platform-wide numbers for the admin dashboard. Everything
// is recomputed at read time; nothing here is cached.
func (ctl *DashboardController) Stats(c *fiber.Ctx) error {
	var totalUsers, totalCourses, activeCourses, totalReviews, approvedReviews, reportedReviews int64

	ctl.DB.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)
	ctl.DB.Model(&models.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	ctl.DB.Model(&models.Course{}).Where("is_deleted = ? AND status = ?", false, "ACTIVE").Count(&activeCourses)
	ctl.DB.Model(&models.Review{}).Where("is_deleted = ?", false).Count(&totalReviews)
	ctl.DB.Model(&models.Review{}).Where("is_deleted = ? AND is_approved = ?", false, true).Count(&approvedReviews)
	ctl.DB.Model(&models.Review{}).
		Where("is_deleted = ? AND EXISTS (SELECT 1 FROM review_reports WHERE review_reports.review_id = reviews.id AND review_reports.deleted_at IS NULL)", false).
		Count(&reportedReviews)

	enrollmentStats, err := utils.PlatformEnrollmentStats(ctl.DB)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard stats!", nil)
	}

	// Five most recent enrollments with names attached
	type RecentEnrollment struct {
		UserName    string    `json:"user_name"`
		CourseTitle string    `json:"course_title"`
		EnrolledAt  time.Time `json:"enrolled_at"`
	}

	var recentEnrollments []models.Enrollment
	ctl.DB.Order("created_at desc").Limit(5).Find(&recentEnrollments)

	recent := make([]RecentEnrollment, len(recentEnrollments))
	for i, e := range recentEnrollments {
		var user models.User
		var course models.Course
		ctl.DB.Where("id = ?", e.UserID).First(&user)
		ctl.DB.Where("id = ?", e.CourseID).First(&course)
		recent[i] = RecentEnrollment{
			UserName:    user.Name,
			CourseTitle: course.Title,
			EnrolledAt:  e.CreatedAt,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"stats": fiber.Map{
			"total_users":      totalUsers,
			"total_courses":    totalCourses,
			"active_courses":   activeCourses,
			"total_reviews":    totalReviews,
			"approved_reviews": approvedReviews,
			"reported_reviews": reportedReviews,
			"enrollments":      enrollmentStats,
		},
		"recent_enrollments": recent,
	})
}
