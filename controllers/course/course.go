package courseController

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/middleware"
	"lms/models"
	"lms/utils"
	courseValidator "lms/validators/course"
)

type CourseController struct {
	DB *gorm.DB
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db}
}

// CourseView is a course joined with its read-time derived fields. Rating,
// review count and enrolled count are recomputed per fetch from the review
// and enrollment tables, never persisted.
type CourseView struct {
	models.Course
	Rating           float64 `json:"rating"`
	ReviewCount      int64   `json:"review_count"`
	EnrolledStudents int64   `json:"enrolled_students"`
}

func (ctl *CourseController) buildCourseView(course models.Course) (CourseView, error) {
	stats, err := utils.CourseReviewStats(ctl.DB, course.ID)
	if err != nil {
		return CourseView{}, err
	}
	enrolled, err := utils.CourseEnrolledCount(ctl.DB, course.ID)
	if err != nil {
		return CourseView{}, err
	}
	return CourseView{
		Course:           course,
		Rating:           stats.AverageRating,
		ReviewCount:      stats.TotalReviews,
		EnrolledStudents: enrolled,
	}, nil
}

// ListCourses returns the public catalog with filtering, search and sorting
func (ctl *CourseController) ListCourses(c *fiber.Ctx) error {
	reqData := c.Locals("validatedCourseList").(*courseValidator.CourseListQuery)

	db := ctl.DB.Model(&models.Course{}).Where("is_deleted = ? AND status = ?", false, "ACTIVE")

	if reqData.Category != "" {
		db = db.Where("category = ?", reqData.Category)
	}
	if reqData.Level != "" {
		db = db.Where("level = ?", reqData.Level)
	}
	if reqData.Search != "" {
		// Text search stays in the store
		pattern := "%" + reqData.Search + "%"
		db = db.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	switch reqData.Sort {
	case "price-asc":
		db = db.Order("price ASC")
	case "price-desc":
		db = db.Order("price DESC")
	case "top-rated":
		db = db.Order("(SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE reviews.course_id = courses.id AND reviews.is_approved AND NOT reviews.is_deleted AND reviews.deleted_at IS NULL) DESC")
	default:
		db = db.Order("created_at DESC")
	}

	var total int64
	db.Count(&total)

	offset := (reqData.Page - 1) * reqData.Limit

	var courses []models.Course
	if err := db.Offset(offset).Limit(reqData.Limit).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	views := make([]CourseView, len(courses))
	for i, course := range courses {
		view, err := ctl.buildCourseView(course)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course stats!", nil)
		}
		views[i] = view
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": views,
		"pagination": fiber.Map{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	})
}

// GetCourseDetails returns one course with derived stats
func (ctl *CourseController) GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := ctl.DB.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	view, err := ctl.buildCourseView(course)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course stats!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", view)
}
