package reviewController

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/middleware"
	"lms/models"
	"lms/utils"
	reviewValidator "lms/validators/review"
)

type ReviewController struct {
	DB *gorm.DB
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db}
}

// CreateReview lets a student with an active enrollment review a course,
// once. Reviews start approved; moderation can flip them later.
func (ctl *ReviewController) CreateReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedReview").(*reviewValidator.CreateReviewRequest)

	// Check if course exists and is active
	var course models.Course
	if err := ctl.DB.Where("id = ? AND is_deleted = ? AND status = ?", reqData.CourseID, false, "ACTIVE").First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not active!", nil)
	}

	// Must hold an active enrollment to review
	var enrollment models.Enrollment
	if err := ctl.DB.Where("user_id = ? AND course_id = ? AND is_active = ?", userID, reqData.CourseID, true).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You must be enrolled in this course to review it!", nil)
	}

	// One review per student per course
	var existing models.Review
	if err := ctl.DB.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, reqData.CourseID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already reviewed this course!", nil)
	}

	review := models.Review{
		UserID:       userID,
		CourseID:     reqData.CourseID,
		Rating:       reqData.Rating,
		Comment:      reqData.Comment,
		IsApproved:   true,
		HelpfulVotes: 0,
	}

	if err := ctl.DB.Create(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Review submitted successfully!", review)
}

// GetCourseReviews returns the approved reviews for a course plus the
// read-time rating rollup. Public, no auth.
func (ctl *ReviewController) GetCourseReviews(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	reqData := c.Locals("validatedReviewList").(*reviewValidator.ReviewListQuery)

	db := ctl.DB.Model(&models.Review{}).
		Where("course_id = ? AND is_approved = ? AND is_deleted = ?", courseID, true, false)

	if reqData.Rating != 0 {
		db = db.Where("rating = ?", reqData.Rating)
	}

	var total int64
	db.Count(&total)

	order := "created_at DESC"
	switch reqData.Sort {
	case "oldest":
		order = "created_at ASC"
	case "highest-rating":
		order = "rating DESC, created_at DESC"
	case "lowest-rating":
		order = "rating ASC, created_at DESC"
	case "most-helpful":
		order = "helpful_votes DESC, created_at DESC"
	}

	offset := (reqData.Page - 1) * reqData.Limit

	var reviews []models.Review
	if err := db.Order(order).Offset(offset).Limit(reqData.Limit).Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	stats, err := utils.CourseReviewStats(ctl.DB, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch review stats!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched successfully!", fiber.Map{
		"reviews": reviews,
		"stats":   stats,
		"pagination": fiber.Map{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	})
}

// UpdateReview lets the author revise rating and comment. Moderation state
// is left as-is.
func (ctl *ReviewController) UpdateReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reviewID := c.Locals("reviewID").(int)
	reqData := c.Locals("validatedReviewUpdate").(*reviewValidator.UpdateReviewRequest)

	var review models.Review
	if err := ctl.DB.Where("id = ? AND is_deleted = ?", reviewID, false).First(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}

	if review.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only edit your own reviews!", nil)
	}

	review.Rating = reqData.Rating
	review.Comment = reqData.Comment

	if err := ctl.DB.Save(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review updated successfully!", review)
}

// DeleteReview soft-deletes; allowed for the author and for admins
func (ctl *ReviewController) DeleteReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reviewID := c.Locals("reviewID").(int)

	var review models.Review
	if err := ctl.DB.Where("id = ? AND is_deleted = ?", reviewID, false).First(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}

	if review.UserID != userID && !ctl.isAdmin(userID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only delete your own reviews!", nil)
	}

	review.IsDeleted = true
	if err := ctl.DB.Save(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review deleted successfully!", nil)
}

// MarkHelpful counts one helpful vote per user per review
func (ctl *ReviewController) MarkHelpful(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reviewID := c.Locals("reviewID").(int)

	var review models.Review
	if err := ctl.DB.Where("id = ? AND is_deleted = ?", reviewID, false).First(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}

	var existingVote models.ReviewHelpfulVote
	if err := ctl.DB.Where("review_id = ? AND user_id = ?", review.ID, userID).First(&existingVote).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already marked this review as helpful!", nil)
	}

	tx := ctl.DB.Begin()

	vote := models.ReviewHelpfulVote{ReviewID: review.ID, UserID: userID}
	if err := tx.Create(&vote).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already marked this review as helpful!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark review as helpful!", nil)
	}

	if err := tx.Model(&models.Review{}).Where("id = ?", review.ID).
		UpdateColumn("helpful_votes", gorm.Expr("helpful_votes + 1")).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark review as helpful!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review marked as helpful!", fiber.Map{
		"helpfulVotes": review.HelpfulVotes + 1,
	})
}

// ReportReview records a report against a review; one report per reporter
func (ctl *ReviewController) ReportReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reviewID := c.Locals("reviewID").(int)
	reqData := c.Locals("validatedReport").(*reviewValidator.ReportRequest)

	var review models.Review
	if err := ctl.DB.Where("id = ? AND is_deleted = ?", reviewID, false).First(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}

	var existing models.ReviewReport
	if err := ctl.DB.Where("review_id = ? AND user_id = ?", review.ID, userID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already reported this review!", nil)
	}

	report := models.ReviewReport{
		ReviewID:   review.ID,
		UserID:     userID,
		Reason:     reqData.Reason,
		ReportedAt: time.Now(),
	}

	if err := ctl.DB.Create(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already reported this review!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to report review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review reported. Our moderators will take a look.", nil)
}

func (ctl *ReviewController) isAdmin(userID uint) bool {
	var user models.User
	if err := ctl.DB.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return false
	}
	return user.Role == "ADMIN"
}
