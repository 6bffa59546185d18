package reviewController

import (
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/models"
	reviewValidator "lms/validators/review"
)

// ModerateReview applies an approve/reject decision. Approving wipes the
// report list; rejecting keeps it for the audit trail. Admin-gated by the
// router.
func (ctl *ReviewController) ModerateReview(c *fiber.Ctx) error {
	reviewID := c.Locals("reviewID").(int)
	reqData := c.Locals("validatedModerate").(*reviewValidator.ModerateRequest)

	var review models.Review
	if err := ctl.DB.Where("id = ? AND is_deleted = ?", reviewID, false).First(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}

	tx := ctl.DB.Begin()

	if reqData.Action == "approve" {
		review.IsApproved = true
		// Hard delete so the same user may report again after a re-approval
		if err := tx.Unscoped().Where("review_id = ?", review.ID).Delete(&models.ReviewReport{}).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to moderate review!", nil)
		}
	} else {
		review.IsApproved = false
	}

	if err := tx.Save(&review).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to moderate review!", nil)
	}

	tx.Commit()

	ctl.DB.Preload("Reports").First(&review, review.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review moderated successfully!", review)
}

// GetModerationQueue lists reviews needing attention:
// status=reported (default) or status=rejected. Admin-gated by the router.
func (ctl *ReviewController) GetModerationQueue(c *fiber.Ctx) error {
	status := c.Query("status", "reported")
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := ctl.DB.Model(&models.Review{}).Where("reviews.is_deleted = ?", false)

	switch status {
	case "reported":
		db = db.Where("EXISTS (SELECT 1 FROM review_reports WHERE review_reports.review_id = reviews.id AND review_reports.deleted_at IS NULL)")
	case "rejected":
		db = db.Where("is_approved = ?", false)
	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Status must be 'reported' or 'rejected'!", nil)
	}

	var total int64
	db.Count(&total)

	var reviews []models.Review
	if err := db.Preload("Reports").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched successfully!", fiber.Map{
		"reviews": reviews,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
