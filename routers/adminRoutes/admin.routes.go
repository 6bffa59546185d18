package adminRoutes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	adminControllers "lms/controllers/admin"
	reviewControllers "lms/controllers/review"
	"lms/middleware"
	reviewValidators "lms/validators/review"
)

// SetupAdminRoutes sets up moderation and dashboard routes, all admin-only
func SetupAdminRoutes(app *fiber.App, db *gorm.DB) {
	reviewCtl := reviewControllers.NewReviewController(db)
	dashCtl := adminControllers.NewDashboardController(db)

	adminOnly := middleware.AdminOnly(db)

	reviewGroup := app.Group("/admin/reviews", middleware.JWTMiddleware, adminOnly)
	reviewGroup.Get("/", reviewCtl.GetModerationQueue)
	reviewGroup.Put("/:id/moderate", reviewValidators.Moderate(), reviewCtl.ModerateReview)

	dashGroup := app.Group("/admin/dashboard", middleware.JWTMiddleware, adminOnly)
	dashGroup.Get("/stats", dashCtl.Stats)
}
