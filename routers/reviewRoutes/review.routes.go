package reviewRoutes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controllers "lms/controllers/review"
	"lms/middleware"
	validators "lms/validators/review"
)

// SetupReviewRoutes sets up review creation, listing, voting and reporting
func SetupReviewRoutes(app *fiber.App, db *gorm.DB) {
	ctl := controllers.NewReviewController(db)

	group := app.Group("/reviews")

	// Public listing with stats
	group.Get("/course/:courseId", validators.CourseIDParam(), validators.ReviewList(), ctl.GetCourseReviews)

	group.Post("/", middleware.JWTMiddleware, validators.CreateReview(), ctl.CreateReview)
	group.Put("/:id", middleware.JWTMiddleware, validators.UpdateReview(), ctl.UpdateReview)
	group.Delete("/:id", middleware.JWTMiddleware, validators.ReviewID(), ctl.DeleteReview)
	group.Post("/:id/helpful", middleware.JWTMiddleware, validators.ReviewID(), ctl.MarkHelpful)
	group.Post("/:id/report", middleware.JWTMiddleware, validators.Report(), ctl.ReportReview)
}
