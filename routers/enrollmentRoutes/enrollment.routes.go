package enrollmentRoutes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controllers "lms/controllers/enrollment"
	"lms/middleware"
	validators "lms/validators/enrollment"
)

// SetupEnrollmentRoutes sets up the enrollment lifecycle routes
func SetupEnrollmentRoutes(app *fiber.App, db *gorm.DB) {
	ctl := controllers.NewEnrollmentController(db)

	group := app.Group("/enrollments", middleware.JWTMiddleware)

	group.Post("/", validators.Enroll(), ctl.Enroll)
	group.Get("/", validators.EnrollmentList(), ctl.GetEnrollments)
	group.Get("/course/:courseId", validators.CourseIDParam(), ctl.GetForCourse)
	group.Get("/:id", validators.EnrollmentID(), ctl.GetEnrollment)
	group.Put("/:id/progress", validators.UpdateProgress(), ctl.UpdateProgress)
	group.Delete("/:id", validators.EnrollmentID(), ctl.Unenroll)
}
