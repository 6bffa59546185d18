package courseRoutes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"
)

// SetupCourseRoutes sets up the public catalog and the admin-only writes
func SetupCourseRoutes(app *fiber.App, db *gorm.DB) {
	ctl := controllers.NewCourseController(db)

	courseGroup := app.Group("/course")

	// Public catalog
	courseGroup.Get("/list", validators.CourseList(), ctl.ListCourses)
	courseGroup.Get("/:id", validators.CourseID(), ctl.GetCourseDetails)

	// Catalog writes are admin-only
	adminOnly := middleware.AdminOnly(db)
	courseGroup.Post("/", middleware.JWTMiddleware, adminOnly, validators.CreateCourse(), ctl.CreateCourse)
	courseGroup.Put("/:id", middleware.JWTMiddleware, adminOnly, validators.UpdateCourse(), ctl.UpdateCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, adminOnly, validators.CourseID(), ctl.DeleteCourse)
}
