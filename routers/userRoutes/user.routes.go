package userRoutes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controllers "lms/controllers/user"
	"lms/middleware"
)

// SetupUserRoutes sets up profile management routes
func SetupUserRoutes(app *fiber.App, db *gorm.DB) {
	ctl := controllers.NewUserController(db)

	userGroup := app.Group("/user")
	userGroup.Get("/profile", middleware.JWTMiddleware, ctl.GetProfile)
	userGroup.Put("/profile", middleware.JWTMiddleware, ctl.UpdateProfile)
	userGroup.Post("/avatar", middleware.JWTMiddleware, ctl.UploadAvatar)
}
