package authRoutes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controllers "lms/controllers/auth"
	validators "lms/validators/auth"
)

// SetupAuthRoutes sets up signup and login
func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	ctl := controllers.NewAuthController(db)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", validators.Signup(), ctl.Signup)
	authGroup.Post("/login", validators.Login(), ctl.Login)
}
