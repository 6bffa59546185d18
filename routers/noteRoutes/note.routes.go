package noteRoutes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controllers "lms/controllers/note"
	"lms/middleware"
	validators "lms/validators/note"
)

// SetupNoteRoutes sets up the student note routes
func SetupNoteRoutes(app *fiber.App, db *gorm.DB) {
	ctl := controllers.NewNoteController(db)

	group := app.Group("/notes", middleware.JWTMiddleware)

	group.Post("/", validators.CreateNote(), ctl.CreateNote)
	group.Get("/", ctl.GetNotes)
	group.Put("/:id", validators.UpdateNote(), ctl.UpdateNote)
	group.Delete("/:id", validators.NoteID(), ctl.DeleteNote)
}
