package noteController

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/middleware"
	"lms/models"
	noteValidator "lms/validators/note"
)

type NoteController struct {
	DB *gorm.DB
}

func NewNoteController(db *gorm.DB) *NoteController {
	return &NoteController{DB: db}
}

// CreateNote adds a private study note; the caller must hold an active
// enrollment in the course
func (ctl *NoteController) CreateNote(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedNote").(*noteValidator.NoteRequest)

	var enrollment models.Enrollment
	if err := ctl.DB.Where("user_id = ? AND course_id = ? AND is_active = ?", userID, reqData.CourseID, true).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You must be enrolled in this course to take notes!", nil)
	}

	note := models.Note{
		UserID:   userID,
		CourseID: reqData.CourseID,
		Title:    reqData.Title,
		Content:  reqData.Content,
	}

	if err := ctl.DB.Create(&note).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create note!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Note created successfully!", note)
}

func (ctl *NoteController) GetNotes(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := ctl.DB.Where("user_id = ? AND is_deleted = ?", userID, false)

	if courseID := c.QueryInt("courseId", 0); courseID > 0 {
		db = db.Where("course_id = ?", courseID)
	}

	var notes []models.Note
	if err := db.Order("updated_at desc").Find(&notes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notes!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notes fetched successfully!", notes)
}

func (ctl *NoteController) UpdateNote(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	noteID := c.Locals("noteID").(int)
	reqData := c.Locals("validatedNote").(*noteValidator.NoteRequest)

	var note models.Note
	if err := ctl.DB.Where("id = ? AND is_deleted = ?", noteID, false).First(&note).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Note not found!", nil)
	}

	if note.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only edit your own notes!", nil)
	}

	note.Title = reqData.Title
	note.Content = reqData.Content

	if err := ctl.DB.Save(&note).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update note!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Note updated successfully!", note)
}

func (ctl *NoteController) DeleteNote(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	noteID := c.Locals("noteID").(int)

	var note models.Note
	if err := ctl.DB.Where("id = ? AND is_deleted = ?", noteID, false).First(&note).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Note not found!", nil)
	}

	if note.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only delete your own notes!", nil)
	}

	note.IsDeleted = true
	if err := ctl.DB.Save(&note).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete note!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Note deleted successfully!", nil)
}
