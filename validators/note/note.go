package noteValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

type NoteRequest struct {
	CourseID uint   `json:"courseId"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

func CreateNote() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(NoteRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.CourseID == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}
		if strings.TrimSpace(reqData.Content) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Note content is required!", nil)
		}

		c.Locals("validatedNote", reqData)
		return c.Next()
	}
}

func UpdateNote() fiber.Handler {
	idCheck := NoteID()
	return func(c *fiber.Ctx) error {
		reqData := new(NoteRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Content) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Note content is required!", nil)
		}

		c.Locals("validatedNote", reqData)
		return idCheck(c)
	}
}

func NoteID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Note ID!", nil)
		}

		c.Locals("noteID", id)
		return c.Next()
	}
}
