package courseValidator

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

var validate = validator.New()

type CourseRequest struct {
	Title          string  `json:"title" validate:"required,min=3,max=200"`
	Description    string  `json:"description" validate:"max=5000"`
	Category       string  `json:"category" validate:"required,max=100"`
	Level          string  `json:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Price          float64 `json:"price" validate:"gte=0"`
	InstructorName string  `json:"instructor_name" validate:"max=100"`
	ThumbnailURL   string  `json:"thumbnail_url" validate:"omitempty,url"`
	ModulesCount   int     `json:"modules_count" validate:"gte=0"`
	Status         string  `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type CourseListQuery struct {
	Category string `query:"category"`
	Level    string `query:"level"`
	Search   string `query:"search"`
	Sort     string `query:"sort"`
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Category = strings.TrimSpace(reqData.Category)

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[fieldErr.Field()] = "Invalid value for " + fieldErr.Field() + "!"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse reuses the create rules; all fields are resubmitted on update
func UpdateCourse() fiber.Handler {
	create := CreateCourse()
	return func(c *fiber.Ctx) error {
		if err := courseIDParam(c); err != nil {
			return err
		}
		return create(c)
	}
}

func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := courseIDParam(c); err != nil {
			return err
		}
		return c.Next()
	}
}

func courseIDParam(c *fiber.Ctx) error {
	courseIDStr := strings.TrimSpace(c.Params("id"))
	if courseIDStr == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
	}

	courseID, err := strconv.Atoi(courseIDStr)
	if err != nil || courseID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
	}

	c.Locals("courseID", courseID)
	return nil
}

func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseListQuery)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if reqData.Page < 1 {
			reqData.Page = 1
		}
		if reqData.Limit < 1 {
			reqData.Limit = 10
		}

		switch reqData.Sort {
		case "", "newest", "price-asc", "price-desc", "top-rated":
		default:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid sort key!", nil)
		}

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}
