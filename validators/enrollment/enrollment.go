package enrollmentValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

type EnrollRequest struct {
	CourseID uint `json:"courseId"`
}

type ProgressRequest struct {
	Progress             *int `json:"progress"`
	CompletedModuleIndex *int `json:"completedModuleIndex"`
}

type EnrollmentListQuery struct {
	Status   string `query:"status"`   // completed | in-progress
	IsActive *bool  `query:"isActive"` // unset means both
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}

func Enroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EnrollRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.CourseID == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		c.Locals("validatedEnroll", reqData)
		return c.Next()
	}
}

func EnrollmentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Enrollment ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Enrollment ID!", nil)
		}

		c.Locals("enrollmentID", id)
		return c.Next()
	}
}

func CourseIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("courseId"))
		courseID, err := strconv.Atoi(idStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// UpdateProgress validates the body and the :id param. Progress is required
// and must land in [0,100]; the module index, when present, must be >= 0.
func UpdateProgress() fiber.Handler {
	idCheck := EnrollmentID()
	return func(c *fiber.Ctx) error {
		reqData := new(ProgressRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Progress == nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Progress is required!", nil)
		}
		if *reqData.Progress < 0 || *reqData.Progress > 100 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Progress must be between 0 and 100!", nil)
		}
		if reqData.CompletedModuleIndex != nil && *reqData.CompletedModuleIndex < 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module index!", nil)
		}

		c.Locals("validatedProgress", reqData)
		return idCheck(c)
	}
}

func EnrollmentList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EnrollmentListQuery)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if reqData.Status != "" && reqData.Status != "completed" && reqData.Status != "in-progress" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Status must be 'completed' or 'in-progress'!", nil)
		}
		if reqData.Page < 1 {
			reqData.Page = 1
		}
		if reqData.Limit < 1 {
			reqData.Limit = 10
		}

		c.Locals("validatedEnrollmentList", reqData)
		return c.Next()
	}
}
