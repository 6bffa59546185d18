package reviewValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

const maxCommentLength = 2000

type CreateReviewRequest struct {
	CourseID uint   `json:"courseId"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type ReportRequest struct {
	Reason string `json:"reason"`
}

type ModerateRequest struct {
	Action string `json:"action"` // approve | reject
}

type ReviewListQuery struct {
	Rating int    `query:"rating"`
	Sort   string `query:"sort"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

func CreateReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateReviewRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.CourseID == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}
		if reqData.Rating < 1 || reqData.Rating > 5 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Rating must be between 1 and 5!", nil)
		}
		if len(reqData.Comment) > maxCommentLength {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Comment is too long!", nil)
		}

		c.Locals("validatedReview", reqData)
		return c.Next()
	}
}

func UpdateReview() fiber.Handler {
	idCheck := ReviewID()
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateReviewRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Rating < 1 || reqData.Rating > 5 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Rating must be between 1 and 5!", nil)
		}
		if len(reqData.Comment) > maxCommentLength {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Comment is too long!", nil)
		}

		c.Locals("validatedReviewUpdate", reqData)
		return idCheck(c)
	}
}

func ReviewID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Review ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Review ID!", nil)
		}

		c.Locals("reviewID", id)
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

func Report() fiber.Handler {
	idCheck := ReviewID()
	return func(c *fiber.Ctx) error {
		reqData := new(ReportRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Reason = strings.TrimSpace(reqData.Reason)
		if reqData.Reason == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Report reason is required!", nil)
		}

		c.Locals("validatedReport", reqData)
		return idCheck(c)
	}
}

func Moderate() fiber.Handler {
	idCheck := ReviewID()
	return func(c *fiber.Ctx) error {
		reqData := new(ModerateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Action != "approve" && reqData.Action != "reject" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid action! Use approve or reject.", nil)
		}

		c.Locals("validatedModerate", reqData)
		return idCheck(c)
	}
}

func ReviewList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ReviewListQuery)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if reqData.Rating != 0 && (reqData.Rating < 1 || reqData.Rating > 5) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Rating filter must be between 1 and 5!", nil)
		}
		switch reqData.Sort {
		case "", "newest", "oldest", "highest-rating", "lowest-rating", "most-helpful":
		default:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid sort key!", nil)
		}
		if reqData.Page < 1 {
			reqData.Page = 1
		}
		if reqData.Limit < 1 {
			reqData.Limit = 10
		}

		c.Locals("validatedReviewList", reqData)
		return c.Next()
	}
}
