package enrollmentController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	enrollmentRoutes "lms/routers/enrollmentRoutes"
)

func setup(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: bcrypt.MinCost}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	app := fiber.New()
	enrollmentRoutes.SetupEnrollmentRoutes(app, db)
	return app, db
}

func createUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()
	user := models.User{Name: "Test User", Email: email, Password: "x", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createCourse(t *testing.T, db *gorm.DB, status string) models.Course {
	t.Helper()
	course := models.Course{Title: "Test Course", Category: "Testing", Level: "BEGINNER", Status: status}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func token(t *testing.T, user models.User) string {
	t.Helper()
	tok, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return tok
}

func doJSON(t *testing.T, app *fiber.App, method, path, bearer string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestEnroll(t *testing.T) {
	app, db := setup(t)
	student := createUser(t, db, "student@example.com", "STUDENT")
	course := createCourse(t, db, "ACTIVE")
	bearer := token(t, student)

	t.Run("creates_enrollment", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/enrollments/", bearer, fiber.Map{"courseId": course.ID})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var enrollment models.Enrollment
		require.NoError(t, db.Where("user_id = ? AND course_id = ?", student.ID, course.ID).First(&enrollment).Error)
		assert.Equal(t, 0, enrollment.Progress)
		assert.True(t, enrollment.IsActive)
		assert.Nil(t, enrollment.CompletionDate)
	})

	t.Run("rejects_duplicate_while_active", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/enrollments/", bearer, fiber.Map{"courseId": course.ID})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		var count int64
		db.Model(&models.Enrollment{}).Where("user_id = ? AND course_id = ?", student.ID, course.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("missing_course_id", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/enrollments/", bearer, fiber.Map{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown_course", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/enrollments/", bearer, fiber.Map{"courseId": 9999})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("inactive_course", func(t *testing.T) {
		inactive := createCourse(t, db, "INACTIVE")
		resp := doJSON(t, app, http.MethodPost, "/enrollments/", bearer, fiber.Map{"courseId": inactive.ID})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestReenrollReactivatesSameRow(t *testing.T) {
	app, db := setup(t)
	student := createUser(t, db, "student@example.com", "STUDENT")
	course := createCourse(t, db, "ACTIVE")
	bearer := token(t, student)

	resp := doJSON(t, app, http.MethodPost, "/enrollments/", bearer, fiber.Map{"courseId": course.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var enrollment models.Enrollment
	require.NoError(t, db.Where("user_id = ?", student.ID).First(&enrollment).Error)

	// Build up some history, then leave
	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/enrollments/%d/progress", enrollment.ID), bearer,
		fiber.Map{"progress": 40, "completedModuleIndex": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	originalStart := enrollment.StartDate

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/enrollments/%d", enrollment.ID), bearer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&enrollment, enrollment.ID).Error)
	require.False(t, enrollment.IsActive)

	// Re-enrolling reactivates the same row with history intact
	resp = doJSON(t, app, http.MethodPost, "/enrollments/", bearer, fiber.Map{"courseId": course.ID})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&models.Enrollment{}).Where("user_id = ? AND course_id = ?", student.ID, course.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	var reactivated models.Enrollment
	require.NoError(t, db.Preload("CompletedModules").First(&reactivated, enrollment.ID).Error)
	assert.True(t, reactivated.IsActive)
	assert.Equal(t, 40, reactivated.Progress)
	assert.Len(t, reactivated.CompletedModules, 1)
	assert.True(t, reactivated.StartDate.After(originalStart))
}

func TestUpdateProgress(t *testing.T) {
	app, db := setup(t)
	student := createUser(t, db, "student@example.com", "STUDENT")
	other := createUser(t, db, "other@example.com", "STUDENT")
	course := createCourse(t, db, "ACTIVE")
	bearer := token(t, student)

	resp := doJSON(t, app, http.MethodPost, "/enrollments/", bearer, fiber.Map{"courseId": course.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var enrollment models.Enrollment
	require.NoError(t, db.Where("user_id = ?", student.ID).First(&enrollment).Error)
	progressPath := fmt.Sprintf("/enrollments/%d/progress", enrollment.ID)

	t.Run("completion_date_tracks_progress_100", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, progressPath, bearer, fiber.Map{"progress": 100})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		require.NoError(t, db.First(&enrollment, enrollment.ID).Error)
		require.NotNil(t, enrollment.CompletionDate)
		assert.True(t, enrollment.CertificateIssued)
		assert.NotEmpty(t, enrollment.CertificateURL)

		// Dropping below 100 clears the completion date but keeps the
		// certificate
		resp = doJSON(t, app, http.MethodPut, progressPath, bearer, fiber.Map{"progress": 50})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		require.NoError(t, db.First(&enrollment, enrollment.ID).Error)
		assert.Nil(t, enrollment.CompletionDate)
		assert.Equal(t, 50, enrollment.Progress)
		assert.True(t, enrollment.CertificateIssued)
	})

	t.Run("out_of_range_progress_changes_nothing", func(t *testing.T) {
		for _, bad := range []int{-1, 101} {
			resp := doJSON(t, app, http.MethodPut, progressPath, bearer, fiber.Map{"progress": bad})
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		}

		var after models.Enrollment
		require.NoError(t, db.First(&after, enrollment.ID).Error)
		assert.Equal(t, 50, after.Progress)
	})

	t.Run("module_completion_is_idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			resp := doJSON(t, app, http.MethodPut, progressPath, bearer,
				fiber.Map{"progress": 60, "completedModuleIndex": 3})
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		}

		var count int64
		db.Model(&models.ModuleCompletion{}).
			Where("enrollment_id = ? AND module_index = ?", enrollment.ID, 3).
			Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("refreshes_last_accessed_at", func(t *testing.T) {
		var before models.Enrollment
		require.NoError(t, db.First(&before, enrollment.ID).Error)

		stale := time.Now().Add(-time.Hour)
		db.Model(&models.Enrollment{}).Where("id = ?", enrollment.ID).UpdateColumn("last_accessed_at", stale)

		resp := doJSON(t, app, http.MethodPut, progressPath, bearer, fiber.Map{"progress": 61})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var after models.Enrollment
		require.NoError(t, db.First(&after, enrollment.ID).Error)
		assert.True(t, after.LastAccessedAt.After(stale))
	})

	t.Run("not_owner", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, progressPath, token(t, other), fiber.Map{"progress": 10})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("not_found", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/enrollments/9999/progress", bearer, fiber.Map{"progress": 10})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetEnrollment(t *testing.T) {
	app, db := setup(t)
	student := createUser(t, db, "student@example.com", "STUDENT")
	other := createUser(t, db, "other@example.com", "STUDENT")
	admin := createUser(t, db, "admin@example.com", "ADMIN")
	course := createCourse(t, db, "ACTIVE")

	resp := doJSON(t, app, http.MethodPost, "/enrollments/", token(t, student), fiber.Map{"courseId": course.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var enrollment models.Enrollment
	require.NoError(t, db.Where("user_id = ?", student.ID).First(&enrollment).Error)
	path := fmt.Sprintf("/enrollments/%d", enrollment.ID)

	t.Run("owner_can_view", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, path, token(t, student), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("admin_can_view", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, path, token(t, admin), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("stranger_gets_forbidden", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, path, token(t, other), nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("missing_gets_not_found", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/enrollments/9999", token(t, other), nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestListEnrollmentsFilters(t *testing.T) {
	app, db := setup(t)
	student := createUser(t, db, "student@example.com", "STUDENT")
	bearer := token(t, student)

	mkEnrollment := func(progress int, active bool) models.Enrollment {
		course := createCourse(t, db, "ACTIVE")
		e := models.Enrollment{
			UserID:         student.ID,
			CourseID:       course.ID,
			Progress:       progress,
			StartDate:      time.Now(),
			LastAccessedAt: time.Now(),
			IsActive:       active,
		}
		if progress == 100 {
			now := time.Now()
			e.CompletionDate = &now
		}
		require.NoError(t, db.Create(&e).Error)
		return e
	}

	mkEnrollment(100, true)
	mkEnrollment(30, true)
	mkEnrollment(60, false)

	listTotal := func(query string) int {
		resp := doJSON(t, app, http.MethodGet, "/enrollments/"+query, bearer, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Data struct {
				Enrollments []models.Enrollment `json:"enrollments"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return len(body.Data.Enrollments)
	}

	assert.Equal(t, 3, listTotal(""))
	assert.Equal(t, 1, listTotal("?status=completed"))
	assert.Equal(t, 2, listTotal("?status=in-progress"))
	assert.Equal(t, 2, listTotal("?isActive=true"))
	assert.Equal(t, 1, listTotal("?isActive=false"))
}

func TestGetForCourse(t *testing.T) {
	app, db := setup(t)
	student := createUser(t, db, "student@example.com", "STUDENT")
	course := createCourse(t, db, "ACTIVE")
	bearer := token(t, student)

	t.Run("null_when_not_enrolled", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/enrollments/course/%d", course.ID), bearer, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Data interface{} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Nil(t, body.Data)
	})

	t.Run("returns_enrollment_when_enrolled", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/enrollments/", bearer, fiber.Map{"courseId": course.ID})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/enrollments/course/%d", course.ID), bearer, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Data *models.Enrollment `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.NotNil(t, body.Data)
		assert.Equal(t, course.ID, body.Data.CourseID)
	})
}
