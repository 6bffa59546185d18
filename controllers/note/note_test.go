package noteController_test

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
	noteRoutes "lms/routers/noteRoutes"
)

func setup(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: bcrypt.MinCost}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	app := fiber.New()
	noteRoutes.SetupNoteRoutes(app, db)
	return app, db
}

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Name: "Test User", Email: email, Password: "x", Role: "STUDENT"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func enroll(t *testing.T, db *gorm.DB, userID, courseID uint) {
	t.Helper()
	require.NoError(t, db.Create(&models.Enrollment{
		UserID: userID, CourseID: courseID,
		StartDate: time.Now(), LastAccessedAt: time.Now(), IsActive: true,
	}).Error)
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

func TestCreateNote(t *testing.T) {
	app, db := setup(t)

	course := models.Course{Title: "Course", Category: "Testing", Status: "ACTIVE"}
	require.NoError(t, db.Create(&course).Error)

	enrolled := createUser(t, db, "enrolled@example.com")
	enroll(t, db, enrolled.ID, course.ID)
	stranger := createUser(t, db, "stranger@example.com")

	t.Run("requires_active_enrollment", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/notes/", token(t, stranger), fiber.Map{
			"courseId": course.ID, "title": "T", "content": "C",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("empty_content_rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/notes/", token(t, enrolled), fiber.Map{
			"courseId": course.ID, "title": "T", "content": "   ",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("created_for_enrolled_student", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/notes/", token(t, enrolled), fiber.Map{
			"courseId": course.ID, "title": "Chapter 1", "content": "Remember this",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var count int64
		require.NoError(t, db.Model(&models.Note{}).Where("user_id = ?", enrolled.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestNotesArePrivate(t *testing.T) {
	app, db := setup(t)

	course := models.Course{Title: "Course", Category: "Testing", Status: "ACTIVE"}
	require.NoError(t, db.Create(&course).Error)

	owner := createUser(t, db, "owner@example.com")
	other := createUser(t, db, "other@example.com")
	enroll(t, db, owner.ID, course.ID)
	enroll(t, db, other.ID, course.ID)

	note := models.Note{UserID: owner.ID, CourseID: course.ID, Title: "Mine", Content: "Private"}
	require.NoError(t, db.Create(&note).Error)

	t.Run("listing_only_shows_own_notes", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/notes/", token(t, other), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Data []models.Note `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Empty(t, body.Data)
	})

	t.Run("update_by_non_owner_forbidden", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/notes/%d", note.ID), token(t, other), fiber.Map{
			"title": "Hijacked", "content": "Nope",
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("delete_by_non_owner_forbidden", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/notes/%d", note.ID), token(t, other), nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("owner_can_update_and_delete", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/notes/%d", note.ID), token(t, owner), fiber.Map{
			"title": "Mine v2", "content": "Still private",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		require.NoError(t, db.First(&note, note.ID).Error)
		assert.Equal(t, "Mine v2", note.Title)

		resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/notes/%d", note.ID), token(t, owner), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		require.NoError(t, db.First(&note, note.ID).Error)
		assert.True(t, note.IsDeleted)
	})

	t.Run("deleted_note_missing", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/notes/%d", note.ID), token(t, owner), nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetNotesFiltersByCourse(t *testing.T) {
	app, db := setup(t)

	courseA := models.Course{Title: "A", Category: "Testing", Status: "ACTIVE"}
	courseB := models.Course{Title: "B", Category: "Testing", Status: "ACTIVE"}
	require.NoError(t, db.Create(&courseA).Error)
	require.NoError(t, db.Create(&courseB).Error)

	user := createUser(t, db, "user@example.com")
	enroll(t, db, user.ID, courseA.ID)
	enroll(t, db, user.ID, courseB.ID)

	require.NoError(t, db.Create(&models.Note{UserID: user.ID, CourseID: courseA.ID, Content: "a1"}).Error)
	require.NoError(t, db.Create(&models.Note{UserID: user.ID, CourseID: courseA.ID, Content: "a2"}).Error)
	require.NoError(t, db.Create(&models.Note{UserID: user.ID, CourseID: courseB.ID, Content: "b1"}).Error)

	list := func(query string) []models.Note {
		resp := doJSON(t, app, http.MethodGet, "/notes/"+query, token(t, user), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Data []models.Note `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return body.Data
	}

	assert.Len(t, list(""), 3)
	assert.Len(t, list(fmt.Sprintf("?courseId=%d", courseA.ID)), 2)
	assert.Len(t, list(fmt.Sprintf("?courseId=%d", courseB.ID)), 1)
}
