package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AriaGT/sistema-libreria/internal/app/controllers"
	"github.com/AriaGT/sistema-libreria/internal/app/repositories/memory"
	"github.com/AriaGT/sistema-libreria/internal/app/routes"
	"github.com/AriaGT/sistema-libreria/internal/app/services"
	"github.com/AriaGT/sistema-libreria/internal/middleware"
	"github.com/AriaGT/sistema-libreria/internal/pkg/auth"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	hasher := auth.NewBcryptHasher(4)
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})

	router := gin.New()
	router.Use(middleware.Recovery(), middleware.RequestLogger())
	routes.SetupRouter(router, routes.Controllers{
		Auth:       controllers.NewAuthController(services.NewAuthService(store, hasher, jwtService), zerolog.Nop()),
		User:       controllers.NewUserController(services.NewUserService(store, hasher), zerolog.Nop()),
		Grade:      controllers.NewGradeController(services.NewGradeService(store)),
		Section:    controllers.NewSectionController(services.NewSectionService(store)),
		Course:     controllers.NewCourseController(services.NewCourseService(store)),
		Book:       controllers.NewBookController(services.NewBookService(store)),
		Enrollment: controllers.NewEnrollmentController(services.NewEnrollmentService(store)),
		Health:     controllers.NewHealthController(store),
	}, middleware.NewAuthMiddleware(jwtService))

	return &apiClient{t: t, router: router}
}

func (a *apiClient) do(method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

// create posts body and returns the id of the created row
func (a *apiClient) create(path string, body any) int64 {
	a.t.Helper()
	w, env := a.do(http.MethodPost, path, body)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var row struct {
		ID int64 `json:"id"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &row))
	return row.ID
}

func TestHealthAndPing(t *testing.T) {
	api := newAPI(t)

	w, _ := api.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	w, _ = api.do(http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestHierarchyFlow(t *testing.T) {
	api := newAPI(t)
	teacherID := api.create("/api/v1/users", map[string]any{"full_name": "Profe", "email": "profe@school.edu", "role": "teacher", "password": "secret123"})
	gradeID := api.create("/api/v1/grades", map[string]any{"name": "Grade 5"})
	sectionID := api.create(fmt.Sprintf("/api/v1/grades/%d/sections", gradeID), map[string]any{"name": "A"})
	courseID := api.create(fmt.Sprintf("/api/v1/sections/%d/courses", sectionID), map[string]any{"name": "Math", "teacher_id": teacherID})
	bookID := api.create(fmt.Sprintf("/api/v1/courses/%d/books", courseID), map[string]any{
		"title": "Algebra", "author": "Baldor", "file_url": "https://f/a.pdf", "created_by": teacherID,
	})

	w, env := api.do(http.MethodGet, fmt.Sprintf("/api/v1/courses/%d/books/%d", courseID, bookID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	var book map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &book))
	assert.Equal(t, "Algebra", book["title"])
	assert.Equal(t, float64(courseID), book["course_id"])
	assert.NotEmpty(t, book["created_at"])

	w, env = api.do(http.MethodPatch, fmt.Sprintf("/api/v1/grades/%d/sections/%d", gradeID, sectionID), map[string]any{"grade_id": gradeID + 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VAL_001", env.Error.Code)
	assert.Equal(t, "grade_id mismatch with path parameter", env.Error.Message)

	w, env = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/grades/%d", gradeID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"name":"Grade 5"}`, gradeID), string(env.Data))

	w, env = api.do(http.MethodGet, fmt.Sprintf("/api/v1/sections/%d/courses", sectionID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "RES_001", env.Error.Code)
	assert.Equal(t, "Section not found", env.Error.Message)
}

func TestErrorMapping(t *testing.T) {
	api := newAPI(t)
	api.create("/api/v1/grades", map[string]any{"name": "Grade 5"})

	w, env := api.do(http.MethodPost, "/api/v1/grades", map[string]any{"name": "Grade 5"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "RES_004", env.Error.Code)
	assert.Equal(t, "Grade name already exists", env.Error.Message)

	w, env = api.do(http.MethodGet, "/api/v1/grades/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VAL_001", env.Error.Code)

	w, env = api.do(http.MethodPost, "/api/v1/grades", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VAL_001", env.Error.Code)

	w, env = api.do(http.MethodPost, "/api/v1/grades", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", env.Error.Message)

	w, env = api.do(http.MethodPost, "/api/v1/users", map[string]any{
		"full_name": "Long", "email": "long@school.edu", "role": "student", "password": strings.Repeat("x", 73),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Password must be at most 72 bytes", env.Error.Message)
}

func TestEnrollmentAndUserDelete(t *testing.T) {
	api := newAPI(t)
	studentID := api.create("/api/v1/users", map[string]any{"full_name": "Ana", "email": "ana@school.edu", "role": "student", "password": "secret123"})
	teacherID := api.create("/api/v1/users", map[string]any{"full_name": "Profe", "email": "profe@school.edu", "role": "teacher", "password": "secret123"})
	gradeID := api.create("/api/v1/grades", map[string]any{"name": "Grade 5"})
	sectionID := api.create(fmt.Sprintf("/api/v1/grades/%d/sections", gradeID), map[string]any{"name": "A"})
	courseID := api.create(fmt.Sprintf("/api/v1/sections/%d/courses", sectionID), map[string]any{"name": "Math", "teacher_id": teacherID})

	enrollPath := fmt.Sprintf("/api/v1/sections/%d/enroll", sectionID)
	api.create(enrollPath, map[string]any{"student_id": studentID})

	w, env := api.do(http.MethodPost, enrollPath, map[string]any{"student_id": studentID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Student already enrolled in this section", env.Error.Message)

	w, env = api.do(http.MethodGet, fmt.Sprintf("/api/v1/sections/%d/students", sectionID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var students []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &students))
	require.Len(t, students, 1)
	assert.Equal(t, "ana@school.edu", students[0]["email"])
	assert.NotContains(t, students[0], "password_hash")

	w, env = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", teacherID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User is assigned as teacher to one or more courses", env.Error.Message)

	w, _ = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/sections/%d/courses/%d", sectionID, courseID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", teacherID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", studentID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, env = api.do(http.MethodGet, fmt.Sprintf("/api/v1/sections/%d/enrollments", sectionID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestLoginAndMe(t *testing.T) {
	api := newAPI(t)
	api.create("/api/v1/users", map[string]any{"full_name": "Ana", "email": "ana@school.edu", "role": "admin", "password": "secret123"})

	w, env := api.do(http.MethodPost, "/api/v1/auth/login", map[string]any{"email": "ana@school.edu", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_001", env.Error.Code)

	w, _ = api.do(http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = api.do(http.MethodPost, "/api/v1/auth/login", map[string]any{"email": "ana@school.edu", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Message string `json:"message"`
		Token   struct {
			AccessToken string `json:"access_token"`
		} `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.Equal(t, "Login successful", login.Message)
	require.NotEmpty(t, login.Token.AccessToken)

	api.token = login.Token.AccessToken
	w, env = api.do(http.MethodGet, "/api/v1/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "ana@school.edu", me["email"])

	api.token = "not.a.token"
	w, env = api.do(http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_005", env.Error.Code)
}

func TestBookPatchClearsNullableFields(t *testing.T) {
	api := newAPI(t)
	teacherID := api.create("/api/v1/users", map[string]any{"full_name": "Profe", "email": "profe@school.edu", "role": "teacher", "password": "secret123"})
	gradeID := api.create("/api/v1/grades", map[string]any{"name": "Grade 5"})
	sectionID := api.create(fmt.Sprintf("/api/v1/grades/%d/sections", gradeID), map[string]any{"name": "A"})
	courseID := api.create(fmt.Sprintf("/api/v1/sections/%d/courses", sectionID), map[string]any{"name": "Math", "teacher_id": teacherID})
	bookID := api.create(fmt.Sprintf("/api/v1/courses/%d/books", courseID), map[string]any{
		"title": "Algebra", "author": "Baldor", "file_url": "https://f/a.pdf", "created_by": teacherID,
		"description": "old", "category": "c",
	})
	path := fmt.Sprintf("/api/v1/courses/%d/books/%d", courseID, bookID)

	// absent keys leave the columns alone
	w, env := api.do(http.MethodPatch, path, `{"title":"Algebra II"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var book map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &book))
	assert.Equal(t, "Algebra II", book["title"])
	assert.Equal(t, "old", book["description"])
	assert.Equal(t, "c", book["category"])

	w, env = api.do(http.MethodPatch, path, `{"description":null,"category":null}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	book = nil
	require.NoError(t, json.Unmarshal(env.Data, &book))
	assert.Nil(t, book["description"])
	assert.Nil(t, book["category"])
	assert.Equal(t, "Algebra II", book["title"])

	w, env = api.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	book = nil
	require.NoError(t, json.Unmarshal(env.Data, &book))
	assert.Nil(t, book["description"])
	assert.Nil(t, book["category"])

	w, env = api.do(http.MethodPatch, path, map[string]any{"category": strings.Repeat("x", 151)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VAL_001", env.Error.Code)
}
