package routes

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/AriaGT/sistema-libreria/internal/app/controllers"
	"github.com/AriaGT/sistema-libreria/internal/middleware"
)

var pathParam = regexp.MustCompile(`:(\w+)`)

// TestSwaggerDocMatchesRouter keeps docs/docs.go in step with the mounted routes
func TestSwaggerDocMatchesRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRouter(router, Controllers{
		Auth:       &controllers.AuthController{},
		User:       &controllers.UserController{},
		Grade:      &controllers.GradeController{},
		Section:    &controllers.SectionController{},
		Course:     &controllers.CourseController{},
		Book:       &controllers.BookController{},
		Enrollment: &controllers.EnrollmentController{},
		Health:     &controllers.HealthController{},
	}, middleware.NewAuthMiddleware(nil))

	raw, err := swag.ReadDoc()
	require.NoError(t, err)
	var doc struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	require.Equal(t, "/api/v1", doc.BasePath)

	mounted := map[string]bool{}
	for _, r := range router.Routes() {
		path := strings.TrimPrefix(r.Path, doc.BasePath)
		path = pathParam.ReplaceAllString(path, "{$1}")
		key := strings.ToLower(r.Method) + " " + path
		mounted[key] = true

		ops, ok := doc.Paths[path]
		if assert.True(t, ok, "route %s missing from swagger doc", key) {
			_, ok = ops[strings.ToLower(r.Method)]
			assert.True(t, ok, "operation %s missing from swagger doc", key)
		}
	}

	for path, ops := range doc.Paths {
		for method := range ops {
			assert.True(t, mounted[method+" "+path], "swagger doc lists %s %s but no route serves it", method, path)
		}
	}
}
