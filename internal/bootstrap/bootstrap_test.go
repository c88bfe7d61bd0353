package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorsConfig(t *testing.T) {
	c := corsConfig([]string{"*"})
	assert.True(t, c.AllowAllOrigins)
	assert.Empty(t, c.AllowOrigins)

	c = corsConfig([]string{"http://localhost:3000"})
	assert.False(t, c.AllowAllOrigins)
	assert.Equal(t, []string{"http://localhost:3000"}, c.AllowOrigins)
}

func TestMemoryDriverServesAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SEED_ENABLED", "true")
	t.Setenv("SEED_ADMIN_EMAIL", "admin@biblioteca.local")
	t.Setenv("SEED_ADMIN_PASSWORD", "admin12345")
	t.Setenv("SEED_GRADES", "Grade 1,Grade 2")
	t.Setenv("BCRYPT_COST", "4")

	cfg, lgr, err := LoadConfigAndSetupLogger(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	ctx := context.Background()
	store, err := SetupStore(ctx, cfg, lgr)
	require.NoError(t, err)
	defer store.Close()

	deps := BuildDependencies(cfg, store, lgr)
	SeedDefaults(ctx, cfg, deps)
	router := SetupRouter(cfg, deps)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/grades", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Grade 2"`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "library_http_requests_total")
}
