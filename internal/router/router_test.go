package router

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/smartchef/backend/internal/api"
	"github.com/smartchef/backend/internal/database"
	"github.com/smartchef/backend/internal/middleware"
	"github.com/smartchef/backend/internal/service"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	authService := service.NewAuthService(db, "test-secret")
	recipeService := service.NewRecipeService(db)
	generator := service.NewRecipeGenerator(nil)
	rateLimiter := middleware.NewSuggestionRateLimiter(nil)

	authHandler := api.NewAuthHandler(authService)
	recipeHandler := api.NewRecipeHandler(recipeService, generator, authService, rateLimiter)

	return SetupRouter(authHandler, recipeHandler, db)
}

func TestHealthEndpoint(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router := setupRouter(t)

	for _, route := range []struct {
		method string
		path   string
	}{
		{"POST", "/api/recipes/suggest"},
		{"GET", "/api/recipes/favorites"},
		{"POST", "/api/recipes/favorites"},
		{"DELETE", "/api/recipes/favorites"},
		{"GET", "/api/auth/me"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, 401, w.Code, "%s %s", route.method, route.path)
	}
}
