package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/smartchef/backend/internal/middleware"
	"github.com/smartchef/backend/internal/model"
	"github.com/smartchef/backend/internal/service"
)

// stubModel is a canned TextModel for handler tests.
type stubModel struct {
	response string
	err      error
}

func (m *stubModel) GenerateText(context.Context, string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
}

// setupTestEnv wires the full handler stack against an in-memory database.
// The rate limiter has no redis client, so it passes everything through.
func setupTestEnv(t *testing.T, textModel service.TextModel) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Recipe{},
		&model.Favorite{},
		&model.GenerationRequest{},
	))

	authService := service.NewAuthService(db, "test-secret")
	recipeService := service.NewRecipeService(db)
	generator := service.NewRecipeGenerator(textModel)
	rateLimiter := middleware.NewSuggestionRateLimiter(nil)

	router := gin.New()
	apiGroup := router.Group("/api")
	NewAuthHandler(authService).RegisterRoutes(apiGroup)
	NewRecipeHandler(recipeService, generator, authService, rateLimiter).RegisterRoutes(apiGroup)

	return &testEnv{router: router, db: db, auth: authService}
}

// createUserAndToken registers a user and logs in, returning the bearer token.
func (e *testEnv) createUserAndToken(t *testing.T, email string) (*model.User, string) {
	t.Helper()

	user, err := e.auth.Register(email, "", "secret123")
	require.NoError(t, err)

	token, err := e.auth.Login(email, "secret123")
	require.NoError(t, err)

	return user, token
}

// doJSON issues a JSON request against the test router.
func (e *testEnv) doJSON(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
