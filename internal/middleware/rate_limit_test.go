package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRateLimitMiddlewarePassThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Without a redis client the limiter must not block anything.
	limiter := NewSuggestionRateLimiter(nil)

	router := gin.New()
	router.POST("/suggest", func(c *gin.Context) {
		c.Set("user_id", uuid.New())
		c.Next()
	}, limiter.RateLimitMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"detail": "ok"})
	})

	for i := 0; i < 50; i++ {
		req := httptest.NewRequest("POST", "/suggest", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, 200, w.Code)
	}
}
