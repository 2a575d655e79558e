package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/smartchef/backend/internal/middleware"
	"github.com/smartchef/backend/internal/service"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/me", middleware.AuthMiddleware(h.authService), h.Me)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, fieldErrors(err))
		return
	}

	if _, err := h.authService.Register(req.Email, req.Username, req.Password); err != nil {
		if errors.Is(err, service.ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{"email": "already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"detail": "registered"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, fieldErrors(err))
		return
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": token})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	user, err := h.authService.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// fieldErrors shapes a binding error into per-field messages, matching the
// response format the mobile client parses.
func fieldErrors(err error) gin.H {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return gin.H{"detail": err.Error()}
	}

	out := gin.H{}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out[fieldName(fe)] = "this field is required"
		case "email":
			out[fieldName(fe)] = "must be a valid email address"
		case "min":
			out[fieldName(fe)] = "must be at least " + fe.Param() + " characters"
		default:
			out[fieldName(fe)] = "invalid value"
		}
	}
	return out
}

func fieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "Email":
		return "email"
	case "Username":
		return "username"
	case "Password":
		return "password"
	default:
		return fe.Field()
	}
}
