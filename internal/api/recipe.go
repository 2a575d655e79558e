package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smartchef/backend/internal/middleware"
	"github.com/smartchef/backend/internal/service"
)

type SuggestRequest struct {
	Ingredients []string `json:"ingredients"`
}

type FavoriteRequest struct {
	RecipeID string `json:"recipe_id" binding:"required"`
}

type RecipeHandler struct {
	recipeService *service.RecipeService
	generator     *service.RecipeGenerator
	authService   *service.AuthService
	rateLimiter   *middleware.RateLimiter
}

func NewRecipeHandler(recipeService *service.RecipeService, generator *service.RecipeGenerator, authService *service.AuthService, rateLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		generator:     generator,
		authService:   authService,
		rateLimiter:   rateLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	recipes.Use(middleware.AuthMiddleware(h.authService))
	{
		recipes.POST("/suggest", h.rateLimiter.RateLimitMiddleware(), h.Suggest)
		recipes.GET("/favorites", h.ListFavorites)
		recipes.POST("/favorites", h.AddFavorite)
		recipes.DELETE("/favorites", h.RemoveFavorite)
	}
}

// Suggest generates a recipe from the supplied ingredients, persists it
// together with an audit record, and returns it. Model failures are not
// visible here: the generator degrades to a fallback draft, so the response
// is 200 either way.
func (h *RecipeHandler) Suggest(c *gin.Context) {
	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "ingredients must be a list of strings"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)

	draft := h.generator.Generate(c.Request.Context(), req.Ingredients)

	recipe, err := h.recipeService.SaveGeneration(c.Request.Context(), userID, req.Ingredients, draft)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save recipe"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) ListFavorites(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	favorites, err := h.recipeService.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch favorites"})
		return
	}

	c.JSON(http.StatusOK, favorites)
}

func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "recipe_id required"})
		return
	}

	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid recipe_id"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)

	favorite, err := h.recipeService.AddFavorite(c.Request.Context(), userID, recipeID)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add favorite"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"detail": "ok", "favorite_id": favorite.ID})
}

// RemoveFavorite always answers 204: deleting a favorite that was never
// added (or sending an unknown recipe id) is not an error.
func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusNoContent)
		return
	}

	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		c.Status(http.StatusNoContent)
		return
	}

	if err := h.recipeService.RemoveFavorite(c.Request.Context(), userID, recipeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove favorite"})
		return
	}

	c.Status(http.StatusNoContent)
}
