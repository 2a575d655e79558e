package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/smartchef/backend/internal/model"
)

var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeService persists generated recipes, their audit records and the
// favorite relation.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// SaveGeneration persists the draft as a Recipe and appends a
// GenerationRequest auditing the attempt. The audit row carries a
// denormalized copy of the stored recipe plus the fallback marker; it is
// written even when saving the recipe itself fails (status "failed").
func (s *RecipeService) SaveGeneration(ctx context.Context, userID uuid.UUID, input []string, draft *RecipeDraft) (*model.Recipe, error) {
	recipe := model.Recipe{
		Title:       draft.Title,
		Ingredients: model.JSONBStringArray(draft.Ingredients),
		Steps:       model.JSONBStringArray(draft.Steps),
		Nutrition:   draft.Nutrition,
	}

	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		s.recordGeneration(ctx, userID, input, draftOutput(draft), model.GenerationStatusFailed)
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	status := model.GenerationStatusOK
	if draft.Fallback {
		status = model.GenerationStatusFallback
	}
	s.recordGeneration(ctx, userID, input, recipeOutput(&recipe, draft), status)

	return &recipe, nil
}

// recordGeneration appends the audit row. Audit failures are logged, not
// surfaced; the suggestion response does not depend on them.
func (s *RecipeService) recordGeneration(ctx context.Context, userID uuid.UUID, input []string, output model.JSONBMap, status string) {
	req := model.GenerationRequest{
		UserID:           &userID,
		InputIngredients: model.JSONBStringArray(input),
		Output:           output,
		Status:           status,
	}
	if err := s.db.WithContext(ctx).Create(&req).Error; err != nil {
		log.Printf("failed to record generation request: %v", err)
	}
}

func recipeOutput(recipe *model.Recipe, draft *RecipeDraft) model.JSONBMap {
	out := toJSONMap(recipe)
	if draft.Fallback {
		out["_fallback"] = true
		out["_error"] = draft.Err
	}
	return out
}

func draftOutput(draft *RecipeDraft) model.JSONBMap {
	out := toJSONMap(draft)
	if draft.Fallback {
		out["_fallback"] = true
		out["_error"] = draft.Err
	}
	return out
}

func toJSONMap(v interface{}) model.JSONBMap {
	data, err := json.Marshal(v)
	if err != nil {
		return model.JSONBMap{}
	}
	var out model.JSONBMap
	if err := json.Unmarshal(data, &out); err != nil {
		return model.JSONBMap{}
	}
	return out
}

// ListFavorites returns the caller's favorites, newest first, with the
// recipe embedded.
func (s *RecipeService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error) {
	var favorites []model.Favorite
	err := s.db.WithContext(ctx).
		Preload("Recipe").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

// AddFavorite saves a recipe for the caller. Adding an already-favorited
// recipe returns the existing row; the unique constraint on
// (user_id, recipe_id) collapses concurrent adds to one record.
func (s *RecipeService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) (*model.Favorite, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	var favorite model.Favorite
	err := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Where(model.Favorite{UserID: userID, RecipeID: recipeID}).
		FirstOrCreate(&favorite).Error
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

// RemoveFavorite deletes any matching favorite. Deleting a favorite that
// does not exist is a no-op.
func (s *RecipeService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&model.Favorite{}).Error
}
