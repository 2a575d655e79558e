package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartchef/backend/internal/model"
)

type fakeModel struct {
	response string
	err      error
	prompt   string
}

func (m *fakeModel) GenerateText(_ context.Context, prompt string) (string, error) {
	m.prompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func TestGenerateSuccess(t *testing.T) {
	fake := &fakeModel{response: "```json\n" + `{
		"title": "Bò xào rau muống",
		"ingredients": ["200g thịt bò", "1 bó rau muống"],
		"steps": ["Sơ chế", "Ướp thịt", "Phi tỏi", "Xào thịt", "Xào rau"],
		"nutrition": {"calories": 410, "protein_g": 28, "fat_g": 21, "carb_g": 12}
	}` + "\n```"}
	generator := NewRecipeGenerator(fake)

	draft := generator.Generate(context.Background(), []string{"thịt bò", "rau muống"})

	require.NotNil(t, draft)
	assert.False(t, draft.Fallback)
	assert.Equal(t, "Bò xào rau muống", draft.Title)
	assert.Equal(t, []string{"200g thịt bò", "1 bó rau muống"}, draft.Ingredients)
	assert.Len(t, draft.Steps, 5)
	assert.Equal(t, model.Nutrition{Calories: 410, ProteinG: 28, FatG: 21, CarbG: 12}, draft.Nutrition)
	assert.Contains(t, fake.prompt, "thịt bò")
}

func TestGenerateFillsMissingFields(t *testing.T) {
	fake := &fakeModel{response: `{"title": "Trứng chiên"}`}
	generator := NewRecipeGenerator(fake)

	draft := generator.Generate(context.Background(), []string{"trứng", "hành"})

	require.NotNil(t, draft)
	assert.False(t, draft.Fallback)
	assert.Equal(t, "Trứng chiên", draft.Title)
	assert.Equal(t, []string{"trứng", "hành"}, draft.Ingredients)
	assert.Equal(t, []string{}, draft.Steps)
	assert.Equal(t, model.Nutrition{}, draft.Nutrition)
}

func TestGenerateDefaultsTitle(t *testing.T) {
	fake := &fakeModel{response: `{"steps": ["Nấu"]}`}
	generator := NewRecipeGenerator(fake)

	t.Run("from first three ingredients", func(t *testing.T) {
		draft := generator.Generate(context.Background(), []string{"a", "b", "c", "d"})
		assert.Equal(t, "Món từ a, b, c", draft.Title)
	})

	t.Run("generic when no ingredients", func(t *testing.T) {
		draft := generator.Generate(context.Background(), nil)
		assert.Equal(t, "Món từ nguyên liệu có sẵn", draft.Title)
	})
}

func TestGenerateFallbackOnModelError(t *testing.T) {
	fake := &fakeModel{err: errors.New("model quota exceeded")}
	generator := NewRecipeGenerator(fake)

	draft := generator.Generate(context.Background(), []string{"beef", "rice"})

	require.NotNil(t, draft)
	assert.True(t, draft.Fallback)
	assert.Equal(t, "model quota exceeded", draft.Err)
	assert.Equal(t, "Món từ beef, rice", draft.Title)
	assert.Equal(t, []string{"beef", "rice"}, draft.Ingredients)
	assert.Len(t, draft.Steps, 4)
	assert.Equal(t, model.Nutrition{Calories: 350, ProteinG: 20, FatG: 15, CarbG: 30}, draft.Nutrition)
}

func TestGenerateFallbackOnBadResponse(t *testing.T) {
	t.Run("no JSON at all", func(t *testing.T) {
		generator := NewRecipeGenerator(&fakeModel{response: "I cannot help with that."})

		draft := generator.Generate(context.Background(), []string{"cá"})

		assert.True(t, draft.Fallback)
		assert.Equal(t, []string{"cá"}, draft.Ingredients)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		generator := NewRecipeGenerator(&fakeModel{response: `{"title": `})

		draft := generator.Generate(context.Background(), []string{"cá"})

		assert.True(t, draft.Fallback)
	})
}

func TestGenerateFallbackDefaultIngredients(t *testing.T) {
	generator := NewRecipeGenerator(&fakeModel{err: errors.New("unreachable")})

	draft := generator.Generate(context.Background(), []string{"  ", ""})

	assert.True(t, draft.Fallback)
	assert.Equal(t, []string{"trứng", "rau", "thịt bò"}, draft.Ingredients)
}

func TestGenerateWithoutModel(t *testing.T) {
	generator := NewRecipeGenerator(nil)

	draft := generator.Generate(context.Background(), []string{"gà"})

	require.NotNil(t, draft)
	assert.True(t, draft.Fallback)
	assert.Equal(t, []string{"gà"}, draft.Ingredients)
}

func TestGenerateTrimsIngredients(t *testing.T) {
	fake := &fakeModel{response: `{"title": "Gà kho"}`}
	generator := NewRecipeGenerator(fake)

	draft := generator.Generate(context.Background(), []string{" gà ", "", "gừng"})

	assert.Equal(t, []string{"gà", "gừng"}, draft.Ingredients)
	assert.Contains(t, fake.prompt, `"gà", "gừng"`)
}
