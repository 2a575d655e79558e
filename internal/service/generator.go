package service

import (
	"context"
	"log"
	"strings"

	"github.com/smartchef/backend/internal/model"
)

// RecipeDraft is an in-memory recipe produced by generation, not yet
// persisted. Fallback marks drafts built locally after the model path failed.
type RecipeDraft struct {
	Title       string          `json:"title"`
	Ingredients []string        `json:"ingredients"`
	Steps       []string        `json:"steps"`
	Nutrition   model.Nutrition `json:"nutrition"`
	Fallback    bool            `json:"-"`
	Err         string          `json:"-"`
}

// RecipeGenerator orchestrates prompt building, the external model call,
// extraction and normalization.
type RecipeGenerator struct {
	model TextModel
}

func NewRecipeGenerator(textModel TextModel) *RecipeGenerator {
	return &RecipeGenerator{model: textModel}
}

// Generate produces a recipe draft for the given ingredients. It never
// fails outward: any error on the model path (network, auth, extraction,
// malformed JSON) is absorbed into a deterministic fallback draft, so the
// caller always receives a usable result with all four fields populated.
func (g *RecipeGenerator) Generate(ctx context.Context, ingredients []string) *RecipeDraft {
	cleaned := cleanIngredients(ingredients)

	if g.model == nil {
		return g.fallbackDraft(cleaned, "no generative model configured")
	}

	prompt := BuildRecipePrompt(cleaned)

	text, err := g.model.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("recipe generation failed: %v", err)
		return g.fallbackDraft(cleaned, err.Error())
	}

	data, err := ExtractJSON(text)
	if err != nil {
		log.Printf("recipe extraction failed: %v", err)
		return g.fallbackDraft(cleaned, err.Error())
	}

	return normalizeDraft(data, cleaned)
}

// normalizeDraft shapes the untyped model output into a draft, filling each
// missing top-level field with its documented default.
func normalizeDraft(data map[string]interface{}, ingredients []string) *RecipeDraft {
	draft := &RecipeDraft{
		Title:       defaultTitle(ingredients),
		Ingredients: ingredients,
		Steps:       []string{},
		Nutrition:   model.Nutrition{},
	}

	if title, ok := data["title"].(string); ok && title != "" {
		draft.Title = title
	}
	if list, ok := toStringSlice(data["ingredients"]); ok {
		draft.Ingredients = list
	}
	if list, ok := toStringSlice(data["steps"]); ok {
		draft.Steps = list
	}
	if nutrition, ok := data["nutrition"].(map[string]interface{}); ok {
		draft.Nutrition = model.Nutrition{
			Calories: toNumber(nutrition["calories"]),
			ProteinG: toNumber(nutrition["protein_g"]),
			FatG:     toNumber(nutrition["fat_g"]),
			CarbG:    toNumber(nutrition["carb_g"]),
		}
	}

	return draft
}

// fallbackDraft is the deterministic substitute recipe used when the model
// path fails. Dev environments without an API key land here on every call.
func (g *RecipeGenerator) fallbackDraft(ingredients []string, reason string) *RecipeDraft {
	draftIngredients := ingredients
	if len(draftIngredients) == 0 {
		draftIngredients = []string{"trứng", "rau", "thịt bò"}
	}

	return &RecipeDraft{
		Title:       defaultTitle(ingredients),
		Ingredients: draftIngredients,
		Steps: []string{
			"Sơ chế nguyên liệu sạch.",
			"Ướp nhẹ với muối, tiêu, dầu ăn 10 phút.",
			"Xào/nấu đến khi chín vừa.",
			"Nêm nếm lại và trình bày.",
		},
		Nutrition: model.Nutrition{
			Calories: 350,
			ProteinG: 20,
			FatG:     15,
			CarbG:    30,
		},
		Fallback: true,
		Err:      reason,
	}
}

func defaultTitle(ingredients []string) string {
	head := ingredients
	if len(head) > 3 {
		head = head[:3]
	}
	if len(head) == 0 {
		return "Món từ nguyên liệu có sẵn"
	}
	return "Món từ " + strings.Join(head, ", ")
}

func cleanIngredients(ingredients []string) []string {
	cleaned := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if trimmed := strings.TrimSpace(ing); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

func toStringSlice(value interface{}) ([]string, bool) {
	raw, ok := value.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func toNumber(value interface{}) float64 {
	n, _ := value.(float64)
	return n
}
