package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	t.Run("should prefer fenced json block", func(t *testing.T) {
		text := "Here is a decoy {\"title\": \"wrong\"} and the real thing:\n" +
			"```json\n{\"title\": \"Bò xào rau\"}\n```\ntrailing prose"

		data, err := ExtractJSON(text)

		require.NoError(t, err)
		assert.Equal(t, "Bò xào rau", data["title"])
	})

	t.Run("should fall back to brace match", func(t *testing.T) {
		text := `The model says: {"title": "Canh chua", "steps": ["Nấu nước dùng"]} hope you like it`

		data, err := ExtractJSON(text)

		require.NoError(t, err)
		assert.Equal(t, "Canh chua", data["title"])
		assert.Equal(t, []interface{}{"Nấu nước dùng"}, data["steps"])
	})

	t.Run("should handle multiline objects", func(t *testing.T) {
		text := "{\n  \"title\": \"Phở\",\n  \"nutrition\": {\"calories\": 420}\n}"

		data, err := ExtractJSON(text)

		require.NoError(t, err)
		nutrition, ok := data["nutrition"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(420), nutrition["calories"])
	})

	t.Run("should fail when no object present", func(t *testing.T) {
		data, err := ExtractJSON("no structured data here, sorry")

		assert.Nil(t, data)
		assert.ErrorIs(t, err, ErrNoJSON)
	})

	t.Run("should fail on malformed candidate", func(t *testing.T) {
		data, err := ExtractJSON(`{"title": "broken", "steps": [}`)

		assert.Nil(t, data)
		assert.ErrorIs(t, err, ErrInvalidJSON)
	})
}
