package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrNoJSON is returned when the model response contains no
	// brace-delimited candidate at all.
	ErrNoJSON = errors.New("no JSON object found in model response")

	// ErrInvalidJSON is returned when a candidate was found but does not
	// parse as JSON.
	ErrInvalidJSON = errors.New("model response contains invalid JSON")
)

var (
	fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")
	braceJSONRe  = regexp.MustCompile(`(?s)(\{.*\})`)
)

// ExtractJSON isolates the single JSON object embedded in a free-form model
// response. Many models wrap their output in markdown, so a fenced block
// labeled json wins over any other brace-delimited substring; failing that
// the greedy first-to-last brace match across the whole text is used.
//
// The result is the untyped parsed object; shaping it into a recipe is the
// generator's job.
func ExtractJSON(text string) (map[string]interface{}, error) {
	m := fencedJSONRe.FindStringSubmatch(text)
	if m == nil {
		m = braceJSONRe.FindStringSubmatch(text)
	}
	if m == nil {
		return nil, ErrNoJSON
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(m[1]), &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	return data, nil
}
