// internal/recognition/parse.go
package recognition

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"calee/internal/models"
)

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// ParseFoods extracts food guesses from model output. The JSON may be the
// whole text, sit in a fenced code block, or be embedded in prose. Output
// with no usable JSON yields an empty slice.
func ParseFoods(content string) []models.RecognizedFood {
	doc, ok := extractJSON(content)
	if !ok {
		return []models.RecognizedFood{}
	}

	var items []gjson.Result
	switch {
	case doc.Get("foods").IsArray():
		items = doc.Get("foods").Array()
	case doc.Get("name").Exists():
		items = []gjson.Result{doc}
	}

	foods := make([]models.RecognizedFood, 0, len(items))
	for _, item := range items {
		if !item.IsObject() {
			continue
		}
		foods = append(foods, models.RecognizedFood{
			Name:              stringOr(item.Get("name"), "Unknown food"),
			Confidence:        floatOr(item.Get("confidence"), 0.5),
			EstimatedCalories: floatOr(item.Get("estimated_calories"), 0),
			EstimatedMacros: models.Macros{
				Carbohydrates: floatOr(item.Get("estimated_macros.carbohydrates"), 0),
				Protein:       floatOr(item.Get("estimated_macros.protein"), 0),
				Fat:           floatOr(item.Get("estimated_macros.fat"), 0),
			},
			SuggestedServings: floatOr(item.Get("suggested_servings"), 1),
		})
	}
	return foods
}

func extractJSON(content string) (gjson.Result, bool) {
	content = strings.TrimSpace(content)
	candidates := []string{content}

	if m := fencedJSON.FindStringSubmatch(content); m != nil {
		candidates = append(candidates, m[1])
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start != -1 && end > start {
		candidates = append(candidates, content[start:end+1])
	}

	for _, c := range candidates {
		if gjson.Valid(c) {
			if doc := gjson.Parse(c); doc.IsObject() {
				return doc, true
			}
		}
	}
	return gjson.Result{}, false
}

func stringOr(r gjson.Result, def string) string {
	if s := strings.TrimSpace(r.String()); r.Exists() && s != "" {
		return s
	}
	return def
}

func floatOr(r gjson.Result, def float64) float64 {
	if r.Type == gjson.Number {
		return r.Float()
	}
	return def
}
