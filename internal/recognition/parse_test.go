package recognition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFoods(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "plain json",
			content: `{"foods":[{"name":"rice","confidence":0.9,"estimated_calories":200}]}`,
			want:    []string{"rice"},
		},
		{
			name:    "fenced block",
			content: "Here you go:\n```json\n{\"foods\":[{\"name\":\"egg\"},{\"name\":\"toast\"}]}\n```\nEnjoy!",
			want:    []string{"egg", "toast"},
		},
		{
			name:    "embedded in prose",
			content: `The image shows {"foods": [{"name": "apple", "estimated_calories": 95}]} as requested.`,
			want:    []string{"apple"},
		},
		{
			name:    "single object",
			content: `{"name":"banana","estimated_calories":105}`,
			want:    []string{"banana"},
		},
		{
			name:    "no json",
			content: "I cannot tell what this is.",
			want:    []string{},
		},
		{
			name:    "object without foods",
			content: `{"error":"blurry"}`,
			want:    []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			foods := ParseFoods(tc.content)
			names := make([]string, 0, len(foods))
			for _, f := range foods {
				names = append(names, f.Name)
			}
			assert.Equal(t, tc.want, names)
		})
	}
}

func TestParseFoodsDefaults(t *testing.T) {
	foods := ParseFoods(`{"foods":[{"estimated_macros":{"protein":"lots","fat":3}}]}`)
	require.Len(t, foods, 1)

	f := foods[0]
	assert.Equal(t, "Unknown food", f.Name)
	assert.Equal(t, 0.5, f.Confidence)
	assert.Equal(t, 0.0, f.EstimatedCalories)
	assert.Equal(t, 0.0, f.EstimatedMacros.Protein)
	assert.Equal(t, 3.0, f.EstimatedMacros.Fat)
	assert.Equal(t, 1.0, f.SuggestedServings)
}
