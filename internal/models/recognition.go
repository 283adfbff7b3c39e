// internal/models/recognition.go
package models

// RecognizedFood is a guess returned by the recognition service. It is not
// persisted; the client confirms it by creating a meal.
type RecognizedFood struct {
	Name              string  `json:"name"`
	Confidence        float64 `json:"confidence"`
	EstimatedCalories float64 `json:"estimated_calories"`
	EstimatedMacros   Macros  `json:"estimated_macros"`
	SuggestedServings float64 `json:"suggested_servings"`
	FoodID            int64   `json:"food_id,omitempty"` // catalog match, when known
}

type RecognitionResult struct {
	ImageURL string           `json:"image_url"`
	Foods    []RecognizedFood `json:"foods"`
}
