// internal/models/meal.go
package models

import (
	"time"
)

type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// MealTypes lists meal types in the order a day is displayed.
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snack}

// DateLayout is the format of Meal.Date and every date query parameter.
const DateLayout = "2006-01-02"

type Meal struct {
	ID            int64       `json:"id"`
	UserID        int64       `json:"-"`
	Date          string      `json:"date"`
	MealType      MealType    `json:"meal_type"`
	Entries       []MealEntry `json:"entries"`
	TotalCalories float64     `json:"total_calories"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type MealEntry struct {
	ID        int64     `json:"id"`
	MealID    int64     `json:"meal_id"`
	FoodID    int64     `json:"food_id"`
	Servings  float64   `json:"servings"`
	Notes     string    `json:"notes,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	Food      Food      `json:"food"`
	Calories  float64   `json:"calories"`
	CreatedAt time.Time `json:"created_at"`
}

type MealEntryInput struct {
	FoodID   int64   `json:"food_id" validate:"required,gt=0"`
	Servings float64 `json:"servings" validate:"omitempty,gt=0"`
	Notes    string  `json:"notes" validate:"max=500"`
	ImageURL string  `json:"image_url" validate:"max=500"`
}

type MealInput struct {
	MealType MealType         `json:"meal_type" validate:"required,oneof=breakfast lunch dinner snack"`
	Date     string           `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Entries  []MealEntryInput `json:"entries" validate:"required,min=1,max=50,dive"`
}

// Macros sums carbohydrates, protein and fat in grams.
type Macros struct {
	Carbohydrates float64 `json:"carbohydrates"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
}

// Macros returns the entry's macro contribution (food macros times servings).
func (e *MealEntry) Macros() Macros {
	return Macros{
		Carbohydrates: e.Food.Carbohydrates * e.Servings,
		Protein:       e.Food.Protein * e.Servings,
		Fat:           e.Food.Fat * e.Servings,
	}
}

// Recalculate refreshes per-entry calories and the meal total from the food snapshots.
func (m *Meal) Recalculate() {
	total := 0.0
	for i := range m.Entries {
		e := &m.Entries[i]
		cals := e.Food.CaloriesPerServing * e.Servings
		e.Calories = round1(cals)
		total += cals
	}
	m.TotalCalories = round1(total)
}

// GroupByType buckets meals by meal type. Every type is present, possibly empty.
func GroupByType(meals []*Meal) map[MealType][]*Meal {
	grouped := make(map[MealType][]*Meal, len(MealTypes))
	for _, t := range MealTypes {
		grouped[t] = []*Meal{}
	}
	for _, m := range meals {
		grouped[m.MealType] = append(grouped[m.MealType], m)
	}
	return grouped
}
