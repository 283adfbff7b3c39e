package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meal(t MealType, entries ...MealEntry) *Meal {
	m := &Meal{MealType: t, Entries: entries}
	m.Recalculate()
	return m
}

func entry(cals, carbs, protein, fat, servings float64) MealEntry {
	return MealEntry{
		Servings: servings,
		Food:     Food{CaloriesPerServing: cals, Carbohydrates: carbs, Protein: protein, Fat: fat},
	}
}

func TestSummarizeTotalsAndProgress(t *testing.T) {
	meals := []*Meal{
		meal(Breakfast, entry(200, 40, 5, 1, 1.5)),
		meal(Dinner, entry(150, 0, 30, 3, 2), entry(50, 10, 1, 0, 1)),
	}

	s := Summarize("2024-05-01", meals, 1200)

	assert.Equal(t, "2024-05-01", s.Date)
	assert.Equal(t, 650.0, s.TotalCalories)
	assert.Equal(t, 1200, s.CalorieGoal)
	assert.Equal(t, 550.0, s.CaloriesRemaining)
	assert.Equal(t, 54.2, s.CaloriesUsedPercentage)
	assert.Equal(t, 0.542, s.Progress)
	assert.Equal(t, Macros{Carbohydrates: 70, Protein: 68.5, Fat: 7.5}, s.Macros)

	require.Len(t, s.Meals, 4)
	assert.Len(t, s.Meals[Breakfast], 1)
	assert.Empty(t, s.Meals[Lunch])
	assert.Len(t, s.Meals[Dinner], 1)
	assert.Empty(t, s.Meals[Snack])
}

func TestSummarizeOverGoalAndZeroGoal(t *testing.T) {
	meals := []*Meal{meal(Lunch, entry(900, 0, 0, 0, 1))}

	over := Summarize("2024-05-01", meals, 600)
	assert.Equal(t, 0.0, over.CaloriesRemaining)
	assert.Equal(t, 150.0, over.CaloriesUsedPercentage)
	assert.Equal(t, 1.5, over.Progress)

	zero := Summarize("2024-05-01", meals, 0)
	assert.Equal(t, 0.0, zero.CaloriesUsedPercentage)
	assert.Equal(t, 0.0, zero.Progress)
}

func TestSummarizeTotalMatchesRoundedMeals(t *testing.T) {
	meals := []*Meal{
		meal(Breakfast, entry(33.33, 0, 0, 0, 1)),
		meal(Lunch, entry(33.33, 0, 0, 0, 1)),
	}
	require.Equal(t, 33.3, meals[0].TotalCalories)

	s := Summarize("2024-05-01", meals, 1000)
	assert.Equal(t, meals[0].TotalCalories+meals[1].TotalCalories, s.TotalCalories)
	assert.Equal(t, 66.6, s.TotalCalories)
	assert.Equal(t, 933.4, s.CaloriesRemaining)
	assert.Equal(t, 6.7, s.CaloriesUsedPercentage)
}

func TestMealRecalculate(t *testing.T) {
	m := meal(Snack, entry(33.33, 0, 0, 0, 3))
	assert.Equal(t, 100.0, m.Entries[0].Calories)
	assert.Equal(t, 100.0, m.TotalCalories)
}

func TestFoodUpdateApply(t *testing.T) {
	f := Food{Name: "Rice", CaloriesPerServing: 200, Category: CategoryMain}
	name := "Brown rice"
	cat := CategorySide
	(&FoodUpdate{Name: &name, Category: &cat}).Apply(&f)

	assert.Equal(t, "Brown rice", f.Name)
	assert.Equal(t, CategorySide, f.Category)
	assert.Equal(t, 200.0, f.CaloriesPerServing)
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory(CategoryFruit))
	assert.False(t, ValidCategory("dessert"))
}
