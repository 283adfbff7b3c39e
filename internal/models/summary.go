// internal/models/summary.go
package models

import (
	"math"
)

type DailySummary struct {
	Date                   string               `json:"date"`
	TotalCalories          float64              `json:"total_calories"`
	CalorieGoal            int                  `json:"calorie_goal"`
	CaloriesRemaining      float64              `json:"calories_remaining"`
	CaloriesUsedPercentage float64              `json:"calories_used_percentage"`
	Progress               float64              `json:"progress"`
	Macros                 Macros               `json:"macros"`
	Meals                  map[MealType][]*Meal `json:"meals"`
}

// Summarize aggregates one day's meals against a calorie goal. Nothing it
// computes is persisted; the goal only affects the ratio fields.
func Summarize(date string, meals []*Meal, goal int) *DailySummary {
	var total float64
	var macros Macros

	// Day total is the sum of the rounded meal totals.
	for _, m := range meals {
		total += m.TotalCalories
		for i := range m.Entries {
			em := m.Entries[i].Macros()
			macros.Carbohydrates += em.Carbohydrates
			macros.Protein += em.Protein
			macros.Fat += em.Fat
		}
	}

	total = round1(total)

	var progress float64
	if goal > 0 {
		progress = total / float64(goal)
	}

	return &DailySummary{
		Date:                   date,
		TotalCalories:          total,
		CalorieGoal:            goal,
		CaloriesRemaining:      round1(math.Max(0, float64(goal)-total)),
		CaloriesUsedPercentage: round1(progress * 100),
		Progress:               math.Round(progress*1000) / 1000,
		Macros: Macros{
			Carbohydrates: round1(macros.Carbohydrates),
			Protein:       round1(macros.Protein),
			Fat:           round1(macros.Fat),
		},
		Meals: GroupByType(meals),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
