// internal/models/food.go
package models

import (
	"time"
)

type FoodCategory string

const (
	CategoryMain      FoodCategory = "main"
	CategorySide      FoodCategory = "side"
	CategoryDrink     FoodCategory = "drink"
	CategorySnack     FoodCategory = "snack"
	CategoryFruit     FoodCategory = "fruit"
	CategoryVegetable FoodCategory = "vegetable"
	CategoryOther     FoodCategory = "other"
)

// Categories is the fixed catalog taxonomy in display order.
var Categories = []CategoryOption{
	{Value: CategoryMain, Label: "Main"},
	{Value: CategorySide, Label: "Side dish"},
	{Value: CategoryDrink, Label: "Drink"},
	{Value: CategorySnack, Label: "Snack"},
	{Value: CategoryFruit, Label: "Fruit"},
	{Value: CategoryVegetable, Label: "Vegetable"},
	{Value: CategoryOther, Label: "Other"},
}

type CategoryOption struct {
	Value FoodCategory `json:"value"`
	Label string       `json:"label"`
}

type Food struct {
	ID                 int64        `json:"id"`
	Name               string       `json:"name"`
	Brand              string       `json:"brand,omitempty"`
	ImageURL           string       `json:"image_url,omitempty"`
	ServingSize        float64      `json:"serving_size"`
	ServingUnit        string       `json:"serving_unit"`
	CaloriesPerServing float64      `json:"calories_per_serving"`
	Carbohydrates      float64      `json:"carbohydrates"`
	Protein            float64      `json:"protein"`
	Fat                float64      `json:"fat"`
	Fiber              float64      `json:"fiber"`
	Sugar              float64      `json:"sugar"`
	Category           FoodCategory `json:"category"`
	IsCustom           bool         `json:"is_custom"`
	UserID             *int64       `json:"user_id,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
}

// FoodFilter narrows a catalog listing. Zero values mean "no filter".
type FoodFilter struct {
	Search   string
	Category FoodCategory
	IsCustom *bool
	Limit    int
	Offset   int
}

// FoodUpdate carries a partial update; nil fields are left untouched.
type FoodUpdate struct {
	Name               *string       `json:"name" validate:"omitempty,notblank,max=100"`
	Brand              *string       `json:"brand" validate:"omitempty,max=100"`
	ImageURL           *string       `json:"image_url" validate:"omitempty,max=500"`
	ServingSize        *float64      `json:"serving_size" validate:"omitempty,gt=0"`
	ServingUnit        *string       `json:"serving_unit" validate:"omitempty,max=20"`
	CaloriesPerServing *float64      `json:"calories_per_serving" validate:"omitempty,gte=0"`
	Carbohydrates      *float64      `json:"carbohydrates" validate:"omitempty,gte=0"`
	Protein            *float64      `json:"protein" validate:"omitempty,gte=0"`
	Fat                *float64      `json:"fat" validate:"omitempty,gte=0"`
	Fiber              *float64      `json:"fiber" validate:"omitempty,gte=0"`
	Sugar              *float64      `json:"sugar" validate:"omitempty,gte=0"`
	Category           *FoodCategory `json:"category" validate:"omitempty,food_category"`
}

// Apply copies the set fields onto f.
func (u *FoodUpdate) Apply(f *Food) {
	if u.Name != nil {
		f.Name = *u.Name
	}
	if u.Brand != nil {
		f.Brand = *u.Brand
	}
	if u.ImageURL != nil {
		f.ImageURL = *u.ImageURL
	}
	if u.ServingSize != nil {
		f.ServingSize = *u.ServingSize
	}
	if u.ServingUnit != nil {
		f.ServingUnit = *u.ServingUnit
	}
	if u.CaloriesPerServing != nil {
		f.CaloriesPerServing = *u.CaloriesPerServing
	}
	if u.Carbohydrates != nil {
		f.Carbohydrates = *u.Carbohydrates
	}
	if u.Protein != nil {
		f.Protein = *u.Protein
	}
	if u.Fat != nil {
		f.Fat = *u.Fat
	}
	if u.Fiber != nil {
		f.Fiber = *u.Fiber
	}
	if u.Sugar != nil {
		f.Sugar = *u.Sugar
	}
	if u.Category != nil {
		f.Category = *u.Category
	}
}

func ValidCategory(c FoodCategory) bool {
	for _, opt := range Categories {
		if opt.Value == c {
			return true
		}
	}
	return false
}
