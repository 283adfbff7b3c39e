// internal/models/goal.go
package models

import (
	"time"
)

const (
	MinCalorieGoal = 500
	MaxCalorieGoal = 5000
)

type DailyGoal struct {
	UserID    int64      `json:"-"`
	Calories  int        `json:"daily_calorie_goal"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"` // nil for the configured default
	IsDefault bool       `json:"is_default"`
}

type GoalUpdate struct {
	DailyCalorieGoal int `json:"daily_calorie_goal" validate:"required,min=500,max=5000"`
}

type User struct {
	ID        int64     `json:"id"`
	DeviceID  string    `json:"device_id"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
