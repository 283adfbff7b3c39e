// internal/storage/goals.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"calee/internal/models"
)

// GetGoal returns the user's active daily goal, or defaultCalories when none
// has been set yet.
func (s *SQLiteStorage) GetGoal(ctx context.Context, userID int64, defaultCalories int) (*models.DailyGoal, error) {
	goal := &models.DailyGoal{UserID: userID}
	var updatedAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT calories, updated_at FROM daily_goals WHERE user_id = ?", userID).
		Scan(&goal.Calories, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		goal.Calories = defaultCalories
		goal.IsDefault = true
		return goal, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load goal: %w", err)
	}

	t, err := parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	goal.UpdatedAt = &t
	return goal, nil
}

// SetGoal overwrites the user's goal. Logged meals are not touched.
func (s *SQLiteStorage) SetGoal(ctx context.Context, userID int64, calories int) (*models.DailyGoal, error) {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO daily_goals (user_id, calories, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(user_id) DO UPDATE SET calories = excluded.calories, updated_at = excluded.updated_at`,
		userID, calories, formatTime(now))
	if err != nil {
		return nil, fmt.Errorf("failed to save goal: %w", err)
	}

	return &models.DailyGoal{UserID: userID, Calories: calories, UpdatedAt: &now}, nil
}
