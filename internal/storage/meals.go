// internal/storage/meals.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"calee/internal/models"
)

// SaveMeal stores a meal and its entries in one transaction. input.Date must
// already be resolved.
func (s *SQLiteStorage) SaveMeal(ctx context.Context, userID int64, input *models.MealInput) (*models.Meal, error) {
	now := time.Now()
	var mealID int64

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
            INSERT INTO meals (user_id, date, meal_type, created_at, updated_at)
            VALUES (?, ?, ?, ?, ?)`,
			userID, input.Date, string(input.MealType), formatTime(now), formatTime(now))
		if err != nil {
			return fmt.Errorf("failed to insert meal: %w", err)
		}
		if mealID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("failed to read meal id: %w", err)
		}

		// Insert entries
		for _, entry := range input.Entries {
			if _, err := getFood(ctx, tx, entry.FoodID); err != nil {
				if errors.Is(err, ErrNotFound) {
					return fmt.Errorf("food %d: %w", entry.FoodID, ErrUnknownFood)
				}
				return err
			}

			servings := entry.Servings
			if servings == 0 {
				servings = 1
			}
			_, err = tx.ExecContext(ctx, `
                INSERT INTO meal_entries (meal_id, food_id, servings, notes, image_url, created_at)
                VALUES (?, ?, ?, ?, ?, ?)`,
				mealID, entry.FoodID, servings, entry.Notes, entry.ImageURL, formatTime(now))
			if err != nil {
				return fmt.Errorf("failed to insert meal entry: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetMeal(ctx, userID, mealID)
}

func (s *SQLiteStorage) GetMeal(ctx context.Context, userID, mealID int64) (*models.Meal, error) {
	meals, err := s.queryMeals(ctx, "WHERE id = ? AND user_id = ?", mealID, userID)
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return nil, fmt.Errorf("meal %d: %w", mealID, ErrNotFound)
	}
	return meals[0], nil
}

// GetMeals returns a user's meals for one date in logging order.
func (s *SQLiteStorage) GetMeals(ctx context.Context, userID int64, date string) ([]*models.Meal, error) {
	return s.queryMeals(ctx, "WHERE user_id = ? AND date = ?", userID, date)
}

func (s *SQLiteStorage) queryMeals(ctx context.Context, where string, args ...any) ([]*models.Meal, error) {
	query := `
        SELECT id, user_id, date, meal_type, created_at, updated_at
        FROM meals ` + where + `
        ORDER BY created_at, id
    `

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query meals: %w", err)
	}

	meals := []*models.Meal{}
	for rows.Next() {
		meal := &models.Meal{}
		var mealType, createdAt, updatedAt string

		if err := rows.Scan(&meal.ID, &meal.UserID, &meal.Date, &mealType, &createdAt, &updatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}

		meal.MealType = models.MealType(mealType)
		if meal.CreatedAt, err = parseTime(createdAt); err != nil {
			rows.Close()
			return nil, err
		}
		if meal.UpdatedAt, err = parseTime(updatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		meals = append(meals, meal)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to iterate meals: %w", err)
	}
	// Close before loading entries: the pool holds a single connection.
	rows.Close()

	for _, meal := range meals {
		if err := s.loadEntriesForMeal(ctx, meal); err != nil {
			return nil, fmt.Errorf("failed to load entries for meal %d: %w", meal.ID, err)
		}
		meal.Recalculate()
	}

	return meals, nil
}

func (s *SQLiteStorage) loadEntriesForMeal(ctx context.Context, meal *models.Meal) error {
	query := `
        SELECT e.id, e.meal_id, e.food_id, e.servings, e.notes, e.image_url, e.created_at,
            f.id, f.name, f.brand, f.image_url, f.serving_size, f.serving_unit, f.calories_per_serving,
            f.carbohydrates, f.protein, f.fat, f.fiber, f.sugar, f.category, f.is_custom, f.user_id, f.created_at
        FROM meal_entries e
        JOIN foods f ON f.id = e.food_id
        WHERE e.meal_id = ?
        ORDER BY e.id
    `

	rows, err := s.db.QueryContext(ctx, query, meal.ID)
	if err != nil {
		return fmt.Errorf("failed to query meal entries: %w", err)
	}
	defer rows.Close()

	entries := []models.MealEntry{}
	for rows.Next() {
		var entry models.MealEntry
		var createdAt string
		var foodCreatedAt, category string
		var foodUserID sql.NullInt64
		food := &entry.Food

		err := rows.Scan(
			&entry.ID, &entry.MealID, &entry.FoodID, &entry.Servings, &entry.Notes, &entry.ImageURL, &createdAt,
			&food.ID, &food.Name, &food.Brand, &food.ImageURL, &food.ServingSize, &food.ServingUnit,
			&food.CaloriesPerServing, &food.Carbohydrates, &food.Protein, &food.Fat, &food.Fiber,
			&food.Sugar, &category, &food.IsCustom, &foodUserID, &foodCreatedAt)
		if err != nil {
			return fmt.Errorf("failed to scan meal entry: %w", err)
		}

		food.Category = models.FoodCategory(category)
		if foodUserID.Valid {
			id := foodUserID.Int64
			food.UserID = &id
		}
		if entry.CreatedAt, err = parseTime(createdAt); err != nil {
			return err
		}
		if food.CreatedAt, err = parseTime(foodCreatedAt); err != nil {
			return err
		}

		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate meal entries: %w", err)
	}

	meal.Entries = entries
	return nil
}

// DeleteMeal hard-deletes a meal owned by userID; entries cascade.
func (s *SQLiteStorage) DeleteMeal(ctx context.Context, userID, mealID int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM meals WHERE id = ? AND user_id = ?", mealID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("meal %d: %w", mealID, ErrNotFound)
	}
	return nil
}

// DeleteMealEntry removes one entry. A meal left without entries is removed
// with it, so listings never show empty meals.
func (s *SQLiteStorage) DeleteMealEntry(ctx context.Context, userID, mealID, entryID int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
            DELETE FROM meal_entries
            WHERE id = ? AND meal_id = (SELECT id FROM meals WHERE id = ? AND user_id = ?)`,
			entryID, mealID, userID)
		if err != nil {
			return fmt.Errorf("failed to delete meal entry: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("meal entry %d: %w", entryID, ErrNotFound)
		}

		var remaining int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM meal_entries WHERE meal_id = ?", mealID).Scan(&remaining); err != nil {
			return fmt.Errorf("failed to count meal entries: %w", err)
		}
		if remaining == 0 {
			if _, err := tx.ExecContext(ctx, "DELETE FROM meals WHERE id = ?", mealID); err != nil {
				return fmt.Errorf("failed to delete empty meal: %w", err)
			}
			return nil
		}

		_, err = tx.ExecContext(ctx, "UPDATE meals SET updated_at = ? WHERE id = ?", formatTime(time.Now()), mealID)
		if err != nil {
			return fmt.Errorf("failed to touch meal: %w", err)
		}
		return nil
	})
}
