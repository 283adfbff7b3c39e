// internal/storage/foods.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"calee/internal/models"
)

const foodColumns = `id, name, brand, image_url, serving_size, serving_unit, calories_per_serving,
        carbohydrates, protein, fat, fiber, sugar, category, is_custom, user_id, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFood(row rowScanner) (*models.Food, error) {
	food := &models.Food{}
	var category, createdAt string
	var userID sql.NullInt64

	err := row.Scan(
		&food.ID, &food.Name, &food.Brand, &food.ImageURL, &food.ServingSize, &food.ServingUnit,
		&food.CaloriesPerServing, &food.Carbohydrates, &food.Protein, &food.Fat, &food.Fiber,
		&food.Sugar, &category, &food.IsCustom, &userID, &createdAt)
	if err != nil {
		return nil, err
	}

	food.Category = models.FoodCategory(category)
	if userID.Valid {
		id := userID.Int64
		food.UserID = &id
	}
	if food.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}

	return food, nil
}

// escapeLike escapes LIKE wildcards so the search term matches literally.
func escapeLike(v string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(v)
}

// ListFoods returns one page of the catalog ordered by name, plus the total
// number of foods matching the filter.
func (s *SQLiteStorage) ListFoods(ctx context.Context, filter models.FoodFilter) ([]*models.Food, int, error) {
	where := " WHERE 1=1"
	args := []any{}

	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		where += ` AND (name LIKE ? ESCAPE '\' OR brand LIKE ? ESCAPE '\')`
		args = append(args, pattern, pattern)
	}
	if filter.Category != "" {
		where += " AND category = ?"
		args = append(args, string(filter.Category))
	}
	if filter.IsCustom != nil {
		where += " AND is_custom = ?"
		args = append(args, *filter.IsCustom)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM foods"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count foods: %w", err)
	}

	query := "SELECT " + foodColumns + " FROM foods" + where + " ORDER BY name, id LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query foods: %w", err)
	}
	defer rows.Close()

	foods := []*models.Food{}
	for rows.Next() {
		food, err := scanFood(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan food: %w", err)
		}
		foods = append(foods, food)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate foods: %w", err)
	}

	return foods, total, nil
}

func (s *SQLiteStorage) GetFood(ctx context.Context, id int64) (*models.Food, error) {
	return getFood(ctx, s.db, id)
}

func getFood(ctx context.Context, q querier, id int64) (*models.Food, error) {
	row := q.QueryRowContext(ctx, "SELECT "+foodColumns+" FROM foods WHERE id = ?", id)
	food, err := scanFood(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("food %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load food %d: %w", id, err)
	}
	return food, nil
}

// FindFoodByName returns the catalog food whose name best matches name: an
// exact case-insensitive match first, otherwise the shortest name containing it.
func (s *SQLiteStorage) FindFoodByName(ctx context.Context, name string) (*models.Food, error) {
	query := "SELECT " + foodColumns + ` FROM foods
        WHERE name LIKE ? ESCAPE '\'
        ORDER BY (LOWER(name) = LOWER(?)) DESC, LENGTH(name), id
        LIMIT 1`

	row := s.db.QueryRowContext(ctx, query, "%"+escapeLike(name)+"%", name)
	food, err := scanFood(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("food %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find food %q: %w", name, err)
	}
	return food, nil
}

func (s *SQLiteStorage) CreateFood(ctx context.Context, food *models.Food) error {
	return insertFood(ctx, s.db, food)
}

func insertFood(ctx context.Context, q querier, food *models.Food) error {
	if food.CreatedAt.IsZero() {
		food.CreatedAt = time.Now()
	}
	if food.Category == "" {
		food.Category = models.CategoryOther
	}
	if food.ServingSize == 0 {
		food.ServingSize = 100
	}
	if food.ServingUnit == "" {
		food.ServingUnit = "g"
	}

	var userID sql.NullInt64
	if food.UserID != nil {
		userID = sql.NullInt64{Int64: *food.UserID, Valid: true}
	}

	res, err := q.ExecContext(ctx, `
        INSERT INTO foods (name, brand, image_url, serving_size, serving_unit, calories_per_serving,
            carbohydrates, protein, fat, fiber, sugar, category, is_custom, user_id, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		food.Name, food.Brand, food.ImageURL, food.ServingSize, food.ServingUnit,
		food.CaloriesPerServing, food.Carbohydrates, food.Protein, food.Fat, food.Fiber,
		food.Sugar, string(food.Category), food.IsCustom, userID, formatTime(food.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert food: %w", err)
	}

	if food.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to read food id: %w", err)
	}
	return nil
}

func foodInUse(ctx context.Context, q querier, id int64) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM meal_entries WHERE food_id = ?", id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to count food references: %w", err)
	}
	return n > 0, nil
}

// UpdateFood applies a partial update. Foods already referenced by a meal
// entry are immutable and yield ErrFoodInUse.
func (s *SQLiteStorage) UpdateFood(ctx context.Context, id int64, update *models.FoodUpdate) (*models.Food, error) {
	var food *models.Food
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		if food, err = getFood(ctx, tx, id); err != nil {
			return err
		}
		inUse, err := foodInUse(ctx, tx, id)
		if err != nil {
			return err
		}
		if inUse {
			return fmt.Errorf("food %d: %w", id, ErrFoodInUse)
		}

		update.Apply(food)

		_, err = tx.ExecContext(ctx, `
            UPDATE foods SET name = ?, brand = ?, image_url = ?, serving_size = ?, serving_unit = ?,
                calories_per_serving = ?, carbohydrates = ?, protein = ?, fat = ?, fiber = ?,
                sugar = ?, category = ?
            WHERE id = ?`,
			food.Name, food.Brand, food.ImageURL, food.ServingSize, food.ServingUnit,
			food.CaloriesPerServing, food.Carbohydrates, food.Protein, food.Fat, food.Fiber,
			food.Sugar, string(food.Category), id)
		if err != nil {
			return fmt.Errorf("failed to update food: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return food, nil
}

func (s *SQLiteStorage) DeleteFood(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := getFood(ctx, tx, id); err != nil {
			return err
		}
		inUse, err := foodInUse(ctx, tx, id)
		if err != nil {
			return err
		}
		if inUse {
			return fmt.Errorf("food %d: %w", id, ErrFoodInUse)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM foods WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to delete food: %w", err)
		}
		return nil
	})
}

// SeedFoods inserts the given catalog when the foods table is empty and
// reports how many rows were added.
func (s *SQLiteStorage) SeedFoods(ctx context.Context, foods []models.Food) (int, error) {
	inserted := 0
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM foods").Scan(&n); err != nil {
			return fmt.Errorf("failed to count foods: %w", err)
		}
		if n > 0 {
			return nil
		}

		for i := range foods {
			food := foods[i]
			if err := insertFood(ctx, tx, &food); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
