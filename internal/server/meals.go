// internal/server/meals.go
package server

import (
	"net/http"
	"time"

	"calee/internal/models"
)

type mealsByDate struct {
	Date  string                             `json:"date"`
	Meals map[models.MealType][]*models.Meal `json:"meals"`
}

// dateParam reads the date query parameter (date_str is accepted as an
// alias) and defaults to today.
func (s *Server) dateParam(r *http.Request) (string, error) {
	q := r.URL.Query()
	date := q.Get("date")
	if date == "" {
		date = q.Get("date_str")
	}
	return s.resolveDate(date)
}

func (s *Server) resolveDate(date string) (string, error) {
	if date == "" {
		return s.now().Format(models.DateLayout), nil
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return "", badRequest("invalid date %q, expected YYYY-MM-DD", date)
	}
	return date, nil
}

func (s *Server) handleListMeals(w http.ResponseWriter, r *http.Request) {
	date, err := s.dateParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	meals, err := s.storage.GetMeals(r.Context(), userFrom(r.Context()).ID, date)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", mealsByDate{Date: date, Meals: models.GroupByType(meals)})
}

func (s *Server) handleGetMeal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "mealID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	meal, err := s.storage.GetMeal(r.Context(), userFrom(r.Context()).ID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", meal)
}

func (s *Server) handleCreateMeal(w http.ResponseWriter, r *http.Request) {
	var input models.MealInput
	if err := s.decodeJSON(r, &input); err != nil {
		s.writeError(w, r, err)
		return
	}

	meal, err := s.createMeal(r, &input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "meal logged", meal)
}

// createMeal resolves the date and stores an already validated meal.
func (s *Server) createMeal(r *http.Request, input *models.MealInput) (*models.Meal, error) {
	date, err := s.resolveDate(input.Date)
	if err != nil {
		return nil, err
	}
	input.Date = date

	user := userFrom(r.Context())
	meal, err := s.storage.SaveMeal(r.Context(), user.ID, input)
	if err != nil {
		return nil, err
	}

	s.logger.Info("meal logged",
		"meal_id", meal.ID, "user_id", user.ID, "date", meal.Date,
		"meal_type", meal.MealType, "calories", meal.TotalCalories)
	return meal, nil
}

func (s *Server) handleDeleteMeal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "mealID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.storage.DeleteMeal(r.Context(), userFrom(r.Context()).ID, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "meal deleted", nil)
}

func (s *Server) handleDeleteMealEntry(w http.ResponseWriter, r *http.Request) {
	mealID, err := pathID(r, "mealID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	entryID, err := pathID(r, "entryID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.storage.DeleteMealEntry(r.Context(), userFrom(r.Context()).ID, mealID, entryID); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "meal entry deleted", nil)
}
