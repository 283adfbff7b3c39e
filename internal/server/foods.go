// internal/server/foods.go
package server

import (
	"net/http"
	"strconv"
	"strings"

	"calee/internal/models"
)

const (
	defaultFoodLimit = 100
	maxFoodLimit     = 200
)

type createFoodRequest struct {
	Name               string              `json:"name" validate:"required,notblank,max=100"`
	Brand              string              `json:"brand" validate:"max=100"`
	ImageURL           string              `json:"image_url" validate:"max=500"`
	ServingSize        float64             `json:"serving_size" validate:"omitempty,gt=0"`
	ServingUnit        string              `json:"serving_unit" validate:"max=20"`
	CaloriesPerServing *float64            `json:"calories_per_serving" validate:"required,gte=0"`
	Carbohydrates      float64             `json:"carbohydrates" validate:"gte=0"`
	Protein            float64             `json:"protein" validate:"gte=0"`
	Fat                float64             `json:"fat" validate:"gte=0"`
	Fiber              float64             `json:"fiber" validate:"gte=0"`
	Sugar              float64             `json:"sugar" validate:"gte=0"`
	Category           models.FoodCategory `json:"category" validate:"omitempty,food_category"`
}

type foodListItem struct {
	ID                 int64               `json:"id"`
	Name               string              `json:"name"`
	Brand              string              `json:"brand,omitempty"`
	ImageURL           string              `json:"image_url,omitempty"`
	CaloriesPerServing float64             `json:"calories_per_serving"`
	Category           models.FoodCategory `json:"category"`
	IsCustom           bool                `json:"is_custom"`
}

type foodList struct {
	Foods  []foodListItem `json:"foods"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

func parseFoodFilter(r *http.Request) (models.FoodFilter, error) {
	q := r.URL.Query()
	filter := models.FoodFilter{
		Search:   strings.TrimSpace(q.Get("search")),
		Category: models.FoodCategory(q.Get("category")),
		Limit:    defaultFoodLimit,
	}

	if filter.Category != "" && !models.ValidCategory(filter.Category) {
		return filter, badRequest("unknown category %q", filter.Category)
	}
	if v := q.Get("is_custom"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return filter, badRequest("invalid is_custom %q", v)
		}
		filter.IsCustom = &b
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxFoodLimit {
			return filter, badRequest("limit must be between 1 and %d", maxFoodLimit)
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filter, badRequest("offset must be >= 0")
		}
		filter.Offset = n
	}
	return filter, nil
}

func (s *Server) handleListFoods(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFoodFilter(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	foods, total, err := s.storage.ListFoods(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	items := make([]foodListItem, 0, len(foods))
	for _, f := range foods {
		items = append(items, foodListItem{
			ID:                 f.ID,
			Name:               f.Name,
			Brand:              f.Brand,
			ImageURL:           f.ImageURL,
			CaloriesPerServing: f.CaloriesPerServing,
			Category:           f.Category,
			IsCustom:           f.IsCustom,
		})
	}

	writeData(w, http.StatusOK, "", foodList{Foods: items, Total: total, Limit: filter.Limit, Offset: filter.Offset})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, "", models.Categories)
}

func (s *Server) handleGetFood(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "foodID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	food, err := s.storage.GetFood(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", food)
}

func (s *Server) handleCreateFood(w http.ResponseWriter, r *http.Request) {
	var req createFoodRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user := userFrom(r.Context())
	food := &models.Food{
		Name:               strings.TrimSpace(req.Name),
		Brand:              req.Brand,
		ImageURL:           req.ImageURL,
		ServingSize:        req.ServingSize,
		ServingUnit:        req.ServingUnit,
		CaloriesPerServing: *req.CaloriesPerServing,
		Carbohydrates:      req.Carbohydrates,
		Protein:            req.Protein,
		Fat:                req.Fat,
		Fiber:              req.Fiber,
		Sugar:              req.Sugar,
		Category:           req.Category,
		IsCustom:           true,
		UserID:             &user.ID,
	}

	if err := s.storage.CreateFood(r.Context(), food); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info("food created", "food_id", food.ID, "name", food.Name, "user_id", user.ID)
	writeData(w, http.StatusCreated, "food created", food)
}

func (s *Server) handleUpdateFood(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "foodID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var update models.FoodUpdate
	if err := s.decodeJSON(r, &update); err != nil {
		s.writeError(w, r, err)
		return
	}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		update.Name = &name
	}

	food, err := s.storage.UpdateFood(r.Context(), id, &update)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "food updated", food)
}

func (s *Server) handleDeleteFood(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "foodID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.storage.DeleteFood(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "food deleted", nil)
}
