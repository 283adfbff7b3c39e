// internal/server/dashboard.go
package server

import (
	"context"
	"net/http"

	"calee/internal/models"
)

func (s *Server) summary(ctx context.Context, userID int64, date string) (*models.DailySummary, error) {
	goal, err := s.storage.GetGoal(ctx, userID, s.config.DailyCalorieGoal)
	if err != nil {
		return nil, err
	}
	meals, err := s.storage.GetMeals(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	return models.Summarize(date, meals, goal.Calories), nil
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	date, err := s.dateParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	summary, err := s.summary(r.Context(), userFrom(r.Context()).ID, date)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", summary)
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := s.storage.GetGoal(r.Context(), userFrom(r.Context()).ID, s.config.DailyCalorieGoal)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", goal)
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req models.GoalUpdate
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user := userFrom(r.Context())
	goal, err := s.storage.SetGoal(r.Context(), user.ID, req.DailyCalorieGoal)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info("goal updated", "user_id", user.ID, "calories", goal.Calories)
	writeData(w, http.StatusOK, "goal updated", goal)
}
