// internal/server/tools.go
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"

	"calee/internal/models"
)

type GetMealsParams struct {
	Date string `json:"date,omitempty" description:"Date to list meals for (YYYY-MM-DD, defaults to today)"`
}

type DailySummaryParams struct {
	Date string `json:"date,omitempty" description:"Date to summarize (YYYY-MM-DD, defaults to today)"`
}

type SearchFoodsParams struct {
	Query    string              `json:"query,omitempty" description:"Free-text search on food name or brand"`
	Category models.FoodCategory `json:"category,omitempty" description:"Category filter" validate:"omitempty,food_category"`
	Limit    int                 `json:"limit,omitempty" description:"Maximum number of foods to return" validate:"omitempty,min=1,max=200"`
}

type toolHandler func(r *http.Request, req *protocol.CallToolRequest) (any, error)

func (s *Server) tools() map[string]toolHandler {
	return map[string]toolHandler{
		"log_meal":      s.toolLogMeal,
		"get_meals":     s.toolGetMeals,
		"daily_summary": s.toolDailySummary,
		"search_foods":  s.toolSearchFoods,
	}
}

// handleToolCall serves MCP tools/call requests over plain HTTP POST.
func (s *Server) handleToolCall(w http.ResponseWriter, r *http.Request) {
	var request protocol.CallToolRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.writeError(w, r, badRequest("invalid JSON: %v", err))
		return
	}

	handler, ok := s.tools()[request.Name]
	if !ok {
		writeJSON(w, http.StatusNotFound, apiResponse{Success: false, Message: fmt.Sprintf("unknown tool: %s", request.Name)})
		return
	}

	data, err := handler(r, &request)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := createJSONResponse(data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// extractParams converts the request arguments into target and validates it.
func (s *Server) extractParams(req *protocol.CallToolRequest, target any) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %w", err)
	}
	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return badRequest("invalid parameters: %v", err)
	}
	return s.validate.Struct(target)
}

func (s *Server) toolLogMeal(r *http.Request, req *protocol.CallToolRequest) (any, error) {
	var params models.MealInput
	if err := s.extractParams(req, &params); err != nil {
		return nil, err
	}
	return s.createMeal(r, &params)
}

func (s *Server) toolGetMeals(r *http.Request, req *protocol.CallToolRequest) (any, error) {
	var params GetMealsParams
	if err := s.extractParams(req, &params); err != nil {
		return nil, err
	}
	date, err := s.resolveDate(params.Date)
	if err != nil {
		return nil, err
	}

	meals, err := s.storage.GetMeals(r.Context(), userFrom(r.Context()).ID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve meals: %w", err)
	}
	return mealsByDate{Date: date, Meals: models.GroupByType(meals)}, nil
}

func (s *Server) toolDailySummary(r *http.Request, req *protocol.CallToolRequest) (any, error) {
	var params DailySummaryParams
	if err := s.extractParams(req, &params); err != nil {
		return nil, err
	}
	date, err := s.resolveDate(params.Date)
	if err != nil {
		return nil, err
	}
	return s.summary(r.Context(), userFrom(r.Context()).ID, date)
}

func (s *Server) toolSearchFoods(r *http.Request, req *protocol.CallToolRequest) (any, error) {
	var params SearchFoodsParams
	if err := s.extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.Limit == 0 {
		params.Limit = 20
	}

	foods, total, err := s.storage.ListFoods(r.Context(), models.FoodFilter{
		Search:   strings.TrimSpace(params.Query),
		Category: params.Category,
		Limit:    params.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search foods: %w", err)
	}
	return map[string]any{"foods": foods, "total": total}, nil
}

func createJSONResponse(data any) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(jsonBytes),
			},
		},
	}, nil
}
