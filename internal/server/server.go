// internal/server/server.go
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"calee/internal/config"
	"calee/internal/models"
	"calee/internal/recognition"
	"calee/internal/uploads"
)

const (
	serviceName    = "CalEE API"
	serviceVersion = "1.0.0"
)

// Store is the persistence the handlers depend on.
type Store interface {
	Ping(ctx context.Context) error
	EnsureUser(ctx context.Context, deviceID string) (*models.User, error)

	ListFoods(ctx context.Context, filter models.FoodFilter) ([]*models.Food, int, error)
	GetFood(ctx context.Context, id int64) (*models.Food, error)
	CreateFood(ctx context.Context, food *models.Food) error
	UpdateFood(ctx context.Context, id int64, update *models.FoodUpdate) (*models.Food, error)
	DeleteFood(ctx context.Context, id int64) error

	SaveMeal(ctx context.Context, userID int64, input *models.MealInput) (*models.Meal, error)
	GetMeal(ctx context.Context, userID, mealID int64) (*models.Meal, error)
	GetMeals(ctx context.Context, userID int64, date string) ([]*models.Meal, error)
	DeleteMeal(ctx context.Context, userID, mealID int64) error
	DeleteMealEntry(ctx context.Context, userID, mealID, entryID int64) error

	GetGoal(ctx context.Context, userID int64, defaultCalories int) (*models.DailyGoal, error)
	SetGoal(ctx context.Context, userID int64, calories int) (*models.DailyGoal, error)
}

// servedStore is implemented by image stores that serve their own files.
type servedStore interface {
	Handler() http.Handler
}

type Server struct {
	httpServer *http.Server
	router     chi.Router
	storage    Store
	recognizer recognition.Recognizer
	images     uploads.Store
	validate   *validator.Validate
	config     *config.Config
	logger     *slog.Logger
	now        func() time.Time
}

func New(cfg *config.Config, store Store, recognizer recognition.Recognizer, images uploads.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		storage:    store,
		recognizer: recognizer,
		images:     images,
		validate:   newValidator(),
		config:     cfg,
		logger:     logger,
		now:        time.Now,
	}
	s.router = s.routes()
	s.httpServer = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.corsHandler())

	r.Get("/health", s.handleHealth)
	r.Get("/api", s.handleAPIRoot)

	if served, ok := s.images.(servedStore); ok {
		r.Handle("/uploads/*", served.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(s.resolveUser)

		r.Post("/mcp", s.handleToolCall)

		r.Route("/api/v1", func(r chi.Router) {
			r.Route("/foods", func(r chi.Router) {
				r.Get("/", s.handleListFoods)
				r.Post("/", s.handleCreateFood)
				r.Get("/categories", s.handleListCategories)
				r.Get("/categories/list", s.handleListCategories)
				r.Get("/{foodID}", s.handleGetFood)
				r.Put("/{foodID}", s.handleUpdateFood)
				r.Delete("/{foodID}", s.handleDeleteFood)
			})

			r.Route("/meals", func(r chi.Router) {
				r.Get("/", s.handleListMeals)
				r.Post("/", s.handleCreateMeal)
				r.Get("/{mealID}", s.handleGetMeal)
				r.Delete("/{mealID}", s.handleDeleteMeal)
				r.Delete("/{mealID}/entries/{entryID}", s.handleDeleteMealEntry)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/summary", s.handleSummary)
				r.Get("/goal", s.handleGetGoal)
				r.Put("/goal", s.handleUpdateGoal)
				r.Post("/goals/update", s.handleUpdateGoal)
			})

			r.Post("/upload/recognize", s.handleRecognize)
		})
	})

	return r
}

func (s *Server) corsHandler() func(http.Handler) http.Handler {
	allowAll := false
	for _, o := range s.config.AllowOrigins {
		if o == "*" {
			allowAll = true
		}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   s.config.AllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", deviceHeader},
		AllowCredentials: !allowAll,
		MaxAge:           300,
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting server", "addr", s.httpServer.Addr)
	s.httpServer.BaseContext = func(_ net.Listener) context.Context { return ctx }
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.storage.Ping(r.Context()); err != nil {
		s.logger.Error("health check failed", "err", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "service": serviceName})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": serviceName})
}

func (s *Server) handleAPIRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": serviceName,
		"version": serviceVersion,
		"docs":    "/api/v1",
	})
}
