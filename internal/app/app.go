package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"goalTracker/internal/config"
	"goalTracker/internal/handlers"
	"goalTracker/internal/logger"
	"goalTracker/internal/middleware"
	"goalTracker/internal/repository/goal/inmemory"
	"goalTracker/internal/repository/goal/postgres"
	"goalTracker/internal/repository/inter"
	"goalTracker/internal/service"
	"goalTracker/internal/worker"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type App struct {
	config     *config.Config
	server     *http.Server
	router     *chi.Mux
	repository inter.GoalRepository
	service    *service.GoalService
	handler    handlers.GoalHandler
	worker     *worker.StatusObserverWorker
	shutdowns  []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	if err := a.initRepository(ctx); err != nil {
		return fmt.Errorf("инициализация репозитория: %w", err)
	}

	a.service = service.NewGoalService(a.repository)
	a.handler = handlers.NewGoalHandler(a.service)

	if a.config.Worker.Enabled {
		a.worker = worker.NewStatusObserverWorker(a.repository, a.service.Tracker(), &a.config.Worker.Interval)
	}

	a.router = a.buildRouter()
	a.server = &http.Server{
		Addr:    a.config.GetServerAddr(),
		Handler: a.router,
	}

	return nil
}

func (a *App) initRepository(ctx context.Context) error {
	switch a.config.Repository.Type {
	case "postgres":
		if err := postgres.Migrate(a.config.Database.URL); err != nil {
			return err
		}

		storage, err := postgres.New(ctx, a.config.Database.URL)
		if err != nil {
			return err
		}

		a.shutdowns = append(a.shutdowns, storage.Close)
		a.repository = storage
	default:
		a.repository = inmemory.NewGoalStorage()
	}
	return nil
}

func (a *App) buildRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.RateLimit(100))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Route("/goals", func(r chi.Router) {
		r.Post("/", a.handler.PostGoal) // POST /goals

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", a.handler.GetGoalByID)              // GET /goals/{id}
			r.Delete("/", a.handler.DeleteGoal)            // DELETE /goals/{id}
			r.Patch("/status", a.handler.UpdateGoalStatus) // PATCH /goals/{id}/status
			r.Post("/toggle", a.handler.ToggleGoal)        // POST /goals/{id}/toggle
		})
	})

	r.Route("/views", func(r chi.Router) {
		r.Get("/day", a.handler.GetDayView)       // GET /views/day?date=YYYY-MM-DD
		r.Get("/week", a.handler.GetWeekView)     // GET /views/week?date=YYYY-MM-DD
		r.Get("/month", a.handler.GetMonthView)   // GET /views/month?date=YYYY-MM-DD
		r.Get("/overview", a.handler.GetOverview) // GET /views/overview
	})

	r.Get("/health", a.handler.HealthCheck)

	return r
}

// Run запускает воркер и HTTP-сервер и блокируется до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	if a.worker != nil {
		go a.worker.Start(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server started")
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("работа сервера: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка остановки сервера", err)
	}

	a.Shutdown()
	return nil
}

// Shutdown вызывает зарегистрированные функции завершения в обратном порядке.
func (a *App) Shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
