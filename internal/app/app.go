package app

import (
	"context"
	"fmt"
	"net/http"
	"taskManager/internal/config"
	"taskManager/internal/handlers"
	"taskManager/internal/logger"
	"taskManager/internal/middleware"
	"taskManager/internal/notifier"
	"taskManager/internal/osnotify"
	"taskManager/internal/persistence/jsonfile"
	"taskManager/internal/repository/task/inmemory"
	"taskManager/internal/scheduler"
	"taskManager/internal/service"
	"taskManager/internal/worker"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const appName = "Task Manager"

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	service   service.TaskService
	scheduler *scheduler.ReminderScheduler
	worker    *worker.ReminderWorker
	shutdowns []func() // функции для graceful shutdown, вызываются в обратном порядке
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

	// хранилище в памяти + файл-коллаборатор для сохранения между запусками
	taskRepo := inmemory.NewTaskStorage()
	fileStore := jsonfile.NewStore(a.config.Storage.Path)

	notifications := notifier.NewMemorySink(100)
	emitter := notifier.NewEmitter(notifier.LogSink{}, notifications)

	desktop := osnotify.New(a.config.Reminders.Desktop)
	desktop.Request(appName)

	a.scheduler = scheduler.NewReminderScheduler(taskRepo, emitter, desktop)
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Отмена всех таймеров напоминаний...")
		a.scheduler.Stop()
	})

	a.service = service.NewTaskService(taskRepo, fileStore, a.scheduler, emitter)

	// финальное сохранение на остановке, даже если рабочие сохранения падали
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Сохранение задач перед остановкой...")
		if err := a.service.Flush(context.Background()); err != nil {
			logger.Error("Не удалось сохранить задачи при остановке", err)
		}
	})

	restored, err := a.service.Restore(ctx)
	if err != nil {
		return fmt.Errorf("восстановление задач: %w", err)
	}
	logger.Info("Задачи восстановлены", zap.Int("count", restored), zap.String("path", a.config.Storage.Path))

	a.worker = worker.NewReminderWorker(a.scheduler, a.config.Reminders.SweepInterval.Std())

	taskHandler := handlers.NewTaskHandler(&a.service, notifications)
	a.router = newRouter(taskHandler)

	a.server = &http.Server{
		Addr:    a.config.GetServerAddr(),
		Handler: a.router,
	}

	return nil
}

func newRouter(taskHandler handlers.TaskHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.RateLimit(100))

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.GetTasks)      // GET /tasks?filter=&sort=
		r.Post("/", taskHandler.PostTask)     // POST /tasks
		r.Get("/stats", taskHandler.GetStats) // GET /tasks/stats

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", taskHandler.GetTaskByID)       // GET /tasks/{id}
			r.Put("/", taskHandler.UpdateTaskByID)    // PUT /tasks/{id}
			r.Delete("/", taskHandler.DeleteTaskByID) // DELETE /tasks/{id}

			r.Post("/toggle", taskHandler.ToggleTask) // POST /tasks/{id}/toggle
		})
	})

	r.Get("/notifications", taskHandler.GetNotifications)
	r.Get("/health", taskHandler.HealthCheck)

	return r
}

// Run блокируется до отмены контекста, после чего аккуратно гасит
// сервер, фоновую проверку и планировщик
func (a *App) Run(ctx context.Context) error {
	workerCtx, stopWorker := context.WithCancel(ctx)
	go a.worker.Start(workerCtx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		stopWorker()
		a.runShutdowns()
		return fmt.Errorf("сервер: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Остановка сервера...")
	stopWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка остановки сервера", err)
	}

	a.runShutdowns()
	return nil
}

func (a *App) runShutdowns() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
