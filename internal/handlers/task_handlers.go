package handlers

import (
	"encoding/json"
	"net/http"
	"taskManager/internal/handlers/dto"
	"taskManager/internal/logger"
	"taskManager/internal/notifier"
	"taskManager/internal/query"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskHandler struct {
	TaskService   Service
	Notifications *notifier.MemorySink
}

func NewTaskHandler(taskService Service, notifications *notifier.MemorySink) TaskHandler {
	return TaskHandler{
		TaskService:   taskService,
		Notifications: notifications,
	}
}

// GetTasks отдаёт представление списка: фильтр и сортировка из query-параметров
// плюс счётчики. Пустые параметры - значения по умолчанию (all, created)
func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	filter := query.Filter(r.URL.Query().Get("filter"))
	if filter == "" {
		filter = query.FilterAll
	}
	if !filter.Valid() {
		logger.Warn("HTTP: неверное значение параметра",
			zap.String("query", "filter"),
			zap.String("value", string(filter)),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверное значение filter: "+string(filter))
		return
	}

	sortKey := query.Sort(r.URL.Query().Get("sort"))
	if sortKey == "" {
		sortKey = query.SortCreated
	}
	if !sortKey.Valid() {
		logger.Warn("HTTP: неверное значение параметра",
			zap.String("query", "sort"),
			zap.String("value", string(sortKey)),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверное значение sort: "+string(sortKey))
		return
	}

	tasks, stats, err := h.TaskService.ListTasks(r.Context(), filter, sortKey)
	if err != nil {
		logger.Error("HTTP: ошибка Service", err,
			zap.String("operation", "list_tasks"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithRaw(w, http.StatusOK, dto.ListTasksResponse{
		Tasks: dto.FromTaskList(tasks),
		Stats: stats,
	})
}

func (h *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.CreateTaskRequest
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	created, err := h.TaskService.CreateTask(r.Context(),
		request.Title, request.Description,
		request.Deadline, request.Reminder,
		request.Priority, request.Category)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: ошибка Service", err,
			zap.String("operation", "create_task"),
			zap.String("client_ip", r.RemoteAddr),
			zap.Duration("ms", time.Since(start)))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.String("task_id", created.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithRaw(w, http.StatusCreated, dto.FromTask(created))
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := taskID(w, r)
	if !ok {
		return
	}

	found, err := h.TaskService.GetTaskByID(r.Context(), id)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: ошибка Service", err,
			zap.String("operation", "get_task"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Задача получена",
		zap.String("task_id", found.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithRaw(w, http.StatusOK, dto.FromTask(found))
}

func (h *TaskHandler) UpdateTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := taskID(w, r)
	if !ok {
		return
	}

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.UpdateTaskRequest
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверно переданы параметры обновления: "+err.Error())
		return
	}

	updated, err := h.TaskService.UpdateTask(r.Context(), id, request.Options()...)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: ошибка Service", err,
			zap.String("operation", "update_task"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.String("task_id", updated.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithRaw(w, http.StatusOK, dto.FromTask(updated))
}

func (h *TaskHandler) DeleteTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := taskID(w, r)
	if !ok {
		return
	}

	if err := h.TaskService.DeleteTask(r.Context(), id); err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: ошибка Service", err,
			zap.String("operation", "delete_task"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Задача удалена",
		zap.String("task_id", id.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := taskID(w, r)
	if !ok {
		return
	}

	toggled, err := h.TaskService.ToggleComplete(r.Context(), id)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: ошибка Service", err,
			zap.String("operation", "toggle_task"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Статус задачи переключён",
		zap.String("task_id", toggled.ID.String()),
		zap.Bool("completed", toggled.Completed),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithRaw(w, http.StatusOK, dto.FromTask(toggled))
}

func (h *TaskHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	stats, err := h.TaskService.Stats(r.Context())
	if err != nil {
		logger.Error("HTTP: ошибка Service", err,
			zap.String("operation", "stats"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	responseWithRaw(w, http.StatusOK, stats)
}

// GetNotifications выдаёт накопленные уведомления и забывает их:
// закрытое уведомление второй раз не показывается
func (h *TaskHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	drained := h.Notifications.Drain()
	responseWithRaw(w, http.StatusOK, dto.FromNotificationList(drained))
}

func (h *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := h.TaskService.HealthCheck(r.Context()); err != nil {
		responseWithError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	responseWithJSON(w, http.StatusOK, toPayload("status", "ok"))
}

// taskID разбирает и проверяет {id} из пути
func taskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		logger.Warn("HTTP: не удалось получить id",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "не удалось получить id: "+err.Error())
		return uuid.Nil, false
	}

	if id == uuid.Nil {
		logger.Warn("HTTP: неверное значение id",
			zap.String("error", "nil id"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "id не может быть пустым")
		return uuid.Nil, false
	}

	return id, true
}
