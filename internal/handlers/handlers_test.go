package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"taskManager/internal/handlers"
	"taskManager/internal/handlers/dto"
	"taskManager/internal/logger"
	"taskManager/internal/models/task"
	"taskManager/internal/notifier"
	"taskManager/internal/query"
	"taskManager/internal/service"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.InitNop()
	os.Exit(m.Run())
}

// MockTaskService - мок сервиса
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) CreateTask(ctx context.Context, title, description string, deadline, reminder *time.Time, priority task.Priority, category string) (*task.Task, error) {
	args := m.Called(ctx, title, description, deadline, reminder, priority, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) UpdateTask(ctx context.Context, id uuid.UUID, options ...task.TaskOption) (*task.Task, error) {
	args := m.Called(ctx, id, options)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) ToggleComplete(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskService) GetTaskByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) ListTasks(ctx context.Context, filter query.Filter, sortKey query.Sort) ([]*task.Task, query.Stats, error) {
	args := m.Called(ctx, filter, sortKey)
	if args.Get(0) == nil {
		return nil, query.Stats{}, args.Error(2)
	}
	return args.Get(0).([]*task.Task), args.Get(1).(query.Stats), args.Error(2)
}

func (m *MockTaskService) Stats(ctx context.Context) (query.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(query.Stats), args.Error(1)
}

func (m *MockTaskService) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ handlers.Service = (*MockTaskService)(nil)

func newRouter(mockService *MockTaskService, notifications *notifier.MemorySink) *chi.Mux {
	if notifications == nil {
		notifications = notifier.NewMemorySink(10)
	}
	taskHandler := handlers.NewTaskHandler(mockService, notifications)

	r := chi.NewRouter()
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.GetTasks)
		r.Post("/", taskHandler.PostTask)
		r.Get("/stats", taskHandler.GetStats)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", taskHandler.GetTaskByID)
			r.Put("/", taskHandler.UpdateTaskByID)
			r.Delete("/", taskHandler.DeleteTaskByID)
			r.Post("/toggle", taskHandler.ToggleTask)
		})
	})
	r.Get("/notifications", taskHandler.GetNotifications)
	r.Get("/health", taskHandler.HealthCheck)
	return r
}

func sampleTask(title string) *task.Task {
	return &task.Task{
		ID:        uuid.New(),
		Title:     title,
		Priority:  task.PriorityMedium,
		Category:  task.DefaultCategory,
		CreatedAt: time.Now(),
	}
}

// TestPostTask тестирует создание задачи через HTTP
func TestPostTask(t *testing.T) {
	created := sampleTask("Buy milk")

	tests := []struct {
		name           string
		body           string
		contentType    string
		setupMock      func(*MockTaskService)
		expectedStatus int
	}{
		{
			name:        "success",
			body:        `{"title":"Buy milk"}`,
			contentType: "application/json",
			setupMock: func(m *MockTaskService) {
				m.On("CreateTask", mock.Anything, "Buy milk", "", (*time.Time)(nil), (*time.Time)(nil), task.Priority(""), "").
					Return(created, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "неверный Content-Type",
			body:           `{"title":"Buy milk"}`,
			contentType:    "text/plain",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:           "битый JSON",
			body:           `{"title":`,
			contentType:    "application/json",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "ошибка валидации из сервиса",
			body:        `{"title":""}`,
			contentType: "application/json",
			setupMock: func(m *MockTaskService) {
				m.On("CreateTask", mock.Anything, "", "", (*time.Time)(nil), (*time.Time)(nil), task.Priority(""), "").
					Return(nil, service.NewValidationError("title", "пустое значение"))
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTaskService)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := httptest.NewRecorder()

			newRouter(mockService, nil).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

// TestGetTasks тестирует список с фильтром и сортировкой
func TestGetTasks(t *testing.T) {
	first := sampleTask("first")
	second := sampleTask("second")
	stats := query.Stats{Total: 2, Pending: 2}

	mockService := new(MockTaskService)
	mockService.On("ListTasks", mock.Anything, query.FilterPending, query.SortDeadline).
		Return([]*task.Task{first, second}, stats, nil)

	req := httptest.NewRequest(http.MethodGet, "/tasks?filter=pending&sort=deadline", nil)
	rec := httptest.NewRecorder()
	newRouter(mockService, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response dto.ListTasksResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	require.Len(t, response.Tasks, 2)
	assert.Equal(t, "first", response.Tasks[0].Title)
	assert.Equal(t, stats, response.Stats)

	mockService.AssertExpectations(t)
}

// TestGetTasks_Defaults тестирует значения по умолчанию: all + created
func TestGetTasks_Defaults(t *testing.T) {
	mockService := new(MockTaskService)
	mockService.On("ListTasks", mock.Anything, query.FilterAll, query.SortCreated).
		Return([]*task.Task{}, query.Stats{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	rec := httptest.NewRecorder()
	newRouter(mockService, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

// TestGetTasks_BadParams тестирует неверные параметры представления
func TestGetTasks_BadParams(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "неизвестный фильтр", url: "/tasks?filter=someday"},
		{name: "неизвестная сортировка", url: "/tasks?sort=color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTaskService)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			newRouter(mockService, nil).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			mockService.AssertNotCalled(t, "ListTasks", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

// TestGetTaskByID тестирует получение одной задачи
func TestGetTaskByID(t *testing.T) {
	found := sampleTask("detail")

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockTaskService)
		expectedStatus int
	}{
		{
			name: "success",
			id:   found.ID.String(),
			setupMock: func(m *MockTaskService) {
				m.On("GetTaskByID", mock.Anything, found.ID).Return(found, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "кривой id",
			id:             "not-a-uuid",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "задача не найдена",
			id:   uuid.New().String(),
			setupMock: func(m *MockTaskService) {
				m.On("GetTaskByID", mock.Anything, mock.Anything).
					Return(nil, service.NewNotFound("missing", nil))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTaskService)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodGet, "/tasks/"+tt.id, nil)
			rec := httptest.NewRecorder()
			newRouter(mockService, nil).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

// TestUpdateTaskByID тестирует частичное обновление
func TestUpdateTaskByID(t *testing.T) {
	updated := sampleTask("renamed")

	mockService := new(MockTaskService)
	mockService.On("UpdateTask", mock.Anything, updated.ID, mock.Anything).Return(updated, nil)

	body := strings.NewReader(`{"title":"renamed"}`)
	req := httptest.NewRequest(http.MethodPut, "/tasks/"+updated.ID.String(), body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newRouter(mockService, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response dto.TaskResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "renamed", response.Title)

	mockService.AssertExpectations(t)
}

// TestDeleteTaskByID тестирует удаление
func TestDeleteTaskByID(t *testing.T) {
	id := uuid.New()

	mockService := new(MockTaskService)
	mockService.On("DeleteTask", mock.Anything, id).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/tasks/"+id.String(), nil)
	rec := httptest.NewRecorder()
	newRouter(mockService, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	mockService.AssertExpectations(t)
}

// TestToggleTask тестирует переключение статуса
func TestToggleTask(t *testing.T) {
	toggled := sampleTask("done")
	toggled.Completed = true
	now := time.Now()
	toggled.CompletedAt = &now

	mockService := new(MockTaskService)
	mockService.On("ToggleComplete", mock.Anything, toggled.ID).Return(toggled, nil)

	req := httptest.NewRequest(http.MethodPost, "/tasks/"+toggled.ID.String()+"/toggle", nil)
	rec := httptest.NewRecorder()
	newRouter(mockService, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response dto.TaskResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.True(t, response.Completed)
	assert.NotNil(t, response.CompletedAt)

	mockService.AssertExpectations(t)
}

// TestGetStats тестирует счётчики
func TestGetStats(t *testing.T) {
	mockService := new(MockTaskService)
	mockService.On("Stats", mock.Anything).Return(query.Stats{Total: 5, Pending: 3, Completed: 2, Overdue: 1}, nil)

	req := httptest.NewRequest(http.MethodGet, "/tasks/stats", nil)
	rec := httptest.NewRecorder()
	newRouter(mockService, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var stats query.Stats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, stats.Overdue)
}

// TestGetNotifications тестирует выдачу уведомлений: второй запрос пуст
func TestGetNotifications(t *testing.T) {
	notifications := notifier.NewMemorySink(10)
	emitter := notifier.NewEmitter(notifications)
	emitter.Emit("Задача добавлена", notifier.SeveritySuccess)

	router := newRouter(new(MockTaskService), notifications)

	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var first []dto.NotificationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&first))
	require.Len(t, first, 1)
	assert.Equal(t, "Задача добавлена", first[0].Message)
	assert.Equal(t, "success", first[0].Severity)

	// показанное не возвращается повторно
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notifications", nil))

	var second []dto.NotificationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&second))
	assert.Empty(t, second)
}

// TestHealthCheck тестирует проверку здоровья
func TestHealthCheck(t *testing.T) {
	mockService := new(MockTaskService)
	mockService.On("HealthCheck", mock.Anything).Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	newRouter(mockService, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
