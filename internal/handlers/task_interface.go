package handlers

import (
	"context"
	"taskManager/internal/models/task"
	"taskManager/internal/query"
	"time"

	"github.com/google/uuid"
)

type Service interface {
	CreateTask(ctx context.Context, title, description string, deadline, reminder *time.Time, priority task.Priority, category string) (*task.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, options ...task.TaskOption) (*task.Task, error)
	ToggleComplete(ctx context.Context, id uuid.UUID) (*task.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
	GetTaskByID(ctx context.Context, id uuid.UUID) (*task.Task, error)
	ListTasks(ctx context.Context, filter query.Filter, sortKey query.Sort) ([]*task.Task, query.Stats, error)
	Stats(ctx context.Context) (query.Stats, error)
	HealthCheck(ctx context.Context) error
}
