package repository

import (
	"context"
	"errors"
	"taskManager/internal/models/task"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("задача не найдена")

type TaskRepository interface {
	Create(context.Context, *task.Task) error
	Update(context.Context, *task.Task) error
	GetByID(context.Context, uuid.UUID) (*task.Task, error)
	Delete(context.Context, uuid.UUID) error
	List(context.Context) ([]*task.Task, error)
	Replace(context.Context, []*task.Task) error
	HealthCheck(context.Context) error
}
