package persistence

import (
	"taskManager/internal/models/task"
)

// Store - внешний коллаборатор хранения: Load один раз на старте,
// Save после каждой мутации
type Store interface {
	Load() ([]*task.Task, error)
	Save([]*task.Task) error
}
