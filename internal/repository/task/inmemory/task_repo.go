package inmemory

import (
	"context"
	"sync"
	"taskManager/internal/models/task"
	repo "taskManager/internal/repository"

	"github.com/google/uuid"
)

// TaskStorage - хранилище в памяти: map по id плюс срез id
// в порядке добавления, чтобы List возвращал стабильный порядок
type TaskStorage struct {
	storage map[uuid.UUID]*task.Task
	ids     []uuid.UUID
	mtx     *sync.RWMutex
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[uuid.UUID]*task.Task),
		ids:     []uuid.UUID{},
		mtx:     &sync.RWMutex{},
	}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	return nil
}

func (s *TaskStorage) Create(ctx context.Context, taskToCreate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.storage[taskToCreate.ID] = taskToCreate.Clone()
	s.ids = append(s.ids, taskToCreate.ID)
	return nil
}

func (s *TaskStorage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[taskToUpdate.ID]; !ok {
		return repo.ErrNotFound
	}

	s.storage[taskToUpdate.ID] = taskToUpdate.Clone()
	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	taskToGet, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return taskToGet.Clone(), nil
}

func (s *TaskStorage) Delete(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repo.ErrNotFound
	}

	delete(s.storage, id)
	for ind, val := range s.ids {
		if val == id {
			s.ids = append(s.ids[:ind], s.ids[ind+1:]...)
			break
		}
	}
	return nil
}

// List возвращает копии всех задач в порядке добавления
func (s *TaskStorage) List(ctx context.Context) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]*task.Task, 0, len(s.ids))
	for _, id := range s.ids {
		res = append(res, s.storage[id].Clone())
	}
	return res, nil
}

// Replace полностью заменяет содержимое хранилища - используется
// при загрузке сохранённых задач на старте
func (s *TaskStorage) Replace(ctx context.Context, tasks []*task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.storage = make(map[uuid.UUID]*task.Task, len(tasks))
	s.ids = make([]uuid.UUID, 0, len(tasks))
	for _, t := range tasks {
		if _, ok := s.storage[t.ID]; ok {
			continue
		}
		s.storage[t.ID] = t.Clone()
		s.ids = append(s.ids, t.ID)
	}
	return nil
}
