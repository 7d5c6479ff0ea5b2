package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"taskManager/internal/models/task"
)

// Store сохраняет задачи в JSON-файл. Запись атомарная:
// во временный файл рядом и rename поверх основного
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Load() ([]*task.Task, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		// первый запуск - файла ещё нет
		if errors.Is(err, os.ErrNotExist) {
			return []*task.Task{}, nil
		}
		return nil, fmt.Errorf("чтение %s: %w", s.path, err)
	}

	tasks := []*task.Task{}
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("парсинг %s: %w", s.path, err)
	}
	return tasks, nil
}

func (s *Store) Save(tasks []*task.Task) error {
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("сериализация задач: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tasks-*.json")
	if err != nil {
		return fmt.Errorf("создание временного файла: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("запись %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("закрытие %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("замена %s: %w", s.path, err)
	}
	return nil
}
