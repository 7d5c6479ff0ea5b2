package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"taskManager/internal/logger"
	"taskManager/internal/models/task"
	"taskManager/internal/notifier"
	"taskManager/internal/persistence"
	"taskManager/internal/query"
	repo "taskManager/internal/repository"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// здесь бизнес-правила жизненного цикла задач: валидация, инварианты
// выполненности, планирование напоминаний и сохранение после каждой мутации

type TaskService struct {
	repo      repo.TaskRepository
	store     persistence.Store
	scheduler ReminderScheduler
	emitter   Notifier
}

func NewTaskService(taskRepo repo.TaskRepository, store persistence.Store, sched ReminderScheduler, emitter Notifier) TaskService {
	return TaskService{
		repo:      taskRepo,
		store:     store,
		scheduler: sched,
		emitter:   emitter,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, title, description string, deadline, reminder *time.Time, priority task.Priority, category string) (*task.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		s.emitter.Emit("Введите название задачи", notifier.SeverityError)
		return nil, NewValidationError("title", "пустое значение")
	}

	if priority == "" {
		priority = task.PriorityMedium
	}
	if !priority.Valid() {
		s.emitter.Emit("Неизвестный приоритет: "+string(priority), notifier.SeverityError)
		return nil, NewValidationError("priority", "допустимы high, medium, low")
	}

	if category == "" {
		category = task.DefaultCategory
	}

	newTask := &task.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: strings.TrimSpace(description),
		Deadline:    deadline,
		Reminder:    reminder,
		Priority:    priority,
		Category:    category,
		Completed:   false,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, newTask); err != nil {
		return nil, fmt.Errorf("создание задачи: %w", err)
	}

	s.scheduler.Schedule(newTask)
	s.persist(ctx)
	s.emitter.Emit("Задача добавлена", notifier.SeveritySuccess)

	return newTask, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, options ...task.TaskOption) (*task.Task, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: задача не найдена", zap.String("target_id", id.String()))
			return nil, NewNotFound(id.String(), err)
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	// repo отдаёт копию, поэтому отклонённые изменения до хранилища не доходят
	prevReminder := existing.Reminder
	for _, opt := range options {
		opt(existing)
	}

	existing.Title = strings.TrimSpace(existing.Title)
	if existing.Title == "" {
		s.emitter.Emit("Название задачи не может быть пустым", notifier.SeverityError)
		return nil, NewValidationError("title", "пустое значение")
	}

	if !existing.Priority.Valid() {
		s.emitter.Emit("Неизвестный приоритет: "+string(existing.Priority), notifier.SeverityError)
		return nil, NewValidationError("priority", "допустимы high, medium, low")
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}

	// при смене напоминания старый таймер снимается и взводится новый
	if !equalTimePtr(prevReminder, existing.Reminder) {
		s.scheduler.Schedule(existing)
	}

	s.persist(ctx)
	s.emitter.Emit("Задача обновлена", notifier.SeveritySuccess)

	return existing, nil
}

func (s *TaskService) ToggleComplete(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: задача не найдена", zap.String("target_id", id.String()))
			return nil, NewNotFound(id.String(), err)
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	existing.Completed = !existing.Completed
	if existing.Completed {
		now := time.Now()
		existing.CompletedAt = &now
		// выполненная задача не должна напоминать о себе
		s.scheduler.Cancel(id)
	} else {
		existing.CompletedAt = nil
		s.scheduler.Schedule(existing)
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}

	s.persist(ctx)
	if existing.Completed {
		s.emitter.Emit("Задача выполнена!", notifier.SeveritySuccess)
	} else {
		s.emitter.Emit("Задача снова в работе", notifier.SeveritySuccess)
	}

	return existing, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: задача не найдена", zap.String("target_id", id.String()))
			return NewNotFound(id.String(), err)
		}
		return fmt.Errorf("удаление задачи: %w", err)
	}

	s.scheduler.Cancel(id)
	s.persist(ctx)
	s.emitter.Emit("Задача удалена", notifier.SeveritySuccess)

	return nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: задача не найдена", zap.String("target_id", id.String()))
			return nil, NewNotFound(id.String(), err)
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return found, nil
}

// ListTasks отдаёт представление для отрисовки: отфильтрованный и
// отсортированный список плюс пересчитанные счётчики
func (s *TaskService) ListTasks(ctx context.Context, filter query.Filter, sortKey query.Sort) ([]*task.Task, query.Stats, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, query.Stats{}, fmt.Errorf("получение задач: %w", err)
	}

	now := time.Now()
	return query.Apply(tasks, filter, sortKey, now), query.Count(tasks, now), nil
}

func (s *TaskService) Stats(ctx context.Context) (query.Stats, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return query.Stats{}, fmt.Errorf("получение задач: %w", err)
	}
	return query.Count(tasks, time.Now()), nil
}

// Restore загружает сохранённые задачи на старте и взводит таймеры
// для будущих напоминаний; прошедшие объявит фоновая проверка
func (s *TaskService) Restore(ctx context.Context) (int, error) {
	tasks, err := s.store.Load()
	if err != nil {
		return 0, fmt.Errorf("загрузка задач: %w", err)
	}

	if err := s.repo.Replace(ctx, tasks); err != nil {
		return 0, fmt.Errorf("восстановление хранилища: %w", err)
	}

	for _, t := range tasks {
		if !t.Completed {
			s.scheduler.Schedule(t)
		}
	}

	return len(tasks), nil
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return fmt.Errorf("проверка здоровья сервиса: %w", err)
	}
	return nil
}

// Flush сохраняет текущее состояние в файл - вызывается при остановке,
// чтобы не потерять изменения, если последнее сохранение не удалось
func (s *TaskService) Flush(ctx context.Context) error {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("получение задач: %w", err)
	}

	if err := s.store.Save(tasks); err != nil {
		return fmt.Errorf("сохранение задач: %w", err)
	}
	return nil
}

// persist сохраняет всё состояние после мутации. Ошибка сохранения
// не фатальна: логируется и показывается как предупреждение
func (s *TaskService) persist(ctx context.Context) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		logger.Error("Service: не удалось собрать задачи для сохранения", err)
		return
	}

	if err := s.store.Save(tasks); err != nil {
		logger.Error("Service: ошибка сохранения задач", err)
		s.emitter.Emit("Не удалось сохранить задачи", notifier.SeverityWarning)
	}
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
