package task

import (
	"time"
)

// TaskOption - функция частичного обновления: заполняет только
// переданные поля, остальные сохраняют прежние значения
type TaskOption func(*Task)

func WithTitle(title string) TaskOption {
	return func(task *Task) {
		task.Title = title
	}
}

func WithDescription(description string) TaskOption {
	return func(task *Task) {
		task.Description = description
	}
}

// WithPriority записывает значение как есть - допустимость
// проверяет сервисный слой
func WithPriority(priority Priority) TaskOption {
	return func(task *Task) {
		task.Priority = priority
	}
}

func WithCategory(category string) TaskOption {
	return func(task *Task) {
		task.Category = category
	}
}

// WithDeadline с nil снимает дедлайн
func WithDeadline(deadline *time.Time) TaskOption {
	return func(task *Task) {
		task.Deadline = deadline
	}
}

// WithReminder с nil снимает напоминание
func WithReminder(reminder *time.Time) TaskOption {
	return func(task *Task) {
		task.Reminder = reminder
	}
}
