package service

import (
	"taskManager/internal/models/task"
	"taskManager/internal/notifier"

	"github.com/google/uuid"
)

// ReminderScheduler - то, что сервису нужно от планировщика напоминаний
type ReminderScheduler interface {
	Schedule(*task.Task)
	Cancel(uuid.UUID)
}

// Notifier - то, что сервису нужно от эмиттера уведомлений
type Notifier interface {
	Emit(message string, severity notifier.Severity)
}
