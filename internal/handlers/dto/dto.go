package dto

import (
	"taskManager/internal/models/task"
	"taskManager/internal/notifier"
	"taskManager/internal/query"
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Deadline    *time.Time    `json:"deadline,omitempty"`
	Reminder    *time.Time    `json:"reminder,omitempty"`
	Priority    task.Priority `json:"priority,omitempty"`
	Category    string        `json:"category,omitempty"`
}

// UpdateTaskRequest - частичное обновление: nil-поля не трогаются,
// флаги clear_* явно снимают дедлайн или напоминание
type UpdateTaskRequest struct {
	Title         *string        `json:"title,omitempty"`
	Description   *string        `json:"description,omitempty"`
	Deadline      *time.Time     `json:"deadline,omitempty"`
	Reminder      *time.Time     `json:"reminder,omitempty"`
	Priority      *task.Priority `json:"priority,omitempty"`
	Category      *string        `json:"category,omitempty"`
	ClearDeadline bool           `json:"clear_deadline,omitempty"`
	ClearReminder bool           `json:"clear_reminder,omitempty"`
}

// Options переводит заполненные поля запроса в функции обновления
func (r *UpdateTaskRequest) Options() []task.TaskOption {
	options := []task.TaskOption{}

	if r.Title != nil {
		options = append(options, task.WithTitle(*r.Title))
	}
	if r.Description != nil {
		options = append(options, task.WithDescription(*r.Description))
	}
	if r.Priority != nil {
		options = append(options, task.WithPriority(*r.Priority))
	}
	if r.Category != nil {
		options = append(options, task.WithCategory(*r.Category))
	}
	if r.Deadline != nil {
		options = append(options, task.WithDeadline(r.Deadline))
	} else if r.ClearDeadline {
		options = append(options, task.WithDeadline(nil))
	}
	if r.Reminder != nil {
		options = append(options, task.WithReminder(r.Reminder))
	} else if r.ClearReminder {
		options = append(options, task.WithReminder(nil))
	}

	return options
}

type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Reminder    *time.Time `json:"reminder,omitempty"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	IsOverdue   bool       `json:"is_overdue"`
}

func FromTask(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Deadline:    t.Deadline,
		Reminder:    t.Reminder,
		Priority:    string(t.Priority),
		Category:    t.Category,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
		IsOverdue:   t.IsOverdue(time.Now()),
	}
}

func FromTaskList(tasks []*task.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}

type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Stats query.Stats    `json:"stats"`
}

type NotificationResponse struct {
	ID         uuid.UUID `json:"id"`
	Message    string    `json:"message"`
	Severity   string    `json:"severity"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromNotification(n notifier.Notification) NotificationResponse {
	return NotificationResponse{
		ID:         n.ID,
		Message:    n.Message,
		Severity:   string(n.Severity),
		DurationMs: n.Duration.Milliseconds(),
		CreatedAt:  n.CreatedAt,
	}
}

func FromNotificationList(notifications []notifier.Notification) []NotificationResponse {
	result := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		result[i] = FromNotification(n)
	}
	return result
}
