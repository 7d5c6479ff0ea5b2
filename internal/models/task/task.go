package task

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Reminder    *time.Time `json:"reminder,omitempty"`
	Priority    Priority   `json:"priority"`
	Category    string     `json:"category"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type Priority string

const PriorityHigh Priority = "high"
const PriorityMedium Priority = "medium"
const PriorityLow Priority = "low"

const DefaultCategory = "general"

// Rank - числовой вес приоритета для сортировки
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// IsOverdue - задача просрочена: не выполнена, дедлайн задан и уже прошёл
func (t *Task) IsOverdue(now time.Time) bool {
	return !t.Completed && t.Deadline != nil && t.Deadline.Before(now)
}

// Clone возвращает глубокую копию - потребители не получают
// изменяемую ссылку на запись хранилища
func (t *Task) Clone() *Task {
	copied := *t
	if t.Deadline != nil {
		deadline := *t.Deadline
		copied.Deadline = &deadline
	}
	if t.Reminder != nil {
		reminder := *t.Reminder
		copied.Reminder = &reminder
	}
	if t.CompletedAt != nil {
		completedAt := *t.CompletedAt
		copied.CompletedAt = &completedAt
	}
	return &copied
}
