package query

import (
	"sort"
	"taskManager/internal/models/task"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Filter string

const FilterAll Filter = "all"
const FilterPending Filter = "pending"
const FilterCompleted Filter = "completed"
const FilterOverdue Filter = "overdue"

type Sort string

const SortCreated Sort = "created"
const SortDeadline Sort = "deadline"
const SortPriority Sort = "priority"
const SortTitle Sort = "title"

func (f Filter) Valid() bool {
	return f == FilterAll || f == FilterPending || f == FilterCompleted || f == FilterOverdue
}

func (s Sort) Valid() bool {
	return s == SortCreated || s == SortDeadline || s == SortPriority || s == SortTitle
}

// сравнение заголовков с учётом локали
var titleCollator = collate.New(language.Und)

// Apply - чистая функция представления: фильтрует и сортирует копию
// входного среза, сам срез не изменяется
func Apply(tasks []*task.Task, filter Filter, sortKey Sort, now time.Time) []*task.Task {
	filtered := make([]*task.Task, 0, len(tasks))

	for _, t := range tasks {
		switch filter {
		case FilterPending:
			if t.Completed {
				continue
			}
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		case FilterOverdue:
			if !t.IsOverdue(now) {
				continue
			}
		}
		filtered = append(filtered, t)
	}

	// сортировка обязана быть стабильной: при равенстве ключей
	// порядок добавления сохраняется
	switch sortKey {
	case SortDeadline:
		sort.SliceStable(filtered, func(i, j int) bool {
			a, b := filtered[i].Deadline, filtered[j].Deadline
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.Before(*b)
		})
	case SortPriority:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Priority.Rank() > filtered[j].Priority.Rank()
		})
	case SortTitle:
		sort.SliceStable(filtered, func(i, j int) bool {
			return titleCollator.CompareString(filtered[i].Title, filtered[j].Title) < 0
		})
	default: // SortCreated - новые первыми
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		})
	}

	return filtered
}

type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

// Count пересчитывает счётчики после каждой мутации
func Count(tasks []*task.Task, now time.Time) Stats {
	stats := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			stats.Completed++
		} else {
			stats.Pending++
		}
		if t.IsOverdue(now) {
			stats.Overdue++
		}
	}
	return stats
}
