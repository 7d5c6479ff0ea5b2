package scheduler

import (
	"context"
	"fmt"
	"sync"
	"taskManager/internal/logger"
	"taskManager/internal/models/task"
	"taskManager/internal/notifier"
	repo "taskManager/internal/repository"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReminderDuration - уведомление о напоминании висит дольше обычного
const ReminderDuration = 10 * time.Second

// DesktopNotifier - необязательный канал нативных уведомлений ОС
type DesktopNotifier interface {
	Notify(title, body string)
}

// ReminderScheduler держит не больше одного взведённого таймера на задачу.
// Отмена обязательна при выполнении, удалении и смене напоминания
type ReminderScheduler struct {
	repo    repo.TaskRepository
	emitter *notifier.Emitter
	desktop DesktopNotifier

	mtx    sync.Mutex
	timers map[uuid.UUID]*time.Timer
	// какое значение напоминания уже объявлено фоновой проверкой,
	// чтобы повторные проверки не дублировали уведомление
	swept map[uuid.UUID]time.Time
}

func NewReminderScheduler(taskRepo repo.TaskRepository, emitter *notifier.Emitter, desktop DesktopNotifier) *ReminderScheduler {
	return &ReminderScheduler{
		repo:    taskRepo,
		emitter: emitter,
		desktop: desktop,
		timers:  make(map[uuid.UUID]*time.Timer),
		swept:   make(map[uuid.UUID]time.Time),
	}
}

// Schedule взводит одноразовый таймер на строго будущее напоминание.
// Прошедшие напоминания таймер не получают - их объявит Sweep
func (s *ReminderScheduler) Schedule(t *task.Task) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.cancelLocked(t.ID)

	// выполненная задача таймер не получает, даже с будущим напоминанием
	if t.Completed || t.Reminder == nil {
		return
	}

	delay := time.Until(*t.Reminder)
	if delay <= 0 {
		return
	}

	id := t.ID
	s.timers[id] = time.AfterFunc(delay, func() {
		s.fire(id)
	})

	logger.Info("Scheduler: напоминание запланировано",
		zap.String("task_id", id.String()),
		zap.Time("reminder", *t.Reminder),
		zap.Duration("delay", delay),
	)
}

func (s *ReminderScheduler) Cancel(id uuid.UUID) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.cancelLocked(id)
}

func (s *ReminderScheduler) cancelLocked(id uuid.UUID) {
	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}
	delete(s.swept, id)
}

// Has сообщает, есть ли у задачи взведённый таймер
func (s *ReminderScheduler) Has(id uuid.UUID) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	_, ok := s.timers[id]
	return ok
}

// Stop отменяет все таймеры - путь завершения работы
func (s *ReminderScheduler) Stop() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}

// fire выполняется на горутине таймера. Каким бы ни был исход,
// запись о таймере снимается - карта не должна накапливать мусор
func (s *ReminderScheduler) fire(id uuid.UUID) {
	s.mtx.Lock()
	delete(s.timers, id)
	s.mtx.Unlock()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Scheduler: паника при срабатывании напоминания",
				fmt.Errorf("%v", r),
				zap.String("task_id", id.String()))
		}
	}()

	t, err := s.repo.GetByID(context.Background(), id)
	if err != nil {
		// задача успела исчезнуть - напоминать не о чем
		return
	}
	if t.Completed {
		return
	}

	// сработавшее напоминание помечается объявленным, иначе следующая
	// фоновая проверка объявит его ещё раз
	if t.Reminder != nil {
		s.mtx.Lock()
		s.swept[id] = *t.Reminder
		s.mtx.Unlock()
	}

	logger.Info("Scheduler: сработало напоминание",
		zap.String("task_id", id.String()),
		zap.String("title", t.Title))

	s.emitter.EmitWithDuration("Напоминание: "+t.Title, notifier.SeverityWarning, ReminderDuration)
	if s.desktop != nil {
		s.desktop.Notify("Напоминание о задаче", t.Title)
	}
}

// Sweep - периодическая страховка: объявляет напоминания, которые уже
// в прошлом и не имеют таймера (загружены просроченными или таймер был
// пропущен). Каждое значение напоминания объявляется не более одного раза
func (s *ReminderScheduler) Sweep(ctx context.Context, now time.Time) (int, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("получение задач: %w", err)
	}

	announced := 0
	for _, t := range tasks {
		if t.Completed || t.Reminder == nil || t.Reminder.After(now) {
			continue
		}

		s.mtx.Lock()
		_, armed := s.timers[t.ID]
		already := !armed && s.swept[t.ID].Equal(*t.Reminder)
		if !armed && !already {
			s.swept[t.ID] = *t.Reminder
		}
		s.mtx.Unlock()

		if armed || already {
			continue
		}

		s.emitter.EmitWithDuration("Просроченное напоминание: "+t.Title, notifier.SeverityWarning, ReminderDuration)
		if s.desktop != nil {
			s.desktop.Notify("Просроченное напоминание", t.Title)
		}
		announced++
	}

	return announced, nil
}
