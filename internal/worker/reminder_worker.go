package worker

import (
	"context"
	"taskManager/internal/logger"
	"taskManager/internal/scheduler"
	"time"

	"go.uber.org/zap"
)

// ReminderWorker периодически запускает фоновую проверку напоминаний
type ReminderWorker struct {
	scheduler *scheduler.ReminderScheduler
	interval  time.Duration
}

func NewReminderWorker(sched *scheduler.ReminderScheduler, interval time.Duration) *ReminderWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ReminderWorker{
		scheduler: sched,
		interval:  interval,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			logger.Info("Worker: фоновая проверка напоминаний останавливается")
			return
		}
	}
}

func (w *ReminderWorker) Check(ctx context.Context) {
	start := time.Now()

	announced, err := w.scheduler.Sweep(ctx, start)
	if err != nil {
		logger.Warn("Worker: ошибка фоновой проверки напоминаний", zap.Error(err))
		return
	}

	if announced > 0 {
		logger.Info("Worker: завершение проверки напоминаний",
			zap.Duration("ms", time.Since(start)),
			zap.Int("announced", announced),
		)
	}
}
