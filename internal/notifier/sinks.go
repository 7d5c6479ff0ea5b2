package notifier

import (
	"sync"
	"taskManager/internal/logger"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogSink пишет уведомления в общий лог
type LogSink struct{}

func (LogSink) Notify(n Notification) {
	lvl := zapcore.InfoLevel
	switch n.Severity {
	case SeverityWarning:
		lvl = zapcore.WarnLevel
	case SeverityError:
		lvl = zapcore.ErrorLevel
	}

	logger.Log(lvl, "Notify: "+n.Message,
		zap.String("notification_id", n.ID.String()),
		zap.String("severity", string(n.Severity)),
		zap.Duration("duration", n.Duration),
	)
}

// MemorySink копит неотданные уведомления для слоя представления.
// Drain отдаёт и забывает: показанное второй раз не появляется
type MemorySink struct {
	mtx     sync.Mutex
	pending []Notification
	limit   int
}

func NewMemorySink(limit int) *MemorySink {
	if limit <= 0 {
		limit = 100
	}
	return &MemorySink{limit: limit}
}

func (s *MemorySink) Notify(n Notification) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.pending = append(s.pending, n)
	// старые вытесняются, чтобы очередь не росла без читателя
	if len(s.pending) > s.limit {
		s.pending = s.pending[len(s.pending)-s.limit:]
	}
}

func (s *MemorySink) Drain() []Notification {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	drained := s.pending
	s.pending = nil
	return drained
}
