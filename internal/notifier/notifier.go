package notifier

import (
	"time"

	"github.com/google/uuid"
)

type Severity string

const SeverityInfo Severity = "info"
const SeveritySuccess Severity = "success"
const SeverityWarning Severity = "warning"
const SeverityError Severity = "error"

// DefaultDuration - сколько уведомление висит до автозакрытия
const DefaultDuration = 5 * time.Second

type Notification struct {
	ID        uuid.UUID     `json:"id"`
	Message   string        `json:"message"`
	Severity  Severity      `json:"severity"`
	Duration  time.Duration `json:"duration_ms"`
	CreatedAt time.Time     `json:"created_at"`
}

// Sink - приёмник уведомлений. Отрисовка и закрытие - забота
// приёмника, ядро не делает повторных попыток
type Sink interface {
	Notify(Notification)
}

// Emitter - fan-out без состояния: раздаёт уведомление всем приёмникам
type Emitter struct {
	sinks []Sink
}

func NewEmitter(sinks ...Sink) *Emitter {
	return &Emitter{sinks: sinks}
}

func (e *Emitter) Emit(message string, severity Severity) {
	e.EmitWithDuration(message, severity, DefaultDuration)
}

func (e *Emitter) EmitWithDuration(message string, severity Severity, duration time.Duration) {
	notification := Notification{
		ID:        uuid.New(),
		Message:   message,
		Severity:  severity,
		Duration:  duration,
		CreatedAt: time.Now(),
	}

	for _, sink := range e.sinks {
		sink.Notify(notification)
	}
}
