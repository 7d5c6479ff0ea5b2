package notifier_test

import (
	"fmt"
	"taskManager/internal/notifier"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEmitter_FanOut тестирует раздачу уведомления всем приёмникам
func TestEmitter_FanOut(t *testing.T) {
	first := notifier.NewMemorySink(10)
	second := notifier.NewMemorySink(10)
	emitter := notifier.NewEmitter(first, second)

	emitter.Emit("Задача добавлена", notifier.SeveritySuccess)

	firstDrained := first.Drain()
	secondDrained := second.Drain()
	require.Len(t, firstDrained, 1)
	require.Len(t, secondDrained, 1)
	assert.Equal(t, firstDrained[0].ID, secondDrained[0].ID)
	assert.Equal(t, "Задача добавлена", firstDrained[0].Message)
	assert.Equal(t, notifier.SeveritySuccess, firstDrained[0].Severity)
	assert.Equal(t, notifier.DefaultDuration, firstDrained[0].Duration)
}

// TestEmitter_CustomDuration тестирует заданную длительность показа
func TestEmitter_CustomDuration(t *testing.T) {
	sink := notifier.NewMemorySink(10)
	emitter := notifier.NewEmitter(sink)

	emitter.EmitWithDuration("Напоминание: тест", notifier.SeverityWarning, 10*time.Second)

	drained := sink.Drain()
	require.Len(t, drained, 1)
	assert.Equal(t, 10*time.Second, drained[0].Duration)
}

// TestMemorySink_DrainOnce тестирует, что Drain отдаёт и забывает
func TestMemorySink_DrainOnce(t *testing.T) {
	sink := notifier.NewMemorySink(10)
	emitter := notifier.NewEmitter(sink)

	emitter.Emit("one", notifier.SeverityInfo)
	emitter.Emit("two", notifier.SeverityError)

	assert.Len(t, sink.Drain(), 2)
	assert.Empty(t, sink.Drain())
}

// TestMemorySink_Limit тестирует вытеснение старых уведомлений
func TestMemorySink_Limit(t *testing.T) {
	sink := notifier.NewMemorySink(3)
	emitter := notifier.NewEmitter(sink)

	for i := 0; i < 5; i++ {
		emitter.Emit(fmt.Sprintf("msg-%d", i), notifier.SeverityInfo)
	}

	drained := sink.Drain()
	require.Len(t, drained, 3)
	assert.Equal(t, "msg-2", drained[0].Message)
	assert.Equal(t, "msg-4", drained[2].Message)
}
