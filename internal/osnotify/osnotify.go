package osnotify

import (
	"taskManager/internal/logger"

	"github.com/gen2brain/beeep"
	"go.uber.org/zap"
)

// Desktop - коллаборатор нативных уведомлений ОС. Канал необязательный:
// если он выключен или показ не удался, внутренние уведомления всё равно
// уходят, просто без системного алерта
type Desktop struct {
	enabled bool
}

func New(enabled bool) *Desktop {
	return &Desktop{enabled: enabled}
}

// Request запрашивается один раз на старте. Если показ недоступен,
// канал молча отключается
func (d *Desktop) Request(appName string) {
	if !d.enabled {
		return
	}

	beeep.AppName = appName
	if err := beeep.Notify(appName, "Уведомления о напоминаниях включены", ""); err != nil {
		logger.Warn("OSNotify: нативные уведомления недоступны", zap.Error(err))
		d.enabled = false
	}
}

func (d *Desktop) Notify(title, body string) {
	if !d.enabled {
		return
	}

	if err := beeep.Notify(title, body, ""); err != nil {
		logger.Warn("OSNotify: не удалось показать уведомление", zap.Error(err))
	}
}
