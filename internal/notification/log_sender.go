package notification

import (
	"context"

	"go.uber.org/zap"
)

// LogSender пишет события в лог. Используется когда Telegram не настроен.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, ev Event) error {
	s.logger.Info("Notification event",
		zap.String("kind", ev.Kind()),
		zap.Any("event", ev),
	)
	return nil
}
