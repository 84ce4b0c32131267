package notification

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Dispatcher принимает события от ядра. Вызов никогда не блокирует
// и не возвращает ошибку - сбой доставки не должен влиять на бронирование.
type Dispatcher interface {
	Dispatch(ev Event)
}

// Sender доставляет событие в конкретный канал (Telegram и т.п.)
type Sender interface {
	Send(ctx context.Context, ev Event) error
}

const (
	queueSize   = 64
	sendTimeout = 10 * time.Second
)

// Queue асинхронная очередь уведомлений: буферизованный канал
// и один воркер. При переполнении событие отбрасывается с warning.
type Queue struct {
	events   chan Event
	sender   Sender
	logger   *zap.Logger
	stopChan chan struct{}
	done     chan struct{}
}

// NewQueue создаёт очередь уведомлений
func NewQueue(sender Sender, logger *zap.Logger) *Queue {
	return &Queue{
		events:   make(chan Event, queueSize),
		sender:   sender,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Dispatch кладёт событие в очередь, не блокируя вызывающего
func (q *Queue) Dispatch(ev Event) {
	select {
	case q.events <- ev:
	default:
		q.logger.Warn("Notification queue full, event dropped",
			zap.String("kind", ev.Kind()),
		)
	}
}

// Start запускает воркер доставки
func (q *Queue) Start(ctx context.Context) {
	go q.run(ctx)
}

// Stop останавливает воркер, дождавшись завершения текущей отправки
func (q *Queue) Stop() {
	close(q.stopChan)
	<-q.done
}

func (q *Queue) run(ctx context.Context) {
	defer close(q.done)

	for {
		select {
		case ev := <-q.events:
			q.send(ctx, ev)
		case <-q.stopChan:
			q.logger.Info("Notification queue stopped")
			return
		case <-ctx.Done():
			q.logger.Info("Notification queue cancelled")
			return
		}
	}
}

// send доставляет событие. Ошибка логируется и проглатывается.
func (q *Queue) send(ctx context.Context, ev Event) {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := q.sender.Send(sendCtx, ev); err != nil {
		q.logger.Error("Failed to deliver notification",
			zap.String("kind", ev.Kind()),
			zap.Error(err),
		)
	}
}
