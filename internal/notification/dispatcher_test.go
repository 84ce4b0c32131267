package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type captureSender struct {
	mu       sync.Mutex
	received []Event
	fail     bool
	notify   chan struct{}
}

func newCaptureSender() *captureSender {
	return &captureSender{notify: make(chan struct{}, 16)}
}

func (s *captureSender) Send(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fail {
		s.notify <- struct{}{}
		return errors.New("channel unavailable")
	}

	s.received = append(s.received, ev)
	s.notify <- struct{}{}
	return nil
}

func (s *captureSender) all() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.received...)
}

func waitDelivery(t *testing.T, s *captureSender) {
	t.Helper()
	select {
	case <-s.notify:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not delivered in time")
	}
}

func TestQueueDeliversEvents(t *testing.T) {
	sender := newCaptureSender()
	q := NewQueue(sender, zap.NewNop())
	q.Start(context.Background())
	defer q.Stop()

	q.Dispatch(BookingCreated{BookingID: 1, InstructorID: 2, StudentID: 3})
	waitDelivery(t, sender)

	events := sender.all()
	require.Len(t, events, 1)
	created, ok := events[0].(BookingCreated)
	require.True(t, ok)
	assert.Equal(t, int64(1), created.BookingID)
}

func TestQueueSwallowsSenderErrors(t *testing.T) {
	sender := newCaptureSender()
	sender.fail = true

	q := NewQueue(sender, zap.NewNop())
	q.Start(context.Background())
	defer q.Stop()

	q.Dispatch(BookingCancelled{BookingID: 1})
	waitDelivery(t, sender)

	// Очередь жива после ошибки доставки
	sender.mu.Lock()
	sender.fail = false
	sender.mu.Unlock()

	q.Dispatch(BookingCancelled{BookingID: 2})
	waitDelivery(t, sender)

	events := sender.all()
	require.Len(t, events, 1)
	cancelled, ok := events[0].(BookingCancelled)
	require.True(t, ok)
	assert.Equal(t, int64(2), cancelled.BookingID)
}

func TestQueueDropsWhenFull(t *testing.T) {
	// Воркер не запущен - события копятся в буфере
	q := &Queue{
		events:   make(chan Event, 1),
		sender:   newCaptureSender(),
		logger:   zap.NewNop(),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}

	done := make(chan struct{})
	go func() {
		q.Dispatch(SessionReminder{BookingID: 1})
		q.Dispatch(SessionReminder{BookingID: 2}) // переполнение, отбрасывается
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch must never block the caller")
	}

	assert.Len(t, q.events, 1)
}
