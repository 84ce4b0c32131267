package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/mentor_booking/internal/model"
	"github.com/Freeeeeet/mentor_booking/internal/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReminderStore struct {
	mu      sync.Mutex
	due     []*model.Booking
	marked  map[int64]time.Time
	listErr error
}

func (f *fakeReminderStore) ListDueReminders(_ context.Context, _ time.Time, _ time.Duration) ([]*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.due, nil
}

func (f *fakeReminderStore) MarkReminderSent(_ context.Context, id int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.marked == nil {
		f.marked = make(map[int64]time.Time)
	}
	f.marked[id] = at
	return nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []notification.Event
}

func (d *recordingDispatcher) Dispatch(ev notification.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, ev)
}

func TestSendRemindersDispatchesAndMarks(t *testing.T) {
	store := &fakeReminderStore{
		due: []*model.Booking{
			{ID: 1, InstructorID: 10, StudentID: 20, StartTime: time.Now().Add(2 * time.Hour), MeetingURL: "https://meet.example.com/a"},
			{ID: 2, InstructorID: 11, StudentID: 21, StartTime: time.Now().Add(3 * time.Hour), MeetingURL: "https://meet.example.com/b"},
		},
	}
	dispatcher := &recordingDispatcher{}

	s := NewScheduler(store, dispatcher, zap.NewNop())
	s.sendReminders(context.Background())

	require.Len(t, dispatcher.events, 2)
	reminder, ok := dispatcher.events[0].(notification.SessionReminder)
	require.True(t, ok)
	assert.Equal(t, int64(1), reminder.BookingID)

	assert.Contains(t, store.marked, int64(1))
	assert.Contains(t, store.marked, int64(2))
}

func TestSendRemindersStoreFailure(t *testing.T) {
	store := &fakeReminderStore{listErr: errors.New("connection refused")}
	dispatcher := &recordingDispatcher{}

	s := NewScheduler(store, dispatcher, zap.NewNop())
	s.sendReminders(context.Background())

	// Ошибка чтения не должна ронять планировщик и порождать события
	assert.Empty(t, dispatcher.events)
	assert.Empty(t, store.marked)
}
