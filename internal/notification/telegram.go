package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
)

// TelegramSender отправляет уведомления в общий канал платформы
type TelegramSender struct {
	bot    *bot.Bot
	chatID int64
}

func NewTelegramSender(b *bot.Bot, chatID int64) *TelegramSender {
	return &TelegramSender{bot: b, chatID: chatID}
}

func (s *TelegramSender) Send(ctx context.Context, ev Event) error {
	_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: s.chatID,
		Text:   formatEvent(ev),
	})
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}

	return nil
}

func formatEvent(ev Event) string {
	switch e := ev.(type) {
	case BookingCreated:
		return fmt.Sprintf("📅 New booking #%d\nInstructor: %d, student: %d\nStarts: %s\nMeeting: %s",
			e.BookingID, e.InstructorID, e.StudentID, formatTime(e.StartTime), e.MeetingURL)
	case BookingCancelled:
		who := "participant"
		if e.CancelledByAdmin {
			who = "admin"
		}
		return fmt.Sprintf("❌ Booking #%d cancelled by %s\nInstructor: %d, student: %d\nWas scheduled for: %s",
			e.BookingID, who, e.InstructorID, e.StudentID, formatTime(e.StartTime))
	case SessionReminder:
		return fmt.Sprintf("⏰ Session reminder: booking #%d\nInstructor: %d, student: %d\nStarts: %s\nMeeting: %s",
			e.BookingID, e.InstructorID, e.StudentID, formatTime(e.StartTime), e.MeetingURL)
	default:
		return fmt.Sprintf("Event: %s", ev.Kind())
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format("02.01.2006 15:04 MST")
}
