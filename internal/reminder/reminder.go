// Package reminder nudges the user to record transactions on days when
// nothing has been logged yet.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/MrJamesThe3rd/bucket/internal/settings"
)

// MinTransactionsPerDay is the count below which a reminder is sent.
const MinTransactionsPerDay = 1

const title = "Bucket Money"

var messages = []string{
	"Have you made any transactions today? 🏁",
	"Did you track your expenses today? 💸",
	"Have you recorded your transactions today? 🏁",
}

//go:generate mockgen -source=reminder.go -destination=reminder_mock.go -package=reminder
type Settings interface {
	Get(ctx context.Context) (*settings.Settings, error)
}

type Counter interface {
	CountBetween(ctx context.Context, start, end time.Time) (int, error)
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

type Notification struct {
	Title string
	Body  string
}

type Service struct {
	settings Settings
	counter  Counter
	notifier Notifier
	pick     func(n int) int
}

func NewService(s Settings, counter Counter, notifier Notifier) *Service {
	return &Service{settings: s, counter: counter, notifier: notifier, pick: rand.IntN}
}

// Check sends a reminder when notifications are enabled and fewer than
// MinTransactionsPerDay transactions are dated on now's UTC day. It reports
// whether a reminder went out.
func (s *Service) Check(ctx context.Context, now time.Time) (bool, error) {
	st, err := s.settings.Get(ctx)
	if err != nil {
		return false, fmt.Errorf("loading settings: %w", err)
	}

	if !st.ShowNotifications {
		return false, nil
	}

	start := now.UTC().Truncate(24 * time.Hour)
	end := start.Add(24*time.Hour - time.Nanosecond)

	count, err := s.counter.CountBetween(ctx, start, end)
	if err != nil {
		return false, fmt.Errorf("counting today's transactions: %w", err)
	}

	if count >= MinTransactionsPerDay {
		return false, nil
	}

	n := Notification{Title: title, Body: messages[s.pick(len(messages))]}
	if err := s.notifier.Notify(ctx, n); err != nil {
		return false, fmt.Errorf("sending reminder: %w", err)
	}

	return true, nil
}

// LogNotifier writes reminders to the structured log.
type LogNotifier struct {
	Logger *slog.Logger
}

func (l LogNotifier) Notify(ctx context.Context, n Notification) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.InfoContext(ctx, "transaction reminder", "title", n.Title, "body", n.Body)

	return nil
}
