package reminder_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/bucket/internal/reminder"
	"github.com/MrJamesThe3rd/bucket/internal/settings"
)

func TestService_Check(t *testing.T) {
	now := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)
	dayStart := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

	tests := []struct {
		name       string
		show       bool
		count      int
		wantNotify bool
	}{
		{name: "NothingToday", show: true, count: 0, wantNotify: true},
		{name: "AlreadyTracked", show: true, count: 2},
		{name: "NotificationsOff", show: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			ctrl := gomock.NewController(t)
			st := reminder.NewMockSettings(ctrl)
			counter := reminder.NewMockCounter(ctrl)
			notifier := reminder.NewMockNotifier(ctrl)

			st.EXPECT().Get(ctx).Return(&settings.Settings{ShowNotifications: tt.show}, nil)

			if tt.show {
				counter.EXPECT().CountBetween(ctx, dayStart, dayEnd).Return(tt.count, nil)
			}

			if tt.wantNotify {
				notifier.EXPECT().Notify(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, n reminder.Notification) error {
					assert.Equal(t, "Bucket Money", n.Title)
					assert.Contains(t, n.Body, "today")

					return nil
				})
			}

			sent, err := reminder.NewService(st, counter, notifier).Check(ctx, now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNotify, sent)
		})
	}
}

func TestService_Check_Errors(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("Settings", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		st := reminder.NewMockSettings(ctrl)
		st.EXPECT().Get(ctx).Return(nil, errors.New("db down"))

		_, err := reminder.NewService(st, reminder.NewMockCounter(ctrl), reminder.NewMockNotifier(ctrl)).Check(ctx, now)
		assert.Error(t, err)
	})

	t.Run("Notifier", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		st := reminder.NewMockSettings(ctrl)
		counter := reminder.NewMockCounter(ctrl)
		notifier := reminder.NewMockNotifier(ctrl)

		st.EXPECT().Get(ctx).Return(&settings.Settings{ShowNotifications: true}, nil)
		counter.EXPECT().CountBetween(ctx, gomock.Any(), gomock.Any()).Return(0, nil)
		notifier.EXPECT().Notify(ctx, gomock.Any()).Return(errors.New("offline"))

		sent, err := reminder.NewService(st, counter, notifier).Check(ctx, now)
		assert.Error(t, err)
		assert.False(t, sent)
	})
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer

	n := reminder.LogNotifier{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	require.NoError(t, n.Notify(context.Background(), reminder.Notification{Title: "T", Body: "B"}))
	assert.Contains(t, buf.String(), "transaction reminder")
	assert.Contains(t, buf.String(), "body=B")
}
