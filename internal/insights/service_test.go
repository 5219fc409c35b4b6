package insights_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/bucket/internal/insights"
	"github.com/MrJamesThe3rd/bucket/internal/settings"
	"github.com/MrJamesThe3rd/bucket/internal/transaction"
	"github.com/MrJamesThe3rd/bucket/internal/wallet"
)

func TestService_Generate(t *testing.T) {
	sess := settings.Snapshot{BaseCurrency: "EUR"}
	r := wallet.MonthRange(2026, time.January, 1)
	days := []wallet.Day{{Transactions: []*transaction.Transaction{tx(transaction.TypeExpense, 12, "Coffee", 30)}}}

	t.Run("Success", func(t *testing.T) {
		ctx := context.Background()
		ctrl := gomock.NewController(t)
		history := insights.NewMockHistory(ctrl)
		completer := insights.NewMockCompleter(ctrl)

		history.EXPECT().History(ctx, sess, r).Return(days, nil)
		completer.EXPECT().Complete(ctx, gomock.Len(3)).Return("Cut coffee.", nil)

		got, err := insights.NewService(history, completer).Generate(ctx, sess, r, "")
		require.NoError(t, err)
		assert.Equal(t, "Cut coffee.", got.Text)
		assert.False(t, got.Advisory)
	})

	t.Run("NoHistory", func(t *testing.T) {
		ctx := context.Background()
		ctrl := gomock.NewController(t)
		history := insights.NewMockHistory(ctrl)

		history.EXPECT().History(ctx, sess, r).Return(nil, nil)

		got, err := insights.NewService(history, insights.NewMockCompleter(ctrl)).Generate(ctx, sess, r, "")
		require.NoError(t, err)
		assert.Equal(t, insights.NoHistory, got.Text)
	})

	t.Run("CompletionFailsWithAdvisory", func(t *testing.T) {
		ctx := context.Background()
		ctrl := gomock.NewController(t)
		history := insights.NewMockHistory(ctrl)
		completer := insights.NewMockCompleter(ctrl)

		history.EXPECT().History(ctx, sess, r).Return(days, nil)
		completer.EXPECT().Complete(ctx, gomock.Any()).Return("", errors.New("connection refused"))

		got, err := insights.NewService(history, completer).Generate(ctx, sess, r, "")
		require.NoError(t, err)
		assert.True(t, got.Advisory)
		assert.Equal(t, insights.Advisory, got.Text)
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		ctrl := gomock.NewController(t)
		history := insights.NewMockHistory(ctrl)
		completer := insights.NewMockCompleter(ctrl)

		history.EXPECT().History(ctx, sess, r).Return(days, nil)
		completer.EXPECT().Complete(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, _ []insights.Message) (string, error) {
			cancel()
			return "", ctx.Err()
		})

		_, err := insights.NewService(history, completer).Generate(ctx, sess, r, "")
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("HistoryError", func(t *testing.T) {
		ctx := context.Background()
		ctrl := gomock.NewController(t)
		history := insights.NewMockHistory(ctrl)

		history.EXPECT().History(ctx, sess, r).Return(nil, errors.New("db down"))

		_, err := insights.NewService(history, insights.NewMockCompleter(ctrl)).Generate(ctx, sess, r, "")
		assert.Error(t, err)
	})
}
