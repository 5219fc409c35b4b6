package insights_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/bucket/internal/insights"
	"github.com/MrJamesThe3rd/bucket/internal/transaction"
	"github.com/MrJamesThe3rd/bucket/internal/wallet"
)

func tx(typ transaction.Type, amount int64, title string, day int) *transaction.Transaction {
	return &transaction.Transaction{
		ID:       uuid.New(),
		Type:     typ,
		Amount:   decimal.NewFromInt(amount),
		Title:    title,
		DateTime: time.Date(2026, 1, day, 10, 0, 0, 0, time.UTC),
	}
}

func TestLines(t *testing.T) {
	days := []wallet.Day{
		{Transactions: []*transaction.Transaction{tx(transaction.TypeExpense, 12, "Coffee", 30)}},
		{Transactions: []*transaction.Transaction{
			tx(transaction.TypeIncome, 1000, "Salary", 29),
			tx(transaction.TypeExpense, 5, "", 29),
		}},
	}

	assert.Equal(t, []string{
		`0.EXPENSE 12.00 "Coffee" on 2026-01-30`,
		`1.INCOME 1000.00 "Salary" on 2026-01-29`,
		`2.EXPENSE 5.00 on 2026-01-29`,
	}, insights.Lines(days))

	assert.Empty(t, insights.Lines(nil))
}

func TestBuildMessages(t *testing.T) {
	t.Run("Overview", func(t *testing.T) {
		msgs := insights.BuildMessages([]string{"0.a", "1.b"}, "EUR", "")
		require.Len(t, msgs, 4)

		assert.Equal(t, insights.RoleSystem, msgs[0].Role)
		assert.Equal(t, "0.a", msgs[1].Content)
		assert.Equal(t, "1.b", msgs[2].Content)
		assert.Equal(t, insights.RoleUser, msgs[3].Role)
		assert.True(t, strings.HasSuffix(msgs[3].Content, "Currency is EUR."))
	})

	t.Run("Question", func(t *testing.T) {
		msgs := insights.BuildMessages([]string{"0.a"}, "USD", " Where can I save? ")
		last := msgs[len(msgs)-1]

		assert.True(t, strings.HasPrefix(last.Content, "Currency is USD."))
		assert.True(t, strings.HasSuffix(last.Content, "Where can I save?"))
	})

	t.Run("CapsHistory", func(t *testing.T) {
		var lines []string
		for i := range 100 {
			lines = append(lines, fmt.Sprintf("%d.%s", i, strings.Repeat("x", 98)))
		}

		msgs := insights.BuildMessages(lines, "EUR", "")

		history := msgs[1 : len(msgs)-1]
		total := 0

		for _, m := range history {
			total += len(m.Content)
		}

		assert.LessOrEqual(t, total, insights.MaxHistoryChars)
		assert.Greater(t, total, insights.MaxHistoryChars-110)
		assert.Equal(t, lines[0], history[0].Content)
	})
}
