package ivy_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/bucket/internal/encoding"
	"github.com/MrJamesThe3rd/bucket/internal/importer/ivy"
	"github.com/MrJamesThe3rd/bucket/internal/transaction"
)

const header = "Date,Title,Category,Account,Amount,Currency,Type,Transfer Amount,Transfer Currency,To Account,Receive Amount,Receive Currency,Description,Due Date,ID\n"

func TestParser_Parse(t *testing.T) {
	csv := header +
		"2026-01-30 12:00:00,Coffee,Food,Cash,\"3,50\",EUR,EXPENSE,,,,,,morning,,\n" +
		"2026-01-31 09:00:00,Salary,,Bank,2000.00,EUR,INCOME,,,,,,,,\n" +
		"2026-02-01 10:00:00,Savings,,Bank,,,TRANSFER,100.00,EUR,Broker,110.00,USD,,,\n"

	rows, failed, err := ivy.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, failed)
	require.Len(t, rows, 3)

	coffee := rows[0]
	assert.Equal(t, 2, coffee.Line)
	assert.Equal(t, time.Date(2026, 1, 30, 12, 0, 0, 0, time.UTC), coffee.DateTime)
	assert.Equal(t, "Coffee", coffee.Title)
	assert.Equal(t, transaction.TypeExpense, coffee.Type)
	assert.True(t, decimal.RequireFromString("3.5").Equal(coffee.Amount))
	assert.Equal(t, "Cash", coffee.Account)
	assert.Equal(t, "EUR", coffee.Currency)
	assert.Equal(t, "Food", coffee.Category)
	assert.Equal(t, "morning", coffee.Description)

	assert.Equal(t, transaction.TypeIncome, rows[1].Type)

	transfer := rows[2]
	assert.Equal(t, transaction.TypeTransfer, transfer.Type)
	assert.True(t, decimal.NewFromInt(100).Equal(transfer.Amount))
	assert.Equal(t, "EUR", transfer.Currency)
	assert.Equal(t, "Broker", transfer.ToAccount)
	assert.Equal(t, "USD", transfer.ToCurrency)
	require.NotNil(t, transfer.ToAmount)
	assert.True(t, decimal.NewFromInt(110).Equal(*transfer.ToAmount))
}

func TestParser_FailedRows(t *testing.T) {
	csv := header +
		",Rent,,Bank,500,EUR,EXPENSE,,,,,,,2026-03-01,\n" +
		"2026-01-30,Bad,,Bank,1,EUR,REFUND,,,,,,,,\n" +
		"2026-01-30,NoAccount,,,1,EUR,EXPENSE,,,,,,,,\n" +
		"2026-01-30,Move,,Bank,,,TRANSFER,5,EUR,,,,,,\n" +
		",,,,,,,,,,,,,,\n" +
		"2026-01-30,Fine,,Bank,1,EUR,expense,,,,,,,,\n"

	rows, failed, err := ivy.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 7, rows[0].Line)
	assert.Equal(t, transaction.TypeExpense, rows[0].Type)

	require.Len(t, failed, 4)
	assert.Contains(t, failed[0].Reason, "planned payment")
	assert.Contains(t, failed[1].Reason, "unknown type")
	assert.Contains(t, failed[2].Reason, "missing account")
	assert.Contains(t, failed[3].Reason, "destination")
}

func TestParser_UTF16(t *testing.T) {
	csv := header + "2026-01-30,Café,,Cash,1,EUR,EXPENSE,,,,,,,,\n"

	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(csv))
	require.NoError(t, err)

	r, err := encoding.NewReader(bytes.NewReader(encoded), encoding.CharsetUTF16)
	require.NoError(t, err)

	rows, failed, err := ivy.NewParser().Parse(r)
	require.NoError(t, err)
	assert.Empty(t, failed)
	require.Len(t, rows, 1)
	assert.Equal(t, "Café", rows[0].Title)
}

func TestParser_NotIvy(t *testing.T) {
	_, _, err := ivy.NewParser().Parse(strings.NewReader("foo,bar\n1,2\n"))
	assert.Error(t, err)

	rows, failed, err := ivy.NewParser().Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Empty(t, failed)
}
