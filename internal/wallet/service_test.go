package wallet_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/bucket/internal/account"
	"github.com/MrJamesThe3rd/bucket/internal/settings"
	"github.com/MrJamesThe3rd/bucket/internal/transaction"
	"github.com/MrJamesThe3rd/bucket/internal/wallet"
)

type stubLedger struct {
	accounts []*account.Account
	txs      []*transaction.Transaction
	err      error
}

func (s stubLedger) ListAccounts(context.Context) ([]*account.Account, error) {
	return s.accounts, s.err
}

func (s stubLedger) ListTransactions(context.Context, transaction.ListFilter) ([]*transaction.Transaction, error) {
	return s.txs, nil
}

func TestService_Overview(t *testing.T) {
	cash := newAccount("USD", true)
	euro := newAccount("EUR", true)

	ledger := stubLedger{
		accounts: []*account.Account{cash, euro},
		txs: []*transaction.Transaction{
			tx(transaction.TypeIncome, "500", cash, day),
			tx(transaction.TypeExpense, "20", euro, day),
			tx(transaction.TypeIncome, "100", cash, day.AddDate(0, -2, 0)),
		},
	}

	svc := wallet.NewService(ledger, ledger, usdRates)
	sess := settings.Snapshot{BaseCurrency: "USD", Buffer: dec("200"), StartDayOfMonth: 1}

	o, err := svc.Overview(context.Background(), sess, wallet.MonthRange(2024, time.March, 1))
	require.NoError(t, err)

	assertAmount(t, new(dec("560")), o.Balance.Total)
	assertAmount(t, new(dec("360")), o.BufferDiff)
	assertAmount(t, new(dec("500")), o.Totals.Income)
	assertAmount(t, new(dec("40")), o.Totals.Expense)
	assert.Len(t, o.Accounts, 2)
	require.Len(t, o.History, 1)
	assert.Len(t, o.History[0].Transactions, 2)
}

func TestService_Overview_UnavailableBalance(t *testing.T) {
	yen := newAccount("JPY", true)

	svc := wallet.NewService(stubLedger{accounts: []*account.Account{yen}}, stubLedger{}, usdRates)

	o, err := svc.Overview(context.Background(), settings.Snapshot{BaseCurrency: "USD"}, wallet.MonthRange(2024, time.March, 1))
	require.NoError(t, err)
	assert.Nil(t, o.Balance.Total)
	assert.Nil(t, o.BufferDiff)
}

func TestService_Overview_LoadError(t *testing.T) {
	svc := wallet.NewService(stubLedger{err: errors.New("db down")}, stubLedger{}, usdRates)

	_, err := svc.Overview(context.Background(), settings.Snapshot{BaseCurrency: "USD"}, wallet.Range{})
	assert.Error(t, err)
}
