// Package wallet derives balances, income and expense totals and a
// date-grouped history from accounts and transactions across currencies.
//
// Every function here is pure over a Snapshot: a missing exchange rate makes
// the affected amount nil rather than failing the whole computation.
package wallet

import (
	"bytes"
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/bucket/internal/account"
	"github.com/MrJamesThe3rd/bucket/internal/transaction"
)

type Converter interface {
	Convert(ctx context.Context, base string, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
}

// Snapshot is a read-only view of the ledger. Soft-deleted transactions may
// be present; they are ignored.
type Snapshot struct {
	Accounts     []*account.Account
	Transactions []*transaction.Transaction
}

// Range is a closed time interval.
type Range struct {
	Start time.Time
	End   time.Time
}

func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

type AccountBalance struct {
	Account  *account.Account
	Currency string
	Balance  decimal.Decimal

	// BaseBalance is nil when no rate to the base currency is known.
	BaseBalance *decimal.Decimal
}

type Balance struct {
	// Total is nil when any included account could not be converted.
	Total       *decimal.Decimal
	Unavailable []uuid.UUID
}

type Totals struct {
	Income  *decimal.Decimal
	Expense *decimal.Decimal
}

// Day groups the transactions of one UTC calendar date.
type Day struct {
	Date         time.Time
	Income       *decimal.Decimal
	Expense      *decimal.Decimal
	Transactions []*transaction.Transaction
}

// AccountBalances returns every account, included in the total or not, with
// its native balance and that balance in base.
func AccountBalances(ctx context.Context, conv Converter, snap Snapshot, base string) []AccountBalance {
	native := make(map[uuid.UUID]decimal.Decimal, len(snap.Accounts))

	for _, tx := range snap.Transactions {
		if tx.IsDeleted() {
			continue
		}

		switch tx.Type {
		case transaction.TypeIncome:
			native[tx.AccountID] = native[tx.AccountID].Add(tx.Amount)
		case transaction.TypeExpense:
			native[tx.AccountID] = native[tx.AccountID].Sub(tx.Amount)
		case transaction.TypeTransfer:
			native[tx.AccountID] = native[tx.AccountID].Sub(tx.Amount)

			if tx.ToAccountID != nil {
				in := tx.Amount
				if tx.ToAmount != nil {
					in = *tx.ToAmount
				}

				native[*tx.ToAccountID] = native[*tx.ToAccountID].Add(in)
			}
		}
	}

	out := make([]AccountBalance, 0, len(snap.Accounts))

	for _, a := range snap.Accounts {
		currency := a.CurrencyOr(base)
		ab := AccountBalance{
			Account:  a,
			Currency: currency,
			Balance:  native[a.ID],
		}
		ab.BaseBalance = convert(ctx, conv, base, ab.Balance, currency)

		out = append(out, ab)
	}

	return out
}

// ComputeBalance sums the base balances of accounts included in the balance.
func ComputeBalance(ctx context.Context, conv Converter, snap Snapshot, base string) Balance {
	return balanceOf(AccountBalances(ctx, conv, snap, base))
}

func balanceOf(accounts []AccountBalance) Balance {
	var (
		total       = decimal.Zero
		unavailable []uuid.UUID
	)

	for _, ab := range accounts {
		if !ab.Account.IncludeInBalance {
			continue
		}

		if ab.BaseBalance == nil {
			unavailable = append(unavailable, ab.Account.ID)
			continue
		}

		total = total.Add(*ab.BaseBalance)
	}

	if len(unavailable) > 0 {
		return Balance{Unavailable: unavailable}
	}

	return Balance{Total: &total}
}

// IncomeExpense sums income and expense dated within r, in base. Transfers
// are not counted.
func IncomeExpense(ctx context.Context, conv Converter, snap Snapshot, base string, r Range) Totals {
	var txs []*transaction.Transaction

	for _, tx := range snap.Transactions {
		if !tx.IsDeleted() && r.Contains(tx.DateTime) {
			txs = append(txs, tx)
		}
	}

	return totalsOf(ctx, conv, snap.Accounts, base, txs)
}

// History returns the transactions dated within r grouped by UTC calendar
// date, newest first. Grouping the same snapshot twice yields equal results.
func History(ctx context.Context, conv Converter, snap Snapshot, base string, r Range) []Day {
	var txs []*transaction.Transaction

	for _, tx := range snap.Transactions {
		if !tx.IsDeleted() && r.Contains(tx.DateTime) {
			txs = append(txs, tx)
		}
	}

	sortNewestFirst(txs)

	var days []Day

	for _, tx := range txs {
		date := dateOf(tx.DateTime)
		if len(days) == 0 || !days[len(days)-1].Date.Equal(date) {
			days = append(days, Day{Date: date})
		}

		d := &days[len(days)-1]
		d.Transactions = append(d.Transactions, tx)
	}

	for i := range days {
		t := totalsOf(ctx, conv, snap.Accounts, base, days[i].Transactions)
		days[i].Income = t.Income
		days[i].Expense = t.Expense
	}

	return days
}

func totalsOf(ctx context.Context, conv Converter, accounts []*account.Account, base string, txs []*transaction.Transaction) Totals {
	income, expense := decimal.Zero, decimal.Zero
	incomeOK, expenseOK := true, true

	for _, tx := range txs {
		if tx.Type == transaction.TypeTransfer {
			continue
		}

		currency := account.Find(accounts, &tx.AccountID).CurrencyOr(base)
		converted := convert(ctx, conv, base, tx.Amount, currency)

		switch tx.Type {
		case transaction.TypeIncome:
			if converted == nil {
				incomeOK = false
				continue
			}

			income = income.Add(*converted)
		case transaction.TypeExpense:
			if converted == nil {
				expenseOK = false
				continue
			}

			expense = expense.Add(*converted)
		}
	}

	var t Totals
	if incomeOK {
		t.Income = &income
	}

	if expenseOK {
		t.Expense = &expense
	}

	return t
}

func convert(ctx context.Context, conv Converter, base string, amount decimal.Decimal, from string) *decimal.Decimal {
	if from == base {
		return &amount
	}

	converted, err := conv.Convert(ctx, base, amount, from, base)
	if err != nil {
		return nil
	}

	return &converted
}

func sortNewestFirst(txs []*transaction.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].DateTime.Equal(txs[j].DateTime) {
			return txs[i].DateTime.After(txs[j].DateTime)
		}

		return bytes.Compare(txs[i].ID[:], txs[j].ID[:]) < 0
	})
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
