package wallet

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/bucket/internal/account"
	"github.com/MrJamesThe3rd/bucket/internal/settings"
	"github.com/MrJamesThe3rd/bucket/internal/transaction"
)

type AccountLister interface {
	ListAccounts(ctx context.Context) ([]*account.Account, error)
}

type TransactionLister interface {
	ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type Service struct {
	accounts     AccountLister
	transactions TransactionLister
	conv         Converter
}

func NewService(accounts AccountLister, transactions TransactionLister, conv Converter) *Service {
	return &Service{accounts: accounts, transactions: transactions, conv: conv}
}

type Overview struct {
	Period       Range
	BaseCurrency string
	Balance      Balance
	Buffer       decimal.Decimal

	// BufferDiff is Balance.Total minus Buffer, nil when the total is.
	BufferDiff *decimal.Decimal
	Totals     Totals
	Accounts   []AccountBalance
	History    []Day
}

// Snapshot loads every account and active transaction.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		accounts, err := s.accounts.ListAccounts(gctx)
		if err != nil {
			return fmt.Errorf("listing accounts: %w", err)
		}

		snap.Accounts = accounts

		return nil
	})

	g.Go(func() error {
		txs, err := s.transactions.ListTransactions(gctx, transaction.ListFilter{})
		if err != nil {
			return fmt.Errorf("listing transactions: %w", err)
		}

		snap.Transactions = txs

		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	return snap, nil
}

func (s *Service) Overview(ctx context.Context, sess settings.Snapshot, r Range) (*Overview, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	base := sess.BaseCurrency
	accounts := AccountBalances(ctx, s.conv, snap, base)

	o := &Overview{
		Period:       r,
		BaseCurrency: base,
		Balance:      balanceOf(accounts),
		Buffer:       sess.Buffer,
		Totals:       IncomeExpense(ctx, s.conv, snap, base, r),
		Accounts:     accounts,
		History:      History(ctx, s.conv, snap, base, r),
	}

	if o.Balance.Total != nil {
		diff := o.Balance.Total.Sub(sess.Buffer)
		o.BufferDiff = &diff
	}

	return o, nil
}

func (s *Service) History(ctx context.Context, sess settings.Snapshot, r Range) ([]Day, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return History(ctx, s.conv, snap, sess.BaseCurrency, r), nil
}
