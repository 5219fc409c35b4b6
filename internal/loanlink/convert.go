package loanlink

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/bucket/internal/account"
	"github.com/MrJamesThe3rd/bucket/internal/loan"
	"github.com/MrJamesThe3rd/bucket/internal/settings"
)

// ComputeConvertedAmount returns the record amount in the loan's currency,
// or nil when record and loan share a currency.
func (s *Service) ComputeConvertedAmount(ctx context.Context, sess settings.Snapshot, c loan.Conversion) (*decimal.Decimal, error) {
	accounts, err := s.Accounts.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	return s.convertedAmount(ctx, sess, accounts, c), nil
}

// convertedAmount converts live when forced, when the record currency
// changed, or when nothing was converted before. When only the amount
// changed the previous ratio is reused. A failed conversion yields nil.
func (s *Service) convertedAmount(ctx context.Context, sess settings.Snapshot, accounts []*account.Account, c loan.Conversion) *decimal.Decimal {
	base := sess.BaseCurrency
	newCurrency := currencyOf(accounts, c.NewAccountID, base)
	oldCurrency := currencyOf(accounts, c.OldAccountID, base)
	loanCurrency := currencyOf(accounts, c.LoanAccountID, base)

	switch {
	case newCurrency == loanCurrency:
		return nil

	case c.Force || oldCurrency != newCurrency || c.OldConvertedAmount == nil:
		converted, err := s.Converter.Convert(ctx, base, c.NewAmount, newCurrency, loanCurrency)
		if err != nil {
			slog.Warn("converting loan record amount",
				"from", newCurrency, "to", loanCurrency, "error", err)

			return nil
		}

		return &converted

	case !c.OldAmount.Equal(c.NewAmount):
		if c.OldAmount.IsZero() {
			return nil
		}

		rescaled := c.NewAmount.Mul(c.OldConvertedAmount.Div(c.OldAmount))

		return &rescaled

	default:
		old := *c.OldConvertedAmount
		return &old
	}
}

func currencyOf(accounts []*account.Account, id *uuid.UUID, base string) string {
	return account.Find(accounts, id).CurrencyOr(base)
}

// RecalculateLoanRecords recomputes every record's converted amount after the
// loan moved from oldAccountID to newAccountID. Nothing happens when the
// account or its currency stayed the same.
func (s *Service) RecalculateLoanRecords(ctx context.Context, sess settings.Snapshot, oldAccountID, newAccountID *uuid.UUID, loanID uuid.UUID) error {
	if sameAccount(oldAccountID, newAccountID) {
		return nil
	}

	accounts, err := s.Accounts.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("listing accounts: %w", err)
	}

	base := sess.BaseCurrency
	if currencyOf(accounts, oldAccountID, base) == currencyOf(accounts, newAccountID, base) {
		return nil
	}

	records, err := s.Records.ListRecords(ctx, loanID)
	if err != nil {
		return fmt.Errorf("listing loan records: %w", err)
	}

	updated, err := s.recalculate(ctx, sess, accounts, newAccountID, records)
	if err != nil {
		return err
	}

	if len(updated) == 0 {
		return nil
	}

	return s.Records.SaveRecords(ctx, updated)
}

// recalculate converts every record concurrently against loanAccountID and
// joins the results before returning them.
func (s *Service) recalculate(ctx context.Context, sess settings.Snapshot, accounts []*account.Account, loanAccountID *uuid.UUID, records []*loan.Record) ([]*loan.Record, error) {
	out := make([]*loan.Record, len(records))

	g, gctx := errgroup.WithContext(ctx)

	for i, r := range records {
		g.Go(func() error {
			updated := *r
			updated.ConvertedAmount = s.convertedAmount(gctx, sess, accounts, loan.Conversion{
				OldAccountID:       r.AccountID,
				OldConvertedAmount: r.ConvertedAmount,
				OldAmount:          r.Amount,
				NewAccountID:       r.AccountID,
				NewAmount:          r.Amount,
				LoanAccountID:      loanAccountID,
				Force:              true,
			})
			out[i] = &updated

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// AccountCurrencyChanged recomputes, with live rates, the records of loans
// held on the account and the records paid from it.
func (s *Service) AccountCurrencyChanged(ctx context.Context, sess settings.Snapshot, accountID uuid.UUID) error {
	loans, err := s.Loans.ListLoans(ctx)
	if err != nil {
		return fmt.Errorf("listing loans: %w", err)
	}

	accounts, err := s.Accounts.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("listing accounts: %w", err)
	}

	for _, l := range loans {
		records, err := s.Records.ListRecords(ctx, l.ID)
		if err != nil {
			return fmt.Errorf("listing records of loan %s: %w", l.ID, err)
		}

		affected := records
		if !sameAccount(l.AccountID, &accountID) {
			affected = affected[:0:0]
			for _, r := range records {
				if sameAccount(r.AccountID, &accountID) {
					affected = append(affected, r)
				}
			}
		}

		if len(affected) == 0 {
			continue
		}

		updated, err := s.recalculate(ctx, sess, accounts, l.AccountID, affected)
		if err != nil {
			return err
		}

		if err := s.Records.SaveRecords(ctx, updated); err != nil {
			return fmt.Errorf("saving records of loan %s: %w", l.ID, err)
		}
	}

	return nil
}

func sameAccount(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}
